package layout

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"qslgen/config"
	"qslgen/record"
)

// stubCanvas records every drawing call so tests can assert on geometry
// without a real rasterizer.
type drawOp struct {
	kind           string // base, fill, stroke, line, text
	x0, y0, x1, y1 float64
	text           string
	color          Color
	role           string
}

type stubCanvas struct {
	ops          []drawOp
	baseW, baseH float64
	template     string
}

func (s *stubCanvas) CreateBase(w, h float64, template string) error {
	s.baseW, s.baseH, s.template = w, h, template
	return nil
}

func (s *stubCanvas) FillRect(x0, y0, x1, y1 float64, c Color) {
	s.ops = append(s.ops, drawOp{kind: "fill", x0: x0, y0: y0, x1: x1, y1: y1, color: c})
}

func (s *stubCanvas) StrokeRect(x0, y0, x1, y1 float64, c Color, w float64) {
	s.ops = append(s.ops, drawOp{kind: "stroke", x0: x0, y0: y0, x1: x1, y1: y1, color: c})
}

func (s *stubCanvas) Line(x0, y0, x1, y1 float64, c Color, w float64) {
	s.ops = append(s.ops, drawOp{kind: "line", x0: x0, y0: y0, x1: x1, y1: y1, color: c})
}

func (s *stubCanvas) DrawText(x, y float64, text string, c Color, role string) {
	s.ops = append(s.ops, drawOp{kind: "text", x0: x, y0: y, text: text, color: c, role: role})
}

func (s *stubCanvas) texts() []drawOp {
	var out []drawOp
	for _, op := range s.ops {
		if op.kind == "text" {
			out = append(out, op)
		}
	}
	return out
}

// stubMeasurer gives every character a fixed width, the measured analog of
// a monospace face.
type stubMeasurer struct{ charW float64 }

func (s stubMeasurer) Measure(text, role string) (float64, float64, error) {
	return float64(len(text)) * s.charW, 16, nil
}

func contact(call string, extra map[string]string) record.Raw {
	r := record.Raw{
		"call":     call,
		"qso_date": "2024-06-01",
		"time_on":  "0815",
		"freq":     "7074",
		"mode":     "FT8",
		"rst_sent": "-10",
		"rst_rcvd": "-08",
	}
	for k, v := range extra {
		r[k] = v
	}
	return r
}

func TestParseColor(t *testing.T) {
	assert.Equal(t, Color{74, 74, 74}, ParseColor("#4a4a4a"))
	assert.Equal(t, Color{255, 255, 255}, ParseColor("#fff"))
	assert.Equal(t, Color{255, 255, 255}, ParseColor("White"))
	assert.Equal(t, Color{128, 128, 128}, ParseColor("gray"))
	assert.Equal(t, Color{}, ParseColor("no-such-color"))
	assert.Equal(t, Color{}, ParseColor("#zzzzzz"))
}

func TestFitTextTerminatesAndFits(t *testing.T) {
	e := NewEngine(config.Default())
	m := stubMeasurer{charW: 7}

	for _, n := range []int{10, 50, 500} {
		in := strings.Repeat("x", n)
		out := e.fitText(m, "info_data", in, 100)
		w := e.measure(m, "info_data", out)
		if len(out) > 5 {
			assert.LessOrEqual(t, w, 100.0, "input length %d", n)
		}
		assert.True(t, strings.HasSuffix(out, "...") || out == in)
	}

	// Already-fitting text passes through untouched.
	assert.Equal(t, "short", e.fitText(m, "info_data", "short", 100))
}

func TestMeasureFallsBackWithoutMeasurer(t *testing.T) {
	e := NewEngine(config.Default())
	assert.Equal(t, 5*fallbackCharWidth, e.measure(nil, "info_data", "hello"))
}
