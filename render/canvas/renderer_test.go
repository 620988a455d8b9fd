package canvasrender

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qslgen/config"
	"qslgen/layout"
)

// testRenderer returns a renderer backed by whatever font the system chain
// finds, skipping the test on machines with none installed.
func testRenderer(t *testing.T) *Renderer {
	t.Helper()
	fonts := NewFonts(config.Default().Fonts)
	if err := fonts.ensure(); err != nil {
		t.Skipf("no usable font: %v", err)
	}
	return New(fonts)
}

func TestRendererSmoke(t *testing.T) {
	r := testRenderer(t)
	require.NoError(t, r.CreateBase(200, 100, ""))

	r.FillRect(10, 10, 90, 50, layout.Color{R: 240, G: 240, B: 240})
	r.StrokeRect(10, 10, 90, 50, layout.Color{}, 1)
	r.Line(10, 60, 190, 60, layout.Color{G: 128}, 1)
	r.DrawText(12, 14, "KA1ABC", layout.Color{}, "table_cell")

	var buf bytes.Buffer
	require.NoError(t, r.EncodePNG(&buf))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 200, img.Bounds().Dx())
	assert.Equal(t, 100, img.Bounds().Dy())
}

func TestRendererMeasure(t *testing.T) {
	r := testRenderer(t)

	w1, h, err := r.Measure("KA1ABC", "table_cell")
	require.NoError(t, err)
	assert.Greater(t, w1, 0.0)
	assert.Greater(t, h, 0.0)

	// Longer text is wider; an unknown role still resolves via the default.
	w2, _, err := r.Measure("KA1ABC KA1ABC", "table_cell")
	require.NoError(t, err)
	assert.Greater(t, w2, w1)

	w3, _, err := r.Measure("KA1ABC", "no_such_role")
	require.NoError(t, err)
	assert.InDelta(t, w1, w3, 0.001)
}

func TestCreateBaseRejectsBadSize(t *testing.T) {
	fonts := NewFonts(config.Default().Fonts)
	r := New(fonts)
	assert.Error(t, r.CreateBase(0, 100, ""))
	assert.Error(t, r.CreateBase(100, -1, ""))
}

func TestEncodeWithoutBase(t *testing.T) {
	fonts := NewFonts(config.Default().Fonts)
	r := New(fonts)
	var buf bytes.Buffer
	assert.Error(t, r.EncodePNG(&buf))
}

func TestBrokenTemplateDegradesToBlankCard(t *testing.T) {
	r := testRenderer(t)
	require.NoError(t, r.CreateBase(100, 100, "/nonexistent/template.png"))

	var buf bytes.Buffer
	require.NoError(t, r.EncodePNG(&buf))
	_, err := png.Decode(&buf)
	assert.NoError(t, err)
}
