// Package layout computes the geometry of one QSL card: the contact table,
// the additional-info panel and the confirmation banner. It issues primitive
// drawing operations against a Canvas and never touches files, fonts or
// pixels itself.
package layout

import (
	"strconv"
	"strings"
)

// Color is an opaque 0-255 RGB value.
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

var namedColors = map[string]Color{
	"black":  {0, 0, 0},
	"white":  {255, 255, 255},
	"gray":   {128, 128, 128},
	"grey":   {128, 128, 128},
	"red":    {200, 0, 0},
	"green":  {0, 128, 0},
	"blue":   {0, 0, 200},
	"orange": {204, 102, 0},
}

// ParseColor accepts #RGB, #RRGGBB or a small named set. Unknown input
// resolves to black so a bad config value cannot abort a page.
func ParseColor(s string) Color {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := namedColors[s]; ok {
		return c
	}
	if strings.HasPrefix(s, "#") {
		hex := s[1:]
		if len(hex) == 3 {
			hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
		}
		if len(hex) == 6 {
			if v, err := strconv.ParseUint(hex, 16, 32); err == nil {
				return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}
			}
		}
	}
	return Color{}
}

// Canvas is the drawing surface contract. Rectangles are given by opposite
// corners in pixel coordinates with the origin at the top left.
type Canvas interface {
	// CreateBase prepares a blank card of the given size, optionally drawing
	// a template image stretched to fill it.
	CreateBase(width, height float64, templatePath string) error
	FillRect(x0, y0, x1, y1 float64, c Color)
	StrokeRect(x0, y0, x1, y1 float64, c Color, width float64)
	Line(x0, y0, x1, y1 float64, c Color, width float64)
	DrawText(x, y float64, text string, c Color, fontRole string)
}

// TextMeasurer reports the rendered size of text in a font role. Every
// iterative-fit decision in the info panel and the banner border go through
// this capability.
type TextMeasurer interface {
	Measure(text, fontRole string) (width, height float64, err error)
}
