// Package canvasrender draws card layouts via github.com/tdewolff/canvas and
// rasterizes them to PNG. One Renderer owns one in-progress card and is not
// safe for concurrent use; give each worker its own instance.
package canvasrender

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"os"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/rasterizer"
	xdraw "golang.org/x/image/draw"

	"qslgen/layout"
)

// Canvas units are treated as pixels and rasterized at 1 dot per unit.
// Font sizes arrive in pixels and canvas wants points, hence the factor
// (the inverse of 0.352777 mm/pt, same conversion the font system uses).
const pxToPt = 1.0 / 0.352777

// Renderer implements layout.Canvas and layout.TextMeasurer on a tdewolff
// canvas with a top-left origin.
type Renderer struct {
	fonts *FontSet

	c   *canvas.Canvas
	ctx *canvas.Context
}

var (
	_ layout.Canvas       = (*Renderer)(nil)
	_ layout.TextMeasurer = (*Renderer)(nil)
)

// New creates a renderer with the given font configuration. Fonts load on
// CreateBase so configuration errors surface before any page is drawn.
func New(fonts *FontSet) *Renderer {
	return &Renderer{fonts: fonts}
}

// CreateBase starts a fresh card. A template image, when given and readable,
// is stretched to the exact card size; a missing or broken template degrades
// to the blank white card.
func (r *Renderer) CreateBase(width, height float64, templatePath string) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid card size %gx%g", width, height)
	}
	if err := r.fonts.ensure(); err != nil {
		return err
	}

	r.c = canvas.New(width, height)
	r.ctx = canvas.NewContext(r.c)
	r.ctx.SetCoordSystem(canvas.CartesianIV) // top-left origin, like the layout

	r.ctx.SetFillColor(canvas.White)
	r.ctx.SetStrokeColor(color.RGBA{})
	r.ctx.DrawPath(0, 0, canvas.Rectangle(width, height))

	if templatePath != "" {
		if img, err := loadTemplate(templatePath, int(width), int(height)); err == nil {
			r.ctx.DrawImage(0, 0, img, canvas.DPMM(1.0))
		}
	}
	return nil
}

// FillRect fills the rectangle spanned by two corners.
func (r *Renderer) FillRect(x0, y0, x1, y1 float64, c layout.Color) {
	if r.ctx == nil {
		return
	}
	r.ctx.SetFillColor(toCanvasColor(c))
	r.ctx.SetStrokeColor(color.RGBA{})
	r.ctx.DrawPath(x0, y0, canvas.Rectangle(x1-x0, y1-y0))
}

// StrokeRect outlines the rectangle spanned by two corners.
func (r *Renderer) StrokeRect(x0, y0, x1, y1 float64, c layout.Color, width float64) {
	if r.ctx == nil {
		return
	}
	if width <= 0 {
		width = 1
	}
	r.ctx.SetFillColor(color.RGBA{})
	r.ctx.SetStrokeColor(toCanvasColor(c))
	r.ctx.SetStrokeWidth(width)
	r.ctx.DrawPath(x0, y0, canvas.Rectangle(x1-x0, y1-y0))
}

// Line draws a straight segment.
func (r *Renderer) Line(x0, y0, x1, y1 float64, c layout.Color, width float64) {
	if r.ctx == nil {
		return
	}
	if width <= 0 {
		width = 1
	}
	r.ctx.SetStrokeColor(toCanvasColor(c))
	r.ctx.SetStrokeWidth(width)
	p := &canvas.Path{}
	p.MoveTo(0, 0)
	p.LineTo(x1-x0, y1-y0)
	r.ctx.DrawPath(x0, y0, p)
}

// DrawText renders one line of text with x,y at its top-left corner.
func (r *Renderer) DrawText(x, y float64, text string, c layout.Color, fontRole string) {
	if r.ctx == nil || text == "" {
		return
	}
	face, err := r.fonts.Face(fontRole, toCanvasColor(c))
	if err != nil {
		return
	}
	line := canvas.NewTextLine(face, text, canvas.Left)
	baseline := y + face.Metrics().Ascent
	r.ctx.DrawText(x, baseline, line)
}

// Measure implements layout.TextMeasurer.
func (r *Renderer) Measure(text, fontRole string) (float64, float64, error) {
	face, err := r.fonts.Face(fontRole, canvas.Black)
	if err != nil {
		return 0, 0, err
	}
	return face.TextWidth(text), face.Metrics().LineHeight, nil
}

// EncodePNG rasterizes the current card and writes it as PNG.
func (r *Renderer) EncodePNG(w io.Writer) error {
	if r.c == nil {
		return fmt.Errorf("no card to encode; CreateBase was not called")
	}
	img := rasterizer.Draw(r.c, canvas.DPMM(1.0), canvas.DefaultColorSpace)
	return png.Encode(w, img)
}

// WriteFile renders the current card to a PNG file.
func (r *Renderer) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := r.EncodePNG(f); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// loadTemplate decodes an image file and stretches it to the card size.
func loadTemplate(path string, width, height int) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	src, _, err := image.Decode(f)
	if err != nil {
		return nil, err
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst, nil
}

func toCanvasColor(c layout.Color) color.Color {
	return canvas.RGBA(float64(c.R)/255.0, float64(c.G)/255.0, float64(c.B)/255.0, 1.0)
}
