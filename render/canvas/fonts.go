package canvasrender

import (
	"fmt"
	"image/color"
	"sync"

	"github.com/tdewolff/canvas"

	"qslgen/config"
)

// systemFallbacks are tried in order when a configured font file cannot be
// loaded. This is the documented fallback chain: configured path first, then
// these system families, then a hard error.
var systemFallbacks = []string{"DejaVuSans", "DejaVu Sans", "Liberation Sans", "Arial", "Helvetica"}

// defaultRole is used for unknown font roles, and carries a built-in size
// should the config lack it too.
const defaultRole = "table_cell"

// FontSet resolves symbolic font roles to canvas font faces. Families load
// lazily and are cached; the zero configured path goes straight to the
// system chain.
type FontSet struct {
	cfg config.FontConfig

	mu      sync.Mutex
	regular *canvas.FontFamily
	bold    *canvas.FontFamily
}

// NewFonts builds the font resolver; one FontSet can back many renderers.
func NewFonts(cfg config.FontConfig) *FontSet {
	return &FontSet{cfg: cfg}
}

// ensure loads both families so font problems surface before any drawing.
func (fs *FontSet) ensure() error {
	if _, err := fs.family(false); err != nil {
		return err
	}
	_, err := fs.family(true)
	return err
}

func (fs *FontSet) family(bold bool) (*canvas.FontFamily, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	cached := &fs.regular
	path := fs.cfg.Primary
	style := canvas.FontRegular
	name := "qsl-regular"
	if bold {
		cached = &fs.bold
		path = fs.cfg.Bold
		style = canvas.FontBold
		name = "qsl-bold"
	}
	if *cached != nil {
		return *cached, nil
	}

	family := canvas.NewFontFamily(name)
	if path != "" {
		if err := family.LoadFontFile(path, style); err == nil {
			*cached = family
			return family, nil
		}
	}
	for _, sys := range systemFallbacks {
		if err := family.LoadSystemFont(sys, style); err == nil {
			*cached = family
			return family, nil
		}
	}
	return nil, fmt.Errorf("load font %q: no usable font file or system fallback", path)
}

// role resolves a symbolic role, falling back to the default role and then to
// a built-in 14px regular selection.
func (fs *FontSet) role(name string) config.FontRole {
	if r, ok := fs.cfg.Roles[name]; ok && r.Size > 0 {
		return r
	}
	if r, ok := fs.cfg.Roles[defaultRole]; ok && r.Size > 0 {
		return r
	}
	return config.FontRole{Size: 14}
}

// Face returns a drawing face for a role in the given color.
func (fs *FontSet) Face(roleName string, col color.Color) (*canvas.FontFace, error) {
	r := fs.role(roleName)
	family, err := fs.family(r.Bold)
	if err != nil {
		return nil, err
	}
	style := canvas.FontRegular
	if r.Bold {
		style = canvas.FontBold
	}
	return family.Face(r.Size*pxToPt, col, style, canvas.FontNormal), nil
}
