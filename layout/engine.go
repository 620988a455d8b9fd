package layout

import (
	"math/rand"
	"time"
	"unicode/utf8"

	"qslgen/config"
	"qslgen/record"
)

// fallbackCharWidth is the average character width estimate used whenever the
// TextMeasurer is missing or fails, so a broken face never aborts a page.
const fallbackCharWidth = 8.0

// avgWidthSample is measured once per panel to derive an average character
// width for comment budgets.
const avgWidthSample = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// palette is the config color roles resolved once per engine.
type palette struct {
	headerBg     Color
	headerText   Color
	rowBg        Color
	rowBgAlt     Color
	digital      Color
	pota         Color
	comment      Color
	sectionBg    Color
	border       Color
	rowSeparator Color
	text         Color
}

// Engine lays out one card per Compose call. It holds only read-only state
// (config, rule tables, resolved palette) plus the message picker, so use one
// Engine per worker when rendering pages in parallel.
type Engine struct {
	cfg  *config.Config
	fmtr *record.Formatter
	pal  palette
	pick func(n int) int
}

// Option configures an Engine.
type Option func(*Engine)

// WithMessagePicker injects the fallback-message selector. Tests pass a
// deterministic function; the default draws from a time-seeded source.
func WithMessagePicker(pick func(n int) int) Option {
	return func(e *Engine) { e.pick = pick }
}

// NewEngine builds the layout engine for one generation run.
func NewEngine(cfg *config.Config, opts ...Option) *Engine {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	e := &Engine{
		cfg:  cfg,
		fmtr: record.NewFormatter(cfg.Modes, cfg.Bands),
		pal: palette{
			headerBg:     ParseColor(cfg.Colors.HeaderBg),
			headerText:   ParseColor(cfg.Colors.HeaderText),
			rowBg:        ParseColor(cfg.Colors.RowBg),
			rowBgAlt:     ParseColor(cfg.Colors.RowBgAlt),
			digital:      ParseColor(cfg.Colors.DigitalMode),
			pota:         ParseColor(cfg.Colors.PotaRef),
			comment:      ParseColor(cfg.Colors.Comment),
			sectionBg:    ParseColor(cfg.Colors.SectionBg),
			border:       ParseColor(cfg.Colors.TableBorder),
			rowSeparator: ParseColor(cfg.Colors.RowSeparator),
			text:         ParseColor(cfg.Colors.Text),
		},
		pick: rng.Intn,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Formatter exposes the engine's formatter, sharing the run's rule tables.
func (e *Engine) Formatter() *record.Formatter { return e.fmtr }

// measure returns the rendered width of text, falling back to a fixed
// average character width when the measurer is unavailable.
func (e *Engine) measure(m TextMeasurer, role, text string) float64 {
	if m != nil {
		if w, _, err := m.Measure(text, role); err == nil {
			return w
		}
	}
	return float64(utf8.RuneCountInString(text)) * fallbackCharWidth
}

// avgCharWidth derives the mean character width for a role from a fixed
// sample string.
func (e *Engine) avgCharWidth(m TextMeasurer, role string) float64 {
	w := e.measure(m, role, avgWidthSample)
	avg := w / float64(len(avgWidthSample))
	if avg <= 0 {
		return fallbackCharWidth
	}
	return avg
}

// fitText shrinks text until its measured width fits maxWidth: strip the last
// four characters, append an ellipsis, re-measure. The loop floors at five
// characters so it always terminates.
func (e *Engine) fitText(m TextMeasurer, role, text string, maxWidth float64) string {
	out := text
	for e.measure(m, role, out) > maxWidth && utf8.RuneCountInString(out) > 5 {
		base := []rune(trimEllipsis(out))
		if len(base) <= 4 {
			break
		}
		out = string(base[:len(base)-4]) + "..."
	}
	return out
}

func trimEllipsis(s string) string {
	if len(s) >= 3 && s[len(s)-3:] == "..." {
		return s[:len(s)-3]
	}
	return s
}
