package record

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"qslgen/config"
)

// Display-field truncation limits. Notes and RST are hard slices; the
// measured fits happen later in the info panel, not here.
const (
	maxDateFallback = 10
	maxFreqFallback = 8
	maxModePair     = 10
	maxModeSingle   = 8
	maxNotes        = 26
	maxRST          = 4
)

// dateLayouts are tried in order; the first successful parse wins.
var dateLayouts = []string{"2006-01-02", "01/02/2006", "02/01/2006", "20060102"}

// Formatter applies the normalization and classification rules. All methods
// are total: malformed input yields a fallback string, never an error.
type Formatter struct {
	modes config.ModeRules
	bands config.BandTable
}

// NewFormatter builds a Formatter from the configured rule tables.
func NewFormatter(modes config.ModeRules, bands config.BandTable) *Formatter {
	return &Formatter{modes: modes, bands: bands}
}

// Format projects a raw contact into its eight display fields.
func (f *Formatter) Format(r Raw) Formatted {
	band := f.ResolveBand(r.Get("band"), r.Get("freq"))
	return Formatted{
		Date:      f.FormatDate(r.Get("qso_date")),
		Time:      f.FormatTime(r.Get("time_on")),
		Frequency: f.FormatFrequency(r.Get("freq")),
		Mode:      f.FormatMode(r.Get("mode"), r.Get("submode")),
		RSTSent:   truncate(r.Get("rst_sent"), maxRST),
		RSTRcvd:   truncate(r.Get("rst_rcvd"), maxRST),
		Band:      band,
		Notes:     truncate(r.Get("comment_intl"), maxNotes),
	}
}

// FormatDate re-emits any accepted date form as DD-Mon-YYYY. Unparseable
// non-empty input falls back to its first 10 characters.
func (f *Formatter) FormatDate(raw string) string {
	if raw == "" {
		return "?"
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("02-Jan-2006")
		}
	}
	return truncate(raw, maxDateFallback)
}

// FormatTime normalizes a UTC time to four digits (HHMM).
func (f *Formatter) FormatTime(raw string) string {
	clean := strings.NewReplacer(":", "", ".", "").Replace(raw)
	clean = strings.TrimSpace(clean)
	switch {
	case clean == "":
		return "?"
	case len(clean) == 3:
		return "0" + clean
	case len(clean) >= 4:
		return clean[:4]
	default:
		return truncate(raw, 4)
	}
}

// FormatFrequency renders MHz with three fractional digits. Values above
// 1000 are taken to be kHz and scaled down.
func (f *Formatter) FormatFrequency(raw string) string {
	if raw == "" {
		return "?"
	}
	freq, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return truncate(raw, maxFreqFallback)
	}
	if freq > 1000 {
		freq /= 1000
	}
	return fmt.Sprintf("%.3f", freq)
}

// FormatMode resolves the display label for a mode/submode pair. Precedence:
// special-pair override on the mode alone, then on "MODE/SUBMODE", then the
// digital-main substitution, then the plain pair/single rendering.
func (f *Formatter) FormatMode(mode, submode string) string {
	if mode == "" {
		return "?"
	}
	mode = strings.ToUpper(strings.TrimSpace(mode))
	submode = strings.ToUpper(strings.TrimSpace(submode))

	if label, ok := f.specialLabel(mode); ok {
		return label
	}
	if label, ok := f.specialLabel(mode + "/" + submode); ok {
		return label
	}
	if contains(f.modes.DigitalMain, mode) {
		if submode != "" {
			return submode
		}
		return mode
	}
	if submode != "" && submode != mode {
		return truncate(mode+"/"+submode, maxModePair)
	}
	return truncate(mode, maxModeSingle)
}

// IsDigital reports whether the pair counts as a digital mode for color
// selection. It does not influence FormatMode.
func (f *Formatter) IsDigital(mode, submode string) bool {
	mode = strings.ToUpper(strings.TrimSpace(mode))
	submode = strings.ToUpper(strings.TrimSpace(submode))
	return contains(f.modes.Digital, mode) ||
		contains(f.modes.Digital, submode) ||
		contains(f.modes.DigitalMain, mode)
}

// ResolveBand returns the explicit band when present, otherwise the first
// matching range for the frequency, otherwise a computed "<n>MHz" label.
// Parse failures yield "" rather than "?": a missing band column stays blank.
func (f *Formatter) ResolveBand(explicit, freqRaw string) string {
	if explicit != "" {
		return explicit
	}
	if freqRaw == "" {
		return ""
	}
	freq, err := strconv.ParseFloat(freqRaw, 64)
	if err != nil {
		return ""
	}
	if freq > 1000 {
		freq /= 1000
	}
	for _, r := range f.bands {
		if r.Min <= freq && freq <= r.Max {
			return r.Label
		}
	}
	return fmt.Sprintf("%.0fMHz", freq)
}

func (f *Formatter) specialLabel(key string) (string, bool) {
	for _, rule := range f.modes.Special {
		if rule.Match == key {
			return rule.Label, true
		}
	}
	return "", false
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

// truncate is a byte slice, matching the original field limits which are
// defined over ASCII log data.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
