// Package record holds the contact data model and the pure formatting rules
// that turn raw log fields into display strings.
package record

import "strings"

// Raw is one logged contact: lower-cased field names mapped to trimmed
// values. The key set is open-ended; the well-known keys are call, qso_date,
// time_on, freq, mode, submode, rst_sent, rst_rcvd, band, pota_ref and
// comment_intl. A Raw without a non-empty call is invalid and must be
// filtered out before it reaches the layout pipeline.
type Raw map[string]string

// Get returns the trimmed value for a field, or "" when absent.
func (r Raw) Get(key string) string {
	return strings.TrimSpace(r[key])
}

// Call returns the uppercased callsign, the grouping identity for pagination.
func (r Raw) Call() string {
	return strings.ToUpper(r.Get("call"))
}

// Formatted is the display projection of a Raw: exactly eight ordered fields
// matching the table columns. It is produced fresh per render and never
// mutated.
type Formatted struct {
	Date      string
	Time      string
	Frequency string
	Mode      string
	RSTSent   string
	RSTRcvd   string
	Band      string
	Notes     string
}

// Fields returns the display fields in table column order.
func (f Formatted) Fields() [8]string {
	return [8]string{f.Date, f.Time, f.Frequency, f.Mode, f.RSTSent, f.RSTRcvd, f.Band, f.Notes}
}
