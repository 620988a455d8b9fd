package config

import (
	"encoding/json"
	"fmt"
)

// ModeRules classifies operating modes. Special-pair overrides are an ordered
// list and take precedence over set membership; list order is the tie-break
// order, not map iteration order.
type ModeRules struct {
	Digital     []string   `json:"digital"`
	DigitalMain []string   `json:"digital_main"`
	Special     []ModeRule `json:"special_handling"`
}

// ModeRule maps an exact "MODE" or "MODE/SUBMODE" string to a display label.
type ModeRule struct {
	Match string `json:"match"`
	Label string `json:"label"`
}

// DefaultModeRules mirrors the common WSJT-X/fldigi mode families.
func DefaultModeRules() ModeRules {
	return ModeRules{
		Digital: []string{
			"FT8", "FT4", "PSK31", "PSK63", "RTTY", "JT4", "JT9", "JT65",
			"MSK144", "Q65", "FSK441", "WSPR", "JS8", "VARA",
		},
		DigitalMain: []string{"MFSK", "PSK", "RTTY", "DATA", "DIGITAL"},
		Special: []ModeRule{
			{Match: "FT8", Label: "FT8"},
			{Match: "MFSK/FT4", Label: "FT4"},
			{Match: "SSB/USB", Label: "USB"},
			{Match: "SSB/LSB", Label: "LSB"},
		},
	}
}

// BandTable is an ordered list of frequency ranges. Ranges need not be
// disjoint; the first match wins.
type BandTable []BandRange

// BandRange maps [Min, Max] MHz inclusive to a band label.
type BandRange struct {
	Min   float64
	Max   float64
	Label string
}

// DefaultBands covers the contest-common HF/VHF/UHF allocations.
func DefaultBands() BandTable {
	return BandTable{
		{1.8, 2.0, "160m"},
		{3.5, 4.0, "80m"},
		{7.0, 7.3, "40m"},
		{10.1, 10.15, "30m"},
		{14.0, 14.35, "20m"},
		{18.068, 18.168, "17m"},
		{21.0, 21.45, "15m"},
		{24.89, 24.99, "12m"},
		{28.0, 29.7, "10m"},
		{50.0, 54.0, "6m"},
		{144.0, 148.0, "2m"},
		{420.0, 450.0, "70cm"},
	}
}

// MarshalJSON keeps the compact [min, max, "label"] wire form.
func (b BandRange) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{b.Min, b.Max, b.Label})
}

// UnmarshalJSON accepts the [min, max, "label"] triple form.
func (b *BandRange) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 3 {
		return fmt.Errorf("band range must be [min, max, label], got %d elements", len(raw))
	}
	if err := json.Unmarshal(raw[0], &b.Min); err != nil {
		return fmt.Errorf("band range min: %w", err)
	}
	if err := json.Unmarshal(raw[1], &b.Max); err != nil {
		return fmt.Errorf("band range max: %w", err)
	}
	if err := json.Unmarshal(raw[2], &b.Label); err != nil {
		return fmt.Errorf("band range label: %w", err)
	}
	return nil
}
