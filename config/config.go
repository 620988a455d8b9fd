package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// Config is the full, immutable configuration for one generation run. It is
// built once at startup (defaults merged with an optional JSON file) and
// passed to every component; nothing mutates it afterwards.
type Config struct {
	Output       OutputConfig       `json:"output"`
	Template     TemplateConfig     `json:"template"`
	Generation   GenerationConfig   `json:"generation"`
	Card         CardConfig         `json:"card"`
	Table        TableConfig        `json:"table"`
	Info         InfoConfig         `json:"additional_info"`
	Confirmation ConfirmationConfig `json:"confirmation_text"`
	Fonts        FontConfig         `json:"fonts"`
	Colors       ColorConfig        `json:"colors"`
	Columns      ColumnConfig       `json:"columns"`
	Modes        ModeRules          `json:"modes"`
	Bands        BandTable          `json:"bands"`
}

// OutputConfig controls where and how rendered cards are written.
type OutputConfig struct {
	Directory      string `json:"default_directory"`
	CleanBeforeRun bool   `json:"clean_before_run"`
	// Filename templates, interpolated with ${call}, ${card} and ${cards}.
	SingleTemplate string `json:"filename_single"`
	MultiTemplate  string `json:"filename_multi"`
}

// TemplateConfig names an optional background image for the card base.
type TemplateConfig struct {
	DefaultImage string `json:"default_image"`
}

// GenerationConfig tunes the run itself rather than the card contents.
type GenerationConfig struct {
	Workers int `json:"workers"`
}

// CardConfig is the card size in pixels.
type CardConfig struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// TableConfig is the contact table geometry. YPercent and HeightPercent are
// fractions of the card height.
type TableConfig struct {
	X             float64 `json:"x"`
	YPercent      float64 `json:"y_percent"`
	WidthMargin   float64 `json:"width_margin"`
	HeightPercent float64 `json:"height_percent"`
	MaxContacts   int     `json:"max_contacts"`
	HeaderHeight  float64 `json:"header_height"`
	MinRowHeight  float64 `json:"min_row_height"`
	MaxRowHeight  float64 `json:"max_row_height"`
}

// InfoConfig is the additional-info panel geometry. CommentX and PotaX are
// column offsets from the panel's left edge; MaxCommentWidth is a pixel
// budget for comment text.
type InfoConfig struct {
	X               float64  `json:"x"`
	YOffset         float64  `json:"y_offset"`
	WidthMargin     float64  `json:"width_margin"`
	HeightPercent   float64  `json:"height_percent"`
	HeaderHeight    float64  `json:"header_height"`
	MinRowHeight    float64  `json:"min_row_height"`
	CommentX        float64  `json:"comment_x"`
	PotaX           float64  `json:"pota_x"`
	MaxCommentWidth float64  `json:"max_comment_width"`
	RowLines        bool     `json:"row_lines"`
	ColumnRules     bool     `json:"column_rules"`
	DefaultMessages []string `json:"default_messages"`
}

// ConfirmationConfig styles the confirmation banner.
type ConfirmationConfig struct {
	ShowBorder bool   `json:"show_border"`
	TextColor  string `json:"text_color"`
}

// FontRole maps a symbolic role to a size and weight. Sizes are pixels.
type FontRole struct {
	Size float64 `json:"size"`
	Bold bool    `json:"bold"`
}

// FontConfig names the font files and the per-role selections.
type FontConfig struct {
	Primary string              `json:"primary"`
	Bold    string              `json:"bold"`
	Roles   map[string]FontRole `json:"roles"`
}

// ColorConfig holds color roles as hex or named color strings.
type ColorConfig struct {
	HeaderBg     string `json:"header_bg"`
	HeaderText   string `json:"header_text"`
	RowBg        string `json:"row_bg"`
	RowBgAlt     string `json:"row_bg_alt"`
	DigitalMode  string `json:"digital_mode"`
	PotaRef      string `json:"pota_ref"`
	Comment      string `json:"comment"`
	SectionBg    string `json:"section_bg"`
	TableBorder  string `json:"table_border"`
	RowSeparator string `json:"row_separator"`
	Text         string `json:"text"`
}

// ColumnConfig defines the table columns. Widths are fractions of the table
// width and are not re-normalized; a shortfall leaves blank margin.
type ColumnConfig struct {
	WidthsPercent []float64 `json:"widths_percent"`
	Headers       []string  `json:"headers"`
}

// Default returns the full default configuration. Every key consumed anywhere
// in the pipeline has a value here, so a partial user file can never leave a
// component without a setting.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Directory:      "qsl_cards",
			CleanBeforeRun: false,
			SingleTemplate: "${call}.png",
			MultiTemplate:  "${call}_card_${card}_of_${cards}.png",
		},
		Template:   TemplateConfig{DefaultImage: ""},
		Generation: GenerationConfig{Workers: 4},
		Card:       CardConfig{Width: 1650, Height: 1050},
		Table: TableConfig{
			X:             50,
			YPercent:      0.45,
			WidthMargin:   470,
			HeightPercent: 0.30,
			MaxContacts:   5,
			HeaderHeight:  30,
			MinRowHeight:  25,
			MaxRowHeight:  40,
		},
		Info: InfoConfig{
			X:               50,
			YOffset:         10,
			WidthMargin:     100,
			HeightPercent:   0.20,
			HeaderHeight:    30,
			MinRowHeight:    16,
			CommentX:        300,
			PotaX:           980,
			MaxCommentWidth: 620,
			RowLines:        false,
			ColumnRules:     false,
			DefaultMessages: []string{
				"Thanks for the QSO, hope to hear you again!",
				"73 and good DX!",
				"Greetings from the shack, see you on the bands!",
			},
		},
		Confirmation: ConfirmationConfig{ShowBorder: false, TextColor: "black"},
		Fonts: FontConfig{
			Primary: "/usr/share/fonts/truetype/ubuntu/Ubuntu-R.ttf",
			Bold:    "/usr/share/fonts/truetype/ubuntu/Ubuntu-B.ttf",
			Roles: map[string]FontRole{
				"table_header":      {Size: 14},
				"table_cell":        {Size: 14},
				"confirmation_text": {Size: 20, Bold: true},
				"info_header":       {Size: 20, Bold: true},
				"info_data":         {Size: 14},
				"info_comment":      {Size: 12},
			},
		},
		Colors: ColorConfig{
			HeaderBg:     "#4a4a4a",
			HeaderText:   "white",
			RowBg:        "white",
			RowBgAlt:     "#f0f0f0",
			DigitalMode:  "#cc6600",
			PotaRef:      "#0066cc",
			Comment:      "#006600",
			SectionBg:    "#f8f8f8",
			TableBorder:  "black",
			RowSeparator: "gray",
			Text:         "black",
		},
		Columns: ColumnConfig{
			WidthsPercent: []float64{0.14, 0.09, 0.11, 0.12, 0.07, 0.07, 0.09, 0.31},
			Headers:       []string{"Date", "Time UTC", "Freq(MHz)", "Mode/Sub", "RST S", "RST R", "Band", "Notes"},
		},
		Modes: DefaultModeRules(),
		Bands: DefaultBands(),
	}
}

// Load reads a JSON config file and merges it over the defaults, so absent
// keys resolve to their documented values. A missing file yields the default
// configuration and writes it to path as a starting point for the user.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		cfg := Default()
		if werr := Save(cfg, path); werr != nil {
			return cfg, fmt.Errorf("write default config %s: %w", path, werr)
		}
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var user map[string]any
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	defaults, err := toMap(Default())
	if err != nil {
		return nil, err
	}
	merged := mergeMaps(defaults, user)

	buf, err := json.Marshal(merged)
	if err != nil {
		return nil, fmt.Errorf("merge config %s: %w", path, err)
	}
	cfg := &Config{}
	if err := json.Unmarshal(buf, cfg); err != nil {
		return nil, fmt.Errorf("apply config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path as indented JSON.
func Save(cfg *Config, path string) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(cfg); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

// Validate rejects configurations the layout engines cannot work with.
func (c *Config) Validate() error {
	if c.Card.Width <= 0 || c.Card.Height <= 0 {
		return fmt.Errorf("card dimensions must be positive, got %gx%g", c.Card.Width, c.Card.Height)
	}
	if c.Table.MaxContacts < 1 {
		return fmt.Errorf("table.max_contacts must be >= 1, got %d", c.Table.MaxContacts)
	}
	if len(c.Columns.WidthsPercent) != len(c.Columns.Headers) {
		return fmt.Errorf("columns: %d widths for %d headers", len(c.Columns.WidthsPercent), len(c.Columns.Headers))
	}
	sum := 0.0
	for _, w := range c.Columns.WidthsPercent {
		if w < 0 {
			return fmt.Errorf("columns: negative width %g", w)
		}
		sum += w
	}
	if sum > 1.0+1e-9 {
		return fmt.Errorf("columns: widths sum to %.3f, must be <= 1.0", sum)
	}
	if c.Table.MinRowHeight > c.Table.MaxRowHeight {
		return fmt.Errorf("table: min_row_height %g exceeds max_row_height %g", c.Table.MinRowHeight, c.Table.MaxRowHeight)
	}
	return nil
}

func toMap(cfg *Config) (map[string]any, error) {
	buf, err := json.Marshal(cfg)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(buf, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// mergeMaps overlays user values on defaults, descending into nested objects
// so a user file only needs the keys it changes. Arrays and scalars replace
// wholesale.
func mergeMaps(defaults, user map[string]any) map[string]any {
	out := make(map[string]any, len(defaults))
	for k, v := range defaults {
		out[k] = v
	}
	for k, v := range user {
		if dv, ok := out[k].(map[string]any); ok {
			if uv, ok := v.(map[string]any); ok {
				out[k] = mergeMaps(dv, uv)
				continue
			}
		}
		out[k] = v
	}
	return out
}
