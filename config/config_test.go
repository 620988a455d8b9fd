package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 1650.0, cfg.Card.Width)
	assert.Equal(t, 5, cfg.Table.MaxContacts)
	assert.Len(t, cfg.Columns.Headers, len(cfg.Columns.WidthsPercent))
	assert.NotEmpty(t, cfg.Info.DefaultMessages)
}

func TestLoadMissingFileWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "qsl_config.json")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default().Card, cfg.Card)

	// The bootstrap file round-trips to the same configuration.
	_, err = os.Stat(path)
	require.NoError(t, err)
	again, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, again)
}

func TestLoadEmptyPathSkipsFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadMergesPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "qsl_config.json")
	partial := `{
		"card": {"width": 1920},
		"additional_info": {"comment_x": 250},
		"colors": {"digital_mode": "#ff0000"}
	}`
	require.NoError(t, os.WriteFile(path, []byte(partial), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	// Overridden keys take the file's value.
	assert.Equal(t, 1920.0, cfg.Card.Width)
	assert.Equal(t, 250.0, cfg.Info.CommentX)
	assert.Equal(t, "#ff0000", cfg.Colors.DigitalMode)

	// Sibling keys inside touched sections keep their defaults.
	assert.Equal(t, 1050.0, cfg.Card.Height)
	assert.Equal(t, 980.0, cfg.Info.PotaX)
	assert.Equal(t, "#4a4a4a", cfg.Colors.HeaderBg)
	assert.Equal(t, Default().Columns, cfg.Columns)
}

func TestLoadRejectsInvalid(t *testing.T) {
	dir := t.TempDir()

	garbled := filepath.Join(dir, "garbled.json")
	require.NoError(t, os.WriteFile(garbled, []byte("{nope"), 0o644))
	_, err := Load(garbled)
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"table": {"max_contacts": 0}}`), 0o644))
	_, err = Load(bad)
	assert.ErrorContains(t, err, "max_contacts")
}

func TestValidate(t *testing.T) {
	check := func(mutate func(*Config)) error {
		cfg := Default()
		mutate(cfg)
		return cfg.Validate()
	}

	assert.Error(t, check(func(c *Config) { c.Card.Width = 0 }))
	assert.Error(t, check(func(c *Config) { c.Table.MaxContacts = 0 }))
	assert.Error(t, check(func(c *Config) { c.Columns.Headers = c.Columns.Headers[:3] }))
	assert.Error(t, check(func(c *Config) { c.Columns.WidthsPercent[0] = -0.1 }))
	assert.Error(t, check(func(c *Config) { c.Columns.WidthsPercent[0] = 0.9 })) // sum > 1
	assert.Error(t, check(func(c *Config) { c.Table.MinRowHeight = 99 }))
	assert.NoError(t, check(func(c *Config) {}))
}

func TestBandRangeJSONTriples(t *testing.T) {
	in := `[[7.0, 7.3, "40m"], [14.0, 14.35, "20m"]]`
	var bands BandTable
	require.NoError(t, json.Unmarshal([]byte(in), &bands))
	require.Len(t, bands, 2)
	assert.Equal(t, BandRange{7.0, 7.3, "40m"}, bands[0])

	out, err := json.Marshal(bands)
	require.NoError(t, err)
	assert.JSONEq(t, in, string(out))

	var bad BandTable
	assert.Error(t, json.Unmarshal([]byte(`[[7.0, "40m"]]`), &bad))
	assert.Error(t, json.Unmarshal([]byte(`[[7.0, 7.3, 40]]`), &bad))
}

func TestLoadReplacesBandsWholesale(t *testing.T) {
	path := filepath.Join(t.TempDir(), "qsl_config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"bands": [[7.0, 7.3, "forty"]]}`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	// Arrays replace, they do not merge element-wise.
	require.Len(t, cfg.Bands, 1)
	assert.Equal(t, "forty", cfg.Bands[0].Label)
}
