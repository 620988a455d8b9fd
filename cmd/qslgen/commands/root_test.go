package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qslgen/config"
)

func TestApplyOverrides(t *testing.T) {
	template = "bg.png"
	maxContacts = 3
	workers = 2
	clean = true
	defer func() {
		template, maxContacts, workers, clean = "", 0, 0, false
	}()

	cfg := config.Default()
	applyOverrides(cfg)

	assert.Equal(t, "bg.png", cfg.Template.DefaultImage)
	assert.Equal(t, 3, cfg.Table.MaxContacts)
	assert.Equal(t, 2, cfg.Generation.Workers)
	assert.True(t, cfg.Output.CleanBeforeRun)
}

func TestApplyOverridesLeavesConfigAlone(t *testing.T) {
	cfg := config.Default()
	applyOverrides(cfg)
	assert.Equal(t, config.Default(), cfg)
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := versionCmd()
	cmd.SetOut(&out)
	require.NoError(t, cmd.Execute())
	assert.True(t, strings.HasPrefix(out.String(), "qslgen "))
}
