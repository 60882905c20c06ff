package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mangohow/fmpmcp/config"
	"github.com/mangohow/fmpmcp/errors"
)

func TestRunMissingAPIKey(t *testing.T) {
	t.Setenv(config.APIKeyEnv, "")

	cmd := newRootCmd()
	cmd.SetArgs([]string{"--env-file", ""})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetOut(&bytes.Buffer{})

	err := cmd.Execute()
	require.Error(t, err)
	assert.True(t, errors.IsConfigurationMissing(err))
	assert.Equal(t, "FMP_API_KEY environment variable is required", err.Error())
}

func TestVersionFlag(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs([]string{"--version"})
	cmd.SetOut(&out)

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), version)
}

func TestApplyFlags(t *testing.T) {
	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--log-level", "debug", "--log-encoding", "json"}))

	cfg := config.Config{LogLevel: "info", LogEncoding: "console", LogFile: "keep.log"}
	applyFlags(cmd, &options{logLevel: "debug", logEncoding: "json"}, &cfg)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogEncoding)
	assert.Equal(t, "keep.log", cfg.LogFile)
}

func TestRejectsPositionalArgs(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"serve"})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetOut(&bytes.Buffer{})

	assert.Error(t, cmd.Execute())
}
