package main

import (
	"bytes"
	"errors"
	"flag"
	"testing"
	"time"

	"github.com/aleister1102/urlwatch/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags_Defaults(t *testing.T) {
	flags, err := ParseFlags([]string{"https://example.com/"}, &bytes.Buffer{})
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/", flags.URL)
	assert.Empty(t, flags.OutFile)
	assert.Empty(t, flags.GlobalConfigFile)
	assert.False(t, flags.IntervalSet)
	assert.False(t, flags.StartupDelaySet)
	assert.False(t, flags.DryRun)
	assert.Zero(t, flags.History)
}

func TestParseFlags_AllFlags(t *testing.T) {
	flags, err := ParseFlags([]string{
		"-outfile", "watch.log",
		"-config", "urlwatch.yaml",
		"-interval", "30m",
		"-startup-delay", "0s",
		"-log-level", "debug",
		"-dry-run",
		"http://example.com/status",
	}, &bytes.Buffer{})
	require.NoError(t, err)

	assert.Equal(t, "watch.log", flags.OutFile)
	assert.Equal(t, "urlwatch.yaml", flags.GlobalConfigFile)
	assert.Equal(t, 30*time.Minute, flags.Interval)
	assert.True(t, flags.IntervalSet)
	assert.Equal(t, time.Duration(0), flags.StartupDelay)
	assert.True(t, flags.StartupDelaySet)
	assert.Equal(t, "debug", flags.LogLevel)
	assert.True(t, flags.DryRun)
	assert.Equal(t, "http://example.com/status", flags.URL)
}

func TestParseFlags_Aliases(t *testing.T) {
	flags, err := ParseFlags([]string{"-o", "out.log", "-c", "cfg.json", "https://example.com/"}, &bytes.Buffer{})
	require.NoError(t, err)

	assert.Equal(t, "out.log", flags.OutFile)
	assert.Equal(t, "cfg.json", flags.GlobalConfigFile)
}

func TestParseFlags_LongFormWinsOverAlias(t *testing.T) {
	flags, err := ParseFlags([]string{"-o", "alias.log", "-outfile", "long.log", "https://example.com/"}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, "long.log", flags.OutFile)
}

func TestParseFlags_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		message string
	}{
		{name: "no url", args: []string{}, message: "a URL to watch is required"},
		{name: "multiple urls", args: []string{"https://a.example/", "https://b.example/"}, message: "multiple URLs not supported"},
		{name: "not a url", args: []string{"example.com"}, message: "must be an absolute http or https URL"},
		{name: "ftp url", args: []string{"ftp://example.com/file"}, message: "must be an absolute http or https URL"},
		{name: "interval too small", args: []string{"-interval", "10ms", "https://example.com/"}, message: "must be at least 1s"},
		{name: "negative startup delay", args: []string{"-startup-delay", "-1s", "https://example.com/"}, message: "cannot be negative"},
		{name: "negative history", args: []string{"-history", "-3", "https://example.com/"}, message: "cannot be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFlags(tt.args, &bytes.Buffer{})
			var vErr *common.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestParseFlags_UnknownFlag(t *testing.T) {
	var out bytes.Buffer
	_, err := ParseFlags([]string{"-bogus", "https://example.com/"}, &out)
	assert.Error(t, err)
	assert.Contains(t, out.String(), "Usage: urlwatch")
}

func TestParseFlags_Help(t *testing.T) {
	_, err := ParseFlags([]string{"-h"}, &bytes.Buffer{})
	assert.True(t, errors.Is(err, flag.ErrHelp))
}
