package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/aleister1102/urlwatch/internal/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_DefaultLogger(t *testing.T) {
	cfg := config.NewDefaultLogConfig()
	_, err := New(cfg)
	require.NoError(t, err)
}

func TestBuild_JSONConsoleIncludesPID(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.NewDefaultLogConfig()
	cfg.LogFormat = "json"

	l, err := NewLoggerBuilder().WithConsoleOutput(&buf).WithConfig(cfg).Build()
	require.NoError(t, err)

	l.GetZerolog().Info().Str("url", "https://example.com").Msg("Started")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "Started", line["message"])
	assert.Equal(t, "info", line["level"])
	assert.Equal(t, float64(os.Getpid()), line["pid"])
	assert.Contains(t, line, "time")
}

func TestBuild_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.NewDefaultLogConfig()
	cfg.LogFormat = "json"
	cfg.LogLevel = "warn"

	l, err := NewLoggerBuilder().WithConsoleOutput(&buf).WithConfig(cfg).Build()
	require.NoError(t, err)

	l.GetZerolog().Info().Msg("hidden")
	assert.Empty(t, buf.String())

	l.GetZerolog().Warn().Msg("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestBuild_WithLevelOverride(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewLoggerBuilder().WithConsoleOutput(&buf).WithLevel("debug").Build()
	require.NoError(t, err)
	assert.Equal(t, zerolog.DebugLevel, l.Config().Level)

	_, err = NewLoggerBuilder().WithLevel("chatty").Build()
	assert.Error(t, err)
}

func TestBuild_OutputFileReplacesConsole(t *testing.T) {
	var console bytes.Buffer
	path := filepath.Join(t.TempDir(), "logs", "urlwatch.log")

	l, err := NewLoggerBuilder().
		WithConsoleOutput(&console).
		WithConfig(config.NewDefaultLogConfig()).
		WithOutputFile(path).
		Build()
	require.NoError(t, err)

	l.GetZerolog().Info().Msg("Started")
	require.NoError(t, l.Close())

	assert.Empty(t, console.String())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Started")
	assert.NotContains(t, string(data), "\x1b[") // no color codes in files
}

func TestBuild_LogFileFromConfig(t *testing.T) {
	cfg := config.NewDefaultLogConfig()
	cfg.LogFile = filepath.Join(t.TempDir(), "from-config.log")
	cfg.LogFormat = "json"

	l, err := NewLoggerBuilder().WithConfig(cfg).Build()
	require.NoError(t, err)
	assert.True(t, l.Config().EnableFile)
	assert.False(t, l.Config().EnableConsole)

	l.GetZerolog().Error().Msg("boom")
	require.NoError(t, l.Close())

	data, err := os.ReadFile(cfg.LogFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"boom"`)
}

func TestLogFormatParser(t *testing.T) {
	p := NewLogFormatParser()
	assert.Equal(t, FormatJSON, p.ParseFormat("JSON"))
	assert.Equal(t, FormatText, p.ParseFormat("text"))
	assert.Equal(t, FormatConsole, p.ParseFormat("unknown"))
	assert.Equal(t, "console", FormatConsole.String())
}

func TestLogLevelParser(t *testing.T) {
	p := NewLogLevelParser()

	level, err := p.ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, zerolog.InfoLevel, level)

	level, err = p.ParseLevel("DEBUG")
	require.NoError(t, err)
	assert.Equal(t, zerolog.DebugLevel, level)

	_, err = p.ParseLevel("loud")
	assert.Error(t, err)
}
