package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/aleister1102/urlwatch/internal/common"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// GlobalConfig is the whole configuration file. Notification is the only
// required field; every other section falls back to its defaults.
type GlobalConfig struct {
	// Notification is the command and arguments run for every notification.
	// The placeholders MSG and URL are substituted by the notifier.
	Notification  []string      `json:"notification" yaml:"notification" validate:"required,min=1,dive,required"`
	WatchConfig   WatchConfig   `json:"watch_config,omitempty" yaml:"watch_config,omitempty"`
	LogConfig     LogConfig     `json:"log_config,omitempty" yaml:"log_config,omitempty"`
	DiffConfig    DiffConfig    `json:"diff_config,omitempty" yaml:"diff_config,omitempty"`
	HistoryConfig HistoryConfig `json:"history_config,omitempty" yaml:"history_config,omitempty"`
}

func NewDefaultGlobalConfig() *GlobalConfig {
	return &GlobalConfig{
		Notification:  nil,
		WatchConfig:   NewDefaultWatchConfig(),
		LogConfig:     NewDefaultLogConfig(),
		DiffConfig:    NewDefaultDiffConfig(),
		HistoryConfig: NewDefaultHistoryConfig(),
	}
}

// NotificationCommand returns a copy of the configured notification command.
func (c *GlobalConfig) NotificationCommand() []string {
	out := make([]string, len(c.Notification))
	copy(out, c.Notification)
	return out
}

// LoadGlobalConfig loads the configuration from a file or default locations.
// It determines the config file path using GetConfigPath, supports both JSON and YAML formats.
// YAML is used if the file extension is .yaml or .yml.
// Unlike a missing optional section, a missing file is an error: the
// notification command has no default.
func LoadGlobalConfig(providedPath string, logger zerolog.Logger) (*GlobalConfig, error) {
	cfg := NewDefaultGlobalConfig()

	if providedPath != "" && !fileExists(providedPath) {
		return nil, common.NewValidationError("config_file", providedPath, "config file does not exist")
	}

	filePath := GetConfigPath(providedPath)
	if filePath == "" {
		return nil, common.NewConfigurationError("", "", "no configuration file found (use -config or "+ConfigPathEnvVar+")")
	}
	logger.Debug().Str("path", filePath).Msg("Loading configuration file")

	data, err := loadConfigFileContent(filePath)
	if err != nil {
		return nil, common.WrapError(err, "failed to load config file content")
	}

	if err := parseConfigContent(data, filePath, cfg); err != nil {
		return nil, common.WrapError(err, "failed to parse config content")
	}

	logger.Debug().Str("path", filePath).Strs("notification", cfg.Notification).Msg("Configuration file loaded")
	return cfg, nil
}

// loadConfigFileContent reads the config file, refusing anything suspiciously large
func loadConfigFileContent(filePath string) ([]byte, error) {
	info, err := os.Stat(filePath)
	if err != nil {
		return nil, common.WrapErrorf(err, "stat %s", filePath)
	}
	if info.Size() > maxConfigFileSize {
		return nil, common.NewValidationError("config_file", filePath, "config file exceeds 1MB")
	}
	return os.ReadFile(filePath)
}

// parseConfigContent parses the config content based on file extension
func parseConfigContent(data []byte, filePath string, cfg *GlobalConfig) error {
	ext := filepath.Ext(filePath)
	if isYAMLFile(ext) {
		return parseYAMLConfig(data, filePath, cfg)
	}
	return parseJSONConfig(data, filePath, cfg)
}

// isYAMLFile checks if the file extension indicates a YAML file
func isYAMLFile(ext string) bool {
	return ext == ".yaml" || ext == ".yml"
}

// parseYAMLConfig parses YAML configuration
func parseYAMLConfig(data []byte, filePath string, cfg *GlobalConfig) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return common.NewError("failed to unmarshal YAML from '%s': %w", filePath, err)
	}
	return nil
}

// parseJSONConfig parses JSON configuration
func parseJSONConfig(data []byte, filePath string, cfg *GlobalConfig) error {
	if err := json.Unmarshal(data, cfg); err != nil {
		return common.NewError("failed to unmarshal JSON from '%s': %w", filePath, err)
	}
	return nil
}
