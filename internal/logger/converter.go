package logger

import (
	"github.com/aleister1102/urlwatch/internal/config"
	"github.com/rs/zerolog"
)

// ConfigConverter converts config.LogConfig to LoggerConfig
type ConfigConverter struct {
	levelParser  *LogLevelParser
	formatParser *LogFormatParser
}

// NewConfigConverter creates a new config converter
func NewConfigConverter() *ConfigConverter {
	return &ConfigConverter{
		levelParser:  NewLogLevelParser(),
		formatParser: NewLogFormatParser(),
	}
}

// ConvertConfig converts application config to logger config. Logging goes
// to the file when one is configured and to the console otherwise.
func (cc *ConfigConverter) ConvertConfig(cfg config.LogConfig) (LoggerConfig, error) {
	base := DefaultLoggerConfig()

	level, err := cc.levelParser.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel // fallback to default
	}

	base.Level = level
	base.Format = cc.formatParser.ParseFormat(cfg.LogFormat)
	base.EnableFile = cfg.LogFile != ""
	base.EnableConsole = !base.EnableFile
	base.FilePath = cfg.LogFile
	base.MaxSizeMB = cc.getMaxSizeMB(cfg.MaxLogSizeMB)
	base.MaxBackups = cc.getMaxBackups(cfg.MaxLogBackups)
	return base, err
}

// getMaxSizeMB returns max size with default fallback
func (cc *ConfigConverter) getMaxSizeMB(maxSize int) int {
	if maxSize <= 0 {
		return config.DefaultMaxLogSizeMB
	}
	return maxSize
}

// getMaxBackups returns max backups with default fallback
func (cc *ConfigConverter) getMaxBackups(maxBackups int) int {
	if maxBackups <= 0 {
		return config.DefaultMaxLogBackups
	}
	return maxBackups
}
