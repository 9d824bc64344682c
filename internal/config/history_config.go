package config

// HistoryConfig controls the SQLite log of poll outcomes. The log is write-only:
// validators are never restored from it.
type HistoryConfig struct {
	Enabled    bool   `json:"enabled" yaml:"enabled"`
	SQLitePath string `json:"sqlite_path,omitempty" yaml:"sqlite_path,omitempty" validate:"required_if=Enabled true"`
}

// NewDefaultHistoryConfig creates default history configuration
func NewDefaultHistoryConfig() HistoryConfig {
	return HistoryConfig{
		Enabled:    false,
		SQLitePath: DefaultHistorySQLitePath,
	}
}
