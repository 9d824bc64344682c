package config

// DiffConfig controls the line diff summary attached to change notifications
type DiffConfig struct {
	Enabled         bool `json:"enabled" yaml:"enabled"`
	MaxSummaryLines int  `json:"max_summary_lines,omitempty" yaml:"max_summary_lines,omitempty" validate:"min=0"`
}

// NewDefaultDiffConfig creates default diff configuration
func NewDefaultDiffConfig() DiffConfig {
	return DiffConfig{
		Enabled:         false,
		MaxSummaryLines: DefaultDiffMaxSummaryLines,
	}
}
