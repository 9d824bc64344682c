package differ

// DiffConfig holds configuration for content diffing
type DiffConfig struct {
	// MaxSummaryLines bounds the changed lines quoted in a summary.
	MaxSummaryLines int
	// MaxSampleLineLength truncates each quoted line.
	MaxSampleLineLength int
}

// DefaultDiffConfig returns default configuration
func DefaultDiffConfig() DiffConfig {
	return DiffConfig{
		MaxSummaryLines:     5,
		MaxSampleLineLength: 120,
	}
}
