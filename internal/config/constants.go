package config

const (
	// ConfigPathEnvVar names the environment variable consulted after the -config flag.
	ConfigPathEnvVar = "URLWATCH_CONFIG_PATH"

	// Watch Defaults
	DefaultCheckIntervalSeconds = 3600 // 1 hour
	DefaultStartupDelaySeconds  = 10
	DefaultHTTPTimeoutSeconds   = 30
	DefaultUserAgent            = "urlwatch/1.0"
	DefaultMaxContentSize       = 10 * 1024 * 1024 // 10MB
	DefaultMaxRedirects         = 10

	// Log Defaults
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "console"
	DefaultLogFile       = ""
	DefaultMaxLogSizeMB  = 100
	DefaultMaxLogBackups = 3

	// Diff Defaults
	DefaultDiffMaxSummaryLines = 5

	// History Defaults
	DefaultHistorySQLitePath = "urlwatch_history.db"

	maxConfigFileSize = 1024 * 1024 // 1MB
)

// defaultConfigFiles are looked up, in order, in the working directory and
// then in the executable's directory.
var defaultConfigFiles = []string{"urlwatch.json", "urlwatch.yaml", "urlwatch.yml"}
