package config

import (
	"time"
)

// WatchConfig defines configuration for the polling loop and its HTTP fetches
type WatchConfig struct {
	CheckIntervalSeconds int    `json:"check_interval_seconds,omitempty" yaml:"check_interval_seconds,omitempty" validate:"min=1"`
	StartupDelaySeconds  int    `json:"startup_delay_seconds" yaml:"startup_delay_seconds" validate:"min=0"`
	HTTPTimeoutSeconds   int    `json:"http_timeout_seconds,omitempty" yaml:"http_timeout_seconds,omitempty" validate:"min=1"`
	UserAgent            string `json:"user_agent,omitempty" yaml:"user_agent,omitempty"`
	MaxContentSize       int64  `json:"max_content_size,omitempty" yaml:"max_content_size,omitempty" validate:"min=1"` // Max content size in bytes
	MaxRedirects         int    `json:"max_redirects,omitempty" yaml:"max_redirects,omitempty" validate:"min=0"`
	InsecureSkipVerify   bool   `json:"insecure_skip_verify" yaml:"insecure_skip_verify"`
	Proxy                string `json:"proxy,omitempty" yaml:"proxy,omitempty" validate:"omitempty,url"`
	// CompareContent suppresses CHANGED notifications for 200 responses whose
	// body hashes the same as the previous one.
	CompareContent bool `json:"compare_content" yaml:"compare_content"`
}

// NewDefaultWatchConfig creates default watch configuration
func NewDefaultWatchConfig() WatchConfig {
	return WatchConfig{
		CheckIntervalSeconds: DefaultCheckIntervalSeconds,
		StartupDelaySeconds:  DefaultStartupDelaySeconds,
		HTTPTimeoutSeconds:   DefaultHTTPTimeoutSeconds,
		UserAgent:            DefaultUserAgent,
		MaxContentSize:       DefaultMaxContentSize,
		MaxRedirects:         DefaultMaxRedirects,
		InsecureSkipVerify:   false,
		CompareContent:       false,
	}
}

// CheckInterval returns the pause between two polls.
func (c WatchConfig) CheckInterval() time.Duration {
	return time.Duration(c.CheckIntervalSeconds) * time.Second
}

// StartupDelay returns the pause before the startup notification.
func (c WatchConfig) StartupDelay() time.Duration {
	return time.Duration(c.StartupDelaySeconds) * time.Second
}

// HTTPTimeout returns the bound on a single request/response roundtrip.
func (c WatchConfig) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutSeconds) * time.Second
}
