// Package sdnotify reports watcher lifecycle transitions to systemd when
// running as a Type=notify unit. Outside systemd every call is a no-op.
package sdnotify

import (
	"github.com/coreos/go-systemd/v22/daemon"
	"github.com/rs/zerolog"
)

// Lifecycle sends readiness and shutdown notifications to the service manager.
type Lifecycle struct {
	logger zerolog.Logger
	notify func(unsetEnvironment bool, state string) (bool, error)
}

// NewLifecycle creates a Lifecycle backed by daemon.SdNotify.
func NewLifecycle(logger zerolog.Logger) *Lifecycle {
	return &Lifecycle{
		logger: logger.With().Str("component", "SdNotify").Logger(),
		notify: daemon.SdNotify,
	}
}

// Ready tells systemd startup has finished.
func (l *Lifecycle) Ready() {
	l.send(daemon.SdNotifyReady)
}

// Stopping tells systemd the process is shutting down.
func (l *Lifecycle) Stopping() {
	l.send(daemon.SdNotifyStopping)
}

func (l *Lifecycle) send(state string) {
	sent, err := l.notify(false, state)
	if err != nil {
		l.logger.Warn().Err(err).Str("state", state).Msg("Failed to notify service manager")
		return
	}
	if sent {
		l.logger.Debug().Str("state", state).Msg("Notified service manager")
	}
}
