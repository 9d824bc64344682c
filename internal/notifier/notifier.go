// Package notifier delivers watcher notifications to the user.
package notifier

import (
	"context"
	"fmt"
	"strings"
)

// Notifier is an interface for sending notifications.
type Notifier interface {
	Send(ctx context.Context, message string) error
}

var (
	_ Notifier = (*CommandNotifier)(nil)
	_ Notifier = (*LogNotifier)(nil)
)

// NotifyError is returned when the notification command could not be started
// or exited unsuccessfully.
type NotifyError struct {
	Command  []string
	ExitCode int // -1 when the process never ran to completion
	Stderr   string
	Err      error
}

func (e *NotifyError) Error() string {
	msg := fmt.Sprintf("notification command %q failed", strings.Join(e.Command, " "))
	if e.ExitCode >= 0 {
		msg += fmt.Sprintf(" with exit code %d", e.ExitCode)
	}
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	if e.Err != nil && e.ExitCode < 0 {
		msg += fmt.Sprintf(": %v", e.Err)
	}
	return msg
}

func (e *NotifyError) Unwrap() error {
	return e.Err
}
