package notifier

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"

	"github.com/aleister1102/urlwatch/internal/common"
	"github.com/rs/zerolog"
)

const (
	// MessagePlaceholder is replaced by the notification text in every argument.
	MessagePlaceholder = "MSG"
	// URLPlaceholder is replaced by the watched URL in every argument.
	URLPlaceholder = "URL"

	maxStderrInError = 512
)

// CommandNotifier runs a configured command once per notification.
type CommandNotifier struct {
	command   []string
	targetURL string
	logger    zerolog.Logger
}

// NewCommandNotifier creates a notifier that runs command with its MSG and
// URL placeholders substituted.
func NewCommandNotifier(command []string, targetURL string, logger zerolog.Logger) (*CommandNotifier, error) {
	if len(command) == 0 || command[0] == "" {
		return nil, common.NewValidationError("notification", command, "notification command must not be empty")
	}
	cmd := make([]string, len(command))
	copy(cmd, command)

	return &CommandNotifier{
		command:   cmd,
		targetURL: targetURL,
		logger:    logger.With().Str("component", "CommandNotifier").Logger(),
	}, nil
}

// Args returns the command line that Send would run for message.
func (n *CommandNotifier) Args(message string) []string {
	// Single pass, so a message containing "URL" is left alone.
	r := strings.NewReplacer(MessagePlaceholder, message, URLPlaceholder, n.targetURL)
	args := make([]string, len(n.command))
	for i, arg := range n.command {
		args[i] = r.Replace(arg)
	}
	return args
}

// Send runs the notification command and waits for it to exit.
func (n *CommandNotifier) Send(ctx context.Context, message string) error {
	args := n.Args(message)

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	exitCode := -1
	if cmd.ProcessState != nil {
		exitCode = cmd.ProcessState.ExitCode()
	}
	n.logger.Debug().Strs("command", args).Int("exit_code", exitCode).Str("stdout", stdout.String()).Str("stderr", stderr.String()).Msg("Notification command finished")

	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		exitCode = -1
	}
	return &NotifyError{
		Command:  args,
		ExitCode: exitCode,
		Stderr:   truncate(strings.TrimSpace(stderr.String()), maxStderrInError),
		Err:      err,
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
