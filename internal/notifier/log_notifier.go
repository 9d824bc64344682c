package notifier

import (
	"context"

	"github.com/rs/zerolog"
)

// LogNotifier only logs notifications. Used for dry runs.
type LogNotifier struct {
	targetURL string
	logger    zerolog.Logger
}

func NewLogNotifier(targetURL string, logger zerolog.Logger) *LogNotifier {
	return &LogNotifier{
		targetURL: targetURL,
		logger:    logger.With().Str("component", "LogNotifier").Logger(),
	}
}

func (n *LogNotifier) Send(_ context.Context, message string) error {
	n.logger.Info().Str("url", n.targetURL).Str("notification", message).Msg("Notification (dry run)")
	return nil
}
