// Package watcher polls a single URL with conditional GET requests and
// notifies when it changes, when polling fails and when the watcher starts
// or stops.
package watcher

import (
	"bytes"
	"context"
	"crypto/sha256"
	"time"

	"github.com/aleister1102/urlwatch/internal/common"
	"github.com/aleister1102/urlwatch/internal/differ"
	"github.com/aleister1102/urlwatch/internal/extractor"
	"github.com/aleister1102/urlwatch/internal/history"
	"github.com/rs/zerolog"
)

// exitNotifyTimeout bounds the EXITING notification, which runs after the
// run context is already cancelled.
const exitNotifyTimeout = 10 * time.Second

// Notifier delivers a notification message.
type Notifier interface {
	Send(ctx context.Context, message string) error
}

// HistoryRecorder stores poll outcomes.
type HistoryRecorder interface {
	Record(ctx context.Context, entry history.Entry) (int64, error)
}

// Lifecycle receives readiness and shutdown transitions.
type Lifecycle interface {
	Ready()
	Stopping()
}

// SleepFunc blocks for d or until ctx is done, returning ctx.Err() in that case.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Config holds the loop settings.
type Config struct {
	Target       string
	Interval     time.Duration
	StartupDelay time.Duration
	// CompareContent suppresses notifications for a 200 whose body hashes
	// the same as the previous 200.
	CompareContent bool
}

// Option configures optional collaborators.
type Option func(*Watcher)

// WithDiffer adds a line diff summary to change notifications.
func WithDiffer(d *differ.ContentDiffer) Option {
	return func(w *Watcher) { w.differ = d }
}

// WithRecorder appends every poll outcome to r.
func WithRecorder(r HistoryRecorder) Option {
	return func(w *Watcher) { w.recorder = r }
}

// WithLifecycle reports readiness and shutdown to l.
func WithLifecycle(l Lifecycle) Option {
	return func(w *Watcher) { w.lifecycle = l }
}

// WithSleep replaces the context-aware sleep used between polls.
func WithSleep(sleep SleepFunc) Option {
	return func(w *Watcher) { w.sleep = sleep }
}

// WithClock replaces the clock used for durations.
func WithClock(now func() time.Time) Option {
	return func(w *Watcher) { w.now = now }
}

// Watcher owns the poll loop and the validator state for one target.
// It is not safe for concurrent use; Run must be called once.
type Watcher struct {
	cfg       Config
	fetcher   *Fetcher
	notifier  Notifier
	logger    zerolog.Logger
	differ    *differ.ContentDiffer
	recorder  HistoryRecorder
	lifecycle Lifecycle
	sleep     SleepFunc
	now       func() time.Time

	validators Validators
	state      PollState
	baselined  bool
	lastHash   [sha256.Size]byte
	lastBody   []byte
	startedAt  time.Time
}

// New creates a Watcher for cfg.Target.
func New(cfg Config, fetcher *Fetcher, notifier Notifier, logger zerolog.Logger, opts ...Option) (*Watcher, error) {
	if cfg.Target == "" {
		return nil, common.NewValidationError("target", cfg.Target, "target URL cannot be empty")
	}
	if cfg.Interval <= 0 {
		return nil, common.NewValidationError("interval", cfg.Interval, "must be positive")
	}
	if cfg.StartupDelay < 0 {
		return nil, common.NewValidationError("startup_delay", cfg.StartupDelay, "cannot be negative")
	}
	if fetcher == nil || notifier == nil {
		return nil, common.NewError("fetcher and notifier are required")
	}

	w := &Watcher{
		cfg:      cfg,
		fetcher:  fetcher,
		notifier: notifier,
		logger:   logger.With().Str("component", "Watcher").Str("url", cfg.Target).Logger(),
		sleep:    common.WaitWithCancellation,
		now:      time.Now,
		state:    StateStarting,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Validators returns the currently cached validators.
func (w *Watcher) Validators() Validators {
	return w.validators
}

// State returns the current poll state.
func (w *Watcher) State() PollState {
	return w.state
}

// Run performs the baseline fetch, sends the startup notification after the
// startup delay and then polls every interval until ctx is cancelled.
// It always returns ctx.Err().
func (w *Watcher) Run(ctx context.Context) error {
	w.startedAt = w.now()
	w.logger.Info().
		Dur("interval", w.cfg.Interval).
		Dur("startup_delay", w.cfg.StartupDelay).
		Msg("Started")

	initial := w.fetcher.PollOnce(ctx, w.cfg.Target, w.validators)
	if ctx.Err() != nil {
		return w.shutdown(ctx)
	}
	w.handle(ctx, initial)
	w.logger.Info().
		Str("etag", w.validators.ETag).
		Str("last_modified", w.validators.LastModified).
		Msg("Validators after initial fetch")

	if err := w.sleep(ctx, w.cfg.StartupDelay); err != nil {
		return w.shutdown(ctx)
	}
	w.logger.Info().Msg("Sending a notification that we're running")
	w.notify(ctx, NotificationEvent{Reason: ReasonStartup, Message: MessageStartup})
	w.state = StateRunning
	if w.lifecycle != nil {
		w.lifecycle.Ready()
	}

	for {
		if err := w.sleep(ctx, w.cfg.Interval); err != nil {
			return w.shutdown(ctx)
		}
		result := w.fetcher.PollOnce(ctx, w.cfg.Target, w.validators)
		if ctx.Err() != nil {
			return w.shutdown(ctx)
		}
		w.handle(ctx, result)
	}
}

func (w *Watcher) handle(ctx context.Context, result PollResult) {
	switch result.Outcome {
	case OutcomeUnchanged:
		w.logger.Debug().Msg("URL not changed")
		w.record(ctx, result, "unchanged", "", false)

	case OutcomeChanged:
		w.validators = result.Validators
		hash := sha256.Sum256(result.Body)

		if !w.baselined {
			w.baselined = true
			w.remember(hash, result.Body)
			w.logger.Info().
				Str("etag", result.Validators.ETag).
				Str("last_modified", result.Validators.LastModified).
				Int("size", len(result.Body)).
				Msg("Baseline fetched")
			w.record(ctx, result, "baseline", "", false)
			return
		}

		if w.cfg.CompareContent && hash == w.lastHash {
			w.logger.Info().Msg("Server returned 200 but content is identical, not notifying")
			w.record(ctx, result, "same_content", "", false)
			return
		}

		var summary *differ.Summary
		if w.differ != nil && w.lastBody != nil {
			s := w.differ.Summarize(w.lastBody, result.Body)
			summary = &s
		}
		w.remember(hash, result.Body)

		msg := changedMessage(extractor.ExtractTitle(result.Body, result.ContentType), summary)
		w.logger.Info().Msg("Sending notification of site change")
		notified := w.notify(ctx, NotificationEvent{Reason: ReasonChanged, Message: msg})
		w.record(ctx, result, "changed", msg, notified)

	case OutcomeFetchError:
		w.logger.Error().Err(result.Err).Int("status_code", result.StatusCode).Msg("Fetch failed, continuing")
		msg := errorMessage(result.Err)
		notified := w.notify(ctx, NotificationEvent{Reason: ReasonError, Message: msg})
		w.record(ctx, result, "error", result.Err.Error(), notified)
	}
}

func (w *Watcher) remember(hash [sha256.Size]byte, body []byte) {
	w.lastHash = hash
	if w.differ != nil {
		w.lastBody = bytes.Clone(body)
	}
}

// notify reports whether the notifier accepted the event. Failures are logged only.
func (w *Watcher) notify(ctx context.Context, event NotificationEvent) bool {
	if err := w.notifier.Send(ctx, event.Message); err != nil {
		w.logger.Error().Err(err).Str("reason", event.Reason.String()).Msg("Notification failed")
		return false
	}
	w.logger.Debug().Str("reason", event.Reason.String()).Msg("Notification sent")
	return true
}

func (w *Watcher) record(ctx context.Context, result PollResult, outcome, detail string, notified bool) {
	if w.recorder == nil {
		return
	}
	entry := history.Entry{
		Target:       w.cfg.Target,
		CheckedAt:    result.CheckedAt,
		Outcome:      outcome,
		StatusCode:   result.StatusCode,
		ETag:         w.validators.ETag,
		LastModified: w.validators.LastModified,
		Detail:       detail,
		Notified:     notified,
	}
	if _, err := w.recorder.Record(ctx, entry); err != nil {
		w.logger.Warn().Err(err).Msg("Failed to record poll history")
	}
}

func (w *Watcher) shutdown(ctx context.Context) error {
	w.logger.Info().
		Dur("duration", w.now().Sub(w.startedAt)).
		Msg("Exiting")

	exitCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), exitNotifyTimeout)
	defer cancel()
	w.notify(exitCtx, NotificationEvent{Reason: ReasonExiting, Message: MessageExiting})

	if w.lifecycle != nil {
		w.lifecycle.Stopping()
	}
	return ctx.Err()
}
