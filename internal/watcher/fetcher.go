package watcher

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/aleister1102/urlwatch/internal/common"
	"github.com/rs/zerolog"
)

const (
	// maxErrorBodySize bounds how much of a non-OK body ends up in an HTTPError.
	maxErrorBodySize = 1024
	// maxDrainSize bounds how much of a 304 body is discarded to reuse the connection.
	maxDrainSize = 4096
)

// FetcherConfig holds request settings for the Fetcher.
type FetcherConfig struct {
	UserAgent      string
	MaxContentSize int64
}

// Fetcher performs conditional GET requests.
type Fetcher struct {
	httpClient *http.Client
	logger     zerolog.Logger
	cfg        FetcherConfig
	now        func() time.Time
}

// NewFetcher creates a new Fetcher.
func NewFetcher(client *http.Client, logger zerolog.Logger, cfg FetcherConfig) *Fetcher {
	return &Fetcher{
		httpClient: client,
		logger:     logger.With().Str("component", "Fetcher").Logger(),
		cfg:        cfg,
		now:        time.Now,
	}
}

// PollOnce issues one conditional GET for target.
//
// A 304 yields OutcomeUnchanged with v returned as is. A 200 yields
// OutcomeChanged with validators taken from the response headers only, so a
// header the server stopped sending is cleared. Everything else yields
// OutcomeFetchError with v returned as is.
func (f *Fetcher) PollOnce(ctx context.Context, target string, v Validators) PollResult {
	result := PollResult{
		Validators: v,
		CheckedAt:  f.now(),
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return f.fail(result, common.NewNetworkError(target, "invalid request", err))
	}
	if v.ETag != "" {
		req.Header.Set("If-None-Match", v.ETag)
	}
	if v.LastModified != "" {
		req.Header.Set("If-Modified-Since", v.LastModified)
	}
	if f.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", f.cfg.UserAgent)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		reason := "request failed"
		if common.IsTimeout(err) {
			reason = "request timed out"
		}
		return f.fail(result, common.NewNetworkError(target, reason, err))
	}
	defer func() { _ = resp.Body.Close() }()

	result.StatusCode = resp.StatusCode
	result.ContentType = resp.Header.Get("Content-Type")

	switch resp.StatusCode {
	case http.StatusNotModified:
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxDrainSize))
		result.Outcome = OutcomeUnchanged
		f.logger.Debug().Str("url", target).Msg("Content not modified (304)")
		return result
	case http.StatusOK:
	default:
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		message := strings.TrimSpace(string(bodyBytes))
		if message == "" {
			message = http.StatusText(resp.StatusCode)
		}
		return f.fail(result, common.NewHTTPErrorWithURL(resp.StatusCode, message, target))
	}

	maxSize := f.cfg.MaxContentSize
	if maxSize > 0 && resp.ContentLength > maxSize {
		return f.fail(result, common.NewNetworkError(target, "response body too large",
			common.WrapErrorf(common.ErrContentTooLarge, "%d bytes (max: %d bytes)", resp.ContentLength, maxSize)))
	}

	body := io.Reader(resp.Body)
	if maxSize > 0 {
		body = io.LimitReader(resp.Body, maxSize+1)
	}
	bodyBytes, err := io.ReadAll(body)
	if err != nil {
		return f.fail(result, common.NewNetworkError(target, "failed to read response body", err))
	}
	if maxSize > 0 && int64(len(bodyBytes)) > maxSize {
		return f.fail(result, common.NewNetworkError(target, "response body too large",
			common.WrapErrorf(common.ErrContentTooLarge, "more than %d bytes", maxSize)))
	}

	result.Outcome = OutcomeChanged
	result.Body = bodyBytes
	result.Validators = Validators{
		ETag:         resp.Header.Get("ETag"),
		LastModified: resp.Header.Get("Last-Modified"),
	}

	f.logger.Debug().
		Str("url", target).
		Str("content_type", result.ContentType).
		Int("size", len(bodyBytes)).
		Str("etag", result.Validators.ETag).
		Str("last_modified", result.Validators.LastModified).
		Msg("Content fetched")
	return result
}

func (f *Fetcher) fail(result PollResult, err error) PollResult {
	result.Outcome = OutcomeFetchError
	result.Err = err
	f.logger.Debug().Err(err).Int("status_code", result.StatusCode).Msg("Fetch failed")
	return result
}
