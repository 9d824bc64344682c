package common

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapError(t *testing.T) {
	tests := []struct {
		name            string
		originalError   error
		message         string
		expectedMessage string
	}{
		{
			name:            "wrap simple error",
			originalError:   errors.New("original error"),
			message:         "wrapper message",
			expectedMessage: "wrapper message: original error",
		},
		{
			name:            "empty wrapper message",
			originalError:   errors.New("original error"),
			message:         "",
			expectedMessage: ": original error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrappedError := WrapError(tt.originalError, tt.message)
			assert.Error(t, wrappedError)
			assert.Equal(t, tt.expectedMessage, wrappedError.Error())
			assert.ErrorIs(t, wrappedError, tt.originalError)
		})
	}

	t.Run("wrap nil error", func(t *testing.T) {
		assert.NoError(t, WrapError(nil, "wrapper message"))
		assert.NoError(t, WrapErrorf(nil, "wrapper %d", 1))
	})
}

func TestWrapErrorf(t *testing.T) {
	base := errors.New("boom")
	err := WrapErrorf(base, "reading %s", "urlwatch.json")

	assert.Equal(t, "reading urlwatch.json: boom", err.Error())
	assert.ErrorIs(t, err, base)
}

func TestNewError(t *testing.T) {
	tests := []struct {
		name            string
		format          string
		args            []interface{}
		expectedMessage string
	}{
		{
			name:            "simple message",
			format:          "simple error message",
			args:            nil,
			expectedMessage: "simple error message",
		},
		{
			name:            "formatted message",
			format:          "error with value: %d",
			args:            []interface{}{42},
			expectedMessage: "error with value: 42",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewError(tt.format, tt.args...)
			assert.Error(t, err)
			assert.Equal(t, tt.expectedMessage, err.Error())
		})
	}
}

func TestValidationError(t *testing.T) {
	validationErr := NewValidationError("notification", nil, "command must not be empty")

	assert.Equal(t, "validation failed for field 'notification': command must not be empty (value: <nil>)", validationErr.Error())
	assert.Equal(t, "notification", validationErr.Field)
}

func TestConfigurationError(t *testing.T) {
	tests := []struct {
		name     string
		err      *ConfigurationError
		expected string
	}{
		{
			name:     "section and field",
			err:      NewConfigurationError("watch_config", "check_interval_seconds", "must be positive"),
			expected: "configuration error in section 'watch_config', field 'check_interval_seconds': must be positive",
		},
		{
			name:     "section only",
			err:      NewConfigurationError("log_config", "", "bad level"),
			expected: "configuration error in section 'log_config': bad level",
		},
		{
			name:     "reason only",
			err:      NewConfigurationError("", "", "config file not found"),
			expected: "configuration error: config file not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestNetworkError(t *testing.T) {
	tests := []struct {
		name            string
		url             string
		reason          string
		wrappedError    error
		expectedMessage string
	}{
		{
			name:            "simple network error",
			url:             "https://example.com",
			reason:          "connection timeout",
			wrappedError:    nil,
			expectedMessage: "network error for 'https://example.com': connection timeout",
		},
		{
			name:            "network error with wrapped error",
			url:             "https://api.example.com/data",
			reason:          "DNS resolution failed",
			wrappedError:    errors.New("no such host"),
			expectedMessage: "network error for 'https://api.example.com/data': DNS resolution failed: no such host",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			networkErr := NewNetworkError(tt.url, tt.reason, tt.wrappedError)

			assert.Equal(t, tt.expectedMessage, networkErr.Error())
			assert.Equal(t, tt.wrappedError, networkErr.Unwrap())
		})
	}
}

func TestNetworkError_Timeout(t *testing.T) {
	assert.True(t, NewNetworkError("u", "request failed", context.DeadlineExceeded).Timeout())
	assert.True(t, NewNetworkError("u", "request failed", fmt.Errorf("client: %w", ErrTimeout)).Timeout())
	assert.False(t, NewNetworkError("u", "request failed", errors.New("connection refused")).Timeout())
	assert.False(t, NewNetworkError("u", "request failed", nil).Timeout())
}

func TestHTTPError(t *testing.T) {
	httpErr := NewHTTPErrorWithURL(http.StatusNotFound, "Not Found", "https://example.com/page")
	assert.Equal(t, "HTTP 404 error for 'https://example.com/page': Not Found", httpErr.Error())

	bare := NewHTTPError(http.StatusInternalServerError, "Internal Server Error")
	assert.Equal(t, "HTTP 500 error: Internal Server Error", bare.Error())
}

func TestErrorChaining(t *testing.T) {
	originalErr := errors.New("connection refused")
	networkErr := NewNetworkError("https://example.com", "HTTP request failed", originalErr)
	wrappedErr := WrapError(networkErr, "poll failed")

	assert.Contains(t, wrappedErr.Error(), "poll failed")
	assert.Contains(t, wrappedErr.Error(), "network error")

	var netErr *NetworkError
	assert.True(t, errors.As(wrappedErr, &netErr))
	assert.Equal(t, "https://example.com", netErr.URL)
	assert.Equal(t, originalErr, GetRootCause(wrappedErr))

	var hErr *HTTPError
	assert.False(t, errors.As(wrappedErr, &hErr))
}
