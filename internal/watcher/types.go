package watcher

import "time"

// Validators are the cache validators from the most recent 200 response.
// An empty string means the server did not send the header.
type Validators struct {
	ETag         string
	LastModified string
}

// IsEmpty reports whether neither validator is cached.
func (v Validators) IsEmpty() bool {
	return v.ETag == "" && v.LastModified == ""
}

// PollState gates the one-time startup notification.
type PollState int

const (
	StateStarting PollState = iota
	StateRunning
)

func (s PollState) String() string {
	switch s {
	case StateStarting:
		return "starting"
	case StateRunning:
		return "running"
	default:
		return "unknown"
	}
}

// Outcome classifies a single conditional fetch.
type Outcome int

const (
	OutcomeUnchanged Outcome = iota
	OutcomeChanged
	OutcomeFetchError
)

func (o Outcome) String() string {
	switch o {
	case OutcomeUnchanged:
		return "unchanged"
	case OutcomeChanged:
		return "changed"
	case OutcomeFetchError:
		return "error"
	default:
		return "unknown"
	}
}

// PollResult is what PollOnce observed.
type PollResult struct {
	Outcome Outcome
	// Validators holds the validators to use for the next request. For
	// OutcomeUnchanged and OutcomeFetchError they are the ones that were sent.
	Validators  Validators
	StatusCode  int
	ContentType string
	Body        []byte
	// Err is a *common.NetworkError or *common.HTTPError for OutcomeFetchError.
	Err       error
	CheckedAt time.Time
}

// Reason says why a notification is sent.
type Reason int

const (
	ReasonStartup Reason = iota
	ReasonChanged
	ReasonError
	ReasonExiting
)

func (r Reason) String() string {
	switch r {
	case ReasonStartup:
		return "startup"
	case ReasonChanged:
		return "changed"
	case ReasonError:
		return "error"
	case ReasonExiting:
		return "exiting"
	default:
		return "unknown"
	}
}

// NotificationEvent is built per trigger and handed to the Notifier.
type NotificationEvent struct {
	Reason  Reason
	Message string
}
