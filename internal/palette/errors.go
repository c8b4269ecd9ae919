package palette

import (
	"errors"
	"fmt"
)

var (
	ErrFetchFailed   = errors.New("fetching index failed")
	ErrURLResolution = errors.New("resolving target url failed")
	ErrNoSelection   = errors.New("no active selection")
)

// EventKind classifies recoverable failures. None of them interrupt the
// overlay.
type EventKind int

const (
	FetchFailure EventKind = iota
	URLResolutionFailure
	NoActiveSelection
)

func (k EventKind) String() string {
	switch k {
	case FetchFailure:
		return "fetch-failure"
	case URLResolutionFailure:
		return "url-resolution-failure"
	case NoActiveSelection:
		return "no-active-selection"
	default:
		return "unknown"
	}
}

// Event is reported to observers for telemetry and logging.
type Event struct {
	Kind   EventKind
	Err    error
	Detail string
}

func (e Event) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s (%s): %v", e.Kind, e.Detail, e.Err)
}

func (e Event) Unwrap() error { return e.Err }

// NewFetchFailure wraps err so that errors.Is(ev, ErrFetchFailed) holds.
func NewFetchFailure(err error) Event {
	return Event{Kind: FetchFailure, Err: fmt.Errorf("%w: %w", ErrFetchFailed, err)}
}

func NewURLResolutionFailure(url string, err error) Event {
	return Event{Kind: URLResolutionFailure, Err: fmt.Errorf("%w: %w", ErrURLResolution, err), Detail: url}
}
