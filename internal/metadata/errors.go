package metadata

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidKind = errors.New("unsupported media type")
	ErrInvalidID   = errors.New("invalid id")
)

// AggregationError is returned when a record cannot be built at all. Error
// returns a message fit for end users; the cause stays reachable through
// errors.Is and errors.As.
type AggregationError struct {
	ID      int
	Kind    MediaKind
	Message string
	Err     error
}

func (e *AggregationError) Error() string { return e.Message }

func (e *AggregationError) Unwrap() error { return e.Err }

// Retryable reports whether asking again may succeed. Bad input never will.
func (e *AggregationError) Retryable() bool {
	return !errors.Is(e.Err, ErrInvalidKind) && !errors.Is(e.Err, ErrInvalidID)
}

func newAggregationError(id int, kind MediaKind, err error) *AggregationError {
	msg := "Failed to fetch movie data. Please try again."
	switch {
	case errors.Is(err, ErrInvalidKind):
		msg = fmt.Sprintf("Unsupported media type %q.", string(kind))
	case errors.Is(err, ErrInvalidID):
		msg = "Invalid media id."
	case kind == KindSeries:
		msg = "Failed to fetch TV show data. Please try again."
	}
	return &AggregationError{ID: id, Kind: kind, Message: msg, Err: err}
}
