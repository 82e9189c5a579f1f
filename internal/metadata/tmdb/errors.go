package tmdb

import (
	"errors"
	"fmt"
)

var (
	ErrAPIKeyMissing = errors.New("TMDB API key is not configured")
	ErrNotFound      = errors.New("not found on TMDB")
	ErrAPIError      = errors.New("TMDB API error")
	ErrRateLimited   = errors.New("TMDB API rate limited")
)

// UpstreamError reports a failed call the aggregation cannot proceed without:
// a non-success status, a transport failure or an unparseable body.
type UpstreamError struct {
	Provider   string
	Op         string
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s %s: status %d: %v", e.Provider, e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Provider, e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

func upstreamErr(op string, status int, err error) *UpstreamError {
	return &UpstreamError{Provider: "tmdb", Op: op, StatusCode: status, Err: err}
}
