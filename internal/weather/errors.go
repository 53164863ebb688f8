package weather

import (
	"errors"
	"fmt"
)

// ErrInvalidInput marks caller mistakes: an inverted date range, an empty
// site catalog, and the like.
var ErrInvalidInput = errors.New("invalid input")

// UpstreamError reports a protocol-level failure talking to the weather
// provider: a non-2xx status, a transport error, or an open circuit.
type UpstreamError struct {
	// StatusCode is the HTTP status, or 0 when the failure happened before
	// any response arrived.
	StatusCode  int
	BodyExcerpt string
	Err         error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("weather provider returned HTTP %d: %s", e.StatusCode, e.BodyExcerpt)
	}
	return fmt.Sprintf("weather provider request failed: %v", e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// MalformedResponseError reports a provider response body that could not be
// interpreted as the expected structured format.
type MalformedResponseError struct {
	Detail string
	Err    error
}

func (e *MalformedResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed weather provider response: %s: %v", e.Detail, e.Err)
	}
	return fmt.Sprintf("malformed weather provider response: %s", e.Detail)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }
