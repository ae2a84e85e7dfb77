package scraper

import "fmt"

// RequestError reports a failed ProductHunt API call: a transport failure,
// a non-2xx status, or a GraphQL error payload. Message carries the
// semicolon-joined GraphQL error messages when present.
type RequestError struct {
	Status  int // 0 when the request never got a response
	Message string
	Err     error
}

func (e *RequestError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("producthunt request failed (status %d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("producthunt request failed: %s", e.Message)
}

func (e *RequestError) Unwrap() error { return e.Err }

// ValidationError reports invalid caller input (week number out of range,
// malformed date). It is surfaced before any network call is made.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }
