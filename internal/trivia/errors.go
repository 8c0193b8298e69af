package trivia

import (
	"errors"
	"fmt"
)

var (
	// ErrNoResults means the source could not supply enough questions
	// for the query.
	ErrNoResults = errors.New("not enough questions for this query")

	// ErrInvalidParameter means the request parameters were rejected.
	ErrInvalidParameter = errors.New("invalid trivia parameter")

	// ErrRateLimited means too many requests were made in a short time.
	ErrRateLimited = errors.New("trivia API rate limit reached")

	// ErrMalformedResponse means the payload did not match the expected shape.
	ErrMalformedResponse = errors.New("malformed trivia response")
)

// Open Trivia DB response codes.
const (
	codeSuccess          = 0
	codeNoResults        = 1
	codeInvalidParameter = 2
	codeTokenNotFound    = 3
	codeTokenEmpty       = 4
	codeRateLimit        = 5
)

// APIError is a non-zero response_code returned by the API.
type APIError struct {
	Code int
}

func (e *APIError) Error() string {
	switch e.Code {
	case codeNoResults:
		return "trivia API: no results (code 1)"
	case codeInvalidParameter:
		return "trivia API: invalid parameter (code 2)"
	case codeTokenNotFound:
		return "trivia API: session token not found (code 3)"
	case codeTokenEmpty:
		return "trivia API: session token exhausted (code 4)"
	case codeRateLimit:
		return "trivia API: rate limited (code 5)"
	}
	return fmt.Sprintf("trivia API: response code %d", e.Code)
}

// Unwrap maps known codes onto the package sentinels so callers can use
// errors.Is without inspecting codes.
func (e *APIError) Unwrap() error {
	switch e.Code {
	case codeNoResults, codeTokenEmpty:
		return ErrNoResults
	case codeInvalidParameter:
		return ErrInvalidParameter
	case codeRateLimit:
		return ErrRateLimited
	}
	return nil
}

// HTTPError is a non-200 HTTP status from the API.
type HTTPError struct {
	StatusCode int
	URL        string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d for %s", e.StatusCode, e.URL)
}
