package api

import (
	"errors"
	"fmt"
)

var (
	// ErrRateLimited signals an HTTP 429 response. The invoker retries these
	// indefinitely; callers never observe this error through Invoke.
	ErrRateLimited = errors.New("remote rate limit hit")

	// ErrNotFound signals that the requested entity does not exist remotely.
	// Callers are expected to fold this into "dead"/"absent" handling rather
	// than report it.
	ErrNotFound = errors.New("remote entity not found")
)

// StatusError is returned for any non-2xx response that is not a rate limit
// or a not-found. It propagates unmodified up to the top-level command.
type StatusError struct {
	Code   int
	Method string
	Path   string
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d: %s", e.Method, e.Path, e.Code, e.Body)
}

// IsServerError reports whether err is a 5xx StatusError. Used by callers
// that treat server failures on a specific fetch as an empty result
// (e.g. dead conversations during a message wipe).
func IsServerError(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code >= 500
}
