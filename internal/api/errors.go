package api

import "errors"

// ErrUnavailable marks transport-level failures: the request never
// produced a response (connection refused, timeout, DNS).
var ErrUnavailable = errors.New("server unavailable")

// Error is a failure the server itself reported: an HTTP error status
// with a message extracted from the body, or an HTML error page mapped
// to a human-readable message.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}
