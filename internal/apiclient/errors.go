package apiclient

import (
	"errors"
	"fmt"
)

// NetworkError means the request never produced a usable response: the
// service was unreachable, the connection broke, or a success body could not
// be decoded.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: network error: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// APIError means the service answered with a non-2xx status. Message is the
// body's "error" field, or the operation's default text when absent.
type APIError struct {
	Op         string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: status %d: %s", e.Op, e.StatusCode, e.Message)
}

// Default messages used when a failure response has no "error" field.
const (
	MsgRegistrationFailed = "Registration failed"
	MsgLoginFailed        = "Login failed"
	MsgLoadTasksFailed    = "Failed to load tasks"
	MsgSaveTaskFailed     = "Failed to save task"
	MsgDeleteTaskFailed   = "Failed to delete task"
)

// IsNetwork reports whether err is (or wraps) a *NetworkError.
func IsNetwork(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

// UserMessage picks the text to show for err: the API's own message for an
// *APIError, networkFallback for anything else.
func UserMessage(err error, networkFallback string) string {
	var ae *APIError
	if errors.As(err, &ae) && ae.Message != "" {
		return ae.Message
	}
	return networkFallback
}
