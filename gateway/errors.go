package gateway

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrRemoteUnavailable is the class of every gateway failure: transport errors,
// non-2xx statuses and undecodable bodies all match it with errors.Is.
var ErrRemoteUnavailable = errors.New("remote unavailable")

// StatusError carries the user-facing message for a failed remote call.
// Status is zero for transport failures.
type StatusError struct {
	Status  int
	Message string
	Err     error
}

func (e *StatusError) Error() string {
	return e.Message
}

func (e *StatusError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrRemoteUnavailable, e.Err}
	}
	return []error{ErrRemoteUnavailable}
}

// NotFound reports whether the remote answered 404.
func (e *StatusError) NotFound() bool {
	return e.Status == http.StatusNotFound
}

// newStatusError maps an HTTP status to the fixed message taxonomy.
func newStatusError(status int, detail string) *StatusError {
	var msg string
	switch status {
	case http.StatusBadRequest:
		msg = "Bad Request: Please check your input"
	case http.StatusUnauthorized:
		msg = "Unauthorized: Please login again"
	case http.StatusForbidden:
		msg = "Forbidden: You do not have permission"
	case http.StatusNotFound:
		msg = "Not Found: Resource does not exist"
	case http.StatusInternalServerError:
		msg = "Server Error: Please try again later"
	default:
		if detail == "" {
			detail = http.StatusText(status)
		}
		msg = fmt.Sprintf("Server Error (%d): %s", status, detail)
	}
	return &StatusError{Status: status, Message: msg}
}

func newTransportError(err error) *StatusError {
	return &StatusError{Message: "Client Error: " + err.Error(), Err: err}
}
