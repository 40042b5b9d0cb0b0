package client

import (
	"errors"
	"fmt"
)

var (
	ErrUnavailable     = errors.New("server unavailable")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrAlreadyExists   = errors.New("already exists")
	ErrBadRequest      = errors.New("bad request")
	ErrNoSavedSession  = errors.New("no saved session")
	ErrUnexpectedReply = errors.New("unexpected server reply")
)

// FieldError is one rejected request field, as reported by the server.
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// APIError carries a non-2xx response. It unwraps to the sentinel matching
// its status so callers can use errors.Is.
type APIError struct {
	Status  int
	Message string
	Fields  []FieldError
	kind    error
}

func (e *APIError) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("%d: %s", e.Status, e.Message)
	}
	msg := fmt.Sprintf("%d: %s", e.Status, e.Message)
	for _, f := range e.Fields {
		msg += "; " + f.Message
	}
	return msg
}

func (e *APIError) Unwrap() error { return e.kind }
