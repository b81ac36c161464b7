package apperrors

import "fmt"

// ValidationError means the request was rejected locally before any I/O.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	return e.Msg
}

func Validation(field, msg string) *ValidationError {
	return &ValidationError{Field: field, Msg: msg}
}

// BackendUnavailableError means no response was received from the issuance backend.
type BackendUnavailableError struct {
	BaseURL string
	Err     error
}

func (e *BackendUnavailableError) Error() string {
	return fmt.Sprintf("cannot connect to API server at %s, please ensure the backend is running: %v", e.BaseURL, e.Err)
}

func (e *BackendUnavailableError) Unwrap() error { return e.Err }

// RequestRejectedError carries a non-2xx answer from the issuance backend.
// Message is the backend's own message when it sent one, else the status line.
type RequestRejectedError struct {
	StatusCode int
	Message    string
}

func (e *RequestRejectedError) Error() string { return e.Message }

// PersistenceError wraps a profile store read/write failure.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("profile store %s failed: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func Persistence(op string, err error) *PersistenceError {
	return &PersistenceError{Op: op, Err: err}
}

// MalformedResponseError means the backend answered 2xx but the body did not
// contain a credential id under any known field name.
type MalformedResponseError struct {
	Detail string
}

func (e *MalformedResponseError) Error() string {
	return "malformed backend response: " + e.Detail
}
