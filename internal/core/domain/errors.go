package domain

import "errors"

var (
	ErrUnauthenticated = errors.New("not authenticated")
	ErrSessionNotFound = errors.New("session not found")
	ErrForbidden       = errors.New("access forbidden")
	ErrNotFound        = errors.New("not found")
)

// BackendError is a request the backend rejected with a message payload.
type BackendError struct {
	StatusCode int
	Message    string
}

func (e *BackendError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "backend request failed"
}

// ErrorMessage extracts the backend-provided message from err when present,
// falling back to the given generic message otherwise. Transport failures
// and messageless rejections take the same fallback path.
func ErrorMessage(err error, fallback string) string {
	var be *BackendError
	if errors.As(err, &be) && be.Message != "" {
		return be.Message
	}
	return fallback
}
