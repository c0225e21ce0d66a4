package mlservice

import (
	"errors"
	"fmt"
)

// Failure kinds of a gateway call. Every error returned by the client
// matches exactly one of them with errors.Is.
var (
	ErrNotConfigured = errors.New("recommender not configured")
	ErrTimeout       = errors.New("recommender request timed out")
	ErrUnreachable   = errors.New("recommender unreachable")
	ErrBadStatus     = errors.New("recommender responded with non-2xx status")
	ErrBadResponse   = errors.New("recommender response is malformed")
)

type GatewayError struct {
	Kind   error
	Path   string
	Status int
	Err    error
}

func (e *GatewayError) Error() string {
	msg := e.Kind.Error()
	if e.Path != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Path)
	}
	if e.Status != 0 {
		msg = fmt.Sprintf("%s: status %d", msg, e.Status)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *GatewayError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Reason is the metric/log label of the failure kind.
func (e *GatewayError) Reason() string {
	return kindLabel(e.Kind)
}

func kindLabel(kind error) string {
	switch kind {
	case ErrNotConfigured:
		return "not_configured"
	case ErrTimeout:
		return "timeout"
	case ErrUnreachable:
		return "unreachable"
	case ErrBadStatus:
		return "bad_status"
	case ErrBadResponse:
		return "bad_response"
	default:
		return "error"
	}
}

func newError(kind error, path string, status int, err error) *GatewayError {
	return &GatewayError{Kind: kind, Path: path, Status: status, Err: err}
}
