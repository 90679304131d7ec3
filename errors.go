package upstage

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

type ErrorKind string

const (
	KindValidation ErrorKind = "validation"
	KindTransport  ErrorKind = "transport"
	KindShape      ErrorKind = "shape"
	KindUnknown    ErrorKind = "unknown"
)

var (
	// ErrValidation marks errors raised from parameters or inputs, before any
	// request was sent.
	ErrValidation = errors.New("validation error")
	// ErrTransport marks network failures and non-2xx responses.
	ErrTransport = errors.New("transport error")
	// ErrShape marks responses that do not have the expected structure.
	ErrShape = errors.New("unexpected response shape")
)

// TransportError is returned when the Upstage API responds with a non-2xx
// status.
type TransportError struct {
	StatusCode int
	Body       string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("Upstage API error: %d - %s", e.StatusCode, e.Body)
}

func Validationf(format string, args ...any) error {
	return errors.Mark(errors.Newf(format, args...), ErrValidation)
}

func Shapef(format string, args ...any) error {
	return errors.Mark(errors.Newf(format, args...), ErrShape)
}

// Validation marks an existing error as a validation failure.
func Validation(err error) error {
	return errors.Mark(err, ErrValidation)
}

// Kind reports which class of failure an error belongs to.
func Kind(err error) ErrorKind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrTransport):
		return KindTransport
	case errors.Is(err, ErrShape):
		return KindShape
	default:
		return KindUnknown
	}
}
