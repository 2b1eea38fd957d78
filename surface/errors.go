package surface

import (
	"errors"
	"fmt"
)

var (
	// ErrConstruction: malformed grid at build time.
	ErrConstruction = errors.New("construction error")
	// ErrValidation: inconsistent calibration inputs.
	ErrValidation = errors.New("validation error")
	// ErrDomain: query outside the region where extrapolation is disallowed.
	ErrDomain = errors.New("domain error")
	// ErrNotSupported: unrecognised surface kind or missing capability.
	ErrNotSupported = errors.New("not supported")
	// ErrCalibration: the nonlinear solve produced no feasible parameters.
	ErrCalibration = errors.New("calibration error")
)

// Error carries the failing operation along with one of the sentinel kinds
// above, so callers can test with errors.Is.
type Error struct {
	Kind error
	Op   string
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v: %s", e.Op, e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Kind }

// Errorf builds an *Error of the given kind.
func Errorf(kind error, op, format string, args ...interface{}) error {
	return &Error{Kind: kind, Op: op, Msg: fmt.Sprintf(format, args...)}
}
