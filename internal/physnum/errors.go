package physnum

import (
	"errors"
	"fmt"
)

// Domain errors for arithmetic on measured quantities.
var (
	// ErrType indicates an argument that is not a recognised numeric value or Number.
	ErrType = errors.New("physnum: not a numeric type")

	// ErrDimensionMismatch indicates operands measuring different quantities (mass + time).
	ErrDimensionMismatch = errors.New("physnum: dimension mismatch")

	// ErrDivisionByZero indicates a divide, right-divide or invert by a zero value.
	ErrDivisionByZero = errors.New("physnum: division by zero")

	// ErrUnsupportedPower indicates a non-integer exponent.
	ErrUnsupportedPower = errors.New("physnum: only integer powers are supported")

	// ErrNegativeUncertainty indicates a construction with uncertainty below zero.
	ErrNegativeUncertainty = errors.New("physnum: uncertainty must not be negative")
)

// OpError wraps an error with the operation that produced it.
type OpError struct {
	Op      string
	Wrapped error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Wrapped)
}

func (e *OpError) Unwrap() error {
	return e.Wrapped
}

func opErr(op string, err error) error {
	return &OpError{Op: op, Wrapped: err}
}
