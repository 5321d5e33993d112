package termfilter

import (
	"errors"
	"fmt"
)

var (
	// ErrNilFilter is returned when Evaluate is called without a filter.
	ErrNilFilter = errors.New("termfilter: nil filter")
	// ErrNilReader is returned when Evaluate is called without a reader.
	ErrNilReader = errors.New("termfilter: nil reader")
)

// EvaluationError reports a reader failure while evaluating a filter.
//
// The reader's error can be accessed via errors.Unwrap, so errors.Is and
// errors.As see through it.
type EvaluationError struct {
	// Filter is the string form of the filter.
	Filter string
	// Segment is the identity of the failing segment, or 0 if the reader
	// has none.
	Segment uint64
	cause   error
}

func (e *EvaluationError) Error() string {
	if e.Segment == 0 {
		return fmt.Sprintf("evaluate %s: %v", e.Filter, e.cause)
	}
	return fmt.Sprintf("evaluate %s on segment %d: %v", e.Filter, e.Segment, e.cause)
}

func (e *EvaluationError) Unwrap() error { return e.cause }
