package model

import "fmt"

// InvalidGridError means the bin boundaries can not define a usable
// partition of the observation window.
type InvalidGridError struct {
	Reason string
}

func (e *InvalidGridError) Error() string {
	return fmt.Sprintf("Invalid grid: %s", e.Reason)
}

// InvalidObservationError means an event time violates the input
// contract: times must be sorted ascending and lie inside [T0, T].
type InvalidObservationError struct {
	Index  int
	Value  float64
	Reason string
}

func (e *InvalidObservationError) Error() string {
	return fmt.Sprintf("Invalid observation at index %d (%v): %s", e.Index, e.Value, e.Reason)
}

// InvalidParameterError means a configuration value is outside its
// legal domain. Name is the parameter as the caller knows it.
type InvalidParameterError struct {
	Name   string
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("Invalid parameter %s: %s", e.Name, e.Reason)
}

// NumericDegeneracyError means a full conditional collapsed to a
// non-positive or non-finite shape/rate during sampling. The run halts
// rather than clamping.
type NumericDegeneracyError struct {
	Iteration int
	Bin       int
	Quantity  string
	Shape     float64
	Rate      float64
}

func (e *NumericDegeneracyError) Error() string {
	return fmt.Sprintf("Degenerate %s full conditional at iteration %d, bin %d: shape=%v rate=%v",
		e.Quantity, e.Iteration, e.Bin, e.Shape, e.Rate)
}

// InsufficientSamplesError means too few retained iterations remain
// after burn-in for the requested summary.
type InsufficientSamplesError struct {
	Have int
	Need int
}

func (e *InsufficientSamplesError) Error() string {
	return fmt.Sprintf("Insufficient retained samples: have %d, need at least %d", e.Have, e.Need)
}
