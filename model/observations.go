package model

import "math"

// Observations is the pooled, ascending list of event times from one or
// more realizations of a point process on a common window. When nAgg
// independent realizations were aggregated, their times are merged into
// a single sorted slice.
type Observations []float64

// Validate checks the input contract against a window: every time must
// be finite, inside [t0, t], and the slice must be sorted ascending.
// The first violation is reported.
func (o Observations) Validate(t0, t float64) error {
	for i, x := range o {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return &InvalidObservationError{Index: i, Value: x, Reason: "event time must be finite"}
		}
		if x < t0 || x > t {
			return &InvalidObservationError{Index: i, Value: x, Reason: "event time outside the observation window"}
		}
		if i > 0 && x < o[i-1] {
			return &InvalidObservationError{Index: i, Value: x, Reason: "event times must be sorted ascending"}
		}
	}
	return nil
}

// Max returns the largest event time, or 0 for an empty slice. Handy
// for deriving a default window end. The full slice is scanned so the
// answer is right even before sortedness has been checked.
func (o Observations) Max() float64 {
	m := 0.0
	for i, x := range o {
		if i == 0 || x > m {
			m = x
		}
	}
	return m
}
