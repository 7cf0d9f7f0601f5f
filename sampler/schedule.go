package sampler

import "github.com/ppistat/poisample/model"

// A Schedule selects which iterations of a run are retained as
// posterior samples. Iterations are numbered from 1; the run executes
// through the last retained iteration and no further. Start/Stop/Stride
// behave like an inclusive slice: Start, Start+Stride, ... up to Stop.
type Schedule struct {
	Start  int
	Stop   int
	Stride int
}

// EveryIteration retains every iteration from start through stop.
func EveryIteration(start, stop int) Schedule {
	return Schedule{Start: start, Stop: stop, Stride: 1}
}

// Check insures the schedule retains at least one iteration.
func (s Schedule) Check() error {
	if s.Start < 1 {
		return &model.InvalidParameterError{Name: "samples.start", Reason: "iterations are numbered from 1"}
	}
	if s.Stop < s.Start {
		return &model.InvalidParameterError{Name: "samples.stop", Reason: "must not precede start"}
	}
	if s.Stride < 1 {
		return &model.InvalidParameterError{Name: "samples.stride", Reason: "must be at least 1"}
	}
	return nil
}

// Contains reports whether iteration i is retained.
func (s Schedule) Contains(i int) bool {
	return i >= s.Start && i <= s.Stop && (i-s.Start)%s.Stride == 0
}

// Last returns the final retained iteration, which is also the total
// number of iterations a run must execute.
func (s Schedule) Last() int {
	return s.Start + ((s.Stop-s.Start)/s.Stride)*s.Stride
}

// Count returns how many iterations the schedule retains.
func (s Schedule) Count() int {
	return (s.Last()-s.Start)/s.Stride + 1
}
