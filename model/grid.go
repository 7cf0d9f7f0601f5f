package model

// A Grid partitions the observation window [T0, T] into contiguous
// bins. Boundaries are strictly increasing; bin k spans
// [Bound(k), Bound(k+1)), except the final bin which also includes its
// right endpoint so that an event at exactly T is never lost. A Grid is
// immutable once built.
type Grid struct {
	bounds []float64
}

// NewGrid builds a grid from explicit bin boundaries. The slice is
// copied, must hold at least two points, and must be strictly
// increasing.
func NewGrid(bounds []float64) (*Grid, error) {
	if len(bounds) < 2 {
		return nil, &InvalidGridError{Reason: "need at least two boundaries"}
	}
	for i := 1; i < len(bounds); i++ {
		if !(bounds[i] > bounds[i-1]) {
			return nil, &InvalidGridError{Reason: "boundaries must be strictly increasing"}
		}
	}

	own := make([]float64, len(bounds))
	copy(own, bounds)
	return &Grid{bounds: own}, nil
}

// UniformGrid builds a grid of n equal-width bins over [t0, t].
func UniformGrid(t0, t float64, n int) (*Grid, error) {
	if n < 1 {
		return nil, &InvalidParameterError{Name: "N", Reason: "bin count must be at least 1"}
	}
	if !(t > t0) {
		return nil, &InvalidGridError{Reason: "window end must exceed window start"}
	}

	bounds := make([]float64, n+1)
	width := (t - t0) / float64(n)
	for i := 0; i <= n; i++ {
		bounds[i] = t0 + width*float64(i)
	}
	// Pin the last boundary so the top of the window is exact even when
	// the increments do not divide evenly in floating point.
	bounds[n] = t

	return NewGrid(bounds)
}

// Bins returns the number of bins.
func (g *Grid) Bins() int {
	return len(g.bounds) - 1
}

// T0 returns the left edge of the observation window.
func (g *Grid) T0() float64 {
	return g.bounds[0]
}

// T returns the right edge of the observation window.
func (g *Grid) T() float64 {
	return g.bounds[len(g.bounds)-1]
}

// Bound returns boundary i (0 <= i <= Bins).
func (g *Grid) Bound(i int) float64 {
	return g.bounds[i]
}

// Bounds returns a copy of all bin boundaries.
func (g *Grid) Bounds() []float64 {
	out := make([]float64, len(g.bounds))
	copy(out, g.bounds)
	return out
}

// Widths returns the width of every bin.
func (g *Grid) Widths() []float64 {
	out := make([]float64, g.Bins())
	for i := range out {
		out[i] = g.bounds[i+1] - g.bounds[i]
	}
	return out
}
