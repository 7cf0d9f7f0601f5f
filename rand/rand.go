package rand

import (
	mrand "math/rand/v2"

	"github.com/pkg/errors"
	"github.com/seehuhn/mt19937"
)

// A Generator is a seeded Mersenne Twister (mt19937-64) stream. Every
// sampling run owns exactly one Generator and draws from it in a fixed
// order, so runs with the same seed replay bit for bit. A Generator is
// NOT safe for concurrent use: parallel chains each get their own.
type Generator struct {
	mt *mt19937.MT19937
}

// Compile-time check: a Generator can act as the random source for the
// gonum distribution samplers.
var _ mrand.Source = (*Generator)(nil)

// NewGenerator returns a new PRNG stream based on the given seed.
func NewGenerator(seed int64) *Generator {
	mt := mt19937.New()
	mt.Seed(seed)
	return &Generator{mt: mt}
}

// NewGeneratorSlice returns a new PRNG stream seeded from an entire key
// slice (the classical mt19937 init_by_array seeding).
func NewGeneratorSlice(key []uint64) (*Generator, error) {
	if len(key) < 1 {
		return nil, errors.Errorf("Can not seed a generator from an empty key")
	}

	mt := mt19937.New()
	mt.SeedFromSlice(key)
	return &Generator{mt: mt}, nil
}

// Uint64 returns the next raw 64-bit word from the stream.
func (g *Generator) Uint64() uint64 {
	return g.mt.Uint64()
}

// Int63 provides the same interface as Go's math/rand.
func (g *Generator) Int63() int64 {
	return g.mt.Int63()
}

// Int63n is a copy of the current Go code
func (g *Generator) Int63n(n int64) int64 {
	if n <= 0 {
		panic("invalid argument to Int63n")
	}

	if n&(n-1) == 0 { // n is power of two, can mask
		return g.Int63() & (n - 1)
	}

	max := int64((1 << 63) - 1 - (1<<63)%uint64(n))
	v := g.Int63()
	for v > max {
		v = g.Int63()
	}

	return v % n
}

// Float64 uses the commented, simpler implementation since we don't have
// the same support requirements for users
func (g *Generator) Float64() float64 {
	// See the Go lang comments for Rand Float64 implementation for details
	return float64(g.Int63n(1<<53)) / (1 << 53)
}
