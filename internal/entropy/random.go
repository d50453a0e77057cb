// Package entropy provides the engine's randomness as an injected
// capability. Every probabilistic draw in the simulation routes through a
// Source, so a whole game is reproducible from a seed — the balance harness
// depends on (seed, action list) → identical outcomes.
package entropy

import (
	"crypto/rand"
	"encoding/binary"
	mathrand "math/rand"
)

// Source is the draw interface threaded through every engine operation.
type Source interface {
	// Float returns a uniform float64 in [0, 1).
	Float() float64
	// IntN returns a uniform integer in [lo, hi] inclusive. lo > hi panics.
	IntN(lo, hi int) int
	// Chance runs a Bernoulli trial with probability p.
	Chance(p float64) bool
}

// Seeded is the standard Source: a plain seeded PRNG.
type Seeded struct {
	rng *mathrand.Rand
}

// NewSeeded creates a deterministic source from a seed.
func NewSeeded(seed int64) *Seeded {
	return &Seeded{rng: mathrand.New(mathrand.NewSource(seed))}
}

func (s *Seeded) Float() float64 { return s.rng.Float64() }

func (s *Seeded) IntN(lo, hi int) int {
	if lo > hi {
		panic("entropy: IntN with lo > hi")
	}
	return lo + s.rng.Intn(hi-lo+1)
}

func (s *Seeded) Chance(p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return s.rng.Float64() < p
}

// NewSystem creates a source seeded from the operating system's entropy,
// for interactive play where reproducibility doesn't matter.
func NewSystem() *Seeded {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// Never expected; a fixed seed beats failing to start.
		return NewSeeded(1)
	}
	return NewSeeded(int64(binary.LittleEndian.Uint64(buf[:])))
}

// Fixed is a test Source that replays scripted draws. Float values come
// from Floats in order, repeating the last when exhausted. IntN returns
// values from Ints clamped into range, or lo when exhausted. Chance
// compares the next Float against p.
type Fixed struct {
	Floats []float64
	Ints   []int

	fi, ii int
}

func (f *Fixed) Float() float64 {
	if len(f.Floats) == 0 {
		return 0.5
	}
	if f.fi >= len(f.Floats) {
		return f.Floats[len(f.Floats)-1]
	}
	v := f.Floats[f.fi]
	f.fi++
	return v
}

func (f *Fixed) IntN(lo, hi int) int {
	if f.ii < len(f.Ints) {
		v := f.Ints[f.ii]
		f.ii++
		if v < lo {
			return lo
		}
		if v > hi {
			return hi
		}
		return v
	}
	return lo
}

func (f *Fixed) Chance(p float64) bool {
	return f.Float() < p
}
