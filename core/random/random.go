// Package random provides an explicitly seeded source of random vectors used
// to initialize model parameters. There is no package-level generator: two
// Sources built from the same seed always produce the same sequence.
package random

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/YuminosukeSato/descent/core/vector"
)

// Source is a seeded PCG generator. It is not safe for concurrent use.
type Source struct {
	seed uint64
	src  *rand.PCG
}

// New returns a Source seeded with seed.
func New(seed uint64) *Source {
	return &Source{seed: seed, src: rand.NewPCG(seed, seed)}
}

// Seed returns the seed the Source was created with.
func (s *Source) Seed() uint64 {
	return s.seed
}

// Uniform returns a vector of dim values drawn independently and uniformly
// from [lo, hi]. Reversed bounds are swapped.
func (s *Source) Uniform(dim int, lo, hi float64) vector.Vector {
	if lo > hi {
		lo, hi = hi, lo
	}
	dist := distuv.Uniform{Min: lo, Max: hi, Src: s.src}
	out := vector.New(dim)
	for i := range out {
		out[i] = dist.Rand()
	}
	return out
}

// UniformScalar returns one value drawn uniformly from [lo, hi].
func (s *Source) UniformScalar(lo, hi float64) float64 {
	if lo > hi {
		lo, hi = hi, lo
	}
	return distuv.Uniform{Min: lo, Max: hi, Src: s.src}.Rand()
}

// Normal returns one value drawn from N(mean, stddev²).
func (s *Source) Normal(mean, stddev float64) float64 {
	return distuv.Normal{Mu: mean, Sigma: stddev, Src: s.src}.Rand()
}
