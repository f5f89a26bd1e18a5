package particles

import (
	"math/rand/v2"
)

// Random yields uniform samples in [0,1).
type Random interface {
	Float32() float32
}

// RandomSource is a seedable PCG generator. Two sources with the same seed produce the same
// stream.
type RandomSource struct {
	rng *rand.Rand
}

func NewRandomSource(seed uint64) *RandomSource {
	return &RandomSource{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (r *RandomSource) Float32() float32 {
	return r.rng.Float32()
}

// Uniform draws from [lo, hi). Swapped bounds are fine, the result then lies in (hi, lo].
func Uniform(r Random, lo, hi float32) float32 {
	return lo + r.Float32()*(hi-lo)
}
