package loot

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
)

// Random is the pseudo-random source consumed by the generator.
// *rand.Rand from math/rand/v2 satisfies it.
type Random interface {
	// Float64 returns a value in [0.0, 1.0)
	Float64() float64
	// IntN returns a value in [0, n)
	IntN(n int) int
}

// NewSeededRandom returns a deterministic source for reproducible rolls
func NewSeededRandom(seed1, seed2 uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed1, seed2))
}

// NewRandom returns a PCG source seeded from crypto/rand
func NewRandom() *rand.Rand {
	var seed [16]byte
	if _, err := crand.Read(seed[:]); err != nil {
		// crypto/rand does not fail on supported platforms
		panic(err)
	}
	return NewSeededRandom(binary.LittleEndian.Uint64(seed[:8]), binary.LittleEndian.Uint64(seed[8:]))
}

// uniform returns a value in [lo, hi)
func uniform(rnd Random, lo, hi float64) float64 {
	return lo + rnd.Float64()*(hi-lo)
}
