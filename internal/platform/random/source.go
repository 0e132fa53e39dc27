// Package random provides the seedable randomness capability injected
// into every simulation function so that matches are replayable.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"math/rand"
)

// Source is the randomness surface the simulation draws from. All
// simulation decisions go through a Source so a fixed seed replays a
// match exactly.
type Source interface {
	// Float64 returns a uniform variate in [0, 1).
	Float64() float64
	// Intn returns a uniform integer in [0, n). n must be positive.
	Intn(n int) int
	// Fork derives an independent child source from a label. Two forks
	// with the same label off the same parent produce identical streams.
	Fork(label string) Source
}

type seeded struct {
	seed int64
	rng  *rand.Rand
}

// NewSeeded returns a deterministic Source for the given seed.
func NewSeeded(seed int64) Source {
	return &seeded{seed: seed, rng: rand.New(rand.NewSource(seed))}
}

// New returns a Source seeded from crypto/rand.
func New() (Source, error) {
	seed, err := NewSeed()
	if err != nil {
		return nil, err
	}
	return NewSeeded(seed), nil
}

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}

	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

func (s *seeded) Float64() float64 { return s.rng.Float64() }

func (s *seeded) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return s.rng.Intn(n)
}

func (s *seeded) Fork(label string) Source {
	h := fnv.New64a()
	h.Write([]byte(label))
	return NewSeeded(s.seed ^ int64(h.Sum64()))
}

// Chance reports whether a draw from src lands below p. Probabilities
// outside [0,1] saturate.
func Chance(src Source, p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return src.Float64() < p
}

// Between returns a uniform variate in [lo, hi).
func Between(src Source, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + src.Float64()*(hi-lo)
}
