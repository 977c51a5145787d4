package storage

import (
	"math/rand"
	"time"
)

// Source supplies the uniform draws the estimators consume. Implementations
// need not be safe for concurrent use; a System calls Uniform from a single
// goroutine only.
type Source interface {
	// Uniform returns a pseudo-random value in [lo, hi).
	Uniform(lo, hi float64) float64
}

type randSource struct {
	rng *rand.Rand
}

// NewSource returns a Source seeded with seed. Equal seeds reproduce the
// same draw sequence, which makes whole registration runs replayable.
func NewSource(seed int64) Source {
	return &randSource{rng: rand.New(rand.NewSource(seed))}
}

// NewTimeSource returns a Source seeded from the wall clock.
func NewTimeSource() Source {
	return NewSource(time.Now().UnixNano())
}

func (r *randSource) Uniform(lo, hi float64) float64 {
	return lo + r.rng.Float64()*(hi-lo)
}
