// Package signal holds the building blocks shared by every simulator: the
// sample type handed to scoring, the random source and the clock.
//
// Simulated output is intentionally non-deterministic unless a seed is
// configured; analyzers take a Noise and a Clock so tests can pin both.
package signal

import (
	"math/rand/v2"
	"sort"
	"sync"
	"time"
)

// Sample maps a parameter name to its reading for a single analysis call.
type Sample map[string]float64

// Clone returns an independent copy of the sample.
func (s Sample) Clone() Sample {
	out := make(Sample, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Get returns the named reading or def when it is absent.
func (s Sample) Get(name string, def float64) float64 {
	if v, ok := s[name]; ok {
		return v
	}
	return def
}

// Keys returns parameter names in lexical order.
func (s Sample) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Noise is the random source simulators draw from.
type Noise interface {
	Normal(mean, stddev float64) float64
	Uniform(lo, hi float64) float64
	Intn(n int) int
}

// Seeded is a goroutine-safe PCG-backed Noise.
type Seeded struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSeeded returns a reproducible source for seed. A zero seed draws one from
// the wall clock, so repeated runs differ.
func NewSeeded(seed uint64) *Seeded {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Seeded{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s *Seeded) Normal(mean, stddev float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return mean + s.rng.NormFloat64()*stddev
}

func (s *Seeded) Uniform(lo, hi float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return lo + s.rng.Float64()*(hi-lo)
}

func (s *Seeded) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.IntN(n)
}

// Fixed is a deterministic Noise for tests. Normal returns mean+Z*stddev,
// Uniform returns lo+U*(hi-lo) and Intn returns I modulo n.
type Fixed struct {
	Z float64
	U float64
	I int
}

func (f Fixed) Normal(mean, stddev float64) float64 { return mean + f.Z*stddev }

func (f Fixed) Uniform(lo, hi float64) float64 { return lo + f.U*(hi-lo) }

func (f Fixed) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return ((f.I % n) + n) % n
}

// Clock supplies the current instant.
type Clock func() time.Time

// SystemClock reports wall-clock time in UTC.
func SystemClock() time.Time { return time.Now().UTC() }

// FixedClock always reports t.
func FixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}
