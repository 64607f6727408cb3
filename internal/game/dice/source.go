package dice

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Source is the randomness provider for dice rolls.
//
// Implementations MUST be safe for concurrent use.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}

// seededSource implements Source with a PCG generator seeded exactly once.
type seededSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSeededSource returns a Source backed by a PCG generator seeded with seed.
// Two sources built from the same seed produce the same sequence.
//
// Postcondition: Every value returned by Intn is in [0, n).
func NewSeededSource(seed uint64) Source {
	return &seededSource{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// NewClockSource returns a Source seeded once from the wall clock.
// Sequences are not reproducible across runs.
func NewClockSource() Source {
	return NewSeededSource(uint64(time.Now().UnixNano()))
}

// Intn returns a pseudo-random int in [0, n).
//
// Precondition: n > 0. Panics with "dice: Intn called with n <= 0" if n <= 0.
func (s *seededSource) Intn(n int) int {
	if n <= 0 {
		panic("dice: Intn called with n <= 0")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.IntN(n)
}

// sequenceSource replays a fixed list of values, cycling when exhausted.
type sequenceSource struct {
	mu     sync.Mutex
	values []int
	next   int
}

// NewSequenceSource returns a deterministic Source that yields values in order,
// wrapping around at the end. Each value is reduced modulo n so the result
// always honours the Intn contract.
//
// Precondition: len(values) > 0 and every value >= 0.
func NewSequenceSource(values ...int) Source {
	if len(values) == 0 {
		panic("dice: NewSequenceSource requires at least one value")
	}
	cp := make([]int, len(values))
	copy(cp, values)
	return &sequenceSource{values: cp}
}

// Intn returns the next value of the sequence reduced into [0, n).
func (s *sequenceSource) Intn(n int) int {
	if n <= 0 {
		panic("dice: Intn called with n <= 0")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	v := s.values[s.next]
	s.next = (s.next + 1) % len(s.values)
	return v % n
}
