// Package rng provides the deterministic random streams used for ticket
// generation. Ticket content must be a pure function of its seed string, so
// the generator is a fixed 32-bit algorithm (mulberry32) rather than a
// stdlib source whose stream could change between Go releases.
package rng

import "sync"

// Source yields floats in [0, 1). Implementations advance internal state on
// every call.
type Source func() float64

// hashString mixes a string seed into a 32-bit value with an avalanche
// finalizer (xmur3). Identical strings always produce identical seeds.
func hashString(s string) uint32 {
	h := uint32(1779033703) ^ uint32(len(s))
	for i := 0; i < len(s); i++ {
		h = (h ^ uint32(s[i])) * 3432918353
		h = (h << 13) | (h >> 19)
	}
	h = (h ^ (h >> 16)) * 2246822507
	h = (h ^ (h >> 13)) * 3266489909
	return h ^ (h >> 16)
}

// mulberry32 returns a fast PRNG with a ~2^32 period.
func mulberry32(a uint32) Source {
	return func() float64 {
		a += 0x6d2b79f5
		t := a
		t = (t ^ (t >> 15)) * (t | 1)
		t ^= t + (t^(t>>7))*(t|61)
		return float64(t^(t>>14)) / 4294967296.0
	}
}

// New constructs a fresh generator from a string seed. Each call site that
// needs replayable output must build its own generator; sharing a stream
// makes replay order-dependent.
func New(seed string) Source {
	return mulberry32(hashString(seed))
}

// NewNumeric constructs a generator from a numeric seed, masked to 32 bits.
func NewNumeric(seed uint64) Source {
	return mulberry32(uint32(seed))
}

var (
	mu     sync.Mutex
	shared = New("dev")
)

// SetSeed reseeds the process-wide default stream. It does not affect
// generators built with New.
func SetSeed(seed string) {
	mu.Lock()
	defer mu.Unlock()
	shared = New(seed)
}

// Float64 draws from the process-wide default stream.
func Float64() float64 {
	mu.Lock()
	defer mu.Unlock()
	return shared()
}

// IntN returns an integer in [min, max] drawn from the given source.
func IntN(src Source, min, max int) int {
	return min + int(src()*float64(max-min+1))
}
