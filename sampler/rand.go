package sampler

import (
	"math/rand/v2"
	"time"

	"gonum.org/v1/gonum/mathext/prng"
)

// NewRand returns a generator backed by a Mersenne Twister seeded with seed.
// A zero seed uses the current time.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	src := prng.NewMT19937()
	src.Seed(seed)
	return rand.New(src)
}
