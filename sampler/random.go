package sampler

import (
	"math/rand/v2"

	"github.com/pkg/errors"
)

// RandomSampler draws indices uniformly over the whole image. Draws are
// independent, so the output can contain duplicates and true matches.
type RandomSampler struct {
	base
}

// NewRandomSampler creates a RandomSampler for a width x height image. Zero
// dimensions default to 640x480 and a nil rng is replaced by a time-seeded one.
func NewRandomSampler(width, height int, rng *rand.Rand) (*RandomSampler, error) {
	if width < 0 || height < 0 {
		return nil, errors.Wrapf(ErrConfig, "image size %dx%d", width, height)
	}
	return &RandomSampler{base: newBase(width, height, rng)}, nil
}

// Strategy implements Sampler.
func (s *RandomSampler) Strategy() Strategy { return StrategyRandom }

// Sample implements Sampler. item is not used and may be nil.
func (s *RandomSampler) Sample(numSamples int, _ Item) (*Samples, error) {
	if err := checkCount(numSamples); err != nil {
		return nil, err
	}
	n := s.maxPixelIndex() + 1
	out := newSamples(1, numSamples)
	for i := range out.Indices {
		out.Indices[i] = s.rng.Int64N(n)
	}
	return out, nil
}
