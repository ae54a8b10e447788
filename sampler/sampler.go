// Package sampler draws non-correspondence (negative) pixel locations for
// dense correspondence training. Given the known matches of an image pair, a
// Sampler returns pixel indices in image B that are presumed not to match,
// to be used as negatives by a contrastive loss.
//
// Three strategies are provided:
//   - random: uniform over the whole image.
//   - ring: offsets lying in an annulus around each true match.
//   - don: drawn from precomputed masked and background candidate pools.
//
// Pixel indices are flattened as row*width + col.
package sampler

import (
	"math/rand/v2"

	"github.com/Noofbiz/denseCorr/datasets"
)

// Strategy names a sampling strategy.
type Strategy string

const (
	StrategyRandom Strategy = "random"
	StrategyRing   Strategy = "ring"
	StrategyDON    Strategy = "don"
)

// Strategies lists the supported strategies in the order they are reported.
func Strategies() []Strategy {
	return []Strategy{StrategyRandom, StrategyRing, StrategyDON}
}

// Item is what samplers need from a dataset item. All indices refer to
// image B. datasets.Item implements it.
type Item interface {
	Matches() []int64
	MaskedNonMatches() []int64
	BackgroundNonMatches() []int64
}

var _ Item = (*datasets.Item)(nil)

// Sampler draws negative samples for one dataset item.
type Sampler interface {
	// Sample returns numSamples pixel indices per output row. A negative
	// numSamples returns ErrInvalidArgument.
	Sample(numSamples int, item Item) (*Samples, error)

	Strategy() Strategy
}

// base holds the image grid and generator shared by all samplers.
type base struct {
	width  int
	height int
	rng    *rand.Rand
}

func newBase(width, height int, rng *rand.Rand) base {
	if width == 0 {
		width = datasets.DefaultImageWidth
	}
	if height == 0 {
		height = datasets.DefaultImageHeight
	}
	if rng == nil {
		rng = NewRand(0)
	}
	return base{width: width, height: height, rng: rng}
}

// ImageSize returns the width and height of the pixel grid.
func (b *base) ImageSize() (width, height int) {
	return b.width, b.height
}

func (b *base) maxPixelIndex() int64 {
	return datasets.PixelCount(b.width, b.height) - 1
}
