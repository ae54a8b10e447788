package sampler

import (
	"math"
	"math/rand/v2"

	"github.com/pkg/errors"
)

// DONSampler draws negatives from the candidate pools carried by the dataset
// item, splitting the requested count between the masked pool and the
// background pool by MaskWeight : BackgroundWeight.
type DONSampler struct {
	base

	MaskWeight       float64
	BackgroundWeight float64
}

// NewDONSampler creates a DONSampler. Weights must be non-negative; a zero
// weight is accepted here but makes every Sample call fail, because one of
// the pools would receive no samples.
func NewDONSampler(width, height int, maskWeight, backgroundWeight float64, rng *rand.Rand) (*DONSampler, error) {
	if width < 0 || height < 0 {
		return nil, errors.Wrapf(ErrConfig, "image size %dx%d", width, height)
	}
	if !(maskWeight >= 0) || !(backgroundWeight >= 0) {
		return nil, errors.Wrapf(ErrConfig, "don weights must be non-negative, got mask=%v background=%v",
			maskWeight, backgroundWeight)
	}
	return &DONSampler{
		base:             newBase(width, height, rng),
		MaskWeight:       maskWeight,
		BackgroundWeight: backgroundWeight,
	}, nil
}

// Strategy implements Sampler.
func (s *DONSampler) Strategy() Strategy { return StrategyDON }

// Split returns how many of numSamples come from the masked pool and how many
// from the background pool: masked = floor(n*mw/(mw+bw)), background = n-masked.
func (s *DONSampler) Split(numSamples int) (masked, background int) {
	total := s.MaskWeight + s.BackgroundWeight
	if total <= 0 {
		return 0, numSamples
	}
	masked = int(math.Floor(float64(numSamples) * s.MaskWeight / total))
	return masked, numSamples - masked
}

// Sample implements Sampler. Both pools must be non-empty and the split must
// give each pool at least one sample, otherwise ErrPrecondition or
// ErrInvariant is returned and no randomness is consumed.
func (s *DONSampler) Sample(numSamples int, item Item) (*Samples, error) {
	if err := checkCount(numSamples); err != nil {
		return nil, err
	}
	if item == nil {
		return nil, errors.Wrap(ErrPrecondition, "don sampling needs a dataset item")
	}
	masked := item.MaskedNonMatches()
	background := item.BackgroundNonMatches()
	if len(masked) == 0 {
		return nil, errors.Wrap(ErrPrecondition, "masked non-match pool is empty")
	}
	if len(background) == 0 {
		return nil, errors.Wrap(ErrPrecondition, "background non-match pool is empty")
	}
	if err := s.checkPool("masked", masked); err != nil {
		return nil, err
	}
	if err := s.checkPool("background", background); err != nil {
		return nil, err
	}

	if s.MaskWeight+s.BackgroundWeight <= 0 {
		return nil, errors.Wrapf(ErrInvariant, "don weights sum to %v", s.MaskWeight+s.BackgroundWeight)
	}
	nMasked, nBackground := s.Split(numSamples)
	if nMasked+nBackground != numSamples {
		return nil, errors.Wrapf(ErrInvariant, "split %d+%d does not add up to %d", nMasked, nBackground, numSamples)
	}
	if nMasked <= 0 || nBackground <= 0 {
		return nil, errors.Wrapf(ErrInvariant,
			"split of %d samples with weights %v:%v gives %d masked and %d background, both must be positive",
			numSamples, s.MaskWeight, s.BackgroundWeight, nMasked, nBackground)
	}

	out := newSamples(1, numSamples)
	for k := 0; k < nMasked; k++ {
		out.Indices[k] = masked[s.rng.IntN(len(masked))]
	}
	for k := 0; k < nBackground; k++ {
		out.Indices[nMasked+k] = background[s.rng.IntN(len(background))]
	}
	return out, nil
}

func (s *DONSampler) checkPool(name string, pool []int64) error {
	last := s.maxPixelIndex()
	for i, v := range pool {
		if v < 0 || v > last {
			return errors.Wrapf(ErrPrecondition, "%s pool entry %d = %d outside [0, %d]", name, i, v, last)
		}
	}
	return nil
}
