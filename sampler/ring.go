package sampler

import (
	"image"
	"math/rand/v2"

	"github.com/pkg/errors"

	"github.com/Noofbiz/denseCorr/datasets"
)

// RingSampler draws hard negatives from an annulus around each true match.
// Radii are in pixels.
type RingSampler struct {
	base

	InnerRadius int
	OuterRadius int

	// offsets[k] is the 2D offset (X = i, Y = j) behind flat[k].
	offsets []image.Point
	flat    []int64
}

// NewRingSampler creates a RingSampler and builds its offset table. It
// requires 0 <= innerRadius <= outerRadius.
func NewRingSampler(width, height, innerRadius, outerRadius int, rng *rand.Rand) (*RingSampler, error) {
	if width < 0 || height < 0 {
		return nil, errors.Wrapf(ErrConfig, "image size %dx%d", width, height)
	}
	if innerRadius < 0 || outerRadius < innerRadius {
		return nil, errors.Wrapf(ErrConfig, "ring radii must satisfy 0 <= inner <= outer, got inner=%d outer=%d",
			innerRadius, outerRadius)
	}
	s := &RingSampler{
		base:        newBase(width, height, rng),
		InnerRadius: innerRadius,
		OuterRadius: outerRadius,
	}
	s.buildOffsets()
	return s, nil
}

// buildOffsets collects every integer offset whose squared norm lies in
// [inner², outer²]. j is the outer loop, i the inner one, both ascending over
// [-outer-1, outer]; the flat offset is i*width + j.
func (s *RingSampler) buildOffsets() {
	inner2 := s.InnerRadius * s.InnerRadius
	outer2 := s.OuterRadius * s.OuterRadius
	for j := -s.OuterRadius - 1; j <= s.OuterRadius; j++ {
		for i := -s.OuterRadius - 1; i <= s.OuterRadius; i++ {
			d2 := i*i + j*j
			if d2 < inner2 || d2 > outer2 {
				continue
			}
			s.offsets = append(s.offsets, image.Pt(i, j))
			s.flat = append(s.flat, int64(i)*int64(s.width)+int64(j))
		}
	}
}

// Offsets returns a copy of the 2D offset table.
func (s *RingSampler) Offsets() []image.Point {
	out := make([]image.Point, len(s.offsets))
	copy(out, s.offsets)
	return out
}

// FlatOffsets returns a copy of the flattened offset table.
func (s *RingSampler) FlatOffsets() []int64 {
	out := make([]int64, len(s.flat))
	copy(out, s.flat)
	return out
}

// Strategy implements Sampler.
func (s *RingSampler) Strategy() Strategy { return StrategyRing }

// Sample implements Sampler. numSamples offsets are drawn once and applied to
// every match, so row m of the result holds the negatives for match m. The
// shifted indices are clamped to the image in flattened form.
func (s *RingSampler) Sample(numSamples int, item Item) (*Samples, error) {
	if err := checkCount(numSamples); err != nil {
		return nil, err
	}
	if len(s.flat) == 0 {
		return nil, errors.Wrap(ErrPrecondition, "ring offset table is empty")
	}
	if item == nil || len(item.Matches()) == 0 {
		return nil, errors.Wrap(ErrPrecondition, "ring sampling needs at least one match")
	}

	picked := make([]int64, numSamples)
	for k := range picked {
		picked[k] = s.flat[s.rng.IntN(len(s.flat))]
	}

	matches := item.Matches()
	out := newSamples(len(matches), numSamples)
	for m, match := range matches {
		row := out.Row(m)
		for k, off := range picked {
			row[k] = datasets.ClampPixel(match+off, s.width, s.height)
		}
	}
	return out, nil
}
