package datasets

import (
	"fmt"

	"github.com/gomlx/gomlx/pkg/core/tensors"
)

// This package holds the dataset-side types the samplers consume. Loading
// image pairs and computing matches is done by the data pipeline; what arrives
// here are flattened pixel indices (row*width + col) for one pair of images.
//
// Layout and intended usage:
//
// Item
//   - MatchesA / MatchesB: known correspondences, MatchesA[k] in image A
//     matches MatchesB[k] in image B.
//   - MaskedNonMatchesB: candidate negatives inside the object mask of image B.
//   - BackgroundNonMatchesB: candidate negatives in the background of image B.
//
// The sampler package only looks at image B, through the Matches,
// MaskedNonMatches and BackgroundNonMatches accessors.

// DefaultImageWidth and DefaultImageHeight are the image dimensions used when
// none are configured.
const (
	DefaultImageWidth  = 640
	DefaultImageHeight = 480
)

// Item is a single training pair with its correspondence data.
type Item struct {
	// Width and Height of the images the indices refer to.
	Width  int
	Height int

	MatchesA []int64
	MatchesB []int64

	MaskedNonMatchesB     []int64
	BackgroundNonMatchesB []int64
}

// NewItem creates an Item for images of the given size. If width or height is
// zero the defaults (640x480) are used.
func NewItem(width, height int, matchesA, matchesB []int64) (*Item, error) {
	if width == 0 {
		width = DefaultImageWidth
	}
	if height == 0 {
		height = DefaultImageHeight
	}
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("invalid image size %dx%d", width, height)
	}
	if len(matchesA) != len(matchesB) {
		return nil, fmt.Errorf("matches length mismatch: %d in image A, %d in image B", len(matchesA), len(matchesB))
	}
	it := &Item{
		Width:    width,
		Height:   height,
		MatchesA: matchesA,
		MatchesB: matchesB,
	}
	if err := it.Validate(); err != nil {
		return nil, err
	}
	return it, nil
}

// Len returns the number of known matches.
func (it *Item) Len() int {
	return len(it.MatchesB)
}

// Matches returns the match locations in image B.
func (it *Item) Matches() []int64 { return it.MatchesB }

// MaskedNonMatches returns the masked-region candidate pool in image B.
func (it *Item) MaskedNonMatches() []int64 { return it.MaskedNonMatchesB }

// BackgroundNonMatches returns the background candidate pool in image B.
func (it *Item) BackgroundNonMatches() []int64 { return it.BackgroundNonMatchesB }

// WithNonMatches sets the DON candidate pools and validates them.
func (it *Item) WithNonMatches(masked, background []int64) error {
	it.MaskedNonMatchesB = masked
	it.BackgroundNonMatchesB = background
	return it.Validate()
}

// Validate checks that every stored index is a valid pixel index.
func (it *Item) Validate() error {
	fields := []struct {
		name string
		idx  []int64
	}{
		{"matches_a", it.MatchesA},
		{"matches_b", it.MatchesB},
		{"masked_non_matches_b", it.MaskedNonMatchesB},
		{"background_non_matches_b", it.BackgroundNonMatchesB},
	}
	for _, f := range fields {
		for i, v := range f.idx {
			if !InBounds(v, it.Width, it.Height) {
				return fmt.Errorf("%s[%d] = %d out of range [0, %d)", f.name, i, v, PixelCount(it.Width, it.Height))
			}
		}
	}
	return nil
}

// ToGomlxTensors converts the match lists to gomlx tensors, one per image.
func (it *Item) ToGomlxTensors() (matchesA *tensors.Tensor, matchesB *tensors.Tensor, err error) {
	if len(it.MatchesA) != len(it.MatchesB) {
		return nil, nil, fmt.Errorf("matches length mismatch: %d != %d", len(it.MatchesA), len(it.MatchesB))
	}
	a := make([]int64, len(it.MatchesA))
	b := make([]int64, len(it.MatchesB))
	copy(a, it.MatchesA)
	copy(b, it.MatchesB)
	return tensors.FromAnyValue(a), tensors.FromAnyValue(b), nil
}
