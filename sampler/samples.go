package sampler

import (
	"fmt"

	"github.com/gomlx/gomlx/pkg/core/tensors"
)

// Samples stores sampled pixel indices in a flat row-major buffer of shape
// [Rows, Cols]. Cols is always the requested number of samples; the random
// and don samplers return a single row, the ring sampler one row per match.
type Samples struct {
	Indices []int64
	Rows    int
	Cols    int
}

func newSamples(rows, cols int) *Samples {
	return &Samples{
		Indices: make([]int64, rows*cols),
		Rows:    rows,
		Cols:    cols,
	}
}

// Len returns the number of samples per row.
func (s *Samples) Len() int {
	return s.Cols
}

// Row returns row i as a slice into the underlying buffer.
func (s *Samples) Row(i int) []int64 {
	return s.Indices[i*s.Cols : (i+1)*s.Cols]
}

// Max returns the largest index, or -1 when there are no samples.
func (s *Samples) Max() int64 {
	m := int64(-1)
	for _, v := range s.Indices {
		if v > m {
			m = v
		}
	}
	return m
}

// ToGomlxTensor converts the samples to an int64 gomlx tensor of shape
// [Rows, Cols].
func (s *Samples) ToGomlxTensor() (*tensors.Tensor, error) {
	if len(s.Indices) != s.Rows*s.Cols {
		return nil, fmt.Errorf("samples buffer has %d entries, expected %dx%d", len(s.Indices), s.Rows, s.Cols)
	}
	data := make([]int64, len(s.Indices))
	copy(data, s.Indices)
	return tensors.FromFlatDataAndDimensions(data, s.Rows, s.Cols), nil
}
