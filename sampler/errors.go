package sampler

import "github.com/pkg/errors"

// Errors returned by this package. Returned errors wrap one of these with
// context, so test with errors.Is.
var (
	// ErrUnknownSampler is returned by Dispatch for an unrecognized name.
	ErrUnknownSampler = errors.New("unknown sampler")

	// ErrConfig is returned for missing or out-of-range configuration values.
	ErrConfig = errors.New("invalid sampler configuration")

	// ErrInvalidArgument is returned for a negative sample count.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrPrecondition is returned when the dataset item cannot serve the
	// sampler (no matches for ring, an empty candidate pool for don).
	ErrPrecondition = errors.New("precondition violated")

	// ErrInvariant is returned by the don sampler when the weight split
	// leaves one side without samples.
	ErrInvariant = errors.New("invariant violated")
)

func checkCount(numSamples int) error {
	if numSamples < 0 {
		return errors.Wrapf(ErrInvalidArgument, "number of samples must be non-negative, got %d", numSamples)
	}
	return nil
}
