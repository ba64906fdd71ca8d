package predict

import "fmt"

// RateModel is the rate-prediction capability behind the overlay. The
// model is opaque to this package: given query coordinates it returns an
// intensity estimate per coordinate, and how it gets there is its own
// business. Keeping it an interface lets tests substitute deterministic
// stubs for the real artifact.
type RateModel interface {
	// PredictRate returns the mean predicted rate per coordinate, in
	// input order, plus lower/upper uncertainty bands (same order).
	// Coordinates are (x, y, t) triples in normalized units, where x is
	// the normalized longitude and y the normalized latitude.
	PredictRate(coords [][3]float64, numSamples int, alphaRegularization bool) (mean, lower, upper []float64, err error)
}

// Loader produces a freshly loaded RateModel. The model is reloaded on
// every refresh so an artifact swapped on disk takes effect without a
// process restart.
type Loader interface {
	Load() (RateModel, error)
}

// UnavailableError means the overlay could not be predicted: the model
// failed to load or the prediction call failed. The refresh degrades to
// "no overlay" rather than crashing.
type UnavailableError struct {
	Cause error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("model prediction not available: %v", e.Cause)
}

func (e *UnavailableError) Unwrap() error {
	return e.Cause
}
