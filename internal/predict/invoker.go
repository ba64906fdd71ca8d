package predict

import (
	"fmt"

	"github.com/sylar-lab/sharks-backend-go/internal/models"
	"github.com/sylar-lab/sharks-backend-go/internal/spatial"
)

// The model was fitted with alpha regularization enabled and exposes no
// toggle upstream, so it is fixed here rather than surfaced as an option.
const alphaRegularization = true

// Invoker turns a prediction lattice into overlay entries by calling the
// rate model once for the whole batch. It holds no state of its own and
// is safe to re-invoke freely.
type Invoker struct {
	loader Loader
}

// NewInvoker creates an invoker backed by the given model loader
func NewInvoker(loader Loader) *Invoker {
	return &Invoker{loader: loader}
}

// PredictOverlay normalizes every grid point against box, attaches the
// fixed latest-time coordinate, and submits the whole batch to a freshly
// loaded model in one call. The returned entries carry the original
// un-normalized grid points, in the same order they came in.
//
// Any load or prediction failure returns an *UnavailableError wrapping
// the cause; a partial result is never returned.
func (iv *Invoker) PredictOverlay(grid []models.GeoPoint, box models.BoundingBox, sampleCount int) ([]models.OverlayEntry, error) {
	if sampleCount <= 0 {
		return nil, fmt.Errorf("sample count must be positive, got %d", sampleCount)
	}

	model, err := iv.loader.Load()
	if err != nil {
		return nil, &UnavailableError{Cause: err}
	}

	coords := make([][3]float64, len(grid))
	for i, p := range grid {
		n := spatial.Normalize(p, box)
		// Model input order is (x, y, t): longitude first
		coords[i] = [3]float64{n.Lon, n.Lat, n.T}
	}

	mean, _, _, err := model.PredictRate(coords, sampleCount, alphaRegularization)
	if err != nil {
		return nil, &UnavailableError{Cause: err}
	}
	if len(mean) != len(grid) {
		return nil, &UnavailableError{
			Cause: fmt.Errorf("model returned %d rates for %d grid points", len(mean), len(grid)),
		}
	}

	entries := make([]models.OverlayEntry, len(grid))
	for i, p := range grid {
		entries[i] = models.OverlayEntry{Point: p, Rate: mean[i]}
	}
	return entries, nil
}
