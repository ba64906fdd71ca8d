package spatial

import (
	"fmt"

	"github.com/sylar-lab/sharks-backend-go/internal/models"
)

// InvalidGridSpecError reports a grid resolution below the minimum of 2.
// A one-point axis cannot span the bounding box, and a degenerate lattice
// would break the positional pairing between grid points and rates.
type InvalidGridSpecError struct {
	Axis string // "latitude" or "longitude"
	Res  int
}

func (e *InvalidGridSpecError) Error() string {
	return fmt.Sprintf("invalid grid spec: %s resolution %d (minimum is 2)", e.Axis, e.Res)
}

// BuildGrid produces the prediction lattice for spec: LatRes latitude
// values by LonRes longitude values, evenly spaced and inclusive of both
// bounding-box endpoints on each axis.
//
// Iteration order is latitude outer, longitude inner (longitude varies
// fastest). The order is a contract: predicted rates are zipped back onto
// these points by position, and the renderer relies on the same order.
func BuildGrid(spec models.GridSpec) ([]models.GeoPoint, error) {
	if spec.LatRes < 2 {
		return nil, &InvalidGridSpecError{Axis: "latitude", Res: spec.LatRes}
	}
	if spec.LonRes < 2 {
		return nil, &InvalidGridSpecError{Axis: "longitude", Res: spec.LonRes}
	}

	lats := linspace(spec.Box.MinLat, spec.Box.MaxLat, spec.LatRes)
	lons := linspace(spec.Box.MinLon, spec.Box.MaxLon, spec.LonRes)

	points := make([]models.GeoPoint, 0, spec.Size())
	for _, lat := range lats {
		for _, lon := range lons {
			points = append(points, models.GeoPoint{Lat: lat, Lon: lon})
		}
	}
	return points, nil
}

// linspace returns n evenly spaced values from min to max inclusive
func linspace(min, max float64, n int) []float64 {
	step := (max - min) / float64(n-1)
	vals := make([]float64, n)
	for i := range vals {
		vals[i] = min + float64(i)*step
	}
	// Pin the last value so float rounding never moves the box edge
	vals[n-1] = max
	return vals
}
