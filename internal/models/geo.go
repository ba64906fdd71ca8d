package models

import "fmt"

// GeoPoint represents an observed location in degrees
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// BoundingBox represents a geographic rectangle
// Invariant: MinLat < MaxLat and MinLon < MaxLon, enforced by NewBoundingBox
type BoundingBox struct {
	MinLat float64 `json:"min_lat"`
	MaxLat float64 `json:"max_lat"`
	MinLon float64 `json:"min_lon"`
	MaxLon float64 `json:"max_lon"`
}

// NewBoundingBox creates a bounding box, validating the min/max ordering
func NewBoundingBox(minLat, maxLat, minLon, maxLon float64) (BoundingBox, error) {
	if minLat >= maxLat {
		return BoundingBox{}, fmt.Errorf("invalid bounding box: min_lat %.4f >= max_lat %.4f", minLat, maxLat)
	}
	if minLon >= maxLon {
		return BoundingBox{}, fmt.Errorf("invalid bounding box: min_lon %.4f >= max_lon %.4f", minLon, maxLon)
	}
	return BoundingBox{MinLat: minLat, MaxLat: maxLat, MinLon: minLon, MaxLon: maxLon}, nil
}

// Contains reports whether the point lies inside the box (inclusive)
func (b BoundingBox) Contains(p GeoPoint) bool {
	return p.Lat >= b.MinLat && p.Lat <= b.MaxLat &&
		p.Lon >= b.MinLon && p.Lon <= b.MaxLon
}

var trainingBounds = mustBoundingBox(8, 55, -98, -25)

// TrainingBounds returns the bounding box the rate model was trained
// against. The model's coefficients are calibrated to this exact box, so
// every normalization call must use it; it is a contract with the model
// artifact, not a tunable.
func TrainingBounds() BoundingBox {
	return trainingBounds
}

// mustBoundingBox builds fixed boxes through the validating constructor
func mustBoundingBox(minLat, maxLat, minLon, maxLon float64) BoundingBox {
	box, err := NewBoundingBox(minLat, maxLat, minLon, maxLon)
	if err != nil {
		panic(err)
	}
	return box
}

// LatestTime is the fixed temporal coordinate attached to every
// prediction query ("now" in the model's normalized time axis).
const LatestTime = 1.0

// NormalizedPoint is a point projected into the model's unit-square
// domain, plus the temporal coordinate. Components are only guaranteed
// to lie in [0,1] when the source point was inside the bounding box used
// for normalization; out-of-box points pass through un-clamped.
type NormalizedPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
	T   float64 `json:"t"`
}

// GridSpec describes the prediction lattice over a bounding box
type GridSpec struct {
	LatRes int         `json:"lat_res"` // Number of latitude rows, >= 2
	LonRes int         `json:"lon_res"` // Number of longitude columns, >= 2
	Box    BoundingBox `json:"box"`
}

// Size returns the number of points the lattice produces
func (s GridSpec) Size() int {
	return s.LatRes * s.LonRes
}
