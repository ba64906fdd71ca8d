package models

// OverlayEntry pairs one lattice point with its predicted rate.
// The rate is the model's mean intensity at the point; the model is not
// contractually bounded to non-negative values and none are clamped here.
type OverlayEntry struct {
	Point GeoPoint `json:"point"`
	Rate  float64  `json:"rate"`
}

// Overlay is the product of one refresh cycle: the lattice spec it was
// computed for, one entry per lattice point in grid iteration order, and
// the generation that produced it. Replaced wholesale on each successful
// refresh; never mutated in place.
type Overlay struct {
	Spec       GridSpec       `json:"spec"`
	Entries    []OverlayEntry `json:"entries"`
	Generation uint64         `json:"generation"`
}

// OverlayStats summarizes the current overlay for the renderer
type OverlayStats struct {
	MinRate      float64 `json:"min_rate"`
	MaxRate      float64 `json:"max_rate"`
	MeanRate     float64 `json:"mean_rate"`
	NonzeroCount int     `json:"nonzero_count"`
	EntryCount   int     `json:"entry_count"`

	// Spacing between adjacent lattice points, measured at the box center
	CellLatMeters float64 `json:"cell_lat_meters"`
	CellLonMeters float64 `json:"cell_lon_meters"`
}
