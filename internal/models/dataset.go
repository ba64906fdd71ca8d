package models

// Marker is one observed location prepared for map rendering, with its
// 1-based position within the rendered subset
type Marker struct {
	Index int     `json:"index"`
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
}

// DatasetSummary describes the currently loaded point dataset
type DatasetSummary struct {
	Count       int  `json:"count"`        // Points held after the cap
	SourceCount int  `json:"source_count"` // Rows present in the source
	Truncated   bool `json:"truncated"`

	// Great-circle diagonal of the loaded points' extent, 0 when empty
	ExtentMeters float64 `json:"extent_meters"`
}

// ProductivityPoint is one sample of the simulated ocean-productivity
// surface shown alongside the prediction overlay
type ProductivityPoint struct {
	Lat          float64 `json:"lat"`
	Lon          float64 `json:"lon"`
	Productivity float64 `json:"productivity"`
}
