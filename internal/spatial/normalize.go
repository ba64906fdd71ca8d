package spatial

import (
	"github.com/sylar-lab/sharks-backend-go/internal/models"
)

// Normalize projects a point into the unit square defined by box, using
// the same linear mapping the model was trained with:
//
//	norm = (value - min) / (max - min)
//
// Points outside the box yield components outside [0,1]; they are passed
// through un-clamped so out-of-domain queries stay visible to the caller
// instead of being silently pulled onto the domain edge.
func Normalize(p models.GeoPoint, box models.BoundingBox) models.NormalizedPoint {
	return models.NormalizedPoint{
		Lat: (p.Lat - box.MinLat) / (box.MaxLat - box.MinLat),
		Lon: (p.Lon - box.MinLon) / (box.MaxLon - box.MinLon),
		T:   models.LatestTime,
	}
}

// Denormalize maps a normalized point back to degrees within box
func Denormalize(n models.NormalizedPoint, box models.BoundingBox) models.GeoPoint {
	return models.GeoPoint{
		Lat: box.MinLat + n.Lat*(box.MaxLat-box.MinLat),
		Lon: box.MinLon + n.Lon*(box.MaxLon-box.MinLon),
	}
}
