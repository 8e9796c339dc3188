// Package matching holds the pure job-matching primitives: great-circle
// distance and the visible-set filter used by job search.
package matching

import (
	"math"

	api "github.com/crewup/crewup-api/api/v1"
)

// earthRadiusKm is the mean Earth radius used by the Haversine formula.
const earthRadiusKm = 6371.0

// DistanceKm computes the great-circle distance between two coordinates in
// kilometers. Total over valid latitudes/longitudes and symmetric in its
// arguments.
func DistanceKm(a, b api.Coordinate) float64 {
	dLat := radians(b.Latitude - a.Latitude)
	dLon := radians(b.Longitude - a.Longitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(a.Latitude))*math.Cos(radians(b.Latitude))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
