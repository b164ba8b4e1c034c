package geo

import (
	"math"

	"karma/pkg/types"
)

// EarthRadiusMiles is the mean radius used by the Haversine formula.
const EarthRadiusMiles = 3959.0

// DistanceMiles returns the great-circle distance between a and b in miles.
// The boolean is false when either point lacks a usable coordinate, in which
// case the distance is unknown and the returned value must be ignored.
func DistanceMiles(a, b types.Location) (float64, bool) {
	if !a.HasCoordinates() || !b.HasCoordinates() {
		return 0, false
	}

	return Haversine(*a.Latitude, *a.Longitude, *b.Latitude, *b.Longitude)
}

// Haversine computes the distance in miles between two points given in
// decimal degrees. NaN or infinite input yields an unknown distance.
func Haversine(lat1, lon1, lat2, lon2 float64) (float64, bool) {
	for _, v := range [...]float64{lat1, lon1, lat2, lon2} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, false
		}
	}

	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusMiles * c, true
}

func toRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
