package geo

import "math"

// Mean Earth radius in meters.
const earthRadiusMeters = 6371000.0

// Point is a WGS84 coordinate in degrees.
type Point struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// DistanceMeters computes the great-circle distance between two points
// using the haversine formula.
func DistanceMeters(p1, p2 Point) float64 {
	lat1Rad := toRadians(p1.Latitude)
	lat2Rad := toRadians(p2.Latitude)
	deltaLat := toRadians(p2.Latitude - p1.Latitude)
	deltaLon := toRadians(p2.Longitude - p1.Longitude)

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

func toRadians(degrees float64) float64 {
	return degrees * math.Pi / 180.0
}
