// Package geo provides the coordinate math the breach detection pipeline is
// built on: great-circle distance and coordinate validation. It is pure
// computation with no state.
package geo

import "math"

// earthRadiusMeters is the mean Earth radius used by the haversine formula.
const earthRadiusMeters = 6371000

// Coordinate is a WGS 84 point.
type Coordinate struct {
	Lat float64 `json:"latitude"`
	Lng float64 `json:"longitude"`
}

// Valid reports whether the coordinate is a finite point on the globe:
// latitude within [-90, 90] and longitude within [-180, 180], bounds
// inclusive.
func (c Coordinate) Valid() bool {
	if math.IsNaN(c.Lat) || math.IsInf(c.Lat, 0) {
		return false
	}
	if math.IsNaN(c.Lng) || math.IsInf(c.Lng, 0) {
		return false
	}
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}

// DistanceMeters returns the haversine great-circle distance between a and b
// on a sphere of radius 6,371,000 m. It is symmetric and returns exactly zero
// for identical points.
func DistanceMeters(a, b Coordinate) float64 {
	if a == b {
		return 0
	}
	dLat := toRad(b.Lat - a.Lat)
	dLng := toRad(b.Lng - a.Lng)
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(a.Lat))*math.Cos(toRad(b.Lat))*math.Sin(dLng/2)*math.Sin(dLng/2)
	return earthRadiusMeters * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
