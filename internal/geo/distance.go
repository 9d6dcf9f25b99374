package geo

import (
	"math"

	"yatra/internal/domain"
)

const earthRadiusMeters = 6371000.0

// HaversineMeters is the great-circle distance between a and b.
func HaversineMeters(a, b domain.LatLng) float64 {
	dLat := degreesToRadians(b.Lat() - a.Lat())
	dLng := degreesToRadians(b.Lng() - a.Lng())
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(degreesToRadians(a.Lat()))*math.Cos(degreesToRadians(b.Lat()))*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	return earthRadiusMeters * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// PathLengthMeters sums the segment lengths of a polyline.
func PathLengthMeters(points []domain.LatLng) float64 {
	var total float64
	for i := 1; i < len(points); i++ {
		total += HaversineMeters(points[i-1], points[i])
	}
	return total
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

func radiansToDegrees(rad float64) float64 {
	return rad * 180.0 / math.Pi
}
