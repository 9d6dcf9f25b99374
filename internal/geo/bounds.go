package geo

import (
	"errors"
	"math"

	"yatra/internal/domain"
)

// ErrNoPoints is returned when fitting an empty point set.
var ErrNoPoints = errors.New("no points to fit")

const tileSize = 256.0

// Bounds is a geographic bounding box.
type Bounds struct {
	MinLat float64 `json:"min_lat"`
	MinLng float64 `json:"min_lng"`
	MaxLat float64 `json:"max_lat"`
	MaxLng float64 `json:"max_lng"`
}

// Fit returns the bounds of points expanded by padding, a fraction of the
// box's height and width added on every side (0.1 = 10%).
func Fit(points []domain.LatLng, padding float64) (Bounds, error) {
	if len(points) == 0 {
		return Bounds{}, ErrNoPoints
	}
	b := Bounds{MinLat: points[0].Lat(), MaxLat: points[0].Lat(), MinLng: points[0].Lng(), MaxLng: points[0].Lng()}
	for _, p := range points[1:] {
		b = b.Extend(p)
	}
	return b.Pad(padding), nil
}

// Around returns the box enclosing the circle of radiusM metres around c,
// on the same sphere HaversineMeters uses. Every point within radiusM lies
// inside the box, which makes it a cheap prefilter for distance checks.
func Around(c domain.LatLng, radiusM float64) Bounds {
	d := radiusM / earthRadiusMeters // angular radius
	dLat := radiansToDegrees(d)
	dLng := 180.0
	if cos := math.Cos(degreesToRadians(c.Lat())); math.Sin(d) < cos {
		dLng = radiansToDegrees(math.Asin(math.Sin(d) / cos))
	}
	return Bounds{
		MinLat: c.Lat() - dLat,
		MaxLat: c.Lat() + dLat,
		MinLng: c.Lng() - dLng,
		MaxLng: c.Lng() + dLng,
	}
}

// Extend grows b to include p.
func (b Bounds) Extend(p domain.LatLng) Bounds {
	b.MinLat = math.Min(b.MinLat, p.Lat())
	b.MaxLat = math.Max(b.MaxLat, p.Lat())
	b.MinLng = math.Min(b.MinLng, p.Lng())
	b.MaxLng = math.Max(b.MaxLng, p.Lng())
	return b
}

// Pad expands b by ratio of its size on each side. Latitudes are clamped
// to the Web-Mercator limit.
func (b Bounds) Pad(ratio float64) Bounds {
	if ratio <= 0 {
		return b
	}
	dLat := (b.MaxLat - b.MinLat) * ratio
	dLng := (b.MaxLng - b.MinLng) * ratio
	return Bounds{
		MinLat: math.Max(b.MinLat-dLat, -maxMercatorLat),
		MaxLat: math.Min(b.MaxLat+dLat, maxMercatorLat),
		MinLng: b.MinLng - dLng,
		MaxLng: b.MaxLng + dLng,
	}
}

// Center returns the midpoint of b.
func (b Bounds) Center() domain.LatLng {
	return domain.LatLng{(b.MinLat + b.MaxLat) / 2, (b.MinLng + b.MaxLng) / 2}
}

// Contains reports whether p lies inside b, edges included.
func (b Bounds) Contains(p domain.LatLng) bool {
	return p.Lat() >= b.MinLat && p.Lat() <= b.MaxLat &&
		p.Lng() >= b.MinLng && p.Lng() <= b.MaxLng
}

const maxMercatorLat = 85.0511287798

// Zoom returns the largest integer zoom, capped at maxZoom, at which b fits
// a widthPx x heightPx viewport. Degenerate bounds (a single point) return
// maxZoom.
func Zoom(b Bounds, widthPx, heightPx, maxZoom int) int {
	if widthPx <= 0 || heightPx <= 0 {
		return 0
	}
	latFraction := (mercatorY(b.MaxLat) - mercatorY(b.MinLat)) / math.Pi
	lngDiff := b.MaxLng - b.MinLng
	if lngDiff < 0 {
		lngDiff += 360
	}
	lngFraction := lngDiff / 360

	z := math.Min(zoomFor(float64(heightPx), latFraction), zoomFor(float64(widthPx), lngFraction))
	if math.IsInf(z, 1) || z > float64(maxZoom) {
		return maxZoom
	}
	if z < 0 {
		return 0
	}
	return int(z)
}

func zoomFor(px, fraction float64) float64 {
	if fraction <= 0 {
		return math.Inf(1)
	}
	return math.Floor(math.Log2(px / tileSize / fraction))
}

// mercatorY is the half-projected latitude in radians, clamped to ±π/2.
func mercatorY(lat float64) float64 {
	sin := math.Sin(degreesToRadians(lat))
	radX2 := math.Log((1+sin)/(1-sin)) / 2
	return math.Max(math.Min(radX2, math.Pi), -math.Pi) / 2
}
