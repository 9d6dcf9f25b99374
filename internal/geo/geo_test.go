package geo

import (
	"errors"
	"math"
	"testing"

	"yatra/internal/domain"
)

func TestFit_CoversAllPoints(t *testing.T) {
	pts := []domain.LatLng{{23.02, 72.57}, {23.05, 72.50}, {22.99, 72.60}}
	b, err := Fit(pts, 0)
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}
	want := Bounds{MinLat: 22.99, MinLng: 72.50, MaxLat: 23.05, MaxLng: 72.60}
	if b != want {
		t.Fatalf("bounds = %+v, want %+v", b, want)
	}
	for _, p := range pts {
		if !b.Contains(p) {
			t.Fatalf("bounds do not contain %v", p)
		}
	}
}

func TestFit_Padding(t *testing.T) {
	b, err := Fit([]domain.LatLng{{0, 0}, {10, 20}}, 0.1)
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}
	if !almost(b.MinLat, -1) || !almost(b.MaxLat, 11) || !almost(b.MinLng, -2) || !almost(b.MaxLng, 22) {
		t.Fatalf("padded bounds = %+v", b)
	}
	c := b.Center()
	if !almost(c.Lat(), 5) || !almost(c.Lng(), 10) {
		t.Fatalf("center = %v", c)
	}
}

func TestFit_Empty(t *testing.T) {
	if _, err := Fit(nil, 0.1); !errors.Is(err, ErrNoPoints) {
		t.Fatalf("want ErrNoPoints, got %v", err)
	}
}

func TestAround_EnclosesCircle(t *testing.T) {
	c := domain.LatLng{23.0225, 72.5714}
	const radius = 1000.0
	b := Around(c, radius)
	for deg := 0; deg < 360; deg += 15 {
		// Walk just inside the circle along each bearing.
		p := destination(c, float64(deg), radius*0.999)
		if HaversineMeters(c, p) > radius {
			t.Fatalf("bearing %d: point outside circle", deg)
		}
		if !b.Contains(p) {
			t.Fatalf("bearing %d: %v not in %+v", deg, p, b)
		}
	}
	if b.Contains(domain.LatLng{c.Lat() + 0.02, c.Lng()}) {
		t.Fatal("box far larger than the radius")
	}
}

// destination moves distM metres from p along bearing (degrees).
func destination(p domain.LatLng, bearing, distM float64) domain.LatLng {
	d := distM / earthRadiusMeters
	lat1, lng1 := degreesToRadians(p.Lat()), degreesToRadians(p.Lng())
	brg := degreesToRadians(bearing)
	lat2 := math.Asin(math.Sin(lat1)*math.Cos(d) + math.Cos(lat1)*math.Sin(d)*math.Cos(brg))
	lng2 := lng1 + math.Atan2(math.Sin(brg)*math.Sin(d)*math.Cos(lat1), math.Cos(d)-math.Sin(lat1)*math.Sin(lat2))
	return domain.LatLng{radiansToDegrees(lat2), radiansToDegrees(lng2)}
}

func TestZoom(t *testing.T) {
	world := Bounds{MinLat: -85, MinLng: -180, MaxLat: 85, MaxLng: 180}
	if z := Zoom(world, 256, 256, 18); z != 0 {
		t.Fatalf("world zoom = %d, want 0", z)
	}

	small := Bounds{MinLat: -0.005, MinLng: -0.005, MaxLat: 0.005, MaxLng: 0.005}
	if z := Zoom(small, 512, 512, 18); z != 16 {
		t.Fatalf("small box zoom = %d, want 16", z)
	}
	if z := Zoom(small, 512, 512, 14); z != 14 {
		t.Fatalf("zoom should cap at max, got %d", z)
	}

	point := Bounds{MinLat: 23, MinLng: 72, MaxLat: 23, MaxLng: 72}
	if z := Zoom(point, 800, 600, 17); z != 17 {
		t.Fatalf("single point zoom = %d, want max", z)
	}
}

func TestHaversineMeters(t *testing.T) {
	// One degree of latitude is ~111.19 km on the mean-radius sphere.
	d := HaversineMeters(domain.LatLng{0, 0}, domain.LatLng{1, 0})
	if math.Abs(d-111195) > 10 {
		t.Fatalf("1 deg lat = %.0f m", d)
	}
	if HaversineMeters(domain.LatLng{23, 72}, domain.LatLng{23, 72}) != 0 {
		t.Fatal("zero distance expected")
	}
	path := []domain.LatLng{{0, 0}, {1, 0}, {2, 0}}
	if got := PathLengthMeters(path); math.Abs(got-2*d) > 1 {
		t.Fatalf("path length = %.0f", got)
	}
}

func almost(a, b float64) bool { return math.Abs(a-b) < 1e-9 }
