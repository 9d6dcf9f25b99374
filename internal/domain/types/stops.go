package types

// Stop is a boarding point.
type Stop struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Position returns the stop's coordinates as a LatLng.
func (s Stop) Position() LatLng { return LatLng{s.Latitude, s.Longitude} }

// NearbyStop is a stop within the requested radius of a location.
type NearbyStop struct {
	Stop      Stop `json:"stop"`
	DistanceM int  `json:"distance_m"`
}
