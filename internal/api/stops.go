package api

import (
	"context"
	"net/url"
	"strconv"

	"yatra/internal/domain"
)

// SearchStops returns stops whose name matches q.
func (c *Client) SearchStops(ctx context.Context, q string) ([]domain.Stop, error) {
	var out []domain.Stop
	err := c.Do(ctx, Request{Path: "/stops/search/", Query: url.Values{"q": {q}}}, &out)
	return out, err
}

// NearbyStops returns stops within radiusM metres of (lat, lng). A radius of
// zero or less leaves the server default in place.
func (c *Client) NearbyStops(ctx context.Context, lat, lng, radiusM float64) ([]domain.NearbyStop, error) {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lng", strconv.FormatFloat(lng, 'f', -1, 64))
	if radiusM > 0 {
		params.Set("radius", strconv.FormatFloat(radiusM, 'f', -1, 64))
	}
	var out []domain.NearbyStop
	err := c.Do(ctx, Request{Path: "/stops/nearby/", Query: params}, &out)
	return out, err
}

// StopCoordinates lists every stop with its position.
func (c *Client) StopCoordinates(ctx context.Context) ([]domain.Stop, error) {
	var out []domain.Stop
	err := c.Do(ctx, Request{Path: "/stops/coordinates/"}, &out)
	return out, err
}
