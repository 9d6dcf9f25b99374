package api

import (
	"context"
	"fmt"
	"net/url"

	"yatra/internal/domain"
)

// Routes lists every bus route.
func (c *Client) Routes(ctx context.Context) ([]domain.BusRoute, error) {
	var out []domain.BusRoute
	err := c.Do(ctx, Request{Path: "/bus-routes/"}, &out)
	return out, err
}

// Route returns one route with its patterns, shape and fares.
func (c *Client) Route(ctx context.Context, id int64) (domain.BusRoute, error) {
	var out domain.BusRoute
	err := c.Do(ctx, Request{Path: fmt.Sprintf("/bus-routes/%d/", id)}, &out)
	return out, err
}

// RouteTrips lists the scheduled trips of a route.
func (c *Client) RouteTrips(ctx context.Context, id int64) ([]domain.BusTrip, error) {
	var out []domain.BusTrip
	err := c.Do(ctx, Request{Path: fmt.Sprintf("/bus-routes/%d/trips/", id)}, &out)
	return out, err
}

// Schedules lists the operating window of every route.
func (c *Client) Schedules(ctx context.Context) ([]domain.Schedule, error) {
	var out []domain.Schedule
	err := c.Do(ctx, Request{Path: "/bus-schedules/"}, &out)
	return out, err
}

// FindRoute searches journeys between two stop names.
func (c *Client) FindRoute(ctx context.Context, q domain.RouteQuery) ([]domain.RouteOption, error) {
	if err := checkInput(q); err != nil {
		return nil, err
	}
	params := url.Values{}
	params.Set("source", q.Source)
	params.Set("destination", q.Destination)
	if q.Time != "" {
		params.Set("time", q.Time)
	}
	var out []domain.RouteOption
	err := c.Do(ctx, Request{Path: "/find_route/", Query: params}, &out)
	return out, err
}
