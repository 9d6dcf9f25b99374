package types

import (
	"encoding/json"
	"fmt"
)

// BusRoute is a route with its terminal stops, patterns, shape and fares.
type BusRoute struct {
	ID           int64         `json:"id"`
	Name         string        `json:"name"`
	StartStop    *Stop         `json:"start_stop"`
	EndStop      *Stop         `json:"end_stop"`
	TripPatterns []TripPattern `json:"trip_patterns"`
	Shape        *RouteShape   `json:"shape"`
	Fares        []Fare        `json:"fares"`
}

// TripPattern is an ordered stop sequence served by a route.
type TripPattern struct {
	ID    int64         `json:"id"`
	Route int64         `json:"route"`
	Stops []PatternStop `json:"stops"`
}

// PatternStop places a stop within a pattern.
type PatternStop struct {
	StopOrder int  `json:"stop_order"`
	Stop      Stop `json:"stop"`
}

// RouteShape is the drawn polyline of a route.
type RouteShape struct {
	Coordinates []LatLng `json:"coordinates"`
}

// Fare is the flat fare attached to a route.
type Fare struct {
	ID     int64  `json:"id"`
	Route  int64  `json:"route"`
	Amount Amount `json:"amount"`
}

// BusTrip is one scheduled run of a pattern. Times are "HH:MM:SS".
type BusTrip struct {
	ID            int64          `json:"id"`
	Pattern       int64          `json:"pattern"`
	DepartureTime string         `json:"departure_time"`
	ArrivalTime   string         `json:"arrival_time"`
	StopTimes     []TripStopTime `json:"stop_times"`
}

// TripStopTime is a trip's call at a stop.
type TripStopTime struct {
	StopOrder     int    `json:"stop_order"`
	Stop          Stop   `json:"stop"`
	ArrivalTime   string `json:"arrival_time"`
	DepartureTime string `json:"departure_time"`
}

// Schedule summarises a route's operating window.
type Schedule struct {
	RouteID   int64  `json:"route_id"`
	RouteNo   string `json:"routeNo"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Frequency string `json:"frequency"`
}

// RouteQuery are the parameters of a journey search. Time is "HH:MM";
// empty means now on the server's clock.
type RouteQuery struct {
	Source      string `validate:"required"`
	Destination string `validate:"required"`
	Time        string `validate:"omitempty,datetime=15:04"`
}

// NextBus is an upcoming departure for a journey leg.
type NextBus struct {
	TripID        int64  `json:"trip_id"`
	DepartureTime string `json:"departure_time"`
	ArrivalTime   string `json:"arrival_time"`
}

// RouteOption is one journey returned by the route finder. Direct options
// carry a single polyline in Shape; transfer options carry one per leg.
type RouteOption struct {
	ID                     int64           `json:"id"`
	SecondLegID            int64           `json:"second_leg_id,omitempty"`
	Name                   string          `json:"name"`
	FirstLeg               string          `json:"sr_bus,omitempty"`
	SecondLeg              string          `json:"dr_name,omitempty"`
	Fare                   Amount          `json:"fare"`
	HasTransfer            bool            `json:"has_transfer"`
	SourceCoordinates      LatLng          `json:"source_coordinates"`
	DestinationCoordinates LatLng          `json:"destination_coordinates"`
	TransferCoordinates    *LatLng         `json:"transfer_coordinates,omitempty"`
	TransferPoint          *string         `json:"transfer_point"`
	Shape                  json.RawMessage `json:"shape"`
	NextBuses              []NextBus       `json:"next_buses"`
}

// Legs returns the option's polylines, one per leg.
func (o RouteOption) Legs() ([][]LatLng, error) {
	if len(o.Shape) == 0 || string(o.Shape) == "null" {
		return nil, nil
	}
	if o.HasTransfer {
		var legs [][]LatLng
		if err := json.Unmarshal(o.Shape, &legs); err != nil {
			return nil, fmt.Errorf("transfer shape: %w", err)
		}
		return legs, nil
	}
	var leg []LatLng
	if err := json.Unmarshal(o.Shape, &leg); err != nil {
		return nil, fmt.Errorf("route shape: %w", err)
	}
	if len(leg) == 0 {
		return nil, nil
	}
	return [][]LatLng{leg}, nil
}
