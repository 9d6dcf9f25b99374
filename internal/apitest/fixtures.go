package apitest

import (
	"encoding/json"
	"fmt"
	"strings"

	"yatra/internal/domain"
)

type fixtures struct {
	stops     []domain.Stop
	routes    []domain.BusRoute
	trips     map[int64][]domain.BusTrip
	schedules []domain.Schedule
	passes    []domain.PassOption
	// options is keyed by lower-cased "source|destination".
	options map[string][]domain.RouteOption
}

var ahmedabadStops = []domain.Stop{
	{ID: 1, Name: "Kalupur Railway Station", Latitude: 23.0258, Longitude: 72.6010},
	{ID: 2, Name: "Lal Darwaja", Latitude: 23.0225, Longitude: 72.5800},
	{ID: 3, Name: "Nehru Bridge", Latitude: 23.0250, Longitude: 72.5730},
	{ID: 4, Name: "Paldi", Latitude: 23.0120, Longitude: 72.5630},
	{ID: 5, Name: "Iskcon Cross Road", Latitude: 23.0270, Longitude: 72.5070},
	{ID: 6, Name: "Shivranjani", Latitude: 23.0230, Longitude: 72.5290},
	{ID: 7, Name: "Vastrapur Lake", Latitude: 23.0370, Longitude: 72.5290},
	{ID: 8, Name: "Gujarat University", Latitude: 23.0350, Longitude: 72.5450},
	{ID: 9, Name: "Maninagar", Latitude: 22.9960, Longitude: 72.6030},
	{ID: 10, Name: "Naroda", Latitude: 23.0700, Longitude: 72.6600},
}

type routeFixture struct {
	id    int64
	name  string
	fare  domain.Amount
	stops []int64
	// departures from the first stop; each later stop is 6 minutes on.
	departures []string
}

var ahmedabadRoutes = []routeFixture{
	{id: 1, name: "1 Lal Darwaja - Iskcon", fare: 20, stops: []int64{2, 3, 4, 6, 5}, departures: []string{"07:00", "07:30", "08:00"}},
	{id: 2, name: "45 Kalupur - Vastrapur", fare: 25, stops: []int64{1, 2, 3, 8, 7}, departures: []string{"06:45", "07:45", "08:45"}},
	{id: 3, name: "101 Maninagar - Naroda", fare: 15, stops: []int64{9, 1, 10}, departures: []string{"09:00"}},
}

const stopGapMinutes = 6

func loadFixtures() *fixtures {
	fx := &fixtures{
		stops:   ahmedabadStops,
		trips:   make(map[int64][]domain.BusTrip),
		options: make(map[string][]domain.RouteOption),
		passes: []domain.PassOption{
			{ID: "daily", Name: "Daily Pass", Period: "day", Price: 40},
			{ID: "weekly", Name: "Weekly Pass", Period: "week", Price: 250},
			{ID: "monthly", Name: "Monthly Pass", Period: "month", Price: 800},
		},
	}
	byID := make(map[int64]domain.Stop, len(fx.stops))
	for _, s := range fx.stops {
		byID[s.ID] = s
	}

	var tripID int64 = 1
	for _, rf := range ahmedabadRoutes {
		start, end := byID[rf.stops[0]], byID[rf.stops[len(rf.stops)-1]]
		pattern := domain.TripPattern{ID: rf.id, Route: rf.id}
		shape := &domain.RouteShape{}
		for i, id := range rf.stops {
			pattern.Stops = append(pattern.Stops, domain.PatternStop{StopOrder: i + 1, Stop: byID[id]})
			shape.Coordinates = append(shape.Coordinates, byID[id].Position())
		}
		fx.routes = append(fx.routes, domain.BusRoute{
			ID:           rf.id,
			Name:         rf.name,
			StartStop:    &start,
			EndStop:      &end,
			TripPatterns: []domain.TripPattern{pattern},
			Shape:        shape,
			Fares:        []domain.Fare{{ID: rf.id, Route: rf.id, Amount: rf.fare}},
		})

		for _, dep := range rf.departures {
			trip := domain.BusTrip{ID: tripID, Pattern: pattern.ID, DepartureTime: clock(dep, 0)}
			tripID++
			for i, ps := range pattern.Stops {
				t := clock(dep, i*stopGapMinutes)
				trip.StopTimes = append(trip.StopTimes, domain.TripStopTime{
					StopOrder: ps.StopOrder, Stop: ps.Stop, ArrivalTime: t, DepartureTime: t,
				})
			}
			trip.ArrivalTime = trip.StopTimes[len(trip.StopTimes)-1].ArrivalTime
			fx.trips[rf.id] = append(fx.trips[rf.id], trip)
		}

		tr := fx.trips[rf.id]
		freq := "N/A"
		if len(rf.departures) > 1 {
			freq = fmt.Sprintf("%d mins", minutes(rf.departures[1])-minutes(rf.departures[0]))
		}
		fx.schedules = append(fx.schedules, domain.Schedule{
			RouteID:   rf.id,
			RouteNo:   rf.name,
			StartTime: tr[0].DepartureTime[:5],
			EndTime:   tr[len(tr)-1].ArrivalTime[:5],
			Frequency: freq,
		})
	}

	kalupur, nehru, paldi := byID[1], byID[3], byID[4]
	direct := domain.RouteOption{
		ID:                     1,
		Name:                   ahmedabadRoutes[0].name,
		Fare:                   ahmedabadRoutes[0].fare,
		SourceCoordinates:      byID[2].Position(),
		DestinationCoordinates: byID[5].Position(),
		Shape:                  mustJSON(fx.routes[0].Shape.Coordinates),
		NextBuses: []domain.NextBus{
			{TripID: 1, DepartureTime: "07:00", ArrivalTime: "07:24"},
			{TripID: 2, DepartureTime: "07:30", ArrivalTime: "07:54"},
			{TripID: 3, DepartureTime: "08:00", ArrivalTime: "08:24"},
		},
	}
	transferAt := nehru.Position()
	transferName := nehru.Name
	transfer := domain.RouteOption{
		ID:                     2,
		SecondLegID:            1,
		Name:                   ahmedabadRoutes[1].name + " + " + ahmedabadRoutes[0].name,
		FirstLeg:               ahmedabadRoutes[1].name,
		SecondLeg:              ahmedabadRoutes[0].name,
		Fare:                   ahmedabadRoutes[1].fare + ahmedabadRoutes[0].fare,
		HasTransfer:            true,
		SourceCoordinates:      kalupur.Position(),
		DestinationCoordinates: paldi.Position(),
		TransferCoordinates:    &transferAt,
		TransferPoint:          &transferName,
		Shape: mustJSON([][]domain.LatLng{
			{kalupur.Position(), byID[2].Position(), nehru.Position()},
			{nehru.Position(), paldi.Position()},
		}),
		NextBuses: []domain.NextBus{{TripID: 4, DepartureTime: "06:45", ArrivalTime: "06:57"}},
	}
	fx.options[optionKey("Lal Darwaja", "Iskcon Cross Road")] = []domain.RouteOption{direct}
	fx.options[optionKey("Kalupur Railway Station", "Paldi")] = []domain.RouteOption{transfer}
	return fx
}

func optionKey(source, destination string) string {
	return strings.ToLower(strings.TrimSpace(source)) + "|" + strings.ToLower(strings.TrimSpace(destination))
}

func minutes(hhmm string) int {
	var h, m int
	_, _ = fmt.Sscanf(hhmm, "%d:%d", &h, &m)
	return h*60 + m
}

// clock returns hhmm plus offset minutes as "HH:MM:SS".
func clock(hhmm string, offset int) string {
	t := minutes(hhmm) + offset
	return fmt.Sprintf("%02d:%02d:00", (t/60)%24, t%60)
}

func mustJSON(v any) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}

func (fx *fixtures) route(id int64) (domain.BusRoute, bool) {
	for _, r := range fx.routes {
		if r.ID == id {
			return r, true
		}
	}
	return domain.BusRoute{}, false
}
