package commands

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"yatra/internal/domain"
	"yatra/internal/geo"
)

// Viewport used to report a map zoom for routes and journeys.
const (
	viewportWidth  = 1024
	viewportHeight = 768
	maxZoom        = 18
	fitPadding     = 0.1
)

func routesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "routes [query]",
		Short: "List routes whose number or terminal stops match query",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			routes, err := wire.Catalog.Routes(cmd.Context(), firstArg(args))
			if err != nil {
				return err
			}
			return emit(cmd, routes, func(w io.Writer) error {
				rows := make([][]any, 0, len(routes))
				for _, r := range routes {
					rows = append(rows, []any{r.ID, r.RouteNo, r.StartStop, r.EndStop})
				}
				return table(w, "ID\tROUTE\tFROM\tTO", rows)
			})
		},
	}
}

func routeCmd() *cobra.Command {
	var trips bool
	cmd := &cobra.Command{
		Use:   "route <id>",
		Short: "Show a route with its stops, fares and map viewport",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("route id %q: %w", args[0], err)
			}
			route, err := wire.API.Route(cmd.Context(), id)
			if err != nil {
				return err
			}
			var list []domain.BusTrip
			if trips {
				if list, err = wire.API.RouteTrips(cmd.Context(), id); err != nil {
					return err
				}
			}
			result := struct {
				Route domain.BusRoute  `json:"route"`
				Trips []domain.BusTrip `json:"trips,omitempty"`
			}{route, list}
			return emit(cmd, result, func(w io.Writer) error {
				printRoute(w, route)
				if trips {
					fmt.Fprintln(w)
					rows := make([][]any, 0, len(list))
					for _, t := range list {
						rows = append(rows, []any{t.ID, t.DepartureTime, t.ArrivalTime, len(t.StopTimes)})
					}
					return table(w, "TRIP\tDEPARTS\tARRIVES\tSTOPS", rows)
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&trips, "trips", false, "also list scheduled trips")
	return cmd
}

func printRoute(w io.Writer, r domain.BusRoute) {
	fmt.Fprintf(w, "Route %d: %s\n", r.ID, r.Name)
	for _, f := range r.Fares {
		fmt.Fprintf(w, "Fare: ₹%s\n", f.Amount)
	}
	for _, p := range r.TripPatterns {
		fmt.Fprintf(w, "Pattern %d:\n", p.ID)
		for _, ps := range p.Stops {
			fmt.Fprintf(w, "  %2d. %s\n", ps.StopOrder, ps.Stop.Name)
		}
	}
	if r.Shape != nil && len(r.Shape.Coordinates) > 0 {
		fmt.Fprintf(w, "Length: %.1f km\n", geo.PathLengthMeters(r.Shape.Coordinates)/1000)
		printViewport(w, r.Shape.Coordinates)
	}
}

func printViewport(w io.Writer, points []domain.LatLng) {
	b, err := geo.Fit(points, fitPadding)
	if err != nil {
		return
	}
	c := b.Center()
	fmt.Fprintf(w, "Map: center %.5f,%.5f zoom %d (bounds %.5f,%.5f to %.5f,%.5f)\n",
		c.Lat(), c.Lng(), geo.Zoom(b, viewportWidth, viewportHeight, maxZoom),
		b.MinLat, b.MinLng, b.MaxLat, b.MaxLng)
}

func schedulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schedules [query]",
		Short: "List schedules whose route number matches query",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scheds, err := wire.Catalog.Schedules(cmd.Context(), firstArg(args))
			if err != nil {
				return err
			}
			return emit(cmd, scheds, func(w io.Writer) error {
				rows := make([][]any, 0, len(scheds))
				for _, s := range scheds {
					rows = append(rows, []any{s.RouteNo, s.StartTime, s.EndTime, s.Frequency})
				}
				return table(w, "ROUTE\tFIRST\tLAST\tEVERY", rows)
			})
		},
	}
}

func findCmd() *cobra.Command {
	var at string
	cmd := &cobra.Command{
		Use:   "find <source> <destination>",
		Short: "Search journeys between two stops",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := wire.API.FindRoute(cmd.Context(), domain.RouteQuery{
				Source: args[0], Destination: args[1], Time: at,
			})
			if err != nil {
				return err
			}
			return emit(cmd, opts, func(w io.Writer) error {
				if len(opts) == 0 {
					_, err := fmt.Fprintln(w, "No routes found.")
					return err
				}
				for i, o := range opts {
					if i > 0 {
						fmt.Fprintln(w)
					}
					if err := printOption(w, o); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&at, "time", "", "departure time HH:MM (default now)")
	return cmd
}

func printOption(w io.Writer, o domain.RouteOption) error {
	fmt.Fprintf(w, "%s  fare ₹%s\n", o.Name, o.Fare)
	if o.HasTransfer {
		fmt.Fprintf(w, "  change at %s: %s then %s\n", deref(o.TransferPoint), o.FirstLeg, o.SecondLeg)
	}
	legs, err := o.Legs()
	if err != nil {
		return err
	}
	var all []domain.LatLng
	for i, leg := range legs {
		fmt.Fprintf(w, "  leg %d: %.1f km\n", i+1, geo.PathLengthMeters(leg)/1000)
		all = append(all, leg...)
	}
	for _, nb := range o.NextBuses {
		fmt.Fprintf(w, "  next bus: %s -> %s (trip %d)\n", nb.DepartureTime, nb.ArrivalTime, nb.TripID)
	}
	if len(all) == 0 {
		all = []domain.LatLng{o.SourceCoordinates, o.DestinationCoordinates}
	}
	printViewport(w, all)
	return nil
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
