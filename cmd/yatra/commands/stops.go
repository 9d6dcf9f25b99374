package commands

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"
)

func stopsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stops",
		Short: "Search stops by name or by location",
	}
	cmd.AddCommand(stopsSearchCmd(), stopsNearbyCmd())
	return cmd
}

func stopsSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <name>",
		Short: "Suggest stops whose name matches",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stops, err := wire.Suggest.Suggest(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return emit(cmd, stops, func(w io.Writer) error {
				rows := make([][]any, 0, len(stops))
				for _, s := range stops {
					rows = append(rows, []any{s.ID, s.Name, fmt.Sprintf("%.5f,%.5f", s.Latitude, s.Longitude)})
				}
				return table(w, "ID\tNAME\tPOSITION", rows)
			})
		},
	}
}

func stopsNearbyCmd() *cobra.Command {
	var lat, lng, radius float64
	cmd := &cobra.Command{
		Use:   "nearby",
		Short: "List stops within a radius of a location",
		RunE: func(cmd *cobra.Command, args []string) error {
			near, err := wire.API.NearbyStops(cmd.Context(), lat, lng, radius)
			if err != nil {
				return err
			}
			sort.SliceStable(near, func(i, j int) bool { return near[i].DistanceM < near[j].DistanceM })
			return emit(cmd, near, func(w io.Writer) error {
				rows := make([][]any, 0, len(near))
				for _, n := range near {
					rows = append(rows, []any{n.Stop.ID, n.Stop.Name, fmt.Sprintf("%d m", n.DistanceM)})
				}
				return table(w, "ID\tNAME\tDISTANCE", rows)
			})
		},
	}
	cmd.Flags().Float64Var(&lat, "lat", 0, "latitude")
	cmd.Flags().Float64Var(&lng, "lng", 0, "longitude")
	cmd.Flags().Float64Var(&radius, "radius", 0, "radius in metres (server default 1000)")
	_ = cmd.MarkFlagRequired("lat")
	_ = cmd.MarkFlagRequired("lng")
	return cmd
}
