package commands

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"yatra/internal/domain"
	"yatra/internal/services/fare"
)

func fareCmd() *cobra.Command {
	var (
		transfers   int
		userType    string
		tripsPerDay int
	)
	cmd := &cobra.Command{
		Use:   "fare <route-id>",
		Short: "Estimate a fare and recommend a pass",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("route id %q: %w", args[0], err)
			}
			sum, err := wire.Fare.Calculate(cmd.Context(), domain.FareRequest{
				RouteID:     id,
				Transfers:   transfers,
				UserType:    domain.UserType(userType),
				TripsPerDay: tripsPerDay,
			})
			if err != nil {
				return err
			}
			return emit(cmd, sum, func(w io.Writer) error {
				e := sum.Estimate
				fmt.Fprintf(w, "Base fare:     ₹%s\n", e.Breakdown.BaseFare)
				fmt.Fprintf(w, "Transfer fare: ₹%s\n", e.Breakdown.TransferFare)
				fmt.Fprintf(w, "Discount:      ₹%s (%.0f%%)\n", e.Breakdown.DiscountAmount, e.Breakdown.DiscountPct.Float()*100)
				fmt.Fprintf(w, "Total:         ₹%s\n", e.Total)
				if len(sum.Passes) > 0 {
					fmt.Fprintln(w, "\nPasses:")
					for _, p := range sum.Passes {
						fmt.Fprintf(w, "  %-14s ₹%s / %s\n", p.Name, p.Price, p.Period)
					}
				}
				if r := sum.Recommendation; r != nil {
					fmt.Fprintf(w, "\nRecommended: %s (%s) ₹%s, pays off above %.1f trips per day\n",
						r.Plan, r.Period, r.Price, r.BreakEvenTripsPerDay)
				}
				for _, warn := range sum.Warnings {
					fmt.Fprintf(w, "note: %s\n", warn)
				}
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&transfers, "transfers", 0, "number of transfers (0-3)")
	cmd.Flags().StringVar(&userType, "user-type", string(domain.UserDefault), "default|student|senior")
	cmd.Flags().IntVar(&tripsPerDay, "trips-per-day", fare.DefaultTripsPerDay, "trips per day for the pass quote")
	return cmd
}
