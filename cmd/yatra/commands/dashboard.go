package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func dashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Your profile, favourites and feedback",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := wire.Dashboard.Load(cmd.Context())
			if err != nil {
				return err
			}
			return emit(cmd, d, func(w io.Writer) error {
				fmt.Fprintf(w, "%s <%s>\n\nFavourites (%d)\n", d.User.Username, d.User.Email, len(d.Favourites))
				if err := favouriteTable(w, d.Favourites); err != nil {
					return err
				}
				fmt.Fprintf(w, "\nFeedback (%d)\n", len(d.Feedback))
				if err := feedbackTable(w, d.Feedback); err != nil {
					return err
				}
				for _, warn := range d.Warnings {
					fmt.Fprintf(w, "note: %s\n", warn)
				}
				return nil
			})
		},
	}
}
