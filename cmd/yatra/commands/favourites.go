package commands

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"yatra/internal/api"
	"yatra/internal/domain"
)

func favouritesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "favourites",
		Aliases: []string{"fav"},
		Short:   "Manage saved journeys",
	}
	list := func(use, short string, fetch func(cmd *cobra.Command) ([]domain.Favourite, error)) *cobra.Command {
		return &cobra.Command{
			Use:   use,
			Short: short,
			RunE: func(cmd *cobra.Command, args []string) error {
				favs, err := fetch(cmd)
				if err != nil {
					return err
				}
				return emit(cmd, favs, func(w io.Writer) error { return favouriteTable(w, favs) })
			},
		}
	}
	cmd.AddCommand(
		list("list", "List all favourites", func(cmd *cobra.Command) ([]domain.Favourite, error) {
			return wire.API.Favourites(cmd.Context())
		}),
		list("mine", "List your favourites", func(cmd *cobra.Command) ([]domain.Favourite, error) {
			return wire.API.UserFavourites(cmd.Context())
		}),
		favouriteAddCmd(),
		favouriteRemoveCmd(),
	)
	return cmd
}

func favouriteTable(w io.Writer, favs []domain.Favourite) error {
	rows := make([][]any, 0, len(favs))
	for _, f := range favs {
		rows = append(rows, []any{f.ID, f.RouteIdentifier, deref(f.Source), deref(f.Destination), f.Username})
	}
	return table(w, "ID\tROUTE\tFROM\tTO\tUSER", rows)
}

func favouriteAddCmd() *cobra.Command {
	var source, destination string
	cmd := &cobra.Command{
		Use:   "add <route>",
		Short: "Save a route as a favourite",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fav, err := wire.API.AddFavourite(cmd.Context(), domain.FavouriteInput{
				RouteIdentifier: args[0],
				Source:          source,
				Destination:     destination,
			})
			if err != nil {
				return err
			}
			return emit(cmd, fav, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "Saved favourite %d\n", fav.ID)
				return err
			})
		},
	}
	cmd.Flags().StringVar(&source, "source", "", "boarding stop")
	cmd.Flags().StringVar(&destination, "destination", "", "alighting stop")
	return cmd
}

func favouriteRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Delete a favourite",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("favourite id %q: %w", args[0], err)
			}
			err = wire.API.DeleteFavourite(cmd.Context(), id)
			var apiErr *api.Error
			if errors.As(err, &apiErr) && apiErr.NotFound() {
				return fmt.Errorf("no favourite %d in your list", id)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed favourite %d\n", id)
			return nil
		},
	}
}
