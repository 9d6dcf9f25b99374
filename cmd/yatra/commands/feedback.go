package commands

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"yatra/internal/domain"
)

func feedbackCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "feedback",
		Short: "Submit and read feedback",
	}
	list := func(use, short string, fetch func(cmd *cobra.Command) ([]domain.Feedback, error)) *cobra.Command {
		return &cobra.Command{
			Use:   use,
			Short: short,
			RunE: func(cmd *cobra.Command, args []string) error {
				items, err := fetch(cmd)
				if err != nil {
					return err
				}
				return emit(cmd, items, func(w io.Writer) error { return feedbackTable(w, items) })
			},
		}
	}
	cmd.AddCommand(
		list("list", "List all feedback", func(cmd *cobra.Command) ([]domain.Feedback, error) {
			return wire.API.Feedback(cmd.Context())
		}),
		list("recent", "List the latest feedback", func(cmd *cobra.Command) ([]domain.Feedback, error) {
			return wire.API.RecentFeedback(cmd.Context())
		}),
		list("mine", "List your feedback", func(cmd *cobra.Command) ([]domain.Feedback, error) {
			return wire.API.UserFeedback(cmd.Context())
		}),
		feedbackSubmitCmd(),
		feedbackStatsCmd(),
	)
	return cmd
}

func feedbackTable(w io.Writer, items []domain.Feedback) error {
	rows := make([][]any, 0, len(items))
	for _, f := range items {
		rows = append(rows, []any{f.ID, f.Username, f.Rating, deref(f.Sentiment), f.CreatedAt.Local().Format("2006-01-02 15:04"), f.Comment})
	}
	return table(w, "ID\tUSER\tRATING\tSENTIMENT\tDATE\tCOMMENT", rows)
}

func feedbackSubmitCmd() *cobra.Command {
	var (
		rating  int
		comment string
	)
	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Rate the service",
		RunE: func(cmd *cobra.Command, args []string) error {
			fb, err := wire.API.SubmitFeedback(cmd.Context(), domain.FeedbackInput{Comment: comment, Rating: rating})
			if err != nil {
				return err
			}
			return emit(cmd, fb, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "Thanks! Feedback %d recorded (sentiment: %s)\n", fb.ID, deref(fb.Sentiment))
				return err
			})
		},
	}
	cmd.Flags().IntVar(&rating, "rating", 0, "rating from 1 to 5")
	cmd.Flags().StringVar(&comment, "comment", "", "what you thought")
	_ = cmd.MarkFlagRequired("rating")
	_ = cmd.MarkFlagRequired("comment")
	return cmd
}

func feedbackStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show feedback totals",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := wire.API.FeedbackStats(cmd.Context())
			if err != nil {
				return err
			}
			return emit(cmd, st, func(w io.Writer) error {
				fmt.Fprintf(w, "Total:   %d\nAverage: %.2f\n", st.Total, st.AverageRating)
				labels := make([]string, 0, len(st.SentimentBreakdown))
				for l := range st.SentimentBreakdown {
					labels = append(labels, l)
				}
				sort.Strings(labels)
				for _, l := range labels {
					fmt.Fprintf(w, "  %-10s %d\n", l, st.SentimentBreakdown[l])
				}
				return nil
			})
		},
	}
}
