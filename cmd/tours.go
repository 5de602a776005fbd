package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var toursCmd = &cobra.Command{
	Use:   "tours [tour-id]",
	Short: "List recent tours, or the steps of one tour",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		out := cmd.OutOrStdout()
		repo := s.EventRepo()

		if len(args) == 1 {
			events, err := repo.TourEvents(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("query tour: %w", err)
			}
			if len(events) == 0 {
				return fmt.Errorf("tour %s not found", args[0])
			}
			fmt.Fprintf(out, "%-19s  %-9s  %5s  %s\n", "Timestamp", "Action", "Slide", "Kind")
			rule(out, 64)
			for _, e := range events {
				fmt.Fprintf(out, "%-19s  %-9s  %5d  %s\n",
					e.Timestamp.Local().Format(timeLayout), e.Action, e.SlideIndex+1, e.SlideKind)
			}
			return nil
		}

		limit, _ := cmd.Flags().GetInt("limit")
		tours, err := repo.RecentTours(cmd.Context(), limit)
		if err != nil {
			return fmt.Errorf("query tours: %w", err)
		}
		if len(tours) == 0 {
			fmt.Fprintln(out, "No tours recorded yet.")
			return nil
		}

		fmt.Fprintf(out, "%-36s  %-19s  %6s  %8s  %8s  %s\n",
			"Tour", "Started", "Steps", "Interact", "Furthest", "Finished")
		rule(out, 100)
		for _, t := range tours {
			fmt.Fprintf(out, "%-36s  %-19s  %6d  %8d  %8d  %s\n",
				t.TourID,
				t.StartedAt.Local().Format(timeLayout),
				t.Events,
				t.Interactions,
				t.FurthestSlide+1,
				mark(t.Finished),
			)
		}
		return nil
	},
}

func init() {
	toursCmd.Flags().IntP("limit", "n", 20, "Number of tours to show")
}
