package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/brisa-digital/quiz-crm/internal/model"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show dashboard statistics",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := cfg.Validate("cli"); err != nil {
			return err
		}
		ctx := cmd.Context()

		svc, cleanup, err := initService(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		stats, err := svc.Stats(ctx)
		if err != nil {
			return eris.Wrap(err, "stats")
		}

		formatStats(os.Stdout, stats)
		return nil
	},
}

func formatStats(w io.Writer, s model.DashboardStats) {
	fmt.Fprintf(w, "Total leads:      %d\n", s.TotalLeads)
	fmt.Fprintf(w, "New today:        %d\n", s.NewLeadsToday)
	fmt.Fprintf(w, "Conversion rate:  %.1f%%\n", s.ConversionRate)
	fmt.Fprintf(w, "Popular result:   %s\n", s.PopularQuizResult)

	fmt.Fprintln(w, "\nBy status:")
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, sc := range s.LeadsByStatus {
		fmt.Fprintf(tw, "  %s\t%d\n", sc.Status, sc.Count)
	}
	tw.Flush() //nolint:errcheck

	fmt.Fprintln(w, "\nLast 7 days:")
	tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, dc := range s.LeadsPerDay {
		fmt.Fprintf(tw, "  %s\t%d\n", dc.Date, dc.Count)
	}
	tw.Flush() //nolint:errcheck
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
