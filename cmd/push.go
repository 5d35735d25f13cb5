package main

import (
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

var pushWorkers int

var pushCmd = &cobra.Command{
	Use:   "push",
	Short: "Push every stored lead to the external CRM",
	Long:  "Synchronously re-pushes the whole collection, reporting per-lead failures. Useful after enabling sync or recovering from an outage.",
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

		workers := pushWorkers
		if workers == 0 {
			workers = cfg.Sync.PushWorkers
		}

		report, err := svc.PushAll(ctx, workers)
		if err != nil {
			return eris.Wrap(err, "push")
		}

		fmt.Fprintf(os.Stdout, "Pushed %d/%d leads (%d failed)\n",
			report.Pushed, report.Total, report.Failed)
		if report.Failed > 0 {
			return eris.Errorf("push: %d of %d leads failed", report.Failed, report.Total)
		}
		return nil
	},
}

func init() {
	pushCmd.Flags().IntVar(&pushWorkers, "workers", 0, "concurrent pushes (default from config)")
	rootCmd.AddCommand(pushCmd)
}
