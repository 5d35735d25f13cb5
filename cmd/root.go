package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/brisa-digital/quiz-crm/internal/config"
	"github.com/brisa-digital/quiz-crm/internal/quiz"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "quizcrm",
	Short: "Quiz-driven lead capture and CRM",
	Long:  "Scores quiz answers into a site-profile recommendation, stores captured leads through their lifecycle, and pushes them to an external CRM.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		// A question referencing a category with no scoring weights would
		// silently skew every result, so refuse to start on an
		// inconsistent catalog.
		if err := quiz.ValidateTables(); err != nil {
			return fmt.Errorf("validate quiz catalog: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
