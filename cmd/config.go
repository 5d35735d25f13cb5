package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/brisa-digital/quiz-crm/internal/crm"
	"github.com/brisa-digital/quiz-crm/internal/model"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and update the CRM sync configuration",
}

// -- config get --

var configGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show the current CRM sync configuration",
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

		formatCrmConfig(os.Stdout, svc.Config())
		return nil
	},
}

// -- config set --

var (
	setAPIURL    string
	setAPIKey    string
	setSync      string
	setFrequency string
	setTags      []string
)

var configSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update CRM sync configuration fields",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := cfg.Validate("cli"); err != nil {
			return err
		}
		ctx := cmd.Context()

		var patch crm.ConfigPatch
		if cmd.Flags().Changed("api-url") {
			patch.APIURL = &setAPIURL
		}
		if cmd.Flags().Changed("api-key") {
			patch.APIKey = &setAPIKey
		}
		if cmd.Flags().Changed("sync") {
			switch setSync {
			case "on", "off":
			default:
				return eris.Errorf("--sync must be on or off, got %q", setSync)
			}
			enabled := setSync == "on"
			patch.SyncEnabled = &enabled
		}
		if cmd.Flags().Changed("frequency") {
			freq := model.SyncFrequency(setFrequency)
			switch freq {
			case model.SyncRealtime, model.SyncHourly, model.SyncDaily:
			default:
				return eris.Errorf("unknown sync frequency: %s", setFrequency)
			}
			patch.SyncFrequency = &freq
		}
		if cmd.Flags().Changed("tags") {
			patch.LeadsTags = setTags
		}

		svc, cleanup, err := initService(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		updated, err := svc.UpdateConfig(ctx, patch)
		if err != nil {
			return eris.Wrap(err, "config set")
		}

		formatCrmConfig(os.Stdout, updated)
		return nil
	},
}

func formatCrmConfig(w io.Writer, c model.CrmConfig) {
	fmt.Fprintf(w, "API URL:    %s\n", valueOrDash(c.APIURL))
	fmt.Fprintf(w, "API key:    %s\n", maskKey(c.APIKey))
	fmt.Fprintf(w, "Sync:       %s\n", onOff(c.SyncEnabled))
	fmt.Fprintf(w, "Frequency:  %s\n", c.SyncFrequency)
	fmt.Fprintf(w, "Lead tags:  %s\n", valueOrDash(strings.Join(c.LeadsTags, ", ")))
	fmt.Fprintf(w, "Ready:      %s\n", onOff(c.SyncReady()))
}

func valueOrDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func maskKey(key string) string {
	if key == "" {
		return "-"
	}
	if len(key) <= 4 {
		return "****"
	}
	return "****" + key[len(key)-4:]
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func init() {
	configSetCmd.Flags().StringVar(&setAPIURL, "api-url", "", "external CRM base URL")
	configSetCmd.Flags().StringVar(&setAPIKey, "api-key", "", "external CRM API key")
	configSetCmd.Flags().StringVar(&setSync, "sync", "", "enable or disable sync: on|off")
	configSetCmd.Flags().StringVar(&setFrequency, "frequency", "", "sync frequency: realtime|hourly|daily")
	configSetCmd.Flags().StringSliceVar(&setTags, "tags", nil, "default tags for new leads")

	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}
