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

var leadsCmd = &cobra.Command{
	Use:   "leads",
	Short: "Inspect and export captured leads",
}

// -- leads list --

var leadsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List captured leads",
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

		leads, err := svc.GetAll(ctx)
		if err != nil {
			return eris.Wrap(err, "leads list")
		}

		if len(leads) == 0 {
			fmt.Fprintln(os.Stderr, "No leads found.")
			return nil
		}

		formatLeadsList(os.Stdout, leads)
		return nil
	},
}

// -- leads show --

var leadsShowCmd = &cobra.Command{
	Use:   "show <lead-id>",
	Short: "Show full details of a lead",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("cli"); err != nil {
			return err
		}
		ctx := cmd.Context()

		svc, cleanup, err := initService(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		lead, err := svc.GetByID(ctx, args[0])
		if err != nil {
			return eris.Wrap(err, "leads show")
		}
		if lead == nil {
			return eris.Errorf("lead not found: %s", args[0])
		}

		formatLead(os.Stdout, lead)
		return nil
	},
}

// -- leads export --

var (
	exportFormat string
	exportOutput string
)

var leadsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all leads as CSV or XLSX",
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

		var data []byte
		switch exportFormat {
		case "csv":
			out, err := svc.ExportCSV(ctx)
			if err != nil {
				return eris.Wrap(err, "leads export")
			}
			data = []byte(out)
		case "xlsx":
			data, err = svc.ExportXLSX(ctx)
			if err != nil {
				return eris.Wrap(err, "leads export")
			}
		default:
			return eris.Errorf("unsupported format: %s (use csv or xlsx)", exportFormat)
		}

		if exportOutput == "" || exportOutput == "-" {
			_, err = os.Stdout.Write(data)
			return err
		}
		if err := os.WriteFile(exportOutput, data, 0644); err != nil {
			return eris.Wrap(err, "leads export: write file")
		}
		fmt.Fprintf(os.Stderr, "Wrote %d leads to %s\n", countExportedRows(exportFormat, data), exportOutput)
		return nil
	},
}

func formatLeadsList(w io.Writer, leads []model.Lead) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tSTATUS\tRESULT\tCREATED")
	for _, l := range leads {
		result := string(l.QuizResult)
		if result == "" {
			result = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			shortID(l.ID),
			l.Name,
			l.Email,
			l.Status,
			result,
			l.CreatedAt.Format("2006-01-02 15:04"),
		)
	}
	tw.Flush() //nolint:errcheck
}

func formatLead(w io.Writer, l *model.Lead) {
	fmt.Fprintf(w, "ID:         %s\n", l.ID)
	fmt.Fprintf(w, "Name:       %s\n", l.Name)
	fmt.Fprintf(w, "Email:      %s\n", l.Email)
	fmt.Fprintf(w, "Phone:      %s\n", l.Phone)
	if l.Company != "" {
		fmt.Fprintf(w, "Company:    %s\n", l.Company)
	}
	fmt.Fprintf(w, "Status:     %s\n", l.Status)
	if l.QuizResult != "" {
		fmt.Fprintf(w, "Result:     %s\n", l.QuizResult)
	}
	if len(l.Tags) > 0 {
		fmt.Fprintf(w, "Tags:       %v\n", l.Tags)
	}
	fmt.Fprintf(w, "Created:    %s\n", l.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "Updated:    %s\n", l.UpdatedAt.Format("2006-01-02 15:04:05"))
	if len(l.Interactions) > 0 {
		fmt.Fprintln(w, "Interactions:")
		for _, it := range l.Interactions {
			fmt.Fprintf(w, "  %s  [%s]  %s (%s)\n",
				it.Date.Format("2006-01-02 15:04"), it.Type, it.Description, it.By)
		}
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// countExportedRows reports the number of data rows in a CSV export. The
// export carries no trailing newline, so the newline count equals the row
// count past the header. Returns 0 for binary formats.
func countExportedRows(format string, data []byte) int {
	if format != "csv" || len(data) == 0 {
		return 0
	}
	rows := 0
	for _, b := range data {
		if b == '\n' {
			rows++
		}
	}
	return rows
}

func init() {
	leadsExportCmd.Flags().StringVar(&exportFormat, "format", "csv", "export format: csv or xlsx")
	leadsExportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default stdout)")

	leadsCmd.AddCommand(leadsListCmd)
	leadsCmd.AddCommand(leadsShowCmd)
	leadsCmd.AddCommand(leadsExportCmd)
	rootCmd.AddCommand(leadsCmd)
}
