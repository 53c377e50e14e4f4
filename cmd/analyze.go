package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"db-shuttle/internal/config"
	"db-shuttle/internal/connector"
	"db-shuttle/internal/errs"
	"db-shuttle/internal/report"
)

var (
	analyzeInput string
	analyzeTable string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Report which fields would be anonymized, without migrating anything",
	RunE: func(cmd *cobra.Command, args []string) error {
		if analyzeInput == "" {
			return errs.New(errs.KindConfiguration, "--input is required")
		}
		ep, err := config.ParseEndpoint(analyzeInput)
		if err != nil {
			return err
		}
		if err := ep.Validate(); err != nil {
			return err
		}

		ctx := cmd.Context()
		src := connector.New(ep, log)
		if err := src.Connect(ctx); err != nil {
			return err
		}
		defer src.Disconnect()

		var tables []string
		if analyzeTable != "" {
			tables = []string{analyzeTable}
		}
		reports, err := report.Analyze(ctx, src, tables)
		if err != nil {
			return err
		}

		for _, r := range reports {
			fmt.Printf("\n%s (%d rows)\n", r.Table, r.RowCount)
			for _, f := range r.Fields {
				marker := ""
				if f.Sensitive {
					marker = " [sensitive]"
				}
				fmt.Printf("  %-24s %s%s\n", f.Name, f.Type, marker)
			}
			fmt.Printf("  %d of %d fields flagged\n", r.Flagged, len(r.Fields))
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&analyzeInput, "input", "", "source endpoint URL")
	analyzeCmd.Flags().StringVar(&analyzeTable, "table", "", "analyze a single table (default: all)")
}
