/*
PURPOSE:
  Defines the 'report' subcommand.
  Renders a saved benchmark listing as a fixed-width table (and optional CSV).

REQUIREMENTS:
  User-specified:
  - Offline overview of downloadable benchmarks from the saved list file.
  - Manual benchmarks skipped by default.

ARCHITECTURE INTEGRATION:
  - Uses: internal/output.ReadBenchmarkList, TableWriter, CSVWriter

ERROR HANDLING:
  - Missing or malformed list file is an error; run 'list' first.

IMPLEMENTATION RULES:
  - Pure local operation; no API calls.

USAGE:
  benchfetch report --input available_benchmarks.json --output benchmarks.txt

SELF-HEALING INSTRUCTIONS:
  - If the list file is stale, re-run 'benchfetch list'.

RELATED FILES:
  - internal/output/report.go
  - internal/output/csv.go

MAINTENANCE:
  - None.
*/

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mfreitag/benchfetch/internal/output"
)

var (
	reportInput         string
	reportOutput        string
	reportCSV           string
	reportIncludeManual bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render a table of available benchmarks from a saved list",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		input := reportInput
		if input == "" {
			input = cfg.ListFile
		}

		list, err := output.ReadBenchmarkList(input)
		if err != nil {
			return fmt.Errorf("failed to read benchmark list %s (run 'benchfetch list' first): %w", input, err)
		}

		tw, err := output.NewTableWriter(reportOutput)
		if err != nil {
			return fmt.Errorf("failed to create report %s: %w", reportOutput, err)
		}
		defer tw.Close()

		var cw *output.CSVWriter
		if reportCSV != "" {
			cw, err = output.NewCSVWriter(reportCSV)
			if err != nil {
				return fmt.Errorf("failed to create CSV report %s: %w", reportCSV, err)
			}
			defer cw.Close()
		}

		rows := 0
		for _, b := range list.Benchmarks {
			if !reportIncludeManual && !b.Automated() {
				continue
			}
			if err := tw.Write(b); err != nil {
				return err
			}
			if cw != nil {
				if err := cw.Write(b); err != nil {
					return err
				}
			}
			rows++
		}

		output.Logger.Info("Report written", "path", reportOutput, "rows", rows, "listed", len(list.Benchmarks))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringVar(&reportInput, "input", "", "Saved benchmark list file (defaults to the configured list_file)")
	reportCmd.Flags().StringVar(&reportOutput, "output", "benchmarks.txt", "Report output file")
	reportCmd.Flags().StringVar(&reportCSV, "csv", "", "Also write the report as CSV to this file")
	reportCmd.Flags().BoolVar(&reportIncludeManual, "include-manual", false, "Include benchmarks with Manual assessment status")
}
