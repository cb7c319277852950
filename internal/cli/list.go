/*
PURPOSE:
  Defines the 'list' subcommand.
  Fetches the benchmark listing, saves it, and prints a summary.

REQUIREMENTS:
  User-specified:
  - See what is available before downloading.

  Implementation-discovered:
  - Saving the listing lets the 'report' subcommand run offline.

ARCHITECTURE INTEGRATION:
  - Calls: internal/workbench.Client.ListBenchmarks
  - Uses: internal/output.WriteBenchmarkList

ERROR HANDLING:
  - Prints error if auth or listing fails.

IMPLEMENTATION RULES:
  - Simple output to stdout.

USAGE:
  benchfetch list

SELF-HEALING INSTRUCTIONS:
  - None.

RELATED FILES:
  - internal/workbench/client.go
  - internal/cli/report.go

MAINTENANCE:
  - None.
*/

package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mfreitag/benchfetch/internal/output"
	"github.com/mfreitag/benchfetch/internal/workbench"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Fetch and save the list of available benchmarks",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		c := workbench.NewClient(cfg)
		token, err := c.Token(cmd.Context(), cfg.LicenseFile, false)
		if err != nil {
			return err
		}

		list, err := c.ListBenchmarks(cmd.Context(), token)
		if err != nil {
			return err
		}

		path := filepath.Join(cfg.OutputDir, cfg.ListFile)
		if err := output.WriteBenchmarkList(path, list); err != nil {
			return err
		}
		output.Logger.Info("Saved benchmark list", "path", path, "count", len(list.Benchmarks))

		for _, b := range list.Benchmarks {
			fmt.Printf("%d\t%s %s (%s)\n", b.WorkbenchID, b.Title, b.Version, b.AssessmentStatus)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
