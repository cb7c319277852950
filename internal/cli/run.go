/*
PURPOSE:
  Defines the 'run' subcommand.
  Executes the full download workflow.

REQUIREMENTS:
  User-specified:
  - One command that authenticates, lists, and downloads everything.
  - Specific flags for overrides.

  Implementation-discovered:
  - Need to load config first.
  - Apply flag overrides to config.

ARCHITECTURE INTEGRATION:
  - Calls: internal/workbench.Run()
  - Uses: internal/config

ERROR HANDLING:
  - Returns error if config load fails or the workflow fails.

IMPLEMENTATION RULES:
  - Setup flags in init().
  - Logic: Load Config -> Override -> workbench.Run.

USAGE:
  benchfetch run --formats JSON,YAML -o ./downloads

SELF-HEALING INSTRUCTIONS:
  - Check flag names match Config struct fields generally.

RELATED FILES:
  - internal/cli/root.go

MAINTENANCE:
  - Update when adding new CLI overrides.
*/

package cli

import (
	"github.com/spf13/cobra"

	"github.com/mfreitag/benchfetch/internal/workbench"
)

var (
	formatsOverride []string
	outputOverride  string
	excludeOverride []string
	idsOverride     []int64
	includeManual   bool
	forceRefresh    bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Download all selected benchmarks",
	Long: `Executes the full download workflow against the SecureSuite Member API.
The process follows a strict protocol:
1. Auth: Obtains an API token from the license file (cached tokens are reused while valid).
2. Listing: Fetches the published benchmark list and saves it to disk.
3. Download: Fetches each selected benchmark in the first configured format it offers.

Artifacts are written atomically; a failed download never leaves a file behind.
Benchmarks with a Manual assessment status are skipped unless --include-manual is set.`,
	Example: `  # Download everything automated, JSON format, into the working directory
  benchfetch run

  # Specific benchmarks, preferred formats in order, custom output directory
  benchfetch run --ids 12345,67890 --formats SCAP,JSON -o ./benchmarks

  # Skip Windows benchmarks and force a fresh token
  benchfetch run --exclude windows --force-refresh`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// 1. Load Config
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		// 2. Overrides
		if len(formatsOverride) > 0 {
			cfg.Formats = formatsOverride
		}
		if outputOverride != "" {
			cfg.OutputDir = outputOverride
		}
		if len(excludeOverride) > 0 {
			cfg.Exclude = excludeOverride
		}
		if includeManual {
			cfg.IncludeManual = true
		}

		// 3. Execution
		return workbench.Run(cmd.Context(), cfg, workbench.RunOptions{
			IDs:          idsOverride,
			ForceRefresh: forceRefresh,
		})
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringSliceVar(&formatsOverride, "formats", nil, "Comma-separated list of formats to try in order (SCAP, YAML, JSON, XCCDFPLUSAE, DATASTREAM)")
	runCmd.Flags().StringVarP(&outputOverride, "output-dir", "o", "", "Output directory for downloaded benchmarks")
	runCmd.Flags().StringSliceVar(&excludeOverride, "exclude", nil, "Comma-separated list of substrings to exclude from benchmark titles")
	runCmd.Flags().Int64SliceVar(&idsOverride, "ids", nil, "Comma-separated list of workbench ids to download (skips the rest)")
	runCmd.Flags().BoolVar(&includeManual, "include-manual", false, "Also download benchmarks with Manual assessment status")
	runCmd.Flags().BoolVar(&forceRefresh, "force-refresh", false, "Request a new token even if a cached one is valid")
}
