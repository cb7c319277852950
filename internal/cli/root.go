/*
PURPOSE:
  Defines the root Cobra command for the benchfetch CLI.
  Handles global flags and command initialization.

REQUIREMENTS:
  User-specified:
  - Provide a CLI interface.
  - Support global flags like --config and --license.

  Implementation-discovered:
  - Needs to expose an Execute() function for main.go.

ARCHITECTURE INTEGRATION:
  - Called by: cmd/benchfetch/main.go
  - Calls: Child commands (run, token, list, details, download, report)

ERROR HANDLING:
  - Returns error to main.go for exit code handling.

IMPLEMENTATION RULES:
  - Use `PersistentFlags()` for flags available to all subcommands.
  - Keep Run logic in subcommands, Root is usually empty or helps.

USAGE:
  Called by main.go.

SELF-HEALING INSTRUCTIONS:
  - If adding new global flags, add them to init().

RELATED FILES:
  - cmd/benchfetch/main.go

MAINTENANCE:
  - Update when adding new global configuration options.
*/

package cli

import (
	"github.com/spf13/cobra"

	"github.com/mfreitag/benchfetch/internal/config"
	"github.com/mfreitag/benchfetch/internal/output"
)

var (
	// cfgFile stores the path to the config file (if specified via flag)
	cfgFile string
	// licenseOverride stores the license file path (if specified via flag)
	licenseOverride string
	// verbose enables debug-level logging
	verbose bool

	rootCmd = &cobra.Command{
		Use:   "benchfetch",
		Short: "Download CIS benchmarks via the SecureSuite Member API",
		Long:  `A client for the CIS WorkBench vendor API. Authenticates with a SecureSuite license file and downloads published benchmarks. Use 'run --help' for the bulk download workflow.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			output.Init(verbose)
		},
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig loads the config file and applies the global flag overrides
// shared by all subcommands.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if licenseOverride != "" {
		cfg.LicenseFile = licenseOverride
	}
	return cfg, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./benchfetch.yaml)")
	rootCmd.PersistentFlags().StringVar(&licenseOverride, "license", "", "path to the SecureSuite license file (XML or JSON)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug-level logging")
}
