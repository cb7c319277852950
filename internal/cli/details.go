/*
PURPOSE:
  Defines the 'details' subcommand.
  Prints the full metadata document for one benchmark.

REQUIREMENTS:
  User-specified:
  - Inspect one benchmark without downloading content.

ARCHITECTURE INTEGRATION:
  - Calls: internal/workbench.Client.BenchmarkDetails

ERROR HANDLING:
  - Unknown id surfaces as a not-found error.

IMPLEMENTATION RULES:
  - Emit the vendor JSON verbatim (indented); do not re-model it.

USAGE:
  benchfetch details 12345

SELF-HEALING INSTRUCTIONS:
  - None.

RELATED FILES:
  - internal/workbench/client.go

MAINTENANCE:
  - None.
*/

package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mfreitag/benchfetch/internal/workbench"
)

var detailsCmd = &cobra.Command{
	Use:   "details <workbench-id>",
	Short: "Show metadata for a single benchmark",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid workbench id %q: %w", args[0], err)
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		c := workbench.NewClient(cfg)
		token, err := c.Token(cmd.Context(), cfg.LicenseFile, false)
		if err != nil {
			return err
		}

		details, err := c.BenchmarkDetails(cmd.Context(), token, id)
		if err != nil {
			return err
		}

		var buf bytes.Buffer
		if err := json.Indent(&buf, details, "", "  "); err != nil {
			// Fall back to the raw body; it is still valid JSON.
			buf.Reset()
			buf.Write(details)
		}
		fmt.Println(buf.String())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(detailsCmd)
}
