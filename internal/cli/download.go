/*
PURPOSE:
  Defines the 'download' subcommand.
  Downloads a single benchmark by workbench id.

REQUIREMENTS:
  User-specified:
  - Grab one benchmark without a full run.

  Implementation-discovered:
  - The artifact filename matches the bulk run naming so both flows are
    interchangeable.

ARCHITECTURE INTEGRATION:
  - Calls: internal/workbench.Client.Download
  - Uses: internal/output.WriteArtifact

ERROR HANDLING:
  - 404 / missing format surfaces as a not-found error; nothing is written.

IMPLEMENTATION RULES:
  - Write atomically via output.WriteArtifact.

USAGE:
  benchfetch download 12345 --format SCAP -o ./benchmarks

SELF-HEALING INSTRUCTIONS:
  - None.

RELATED FILES:
  - internal/workbench/runner.go

MAINTENANCE:
  - None.
*/

package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/mfreitag/benchfetch/internal/output"
	"github.com/mfreitag/benchfetch/internal/workbench"
)

var (
	downloadFormat    string
	downloadOutputDir string
)

var downloadCmd = &cobra.Command{
	Use:   "download <workbench-id>",
	Short: "Download a single benchmark",
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
		if downloadOutputDir != "" {
			cfg.OutputDir = downloadOutputDir
		}

		format := downloadFormat
		if format == "" {
			if len(cfg.Formats) == 0 {
				return fmt.Errorf("no download format configured")
			}
			format = cfg.Formats[0]
		}

		if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", cfg.OutputDir, err)
		}

		c := workbench.NewClient(cfg)
		token, err := c.Token(cmd.Context(), cfg.LicenseFile, false)
		if err != nil {
			return err
		}

		data, err := c.Download(cmd.Context(), token, id, format)
		if err != nil {
			return err
		}

		path := filepath.Join(cfg.OutputDir, workbench.ArtifactName(id, format, time.Now()))
		if err := output.WriteArtifact(path, data); err != nil {
			return err
		}

		output.Logger.Info("Saved benchmark", "id", id, "path", path, "bytes", len(data))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(downloadCmd)

	downloadCmd.Flags().StringVar(&downloadFormat, "format", "", "Download format (defaults to the first configured format)")
	downloadCmd.Flags().StringVarP(&downloadOutputDir, "output-dir", "o", "", "Output directory for the downloaded benchmark")
}
