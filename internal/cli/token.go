/*
PURPOSE:
  Defines the 'token' subcommand.
  Obtains (or refreshes) an API token and confirms the license is valid.

REQUIREMENTS:
  User-specified:
  - Verify a license works before a bulk run.

  Implementation-discovered:
  - Printing the token is intended here; scripts pass it to curl.

ARCHITECTURE INTEGRATION:
  - Calls: internal/workbench.Client.Token / CheckToken

ERROR HANDLING:
  - Credential or API errors propagate to main.

IMPLEMENTATION RULES:
  - Token goes to stdout; log lines go through output.Logger.

USAGE:
  benchfetch token --license ./license.xml

SELF-HEALING INSTRUCTIONS:
  - None.

RELATED FILES:
  - internal/workbench/token.go

MAINTENANCE:
  - None.
*/

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mfreitag/benchfetch/internal/output"
	"github.com/mfreitag/benchfetch/internal/workbench"
)

var tokenForceRefresh bool

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Obtain and validate a SecureSuite API token",
	Long: `Exchanges the license file for an API token, reusing a cached token when it
is still valid. Tokens expire after 20 minutes. The token is printed to stdout
for use in scripted API calls.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		c := workbench.NewClient(cfg)
		token, err := c.Token(cmd.Context(), cfg.LicenseFile, tokenForceRefresh)
		if err != nil {
			return err
		}

		valid, err := c.CheckToken(cmd.Context(), token)
		if err != nil {
			return err
		}
		if !valid {
			return fmt.Errorf("server rejected the freshly issued token")
		}

		output.Logger.Info("Token valid for 20 minutes")
		fmt.Println(token)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tokenCmd)
	tokenCmd.Flags().BoolVar(&tokenForceRefresh, "force-refresh", false, "Request a new token even if a cached one is valid")
}
