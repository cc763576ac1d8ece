package cmd

import (
	"errors"
	"fmt"

	"github.com/ropeadope62/zeroenv/internal/audit"
	zerrors "github.com/ropeadope62/zeroenv/internal/errors"
	"github.com/ropeadope62/zeroenv/internal/secrets"
	"github.com/ropeadope62/zeroenv/internal/ui"

	"github.com/spf13/cobra"
)

var exportFormat string

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "env", "output format: env or json")
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all secrets in env or JSON format",
	Long: `Export all decrypted secrets to stdout.

Usage:
  zeroenv export > .env
  zeroenv export --format json > secrets.json

The env format quotes values containing whitespace or quotes, so the output
can be sourced by a shell or loaded by dotenv tooling.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store := secrets.NewStore(directory)

		out, err := store.ExportAll(exportFormat)
		if err != nil {
			switch {
			case errors.Is(err, zerrors.ErrUnknownExportFormat):
				fmt.Print(ui.EnsureNewline(ui.Error.Sprint("✗") + " Unknown format " + ui.Code.Sprint(exportFormat) + ", expected " + ui.Code.Sprint("env") + " or " + ui.Code.Sprint("json")))
			case errors.Is(err, zerrors.ErrNotInitialized):
				fmt.Print(ui.EnsureNewline(notInitializedMessage()))
			case errors.Is(err, zerrors.ErrMasterKeyNotFound), errors.Is(err, zerrors.ErrInvalidMasterKey):
				fmt.Print(ui.EnsureNewline(keyProblemMessage(err)))
			default:
				Logger.Errorf("failed to export secrets: %v", err)
			}
			return err
		}

		count := 0
		if info, infoErr := store.Info(); infoErr == nil {
			count = info.SecretCount
		}
		audit.Log(directory, audit.Entry{Operation: "export", Format: exportFormat, Count: count})

		if exportFormat == "json" {
			fmt.Fprintln(cmd.OutOrStdout(), out)
		} else {
			fmt.Fprint(cmd.OutOrStdout(), out)
		}
		return nil
	},
}
