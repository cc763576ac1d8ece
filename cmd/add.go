package cmd

import (
	"errors"
	"fmt"

	"github.com/ropeadope62/zeroenv/internal/audit"
	zerrors "github.com/ropeadope62/zeroenv/internal/errors"
	"github.com/ropeadope62/zeroenv/internal/secrets"
	"github.com/ropeadope62/zeroenv/internal/ui"
	"github.com/ropeadope62/zeroenv/internal/utils"

	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add [name] [value]",
	Short: "Add or update a secret",
	Long: `Add or update a secret.

Usage:
  zeroenv add                    # Prompt for name and value
  zeroenv add NAME               # Prompt for value only (hidden input)
  zeroenv add NAME VALUE         # Direct mode

Prefer the prompt forms: values given on the command line end up in your
shell history.`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := secrets.NewStore(directory)
		if !store.IsInitialized() {
			fmt.Print(ui.EnsureNewline(notInitializedMessage()))
			return zerrors.ErrNotInitialized
		}

		var name, value string
		var err error

		if len(args) >= 1 {
			name = args[0]
		} else {
			name, err = utils.ReadLine("Secret name: ")
			if err != nil {
				return Logger.ErrorfAndReturn("failed to read secret name: %v", err)
			}
		}
		if name == "" {
			return Logger.ErrorfAndReturn("secret name must not be empty")
		}

		if len(args) == 2 {
			value = args[1]
		} else {
			value, err = utils.ReadSecretValue("Value for " + name + ": ")
			if err != nil {
				return Logger.ErrorfAndReturn("failed to read secret value: %v", err)
			}
		}

		spinner, cleanup := startSpinner("Encrypting secret...", verbose)
		defer cleanup()

		if err := store.Add(name, value); err != nil {
			switch {
			case errors.Is(err, zerrors.ErrMasterKeyNotFound), errors.Is(err, zerrors.ErrInvalidMasterKey):
				spinner.FinalMSG = keyProblemMessage(err)
			default:
				spinner.FinalMSG = ui.Error.Sprint("✗") + " Failed to add secret: " + err.Error()
			}
			return err
		}

		audit.Log(directory, audit.Entry{Operation: "add", Secret: name})

		spinner.FinalMSG = ui.Success.Sprint("✓") + " Added secret " + ui.Highlight.Sprint(name)
		return nil
	},
}
