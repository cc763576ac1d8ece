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

var removeYes bool

func init() {
	rmCmd.Flags().BoolVarP(&removeYes, "yes", "y", false, "skip confirmation")
}

var rmCmd = &cobra.Command{
	Use:     "rm <name>",
	Aliases: []string{"remove"},
	Short:   "Remove a secret",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		store := secrets.NewStore(directory)
		if !store.IsInitialized() {
			fmt.Print(ui.EnsureNewline(notInitializedMessage()))
			return zerrors.ErrNotInitialized
		}

		if !removeYes {
			if !utils.Confirm("Remove secret " + ui.Highlight.Sprint(name) + "?") {
				fmt.Println("Cancelled")
				return nil
			}
		}

		spinner, cleanup := startSpinner("Removing secret...", verbose)
		defer cleanup()

		if err := store.Remove(name); err != nil {
			if errors.Is(err, zerrors.ErrSecretNotFound) {
				spinner.FinalMSG = ui.Error.Sprint("✗") + " Secret " + ui.Highlight.Sprint(name) + " not found"
				return err
			}
			return Logger.ErrorfAndReturn("failed to remove secret: %v", err)
		}

		audit.Log(directory, audit.Entry{Operation: "rm", Secret: name})

		spinner.FinalMSG = ui.Success.Sprint("✓") + " Removed secret " + ui.Highlight.Sprint(name)
		return nil
	},
}
