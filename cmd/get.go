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

var getCmd = &cobra.Command{
	Use:   "get <name>",
	Short: "Print the decrypted value of a secret",
	Long: `Print the decrypted value of a secret to stdout.

The value is printed bare so it can be piped or captured:
  export API_KEY="$(zeroenv get API_KEY)"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		store := secrets.NewStore(directory)

		value, err := store.Get(name)
		if err != nil {
			switch {
			case errors.Is(err, zerrors.ErrNotInitialized):
				fmt.Print(ui.EnsureNewline(notInitializedMessage()))
			case errors.Is(err, zerrors.ErrSecretNotFound):
				fmt.Print(ui.EnsureNewline(ui.Error.Sprint("✗") + " Secret " + ui.Highlight.Sprint(name) + " not found"))
			case errors.Is(err, zerrors.ErrAuthenticationFailed):
				fmt.Print(ui.EnsureNewline(ui.Error.Sprint("✗") + " " + err.Error() + "\n" +
					ui.Info.Sprint("→") + " The store was modified outside zeroenv, or the master key does not match"))
			case errors.Is(err, zerrors.ErrMasterKeyNotFound), errors.Is(err, zerrors.ErrInvalidMasterKey):
				fmt.Print(ui.EnsureNewline(keyProblemMessage(err)))
			default:
				Logger.Errorf("failed to get secret: %v", err)
			}
			return err
		}

		audit.Log(directory, audit.Entry{Operation: "get", Secret: name})

		fmt.Fprintln(cmd.OutOrStdout(), value)
		return nil
	},
}
