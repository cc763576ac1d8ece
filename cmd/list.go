package cmd

import (
	"errors"
	"fmt"

	zerrors "github.com/ropeadope62/zeroenv/internal/errors"
	"github.com/ropeadope62/zeroenv/internal/secrets"
	"github.com/ropeadope62/zeroenv/internal/ui"

	"github.com/spf13/cobra"
)

var listValues bool

func init() {
	lsCmd.Flags().BoolVar(&listValues, "values", false, "decrypt and show secret values")
}

var lsCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List secrets",
	Long: `List secret names in the order they were added.

Values stay masked unless --values is given; a plain listing never touches
the master key.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store := secrets.NewStore(directory)

		entries, err := store.List(listValues)
		if err != nil {
			switch {
			case errors.Is(err, zerrors.ErrNotInitialized):
				fmt.Print(ui.EnsureNewline(notInitializedMessage()))
			case errors.Is(err, zerrors.ErrMasterKeyNotFound), errors.Is(err, zerrors.ErrInvalidMasterKey):
				fmt.Print(ui.EnsureNewline(keyProblemMessage(err)))
			default:
				Logger.Errorf("failed to list secrets: %v", err)
			}
			return err
		}

		if len(entries) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No secrets stored yet. Run "+ui.Code.Sprint("zeroenv add")+" to add one.")
			return nil
		}

		rows := make([]ui.SecretRow, 0, len(entries))
		for _, entry := range entries {
			rows = append(rows, ui.SecretRow{
				Name:      entry.Name,
				Value:     entry.Value,
				UpdatedAt: entry.UpdatedAt,
			})
		}
		fmt.Fprint(cmd.OutOrStdout(), ui.RenderSecretsTable(rows, listValues))
		return nil
	},
}
