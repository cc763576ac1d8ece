package cmd

import (
	"errors"
	"fmt"

	zerrors "github.com/ropeadope62/zeroenv/internal/errors"
	"github.com/ropeadope62/zeroenv/internal/secrets"
	"github.com/ropeadope62/zeroenv/internal/ui"

	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show store metadata",
	Long: `Show store metadata: file location, format version, security tier, and
secret count. Nothing is decrypted, so this works without the master key.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store := secrets.NewStore(directory)

		info, err := store.Info()
		if err != nil {
			switch {
			case errors.Is(err, zerrors.ErrNotInitialized):
				fmt.Print(ui.EnsureNewline(notInitializedMessage()))
			default:
				Logger.Errorf("failed to read store: %v", err)
			}
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, ui.Info.Sprint("ZeroEnv store"))
		fmt.Fprintf(out, "  %-12s %s\n", "Location:", ui.Path.Sprint(store.StorePath()))
		fmt.Fprintf(out, "  %-12s %s\n", "Version:", info.Version)
		fmt.Fprintf(out, "  %-12s %s\n", "Tier:", ui.Highlight.Sprint(string(info.Tier)))
		fmt.Fprintf(out, "  %-12s %d\n", "Iterations:", info.Iterations)
		fmt.Fprintf(out, "  %-12s %d\n", "Secrets:", info.SecretCount)
		if info.CreatedAt != "" {
			fmt.Fprintf(out, "  %-12s %s\n", "Created:", info.CreatedAt)
		}
		return nil
	},
}
