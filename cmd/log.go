package cmd

import (
	"fmt"

	"github.com/ropeadope62/zeroenv/internal/audit"
	"github.com/ropeadope62/zeroenv/internal/ui"

	"github.com/spf13/cobra"
)

var logLimit int

func init() {
	logCmd.Flags().IntVarP(&logLimit, "limit", "n", 20, "maximum number of entries to show")
}

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Show recent store operations",
	Long: `Show recent operations recorded in the local audit log.

The log records operation names and secret names only, never values.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := audit.ReadEntries(directory)
		if err != nil {
			return Logger.ErrorfAndReturn("failed to read audit log: %v", err)
		}
		if len(entries) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No operations recorded yet")
			return nil
		}

		if logLimit > 0 && len(entries) > logLimit {
			entries = entries[len(entries)-logLimit:]
		}

		out := cmd.OutOrStdout()
		for _, entry := range entries {
			line := entry.Timestamp + "  " + ui.Highlight.Sprint(entry.Operation)
			switch {
			case entry.Secret != "":
				line += "  " + entry.Secret
			case entry.Command != "":
				line += "  " + ui.Code.Sprint(entry.Command) + fmt.Sprintf("  (%d secrets)", entry.Count)
			case entry.Format != "":
				line += "  " + entry.Format + fmt.Sprintf("  (%d secrets)", entry.Count)
			case entry.Tier != "":
				line += "  " + entry.Tier
			}
			fmt.Fprintln(out, line)
		}
		return nil
	},
}
