package cmd

import (
	"errors"

	"github.com/ropeadope62/zeroenv/internal/audit"
	"github.com/ropeadope62/zeroenv/internal/configs"
	zerrors "github.com/ropeadope62/zeroenv/internal/errors"
	"github.com/ropeadope62/zeroenv/internal/secrets"
	"github.com/ropeadope62/zeroenv/internal/ui"
	"github.com/ropeadope62/zeroenv/internal/utils"

	"github.com/spf13/cobra"
)

var initTier string

func init() {
	initCmd.Flags().StringVarP(&initTier, "tier", "t", "", "security tier: standard, enhanced, or max")
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a secrets store in the target directory",
	Long: `Initialize ZeroEnv in the target directory.

Creates .secrets (encrypted storage) and .secrets.key (master key), and adds
the key file to .gitignore.

Security tiers:
  standard - master key used directly, fastest (development)
  enhanced - PBKDF2 with 100,000 iterations (balanced)
  max      - PBKDF2 with 500,000 iterations (production)

The tier is fixed for the lifetime of the store. Without --tier the default
tier from your user config is used, falling back to standard.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		spinner, cleanup := startSpinner("Initializing ZeroEnv...", verbose)
		defer cleanup()

		tierName := initTier
		if tierName == "" {
			if config, err := configs.LoadUserConfig(); err == nil && config.DefaultTier != "" {
				tierName = config.DefaultTier
				Logger.Debugf("Using default tier %q from user config", tierName)
			}
		}
		if tierName == "" {
			tierName = string(secrets.TierStandard)
		}

		tier, err := secrets.ParseTier(tierName)
		if err != nil {
			spinner.FinalMSG = ui.Error.Sprint("✗") + " " + err.Error()
			return err
		}

		store := secrets.NewStore(directory)
		if err := store.Init(tier); err != nil {
			if errors.Is(err, zerrors.ErrAlreadyInitialized) {
				spinner.FinalMSG = ui.Error.Sprint("✗") + " ZeroEnv is already initialized in this directory\n" +
					ui.Info.Sprint("→") + " Found " + ui.Path.Sprint(store.StorePath())
				return err
			}
			return Logger.ErrorfAndReturn("failed to initialize store: %v", err)
		}

		if err := utils.EnsureGitignore(directory); err != nil {
			Logger.Warnf("failed to update .gitignore: %v", err)
			Logger.Warnf("please add .secrets.key to .gitignore manually")
		}

		audit.Log(directory, audit.Entry{Operation: "init", Tier: string(tier)})

		spinner.FinalMSG = ui.Success.Sprint("✓") + " ZeroEnv initialized with the " + ui.Highlight.Sprint(string(tier)) + " tier\n" +
			ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("zeroenv add") + " to store your first secret\n" +
			ui.Warning.Sprint("⚠") + " Never commit " + ui.Path.Sprint(secrets.KeyFileName)
		return nil
	},
}
