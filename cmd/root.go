package cmd

import (
	"fmt"

	logger "github.com/ropeadope62/zeroenv/internal/logging"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
)

var (
	directory string
	verbose   bool
	debug     bool
	Logger    logger.Logger

	RootCmd = &cobra.Command{
		Use:   "zeroenv",
		Short: "ZeroEnv - git-safe encrypted secrets for development and CI",
		Long: `ZeroEnv stores secrets encrypted in a .secrets file that is safe to commit,
with the master key kept out of version control in .secrets.key (or supplied
via the ZEROENV_MASTER_KEY environment variable on CI).

Run 'zeroenv init' in a project, add secrets with 'zeroenv add', and inject
them into any command's environment with 'zeroenv run'.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
			}
			Logger.Debugf("Initializing zeroenv with verbose=%t, debug=%t, directory=%s", verbose, debug, directory)
		},
		Run: func(cmd *cobra.Command, args []string) {
			banner := figure.NewColorFigure("ZeroEnv", "", "green", true)
			banner.Print()
			fmt.Println("Run 'zeroenv --help' to see available commands.")
		},
	}
)

func init() {
	RootCmd.PersistentFlags().StringVarP(&directory, "directory", "d", ".", "directory containing the secrets store")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	RootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")

	RootCmd.AddCommand(initCmd)
	RootCmd.AddCommand(addCmd)
	RootCmd.AddCommand(getCmd)
	RootCmd.AddCommand(lsCmd)
	RootCmd.AddCommand(rmCmd)
	RootCmd.AddCommand(runCmd)
	RootCmd.AddCommand(exportCmd)
	RootCmd.AddCommand(infoCmd)
	RootCmd.AddCommand(logCmd)
}

// Execute runs the root command.
func Execute() error {
	return RootCmd.Execute()
}

// Helper functions for testing

// ResetGlobalState resets all global variables to their default values for testing.
func ResetGlobalState() {
	directory = "."
	verbose = false
	debug = false
	initTier = ""
	listValues = false
	removeYes = false
	exportFormat = "env"
	logLimit = 20
}

// SetLogger sets the logger for testing.
func SetLogger(l logger.Logger) {
	Logger = l
}
