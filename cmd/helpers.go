package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/ropeadope62/zeroenv/internal/ui"

	"github.com/briandowns/spinner"
)

// startSpinner creates and starts a spinner with the given message when not
// in verbose or debug mode. Returns the spinner and a function that should be
// deferred to clean up.
//
// spinner.FinalMSG values do NOT need trailing newlines; the cleanup function
// calls ui.EnsureNewline() on the final message before printing it.
func startSpinner(message string, verbose bool) (*spinner.Spinner, func()) {
	Logger.Debugf("Starting spinner with message: %s", message)
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message

	// Ignore color errors - continue without colored spinner if it fails.
	_ = s.Color("cyan")

	if !verbose && !debug {
		s.Start()
		// Ensure log output is discarded unless in verbose mode.
		log.SetOutput(io.Discard)
	} else {
		Logger.Infof("Running in verbose or debug mode: %s", message)
	}

	cleanup := func() {
		// Restore log output first.
		if !verbose && !debug {
			log.SetOutput(os.Stdout)
		}

		// Ensure final message ends with a newline.
		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			// Clear FinalMSG so s.Stop() doesn't print it.
			s.FinalMSG = ""
		}

		// Stop the spinner first to clear the spinner line.
		if !verbose && !debug {
			s.Stop()
		}

		// Print final message to stdout (for tests to capture).
		if finalMsg != "" {
			fmt.Print(finalMsg)
		}
	}

	return s, cleanup
}

// notInitializedMessage is the shared hint for commands that need a store.
func notInitializedMessage() string {
	return ui.Error.Sprint("✗") + " ZeroEnv has not been initialized in this directory\n" +
		ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("zeroenv init") + " first"
}

// keyProblemMessage renders master-key resolution failures with a CI hint.
func keyProblemMessage(err error) string {
	return ui.Error.Sprint("✗") + " " + err.Error() + "\n" +
		ui.Info.Sprint("→") + " Expected the key in " + ui.Path.Sprint(".secrets.key") + " or the " +
		ui.Code.Sprint("ZEROENV_MASTER_KEY") + " environment variable"
}
