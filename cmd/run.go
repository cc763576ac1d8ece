package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ropeadope62/zeroenv/internal/audit"
	zerrors "github.com/ropeadope62/zeroenv/internal/errors"
	"github.com/ropeadope62/zeroenv/internal/secrets"
	"github.com/ropeadope62/zeroenv/internal/ui"

	"github.com/spf13/cobra"
)

func init() {
	// The child command's own flags must not be parsed as zeroenv flags.
	runCmd.Flags().SetInterspersed(false)
}

var runCmd = &cobra.Command{
	Use:   "run -- <command> [args...]",
	Short: "Run a command with secrets injected as environment variables",
	Long: `Run a command with all decrypted secrets injected into its environment.

Usage:
  zeroenv run python app.py
  zeroenv run npm start
  zeroenv run -- python -m myapp --flag

Use -- before the command if it has flags that conflict with zeroenv. The
child inherits stdin/stdout/stderr, receives forwarded SIGINT/SIGTERM, and
its exit code becomes zeroenv's exit code.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := secrets.NewStore(directory)

		secretEnv, err := store.Environment()
		if err != nil {
			switch {
			case errors.Is(err, zerrors.ErrNotInitialized):
				fmt.Print(ui.EnsureNewline(notInitializedMessage()))
			case errors.Is(err, zerrors.ErrMasterKeyNotFound), errors.Is(err, zerrors.ErrInvalidMasterKey):
				fmt.Print(ui.EnsureNewline(keyProblemMessage(err)))
			default:
				Logger.Errorf("failed to decrypt secrets: %v", err)
			}
			return err
		}

		env := os.Environ()
		for name, value := range secretEnv {
			env = append(env, name+"="+value)
		}

		audit.Log(directory, audit.Entry{Operation: "run", Command: args[0], Count: len(secretEnv)})
		Logger.Infof("Injected %d secret(s) into %s", len(secretEnv), args[0])
		fmt.Fprintln(os.Stderr, ui.Success.Sprint("✓")+" Injected "+fmt.Sprint(len(secretEnv))+" secret(s)")

		child := exec.Command(args[0], args[1:]...)
		child.Env = env
		child.Stdin = os.Stdin
		child.Stdout = os.Stdout
		child.Stderr = os.Stderr

		// Forward termination signals to the child and let it decide when to
		// exit; zeroenv just waits.
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(sigCh)

		if err := child.Start(); err != nil {
			return Logger.ErrorfAndReturn("failed to run %s: %v", strings.Join(args, " "), err)
		}

		go func() {
			for sig := range sigCh {
				_ = child.Process.Signal(sig)
			}
		}()

		err = child.Wait()
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.ExitCode())
		}
		if err != nil {
			return Logger.ErrorfAndReturn("command failed: %v", err)
		}
		return nil
	},
}
