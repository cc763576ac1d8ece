// Package cmd_test contains integration tests that drive the real command
// tree end to end against temporary directories.
package cmd_test

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/ropeadope62/zeroenv/cmd"
	"github.com/ropeadope62/zeroenv/internal/configs"
	logger "github.com/ropeadope62/zeroenv/internal/logging"
	"github.com/ropeadope62/zeroenv/internal/secrets"

	"github.com/fatih/color"
)

// setupTestEnvironment isolates a test from the real user config, the master
// key environment override, and terminal color detection. Returns the store
// directory commands should target via --directory.
func setupTestEnvironment(t *testing.T) string {
	t.Helper()

	tempDir := t.TempDir()

	originalUserSettings := configs.UserZeroEnvSettings
	configs.UserZeroEnvSettings = &configs.UserSettings{UserConfigsPath: t.TempDir()}
	t.Cleanup(func() { configs.UserZeroEnvSettings = originalUserSettings })

	if original, ok := os.LookupEnv(secrets.MasterKeyEnvVar); ok {
		os.Unsetenv(secrets.MasterKeyEnvVar)
		t.Cleanup(func() { os.Setenv(secrets.MasterKeyEnvVar, original) })
	}

	t.Setenv("NO_COLOR", "1")
	originalNoColor := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = originalNoColor })

	return tempDir
}

// captureOutput captures both stdout and stderr during function execution.
func captureOutput(fn func() error) (string, error) {
	originalStdout := os.Stdout
	originalStderr := os.Stderr

	stdoutReader, stdoutWriter, _ := os.Pipe()
	stderrReader, stderrWriter, _ := os.Pipe()

	os.Stdout = stdoutWriter
	os.Stderr = stderrWriter

	outputChan := make(chan string, 2)

	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, stdoutReader)
		outputChan <- buf.String()
	}()
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, stderrReader)
		outputChan <- buf.String()
	}()

	err := fn()

	stdoutWriter.Close()
	stderrWriter.Close()

	os.Stdout = originalStdout
	os.Stderr = originalStderr

	stdout := <-outputChan
	stderr := <-outputChan

	return stdout + stderr, err
}

// runCLI executes the real root command with the given arguments, capturing
// all output. Global flag state is reset before every invocation so tests do
// not leak into each other. Commands run in verbose mode to keep the spinner
// off the captured output.
func runCLI(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()

	cmd.ResetGlobalState()
	cmd.SetLogger(logger.Logger{Verbose: true})

	fullArgs := append([]string{"--directory", dir, "--verbose"}, args...)
	cmd.RootCmd.SetArgs(fullArgs)
	// Leave the output writers unset so OutOrStdout resolves os.Stdout at
	// write time, after captureOutput has swapped it for a pipe.
	cmd.RootCmd.SetOut(nil)
	cmd.RootCmd.SetErr(nil)

	return captureOutput(func() error {
		return cmd.RootCmd.Execute()
	})
}

// initializeStore runs the init command and fails the test on any error.
func initializeStore(t *testing.T, dir string) {
	t.Helper()
	output, err := runCLI(t, dir, "init")
	if err != nil {
		t.Fatalf("init failed: %v\noutput: %s", err, output)
	}
}

// addSecret stores one secret through the CLI.
func addSecret(t *testing.T, dir, name, value string) {
	t.Helper()
	output, err := runCLI(t, dir, "add", name, value)
	if err != nil {
		t.Fatalf("add %s failed: %v\noutput: %s", name, err, output)
	}
}
