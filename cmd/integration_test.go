package cmd_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ropeadope62/zeroenv/internal/secrets"
)

func TestInitCommand(t *testing.T) {
	t.Run("CreatesStoreAndKey", func(t *testing.T) {
		dir := setupTestEnvironment(t)

		output, err := runCLI(t, dir, "init")
		if err != nil {
			t.Fatalf("init failed: %v\noutput: %s", err, output)
		}
		if !strings.Contains(output, "initialized") {
			t.Errorf("Expected success message, got: %s", output)
		}

		if _, err := os.Stat(filepath.Join(dir, secrets.StoreFileName)); err != nil {
			t.Errorf("Store file not created: %v", err)
		}
		if _, err := os.Stat(filepath.Join(dir, secrets.KeyFileName)); err != nil {
			t.Errorf("Key file not created: %v", err)
		}

		gitignore, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
		if err != nil {
			t.Fatalf(".gitignore not created: %v", err)
		}
		if !strings.Contains(string(gitignore), secrets.KeyFileName) {
			t.Errorf(".gitignore missing key entry: %s", gitignore)
		}
	})

	t.Run("ReInitFails", func(t *testing.T) {
		dir := setupTestEnvironment(t)
		initializeStore(t, dir)

		output, err := runCLI(t, dir, "init")
		if err == nil {
			t.Error("Expected re-init to fail")
		}
		if !strings.Contains(output, "already initialized") {
			t.Errorf("Expected already-initialized message, got: %s", output)
		}
	})

	t.Run("WithTierFlag", func(t *testing.T) {
		dir := setupTestEnvironment(t)

		output, err := runCLI(t, dir, "init", "--tier", "enhanced")
		if err != nil {
			t.Fatalf("init --tier enhanced failed: %v\noutput: %s", err, output)
		}
		if !strings.Contains(output, "enhanced") {
			t.Errorf("Expected tier in output: %s", output)
		}

		data, err := os.ReadFile(filepath.Join(dir, secrets.StoreFileName))
		if err != nil {
			t.Fatalf("Failed to read store file: %v", err)
		}
		if !strings.Contains(string(data), `"security_tier": "enhanced"`) {
			t.Errorf("Store file missing tier: %s", data)
		}
	})

	t.Run("UnknownTierFails", func(t *testing.T) {
		dir := setupTestEnvironment(t)

		_, err := runCLI(t, dir, "init", "--tier", "turbo")
		if err == nil {
			t.Error("Expected unknown tier to fail")
		}
		if _, statErr := os.Stat(filepath.Join(dir, secrets.StoreFileName)); statErr == nil {
			t.Error("Failed init must not create a store file")
		}
	})
}

func TestAddAndGetCommands(t *testing.T) {
	t.Run("DirectMode", func(t *testing.T) {
		dir := setupTestEnvironment(t)
		initializeStore(t, dir)

		output, err := runCLI(t, dir, "add", "API_KEY", "secret-value")
		if err != nil {
			t.Fatalf("add failed: %v\noutput: %s", err, output)
		}
		if !strings.Contains(output, "API_KEY") {
			t.Errorf("Expected secret name in output: %s", output)
		}

		output, err = runCLI(t, dir, "get", "API_KEY")
		if err != nil {
			t.Fatalf("get failed: %v\noutput: %s", err, output)
		}
		if !strings.Contains(output, "secret-value") {
			t.Errorf("Expected value in output: %s", output)
		}
	})

	t.Run("AddBeforeInitFails", func(t *testing.T) {
		dir := setupTestEnvironment(t)

		output, err := runCLI(t, dir, "add", "NAME", "value")
		if err == nil {
			t.Error("Expected add before init to fail")
		}
		if !strings.Contains(output, "not been initialized") {
			t.Errorf("Expected not-initialized message, got: %s", output)
		}
	})

	t.Run("GetMissingSecretFails", func(t *testing.T) {
		dir := setupTestEnvironment(t)
		initializeStore(t, dir)

		output, err := runCLI(t, dir, "get", "NOPE")
		if err == nil {
			t.Error("Expected get of missing secret to fail")
		}
		if !strings.Contains(output, "not found") {
			t.Errorf("Expected not-found message, got: %s", output)
		}
	})

	t.Run("UpdateOverwrites", func(t *testing.T) {
		dir := setupTestEnvironment(t)
		initializeStore(t, dir)
		addSecret(t, dir, "TOKEN", "old")
		addSecret(t, dir, "TOKEN", "new")

		output, err := runCLI(t, dir, "get", "TOKEN")
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if !strings.Contains(output, "new") || strings.Contains(output, "old") {
			t.Errorf("Expected updated value, got: %s", output)
		}
	})
}

func TestLsCommand(t *testing.T) {
	t.Run("EmptyStore", func(t *testing.T) {
		dir := setupTestEnvironment(t)
		initializeStore(t, dir)

		output, err := runCLI(t, dir, "ls")
		if err != nil {
			t.Fatalf("ls failed: %v\noutput: %s", err, output)
		}
		if !strings.Contains(output, "No secrets stored yet") {
			t.Errorf("Expected empty-store message, got: %s", output)
		}
	})

	t.Run("MasksValuesByDefault", func(t *testing.T) {
		dir := setupTestEnvironment(t)
		initializeStore(t, dir)
		addSecret(t, dir, "API_KEY", "hidden-value")

		output, err := runCLI(t, dir, "ls")
		if err != nil {
			t.Fatalf("ls failed: %v\noutput: %s", err, output)
		}
		if !strings.Contains(output, "API_KEY") {
			t.Errorf("Expected name in listing: %s", output)
		}
		if strings.Contains(output, "hidden-value") {
			t.Errorf("Listing leaked a value: %s", output)
		}
		if !strings.Contains(output, "***") {
			t.Errorf("Expected mask in listing: %s", output)
		}
	})

	t.Run("ShowsValuesWithFlag", func(t *testing.T) {
		dir := setupTestEnvironment(t)
		initializeStore(t, dir)
		addSecret(t, dir, "API_KEY", "visible-value")

		output, err := runCLI(t, dir, "ls", "--values")
		if err != nil {
			t.Fatalf("ls --values failed: %v\noutput: %s", err, output)
		}
		if !strings.Contains(output, "visible-value") {
			t.Errorf("Expected value in listing: %s", output)
		}
	})

	t.Run("InsertionOrder", func(t *testing.T) {
		dir := setupTestEnvironment(t)
		initializeStore(t, dir)
		addSecret(t, dir, "ZEBRA", "1")
		addSecret(t, dir, "APPLE", "2")

		output, err := runCLI(t, dir, "ls")
		if err != nil {
			t.Fatalf("ls failed: %v", err)
		}
		if strings.Index(output, "ZEBRA") > strings.Index(output, "APPLE") {
			t.Errorf("Expected insertion order, got: %s", output)
		}
	})
}

func TestRmCommand(t *testing.T) {
	t.Run("RemovesWithYesFlag", func(t *testing.T) {
		dir := setupTestEnvironment(t)
		initializeStore(t, dir)
		addSecret(t, dir, "DOOMED", "value")

		output, err := runCLI(t, dir, "rm", "--yes", "DOOMED")
		if err != nil {
			t.Fatalf("rm failed: %v\noutput: %s", err, output)
		}
		if !strings.Contains(output, "Removed") {
			t.Errorf("Expected removal message, got: %s", output)
		}

		if _, err := runCLI(t, dir, "get", "DOOMED"); err == nil {
			t.Error("Secret still present after removal")
		}
	})

	t.Run("MissingSecretFails", func(t *testing.T) {
		dir := setupTestEnvironment(t)
		initializeStore(t, dir)

		output, err := runCLI(t, dir, "rm", "--yes", "NOPE")
		if err == nil {
			t.Error("Expected rm of missing secret to fail")
		}
		if !strings.Contains(output, "not found") {
			t.Errorf("Expected not-found message, got: %s", output)
		}
	})
}

func TestExportCommand(t *testing.T) {
	t.Run("EnvFormat", func(t *testing.T) {
		dir := setupTestEnvironment(t)
		initializeStore(t, dir)
		addSecret(t, dir, "A", "1")
		addSecret(t, dir, "B", "2")

		output, err := runCLI(t, dir, "export")
		if err != nil {
			t.Fatalf("export failed: %v\noutput: %s", err, output)
		}
		if !strings.Contains(output, "A=1\nB=2\n") {
			t.Errorf("Expected env lines, got: %s", output)
		}
	})

	t.Run("JSONFormat", func(t *testing.T) {
		dir := setupTestEnvironment(t)
		initializeStore(t, dir)
		addSecret(t, dir, "A", "1")
		addSecret(t, dir, "B", "2")

		output, err := runCLI(t, dir, "export", "--format", "json")
		if err != nil {
			t.Fatalf("export --format json failed: %v\noutput: %s", err, output)
		}
		if !strings.Contains(output, `{"A":"1","B":"2"}`) {
			t.Errorf("Expected JSON object, got: %s", output)
		}

		start := strings.Index(output, "{")
		end := strings.LastIndex(output, "}")
		if start < 0 || end < start {
			t.Fatalf("No JSON object in output: %s", output)
		}
		var parsed map[string]string
		if err := json.Unmarshal([]byte(output[start:end+1]), &parsed); err != nil {
			t.Errorf("Export output is not valid JSON: %v", err)
		}
	})

	t.Run("QuotesSpacedValues", func(t *testing.T) {
		dir := setupTestEnvironment(t)
		initializeStore(t, dir)
		addSecret(t, dir, "MSG", "hello world")

		output, err := runCLI(t, dir, "export")
		if err != nil {
			t.Fatalf("export failed: %v", err)
		}
		if !strings.Contains(output, `MSG="hello world"`) {
			t.Errorf("Expected quoted value, got: %s", output)
		}
	})

	t.Run("UnknownFormatFails", func(t *testing.T) {
		dir := setupTestEnvironment(t)
		initializeStore(t, dir)

		output, err := runCLI(t, dir, "export", "--format", "yaml")
		if err == nil {
			t.Error("Expected unknown format to fail")
		}
		if !strings.Contains(output, "Unknown format") {
			t.Errorf("Expected format message, got: %s", output)
		}
	})
}

func TestRunCommand(t *testing.T) {
	t.Run("InjectsSecrets", func(t *testing.T) {
		dir := setupTestEnvironment(t)
		initializeStore(t, dir)
		addSecret(t, dir, "INJECTED_SECRET", "injected-value")

		output, err := runCLI(t, dir, "run", "sh", "-c", "echo found:$INJECTED_SECRET")
		if err != nil {
			t.Fatalf("run failed: %v\noutput: %s", err, output)
		}
		if !strings.Contains(output, "found:injected-value") {
			t.Errorf("Child did not see the secret: %s", output)
		}
	})

	t.Run("BeforeInitFails", func(t *testing.T) {
		dir := setupTestEnvironment(t)

		output, err := runCLI(t, dir, "run", "true")
		if err == nil {
			t.Error("Expected run before init to fail")
		}
		if !strings.Contains(output, "not been initialized") {
			t.Errorf("Expected not-initialized message, got: %s", output)
		}
	})
}

func TestInfoCommand(t *testing.T) {
	dir := setupTestEnvironment(t)

	output, err := runCLI(t, dir, "init", "--tier", "max")
	if err != nil {
		t.Fatalf("init failed: %v\noutput: %s", err, output)
	}
	addSecret(t, dir, "ONE", "1")

	output, err = runCLI(t, dir, "info")
	if err != nil {
		t.Fatalf("info failed: %v\noutput: %s", err, output)
	}
	for _, want := range []string{"max", "500000", "1.0"} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected %q in info output: %s", want, output)
		}
	}
}

func TestLogCommand(t *testing.T) {
	dir := setupTestEnvironment(t)
	initializeStore(t, dir)
	addSecret(t, dir, "TRACKED", "sensitive-payload")

	output, err := runCLI(t, dir, "log")
	if err != nil {
		t.Fatalf("log failed: %v\noutput: %s", err, output)
	}
	if !strings.Contains(output, "init") || !strings.Contains(output, "add") {
		t.Errorf("Expected init and add operations in log, got: %s", output)
	}
	if !strings.Contains(output, "TRACKED") {
		t.Errorf("Expected secret name in log, got: %s", output)
	}
	if strings.Contains(output, "sensitive-payload") {
		t.Errorf("Log must not carry secret values: %s", output)
	}
}

func TestEnvKeyOverrideEndToEnd(t *testing.T) {
	dir := setupTestEnvironment(t)
	initializeStore(t, dir)
	addSecret(t, dir, "CI_SECRET", "ci-value")

	keyData, err := os.ReadFile(filepath.Join(dir, secrets.KeyFileName))
	if err != nil {
		t.Fatalf("Failed to read key file: %v", err)
	}
	t.Setenv(secrets.MasterKeyEnvVar, strings.TrimSpace(string(keyData)))
	if err := os.Remove(filepath.Join(dir, secrets.KeyFileName)); err != nil {
		t.Fatalf("Failed to remove key file: %v", err)
	}

	output, err := runCLI(t, dir, "get", "CI_SECRET")
	if err != nil {
		t.Fatalf("get with env key failed: %v\noutput: %s", err, output)
	}
	if !strings.Contains(output, "ci-value") {
		t.Errorf("Expected value, got: %s", output)
	}
}
