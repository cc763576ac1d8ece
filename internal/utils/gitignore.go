package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	gitignoreEntry   = ".secrets.key"
	gitignoreComment = "# ZeroEnv - Master Key (DO NOT COMMIT)"
)

// EnsureGitignore makes sure the master key file is ignored by git in the
// given directory, creating .gitignore when necessary. Idempotent: an
// existing entry is left alone.
func EnsureGitignore(dir string) error {
	gitignorePath := filepath.Join(dir, ".gitignore")

	content, err := os.ReadFile(gitignorePath)
	if err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to read .gitignore: %w", err)
		}
		// #nosec G306 -- .gitignore is not sensitive.
		if err := os.WriteFile(gitignorePath, []byte(gitignoreComment+"\n"+gitignoreEntry+"\n"), 0644); err != nil {
			return fmt.Errorf("failed to create .gitignore: %w", err)
		}
		return nil
	}

	if gitignoreContains(string(content), gitignoreEntry) {
		return nil
	}

	// #nosec G302 G304 -- appending to a non-sensitive file the user owns.
	f, err := os.OpenFile(gitignorePath, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open .gitignore: %w", err)
	}
	defer f.Close()

	entry := "\n" + gitignoreComment + "\n" + gitignoreEntry + "\n"
	if len(content) > 0 && content[len(content)-1] != '\n' {
		entry = "\n" + entry
	}
	if _, err := f.WriteString(entry); err != nil {
		return fmt.Errorf("failed to append to .gitignore: %w", err)
	}
	return nil
}

// gitignoreContains reports whether an exact entry line is already present.
func gitignoreContains(content, entry string) bool {
	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) == entry {
			return true
		}
	}
	return false
}
