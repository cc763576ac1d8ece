package audit

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/ropeadope62/zeroenv/internal/configs"
)

// FileName is the JSONL audit log kept next to the store file. It records
// which operations ran and on which secret names; values and key material are
// never written here.
const FileName = ".secrets.audit.jsonl"

// Entry represents a single audit log entry.
type Entry struct {
	Timestamp string `json:"ts"`      // RFC3339 with microseconds.
	Install   string `json:"install"` // Install UUID of the machine performing the action.
	Operation string `json:"op"`      // Operation name.

	// Optional fields depending on operation.
	Secret  string `json:"secret,omitempty"`  // For add/get/rm.
	Tier    string `json:"tier,omitempty"`    // For init.
	Format  string `json:"format,omitempty"`  // For export.
	Command string `json:"command,omitempty"` // For run.
	Count   int    `json:"count,omitempty"`   // Secrets injected or exported.
}

// Log appends an entry to the audit log in dir. Operations must not fail
// because audit logging failed, so errors are swallowed.
func Log(dir string, entry Entry) {
	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format("2006-01-02T15:04:05.000000Z")
	}
	if entry.Install == "" {
		if config, err := configs.EnsureUserConfig(); err == nil {
			entry.Install = config.InstallUUID
		}
	}

	logPath := filepath.Join(dir, FileName)

	// #nosec G306 -- the audit log holds no secret values.
	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}
	_, _ = f.Write(append(data, '\n'))
}

// ReadEntries reads all entries from the audit log in dir. Returns an empty
// slice if the log doesn't exist; malformed lines are skipped.
func ReadEntries(dir string) ([]Entry, error) {
	logPath := filepath.Join(dir, FileName)

	f, err := os.Open(logPath)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var entries []Entry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var entry Entry
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, scanner.Err()
}
