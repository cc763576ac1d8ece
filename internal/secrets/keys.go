package secrets

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	zerrors "github.com/ropeadope62/zeroenv/internal/errors"
)

// MasterKeyEnvVar is the environment variable that supersedes the on-disk key
// file entirely when set. Its value is the base64-encoded 32-byte master key,
// which lets CI runners decrypt without ever writing the key to disk.
const MasterKeyEnvVar = "ZEROENV_MASTER_KEY"

// GenerateMasterKey returns a new 256-bit master key from the system CSPRNG.
func GenerateMasterKey() ([]byte, error) {
	key := make([]byte, KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("failed to generate master key: %w", err)
	}
	return key, nil
}

// EncodeMasterKey converts key bytes to the base64 form used by the key file
// and the environment override.
func EncodeMasterKey(key []byte) string {
	return base64.StdEncoding.EncodeToString(key)
}

// DecodeMasterKey converts a base64 key string back to raw bytes, validating
// the decoded length.
func DecodeMasterKey(encoded string) ([]byte, error) {
	key, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encoded))
	if err != nil {
		return nil, fmt.Errorf("%w: not valid base64: %v", zerrors.ErrInvalidMasterKey, err)
	}
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", zerrors.ErrInvalidMasterKey, KeySize, len(key))
	}
	return key, nil
}

// ResolveMasterKey loads the master key for an operation. The environment
// override named by envVar wins when set; otherwise the key file at keyPath is
// read. Returns ErrMasterKeyNotFound when neither source exists and
// ErrInvalidMasterKey when either source fails to decode to exactly 32 bytes.
func ResolveMasterKey(keyPath, envVar string) ([]byte, error) {
	if envVar != "" {
		if encoded, ok := os.LookupEnv(envVar); ok {
			return DecodeMasterKey(encoded)
		}
	}

	data, err := os.ReadFile(keyPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: no %s file and %s is not set", zerrors.ErrMasterKeyNotFound, filepath.Base(keyPath), envVar)
		}
		return nil, fmt.Errorf("failed to read master key file: %w", err)
	}
	return DecodeMasterKey(string(data))
}

// SaveMasterKey writes the base64-encoded key as the sole content of path,
// readable by the owner only. Only init writes the key file; it has no other
// mutation operation.
func SaveMasterKey(key []byte, path string) error {
	if len(key) != KeySize {
		return fmt.Errorf("%w: expected %d bytes, got %d", zerrors.ErrInvalidMasterKey, KeySize, len(key))
	}
	if err := os.WriteFile(path, []byte(EncodeMasterKey(key)+"\n"), 0600); err != nil {
		return fmt.Errorf("failed to write master key file: %w", err)
	}
	return nil
}
