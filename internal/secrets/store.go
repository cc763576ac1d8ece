package secrets

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	zerrors "github.com/ropeadope62/zeroenv/internal/errors"
)

const (
	// StoreFileName is the versioned, git-committable encrypted store.
	StoreFileName = ".secrets"

	// KeyFileName holds the base64 master key and must never be committed.
	KeyFileName = ".secrets.key"

	// StoreVersion is the schema version written to new stores.
	StoreVersion = "1.0"
)

// SecretRecord is one encrypted value in the store file. Ciphertext carries
// the GCM tag; the nonce is unique to this encryption.
type SecretRecord struct {
	Ciphertext string `json:"ciphertext"`
	Nonce      string `json:"nonce"`
	UpdatedAt  string `json:"updated_at,omitempty"`
}

// storeFile is the on-disk representation of the store.
type storeFile struct {
	Version   string         `json:"version"`
	Tier      SecurityTier   `json:"security_tier,omitempty"`
	Salt      string         `json:"salt,omitempty"`
	CreatedAt string         `json:"created_at,omitempty"`
	Secrets   orderedSecrets `json:"secrets"`
}

// Store owns the secret store files in a single directory. Each CLI
// invocation constructs a fresh Store; no state survives between commands,
// so every operation re-reads the file it needs.
type Store struct {
	Dir string
}

// NewStore returns a Store rooted at dir, defaulting to the current directory.
func NewStore(dir string) *Store {
	if dir == "" {
		dir = "."
	}
	return &Store{Dir: dir}
}

// StorePath returns the path of the encrypted store file.
func (s *Store) StorePath() string {
	return filepath.Join(s.Dir, StoreFileName)
}

// KeyPath returns the path of the master key file.
func (s *Store) KeyPath() string {
	return filepath.Join(s.Dir, KeyFileName)
}

// IsInitialized reports whether a store file exists in the directory. The key
// file is deliberately not required: CI runners supply the key through the
// environment and never have it on disk.
func (s *Store) IsInitialized() bool {
	_, err := os.Stat(s.StorePath())
	return err == nil
}

// Init creates the master key file and an empty store file with the given
// tier. Re-init on an existing store is an error. If the process dies between
// the two writes the directory is left half-initialized; that window is a
// known limitation and is not silently repaired.
func (s *Store) Init(tier SecurityTier) error {
	if _, err := tier.Iterations(); err != nil {
		return err
	}
	if s.IsInitialized() {
		return fmt.Errorf("%w: found %s", zerrors.ErrAlreadyInitialized, s.StorePath())
	}

	masterKey, err := GenerateMasterKey()
	if err != nil {
		return err
	}
	defer ClearBytes(masterKey)

	file := &storeFile{
		Version:   StoreVersion,
		Tier:      tier,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Secrets:   newOrderedSecrets(),
	}
	if tier != TierStandard {
		salt, err := GenerateSalt()
		if err != nil {
			return err
		}
		file.Salt = base64.StdEncoding.EncodeToString(salt)
	}

	if err := SaveMasterKey(masterKey, s.KeyPath()); err != nil {
		return err
	}
	return s.save(file)
}

// Add encrypts value and inserts or replaces the record for name, then
// persists the whole file atomically. The working key is derived from the
// store's own recorded tier and salt, and a fresh nonce is used even when
// re-encrypting an existing name.
func (s *Store) Add(name, value string) error {
	file, err := s.load()
	if err != nil {
		return err
	}

	key, err := s.workingKey(file)
	if err != nil {
		return err
	}
	defer ClearBytes(key)

	ciphertext, nonce, err := Encrypt(key, []byte(value))
	if err != nil {
		return err
	}

	file.Secrets.Set(name, SecretRecord{
		Ciphertext: base64.StdEncoding.EncodeToString(ciphertext),
		Nonce:      base64.StdEncoding.EncodeToString(nonce),
		UpdatedAt:  time.Now().UTC().Format(time.RFC3339),
	})
	return s.save(file)
}

// Get decrypts and returns the value of the named secret.
func (s *Store) Get(name string) (string, error) {
	file, err := s.load()
	if err != nil {
		return "", err
	}

	rec, ok := file.Secrets.Get(name)
	if !ok {
		return "", fmt.Errorf("%w: %s", zerrors.ErrSecretNotFound, name)
	}

	key, err := s.workingKey(file)
	if err != nil {
		return "", err
	}
	defer ClearBytes(key)

	return decryptRecord(key, name, rec)
}

// Remove deletes the named secret and persists atomically.
func (s *Store) Remove(name string) error {
	file, err := s.load()
	if err != nil {
		return err
	}
	if !file.Secrets.Delete(name) {
		return fmt.Errorf("%w: %s", zerrors.ErrSecretNotFound, name)
	}
	return s.save(file)
}

// Entry is one listed secret. Value is empty unless decryption was requested.
type Entry struct {
	Name      string
	Value     string
	UpdatedAt string
}

// List returns the secrets in insertion order. Values are decrypted only when
// includeValues is set, so a plain listing needs no key at all.
func (s *Store) List(includeValues bool) ([]Entry, error) {
	file, err := s.load()
	if err != nil {
		return nil, err
	}

	var key []byte
	if includeValues {
		key, err = s.workingKey(file)
		if err != nil {
			return nil, err
		}
		defer ClearBytes(key)
	}

	entries := make([]Entry, 0, file.Secrets.Len())
	for _, name := range file.Secrets.Names() {
		rec, _ := file.Secrets.Get(name)
		entry := Entry{Name: name, UpdatedAt: rec.UpdatedAt}
		if includeValues {
			value, err := decryptRecord(key, name, rec)
			if err != nil {
				return nil, err
			}
			entry.Value = value
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// ExportAll decrypts every secret and renders it in the requested format:
// "env" produces NAME=VALUE lines, "json" a flat object, both in insertion
// order.
func (s *Store) ExportAll(format string) (string, error) {
	switch format {
	case "env", "json":
	default:
		return "", fmt.Errorf("%w: %q (want env or json)", zerrors.ErrUnknownExportFormat, format)
	}

	entries, err := s.List(true)
	if err != nil {
		return "", err
	}

	if format == "env" {
		var b strings.Builder
		for _, entry := range entries {
			b.WriteString(entry.Name)
			b.WriteByte('=')
			b.WriteString(quoteEnvValue(entry.Value))
			b.WriteByte('\n')
		}
		return b.String(), nil
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, entry := range entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		nameJSON, err := json.Marshal(entry.Name)
		if err != nil {
			return "", err
		}
		valueJSON, err := json.Marshal(entry.Value)
		if err != nil {
			return "", err
		}
		buf.Write(nameJSON)
		buf.WriteByte(':')
		buf.Write(valueJSON)
	}
	buf.WriteByte('}')
	return buf.String(), nil
}

// Environment decrypts every secret into a name -> value map for injection
// into a child process environment.
func (s *Store) Environment() (map[string]string, error) {
	entries, err := s.List(true)
	if err != nil {
		return nil, err
	}
	env := make(map[string]string, len(entries))
	for _, entry := range entries {
		env[entry.Name] = entry.Value
	}
	return env, nil
}

// Info summarizes the store configuration without decrypting anything.
type Info struct {
	Version     string
	Tier        SecurityTier
	Iterations  int
	SecretCount int
	CreatedAt   string
}

// Info reads the store's tier, derivation cost, and secret count. No key is
// required.
func (s *Store) Info() (*Info, error) {
	file, err := s.load()
	if err != nil {
		return nil, err
	}
	iterations, err := file.Tier.Iterations()
	if err != nil {
		return nil, err
	}
	return &Info{
		Version:     file.Version,
		Tier:        file.Tier,
		Iterations:  iterations,
		SecretCount: file.Secrets.Len(),
		CreatedAt:   file.CreatedAt,
	}, nil
}

// load reads and validates the store file, applying the one documented
// migration: stores written before security tiers existed carry no
// security_tier member and are standard-tier stores.
func (s *Store) load() (*storeFile, error) {
	data, err := os.ReadFile(s.StorePath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: no %s found in %s", zerrors.ErrNotInitialized, StoreFileName, s.Dir)
		}
		return nil, fmt.Errorf("failed to read store file: %w", err)
	}

	var file storeFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %v", zerrors.ErrCorruptStore, err)
	}
	if file.Version == "" {
		return nil, fmt.Errorf("%w: missing version", zerrors.ErrCorruptStore)
	}
	if !file.Secrets.loaded() {
		return nil, fmt.Errorf("%w: missing secrets", zerrors.ErrCorruptStore)
	}

	if file.Tier == "" {
		file.Tier = TierStandard
	} else if _, err := file.Tier.Iterations(); err != nil {
		return nil, fmt.Errorf("%w: %v", zerrors.ErrCorruptStore, err)
	}

	return &file, nil
}

// save writes the whole store file atomically: marshal, write to a temporary
// file in the same directory, then rename over the original. A concurrent
// reader sees either the old or the new file, never a truncated one. Two
// concurrent writers still race; the later rename wins and the other update
// is lost, as there is no cross-process locking.
func (s *Store) save(file *storeFile) error {
	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal store file: %w", err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(s.Dir, StoreFileName+"-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary store file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write temporary store file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to sync temporary store file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temporary store file: %w", err)
	}

	if err := os.Rename(tmpPath, s.StorePath()); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace store file: %w", err)
	}
	return nil
}

// workingKey resolves the master key and derives the operational key using
// the tier and salt recorded in the store file. For non-standard tiers the
// master key buffer is scrubbed once the derived key exists; for standard the
// returned key is the master key itself.
func (s *Store) workingKey(file *storeFile) ([]byte, error) {
	masterKey, err := ResolveMasterKey(s.KeyPath(), MasterKeyEnvVar)
	if err != nil {
		return nil, err
	}

	var salt []byte
	if file.Tier != TierStandard {
		salt, err = base64.StdEncoding.DecodeString(file.Salt)
		if err != nil {
			ClearBytes(masterKey)
			return nil, fmt.Errorf("%w: salt is not valid base64: %v", zerrors.ErrCorruptStore, err)
		}
	}

	key, err := DeriveKey(masterKey, salt, file.Tier)
	if err != nil {
		ClearBytes(masterKey)
		return nil, err
	}
	if file.Tier != TierStandard {
		ClearBytes(masterKey)
	}
	return key, nil
}

// decryptRecord decodes and decrypts a single record.
func decryptRecord(key []byte, name string, rec SecretRecord) (string, error) {
	ciphertext, err := base64.StdEncoding.DecodeString(rec.Ciphertext)
	if err != nil {
		return "", fmt.Errorf("%w: secret %s has invalid base64 ciphertext", zerrors.ErrMalformedCiphertext, name)
	}
	nonce, err := base64.StdEncoding.DecodeString(rec.Nonce)
	if err != nil {
		return "", fmt.Errorf("%w: secret %s has invalid base64 nonce", zerrors.ErrMalformedCiphertext, name)
	}

	plaintext, err := Decrypt(key, ciphertext, nonce)
	if err != nil {
		return "", err
	}
	value := string(plaintext)
	ClearBytes(plaintext)
	return value, nil
}

// quoteEnvValue wraps a value in double quotes when it contains whitespace,
// an equals sign, or a quote, matching common .env conventions. Inner quotes
// and backslashes are escaped when quoting.
func quoteEnvValue(value string) string {
	if !strings.ContainsAny(value, " \t\n=\"") {
		return value
	}
	escaped := strings.ReplaceAll(value, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, `"`, `\"`)
	return `"` + escaped + `"`
}
