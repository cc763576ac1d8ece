// Package secrets implements the zeroenv core: master-key lifecycle, tiered
// key derivation, per-secret AES-256-GCM encryption, and atomic persistence
// of the versioned store file.
//
// The store is a JSON file (.secrets) safe to commit to version control; the
// master key lives in a sibling file (.secrets.key) that must stay out of
// version control, or in the ZEROENV_MASTER_KEY environment variable for CI.
package secrets
