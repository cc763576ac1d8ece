package errors

import "errors"

// Store state errors indicate problems with the store file's presence or shape.
var (
	// ErrAlreadyInitialized indicates init was run in a directory that already has a store.
	ErrAlreadyInitialized = errors.New("zeroenv is already initialized in this directory")

	// ErrNotInitialized indicates no store file exists in the target directory.
	ErrNotInitialized = errors.New("zeroenv has not been initialized")

	// ErrCorruptStore indicates the store file exists but is not valid JSON or is
	// missing required fields.
	ErrCorruptStore = errors.New("secrets store is corrupt")
)

// Key resolution errors indicate the master key could not be obtained.
var (
	// ErrMasterKeyNotFound indicates neither the key file nor the environment
	// override provided a master key.
	ErrMasterKeyNotFound = errors.New("master key not found")

	// ErrInvalidMasterKey indicates the master key could not be decoded or has
	// the wrong length.
	ErrInvalidMasterKey = errors.New("invalid master key")
)

// Cryptographic errors indicate failures during encryption or decryption.
var (
	// ErrAuthenticationFailed indicates the GCM tag did not verify: the data was
	// tampered with or a different key was used. Callers must never collapse this
	// into a generic I/O failure.
	ErrAuthenticationFailed = errors.New("authentication failed: data was tampered with or the wrong key was used")

	// ErrMalformedCiphertext indicates structurally invalid ciphertext or nonce,
	// as opposed to a failed integrity check.
	ErrMalformedCiphertext = errors.New("malformed ciphertext")
)

// Secret and configuration errors.
var (
	// ErrSecretNotFound indicates the named secret does not exist in the store.
	ErrSecretNotFound = errors.New("secret not found")

	// ErrUnknownTier indicates a security tier name outside {standard, enhanced, max}.
	ErrUnknownTier = errors.New("unknown security tier")

	// ErrUnknownExportFormat indicates an export format outside {env, json}.
	ErrUnknownExportFormat = errors.New("unknown export format")
)
