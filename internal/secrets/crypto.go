package secrets

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"

	zerrors "github.com/ropeadope62/zeroenv/internal/errors"
)

const (
	// KeySize is the AES-256 key length in bytes.
	KeySize = 32

	// NonceSize is the GCM nonce length in bytes. 96 bits is the recommended
	// size for GCM; the nonce must never repeat under the same key.
	NonceSize = 12

	// TagSize is the GCM authentication tag length in bytes.
	TagSize = 16
)

// Encrypt seals plaintext with AES-256-GCM under key, using a fresh random
// nonce for every call. It returns the ciphertext with the authentication tag
// appended, and the nonce that was used. No associated data is bound.
func Encrypt(key, plaintext []byte) (ciphertext, nonce []byte, err error) {
	if len(key) != KeySize {
		return nil, nil, fmt.Errorf("%w: encryption key must be %d bytes, got %d", zerrors.ErrInvalidMasterKey, KeySize, len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	nonce = make([]byte, NonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	ciphertext = gcm.Seal(nil, nonce, plaintext, nil)
	return ciphertext, nonce, nil
}

// Decrypt verifies and opens ciphertext produced by Encrypt. A failed tag
// check returns ErrAuthenticationFailed; structurally invalid input (wrong
// nonce or key length, ciphertext shorter than the tag) returns
// ErrMalformedCiphertext.
func Decrypt(key, ciphertext, nonce []byte) ([]byte, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: decryption key must be %d bytes, got %d", zerrors.ErrMalformedCiphertext, KeySize, len(key))
	}
	if len(nonce) != NonceSize {
		return nil, fmt.Errorf("%w: nonce must be %d bytes, got %d", zerrors.ErrMalformedCiphertext, NonceSize, len(nonce))
	}
	if len(ciphertext) < TagSize {
		return nil, fmt.Errorf("%w: ciphertext shorter than authentication tag", zerrors.ErrMalformedCiphertext)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, zerrors.ErrAuthenticationFailed
	}
	return plaintext, nil
}

// ClearBytes zeroes b in place. Best-effort scrubbing of key material; the
// runtime may still hold other copies.
func ClearBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
