package secrets

import (
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"strings"

	"golang.org/x/crypto/pbkdf2"

	zerrors "github.com/ropeadope62/zeroenv/internal/errors"
)

// SecurityTier names a key-derivation cost preset. The tier is fixed when the
// store is initialized and read back from the store file on every later
// operation; callers never choose it per-operation.
type SecurityTier string

const (
	// TierStandard uses the master key directly with no derivation.
	TierStandard SecurityTier = "standard"

	// TierEnhanced stretches the master key with 100,000 PBKDF2 rounds.
	TierEnhanced SecurityTier = "enhanced"

	// TierMax stretches the master key with 500,000 PBKDF2 rounds.
	TierMax SecurityTier = "max"
)

// SaltSize is the derivation salt length in bytes. The salt is generated once
// at init and reused for every derivation so the derived key is reproducible.
const SaltSize = 32

var tierIterations = map[SecurityTier]int{
	TierStandard: 0,
	TierEnhanced: 100000,
	TierMax:      500000,
}

// ParseTier validates a tier name at the boundary, rejecting unknown tags
// before they reach any derivation code.
func ParseTier(s string) (SecurityTier, error) {
	tier := SecurityTier(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := tierIterations[tier]; !ok {
		return "", fmt.Errorf("%w: %q (want standard, enhanced, or max)", zerrors.ErrUnknownTier, s)
	}
	return tier, nil
}

// Iterations returns the PBKDF2 round count for the tier.
func (t SecurityTier) Iterations() (int, error) {
	iterations, ok := tierIterations[t]
	if !ok {
		return 0, fmt.Errorf("%w: %q", zerrors.ErrUnknownTier, string(t))
	}
	return iterations, nil
}

// GenerateSalt returns a new random derivation salt. Called once, at init,
// and only for tiers other than standard.
func GenerateSalt() ([]byte, error) {
	salt := make([]byte, SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	return salt, nil
}

// DeriveKey computes the operational encryption key for a tier. Standard
// returns the master key unchanged; enhanced and max run
// PBKDF2-HMAC-SHA256(masterKey, salt, iterations) down to exactly 32 bytes.
// Deterministic: identical inputs always yield the identical key. The
// enhanced and max tiers deliberately burn 100-500ms of CPU per derivation.
func DeriveKey(masterKey, salt []byte, tier SecurityTier) ([]byte, error) {
	iterations, err := tier.Iterations()
	if err != nil {
		return nil, err
	}
	if tier == TierStandard {
		return masterKey, nil
	}
	if len(salt) == 0 {
		return nil, fmt.Errorf("%w: tier %s requires a salt", zerrors.ErrCorruptStore, tier)
	}
	return pbkdf2.Key(masterKey, salt, iterations, KeySize, sha256.New), nil
}
