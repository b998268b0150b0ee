package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strconv"

	"ratehub/contexts/identity-access/identity-service/domain/entities"
)

const codeLength = 32

// CodeEngine derives and verifies single-use-per-state confirmation codes.
// Nothing is stored: the code is a keyed hash of the identity's primary key,
// role, and mutable-state fingerprint. Any change to the tracked state
// (last login, last update) yields a different code, which invalidates all
// previously issued ones without a write path or expiry sweeper.
type CodeEngine struct {
	secret []byte
}

func NewCodeEngine(secret string) CodeEngine {
	return CodeEngine{secret: []byte(secret)}
}

// Derive computes the confirmation code for the user's current state.
// Identical inputs always produce the same code, so a repeated signup with
// the same pair re-sends the still-valid code instead of minting a new one.
func (e CodeEngine) Derive(user entities.User) string {
	mac := hmac.New(sha256.New, e.secret)
	mac.Write([]byte(user.ID))
	mac.Write([]byte{0})
	mac.Write([]byte(user.Role))
	mac.Write([]byte{0})
	mac.Write([]byte(stateFingerprint(user)))
	return hex.EncodeToString(mac.Sum(nil))[:codeLength]
}

// Verify recomputes the code and compares in constant time.
func (e CodeEngine) Verify(user entities.User, submitted string) bool {
	derived := e.Derive(user)
	return subtle.ConstantTimeCompare([]byte(derived), []byte(submitted)) == 1
}

func stateFingerprint(user entities.User) string {
	return strconv.FormatInt(user.LastLoginAt.UTC().UnixNano(), 10) +
		"|" + strconv.FormatInt(user.UpdatedAt.UTC().UnixNano(), 10)
}
