// internal/session/password.go
package session

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Verifier checks a presented credential against a stored one. The
// session store never interprets credentials itself; datasets with
// different storage schemes plug in a different Verifier.
type Verifier interface {
	Verify(presented, stored string) (bool, error)
}

// PlaintextVerifier compares credentials byte for byte in constant
// time. It exists for the mock dataset, which stores plaintext.
type PlaintextVerifier struct{}

func (PlaintextVerifier) Verify(presented, stored string) (bool, error) {
	return subtle.ConstantTimeCompare([]byte(presented), []byte(stored)) == 1, nil
}

// Argon2Verifier checks against a salted Argon2id hash stored as
// base64(salt) + "$" + base64(hash).
type Argon2Verifier struct{}

// HashArgon2 produces a stored credential for Argon2Verifier.
func HashArgon2(credential string) (string, error) {
	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}

	hash := argon2.IDKey([]byte(credential), salt, 1, 64*1024, 4, 32)
	return base64.StdEncoding.EncodeToString(salt) + "$" + base64.StdEncoding.EncodeToString(hash), nil
}

func (Argon2Verifier) Verify(presented, stored string) (bool, error) {
	saltPart, hashPart, ok := strings.Cut(stored, "$")
	if !ok {
		return false, fmt.Errorf("malformed argon2 credential")
	}

	salt, err := base64.StdEncoding.DecodeString(saltPart)
	if err != nil {
		return false, fmt.Errorf("failed to decode salt: %w", err)
	}
	hash, err := base64.StdEncoding.DecodeString(hashPart)
	if err != nil {
		return false, fmt.Errorf("failed to decode hash: %w", err)
	}

	comparison := argon2.IDKey([]byte(presented), salt, 1, 64*1024, 4, 32)
	return subtle.ConstantTimeCompare(hash, comparison) == 1, nil
}

// SchemeVerifier dispatches on the "<scheme>:" prefix of the stored
// credential, so one dataset can mix plaintext seeds with hashed
// accounts.
type SchemeVerifier struct {
	schemes map[string]Verifier
}

// NewSchemeVerifier registers the plain and argon2 schemes.
func NewSchemeVerifier() *SchemeVerifier {
	return &SchemeVerifier{schemes: map[string]Verifier{
		"plain":  PlaintextVerifier{},
		"argon2": Argon2Verifier{},
	}}
}

func (v *SchemeVerifier) Verify(presented, stored string) (bool, error) {
	scheme, rest, ok := strings.Cut(stored, ":")
	if !ok {
		return false, fmt.Errorf("credential has no scheme prefix")
	}
	verifier, ok := v.schemes[scheme]
	if !ok {
		return false, fmt.Errorf("unknown credential scheme %q", scheme)
	}
	return verifier.Verify(presented, rest)
}
