package auth

import (
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Credential verifies a login attempt against the single configured admin.
type Credential interface {
	Verify(email, password string) bool
	// Kind names the variant for logging: "bcrypt", "plaintext" or "none".
	Kind() string
}

// CredentialConfig is the raw admin configuration read from the environment.
type CredentialConfig struct {
	Email          string
	PasswordHash   string
	Password       string
	AllowPlaintext bool
}

// NewCredential picks the credential variant for cfg.
//
// A bcrypt hash always wins. A plaintext password is only used when no hash
// is configured and AllowPlaintext is set; without the flag it is ignored and
// every login is refused. A malformed hash is an error.
func NewCredential(cfg CredentialConfig) (Credential, error) {
	if cfg.Email == "" {
		return NoCredential{Reason: "ADMIN_EMAIL is not set"}, nil
	}
	if cfg.PasswordHash != "" {
		if _, err := bcrypt.Cost([]byte(cfg.PasswordHash)); err != nil {
			return nil, fmt.Errorf("auth: invalid ADMIN_PASSWORD_HASH: %w", err)
		}
		return HashedCredential{Email: cfg.Email, Hash: []byte(cfg.PasswordHash)}, nil
	}
	if cfg.Password == "" {
		return NoCredential{Reason: "no admin password configured"}, nil
	}
	if !cfg.AllowPlaintext {
		return NoCredential{Reason: "plaintext ADMIN_PASSWORD ignored without ADMIN_ALLOW_PLAINTEXT=true"}, nil
	}
	return PlaintextCredential{Email: cfg.Email, Password: cfg.Password}, nil
}

// HashedCredential checks the password with bcrypt.
type HashedCredential struct {
	Email string
	Hash  []byte
}

// Verify compares the email exactly (case-sensitive) and the password with
// bcrypt. The hash comparison runs even when the email differs.
func (c HashedCredential) Verify(email, password string) bool {
	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(c.Email)) == 1
	passOK := bcrypt.CompareHashAndPassword(c.Hash, []byte(password)) == nil
	return emailOK && passOK
}

func (HashedCredential) Kind() string { return "bcrypt" }

// PlaintextCredential is an insecure development-only fallback.
type PlaintextCredential struct {
	Email    string
	Password string
}

func (c PlaintextCredential) Verify(email, password string) bool {
	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(c.Email)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(c.Password)) == 1
	return emailOK && passOK
}

func (PlaintextCredential) Kind() string { return "plaintext" }

// NoCredential refuses every login.
type NoCredential struct {
	Reason string
}

func (NoCredential) Verify(string, string) bool { return false }

func (NoCredential) Kind() string { return "none" }
