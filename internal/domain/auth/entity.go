package auth

import (
	"crypto/sha256"
	"encoding/base64"
)

// Role is carried in the access token.
type Role string

const (
	RoleTreasurer Role = "treasurer"
	RoleEmployee  Role = "employee"
)

// CredentialVerifier hashes and checks stored passwords.
type CredentialVerifier interface {
	Hash(password string) (string, error)
	// Verify returns ErrInvalidCredentials on mismatch.
	Verify(stored string, password string) error
	// NeedsRehash reports whether a stored credential should be replaced by Hash output.
	NeedsRehash(stored string) bool
}

// Session is the identity extracted from a verified access token.
type Session struct {
	Role        Role
	EmployeeKey string
	TokenID     string
	ExpiresAt   int64
	// Stamp ties an employee session to the credential it was issued for.
	Stamp string
}

// CredentialStamp fingerprints a stored credential. It changes whenever the
// credential is replaced, including when an employee is deleted and registered again.
func CredentialStamp(stored string) string {
	sum := sha256.Sum256([]byte(stored))
	return base64.RawURLEncoding.EncodeToString(sum[:12])
}
