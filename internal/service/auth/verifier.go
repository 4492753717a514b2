package auth

import (
	"crypto/subtle"
	"strings"

	"github.com/cmlabs-hris/sistem-gaji/internal/domain/auth"
	"golang.org/x/crypto/bcrypt"
)

// BcryptVerifier stores passwords as bcrypt hashes.
type BcryptVerifier struct {
	Cost int
}

func NewBcryptVerifier(cost int) *BcryptVerifier {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptVerifier{Cost: cost}
}

func (v *BcryptVerifier) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), v.Cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (v *BcryptVerifier) Verify(stored string, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)); err != nil {
		return auth.ErrInvalidCredentials
	}
	return nil
}

func (v *BcryptVerifier) NeedsRehash(stored string) bool {
	cost, err := bcrypt.Cost([]byte(stored))
	return err != nil || cost < v.Cost
}

func isBcryptHash(stored string) bool {
	return strings.HasPrefix(stored, "$2a$") || strings.HasPrefix(stored, "$2b$") || strings.HasPrefix(stored, "$2y$")
}

// PlaintextVerifier also accepts credentials stored as plain text by older data files.
// New credentials are still hashed with bcrypt and plain text entries report NeedsRehash.
// Only enable it for documents that still contain plain text passwords.
type PlaintextVerifier struct {
	*BcryptVerifier
}

func NewPlaintextVerifier(bcryptVerifier *BcryptVerifier) *PlaintextVerifier {
	return &PlaintextVerifier{BcryptVerifier: bcryptVerifier}
}

func (v *PlaintextVerifier) Verify(stored string, password string) error {
	if isBcryptHash(stored) {
		return v.BcryptVerifier.Verify(stored, password)
	}
	if stored == "" || subtle.ConstantTimeCompare([]byte(stored), []byte(password)) != 1 {
		return auth.ErrInvalidCredentials
	}
	return nil
}
