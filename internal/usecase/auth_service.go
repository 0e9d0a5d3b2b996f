package usecase

import (
	"crypto/subtle"
	"strings"
	"unicode"

	"github.com/pricelens/backend/internal/domain"
)

// AuthService validates presented bearer tokens against the configured
// shared secret and reports the owner identity for validated callers.
type AuthService struct {
	token       string
	ownerNumber string
}

// NewAuthService creates a new auth service
func NewAuthService(token, ownerNumber string) *AuthService {
	return &AuthService{
		token:       token,
		ownerNumber: ownerNumber,
	}
}

// Validate authorizes a presented token. The contract is exact string
// equality with the configured secret; anything else is rejected and the
// caller must not issue the upstream call.
func (a *AuthService) Validate(presented string) error {
	if presented == "" {
		return domain.ErrUnauthorized
	}
	if subtle.ConstantTimeCompare([]byte(presented), []byte(a.token)) != 1 {
		return domain.ErrUnauthorized
	}
	return nil
}

// OwnerNumber returns the configured owner identity normalized to a bare
// digit string with the Indian country code. A 10-digit local number gets
// the "91" prefix; anything already carrying it is left alone.
func (a *AuthService) OwnerNumber() string {
	var digits strings.Builder
	for _, r := range a.ownerNumber {
		if unicode.IsDigit(r) {
			digits.WriteRune(r)
		}
	}

	number := digits.String()
	if !strings.HasPrefix(number, "91") && len(number) == 10 {
		number = "91" + number
	}
	return number
}
