// Package account provides storefront users and their credentials.
package account

import (
	"fmt"
	"strings"
	"time"

	"github.com/inkwell-shop/storefront/domain"
)

// User is a registered account. Accounts are unique per (email, user type),
// so the same e-mail may hold a customer and a seller account.
type User struct {
	id             string
	name           string
	email          string
	passwordHash   string
	userType       string
	resetCodeHash  string
	resetExpiresAt time.Time
	resetAttempts  int
	createdAt      time.Time
}

// NewUser creates a user that has not been persisted yet.
func NewUser(name, email, passwordHash, userType string) User {
	return User{
		name:         strings.TrimSpace(name),
		email:        NormalizeEmail(email),
		passwordHash: passwordHash,
		userType:     strings.TrimSpace(userType),
	}
}

// ReconstructUser recreates a User from persistence.
func ReconstructUser(
	id, name, email, passwordHash, userType, resetCodeHash string,
	resetExpiresAt time.Time, resetAttempts int, createdAt time.Time,
) User {
	return User{
		id:             id,
		name:           name,
		email:          email,
		passwordHash:   passwordHash,
		userType:       userType,
		resetCodeHash:  resetCodeHash,
		resetExpiresAt: resetExpiresAt,
		resetAttempts:  resetAttempts,
		createdAt:      createdAt,
	}
}

// ID returns the user identifier.
func (u User) ID() string { return u.id }

// Name returns the display name.
func (u User) Name() string { return u.name }

// Email returns the normalised e-mail address.
func (u User) Email() string { return u.email }

// PasswordHash returns the stored password hash.
func (u User) PasswordHash() string { return u.passwordHash }

// UserType returns the account type, e.g. "customer" or "seller".
func (u User) UserType() string { return u.userType }

// ResetCodeHash returns the hash of the pending reset code, if any.
func (u User) ResetCodeHash() string { return u.resetCodeHash }

// ResetExpiresAt returns when the pending reset code expires.
func (u User) ResetExpiresAt() time.Time { return u.resetExpiresAt }

// ResetAttempts returns how many confirmations were tried against the
// pending reset code.
func (u User) ResetAttempts() int { return u.resetAttempts }

// CreatedAt returns the creation time.
func (u User) CreatedAt() time.Time { return u.createdAt }

// HasPendingReset reports whether a reset code is stored and unexpired at now.
func (u User) HasPendingReset(now time.Time) bool {
	return u.resetCodeHash != "" && now.Before(u.resetExpiresAt)
}

// WithResetCode returns a copy holding a pending reset code hash.
func (u User) WithResetCode(codeHash string, expiresAt time.Time) User {
	u.resetCodeHash = codeHash
	u.resetExpiresAt = expiresAt
	u.resetAttempts = 0
	return u
}

// WithPassword returns a copy with a new password hash and no pending reset.
func (u User) WithPassword(passwordHash string) User {
	u.passwordHash = passwordHash
	u.resetCodeHash = ""
	u.resetExpiresAt = time.Time{}
	u.resetAttempts = 0
	return u
}

// NormalizeEmail trims and lower-cases an e-mail address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// RequireFields returns a validation error when any value is blank.
func RequireFields(values ...string) error {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("%w: all fields are required", domain.ErrValidation)
		}
	}
	return nil
}
