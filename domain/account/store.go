package account

import (
	"context"
	"strings"
	"time"

	"github.com/inkwell-shop/storefront/domain/repository"
)

// Store defines persistence for users.
type Store interface {
	repository.Store[User]
	Save(ctx context.Context, u User) (User, error)
	// ClaimResetAttempt uses up one confirmation attempt of the pending
	// reset. It reports false when no reset is pending or limit attempts
	// have already been used.
	ClaimResetAttempt(ctx context.Context, id string, limit int) (bool, error)
	// ClearReset drops the pending reset code.
	ClearReset(ctx context.Context, id string) error
}

// Hasher hashes and verifies secrets such as passwords and reset codes.
type Hasher interface {
	Hash(secret string) (string, error)
	Compare(hash, secret string) bool
}

// Claims is the identity carried by an access token.
type Claims struct {
	UserID   string
	Name     string
	Email    string
	UserType string
}

// Tokens issues and verifies access tokens.
type Tokens interface {
	Enabled() bool
	Issue(claims Claims, now time.Time) (string, error)
	Verify(token string) (Claims, error)
}

// Mailer delivers password reset codes.
type Mailer interface {
	SendResetCode(ctx context.Context, email, code string, expiresAt time.Time) error
}

// WithEmail filters by the "email" column.
func WithEmail(email string) repository.Option {
	return repository.WithCondition("email", NormalizeEmail(email))
}

// WithUserType filters by the "user_type" column.
func WithUserType(userType string) repository.Option {
	return repository.WithCondition("user_type", strings.TrimSpace(userType))
}
