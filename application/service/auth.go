package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/inkwell-shop/storefront/domain"
	"github.com/inkwell-shop/storefront/domain/account"
	"github.com/inkwell-shop/storefront/domain/repository"
)

// ResetCodeDigits is the length of a password reset code.
const ResetCodeDigits = 6

// DefaultMaxResetAttempts is how many confirmations one reset code allows.
const DefaultMaxResetAttempts = 5

var errInvalidCredentials = fmt.Errorf("%w: invalid credentials", domain.ErrUnauthorized)

var errInvalidResetCode = fmt.Errorf("%w: invalid or expired code", domain.ErrUnauthorized)

// SignupParams configures a new account.
type SignupParams struct {
	Name     string
	Email    string
	Password string
	UserType string
}

// LoginParams identifies an account by email and user type.
type LoginParams struct {
	Email    string
	Password string
	UserType string
}

// LoginResult is a successful login. Token is empty when tokens are disabled.
type LoginResult struct {
	User  account.User
	Token string
}

// ResetConfirmParams completes a password reset.
type ResetConfirmParams struct {
	Email       string
	UserType    string
	Code        string
	NewPassword string
}

// Auth handles signup, login and password resets.
type Auth struct {
	users    account.Store
	hasher   account.Hasher
	tokens   account.Tokens
	mailer   account.Mailer
	resetTTL time.Duration
	attempts int
	now      func() time.Time
	logger   *slog.Logger
}

// AuthOption configures Auth.
type AuthOption func(*Auth)

// WithMailer sets the reset code mailer. Defaults to a LogMailer.
func WithMailer(m account.Mailer) AuthOption {
	return func(a *Auth) { a.mailer = m }
}

// WithResetTTL sets how long reset codes stay valid.
func WithResetTTL(d time.Duration) AuthOption {
	return func(a *Auth) {
		if d > 0 {
			a.resetTTL = d
		}
	}
}

// WithMaxResetAttempts sets how many confirmations a reset code allows.
func WithMaxResetAttempts(n int) AuthOption {
	return func(a *Auth) {
		if n > 0 {
			a.attempts = n
		}
	}
}

// WithAuthClock overrides the clock.
func WithAuthClock(now func() time.Time) AuthOption {
	return func(a *Auth) { a.now = now }
}

// NewAuth creates a new Auth service.
func NewAuth(users account.Store, hasher account.Hasher, tokens account.Tokens, logger *slog.Logger, opts ...AuthOption) *Auth {
	a := &Auth{
		users:    users,
		hasher:   hasher,
		tokens:   tokens,
		resetTTL: 15 * time.Minute,
		attempts: DefaultMaxResetAttempts,
		now:      time.Now,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.mailer == nil {
		a.mailer = NewLogMailer(logger)
	}
	return a
}

// Signup creates an account. Duplicate (email, user type) pairs are
// domain.ErrConflict.
func (s *Auth) Signup(ctx context.Context, params SignupParams) (account.User, error) {
	if err := account.RequireFields(params.Name, params.Email, params.Password, params.UserType); err != nil {
		return account.User{}, err
	}
	hash, err := s.hasher.Hash(params.Password)
	if err != nil {
		return account.User{}, fmt.Errorf("hash password: %w", err)
	}
	user, err := s.users.Save(ctx, account.NewUser(params.Name, params.Email, hash, params.UserType))
	if err != nil {
		return account.User{}, fmt.Errorf("signup: %w", err)
	}
	s.logger.InfoContext(ctx, "user created", "user_id", user.ID(), "user_type", user.UserType())
	return user, nil
}

// Login checks credentials and issues a token when tokens are enabled.
func (s *Auth) Login(ctx context.Context, params LoginParams) (LoginResult, error) {
	if err := account.RequireFields(params.Email, params.Password, params.UserType); err != nil {
		return LoginResult{}, err
	}
	user, err := s.lookup(ctx, params.Email, params.UserType)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return LoginResult{}, errInvalidCredentials
		}
		return LoginResult{}, err
	}
	if !s.hasher.Compare(user.PasswordHash(), params.Password) {
		return LoginResult{}, errInvalidCredentials
	}

	result := LoginResult{User: user}
	if s.tokens.Enabled() {
		token, err := s.tokens.Issue(account.Claims{
			UserID:   user.ID(),
			Name:     user.Name(),
			Email:    user.Email(),
			UserType: user.UserType(),
		}, s.now())
		if err != nil {
			return LoginResult{}, fmt.Errorf("issue token: %w", err)
		}
		result.Token = token
	}
	return result, nil
}

// Me resolves a bearer token to its account.
func (s *Auth) Me(ctx context.Context, token string) (account.User, error) {
	if token == "" {
		return account.User{}, fmt.Errorf("%w: missing token", domain.ErrUnauthorized)
	}
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return account.User{}, err
	}
	user, err := s.users.FindOne(ctx, repository.WithID(claims.UserID))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return account.User{}, fmt.Errorf("%w: unknown account", domain.ErrUnauthorized)
		}
		return account.User{}, err
	}
	return user, nil
}

// RequestReset stores a hashed reset code for the account and mails the
// plain code. Unknown accounts are not reported, so callers cannot discover
// which emails are registered.
func (s *Auth) RequestReset(ctx context.Context, email, userType string) error {
	if err := account.RequireFields(email, userType); err != nil {
		return err
	}
	user, err := s.lookup(ctx, email, userType)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.DebugContext(ctx, "password reset requested for unknown account")
			return nil
		}
		return err
	}

	code, err := resetCode()
	if err != nil {
		return fmt.Errorf("generate reset code: %w", err)
	}
	hash, err := s.hasher.Hash(code)
	if err != nil {
		return fmt.Errorf("hash reset code: %w", err)
	}
	expiresAt := s.now().Add(s.resetTTL)
	if _, err := s.users.Save(ctx, user.WithResetCode(hash, expiresAt)); err != nil {
		return fmt.Errorf("store reset code: %w", err)
	}
	if err := s.mailer.SendResetCode(ctx, user.Email(), code, expiresAt); err != nil {
		return fmt.Errorf("send reset code: %w", err)
	}
	return nil
}

// ConfirmReset replaces the password when code matches an unexpired reset.
// Each call uses up one attempt; the reset is dropped once the attempts run
// out, and a new code must be requested.
func (s *Auth) ConfirmReset(ctx context.Context, params ResetConfirmParams) error {
	if err := account.RequireFields(params.Email, params.UserType, params.Code, params.NewPassword); err != nil {
		return err
	}
	user, err := s.lookup(ctx, params.Email, params.UserType)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return errInvalidResetCode
		}
		return err
	}
	if !user.HasPendingReset(s.now()) {
		return errInvalidResetCode
	}
	claimed, err := s.users.ClaimResetAttempt(ctx, user.ID(), s.attempts)
	if err != nil {
		return err
	}
	if !claimed {
		return s.dropReset(ctx, user)
	}
	if !s.hasher.Compare(user.ResetCodeHash(), params.Code) {
		if user.ResetAttempts()+1 >= s.attempts {
			return s.dropReset(ctx, user)
		}
		return errInvalidResetCode
	}

	hash, err := s.hasher.Hash(params.NewPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if _, err := s.users.Save(ctx, user.WithPassword(hash)); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	s.logger.InfoContext(ctx, "password reset", "user_id", user.ID())
	return nil
}

// dropReset clears a reset whose attempts are used up.
func (s *Auth) dropReset(ctx context.Context, user account.User) error {
	if err := s.users.ClearReset(ctx, user.ID()); err != nil {
		return fmt.Errorf("clear reset: %w", err)
	}
	s.logger.WarnContext(ctx, "password reset cleared after too many attempts", "user_id", user.ID())
	return errInvalidResetCode
}

func (s *Auth) lookup(ctx context.Context, email, userType string) (account.User, error) {
	return s.users.FindOne(ctx, account.WithEmail(email), account.WithUserType(userType))
}

func resetCode() (string, error) {
	limit := big.NewInt(1_000_000)
	n, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", ResetCodeDigits, n.Int64()), nil
}

// LogMailer writes reset codes to the log instead of sending mail.
type LogMailer struct {
	logger *slog.Logger
}

// NewLogMailer creates a LogMailer.
func NewLogMailer(logger *slog.Logger) LogMailer {
	return LogMailer{logger: logger}
}

// SendResetCode logs the code at info level.
func (m LogMailer) SendResetCode(ctx context.Context, email, code string, expiresAt time.Time) error {
	m.logger.InfoContext(ctx, "password reset code issued", "email", email, "code", code, "expires_at", expiresAt)
	return nil
}
