package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/inkwell-shop/storefront/domain"
	"github.com/inkwell-shop/storefront/domain/account"
)

const issuer = "storefront"

// ErrTokensDisabled is returned by Issue when no signing secret is set.
var ErrTokensDisabled = errors.New("access tokens are disabled")

// accessClaims is the JWT payload.
type accessClaims struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	UserType string `json:"userType"`
	jwt.RegisteredClaims
}

// JWTTokens implements account.Tokens with HS256-signed JWTs.
type JWTTokens struct {
	secret []byte
	ttl    time.Duration
}

// NewJWTTokens creates a token issuer. An empty secret disables tokens.
func NewJWTTokens(secret string, ttl time.Duration) JWTTokens {
	return JWTTokens{secret: []byte(secret), ttl: ttl}
}

// Enabled reports whether a signing secret is configured.
func (t JWTTokens) Enabled() bool {
	return len(t.secret) > 0
}

// Issue signs a token for claims valid from now for the configured TTL.
func (t JWTTokens) Issue(claims account.Claims, now time.Time) (string, error) {
	if !t.Enabled() {
		return "", ErrTokensDisabled
	}
	payload := accessClaims{
		Name:     claims.Name,
		Email:    claims.Email,
		UserType: claims.UserType,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   claims.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, payload).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify parses token and returns its claims. Any failure, including an
// expired token or a foreign signing method, is domain.ErrUnauthorized.
func (t JWTTokens) Verify(token string) (account.Claims, error) {
	if !t.Enabled() {
		return account.Claims{}, fmt.Errorf("%w: %w", domain.ErrUnauthorized, ErrTokensDisabled)
	}

	var payload accessClaims
	_, err := jwt.ParseWithClaims(token, &payload, func(*jwt.Token) (any, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return account.Claims{}, fmt.Errorf("%w: %w", domain.ErrUnauthorized, err)
	}

	return account.Claims{
		UserID:   payload.Subject,
		Name:     payload.Name,
		Email:    payload.Email,
		UserType: payload.UserType,
	}, nil
}
