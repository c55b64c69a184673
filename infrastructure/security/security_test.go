package security

import (
	"testing"
	"time"

	"github.com/inkwell-shop/storefront/domain"
	"github.com/inkwell-shop/storefront/domain/account"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)

	assert.True(t, h.Compare(hash, "correct horse"))
	assert.False(t, h.Compare(hash, "wrong horse"))
	assert.False(t, h.Compare("", "correct horse"))
}

func TestNewBcryptHasher_InvalidCost(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(0).cost)
	assert.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(99).cost)
}

func TestJWTTokens_RoundTrip(t *testing.T) {
	tokens := NewJWTTokens("s3cret", time.Hour)
	require.True(t, tokens.Enabled())

	claims := account.Claims{UserID: "u-1", Name: "Ada", Email: "ada@example.com", UserType: "customer"}
	token, err := tokens.Issue(claims, time.Now())
	require.NoError(t, err)

	got, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, claims, got)
}

func TestJWTTokens_Rejects(t *testing.T) {
	tokens := NewJWTTokens("s3cret", time.Minute)
	claims := account.Claims{UserID: "u-1"}

	expired, err := tokens.Issue(claims, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	_, err = tokens.Verify(expired)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	foreign, err := NewJWTTokens("other", time.Minute).Issue(claims, time.Now())
	require.NoError(t, err)
	_, err = tokens.Verify(foreign)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = tokens.Verify("not-a-token")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestJWTTokens_Disabled(t *testing.T) {
	tokens := NewJWTTokens("", time.Minute)
	assert.False(t, tokens.Enabled())

	_, err := tokens.Issue(account.Claims{UserID: "u"}, time.Now())
	assert.ErrorIs(t, err, ErrTokensDisabled)

	_, err = tokens.Verify("anything")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
