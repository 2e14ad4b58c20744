package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService("secret", "storefront", time.Hour)

	token, err := svc.GenerateToken("7b0c3c1e-3b8e-4f55-9a5c-0d3f8f6b2a10")
	require.NoError(t, err)

	id, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "7b0c3c1e-3b8e-4f55-9a5c-0d3f8f6b2a10", id)
}

func TestJWTService_RejectsWrongSecret(t *testing.T) {
	token, err := NewJWTService("a", "storefront", time.Hour).GenerateToken("s")
	require.NoError(t, err)

	_, err = NewJWTService("b", "storefront", time.Hour).ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_RejectsExpired(t *testing.T) {
	svc := NewJWTService("secret", "storefront", time.Minute)
	issued := time.Now().Add(-time.Hour)
	svc.now = func() time.Time { return issued }
	token, err := svc.GenerateToken("s")
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestJWTService_RejectsOtherIssuer(t *testing.T) {
	token, err := NewJWTService("secret", "elsewhere", time.Hour).GenerateToken("s")
	require.NoError(t, err)

	_, err = NewJWTService("secret", "storefront", time.Hour).ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_RejectsOtherAlgorithms(t *testing.T) {
	claims := jwt.RegisteredClaims{Subject: "s", Issuer: "storefront"}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = NewJWTService("secret", "storefront", time.Hour).ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_RejectsMissingSubject(t *testing.T) {
	token, err := NewJWTService("secret", "storefront", time.Hour).GenerateToken("")
	require.NoError(t, err)

	_, err = NewJWTService("secret", "storefront", time.Hour).ValidateToken(token)
	assert.Error(t, err)
}
