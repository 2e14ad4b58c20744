package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims carries the shopper session id in the subject.
type SessionClaims struct {
	jwt.RegisteredClaims
}

type JWTService struct {
	secretKey  []byte
	issuer     string
	expiration time.Duration
	now        func() time.Time
}

func NewJWTService(secretKey, issuer string, expiration time.Duration) *JWTService {
	return &JWTService{
		secretKey:  []byte(secretKey),
		issuer:     issuer,
		expiration: expiration,
		now:        time.Now,
	}
}

// GenerateToken signs a token for sessionID.
func (s *JWTService) GenerateToken(sessionID string) (string, error) {
	now := s.now()
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sessionID,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	if s.expiration > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(s.expiration))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// ValidateToken verifies the signature and time claims and returns the
// session id.
func (s *JWTService) ValidateToken(tokenString string) (string, error) {
	claims := &SessionClaims{}
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return s.secretKey, nil
	}, opts...)
	if err != nil {
		return "", err
	}
	if !token.Valid {
		return "", errors.New("invalid token")
	}
	if claims.Subject == "" {
		return "", errors.New("token has no session subject")
	}
	return claims.Subject, nil
}

// Expiration is the lifetime of issued tokens.
func (s *JWTService) Expiration() time.Duration {
	return s.expiration
}
