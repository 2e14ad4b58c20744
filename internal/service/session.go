package service

import (
	"context"

	apperrors "github.com/Payphone-Digital/storefront/internal/errors"
	"github.com/Payphone-Digital/storefront/internal/session"
	"github.com/Payphone-Digital/storefront/pkg/logger"
)

type SessionService struct {
	registry *session.Registry
	tokens   *JWTService
}

func NewSessionService(registry *session.Registry, tokens *JWTService) *SessionService {
	return &SessionService{registry: registry, tokens: tokens}
}

// Start creates a session and the bearer token that addresses it.
func (s *SessionService) Start(ctx context.Context) (*session.Session, string, error) {
	sess, err := s.registry.Create(ctx)
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to create session").Err(err).Log()
		return nil, "", err
	}

	token, err := s.tokens.GenerateToken(sess.ID)
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to sign session token").
			String("session_id", sess.ID).
			Err(err).
			Log()
		return nil, "", apperrors.WrapError(apperrors.ErrInternal, err)
	}
	return sess, token, nil
}

// Resolve validates token and returns its live session.
func (s *SessionService) Resolve(ctx context.Context, token string) (*session.Session, error) {
	sessionID, err := s.tokens.ValidateToken(token)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInvalidToken, err)
	}
	return s.registry.Get(ctx, sessionID)
}

// End discards the session and its stored state. The token keeps working
// until it expires but reopens an empty session.
func (s *SessionService) End(ctx context.Context, sess *session.Session) error {
	if err := s.registry.Remove(ctx, sess.ID); err != nil {
		logger.ErrorWithContext(ctx, "Failed to end session").
			String("session_id", sess.ID).
			Err(err).
			Log()
		return err
	}
	return nil
}

// TokenTTLSeconds is reported to clients as expires_in.
func (s *SessionService) TokenTTLSeconds() int64 {
	return int64(s.tokens.Expiration().Seconds())
}
