package session

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	domsession "example.com/shareeghor/app/internal/domain/session"
)

type TokenService interface {
	GenerateToken(sessionID string) (string, time.Time, error)
	ParseToken(token string) (string, error)
}

type Service struct {
	tokens TokenService
	newID  func() string
}

func NewService(tokens TokenService) *Service {
	return &Service{
		tokens: tokens,
		newID:  func() string { return uuid.NewString() },
	}
}

// Start opens a new guest session.
func (s *Service) Start(ctx context.Context) (*domsession.Session, error) {
	id := s.newID()
	token, expiresAt, err := s.tokens.GenerateToken(id)
	if err != nil {
		return nil, err
	}
	return &domsession.Session{ID: id, Token: token, ExpiresAt: expiresAt}, nil
}

// Resolve maps a bearer token back to its session id.
func (s *Service) Resolve(ctx context.Context, token string) (string, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", domsession.ErrInvalidToken
	}
	return s.tokens.ParseToken(token)
}
