package session

import (
	"errors"
	"time"
)

var ErrInvalidToken = errors.New("invalid session token")

// Session is an anonymous guest session. Its ID scopes the guest's cart and
// last order in the key-value store.
type Session struct {
	ID        string    `json:"sessionId"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}
