package kv

import (
	"context"
	"errors"
	"strings"
)

// Keys written by the storefront core.
const (
	KeyCart      = "cart"
	KeyCartOpen  = "cartOpen"
	KeyLastOrder = "lastOrder"
)

var ErrNotFound = errors.New("key not found")

// Store is the key-value collaborator standing in for browser local
// storage. Get returns ErrNotFound for absent keys.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

type namespaced struct {
	next   Store
	prefix string
}

// Namespace scopes every key of next under ns, joined with ":".
func Namespace(next Store, ns ...string) Store {
	parts := make([]string, 0, len(ns))
	for _, p := range ns {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return next
	}
	return &namespaced{next: next, prefix: strings.Join(parts, ":") + ":"}
}

func (n *namespaced) Get(ctx context.Context, key string) ([]byte, error) {
	return n.next.Get(ctx, n.prefix+key)
}

func (n *namespaced) Set(ctx context.Context, key string, value []byte) error {
	return n.next.Set(ctx, n.prefix+key, value)
}

func (n *namespaced) Delete(ctx context.Context, key string) error {
	return n.next.Delete(ctx, n.prefix+key)
}

// SessionKeys scopes store to a single guest session.
func SessionKeys(store Store, sessionID string) Store {
	return Namespace(store, "session", sessionID)
}
