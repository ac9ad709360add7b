// Package tokenstore persists the session's bearer token across process
// restarts. Exactly one token is stored, under a fixed key; the session
// manager is its only writer.
package tokenstore

import (
	"context"
	"sync"
)

// TokenKey is the fixed storage key for the bearer token.
const TokenKey = "auth_token"

// Store is the persistence contract. Load returns "" (not an error) when no
// token is stored.
type Store interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// Memory is an in-process Store used in tests and by callers that opt out of
// persistence.
type Memory struct {
	mu    sync.Mutex
	token string
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory { return &Memory{} }

// Load returns the stored token, or "" when none is set.
func (m *Memory) Load(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, nil
}

// Save replaces the stored token.
func (m *Memory) Save(ctx context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

// Clear removes the stored token. Clearing an empty store is a no-op.
func (m *Memory) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}
