// Package auth holds the current user and bearer token. The token is
// the only persisted slice of client state: it is mirrored to Storage on
// every transition and seeded back on cold start. There is no expiry or
// refresh logic; a stale token is only discovered when the server
// rejects a call.
package auth

import (
	"sync"

	"go.uber.org/zap"

	"github.com/techikansh/blogging-platform/internal/types"
	"github.com/techikansh/blogging-platform/internal/utils"
)

type Store struct {
	mu      sync.Mutex
	user    *types.User
	token   string
	storage Storage
}

// NewStore seeds the token from storage before any other state is
// computed. storage may be nil for a purely in-memory store.
func NewStore(storage Storage) *Store {
	s := &Store{storage: storage}
	if storage != nil {
		token, err := storage.Load()
		if err != nil {
			utils.Zlog.Warn("failed to load persisted token", zap.Error(err))
		} else {
			s.token = token
		}
	}
	return s
}

// SetAuthState sets user and token together and mirrors the token to
// storage. An empty token is not persisted.
func (s *Store) SetAuthState(user *types.User, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = user
	s.token = token

	if token != "" && s.storage != nil {
		if err := s.storage.Save(token); err != nil {
			utils.Zlog.Error("failed to persist token", zap.Error(err))
		}
	}
}

// Logout clears both fields and removes the persisted token.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = nil
	s.token = ""

	if s.storage != nil {
		if err := s.storage.Clear(); err != nil {
			utils.Zlog.Error("failed to clear persisted token", zap.Error(err))
		}
	}
}

// Token returns the current bearer token, empty when logged out. It
// satisfies the API client's TokenSource.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *Store) User() *types.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

func (s *Store) Authenticated() bool {
	return s.Token() != ""
}
