package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	interrors "github.com/R-Theory/core-engine-client/internal/errors"
	"github.com/R-Theory/core-engine-client/storage"
	"github.com/R-Theory/core-engine-client/users"
)

// StorageKey is the durable entry the session round-trips through.
const StorageKey = "auth-storage"

// Manager is the single source of truth for the current authentication
// session. Mutations are atomic single-step assignments; readers always see
// either the previous or the next full session, never a partial update.
// Every mutation is written through to the durable store before returning.
type Manager struct {
	mu          sync.RWMutex
	store       storage.Store
	key         string
	state       Session
	subscribers []func(Session)
}

// Option defines a function type to modify the Manager instance.
type Option func(*Manager)

// WithStorageKey overrides the durable entry key (primarily for testing).
func WithStorageKey(key string) Option {
	return func(m *Manager) {
		m.key = key
	}
}

// New creates a Manager and rehydrates the last persisted session before
// returning, so callers see the restored state without any network round
// trip. A missing or unreadable entry starts the session empty.
func New(ctx context.Context, store storage.Store, options ...Option) (*Manager, error) {
	if store == nil {
		return nil, fmt.Errorf("[session.New] store is required")
	}

	m := &Manager{store: store, key: StorageKey}
	for _, opt := range options {
		opt(m)
	}

	data, err := store.Get(ctx, m.key)
	switch {
	case interrors.Is(err, interrors.ErrKeyNotFound):
		return m, nil
	case err != nil:
		return nil, interrors.Wrapf(err, "[session.New] rehydrate")
	}

	var restored Session
	if err := json.Unmarshal(data, &restored); err != nil {
		// A corrupt entry must not brick startup; start unauthenticated
		log.Warn().Err(err).Msg("Discarding unreadable persisted session")
		return m, nil
	}
	if restored.IsAuthenticated && (restored.User == nil || restored.AccessToken == "") {
		// Never rehydrate into a partial state
		log.Warn().Msg("Discarding partial persisted session")
		return m, nil
	}
	m.state = restored
	return m, nil
}

// SetAuth atomically replaces the user and token pair and marks the session
// authenticated. Tokens are accepted as-is; no format validation happens
// here.
func (m *Manager) SetAuth(ctx context.Context, user users.User, accessToken, refreshToken string) error {
	m.mu.Lock()
	u := user
	m.state = Session{
		User:            &u,
		AccessToken:     accessToken,
		RefreshToken:    refreshToken,
		IsAuthenticated: true,
	}
	snapshot := m.snapshotLocked()
	err := m.persistLocked(ctx)
	m.mu.Unlock()

	// The in-memory state changed regardless of the write outcome, so
	// subscribers are told either way.
	m.notify(snapshot)
	if err != nil {
		return interrors.Wrapf(err, "[Manager.SetAuth] persist")
	}
	return nil
}

// ClearAuth wipes the session. Calling it on an already-empty session is a
// no-op.
func (m *Manager) ClearAuth(ctx context.Context) error {
	m.mu.Lock()
	if !m.state.IsAuthenticated && m.state.User == nil && m.state.AccessToken == "" && m.state.RefreshToken == "" {
		m.mu.Unlock()
		return nil
	}
	m.state = Session{}
	snapshot := m.snapshotLocked()
	err := m.store.Delete(ctx, m.key)
	m.mu.Unlock()

	m.notify(snapshot)
	if err != nil {
		return interrors.Wrapf(err, "[Manager.ClearAuth] persist")
	}
	return nil
}

// UpdateUser merges a partial identity record into the current user. When no
// user is set this is a no-op; an update never synthesizes a user record.
// Tokens and the authenticated flag are untouched either way.
func (m *Manager) UpdateUser(ctx context.Context, update users.Update) error {
	m.mu.Lock()
	if m.state.User == nil {
		m.mu.Unlock()
		return nil
	}
	merged := update.Apply(*m.state.User)
	m.state.User = &merged
	snapshot := m.snapshotLocked()
	err := m.persistLocked(ctx)
	m.mu.Unlock()

	m.notify(snapshot)
	if err != nil {
		return interrors.Wrapf(err, "[Manager.UpdateUser] persist")
	}
	return nil
}

// State returns a snapshot of the current session. Safe to call from plain
// request-construction code; the snapshot never changes under the caller.
func (m *Manager) State() Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshotLocked()
}

// Subscribe registers fn to run after every mutation with the new snapshot.
// Subscribers are called synchronously, outside the manager's lock.
func (m *Manager) Subscribe(fn func(Session)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subscribers = append(m.subscribers, fn)
}

func (m *Manager) snapshotLocked() Session {
	s := m.state
	if s.User != nil {
		u := *s.User
		s.User = &u
	}
	return s
}

func (m *Manager) persistLocked(ctx context.Context) error {
	data, err := json.Marshal(m.state)
	if err != nil {
		return err
	}
	return m.store.Set(ctx, m.key, data)
}

func (m *Manager) notify(snapshot Session) {
	m.mu.RLock()
	subs := make([]func(Session), len(m.subscribers))
	copy(subs, m.subscribers)
	m.mu.RUnlock()
	for _, fn := range subs {
		fn(snapshot)
	}
}
