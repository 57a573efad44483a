package session_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/R-Theory/core-engine-client/session"
	"github.com/R-Theory/core-engine-client/storage/memory"
	"github.com/R-Theory/core-engine-client/users"
)

func testUser() users.User {
	return users.User{
		ID:        "1",
		Email:     "a@b.com",
		Username:  "ab",
		FirstName: "A",
		LastName:  "B",
		IsActive:  true,
	}
}

func setupManager(t *testing.T) (*session.Manager, *memory.Client) {
	t.Helper()
	store := memory.New()
	m, err := session.New(context.Background(), store)
	require.NoError(t, err)
	return m, store
}

func TestNewManagerStartsEmpty(t *testing.T) {
	m, _ := setupManager(t)

	state := m.State()
	require.False(t, state.IsAuthenticated)
	require.Nil(t, state.User)
	require.Empty(t, state.AccessToken)
	require.Empty(t, state.RefreshToken)
}

func TestSetAuthPopulatesFullSession(t *testing.T) {
	m, _ := setupManager(t)
	ctx := context.Background()

	require.NoError(t, m.SetAuth(ctx, testUser(), "tok1", "ref1"))

	state := m.State()
	require.True(t, state.IsAuthenticated)
	require.NotNil(t, state.User)
	require.Equal(t, "a@b.com", state.User.Email)
	require.Equal(t, "tok1", state.AccessToken)
	require.Equal(t, "ref1", state.RefreshToken)
}

func TestSetAuthThenClearAuthLeavesNothing(t *testing.T) {
	m, _ := setupManager(t)
	ctx := context.Background()

	require.NoError(t, m.SetAuth(ctx, testUser(), "tok1", "ref1"))
	require.NoError(t, m.ClearAuth(ctx))

	state := m.State()
	require.False(t, state.IsAuthenticated)
	require.Nil(t, state.User)
	require.Empty(t, state.AccessToken)
	require.Empty(t, state.RefreshToken)
}

func TestClearAuthIsIdempotent(t *testing.T) {
	m, _ := setupManager(t)
	ctx := context.Background()

	require.NoError(t, m.ClearAuth(ctx))
	require.NoError(t, m.ClearAuth(ctx))
	require.False(t, m.State().IsAuthenticated)
}

func TestUpdateUserWithoutUserIsNoOp(t *testing.T) {
	m, _ := setupManager(t)
	ctx := context.Background()

	require.NoError(t, m.UpdateUser(ctx, users.Update{FirstName: users.String("Z")}))

	state := m.State()
	require.Nil(t, state.User, "a partial update must never synthesize a user")
	require.False(t, state.IsAuthenticated)
}

func TestUpdateUserMergesOnlySpecifiedFields(t *testing.T) {
	m, _ := setupManager(t)
	ctx := context.Background()

	require.NoError(t, m.SetAuth(ctx, testUser(), "tok1", "ref1"))
	require.NoError(t, m.UpdateUser(ctx, users.Update{
		FirstName: users.String("Z"),
		IsActive:  users.Bool(false),
	}))

	state := m.State()
	require.NotNil(t, state.User)
	require.Equal(t, "1", state.User.ID)
	require.Equal(t, "a@b.com", state.User.Email)
	require.Equal(t, "ab", state.User.Username)
	require.Equal(t, "Z", state.User.FirstName)
	require.Equal(t, "B", state.User.LastName)
	require.False(t, state.User.IsActive)

	// Tokens untouched
	require.Equal(t, "tok1", state.AccessToken)
	require.Equal(t, "ref1", state.RefreshToken)
	require.True(t, state.IsAuthenticated)
}

func TestStateReturnsSnapshot(t *testing.T) {
	m, _ := setupManager(t)
	ctx := context.Background()

	require.NoError(t, m.SetAuth(ctx, testUser(), "tok1", "ref1"))
	snapshot := m.State()

	require.NoError(t, m.UpdateUser(ctx, users.Update{FirstName: users.String("Z")}))
	require.Equal(t, "A", snapshot.User.FirstName, "earlier snapshot must not change under the caller")
}

func TestRehydrateRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := memory.New()

	m1, err := session.New(ctx, store)
	require.NoError(t, err)
	require.NoError(t, m1.SetAuth(ctx, testUser(), "tok1", "ref1"))

	// A fresh manager over the same store sees the persisted session
	m2, err := session.New(ctx, store)
	require.NoError(t, err)

	state := m2.State()
	require.True(t, state.IsAuthenticated)
	require.NotNil(t, state.User)
	require.Equal(t, "ab", state.User.Username)
	require.Equal(t, "tok1", state.AccessToken)
	require.Equal(t, "ref1", state.RefreshToken)
}

func TestRehydrateAfterClearStartsEmpty(t *testing.T) {
	ctx := context.Background()
	store := memory.New()

	m1, err := session.New(ctx, store)
	require.NoError(t, err)
	require.NoError(t, m1.SetAuth(ctx, testUser(), "tok1", "ref1"))
	require.NoError(t, m1.ClearAuth(ctx))

	m2, err := session.New(ctx, store)
	require.NoError(t, err)
	require.False(t, m2.State().IsAuthenticated)
}

func TestRehydrateDiscardsCorruptEntry(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	require.NoError(t, store.Set(ctx, session.StorageKey, []byte("not json")))

	m, err := session.New(ctx, store)
	require.NoError(t, err)
	require.False(t, m.State().IsAuthenticated)
}

func TestRehydrateDiscardsPartialEntry(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	// Authenticated flag without a user must not survive a restart
	require.NoError(t, store.Set(ctx, session.StorageKey, []byte(`{"is_authenticated":true,"access_token":"tok1"}`)))

	m, err := session.New(ctx, store)
	require.NoError(t, err)

	state := m.State()
	require.False(t, state.IsAuthenticated)
	require.Nil(t, state.User)
}

func TestSubscribeNotifiedOnEveryMutation(t *testing.T) {
	m, _ := setupManager(t)
	ctx := context.Background()

	var states []session.Session
	m.Subscribe(func(s session.Session) {
		states = append(states, s)
	})

	require.NoError(t, m.SetAuth(ctx, testUser(), "tok1", "ref1"))
	require.NoError(t, m.UpdateUser(ctx, users.Update{LastName: users.String("C")}))
	require.NoError(t, m.ClearAuth(ctx))
	require.NoError(t, m.ClearAuth(ctx)) // no-op, no notification

	require.Len(t, states, 3)
	require.True(t, states[0].IsAuthenticated)
	require.Equal(t, "C", states[1].User.LastName)
	require.False(t, states[2].IsAuthenticated)
}

// faultyStore wraps the in-memory store and fails writes on demand.
type faultyStore struct {
	*memory.Client
	failWrites bool
}

func (f *faultyStore) Set(ctx context.Context, key string, value []byte) error {
	if f.failWrites {
		return errors.New("store unavailable")
	}
	return f.Client.Set(ctx, key, value)
}

func (f *faultyStore) Delete(ctx context.Context, key string) error {
	if f.failWrites {
		return errors.New("store unavailable")
	}
	return f.Client.Delete(ctx, key)
}

func TestSubscribeNotifiedWhenPersistFails(t *testing.T) {
	ctx := context.Background()
	store := &faultyStore{Client: memory.New()}
	m, err := session.New(ctx, store)
	require.NoError(t, err)

	require.NoError(t, m.SetAuth(ctx, testUser(), "tok1", "ref1"))

	var states []session.Session
	m.Subscribe(func(s session.Session) {
		states = append(states, s)
	})

	// The in-memory session clears even when the delete fails; subscribers
	// must see the same view State() reports.
	store.failWrites = true
	require.Error(t, m.ClearAuth(ctx))

	require.False(t, m.State().IsAuthenticated)
	require.Len(t, states, 1)
	require.False(t, states[0].IsAuthenticated)

	require.Error(t, m.SetAuth(ctx, testUser(), "tok2", "ref2"))
	require.Len(t, states, 2)
	require.Equal(t, "tok2", states[1].AccessToken)
	require.Equal(t, "tok2", m.State().AccessToken)
}

func TestTokenExpiry(t *testing.T) {
	// Unsigned JWT with exp 2177452800 (2039-01-01T00:00:00Z)
	const token = "eyJhbGciOiJub25lIiwidHlwIjoiSldUIn0.eyJzdWIiOiIxIiwiZXhwIjoyMTc3NDUyODAwfQ."

	s := session.Session{AccessToken: token}
	exp, ok := s.TokenExpiry()
	require.True(t, ok)
	require.Equal(t, int64(2177452800), exp.Unix())

	_, ok = session.Session{}.TokenExpiry()
	require.False(t, ok)

	_, ok = session.Session{AccessToken: "opaque-token"}.TokenExpiry()
	require.False(t, ok)
}
