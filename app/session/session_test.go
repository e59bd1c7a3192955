package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snapclock.com/snapclock/app/store"
)

func TestRestoreToken(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		setup     func(*store.MemStore)
		wantToken string
	}{
		{
			name: "persisted token restored",
			setup: func(s *store.MemStore) {
				_ = s.Set(ctx, store.KeyToken, "abc")
			},
			wantToken: "abc",
		},
		{
			name:      "no persisted token",
			setup:     func(s *store.MemStore) {},
			wantToken: "",
		},
		{
			name: "read failure masked as no token",
			setup: func(s *store.MemStore) {
				s.FailReads = errors.New("disk gone")
			},
			wantToken: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := store.NewMemStore()
			tt.setup(s)

			m := NewManager(s)
			assert.True(t, m.State().Loading)

			state := m.RestoreToken(ctx)
			assert.False(t, state.Loading)
			assert.Equal(t, tt.wantToken, state.Token)
		})
	}
}

func TestRestoreTokenIdempotent(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemStore()
	require.NoError(t, s.Set(ctx, store.KeyToken, "abc"))

	m := NewManager(s)
	first := m.RestoreToken(ctx)
	second := m.RestoreToken(ctx)
	assert.Equal(t, first, second)
}

func TestSignInSignOutRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemStore()
	m := NewManager(s)
	m.RestoreToken(ctx)

	require.NoError(t, m.SignIn(ctx, "t1"))
	assert.Equal(t, "t1", m.State().Token)
	assert.False(t, m.State().SignedOut)

	persisted, ok, _ := s.Get(ctx, store.KeyToken)
	assert.True(t, ok)
	assert.Equal(t, "t1", persisted)

	require.NoError(t, m.SignOut(ctx))
	assert.Equal(t, "", m.State().Token)
	assert.True(t, m.State().SignedOut)

	_, ok, _ = s.Get(ctx, store.KeyToken)
	assert.False(t, ok)

	require.NoError(t, m.SignIn(ctx, "t2"))
	assert.Equal(t, "t2", m.State().Token)
	assert.False(t, m.State().SignedOut)
}

func TestSignInWriteFailureLeavesStateUntouched(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemStore()
	m := NewManager(s)
	m.RestoreToken(ctx)

	s.FailWrites = errors.New("disk full")

	err := m.SignIn(ctx, "t1")
	require.Error(t, err)
	assert.Equal(t, "", m.State().Token)
}

func TestSignOutWriteFailureLeavesStateUntouched(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemStore()
	m := NewManager(s)
	m.RestoreToken(ctx)
	require.NoError(t, m.SignIn(ctx, "t1"))

	s.FailWrites = errors.New("disk full")

	err := m.SignOut(ctx)
	require.Error(t, err)
	assert.Equal(t, "t1", m.State().Token)
	assert.False(t, m.State().SignedOut)
}

func TestReduceInvalidActionPanics(t *testing.T) {
	assert.Panics(t, func() {
		reduce(State{}, action{kind: actionType(99)})
	})
}
