package session

import (
	"context"
	"fmt"
	"log"
	"sync"

	"snapclock.com/snapclock/app/store"
)

// State mirrors the three flags the rest of the app routes on.
// Token == "" means unauthenticated.
type State struct {
	Loading   bool
	SignedOut bool
	Token     string
}

type actionType int

const (
	actionRestoreToken actionType = iota
	actionSignIn
	actionSignOut
)

type action struct {
	kind  actionType
	token string
}

// reduce is the single transition function over the session state.
// No public operation can reach the default branch.
func reduce(state State, a action) State {
	switch a.kind {
	case actionRestoreToken:
		state.Token = a.token
		state.Loading = false
		return state
	case actionSignIn:
		state.SignedOut = false
		state.Token = a.token
		return state
	case actionSignOut:
		state.SignedOut = true
		state.Token = ""
		return state
	default:
		panic(fmt.Sprintf("session: invalid action type %d", a.kind))
	}
}

// Manager owns the session state. It is the only mutator; everything
// else reads through State().
type Manager struct {
	mu    sync.Mutex
	state State
	store store.Store
}

func NewManager(s store.Store) *Manager {
	return &Manager{
		state: State{Loading: true},
		store: s,
	}
}

func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Token returns the current bearer token, empty when unauthenticated.
func (m *Manager) Token() string {
	return m.State().Token
}

// RestoreToken reads the persisted token once at startup. A store read
// failure is treated as "no token": logged, never surfaced. Idempotent.
func (m *Manager) RestoreToken(ctx context.Context) State {
	token, ok, err := m.store.Get(ctx, store.KeyToken)
	if err != nil {
		log.Printf("session: error restoring token: %v", err)
		token, ok = "", false
	}
	if !ok {
		token = ""
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = reduce(m.state, action{kind: actionRestoreToken, token: token})
	return m.state
}

// SignIn persists the token, then transitions to signed-in. When the
// store write fails the state is left untouched and the error returned,
// so the in-memory session can never diverge from what is on disk.
func (m *Manager) SignIn(ctx context.Context, token string) error {
	if err := m.store.Set(ctx, store.KeyToken, token); err != nil {
		return fmt.Errorf("failed to persist token: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = reduce(m.state, action{kind: actionSignIn, token: token})
	return nil
}

// SignOut removes the persisted token, then transitions to signed-out.
// Same write-failure contract as SignIn.
func (m *Manager) SignOut(ctx context.Context) error {
	if err := m.store.Remove(ctx, store.KeyToken); err != nil {
		return fmt.Errorf("failed to remove token: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = reduce(m.state, action{kind: actionSignOut})
	return nil
}
