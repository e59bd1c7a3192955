package profile

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snapclock.com/snapclock/app/session"
	"snapclock.com/snapclock/app/store"
	"snapclock.com/snapclock/app/user"
	v1 "snapclock.com/snapclock/client/v1"
)

type fakeAuthBackend struct {
	mu          sync.Mutex
	validToken  string
	refreshOK   bool
	myInfoCalls int
}

func (b *fakeAuthBackend) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/user/my-info", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.myInfoCalls++
		valid := "Bearer "+b.validToken == r.Header.Get("Authorization")
		b.mu.Unlock()

		if !valid {
			http.Error(w, `{"message":"unauthorized"}`, http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"user":{"id":7,"name":"Ann","email":"ann@example.com","last_status":"check-in","company_name":"Acme"}}`))
	})

	mux.HandleFunc("/user/refresh-token", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		ok := b.refreshOK
		b.mu.Unlock()
		if !ok {
			http.Error(w, `{"message":"invalid refresh token"}`, http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"token":"fresh-token","refreshToken":"fresh-refresh"}`))
	})

	return mux
}

func newLoader(t *testing.T, backend *fakeAuthBackend, token string) (*Loader, *store.MemStore) {
	t.Helper()

	srv := httptest.NewServer(backend.handler())
	t.Cleanup(srv.Close)

	ctx := context.Background()
	s := store.NewMemStore()
	require.NoError(t, s.Set(ctx, store.KeyToken, token))
	require.NoError(t, s.Set(ctx, store.KeyRefreshToken, "stored-refresh"))

	sess := session.NewManager(s)
	sess.RestoreToken(ctx)

	return &Loader{
		Client:  v1.NewSnapclockClient(srv.URL, token),
		Session: sess,
		Store:   s,
		Holder:  user.NewHolder(),
	}, s
}

func TestLoadFetchesProfile(t *testing.T) {
	backend := &fakeAuthBackend{validToken: "good"}
	loader, _ := newLoader(t, backend, "good")

	data, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Ann", data.Name)
	assert.Equal(t, user.StatusCheckIn, data.LastStatus)

	// Second call hits the cached holder, not the backend.
	_, err = loader.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, backend.myInfoCalls)
}

func TestLoadRefreshesExpiredToken(t *testing.T) {
	backend := &fakeAuthBackend{validToken: "fresh-token", refreshOK: true}
	loader, s := newLoader(t, backend, "stale")

	data, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Ann", data.Name)

	// Session and stores carry the rotated pair.
	assert.Equal(t, "fresh-token", loader.Session.State().Token)
	refresh, ok, _ := s.Get(context.Background(), store.KeyRefreshToken)
	assert.True(t, ok)
	assert.Equal(t, "fresh-refresh", refresh)
}

func TestLoadSignsOutWhenRefreshFails(t *testing.T) {
	backend := &fakeAuthBackend{validToken: "good", refreshOK: false}
	loader, s := newLoader(t, backend, "stale")

	_, err := loader.Load(context.Background())
	assert.ErrorIs(t, err, ErrSessionExpired)

	state := loader.Session.State()
	assert.True(t, state.SignedOut)
	assert.Equal(t, "", state.Token)
	assert.Nil(t, loader.Holder.Get())

	_, ok, _ := s.Get(context.Background(), store.KeyRefreshToken)
	assert.False(t, ok)
}

func TestReloadDropsCache(t *testing.T) {
	backend := &fakeAuthBackend{validToken: "good"}
	loader, _ := newLoader(t, backend, "good")

	_, err := loader.Load(context.Background())
	require.NoError(t, err)

	_, err = loader.Reload(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, backend.myInfoCalls)
}
