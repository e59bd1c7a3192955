package profile

import (
	"context"
	"errors"
	"fmt"
	"log"

	"snapclock.com/snapclock/app/session"
	"snapclock.com/snapclock/app/store"
	"snapclock.com/snapclock/app/user"
	v1 "snapclock.com/snapclock/client/v1"
)

// ErrSessionExpired means both the profile fetch and the refresh-token
// fallback failed; the user has been signed out and must log in again.
var ErrSessionExpired = errors.New("session expired")

// Loader fetches the profile after sign-in. On an auth failure it makes
// exactly one refresh-token attempt before forcing a sign-out.
type Loader struct {
	Client  *v1.SnapclockClient
	Session *session.Manager
	Store   store.Store
	Holder  *user.Holder
}

func (l *Loader) fetch(ctx context.Context) (*user.UserData, error) {
	data, err := l.Client.User.MyInfo(ctx)
	if err != nil {
		return nil, err
	}
	return data, nil
}

// refresh rotates the token pair using the stored refresh token and
// updates both the session and the client transport.
func (l *Loader) refresh(ctx context.Context) error {
	refreshToken, ok, err := l.Store.Get(ctx, store.KeyRefreshToken)
	if err != nil {
		return fmt.Errorf("failed to read refresh token: %w", err)
	}
	if !ok {
		return errors.New("refresh token not found")
	}

	pair, err := l.Client.Auth.RefreshToken(ctx, refreshToken)
	if err != nil {
		return err
	}

	if err := l.Session.SignIn(ctx, pair.Token); err != nil {
		return err
	}
	l.Client.SetToken(pair.Token)

	if pair.RefreshToken != "" {
		if err := l.Store.Set(ctx, store.KeyRefreshToken, pair.RefreshToken); err != nil {
			return fmt.Errorf("failed to persist rotated refresh token: %w", err)
		}
	}
	return nil
}

// Load returns the current profile, fetching it when the holder is
// empty. A failed fetch gets one refresh retry; if that fails too, the
// session is torn down and ErrSessionExpired returned.
func (l *Loader) Load(ctx context.Context) (*user.UserData, error) {
	if data := l.Holder.Get(); data != nil {
		return data, nil
	}

	data, err := l.fetch(ctx)
	if err == nil {
		l.Holder.Set(data)
		return data, nil
	}
	log.Printf("profile: fetch failed, refreshing token: %v", err)

	if err := l.refresh(ctx); err != nil {
		log.Printf("profile: refresh failed: %v", err)
		l.signOut(ctx)
		return nil, ErrSessionExpired
	}

	data, err = l.fetch(ctx)
	if err != nil {
		log.Printf("profile: fetch after refresh failed: %v", err)
		l.signOut(ctx)
		return nil, ErrSessionExpired
	}

	l.Holder.Set(data)
	return data, nil
}

// Reload drops the cached profile and fetches a fresh one. Used after a
// successful submission so the flipped status is visible.
func (l *Loader) Reload(ctx context.Context) (*user.UserData, error) {
	l.Holder.Clear()
	return l.Load(ctx)
}

func (l *Loader) signOut(ctx context.Context) {
	if err := l.Session.SignOut(ctx); err != nil {
		log.Printf("profile: sign-out failed: %v", err)
	}
	if err := l.Store.Remove(ctx, store.KeyRefreshToken); err != nil {
		log.Printf("profile: failed to remove refresh token: %v", err)
	}
	l.Holder.Clear()
	l.Client.SetToken("")
}
