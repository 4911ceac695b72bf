package tripsync

import (
	"context"
	"fmt"

	"tripwise/internal/cache"
	"tripwise/internal/domain"
)

// CacheAuth resolves the signed-in user from the local cache. The auth
// flow writes the user object under cache.CurrentUserKey on login and
// removes it on logout; the planner only ever reads it.
type CacheAuth struct {
	store cache.Store
}

var _ AuthProvider = (*CacheAuth)(nil)

// NewCacheAuth constructs a CacheAuth over store.
func NewCacheAuth(store cache.Store) *CacheAuth {
	return &CacheAuth{store: store}
}

// CurrentUser returns the signed-in user, or (nil, nil) when no one is.
func (a *CacheAuth) CurrentUser(ctx context.Context) (*domain.User, error) {
	var user domain.User
	found, err := a.store.Get(ctx, cache.CurrentUserKey, &user)
	if err != nil {
		return nil, fmt.Errorf("tripsync.CacheAuth.CurrentUser: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &user, nil
}

// SignIn records user as the signed-in user.
func (a *CacheAuth) SignIn(ctx context.Context, user domain.User) error {
	if err := a.store.Set(ctx, cache.CurrentUserKey, user); err != nil {
		return fmt.Errorf("tripsync.CacheAuth.SignIn: %w", err)
	}
	return nil
}

// SignOut clears the signed-in user.
func (a *CacheAuth) SignOut(ctx context.Context) error {
	if err := a.store.Del(ctx, cache.CurrentUserKey); err != nil {
		return fmt.Errorf("tripsync.CacheAuth.SignOut: %w", err)
	}
	return nil
}
