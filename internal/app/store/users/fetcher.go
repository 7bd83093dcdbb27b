package userstore

import (
	"context"

	"github.com/wearlab/watchclub/internal/app/system/auth"
)

// Fetcher adapts the store to the session middleware, which re-reads the
// profile on each request so an admin grant or revocation takes effect
// without a fresh sign-in.
type Fetcher struct {
	store *Store
}

func NewFetcher(store *Store) *Fetcher {
	return &Fetcher{store: store}
}

// FetchUser returns the current session view of uid, or nil when the
// profile is gone.
func (f *Fetcher) FetchUser(ctx context.Context, uid string) *auth.SessionUser {
	p, err := f.store.GetProfile(ctx, uid)
	if err != nil {
		return nil
	}
	return &auth.SessionUser{
		ID:       p.UID,
		Name:     p.DisplayName,
		Email:    p.Email,
		PhotoURL: p.PhotoURL,
		IsAdmin:  p.IsAdmin,
	}
}
