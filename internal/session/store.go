package session

import (
	"context"

	"git.sr.ht/~jakintosh/sigil/internal/identity"
)

// IdentityStore is the persistence contract the session manager depends on.
// FindByEmail and FindByID return database.ErrNotFound-compatible errors
// for missing rows; Insert reports duplicate emails; SetRefreshHash
// overwrites the stored refresh hash (nil clears it) and is the single
// write that arbitrates which refresh token is currently active.
type IdentityStore interface {
	FindByEmail(ctx context.Context, email string) (*identity.Identity, error)
	FindByID(ctx context.Context, id string) (*identity.Identity, error)
	List(ctx context.Context) ([]*identity.Identity, error)
	Insert(ctx context.Context, ident *identity.Identity) error
	SetRefreshHash(ctx context.Context, id string, hash *string) error
}
