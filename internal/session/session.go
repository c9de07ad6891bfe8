// Package session implements the token lifecycle core: registration, login,
// refresh rotation, and logout. It orchestrates the credential hasher, the
// token manager, and the identity store, and owns the invariant that each
// identity has at most one valid refresh token at a time.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"git.sr.ht/~jakintosh/sigil/internal/database"
	"git.sr.ht/~jakintosh/sigil/internal/identity"
	"git.sr.ht/~jakintosh/sigil/internal/security"
	"git.sr.ht/~jakintosh/sigil/internal/tokens"
)

// TokenPair is one access/refresh issuance. The boundary layer owns
// transporting the two opaque strings; the core only fixes their lifetimes.
type TokenPair struct {
	Access           string
	AccessExpiresAt  time.Time
	Refresh          string
	RefreshExpiresAt time.Time
}

// Manager coordinates the session operations. All dependencies are injected
// at construction; a Manager holds no mutable state of its own, so it is
// safe for concurrent use. Two concurrent Refresh calls for the same
// identity can race read-compare-write on the stored hash; the store's last
// write wins and the loser's token pair is silently invalidated.
type Manager struct {
	store  IdentityStore
	hasher *security.Hasher
	tokens *tokens.Manager
}

func New(
	store IdentityStore,
	hasher *security.Hasher,
	tokenManager *tokens.Manager,
) *Manager {
	return &Manager{
		store:  store,
		hasher: hasher,
		tokens: tokenManager,
	}
}

// Identity returns the public identity for id. Used by the boundary layer
// to resolve an authenticated subject.
func (m *Manager) Identity(ctx context.Context, id string) (identity.Public, error) {
	if !identity.ValidID(id) {
		return identity.Public{}, fmt.Errorf("%w: malformed identity id", ErrInvalidArgument)
	}
	ident, err := m.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return identity.Public{}, ErrIdentityNotFound
		}
		return identity.Public{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return ident.Public(), nil
}

// Identities lists all registered identities, secret fields stripped.
func (m *Manager) Identities(ctx context.Context) ([]identity.Public, error) {
	idents, err := m.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	public := make([]identity.Public, len(idents))
	for i, ident := range idents {
		public[i] = ident.Public()
	}
	return public, nil
}

// issueSession mints a fresh access/refresh pair and stores the new refresh
// hash, rotating out whatever token was active before.
func (m *Manager) issueSession(
	ctx context.Context,
	pub identity.Public,
) (
	TokenPair,
	error,
) {
	access, accessExp, err := m.tokens.IssueAccess(pub)
	if err != nil {
		return TokenPair{}, fmt.Errorf("%w: couldn't issue access token: %v", ErrInternal, err)
	}

	refresh, refreshExp, err := m.tokens.IssueRefresh(pub)
	if err != nil {
		return TokenPair{}, fmt.Errorf("%w: couldn't issue refresh token: %v", ErrInternal, err)
	}

	if err := m.setRefreshToken(ctx, pub.ID, refresh); err != nil {
		return TokenPair{}, err
	}

	return TokenPair{
		Access:           access,
		AccessExpiresAt:  accessExp,
		Refresh:          refresh,
		RefreshExpiresAt: refreshExp,
	}, nil
}

// setRefreshToken persists the one-way hash of token for id; an empty token
// clears the stored hash.
func (m *Manager) setRefreshToken(
	ctx context.Context,
	id string,
	token string,
) error {
	if !identity.ValidID(id) {
		return fmt.Errorf("%w: malformed identity id", ErrInvalidArgument)
	}

	var hash *string
	if token != "" {
		h := security.HashRefreshToken(token)
		hash = &h
	}

	err := m.store.SetRefreshHash(ctx, id, hash)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return ErrIdentityNotFound
		}
		return fmt.Errorf("%w: couldn't store refresh hash: %v", ErrInternal, err)
	}
	return nil
}

// matchRefreshToken confirms that presented is the currently active refresh
// token for id. Every failure mode collapses to ErrInvalidRefreshToken so
// the caller can't distinguish which check failed.
func (m *Manager) matchRefreshToken(
	ctx context.Context,
	id string,
	presented string,
) (
	identity.Public,
	error,
) {
	if !identity.ValidID(id) {
		return identity.Public{}, ErrInvalidRefreshToken
	}

	ident, err := m.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return identity.Public{}, ErrInvalidRefreshToken
		}
		return identity.Public{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	// a cleared hash means no refresh token is valid, even a well-formed
	// unexpired one
	if ident.RefreshHash == nil {
		return identity.Public{}, ErrInvalidRefreshToken
	}

	if !security.RefreshTokenHashEqual(presented, *ident.RefreshHash) {
		return identity.Public{}, ErrInvalidRefreshToken
	}

	return ident.Public(), nil
}
