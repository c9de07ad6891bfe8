package session

import (
	"context"
	"errors"
	"fmt"

	"git.sr.ht/~jakintosh/sigil/internal/database"
	"git.sr.ht/~jakintosh/sigil/internal/identity"
)

// Login authenticates email/password and issues a fresh token pair. An
// unknown email and a wrong password fail identically, so callers can't
// probe which emails are registered.
func (m *Manager) Login(
	ctx context.Context,
	email string,
	password string,
) (
	identity.Public,
	TokenPair,
	error,
) {
	email = identity.NormalizeEmail(email)

	ident, err := m.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return identity.Public{}, TokenPair{}, ErrInvalidCredentials
		}
		return identity.Public{}, TokenPair{}, fmt.Errorf("%w: failed to retrieve identity: %v", ErrInternal, err)
	}

	if err := m.hasher.Compare(ident.PasswordHash, password); err != nil {
		return identity.Public{}, TokenPair{}, ErrInvalidCredentials
	}

	pub := ident.Public()
	pair, err := m.issueSession(ctx, pub)
	if err != nil {
		return identity.Public{}, TokenPair{}, err
	}

	return pub, pair, nil
}
