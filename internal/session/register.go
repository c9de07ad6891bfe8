package session

import (
	"context"
	"errors"
	"fmt"

	"git.sr.ht/~jakintosh/sigil/internal/database"
	"git.sr.ht/~jakintosh/sigil/internal/identity"
)

// Register creates a new identity and immediately performs login-equivalent
// issuance, so a successful registration returns a live session.
func (m *Manager) Register(
	ctx context.Context,
	email string,
	name string,
	password string,
) (
	identity.Public,
	TokenPair,
	error,
) {
	email = identity.NormalizeEmail(email)
	if err := identity.ValidateRegistration(email, name, password); err != nil {
		return identity.Public{}, TokenPair{}, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}

	passwordHash, err := m.hasher.Hash(password)
	if err != nil {
		return identity.Public{}, TokenPair{}, fmt.Errorf("%w: failed to hash password: %v", ErrInternal, err)
	}

	ident := &identity.Identity{
		ID:           identity.NewID(),
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
	}
	if err := m.store.Insert(ctx, ident); err != nil {
		if errors.Is(err, database.ErrDuplicateEmail) {
			return identity.Public{}, TokenPair{}, ErrEmailExists
		}
		return identity.Public{}, TokenPair{}, fmt.Errorf("%w: failed to insert identity: %v", ErrInternal, err)
	}

	pub := ident.Public()
	pair, err := m.issueSession(ctx, pub)
	if err != nil {
		return identity.Public{}, TokenPair{}, err
	}

	return pub, pair, nil
}
