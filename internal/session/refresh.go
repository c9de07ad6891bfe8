package session

import (
	"context"

	"git.sr.ht/~jakintosh/sigil/internal/identity"
)

// Refresh exchanges the currently active refresh token for a brand-new
// token pair. The caller has already verified the token's signature and
// expiry and extracted the subject id from it; this method confirms the
// token is still the stored one, then rotates: the presented token stops
// being valid the moment the new hash lands, regardless of its remaining
// cryptographic lifetime. On any failure no state changes.
func (m *Manager) Refresh(
	ctx context.Context,
	identityID string,
	presented string,
) (
	identity.Public,
	TokenPair,
	error,
) {
	pub, err := m.matchRefreshToken(ctx, identityID, presented)
	if err != nil {
		return identity.Public{}, TokenPair{}, err
	}

	pair, err := m.issueSession(ctx, pub)
	if err != nil {
		return identity.Public{}, TokenPair{}, err
	}

	return pub, pair, nil
}
