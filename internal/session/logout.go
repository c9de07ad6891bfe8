package session

import "context"

// Logout clears the stored refresh hash unconditionally, ending the active
// session. Logging out an identity that is already logged out is a no-op.
func (m *Manager) Logout(
	ctx context.Context,
	identityID string,
) error {
	return m.setRefreshToken(ctx, identityID, "")
}
