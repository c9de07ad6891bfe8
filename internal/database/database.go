// Package database provides identity persistence. The SQLite store is the
// default backend; a Postgres store offers the same contract for
// deployments that already run one. The stored row is the single identity
// record: credentials and the current refresh token hash live together, so
// the database is the sole arbiter of which refresh token is active.
package database

import (
	"database/sql"
	"errors"

	"git.sr.ht/~jakintosh/sigil/internal/identity"
)

var (
	// ErrNotFound is returned when no identity matches the lookup.
	ErrNotFound = errors.New("identity not found")
	// ErrDuplicateEmail is returned when an insert collides with an
	// existing email.
	ErrDuplicateEmail = errors.New("email already exists")
)

// scanIdentity reads one identity row in column order
// (id, email, name, password_hash, refresh_hash).
func scanIdentity(row interface{ Scan(...any) error }) (*identity.Identity, error) {
	var ident identity.Identity
	var refreshHash sql.NullString
	err := row.Scan(
		&ident.ID,
		&ident.Email,
		&ident.Name,
		&ident.PasswordHash,
		&refreshHash,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if refreshHash.Valid {
		ident.RefreshHash = &refreshHash.String
	}
	return &ident, nil
}

func nullable(hash *string) sql.NullString {
	if hash == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *hash, Valid: true}
}

func resultsEmpty(result sql.Result) bool {
	count, err := result.RowsAffected()
	if err != nil {
		return false
	}
	return count == 0
}
