package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"

	"git.sr.ht/~jakintosh/sigil/internal/identity"
)

// uniqueViolation is the Postgres error code for a unique constraint hit.
const uniqueViolation = "23505"

type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore connects to the database at dsn and initializes the
// schema. Caller must Close when done.
func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %v", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %v", err)
	}

	if _, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS identity (
			id            TEXT PRIMARY KEY,
			email         TEXT NOT NULL UNIQUE,
			name          TEXT NOT NULL,
			password_hash TEXT NOT NULL,
			refresh_hash  TEXT
		);`,
	); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to init 'identity' table schema: %v", err)
	}

	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func (s *PostgresStore) Insert(
	ctx context.Context,
	ident *identity.Identity,
) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO identity (id, email, name, password_hash, refresh_hash)
		VALUES ($1, $2, $3, $4, $5);`,
		ident.ID,
		ident.Email,
		ident.Name,
		ident.PasswordHash,
		nullable(ident.RefreshHash),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("couldn't insert into identity: %v", err)
	}
	return nil
}

func (s *PostgresStore) FindByEmail(
	ctx context.Context,
	email string,
) (
	*identity.Identity,
	error,
) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, email, name, password_hash, refresh_hash
		FROM identity
		WHERE email=$1;`,
		email,
	)
	return scanIdentity(row)
}

func (s *PostgresStore) FindByID(
	ctx context.Context,
	id string,
) (
	*identity.Identity,
	error,
) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, email, name, password_hash, refresh_hash
		FROM identity
		WHERE id=$1;`,
		id,
	)
	return scanIdentity(row)
}

func (s *PostgresStore) List(
	ctx context.Context,
) (
	[]*identity.Identity,
	error,
) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, email, name, password_hash, refresh_hash
		FROM identity
		ORDER BY email;`,
	)
	if err != nil {
		return nil, fmt.Errorf("couldn't query identity: %v", err)
	}
	defer rows.Close()

	var idents []*identity.Identity
	for rows.Next() {
		ident, err := scanIdentity(rows)
		if err != nil {
			return nil, err
		}
		idents = append(idents, ident)
	}
	return idents, rows.Err()
}

func (s *PostgresStore) SetRefreshHash(
	ctx context.Context,
	id string,
	hash *string,
) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE identity
		SET refresh_hash=$1
		WHERE id=$2;`,
		nullable(hash),
		id,
	)
	if err != nil {
		return fmt.Errorf("couldn't update refresh hash: %v", err)
	}
	if resultsEmpty(result) {
		return ErrNotFound
	}
	return nil
}
