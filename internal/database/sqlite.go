package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"git.sr.ht/~jakintosh/sigil/internal/identity"
)

type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the database at dbPath and initializes
// the schema. Use ":memory:" for an isolated throwaway store.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %v", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		return nil, fmt.Errorf("couldn't enable foreign keys: %v", err)
	}

	if err := initSchema(db); err != nil {
		return nil, fmt.Errorf("failed to init database: %v", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func initSchema(db *sql.DB) error {
	return initTable(db, "identity", `
		CREATE TABLE IF NOT EXISTS identity (
			id            TEXT PRIMARY KEY,
			email         TEXT NOT NULL UNIQUE,
			name          TEXT NOT NULL,
			password_hash TEXT NOT NULL,
			refresh_hash  TEXT
		);`,
	)
}

func initTable(
	db *sql.DB,
	name string,
	sql string,
) error {
	if _, err := db.Exec(sql); err != nil {
		return fmt.Errorf("failed to init '%s' table schema: %v", name, err)
	}
	return nil
}

func (s *SQLiteStore) Insert(
	ctx context.Context,
	ident *identity.Identity,
) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO identity (id, email, name, password_hash, refresh_hash)
		VALUES (?1, ?2, ?3, ?4, ?5);`,
		ident.ID,
		ident.Email,
		ident.Name,
		ident.PasswordHash,
		nullable(ident.RefreshHash),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("couldn't insert into identity: %v", err)
	}
	return nil
}

func (s *SQLiteStore) FindByEmail(
	ctx context.Context,
	email string,
) (
	*identity.Identity,
	error,
) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, email, name, password_hash, refresh_hash
		FROM identity
		WHERE email=?1;`,
		email,
	)
	return scanIdentity(row)
}

func (s *SQLiteStore) FindByID(
	ctx context.Context,
	id string,
) (
	*identity.Identity,
	error,
) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, email, name, password_hash, refresh_hash
		FROM identity
		WHERE id=?1;`,
		id,
	)
	return scanIdentity(row)
}

func (s *SQLiteStore) List(
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

// SetRefreshHash overwrites the stored refresh hash for id; nil clears it.
func (s *SQLiteStore) SetRefreshHash(
	ctx context.Context,
	id string,
	hash *string,
) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE identity
		SET refresh_hash=?1
		WHERE id=?2;`,
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
