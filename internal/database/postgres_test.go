package database_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"git.sr.ht/~jakintosh/sigil/internal/database"
	"git.sr.ht/~jakintosh/sigil/internal/identity"
)

// setupPostgres connects to the database named by SIGIL_POSTGRES_URL, or
// skips the test when the variable is unset.
func setupPostgres(t *testing.T) *database.PostgresStore {
	t.Helper()
	dsn := os.Getenv("SIGIL_POSTGRES_URL")
	if dsn == "" {
		t.Skip("SIGIL_POSTGRES_URL not set, skipping postgres integration test")
	}
	store, err := database.NewPostgresStore(context.Background(), dsn)
	if err != nil {
		t.Fatalf("failed to open postgres store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestPostgresRoundTrip(t *testing.T) {
	store := setupPostgres(t)
	ctx := context.Background()

	ident := testIdentity(identity.NewID() + "@example.com")
	if err := store.Insert(ctx, ident); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	t.Cleanup(func() { _ = store.SetRefreshHash(ctx, ident.ID, nil) })

	found, err := store.FindByEmail(ctx, ident.Email)
	if err != nil {
		t.Fatalf("find by email failed: %v", err)
	}
	if found.ID != ident.ID {
		t.Errorf("found id %q, want %q", found.ID, ident.ID)
	}

	if err := store.Insert(ctx, testIdentity(ident.Email)); !errors.Is(err, database.ErrDuplicateEmail) {
		t.Errorf("duplicate insert = %v, want ErrDuplicateEmail", err)
	}

	hash := "deadbeef"
	if err := store.SetRefreshHash(ctx, ident.ID, &hash); err != nil {
		t.Fatalf("set refresh hash failed: %v", err)
	}
	found, err = store.FindByID(ctx, ident.ID)
	if err != nil {
		t.Fatalf("find by id failed: %v", err)
	}
	if found.RefreshHash == nil || *found.RefreshHash != hash {
		t.Errorf("RefreshHash = %v, want %q", found.RefreshHash, hash)
	}
}
