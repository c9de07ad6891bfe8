package database_test

import (
	"context"
	"errors"
	"testing"

	"git.sr.ht/~jakintosh/sigil/internal/database"
	"git.sr.ht/~jakintosh/sigil/internal/identity"
)

func setupStore(t *testing.T) *database.SQLiteStore {
	t.Helper()
	store, err := database.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func testIdentity(email string) *identity.Identity {
	return &identity.Identity{
		ID:           identity.NewID(),
		Email:        email,
		Name:         "Test User",
		PasswordHash: "$2a$04$fakehashfakehashfakehash",
	}
}

func TestInsertAndFind(t *testing.T) {
	t.Parallel()
	store := setupStore(t)
	ctx := context.Background()

	ident := testIdentity("alice@example.com")
	if err := store.Insert(ctx, ident); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	byEmail, err := store.FindByEmail(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("find by email failed: %v", err)
	}
	if byEmail.ID != ident.ID || byEmail.PasswordHash != ident.PasswordHash {
		t.Errorf("found %+v, want %+v", byEmail, ident)
	}
	if byEmail.RefreshHash != nil {
		t.Error("new identity should have no refresh hash")
	}

	byID, err := store.FindByID(ctx, ident.ID)
	if err != nil {
		t.Fatalf("find by id failed: %v", err)
	}
	if byID.Email != ident.Email {
		t.Errorf("found email %q, want %q", byID.Email, ident.Email)
	}
}

func TestFindMissing(t *testing.T) {
	t.Parallel()
	store := setupStore(t)
	ctx := context.Background()

	if _, err := store.FindByEmail(ctx, "nobody@example.com"); !errors.Is(err, database.ErrNotFound) {
		t.Errorf("FindByEmail = %v, want ErrNotFound", err)
	}
	if _, err := store.FindByID(ctx, identity.NewID()); !errors.Is(err, database.ErrNotFound) {
		t.Errorf("FindByID = %v, want ErrNotFound", err)
	}
}

func TestInsertDuplicateEmail(t *testing.T) {
	t.Parallel()
	store := setupStore(t)
	ctx := context.Background()

	if err := store.Insert(ctx, testIdentity("alice@example.com")); err != nil {
		t.Fatalf("first insert failed: %v", err)
	}
	err := store.Insert(ctx, testIdentity("alice@example.com"))
	if !errors.Is(err, database.ErrDuplicateEmail) {
		t.Errorf("duplicate insert = %v, want ErrDuplicateEmail", err)
	}
}

func TestList(t *testing.T) {
	t.Parallel()
	store := setupStore(t)
	ctx := context.Background()

	for _, email := range []string{"carol@example.com", "alice@example.com", "bob@example.com"} {
		if err := store.Insert(ctx, testIdentity(email)); err != nil {
			t.Fatalf("insert failed: %v", err)
		}
	}

	idents, err := store.List(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(idents) != 3 {
		t.Fatalf("got %d identities, want 3", len(idents))
	}
	// ordered by email
	want := []string{"alice@example.com", "bob@example.com", "carol@example.com"}
	for i, ident := range idents {
		if ident.Email != want[i] {
			t.Errorf("idents[%d].Email = %q, want %q", i, ident.Email, want[i])
		}
	}
}

func TestSetRefreshHash(t *testing.T) {
	t.Parallel()
	store := setupStore(t)
	ctx := context.Background()

	ident := testIdentity("alice@example.com")
	if err := store.Insert(ctx, ident); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	hash := "deadbeef"
	if err := store.SetRefreshHash(ctx, ident.ID, &hash); err != nil {
		t.Fatalf("set refresh hash failed: %v", err)
	}
	found, err := store.FindByID(ctx, ident.ID)
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if found.RefreshHash == nil || *found.RefreshHash != hash {
		t.Errorf("RefreshHash = %v, want %q", found.RefreshHash, hash)
	}

	// nil clears the hash
	if err := store.SetRefreshHash(ctx, ident.ID, nil); err != nil {
		t.Fatalf("clear refresh hash failed: %v", err)
	}
	found, err = store.FindByID(ctx, ident.ID)
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if found.RefreshHash != nil {
		t.Errorf("RefreshHash = %v, want nil", found.RefreshHash)
	}
}

func TestSetRefreshHashMissingIdentity(t *testing.T) {
	t.Parallel()
	store := setupStore(t)

	hash := "deadbeef"
	err := store.SetRefreshHash(context.Background(), identity.NewID(), &hash)
	if !errors.Is(err, database.ErrNotFound) {
		t.Errorf("SetRefreshHash = %v, want ErrNotFound", err)
	}
}
