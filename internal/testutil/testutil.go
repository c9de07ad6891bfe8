// Package testutil provides test environment setup and utilities for internal package tests.
package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"git.sr.ht/~jakintosh/sigil/internal/api"
	"git.sr.ht/~jakintosh/sigil/internal/database"
	"git.sr.ht/~jakintosh/sigil/internal/identity"
	"git.sr.ht/~jakintosh/sigil/internal/security"
	"git.sr.ht/~jakintosh/sigil/internal/session"
	"git.sr.ht/~jakintosh/sigil/internal/tokens"
)

// TestEnv provides all dependencies needed for testing
type TestEnv struct {
	Store   *database.SQLiteStore
	Service *session.Manager
	Tokens  *tokens.Manager
	Router  http.Handler
}

// SetupTestEnv creates an isolated test environment with in-memory SQLite.
// bcrypt runs at MinCost so password-heavy tests stay fast.
func SetupTestEnv(
	t *testing.T,
) *TestEnv {
	t.Helper()

	store, err := database.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})

	tokenManager, err := tokens.NewManager(tokens.Config{
		Secret:     []byte("test-signing-secret"),
		Issuer:     "test.sigil.local",
		AccessTTL:  15 * time.Minute,
		RefreshTTL: 7 * 24 * time.Hour,
	})
	if err != nil {
		t.Fatalf("failed to create token manager: %v", err)
	}

	hasher := security.NewHasher(bcrypt.MinCost)
	svc := session.New(store, hasher, tokenManager)

	return &TestEnv{
		Store:   store,
		Service: svc,
		Tokens:  tokenManager,
	}
}

// SetupTestEnvWithRouter creates TestEnv and configures the API router
func SetupTestEnvWithRouter(
	t *testing.T,
) *TestEnv {
	t.Helper()
	env := SetupTestEnv(t)
	a := api.New(env.Service, env.Tokens, zap.NewNop())
	env.Router = a.Router()
	return env
}

// RegisterTestIdentity creates a test identity through the full
// registration path and returns its public view and token pair.
func (env *TestEnv) RegisterTestIdentity(
	t *testing.T,
	email string,
	name string,
	password string,
) (identity.Public, session.TokenPair) {
	t.Helper()
	pub, pair, err := env.Service.Register(context.Background(), email, name, password)
	if err != nil {
		t.Fatalf("failed to register test identity: %v", err)
	}
	return pub, pair
}
