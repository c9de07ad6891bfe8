// Command sigil-seed creates the initial admin identity if it does not
// exist yet. It is safe to run on every deploy.
package main

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"git.sr.ht/~jakintosh/sigil/internal/config"
	"git.sr.ht/~jakintosh/sigil/internal/database"
	"git.sr.ht/~jakintosh/sigil/internal/identity"
	"git.sr.ht/~jakintosh/sigil/internal/security"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Fatal("invalid configuration", zap.Error(err))
	}

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	if cfg.SeedAdminEmail == "" || cfg.SeedAdminPassword == "" {
		logger.Info("no seed admin configured, nothing to do")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := seed(ctx, cfg, logger); err != nil {
		logger.Fatal("seed failed", zap.Error(err))
	}
}

func seed(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	var (
		store interface {
			FindByEmail(ctx context.Context, email string) (*identity.Identity, error)
			Insert(ctx context.Context, ident *identity.Identity) error
			Close() error
		}
		err error
	)
	if strings.HasPrefix(cfg.DatabaseURL, "postgres://") ||
		strings.HasPrefix(cfg.DatabaseURL, "postgresql://") {
		store, err = database.NewPostgresStore(ctx, cfg.DatabaseURL)
	} else {
		store, err = database.NewSQLiteStore(cfg.DatabaseURL)
	}
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	email := identity.NormalizeEmail(cfg.SeedAdminEmail)

	_, err = store.FindByEmail(ctx, email)
	if err == nil {
		logger.Info("seed admin already exists", zap.String("email", email))
		return nil
	}
	if !errors.Is(err, database.ErrNotFound) {
		return err
	}

	hasher := security.NewHasher(cfg.BcryptCost)
	hash, err := hasher.Hash(cfg.SeedAdminPassword)
	if err != nil {
		return err
	}

	ident := &identity.Identity{
		ID:           identity.NewID(),
		Email:        email,
		Name:         "Admin",
		PasswordHash: hash,
	}
	if err := store.Insert(ctx, ident); err != nil {
		return err
	}

	logger.Info("seed admin created", zap.String("email", email))
	return nil
}
