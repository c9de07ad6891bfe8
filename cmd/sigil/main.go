package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"git.sr.ht/~jakintosh/sigil/internal/api"
	"git.sr.ht/~jakintosh/sigil/internal/config"
	"git.sr.ht/~jakintosh/sigil/internal/database"
	"git.sr.ht/~jakintosh/sigil/internal/security"
	"git.sr.ht/~jakintosh/sigil/internal/session"
	"git.sr.ht/~jakintosh/sigil/internal/tokens"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Fatal("invalid configuration", zap.Error(err))
	}

	logger := newLogger(cfg.Env)
	defer func() { _ = logger.Sync() }()

	store, err := openStore(cfg)
	if err != nil {
		logger.Fatal("failed to open store", zap.Error(err))
	}
	defer func() { _ = store.Close() }()

	tokenManager, err := tokens.NewManager(tokens.Config{
		Secret:     []byte(cfg.JWTSecret),
		Issuer:     cfg.JWTIssuer,
		AccessTTL:  cfg.AccessTTL(),
		RefreshTTL: cfg.RefreshTTL(),
	})
	if err != nil {
		logger.Fatal("failed to create token manager", zap.Error(err))
	}

	hasher := security.NewHasher(cfg.BcryptCost)
	svc := session.New(store, hasher, tokenManager)
	a := api.New(svc, tokenManager, logger)

	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      a.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("addr", cfg.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}
}

// identityStore is what main needs from a store: the session contract plus
// Close.
type identityStore interface {
	session.IdentityStore
	io.Closer
}

func openStore(cfg *config.Config) (identityStore, error) {
	if strings.HasPrefix(cfg.DatabaseURL, "postgres://") ||
		strings.HasPrefix(cfg.DatabaseURL, "postgresql://") {
		return database.NewPostgresStore(context.Background(), cfg.DatabaseURL)
	}
	return database.NewSQLiteStore(cfg.DatabaseURL)
}

func newLogger(env string) *zap.Logger {
	if env == "production" {
		logger, err := zap.NewProduction()
		if err != nil {
			panic(err)
		}
		return logger
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	return logger
}
