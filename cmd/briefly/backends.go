package main

import (
	"context"
	"fmt"

	"github.com/jonathan/briefly/internal/config"
	"github.com/jonathan/briefly/internal/credits"
	"github.com/jonathan/briefly/internal/db"
	"github.com/jonathan/briefly/internal/gateway"
	"github.com/jonathan/briefly/internal/identity"
	"github.com/jonathan/briefly/internal/redisstore"
	"github.com/jonathan/briefly/internal/server"
	"github.com/jonathan/briefly/internal/store"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// backends holds the storage collaborators selected by configuration.
type backends struct {
	Ledger credits.Ledger
	Briefs store.BriefStore
	Users  store.UserRepository

	closers []func()
}

// Close releases connections in reverse order of opening.
func (b *backends) Close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		b.closers[i]()
	}
	b.closers = nil
}

func openBackends(ctx context.Context, cfg *config.AppConfig, log *zap.Logger) (*backends, error) {
	b := &backends{}

	var pg *db.DB
	if cfg.NeedsPostgres() {
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		b.closers = append(b.closers, database.Close)

		if err := database.Migrate(ctx); err != nil {
			b.Close()
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		pg = database
	}

	var rdb *redis.Client
	if cfg.NeedsRedis() {
		client, err := redisstore.Connect(ctx, cfg.RedisURL)
		if err != nil {
			b.Close()
			return nil, err
		}
		b.closers = append(b.closers, func() { _ = client.Close() })
		rdb = client
	}

	switch cfg.LedgerBackend {
	case config.BackendPostgres:
		b.Ledger = db.NewLedger(pg)
	case config.BackendRedis:
		b.Ledger = redisstore.NewLedger(rdb)
	default:
		b.Ledger = credits.NewMemoryLedger()
	}

	switch cfg.StoreBackend {
	case config.BackendPostgres:
		b.Briefs = db.NewBriefStore(pg)
	case config.BackendRedis:
		b.Briefs = redisstore.NewBriefStore(rdb)
	default:
		b.Briefs = store.NewMemoryBriefs()
	}

	switch cfg.UserBackend {
	case config.BackendPostgres:
		b.Users = pg
	default:
		b.Users = store.NewMemoryUsers()
	}

	log.Info("backends ready",
		zap.String("ledger", cfg.LedgerBackend),
		zap.String("store", cfg.StoreBackend),
		zap.String("users", cfg.UserBackend),
	)
	return b, nil
}

// initFirebase is replaced in tests to avoid loading real credentials.
var initFirebase = identity.InitializeFirebase

// newIdentity selects the provider that resolves bearer credentials. Firebase
// mode still accepts tokens issued by password login, and Firebase users get
// the starting grant the first time they are seen.
func newIdentity(ctx context.Context, cfg *config.AppConfig, jwtService *server.JWTService, ledger credits.Ledger, log *zap.Logger) (gateway.Identity, error) {
	if cfg.IdentityProvider != config.IdentityFirebase {
		return jwtService, nil
	}
	fb, err := initFirebase(ctx, cfg.FirebaseCredentialsPath)
	if err != nil {
		return nil, err
	}
	return identity.Chain{
		jwtService,
		identity.WithStartingCredits(fb, ledger, cfg.StartingCredits, log),
	}, nil
}
