package repository

import (
	"context"
	"fmt"

	"github.com/desuite/desuite-web/backend/internal/config"
	"github.com/desuite/desuite-web/backend/internal/database"
	"github.com/desuite/desuite-web/backend/pkg/logger"
)

const connectAttempts = 5

// Open builds the repository selected by cfg.Storage.Backend. The returned close
// function releases any connection the backend holds and is never nil.
func Open(ctx context.Context, cfg *config.Config) (Repository, func(), error) {
	noop := func() {}
	switch cfg.Storage.Backend {
	case config.BackendMemory, "":
		logger.Warnf("using in-memory demo request storage; records are lost on restart")
		return NewMemoryRepo(), noop, nil

	case config.BackendMongo:
		client, err := database.ConnectMongoWithRetry(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout, connectAttempts)
		if err != nil {
			return nil, noop, fmt.Errorf("open mongo storage: %w", err)
		}
		closeFn := func() { _ = client.Disconnect(context.Background()) }
		repo, err := NewMongoRepo(ctx, client.Database(cfg.MongoDB.Database).Collection(cfg.MongoDB.Collection))
		if err != nil {
			closeFn()
			return nil, noop, err
		}
		return repo, closeFn, nil

	case config.BackendSQL:
		db, err := database.OpenSQL(ctx, cfg.SQL.Driver, cfg.SQL.DSN)
		if err != nil {
			return nil, noop, fmt.Errorf("open sql storage: %w", err)
		}
		repo := NewSQLRepo(db)
		return repo, func() { _ = repo.Close() }, nil

	case config.BackendRedis:
		client, err := database.ConnectRedis(ctx, cfg.Redis.Addr(), cfg.Redis.Password, cfg.Redis.DB, connectAttempts)
		if err != nil {
			return nil, noop, fmt.Errorf("open redis storage: %w", err)
		}
		return NewRedisRepo(client, cfg.Redis.ListKey), func() { _ = client.Close() }, nil

	case config.BackendMinIO:
		repo, err := NewMinIORepo(ctx, cfg.MinIO)
		if err != nil {
			return nil, noop, fmt.Errorf("open minio storage: %w", err)
		}
		return repo, noop, nil
	}
	return nil, noop, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
}
