package repository

import (
	"context"
	"path/filepath"
	"testing"

	mr "github.com/alicebob/miniredis/v2"
	"github.com/desuite/desuite-web/backend/internal/config"
	"github.com/stretchr/testify/require"
)

func TestOpenBackends(t *testing.T) {
	ctx := context.Background()

	repo, closeFn, err := Open(ctx, &config.Config{Storage: config.StorageConfig{Backend: config.BackendMemory}})
	require.NoError(t, err)
	require.IsType(t, &MemoryRepo{}, repo)
	closeFn()

	cfg := &config.Config{
		Storage: config.StorageConfig{Backend: config.BackendSQL},
		SQL:     config.SQLConfig{Driver: "sqlite", DSN: filepath.Join(t.TempDir(), "open.db")},
	}
	repo, closeFn, err = Open(ctx, cfg)
	require.NoError(t, err)
	require.IsType(t, &SQLRepo{}, repo)
	closeFn()

	m, err := mr.Run()
	require.NoError(t, err)
	defer m.Close()
	cfg = &config.Config{
		Storage: config.StorageConfig{Backend: config.BackendRedis},
		Redis:   config.RedisConfig{Host: m.Host(), Port: m.Port(), ListKey: "demo-requests"},
	}
	repo, closeFn, err = Open(ctx, cfg)
	require.NoError(t, err)
	require.IsType(t, &RedisRepo{}, repo)
	closeFn()

	_, closeFn, err = Open(ctx, &config.Config{Storage: config.StorageConfig{Backend: "tape"}})
	require.Error(t, err)
	require.NotNil(t, closeFn)
}
