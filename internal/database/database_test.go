package database

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	mr "github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
)

func TestOpenSQLAppliesMigrations(t *testing.T) {
	ctx := context.Background()
	db, err := OpenSQL(ctx, "sqlite", filepath.Join(t.TempDir(), "desuite.db"))
	require.NoError(t, err)
	defer db.Close()

	var n int
	require.NoError(t, db.GetContext(ctx, &n, `SELECT COUNT(*) FROM demo_requests`))
	require.Equal(t, 0, n)

	// idempotent
	require.NoError(t, Migrate(ctx, db.DB, "sqlite"))
}

func TestConnectRedis(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	defer m.Close()

	client, err := ConnectRedis(context.Background(), m.Addr(), "", 0, 2)
	require.NoError(t, err)
	require.NoError(t, client.Close())
}

func TestConnectRedisFails(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	addr := m.Addr()
	m.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err = ConnectRedis(ctx, addr, "", 0, 2)
	require.Error(t, err)
}
