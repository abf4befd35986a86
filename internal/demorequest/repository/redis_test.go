package repository

import (
	"context"
	"errors"
	"testing"

	mr "github.com/alicebob/miniredis/v2"
	"github.com/desuite/desuite-web/backend/internal/demorequest"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestRedisRepo_CreateList(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	defer m.Close()

	client := redis.NewClient(&redis.Options{Addr: m.Addr()})
	repo := NewRedisRepo(client, "test:demo-requests")
	ctx := context.Background()

	var ids []string
	for _, name := range []string{"Jane", "John", "Jane"} {
		d := &demorequest.DemoRequest{Name: name, Email: "x@acme.com", Company: "Acme"}
		require.NoError(t, repo.Create(ctx, d))
		ids = append(ids, d.ID)
	}

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	for i, d := range list {
		require.Equal(t, ids[i], d.ID)
	}
	require.NotEqual(t, list[0].ID, list[2].ID, "identical payloads create distinct records")

	n, err := client.LLen(ctx, "test:demo-requests").Result()
	require.NoError(t, err)
	require.EqualValues(t, 3, n)
}

func TestRedisRepo_EmptyList(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	defer m.Close()

	repo := NewRedisRepo(redis.NewClient(&redis.Options{Addr: m.Addr()}), "")
	list, err := repo.List(context.Background())
	require.NoError(t, err)
	require.NotNil(t, list)
	require.Empty(t, list)
}

func TestRedisRepo_StorageError(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: m.Addr(), MaxRetries: -1})
	repo := NewRedisRepo(client, "")
	m.Close()

	d := &demorequest.DemoRequest{Name: "Jane", Email: "jane@acme.com", Company: "Acme"}
	err = repo.Create(context.Background(), d)
	var se *StorageError
	require.True(t, errors.As(err, &se))
	require.Equal(t, "redis", se.Backend)
	require.Empty(t, d.ID)
	require.Error(t, repo.Ping(context.Background()))
}
