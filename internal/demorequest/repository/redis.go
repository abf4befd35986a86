package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/desuite/desuite-web/backend/internal/demorequest"
	"github.com/redis/go-redis/v9"
)

// RedisRepo keeps demo requests as JSON entries of one Redis list.
// RPUSH appends, so LRANGE 0 -1 returns creation order.
type RedisRepo struct {
	client *redis.Client
	key    string
}

// NewRedisRepo creates a Redis-backed repository. key may be empty.
func NewRedisRepo(client *redis.Client, key string) *RedisRepo {
	if key == "" {
		key = "demo-requests"
	}
	return &RedisRepo{client: client, key: key}
}

func (r *RedisRepo) Create(ctx context.Context, d *demorequest.DemoRequest) error {
	id, err := newID()
	if err != nil {
		return storageErr("redis", "create", err)
	}
	rec := d.Clone()
	rec.ID = id
	rec.CreatedAt = time.Now().UTC()
	b, err := json.Marshal(rec)
	if err != nil {
		return storageErr("redis", "create", err)
	}
	if err := r.client.RPush(ctx, r.key, b).Err(); err != nil {
		return storageErr("redis", "create", err)
	}
	d.ID, d.CreatedAt = rec.ID, rec.CreatedAt
	return nil
}

func (r *RedisRepo) List(ctx context.Context) ([]*demorequest.DemoRequest, error) {
	vals, err := r.client.LRange(ctx, r.key, 0, -1).Result()
	if err != nil {
		return nil, storageErr("redis", "list", err)
	}
	out := make([]*demorequest.DemoRequest, 0, len(vals))
	for _, v := range vals {
		var d demorequest.DemoRequest
		if err := json.Unmarshal([]byte(v), &d); err != nil {
			return nil, storageErr("redis", "list", err)
		}
		out = append(out, &d)
	}
	return out, nil
}

func (r *RedisRepo) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
