package database

import (
	"context"
	"fmt"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/desuite/desuite-web/backend/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// ConnectRedis creates a client and verifies it with PING, retrying a few times.
// The client is closed when every attempt fails.
func ConnectRedis(ctx context.Context, addr, password string, db int, attempts uint) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	err := retry.Do(func() error {
		return client.Ping(ctx).Err()
	},
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(200*time.Millisecond),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			logger.Warnf("attempt %d/%d: redis ping %s failed: %v", n+1, attempts, addr, err)
		}),
	)
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return client, nil
}
