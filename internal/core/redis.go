// AngelaMos | 2026
// redis.go

package core

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/carterperez-dev/journal-backend/internal/config"
)

const redisDialCheckTimeout = 5 * time.Second

// Redis is the shared connection behind the session store and the request
// rate limiters. Startup fails when it cannot be reached.
type Redis struct {
	Client *redis.Client
}

// RedisOptions turns the configured URL and pool sizes into client options.
// clientName tags the connections so they are identifiable in CLIENT LIST.
func RedisOptions(cfg config.RedisConfig, clientName string) (*redis.Options, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse session redis url: %w", err)
	}

	if cfg.PoolSize > 0 {
		opts.PoolSize = cfg.PoolSize
	}
	opts.MinIdleConns = cfg.MinIdleConns
	opts.PoolTimeout = 30 * time.Second
	opts.ConnMaxIdleTime = 5 * time.Minute
	opts.ClientName = clientName

	return opts, nil
}

func NewRedis(ctx context.Context, cfg config.RedisConfig, clientName string) (*Redis, error) {
	opts, err := RedisOptions(cfg, clientName)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, redisDialCheckTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("reach session redis at %s: %w", opts.Addr, err)
	}

	return &Redis{Client: client}, nil
}

func (r *Redis) Close() error {
	if r == nil || r.Client == nil {
		return nil
	}
	return r.Client.Close()
}

// PoolStats feeds the admin stats endpoint.
func (r *Redis) PoolStats() *redis.PoolStats {
	return r.Client.PoolStats()
}
