package redis

import (
	"context"
	"time"

	"github.com/Safalguptaofficial/production-lob-matching-engine/pkg/errors"
	"github.com/Safalguptaofficial/production-lob-matching-engine/pkg/logger"
	v9 "github.com/redis/go-redis/v9"
)

type client struct {
	logger  *logger.Logger
	config  *Config
	cmdable v9.Cmdable
	closer  interface{ Close() error }
}

// NewClient creates a new Redis client with the provided logger and configuration.
func NewClient(log *logger.Logger, config *Config) Client {
	return &client{
		logger: log,
		config: config,
	}
}

// Connect validates the configuration and dials Redis.
func (c *client) Connect(ctx context.Context) error {
	if c.config == nil {
		return errors.NewTracer(string(errors.RedisConfigError))
	}
	if len(c.config.Addrs) == 0 {
		return errors.NewTracer(string(errors.RedisConfigError))
	}
	if c.config.Mode != Standalone && c.config.Mode != Cluster {
		return errors.NewTracer(string(errors.RedisConfigError))
	}

	switch c.config.Mode {
	case Standalone:
		rc := v9.NewClient(&v9.Options{
			Addr:            c.config.Addrs[0],
			Username:        c.config.Username,
			Password:        c.config.Password,
			DB:              c.config.DB,
			MaxRetries:      c.config.MaxRetries,
			MinRetryBackoff: c.config.MinRetryBackoff,
			MaxRetryBackoff: c.config.MaxRetryBackoff,
			DialTimeout:     c.config.ConnectTimeout,
			ReadTimeout:     c.config.ConnectTimeout,
			WriteTimeout:    c.config.ConnectTimeout,
			PoolSize:        c.config.PoolSize,
			MinIdleConns:    c.config.MinIdleConns,
			MaxIdleConns:    c.config.MaxIdleConns,
			ConnMaxLifetime: c.config.ConnMaxLifetime,
			ConnMaxIdleTime: c.config.ConnMaxIdleTime,
			PoolTimeout:     c.config.PoolTimeout,
		})
		c.cmdable = rc
		c.closer = rc
	case Cluster:
		rc := v9.NewClusterClient(&v9.ClusterOptions{
			Addrs:           c.config.Addrs,
			Username:        c.config.Username,
			Password:        c.config.Password,
			MaxRetries:      c.config.MaxRetries,
			MinRetryBackoff: c.config.MinRetryBackoff,
			MaxRetryBackoff: c.config.MaxRetryBackoff,
			DialTimeout:     c.config.ConnectTimeout,
			ReadTimeout:     c.config.ConnectTimeout,
			WriteTimeout:    c.config.ConnectTimeout,
			PoolSize:        c.config.PoolSize,
			MinIdleConns:    c.config.MinIdleConns,
			MaxIdleConns:    c.config.MaxIdleConns,
			ConnMaxLifetime: c.config.ConnMaxLifetime,
			ConnMaxIdleTime: c.config.ConnMaxIdleTime,
			PoolTimeout:     c.config.PoolTimeout,
		})
		c.cmdable = rc
		c.closer = rc
	}

	if err := c.Ping(ctx); err != nil {
		return errors.NewTracer(string(errors.RedisConnectionError)).Wrap(err)
	}

	c.logger.Info("Connected to Redis", logger.Field{
		Key:   "addrs",
		Value: c.config.Addrs,
	})

	return nil
}

// Disconnect closes the underlying connection pool.
func (c *client) Disconnect(ctx context.Context) error {
	if c.closer == nil {
		return nil
	}
	return c.closer.Close()
}

// Ping checks connectivity.
func (c *client) Ping(ctx context.Context) error {
	return c.cmdable.Ping(ctx).Err()
}

// Get returns the string value at key. A missing key returns the empty
// string with no error.
func (c *client) Get(ctx context.Context, key string) (string, error) {
	value, err := c.cmdable.Get(ctx, key).Result()
	if err == v9.Nil {
		return "", nil
	}
	if err != nil {
		return "", errors.NewTracer(string(errors.RedisGetError)).Wrap(err)
	}
	return value, nil
}

// Set stores value at key with the given expiration.
func (c *client) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	if err := c.cmdable.Set(ctx, key, value, expiration).Err(); err != nil {
		return errors.NewTracer(string(errors.RedisSetError)).Wrap(err)
	}
	return nil
}

// Del removes the given keys, returning how many existed.
func (c *client) Del(ctx context.Context, keys ...string) (int64, error) {
	deleted, err := c.cmdable.Del(ctx, keys...).Result()
	if err != nil {
		return 0, errors.NewTracer(string(errors.RedisDelError)).Wrap(err)
	}
	return deleted, nil
}
