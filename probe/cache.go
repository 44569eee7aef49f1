package probe

import (
	"context"
	"crypto/tls"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/chainregistry/protoreg/record"
)

// CacheOptions configures the Redis connection backing the verification
// cache.
type CacheOptions struct {
	// URL is the Redis connection string (e.g. "redis://localhost:6379").
	URL string

	// TLS is the optional TLS configuration for the connection.
	TLS *tls.Config

	// ConnectTimeout bounds the initial connection attempt. Default 5s.
	ConnectTimeout time.Duration

	// TTL is how long a verified address stays cached. Default 24h.
	TTL time.Duration

	// Prefix namespaces the cache keys. Default "protoreg:verified".
	Prefix string
}

// VerifyCache remembers which addresses the verification API has already
// confirmed, so repeated runs (CI in particular) do not re-probe them.
// Only the Verified outcome is cached: a contract, once verified, stays
// verified, while every other outcome is transient and must be re-probed.
type VerifyCache struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

// NewVerifyCache connects to Redis and returns a cache. The connection is
// verified with a ping before returning.
func NewVerifyCache(opts CacheOptions) (*VerifyCache, error) {
	if opts.URL == "" {
		opts.URL = "redis://localhost:6379"
	}
	if opts.ConnectTimeout == 0 {
		opts.ConnectTimeout = 5 * time.Second
	}
	if opts.TTL == 0 {
		opts.TTL = 24 * time.Hour
	}
	if opts.Prefix == "" {
		opts.Prefix = "protoreg:verified"
	}

	redisOpts, err := redis.ParseURL(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	redisOpts.TLSConfig = opts.TLS
	redisOpts.DialTimeout = opts.ConnectTimeout

	client := redis.NewClient(redisOpts)

	ctx, cancel := context.WithTimeout(context.Background(), opts.ConnectTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &VerifyCache{client: client, ttl: opts.TTL, prefix: opts.Prefix}, nil
}

// key builds the cache key for an address in canonical form.
func (c *VerifyCache) key(address string) string {
	return c.prefix + ":" + record.CanonicalAddress(address)
}

// Get reports whether the address has a cached verified status.
func (c *VerifyCache) Get(ctx context.Context, address string) (bool, error) {
	err := c.client.Get(ctx, c.key(address)).Err()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cache get: %w", err)
	}
	return true, nil
}

// Put records a probe outcome. Non-verified outcomes are ignored.
func (c *VerifyCache) Put(ctx context.Context, address string, status VerifyStatus) error {
	if !status.Verified() {
		return nil
	}
	if err := c.client.Set(ctx, c.key(address), string(status), c.ttl).Err(); err != nil {
		return fmt.Errorf("cache put: %w", err)
	}
	return nil
}

// Close closes the Redis connection.
func (c *VerifyCache) Close() error {
	return c.client.Close()
}
