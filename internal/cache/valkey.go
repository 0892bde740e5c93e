package cache

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// ValkeyClient caches upstream event listings. The storefront works
// without it; when VALKEY_ADDR is unset callers get a nil client and skip
// caching entirely.
type ValkeyClient struct {
	client *redis.Client
}

func NewValkeyClient() (*ValkeyClient, error) {
	addr := os.Getenv("VALKEY_ADDR")
	if addr == "" {
		return nil, nil
	}

	password := os.Getenv("VALKEY_PASSWORD")

	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           0,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
		DialTimeout:  5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Valkey: %w", err)
	}

	return &ValkeyClient{client: rdb}, nil
}

func eventsListKey(rawQuery string) string {
	if rawQuery == "" {
		return "events:list"
	}
	return "events:list:" + rawQuery
}

// GetEventsListRaw returns the cached listing body for a query, verbatim.
func (v *ValkeyClient) GetEventsListRaw(ctx context.Context, rawQuery string) ([]byte, error) {
	payload, err := v.client.Get(ctx, eventsListKey(rawQuery)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, fmt.Errorf("events list not in cache")
		}
		return nil, fmt.Errorf("cache lookup error: %w", err)
	}
	return payload, nil
}

// SetEventsList stores a listing body with the given TTL.
func (v *ValkeyClient) SetEventsList(ctx context.Context, rawQuery string, payload []byte, ttl time.Duration) error {
	return v.client.Set(ctx, eventsListKey(rawQuery), payload, ttl).Err()
}

func (v *ValkeyClient) Close() error {
	return v.client.Close()
}
