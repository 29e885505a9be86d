package ratelimit

import "context"

// Config bounds request rates over sliding windows. A zero limit disables
// that window.
type Config struct {
	RequestsPerMinute int
	RequestsPerHour   int
}

// RateLimiter answers whether a caller identified by key may proceed.
type RateLimiter interface {
	Allow(ctx context.Context, key string, cfg Config) (bool, error)
	Reset(ctx context.Context, key string) error
}
