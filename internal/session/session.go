// Package session resolves the user behind a request's session id.
package session

import (
	"context"
	"errors"
	"fmt"

	"HealthRecords/internal/config"

	"github.com/go-redis/redis/v8"
)

type ctxKey struct{}

// WithID returns a copy of ctx carrying the session id taken from the request.
func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// IDFromContext returns the session id stored by WithID, or "".
func IDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// RedisProvider looks sessions up as <prefix><session id> -> user id.
type RedisProvider struct {
	client *redis.Client
	prefix string
}

func NewRedisClient(cfg *config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

func NewRedisProvider(client *redis.Client, prefix string) *RedisProvider {
	return &RedisProvider{client: client, prefix: prefix}
}

// CurrentUser returns the user id for the session in ctx. A missing session
// or an unknown session id yields "" with a nil error.
func (p *RedisProvider) CurrentUser(ctx context.Context) (string, error) {
	id := IDFromContext(ctx)
	if id == "" {
		return "", nil
	}

	userID, err := p.client.Get(ctx, p.prefix+id).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get session from redis: %w", err)
	}

	return userID, nil
}

func (p *RedisProvider) Ping(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}

func (p *RedisProvider) Close() error {
	return p.client.Close()
}
