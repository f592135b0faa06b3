package storage

import (
	"context"
	"errors"
	"fmt"

	go_json "github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"github.com/garrettladley/sugang/internal/credential"
	xredis "github.com/garrettladley/sugang/internal/redis"
)

var _ Backend = (*RedisBackend)(nil)

const (
	credentialsKey = "credentials"
	attemptsKey    = "attempts"
	// maxAttempts bounds the attempts list.
	maxAttempts = 500
)

type RedisConfig struct {
	Client *xredis.Client
}

type RedisBackend struct {
	client *xredis.Client
}

func NewRedisBackend(cfg RedisConfig) *RedisBackend {
	return &RedisBackend{client: cfg.Client}
}

func (r *RedisBackend) Get(ctx context.Context) (credential.Credentials, error) {
	data, err := r.client.Get(ctx, r.client.Key(credentialsKey)).Bytes()
	if errors.Is(err, redis.Nil) {
		return credential.Credentials{}, ErrNotFound
	}
	if err != nil {
		return credential.Credentials{}, fmt.Errorf("failed to get credentials: %w", err)
	}

	var c credential.Credentials
	if err := go_json.Unmarshal(data, &c); err != nil {
		return credential.Credentials{}, fmt.Errorf("failed to unmarshal credentials: %w", err)
	}
	return c, nil
}

func (r *RedisBackend) Set(ctx context.Context, c credential.Credentials) error {
	data, err := go_json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal credentials: %w", err)
	}
	if err := r.client.Set(ctx, r.client.Key(credentialsKey), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to set credentials: %w", err)
	}
	return nil
}

func (r *RedisBackend) Delete(ctx context.Context) error {
	if err := r.client.Del(ctx, r.client.Key(credentialsKey)).Err(); err != nil {
		return fmt.Errorf("failed to delete credentials: %w", err)
	}
	return nil
}

// RecordAttempt pushes onto a capped list, newest at the head.
func (r *RedisBackend) RecordAttempt(ctx context.Context, a Attempt) error {
	data, err := go_json.Marshal(a)
	if err != nil {
		return fmt.Errorf("failed to marshal attempt: %w", err)
	}

	key := r.client.Key(attemptsKey)
	pipe := r.client.TxPipeline()
	pipe.LPush(ctx, key, data)
	pipe.LTrim(ctx, key, 0, maxAttempts-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to record attempt: %w", err)
	}
	return nil
}

func (r *RedisBackend) ListAttempts(ctx context.Context, limit int) ([]Attempt, error) {
	if limit <= 0 {
		return nil, nil
	}
	raw, err := r.client.LRange(ctx, r.client.Key(attemptsKey), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list attempts: %w", err)
	}

	out := make([]Attempt, 0, len(raw))
	for _, s := range raw {
		var a Attempt
		if err := go_json.Unmarshal([]byte(s), &a); err != nil {
			return nil, fmt.Errorf("failed to unmarshal attempt: %w", err)
		}
		out = append(out, a)
	}
	return out, nil
}

func (r *RedisBackend) Close() error {
	return r.client.Close()
}
