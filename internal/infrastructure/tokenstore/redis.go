package tokenstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const defaultRedisTimeout = 5 * time.Second

// RedisConfig captures the settings for establishing a Redis connection.
type RedisConfig struct {
	Addr    string
	DB      int
	Timeout time.Duration
}

// ConnectRedis initialises a Redis client and validates connectivity with a ping.
// A default timeout is applied when none is provided.
func ConnectRedis(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultRedisTimeout
	}

	client := redis.NewClient(&redis.Options{
		Addr: cfg.Addr,
		DB:   cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return client, nil
}

// RedisStore keeps the session values in Redis under the prefixed keys.
// Values never expire; the backend owns token lifetime.
type RedisStore struct {
	client *redis.Client
	keys   Keys
	log    zerolog.Logger
}

func NewRedisStore(client *redis.Client, prefix string, log zerolog.Logger) *RedisStore {
	return &RedisStore{client: client, keys: NewKeys(prefix), log: log}
}

func (s *RedisStore) Token(ctx context.Context) (string, bool) {
	v, err := s.client.Get(ctx, s.keys.Token).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.log.Warn().Err(err).Str("key", s.keys.Token).Msg("token read failed")
		}
		return "", false
	}
	return v, v != ""
}

func (s *RedisStore) SetToken(ctx context.Context, token string) error {
	if err := s.client.Set(ctx, s.keys.Token, token, 0).Err(); err != nil {
		return fmt.Errorf("token store: set token: %w", err)
	}
	return nil
}

func (s *RedisStore) User(ctx context.Context) (json.RawMessage, bool) {
	v, err := s.client.Get(ctx, s.keys.User).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.log.Warn().Err(err).Str("key", s.keys.User).Msg("user read failed")
		}
		return nil, false
	}
	if !json.Valid(v) {
		return nil, false
	}
	return json.RawMessage(v), true
}

func (s *RedisStore) SetUser(ctx context.Context, blob json.RawMessage) error {
	if err := s.client.Set(ctx, s.keys.User, []byte(blob), 0).Err(); err != nil {
		return fmt.Errorf("token store: set user: %w", err)
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.keys.Token, s.keys.User).Err(); err != nil {
		return fmt.Errorf("token store: clear: %w", err)
	}
	return nil
}
