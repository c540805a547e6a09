// Package codestore keeps one-time reset codes in Redis.
package codestore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"photofeed/internal/config"
)

const keyPrefix = "reset:"

var (
	ErrCodeNotFound = errors.New("code not found")
	ErrDisabled     = errors.New("code store disabled")
)

// Store maps codes to email addresses. A Store without a client accepts
// nothing and finds nothing.
type Store struct {
	rdb *redis.Client
}

func New(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

// Connect dials Redis and pings it. An empty address disables the store.
func Connect(ctx context.Context, cfg config.Redis) (*redis.Client, error) {
	if cfg.Addr == "" {
		log.Warn().Msg("redis: no address configured, reset codes disabled")
		return nil, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}

	log.Info().Str("addr", cfg.Addr).Msg("redis: connected")
	return rdb, nil
}

// Set stores code without expiry.
func (s *Store) Set(ctx context.Context, code, email string) error {
	if s.rdb == nil {
		return ErrDisabled
	}
	if err := s.rdb.Set(ctx, keyPrefix+code, email, 0).Err(); err != nil {
		return fmt.Errorf("set code: %w", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, code string) (string, error) {
	if s.rdb == nil {
		return "", ErrCodeNotFound
	}
	email, err := s.rdb.Get(ctx, keyPrefix+code).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrCodeNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get code: %w", err)
	}
	return email, nil
}

func (s *Store) Delete(ctx context.Context, code string) error {
	if s.rdb == nil {
		return nil
	}
	if err := s.rdb.Del(ctx, keyPrefix+code).Err(); err != nil {
		return fmt.Errorf("delete code: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	if s.rdb == nil {
		return nil
	}
	return s.rdb.Close()
}
