package store

import (
	"context"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"raidboard/internal/model"
)

// RedisRaidStore keeps raid records in Redis under raid:<code>, each
// write restarting the TTL.
type RedisRaidStore struct {
	client *redisv9.Client
	ttl    time.Duration
}

func NewRedisRaidStore(client *redisv9.Client, ttl time.Duration) *RedisRaidStore {
	if ttl <= 0 {
		ttl = 6 * time.Hour
	}
	return &RedisRaidStore{client: client, ttl: ttl}
}

func (s *RedisRaidStore) Put(ctx context.Context, raid *model.Raid) error {
	payload, err := encodeRaid(raid)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, raidKey(raid.Code), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set raid failed: %w", err)
	}
	return nil
}

func (s *RedisRaidStore) Get(ctx context.Context, code string) (*model.Raid, error) {
	raw, err := s.client.Get(ctx, raidKey(code)).Result()
	if err == redisv9.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get raid failed: %w", err)
	}
	return decodeRaid([]byte(raw))
}

func raidKey(code string) string {
	return fmt.Sprintf("raid:%s", code)
}

// RedisKeyedSet is a KeyedSet over Redis string keys sharing a prefix.
type RedisKeyedSet struct {
	client *redisv9.Client
	prefix string
}

func NewRedisKeyedSet(client *redisv9.Client, prefix string) *RedisKeyedSet {
	return &RedisKeyedSet{client: client, prefix: prefix}
}

func (s *RedisKeyedSet) Add(ctx context.Context, id int64, label string) error {
	if err := s.client.Set(ctx, s.key(id), label, 0).Err(); err != nil {
		return fmt.Errorf("redis add to %s failed: %w", s.prefix, err)
	}
	return nil
}

func (s *RedisKeyedSet) Remove(ctx context.Context, id int64) error {
	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return fmt.Errorf("redis remove from %s failed: %w", s.prefix, err)
	}
	return nil
}

func (s *RedisKeyedSet) Contains(ctx context.Context, id int64) (bool, error) {
	n, err := s.client.Exists(ctx, s.key(id)).Result()
	if err != nil {
		return false, fmt.Errorf("redis check %s failed: %w", s.prefix, err)
	}
	return n > 0, nil
}

func (s *RedisKeyedSet) key(id int64) string {
	return fmt.Sprintf("%s:%d", s.prefix, id)
}
