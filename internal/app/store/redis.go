package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/eon-group/expiring-link-service/internal/app/model"
)

const redisKeyPrefix = "expiringlinks:"

// RedisStore keeps link records as JSON values under prefixed keys.
// Records are written without a Redis TTL: an expired link must stay
// readable so resolves can serve the configured expired-redirect.
type RedisStore struct {
	rdb *redis.Client
}

// NewRedisStore returns a Redis-backed LinkStore.
func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) Insert(ctx context.Context, link *model.Link) error {
	data, err := json.Marshal(link)
	if err != nil {
		return fmt.Errorf("redis store: marshal link: %w", err)
	}

	ok, err := s.rdb.SetNX(ctx, redisKey(link.Identifier), data, 0).Result()
	if err != nil {
		return fmt.Errorf("redis store: insert link: %w", err)
	}
	if !ok {
		return ErrLinkExists
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, identifier string) (*model.Link, error) {
	data, err := s.rdb.Get(ctx, redisKey(identifier)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrLinkNotFound
		}
		return nil, fmt.Errorf("redis store: get link: %w", err)
	}

	var link model.Link
	if err := json.Unmarshal(data, &link); err != nil {
		return nil, fmt.Errorf("redis store: unmarshal link: %w", err)
	}
	return &link, nil
}

func (s *RedisStore) Replace(ctx context.Context, link *model.Link) error {
	data, err := json.Marshal(link)
	if err != nil {
		return fmt.Errorf("redis store: marshal link: %w", err)
	}

	// XX so a replace never resurrects a record that was never inserted.
	ok, err := s.rdb.SetXX(ctx, redisKey(link.Identifier), data, 0).Result()
	if err != nil {
		return fmt.Errorf("redis store: replace link: %w", err)
	}
	if !ok {
		return ErrLinkNotFound
	}
	return nil
}

func redisKey(identifier string) string {
	return redisKeyPrefix + identifier
}
