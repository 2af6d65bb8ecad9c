package exportstore

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/ornidex/ornidex/internal/utils"
)

const redisKeyPrefix = "ornidex:export:"

// Redis stages exports in redis with a TTL.
type Redis struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedis(rdb *redis.Client, ttl time.Duration) *Redis {
	if ttl <= 0 {
		ttl = DefaultTTL * time.Second
	}
	return &Redis{rdb: rdb, ttl: ttl}
}

func (s *Redis) Put(ctx context.Context, rows []utils.Row, sheetName string) (string, error) {
	document, err := encode(rows)
	if err != nil {
		return "", err
	}
	id := uuid.NewString()
	err = s.rdb.Set(ctx, redisKeyPrefix+id, document, s.ttl).Err()
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Redis) Get(ctx context.Context, id string) ([]byte, error) {
	document, err := s.rdb.Get(ctx, redisKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return document, nil
}
