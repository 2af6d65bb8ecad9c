package exportstore

import (
	"context"
	"errors"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/google/uuid"

	"github.com/ornidex/ornidex/internal/utils"
)

const memcachedKeyPrefix = "ornidex-export-"

// Memcached stages exports in memcached with a TTL.
type Memcached struct {
	mc  *memcache.Client
	ttl time.Duration
}

func NewMemcached(mc *memcache.Client, ttl time.Duration) *Memcached {
	if ttl <= 0 {
		ttl = DefaultTTL * time.Second
	}
	return &Memcached{mc: mc, ttl: ttl}
}

func (s *Memcached) Put(ctx context.Context, rows []utils.Row, sheetName string) (string, error) {
	document, err := encode(rows)
	if err != nil {
		return "", err
	}
	id := uuid.NewString()
	err = s.mc.Set(&memcache.Item{
		Key:        memcachedKeyPrefix + id,
		Value:      document,
		Expiration: int32(s.ttl / time.Second),
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Memcached) Get(ctx context.Context, id string) ([]byte, error) {
	item, err := s.mc.Get(memcachedKeyPrefix + id)
	if errors.Is(err, memcache.ErrCacheMiss) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return item.Value, nil
}
