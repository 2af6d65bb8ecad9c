package exportstore

import (
	"context"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/ornidex/ornidex/internal/utils"
)

// Memory stages exports in process. Default when no external cache is
// configured; exports do not survive restarts.
type Memory struct {
	cache *gocache.Cache
}

func NewMemory(ttl time.Duration) *Memory {
	if ttl <= 0 {
		ttl = DefaultTTL * time.Second
	}
	return &Memory{cache: gocache.New(ttl, 2*ttl)}
}

func (s *Memory) Put(ctx context.Context, rows []utils.Row, sheetName string) (string, error) {
	document, err := encode(rows)
	if err != nil {
		return "", err
	}
	id := uuid.NewString()
	s.cache.Set(id, document, gocache.DefaultExpiration)
	return id, nil
}

func (s *Memory) Get(ctx context.Context, id string) ([]byte, error) {
	document, found := s.cache.Get(id)
	if !found {
		return nil, nil
	}
	return document.([]byte), nil
}
