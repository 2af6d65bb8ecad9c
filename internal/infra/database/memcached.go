package database

import (
	"github.com/bradfitz/gomemcache/memcache"
)

// NewMemcached creates the client for the memcached export store backend.
func NewMemcached(server string) *memcache.Client {
	return memcache.New(server)
}
