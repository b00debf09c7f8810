// Package redisx holds the redis client setup and the advisory cart hold
// store. Everything here is soft state: losing it degrades cart feedback, not
// correctness, because the authoritative stock check runs at order placement.
package redisx

import (
	"time"

	"github.com/redis/go-redis/v9"
)

// New creates a redis client for the given address. Cart hold operations are
// advisory, so they get a tight timeout rather than the library default.
func New(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})
}
