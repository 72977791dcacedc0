// Package cache defines the store interface shared by the response cache
// and the elevation memoization layer.
package cache

import "time"

type Interface interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, val []byte, ttl time.Duration) error
	Del(keys ...string) error
}
