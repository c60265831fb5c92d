package cache

import "github.com/pkg/errors"

// ErrStorageUnavailable marks a backing store fault. It is never reported as
// a plain cache miss.
var ErrStorageUnavailable = errors.New("storage unavailable")

// Store is a durable key to string store backing the cache.
type Store interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}
