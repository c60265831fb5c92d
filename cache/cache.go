package cache

import (
	"encoding/json"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// TTL is the staleness bound for cached payloads: 7 days of wall-clock time
// (604800000 ms). Entries older than this are absent at read time.
const TTL = 7 * 24 * 60 * 60 * 1000

type envelope struct {
	Payload  json.RawMessage `json:"payload"`
	StoredAt int64           `json:"stored_at_epoch_ms"`
}

// Cache stores JSON payloads with a stored-at timestamp and treats entries
// older than TTL as nonexistent. Expiry is a read-time predicate, there is no
// sweep and no delete; the only reset is an overwriting Save.
type Cache struct {
	store Store
	clock Clock
	l     *zap.Logger
}

func New(store Store, clock Clock) *Cache {
	return &Cache{
		store: store,
		clock: clock,
		l:     zap.L().Named("cache"),
	}
}

// Save wraps payload in an envelope stamped with the current time and
// unconditionally overwrites any prior value under key. Storage faults are
// returned, never swallowed.
func (c *Cache) Save(key string, payload interface{}) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrap(err, "Failed marshal cache payload")
	}
	env, err := json.Marshal(envelope{
		Payload:  raw,
		StoredAt: c.clock.Now().UnixNano() / 1e6,
	})
	if err != nil {
		return errors.Wrap(err, "Failed marshal cache envelope")
	}
	if err := c.store.Set(key, string(env)); err != nil {
		c.l.Warn(
			"Failed save to backing store.",
			zap.String("key", key),
			zap.Error(err),
		)
		return errors.WithMessage(ErrStorageUnavailable, err.Error())
	}
	return nil
}

// Load unmarshals the payload under key into out and reports whether a fresh
// entry existed. A stale envelope is left in place and reported as absent.
// A backing store fault is returned as an error, not as a miss.
func (c *Cache) Load(key string, out interface{}) (bool, error) {
	value, ok, err := c.store.Get(key)
	if err != nil {
		c.l.Warn(
			"Failed load from backing store.",
			zap.String("key", key),
			zap.Error(err),
		)
		return false, errors.WithMessage(ErrStorageUnavailable, err.Error())
	}
	if !ok {
		return false, nil
	}
	var env envelope
	if err := json.Unmarshal([]byte(value), &env); err != nil {
		return false, errors.Wrap(err, "Failed unmarshal cache envelope")
	}
	age := c.clock.Now().UnixNano()/1e6 - env.StoredAt
	if age > TTL {
		return false, nil
	}
	if err := json.Unmarshal(env.Payload, out); err != nil {
		return false, errors.Wrap(err, "Failed unmarshal cache payload")
	}
	return true, nil
}
