package cache

import (
	"time"

	"github.com/pkg/errors"
	"gopkg.in/reform.v1"
)

// PgStore is a durable backing store on PostgreSQL.
type PgStore struct {
	DB *reform.DB
}

func NewPgStore(db *reform.DB) *PgStore {
	return &PgStore{DB: db}
}

func (s *PgStore) Get(key string) (string, bool, error) {
	e := &KvEntry{Key: key}
	err := s.DB.Reload(e)
	if err != nil {
		if err == reform.ErrNoRows {
			return "", false, nil
		}
		return "", false, errors.Wrap(err, "Failed get kv cache entry")
	}
	return e.Value, true, nil
}

func (s *PgStore) Set(key, value string) error {
	e := &KvEntry{Key: key}
	err := s.DB.Reload(e)
	if err != nil {
		if err != reform.ErrNoRows {
			return errors.Wrap(err, "Failed get kv cache entry")
		}
		e.Value = value
		return errors.Wrap(s.DB.Insert(e), "Failed insert kv cache entry")
	}
	e.Value = value
	return errors.Wrap(s.DB.Save(e), "Failed save kv cache entry")
}

var _ Store = (*PgStore)(nil)

//go:generate reform

//reform:billup.kv_cache
type KvEntry struct {
	Key       string    `reform:"key,pk"`
	Value     string    `reform:"value"`
	UpdatedAt time.Time `reform:"updated_at"`
	CreatedAt time.Time `reform:"created_at"`
}

func (e *KvEntry) BeforeInsert() error {
	e.UpdatedAt = time.Now()
	e.CreatedAt = time.Now()
	return nil
}

func (e *KvEntry) BeforeUpdate() error {
	e.UpdatedAt = time.Now()
	return nil
}
