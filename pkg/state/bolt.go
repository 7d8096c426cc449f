package state

import (
	"context"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/goliatone/go-formkit/pkg/ui"
)

const bucketState = "formkit_state"

// BoltStore keeps snapshots in a bbolt database file.
type BoltStore struct {
	db *bolt.DB
}

// OpenBolt opens (or creates) the database at path.
func OpenBolt(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("state: open %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketState))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("state: initialize %s: %w", path, err)
	}
	return &BoltStore{db: db}, nil
}

// Close closes the database.
func (s *BoltStore) Close() error {
	return s.db.Close()
}

// Load implements Store.
func (s *BoltStore) Load(ctx context.Context, key string) (map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	key, err := normalizeKey(key)
	if err != nil {
		return nil, err
	}
	var payload []byte
	err = s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(bucketState)).Get([]byte(key))
		if v == nil {
			return ui.NotFound("state", key)
		}
		// values are only valid inside the transaction
		payload = append([]byte(nil), v...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return decode(key, payload)
}

// Save implements Store.
func (s *BoltStore) Save(ctx context.Context, key string, states map[string]any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	key, err := normalizeKey(key)
	if err != nil {
		return err
	}
	payload, err := encode(states)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketState)).Put([]byte(key), payload)
	})
}

// Delete implements Store.
func (s *BoltStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	key, err := normalizeKey(key)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketState)).Delete([]byte(key))
	})
}
