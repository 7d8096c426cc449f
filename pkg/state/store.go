// Package state persists widget tree snapshots between requests. Snapshots
// are the id-keyed maps produced by ui.CaptureState, stored as JSON.
package state

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/goliatone/go-formkit/pkg/ui"
)

// Store persists snapshots under caller chosen keys.
type Store interface {
	Load(ctx context.Context, key string) (map[string]any, error)
	Save(ctx context.Context, key string, states map[string]any) error
	Delete(ctx context.Context, key string) error
}

// Save captures the state of root and stores it under key.
func Save(ctx context.Context, store Store, key string, root ui.Object) error {
	if store == nil {
		return ui.Configurationf("state", "store is nil")
	}
	return store.Save(ctx, key, ui.CaptureState(root))
}

// Restore loads the snapshot stored under key and applies it to root. A
// missing snapshot leaves root untouched and reports false.
func Restore(ctx context.Context, store Store, key string, root ui.Object) (bool, error) {
	if store == nil {
		return false, ui.Configurationf("state", "store is nil")
	}
	states, err := store.Load(ctx, key)
	if ui.IsNotFound(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := ui.RestoreState(root, states); err != nil {
		return false, err
	}
	return true, nil
}

func normalizeKey(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", ui.Configurationf("state", "key is empty")
	}
	return key, nil
}

func encode(states map[string]any) ([]byte, error) {
	payload, err := json.Marshal(states)
	if err != nil {
		return nil, fmt.Errorf("state: encode snapshot: %w", err)
	}
	return payload, nil
}

func decode(key string, payload []byte) (map[string]any, error) {
	states := make(map[string]any)
	if err := json.Unmarshal(payload, &states); err != nil {
		return nil, fmt.Errorf("state: decode snapshot %q: %w", key, err)
	}
	return states, nil
}

// MemoryStore keeps snapshots in process. Snapshots are encoded like the
// persistent stores so restored values have the same types.
type MemoryStore struct {
	mu        sync.RWMutex
	snapshots map[string][]byte
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{snapshots: make(map[string][]byte)}
}

// Load implements Store.
func (s *MemoryStore) Load(ctx context.Context, key string) (map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	key, err := normalizeKey(key)
	if err != nil {
		return nil, err
	}
	s.mu.RLock()
	payload, ok := s.snapshots[key]
	s.mu.RUnlock()
	if !ok {
		return nil, ui.NotFound("state", key)
	}
	return decode(key, payload)
}

// Save implements Store.
func (s *MemoryStore) Save(ctx context.Context, key string, states map[string]any) error {
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
	s.mu.Lock()
	s.snapshots[key] = payload
	s.mu.Unlock()
	return nil
}

// Delete implements Store. Deleting a missing key is not an error.
func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	key, err := normalizeKey(key)
	if err != nil {
		return err
	}
	s.mu.Lock()
	delete(s.snapshots, key)
	s.mu.Unlock()
	return nil
}
