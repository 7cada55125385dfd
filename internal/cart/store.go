package cart

import (
	"context"
	"sync"
)

// Store persists cart lines by session key. Load returns an empty slice for
// an unknown key.
type Store interface {
	Load(ctx context.Context, key string) ([]StoredItem, error)
	Save(ctx context.Context, key string, items []StoredItem) error
	Delete(ctx context.Context, key string) error
}

// MemoryStore keeps carts in process memory. Carts do not survive a restart
// and are not shared between instances.
type MemoryStore struct {
	mu    sync.RWMutex
	carts map[string][]StoredItem
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{carts: make(map[string][]StoredItem)}
}

func (s *MemoryStore) Load(_ context.Context, key string) ([]StoredItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := s.carts[key]
	out := make([]StoredItem, len(items))
	copy(out, items)
	return out, nil
}

func (s *MemoryStore) Save(_ context.Context, key string, items []StoredItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(items) == 0 {
		delete(s.carts, key)
		return nil
	}

	stored := make([]StoredItem, len(items))
	copy(stored, items)
	s.carts[key] = stored
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts, key)
	return nil
}
