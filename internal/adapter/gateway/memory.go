package gateway

import (
	"context"
	"sync"

	"sellit/internal/store"
	"sellit/pkg/errors"
)

// MemoryGateway is a process-local gateway for tests and development runs
// without a Firestore project configured.
type MemoryGateway struct {
	mu          sync.RWMutex
	collections map[string]map[string][]byte
}

func NewMemoryGateway() *MemoryGateway {
	return &MemoryGateway{collections: make(map[string]map[string][]byte)}
}

var _ store.Gateway = (*MemoryGateway)(nil)

func (g *MemoryGateway) Get(ctx context.Context, collection, key string) ([]byte, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	value, ok := g.collections[collection][key]
	if !ok {
		return nil, errors.NotFound("Document", nil)
	}
	return append([]byte(nil), value...), nil
}

func (g *MemoryGateway) Set(ctx context.Context, collection, key string, value []byte) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	docs, ok := g.collections[collection]
	if !ok {
		docs = make(map[string][]byte)
		g.collections[collection] = docs
	}
	docs[key] = append([]byte(nil), value...)
	return nil
}

func (g *MemoryGateway) Delete(ctx context.Context, collection, key string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	delete(g.collections[collection], key)
	return nil
}

func (g *MemoryGateway) List(ctx context.Context, collection string) (map[string][]byte, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make(map[string][]byte, len(g.collections[collection]))
	for key, value := range g.collections[collection] {
		out[key] = append([]byte(nil), value...)
	}
	return out, nil
}
