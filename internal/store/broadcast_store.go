package store

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"sellit/internal/domain/entity"
	"sellit/pkg/errors"
)

type broadcastStore struct{ *EntityStore }

func cloneBroadcast(b *entity.Broadcast) *entity.Broadcast {
	clone := *b
	return &clone
}

func (r broadcastStore) Create(ctx context.Context, broadcast *entity.Broadcast) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if broadcast.ID == "" {
		broadcast.ID = uuid.New().String()
	}
	if _, exists := r.broadcasts[broadcast.ID]; exists {
		return errors.Conflict("Broadcast already exists", nil)
	}
	if broadcast.CreatedAt.IsZero() {
		broadcast.CreatedAt = time.Now()
	}

	r.broadcasts[broadcast.ID] = cloneBroadcast(broadcast)
	r.persist(ctx, CollectionBroadcasts, broadcast.ID, broadcast)
	return nil
}

func (r broadcastStore) GetByID(ctx context.Context, id string) (*entity.Broadcast, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	broadcast, ok := r.broadcasts[id]
	if !ok {
		return nil, errors.NotFound("Broadcast", nil)
	}
	return cloneBroadcast(broadcast), nil
}

func (r broadcastStore) Update(ctx context.Context, broadcast *entity.Broadcast) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.broadcasts[broadcast.ID]; !ok {
		return errors.NotFound("Broadcast", nil)
	}
	r.broadcasts[broadcast.ID] = cloneBroadcast(broadcast)
	r.persist(ctx, CollectionBroadcasts, broadcast.ID, broadcast)
	return nil
}

func (r broadcastStore) ListActive(ctx context.Context, limit, offset int) ([]*entity.Broadcast, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*entity.Broadcast
	for _, b := range r.broadcasts {
		if b.Status == entity.BroadcastActive {
			matched = append(matched, cloneBroadcast(b))
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].IsBoosted != matched[j].IsBoosted {
			return matched[i].IsBoosted
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	total := int64(len(matched))
	return paginate(matched, limit, offset), total, nil
}
