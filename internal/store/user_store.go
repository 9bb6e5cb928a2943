package store

import (
	"context"
	"time"

	"sellit/internal/domain/entity"
	"sellit/pkg/errors"
)

type userStore struct{ *EntityStore }

func (r userStore) Upsert(ctx context.Context, user *entity.User) error {
	if user.ID == "" {
		return errors.BadRequest("User id is required", nil)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	if existing, ok := r.users[user.ID]; ok {
		user.CreatedAt = existing.CreatedAt
	} else if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	clone := *user
	r.users[user.ID] = &clone
	r.persist(ctx, CollectionUsers, user.ID, user)
	return nil
}

func (r userStore) GetByID(ctx context.Context, id string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, errors.NotFound("User", nil)
	}
	clone := *user
	return &clone, nil
}
