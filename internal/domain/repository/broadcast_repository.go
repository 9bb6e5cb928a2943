package repository

import (
	"context"

	"sellit/internal/domain/entity"
)

type BroadcastRepository interface {
	Create(ctx context.Context, broadcast *entity.Broadcast) error
	GetByID(ctx context.Context, id string) (*entity.Broadcast, error)
	Update(ctx context.Context, broadcast *entity.Broadcast) error
	// ListActive returns active broadcasts boosted-first then newest.
	ListActive(ctx context.Context, limit, offset int) ([]*entity.Broadcast, int64, error)
}
