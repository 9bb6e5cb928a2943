package repository

import (
	"context"

	"sellit/internal/domain/entity"
)

type NotificationRepository interface {
	Create(ctx context.Context, notification *entity.Notification) error
	GetByID(ctx context.Context, id string) (*entity.Notification, error)
	Update(ctx context.Context, notification *entity.Notification) error
	// Delete is bulk-safe: deleting an id that is not present is a no-op.
	Delete(ctx context.Context, id string) error
	ListByRecipient(ctx context.Context, recipientID string, limit, offset int) ([]*entity.Notification, int64, error)
	MarkAllRead(ctx context.Context, recipientID string) error
	ClearByRecipient(ctx context.Context, recipientID string) error
}
