package usecase

import (
	"context"

	"sellit/internal/domain/entity"
	"sellit/internal/domain/repository"
	"sellit/pkg/errors"
)

type NotificationUseCase struct {
	notificationRepo repository.NotificationRepository
}

func NewNotificationUseCase(notificationRepo repository.NotificationRepository) *NotificationUseCase {
	return &NotificationUseCase{notificationRepo: notificationRepo}
}

// NotificationFeed pairs a page of notifications with the recipient's total
// unread count.
type NotificationFeed struct {
	Notifications []*entity.Notification `json:"notifications"`
	UnreadCount   int                    `json:"unread_count"`
}

func (uc *NotificationUseCase) ListNotifications(ctx context.Context, recipientID string, limit, offset int) (*NotificationFeed, int64, error) {
	notifications, total, err := uc.notificationRepo.ListByRecipient(ctx, recipientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	all, _, err := uc.notificationRepo.ListByRecipient(ctx, recipientID, 0, 0)
	if err != nil {
		return nil, 0, err
	}
	unread := 0
	for _, n := range all {
		if !n.IsRead {
			unread++
		}
	}

	return &NotificationFeed{Notifications: notifications, UnreadCount: unread}, total, nil
}

func (uc *NotificationUseCase) MarkRead(ctx context.Context, recipientID, id string) (*entity.Notification, error) {
	notification, err := uc.notificationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if notification.RecipientID != recipientID {
		return nil, errors.Forbidden("You don't have permission to update this notification", nil)
	}
	if notification.IsRead {
		return notification, nil
	}

	notification.IsRead = true
	if err := uc.notificationRepo.Update(ctx, notification); err != nil {
		return nil, err
	}
	return notification, nil
}

// MarkAllRead is idempotent; running it twice leaves the same state.
func (uc *NotificationUseCase) MarkAllRead(ctx context.Context, recipientID string) error {
	return uc.notificationRepo.MarkAllRead(ctx, recipientID)
}

// DeleteNotification removes one notification. A missing id is treated as
// already deleted so bulk client sweeps never half-fail.
func (uc *NotificationUseCase) DeleteNotification(ctx context.Context, recipientID, id string) error {
	notification, err := uc.notificationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, "NOT_FOUND") {
			return nil
		}
		return err
	}
	if notification.RecipientID != recipientID {
		return errors.Forbidden("You don't have permission to delete this notification", nil)
	}
	return uc.notificationRepo.Delete(ctx, id)
}

func (uc *NotificationUseCase) ClearAll(ctx context.Context, recipientID string) error {
	return uc.notificationRepo.ClearByRecipient(ctx, recipientID)
}
