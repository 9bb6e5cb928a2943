package store

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"sellit/internal/domain/entity"
	"sellit/pkg/errors"
)

type notificationStore struct{ *EntityStore }

func cloneNotification(n *entity.Notification) *entity.Notification {
	clone := *n
	if n.Action != nil {
		action := *n.Action
		clone.Action = &action
	}
	return &clone
}

func (r notificationStore) Create(ctx context.Context, notification *entity.Notification) error {
	if notification.Action != nil && !notification.Action.Valid() {
		return errors.BadRequest("Notification action payload is malformed", nil)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if notification.ID == "" {
		notification.ID = uuid.New().String()
	}
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now()
	}

	r.notifications[notification.ID] = cloneNotification(notification)
	r.persist(ctx, CollectionNotifications, notification.ID, notification)
	return nil
}

func (r notificationStore) GetByID(ctx context.Context, id string) (*entity.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	notification, ok := r.notifications[id]
	if !ok {
		return nil, errors.NotFound("Notification", nil)
	}
	return cloneNotification(notification), nil
}

func (r notificationStore) Update(ctx context.Context, notification *entity.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.notifications[notification.ID]; !ok {
		return errors.NotFound("Notification", nil)
	}
	r.notifications[notification.ID] = cloneNotification(notification)
	r.persist(ctx, CollectionNotifications, notification.ID, notification)
	return nil
}

// Delete is bulk-safe: a missing id is a no-op, not an error.
func (r notificationStore) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.notifications[id]; !ok {
		return nil
	}
	delete(r.notifications, id)
	r.unpersist(ctx, CollectionNotifications, id)
	return nil
}

func (r notificationStore) ListByRecipient(ctx context.Context, recipientID string, limit, offset int) ([]*entity.Notification, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*entity.Notification
	for _, n := range r.notifications {
		if n.RecipientID == recipientID {
			matched = append(matched, cloneNotification(n))
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	total := int64(len(matched))
	return paginate(matched, limit, offset), total, nil
}

func (r notificationStore) MarkAllRead(ctx context.Context, recipientID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, n := range r.notifications {
		if n.RecipientID == recipientID && !n.IsRead {
			n.IsRead = true
			r.persist(ctx, CollectionNotifications, n.ID, n)
		}
	}
	return nil
}

func (r notificationStore) ClearByRecipient(ctx context.Context, recipientID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, n := range r.notifications {
		if n.RecipientID == recipientID {
			delete(r.notifications, id)
			r.unpersist(ctx, CollectionNotifications, id)
		}
	}
	return nil
}
