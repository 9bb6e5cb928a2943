package usecase

import (
	"context"

	"sellit/internal/domain/entity"
	"sellit/internal/domain/repository"
	ws "sellit/internal/infrastructure/websocket"
	"sellit/pkg/logger"
)

// Notifier emits system notifications and pushes them to connected clients.
// Emission is best effort everywhere it is used: a failed notification never
// fails the lifecycle operation that produced it.
type Notifier struct {
	notificationRepo repository.NotificationRepository
	wsManager        *ws.Manager
}

func NewNotifier(notificationRepo repository.NotificationRepository, wsManager *ws.Manager) *Notifier {
	return &Notifier{
		notificationRepo: notificationRepo,
		wsManager:        wsManager,
	}
}

func (n *Notifier) Notify(ctx context.Context, notification *entity.Notification) {
	if err := n.notificationRepo.Create(ctx, notification); err != nil {
		logger.Warn("Failed to store notification for %s: %v", notification.RecipientID, err)
		return
	}

	if n.wsManager != nil {
		n.wsManager.SendToUser(notification.RecipientID, ws.Event{
			Type:    "notification",
			Payload: notification,
		})
	}
}
