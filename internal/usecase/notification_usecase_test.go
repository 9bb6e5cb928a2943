package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sellit/internal/domain/entity"
	"sellit/pkg/errors"
)

func seedNotification(t *testing.T, f *fixture, recipientID, title string) *entity.Notification {
	t.Helper()
	n := &entity.Notification{
		RecipientID: recipientID,
		Type:        entity.NotificationSystem,
		Title:       title,
		Message:     "message body",
		Action:      &entity.ActionPayload{Type: entity.ActionNavigateTab, Tab: "Home"},
	}
	require.NoError(t, f.store.Notifications().Create(context.Background(), n))
	return n
}

func TestMarkAllReadIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	seedNotification(t, f, "user-1", "first")
	seedNotification(t, f, "user-1", "second")
	seedNotification(t, f, "user-2", "other")

	require.NoError(t, f.notifications.MarkAllRead(ctx, "user-1"))
	require.NoError(t, f.notifications.MarkAllRead(ctx, "user-1"))

	feed, _, err := f.notifications.ListNotifications(ctx, "user-1", 10, 0)
	require.NoError(t, err)
	require.Len(t, feed.Notifications, 2)
	for _, n := range feed.Notifications {
		assert.True(t, n.IsRead)
	}
	assert.Equal(t, 0, feed.UnreadCount)

	// Other recipients are untouched.
	other, _, err := f.notifications.ListNotifications(ctx, "user-2", 10, 0)
	require.NoError(t, err)
	require.Len(t, other.Notifications, 1)
	assert.False(t, other.Notifications[0].IsRead)
}

func TestDeleteMissingNotificationIsANoOp(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	assert.NoError(t, f.notifications.DeleteNotification(ctx, "user-1", "no-such-id"))
}

func TestNotificationOperationsAreRecipientScoped(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	n := seedNotification(t, f, "user-1", "private")

	_, err := f.notifications.MarkRead(ctx, "user-2", n.ID)
	assert.True(t, errors.Is(err, "FORBIDDEN"))

	err = f.notifications.DeleteNotification(ctx, "user-2", n.ID)
	assert.True(t, errors.Is(err, "FORBIDDEN"))

	marked, err := f.notifications.MarkRead(ctx, "user-1", n.ID)
	require.NoError(t, err)
	assert.True(t, marked.IsRead)

	require.NoError(t, f.notifications.DeleteNotification(ctx, "user-1", n.ID))
	feed, _, err := f.notifications.ListNotifications(ctx, "user-1", 10, 0)
	require.NoError(t, err)
	assert.Empty(t, feed.Notifications)
}

func TestClearAllRemovesOnlyTheRecipient(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	seedNotification(t, f, "user-1", "first")
	seedNotification(t, f, "user-1", "second")
	seedNotification(t, f, "user-2", "other")

	require.NoError(t, f.notifications.ClearAll(ctx, "user-1"))

	feed, _, err := f.notifications.ListNotifications(ctx, "user-1", 10, 0)
	require.NoError(t, err)
	assert.Empty(t, feed.Notifications)

	other, _, err := f.notifications.ListNotifications(ctx, "user-2", 10, 0)
	require.NoError(t, err)
	assert.Len(t, other.Notifications, 1)
}
