package notification

import (
	"context"
)

// Service defines the notification service interface. Queue methods are
// fire-and-forget; delivery happens on background workers.
type Service interface {
	QueueNotification(ctx context.Context, req CreateNotificationRequest) error
	QueueBulkNotification(ctx context.Context, reqs []CreateNotificationRequest) error

	GetNotifications(ctx context.Context, userID string, page, pageSize int, unreadOnly bool) (*NotificationListResponse, error)
	GetUnreadCount(ctx context.Context, userID string) (int, error)
	MarkAsRead(ctx context.Context, userID string, req MarkAsReadRequest) error
	MarkAllAsRead(ctx context.Context, userID string) error
	Delete(ctx context.Context, userID string, notificationID string) error

	Subscribe(ctx context.Context, userID string) (<-chan SSEEvent, func())
	Stop()
}
