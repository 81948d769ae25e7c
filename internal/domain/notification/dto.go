package notification

import "time"

// CreateNotificationRequest is the unit of work queued to the background workers
type CreateNotificationRequest struct {
	RecipientID     string
	SenderID        *string
	Type            Type
	Title           string
	Message         string
	RelatedEntityID *string
}

type NotificationResponse struct {
	ID              string     `json:"id"`
	Type            Type       `json:"type"`
	Title           string     `json:"title"`
	Message         string     `json:"message"`
	RelatedEntityID *string    `json:"related_entity_id,omitempty"`
	IsRead          bool       `json:"is_read"`
	ReadAt          *time.Time `json:"read_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	Total         int                    `json:"total"`
	UnreadCount   int                    `json:"unread_count"`
	Page          int                    `json:"page"`
	PageSize      int                    `json:"page_size"`
}

type MarkAsReadRequest struct {
	NotificationIDs []string `json:"notification_ids"`
}

type UnreadCountResponse struct {
	UnreadCount int `json:"unread_count"`
}

type SSETokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
}

type SSEEvent struct {
	Event string               `json:"event"`
	Data  NotificationResponse `json:"data"`
}
