package announcement

import "time"

type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityNormal Priority = "NORMAL"
	PriorityHigh   Priority = "HIGH"
	PriorityUrgent Priority = "URGENT"
)

type Announcement struct {
	ID          string
	Title       string
	Content     string
	Priority    Priority
	Active      bool
	CreatedByID string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// DTO / Join
	CreatedByName *string
}
