package notification

import (
	"time"
)

// Type represents the type of notification
type Type string

const (
	TypeLeaveRequest         Type = "leave_request"
	TypeLeaveApproved        Type = "leave_approved"
	TypeLeaveRejected        Type = "leave_rejected"
	TypeTimelogAdjusted      Type = "timelog_adjusted"
	TypeEditRequest          Type = "timelog_edit_request"
	TypeEditRequestProcessed Type = "timelog_edit_request_processed"
	TypeAnnouncement         Type = "announcement"
	TypeJobApplication       Type = "job_application"
)

// Notification represents a notification entity
type Notification struct {
	ID              string
	RecipientID     string
	SenderID        *string
	Type            Type
	Title           string
	Message         string
	RelatedEntityID *string
	IsRead          bool
	ReadAt          *time.Time
	CreatedAt       time.Time
}
