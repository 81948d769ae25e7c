package job

import "time"

type Position struct {
	ID             string
	Title          string
	Description    string
	Requirements   *string
	Location       *string
	EmploymentType *string
	Active         bool
	PostedDate     time.Time
	UpdatedAt      time.Time
}

type ApplicationStatus string

const (
	ApplicationNew       ApplicationStatus = "NEW"
	ApplicationReviewed  ApplicationStatus = "REVIEWED"
	ApplicationInterview ApplicationStatus = "INTERVIEW"
	ApplicationRejected  ApplicationStatus = "REJECTED"
	ApplicationHired     ApplicationStatus = "HIRED"
)

// Application is a public candidate submission. The resume blob is stored on
// the row, so listing queries must not select it.
type Application struct {
	ID             string
	JobPositionID  string
	FirstName      string
	LastName       string
	Email          string
	Phone          *string
	ResumeFileName *string
	Resume         []byte
	Status         ApplicationStatus
	ReviewNotes    *string
	AppliedDate    time.Time
	UpdatedAt      time.Time

	// DTO / Join
	PositionTitle *string
}
