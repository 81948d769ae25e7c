package timelog

import (
	"time"
)

type Status string

const (
	StatusClockedOut Status = "CLOCKED_OUT"
	StatusClockedIn  Status = "CLOCKED_IN"
	StatusOnBreak    Status = "ON_BREAK"
)

// Timelog is one attendance row per employee per calendar day. Raw punches
// are never overwritten; corrections live in the Adjusted* overlay columns.
type Timelog struct {
	ID         string
	EmployeeID string
	LogDate    time.Time
	TimeIn     *time.Time
	TimeOut    *time.Time
	BreakStart *time.Time
	BreakEnd   *time.Time
	Status     Status

	BreakDurationMinutes *int
	TotalWorkedHours     float64

	ClockInPhoto  *string
	ClockOutPhoto *string

	AdjustedTimeIn       *time.Time
	AdjustedTimeOut      *time.Time
	AdjustedBreakMinutes *int
	AdjustmentReason     *string
	AdjustedByID         *string
	AdjustmentDate       *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO / Join
	EmployeeName     *string
	EmployeeUsername *string
}

// EffectiveTimeIn returns the adjusted clock-in when present, otherwise the raw punch.
func (t *Timelog) EffectiveTimeIn() *time.Time {
	if t.AdjustedTimeIn != nil {
		return t.AdjustedTimeIn
	}
	return t.TimeIn
}

// EffectiveTimeOut returns the adjusted clock-out when present, otherwise the raw punch.
func (t *Timelog) EffectiveTimeOut() *time.Time {
	if t.AdjustedTimeOut != nil {
		return t.AdjustedTimeOut
	}
	return t.TimeOut
}

// EffectiveBreakMinutes returns the adjusted break duration when present,
// otherwise the recorded one, otherwise zero.
func (t *Timelog) EffectiveBreakMinutes() int {
	if t.AdjustedBreakMinutes != nil {
		return *t.AdjustedBreakMinutes
	}
	if t.BreakDurationMinutes != nil {
		return *t.BreakDurationMinutes
	}
	return 0
}

// WorkedHours computes total worked hours from the effective endpoints minus
// the effective break. Zero when either endpoint is missing.
func (t *Timelog) WorkedHours() float64 {
	in := t.EffectiveTimeIn()
	out := t.EffectiveTimeOut()
	if in == nil || out == nil {
		return 0
	}
	minutes := out.Sub(*in).Minutes() - float64(t.EffectiveBreakMinutes())
	return minutes / 60.0
}

type EditRequestStatus string

const (
	EditRequestPending  EditRequestStatus = "PENDING"
	EditRequestApproved EditRequestStatus = "APPROVED"
	EditRequestRejected EditRequestStatus = "REJECTED"
)

// EditRequest is an employee's petition to correct a timelog, routed to one
// HR user. A decision records status and response only; applying times stays
// a separate adjust operation.
type EditRequest struct {
	ID           string
	TimelogID    string
	EmployeeID   string
	AssignedHrID string
	Reason       string

	RequestedTimeIn       *time.Time
	RequestedTimeOut      *time.Time
	RequestedBreakMinutes *int

	Status        EditRequestStatus
	HrResponse    *string
	ProcessedByID *string
	ProcessedDate *time.Time
	RequestDate   time.Time

	// DTO / Join
	EmployeeName *string
	LogDate      *time.Time
}
