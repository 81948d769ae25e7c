package leave

import (
	"time"
)

type Type string

const (
	TypeAnnual    Type = "ANNUAL"
	TypeSick      Type = "SICK"
	TypePersonal  Type = "PERSONAL"
	TypeEmergency Type = "EMERGENCY"
)

// AllTypes returns every leave type in allocation order.
func AllTypes() []Type {
	return []Type{TypeAnnual, TypeSick, TypePersonal, TypeEmergency}
}

// DefaultAllocation returns the yearly day allocation for a leave type.
func DefaultAllocation(t Type) int {
	switch t {
	case TypeAnnual:
		return 21
	case TypeSick:
		return 10
	case TypePersonal:
		return 5
	case TypeEmergency:
		return 3
	}
	return 0
}

// Balance is one ledger row per (employee, leave type, year). RemainingDays is
// always derived from the other two columns, never stored authoritative.
type Balance struct {
	ID            string
	EmployeeID    string
	LeaveType     Type
	Year          int
	TotalDays     int
	UsedDays      int
	RemainingDays int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Recompute refreshes RemainingDays from TotalDays and UsedDays.
func (b *Balance) Recompute() {
	b.RemainingDays = b.TotalDays - b.UsedDays
}

// AddUsedDays charges n days against the balance. The sole mutation path,
// called on request approval.
func (b *Balance) AddUsedDays(n int) {
	b.UsedDays += n
	b.Recompute()
}

type RequestStatus string

const (
	RequestPending  RequestStatus = "PENDING"
	RequestApproved RequestStatus = "APPROVED"
	RequestRejected RequestStatus = "REJECTED"
)

type Request struct {
	ID               string
	EmployeeID       string
	LeaveType        Type
	StartDate        time.Time
	EndDate          time.Time
	Reason           string
	Status           RequestStatus
	ApproverID       *string
	ApproverComments *string
	RequestDate      time.Time
	UpdatedAt        time.Time

	// DTO / Join
	EmployeeName *string
}

// DaysRequested counts calendar days in the range, both endpoints inclusive.
func (r *Request) DaysRequested() int {
	return int(r.EndDate.Sub(r.StartDate).Hours()/24) + 1
}
