package user

import (
	"strings"
	"time"
)

type Role string

const (
	RoleAdmin    Role = "ADMIN"    // Full access, manages accounts
	RoleHR       Role = "HR"       // HR staff - processes leave and timelog requests
	RoleEmployee Role = "EMPLOYEE" // Regular employee
)

type User struct {
	ID           string
	Username     string
	PasswordHash string
	Role         Role
	PositionID   *string
	Enabled      bool
	FirstName    string
	LastName     string
	Email        string
	Phone        *string
	Address      *string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// DTO / Join
	PositionTitle *string
}

// IsAdmin checks if user has the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsHR checks if user has the HR role
func (u *User) IsHR() bool {
	return u.Role == RoleHR
}

// FullName returns "First Last"
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// PositionTitleContains reports whether the user's position title contains any
// of the given fragments, case-insensitive. Users without a position never match.
func (u *User) PositionTitleContains(fragments ...string) bool {
	if u.PositionTitle == nil {
		return false
	}
	title := strings.ToLower(*u.PositionTitle)
	for _, f := range fragments {
		if strings.Contains(title, strings.ToLower(f)) {
			return true
		}
	}
	return false
}

// HasPositionTitle reports whether the user's position title equals any of the
// given titles exactly.
func (u *User) HasPositionTitle(titles ...string) bool {
	if u.PositionTitle == nil {
		return false
	}
	for _, t := range titles {
		if *u.PositionTitle == t {
			return true
		}
	}
	return false
}

// CanAdjustTimelogs checks if user may adjust timelogs directly: admins always,
// HR only from a senior position.
func (u *User) CanAdjustTimelogs() bool {
	if u.IsAdmin() {
		return true
	}
	return u.IsHR() && u.PositionTitleContains("manager", "supervisor", "lead", "director")
}
