package position

import "time"

// Position is a job title record. Titles double as authorization predicates
// for HR approval rules, so they are unique.
type Position struct {
	ID          string
	Title       string
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
