package leave

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDaysRequestedInclusive(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  int
	}{
		{"single day", day(2025, 6, 2), day(2025, 6, 2), 1},
		{"work week", day(2025, 6, 2), day(2025, 6, 6), 5},
		{"across month boundary", day(2025, 6, 28), day(2025, 7, 2), 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Request{StartDate: tt.start, EndDate: tt.end}
			assert.Equal(t, tt.want, r.DaysRequested())
		})
	}
}

func TestBalanceRecompute(t *testing.T) {
	b := Balance{TotalDays: 21, UsedDays: 0}
	b.Recompute()
	assert.Equal(t, 21, b.RemainingDays)

	b.AddUsedDays(5)
	assert.Equal(t, 5, b.UsedDays)
	assert.Equal(t, 16, b.RemainingDays)

	b.AddUsedDays(16)
	assert.Equal(t, 0, b.RemainingDays)
}

func TestDefaultAllocation(t *testing.T) {
	assert.Equal(t, 21, DefaultAllocation(TypeAnnual))
	assert.Equal(t, 10, DefaultAllocation(TypeSick))
	assert.Equal(t, 5, DefaultAllocation(TypePersonal))
	assert.Equal(t, 3, DefaultAllocation(TypeEmergency))
	assert.Equal(t, 0, DefaultAllocation(Type("UNKNOWN")))
}
