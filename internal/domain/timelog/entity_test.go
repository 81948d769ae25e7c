package timelog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func ts(hour, min int) *time.Time {
	t := time.Date(2025, 6, 2, hour, min, 0, 0, time.UTC)
	return &t
}

func TestWorkedHours(t *testing.T) {
	t.Run("full day with recorded break", func(t *testing.T) {
		breakMins := 30
		tl := Timelog{
			TimeIn:               ts(9, 0),
			TimeOut:              ts(18, 0),
			BreakDurationMinutes: &breakMins,
		}
		assert.InDelta(t, 8.5, tl.WorkedHours(), 0.0001)
	})

	t.Run("no break", func(t *testing.T) {
		tl := Timelog{
			TimeIn:  ts(9, 0),
			TimeOut: ts(17, 0),
		}
		assert.InDelta(t, 8.0, tl.WorkedHours(), 0.0001)
	})

	t.Run("zero when still clocked in", func(t *testing.T) {
		tl := Timelog{TimeIn: ts(9, 0)}
		assert.Equal(t, 0.0, tl.WorkedHours())
	})

	t.Run("zero when never clocked in", func(t *testing.T) {
		tl := Timelog{TimeOut: ts(18, 0)}
		assert.Equal(t, 0.0, tl.WorkedHours())
	})
}

func TestWorkedHoursAdjustmentOverlay(t *testing.T) {
	breakMins := 60
	adjBreak := 30

	t.Run("adjusted endpoints win over raw punches", func(t *testing.T) {
		tl := Timelog{
			TimeIn:               ts(9, 12),
			TimeOut:              ts(17, 48),
			BreakDurationMinutes: &breakMins,
			AdjustedTimeIn:       ts(9, 0),
			AdjustedTimeOut:      ts(18, 0),
			AdjustedBreakMinutes: &adjBreak,
		}
		assert.InDelta(t, 8.5, tl.WorkedHours(), 0.0001)
	})

	t.Run("partial overlay falls back per field", func(t *testing.T) {
		tl := Timelog{
			TimeIn:               ts(9, 0),
			TimeOut:              ts(17, 0),
			BreakDurationMinutes: &breakMins,
			AdjustedTimeOut:      ts(18, 0),
		}
		// raw in 09:00, adjusted out 18:00, raw break 60
		assert.InDelta(t, 8.0, tl.WorkedHours(), 0.0001)
	})

	t.Run("adjusted out without any raw out still counts", func(t *testing.T) {
		tl := Timelog{
			TimeIn:          ts(9, 0),
			AdjustedTimeOut: ts(13, 0),
		}
		assert.InDelta(t, 4.0, tl.WorkedHours(), 0.0001)
	})
}

func TestEffectiveBreakMinutes(t *testing.T) {
	recorded := 45
	adjusted := 20

	tl := Timelog{}
	assert.Equal(t, 0, tl.EffectiveBreakMinutes())

	tl.BreakDurationMinutes = &recorded
	assert.Equal(t, 45, tl.EffectiveBreakMinutes())

	tl.AdjustedBreakMinutes = &adjusted
	assert.Equal(t, 20, tl.EffectiveBreakMinutes())
}
