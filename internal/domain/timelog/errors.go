package timelog

import "errors"

// Timelog domain errors
var (
	// Punch errors
	ErrAlreadyActive  = errors.New("an active timelog session already exists")
	ErrMissingPhoto   = errors.New("proof photo is required")
	ErrNotActive      = errors.New("no active timelog session")
	ErrNeverClockedIn = errors.New("no timelog for today")
	ErrAlreadyOnBreak = errors.New("break already in progress")
	ErrNotOnBreak     = errors.New("no break in progress")
	ErrNotClockedIn   = errors.New("must be clocked in to start a break")

	// General errors
	ErrTimelogNotFound     = errors.New("timelog not found")
	ErrAdjustmentForbidden = errors.New("not authorized to adjust timelogs")

	// Edit request errors
	ErrEditRequestNotFound   = errors.New("timelog edit request not found")
	ErrEditRequestNotPending = errors.New("timelog edit request has already been processed")
	ErrEditRequestForbidden  = errors.New("not authorized to process this edit request")
)
