package leave

import "errors"

var (
	ErrRequestNotFound     = errors.New("leave request not found")
	ErrBalanceNotFound     = errors.New("leave balance not found")
	ErrRequestNotPending   = errors.New("leave request has already been processed")
	ErrInvalidDateRange    = errors.New("start date must not be after end date")
	ErrPastStartDate       = errors.New("start date must not be in the past")
	ErrOverlappingRequest  = errors.New("an overlapping leave request already exists")
	ErrInsufficientBalance = errors.New("insufficient leave balance")
	ErrApprovalForbidden   = errors.New("not authorized to process this leave request")
	ErrInvalidLeaveType    = errors.New("invalid leave type")
)
