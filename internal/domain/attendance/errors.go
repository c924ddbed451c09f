package attendance

import "errors"

var (
	ErrAttendanceNotFound  = errors.New("attendance record not found")
	ErrAlreadyCheckedIn    = errors.New("already checked in today")
	ErrNotCheckedIn        = errors.New("no open check-in found for today")
	ErrAlreadyCheckedOut   = errors.New("already checked out today")
	ErrInvalidPeriodBounds = errors.New("period start must not be after period end")
)
