package leave

import "errors"

var (
	ErrLeaveRequestNotFound         = errors.New("leave request not found")
	ErrLeaveRequestAlreadyProcessed = errors.New("leave request already processed")
	ErrLeaveOverlap                 = errors.New("overlapping leave request exists")
	ErrInvalidDateRange             = errors.New("start date must not be after end date")
)
