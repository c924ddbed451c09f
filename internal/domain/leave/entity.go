package leave

import "time"

type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusApproved RequestStatus = "approved"
	RequestStatusRejected RequestStatus = "rejected"
)

type LeaveRequest struct {
	ID         string
	EmployeeID string
	CompanyID  string
	LeaveType  string
	StartDate  time.Time
	EndDate    time.Time
	TotalDays  int
	Reason     *string
	Status     RequestStatus
	DecidedBy  *string
	DecidedAt  *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
