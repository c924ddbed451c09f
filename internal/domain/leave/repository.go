package leave

import (
	"context"
	"time"
)

type LeaveRepository interface {
	Create(ctx context.Context, req LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string, companyID string) (LeaveRequest, error)
	HasOverlap(ctx context.Context, employeeID string, start, end time.Time, companyID string) (bool, error)
	UpdateStatus(ctx context.Context, id string, companyID string, status RequestStatus, decidedBy string) (LeaveRequest, error)
	ListByEmployee(ctx context.Context, employeeID string, companyID string) ([]LeaveRequest, error)
}
