package attendance

import (
	"context"
	"time"
)

type AttendanceService interface {
	CheckIn(ctx context.Context, req CheckInRequest) (AttendanceResponse, error)
	CheckOut(ctx context.Context, req CheckOutRequest) (AttendanceResponse, error)
	GetPeriodSummary(ctx context.Context, employeeID string, periodStart, periodEnd time.Time) (PeriodSummaryResponse, error)
}
