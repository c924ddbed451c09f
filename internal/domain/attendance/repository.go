package attendance

import (
	"context"
	"time"
)

type AttendanceRepository interface {
	GetByEmployeeDate(ctx context.Context, employeeID string, date time.Time, companyID string) (Attendance, error)
	Create(ctx context.Context, att Attendance) (Attendance, error)
	SetCheckOut(ctx context.Context, id string, companyID string, checkOutAt time.Time) (Attendance, error)
	GetPeriodSummary(ctx context.Context, employeeID string, periodStart, periodEnd time.Time, companyID string) (PeriodSummary, error)
}
