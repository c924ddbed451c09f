package attendance

import "time"

type Status string

const (
	StatusPresent Status = "present"
	StatusLeave   Status = "leave"
	StatusAbsent  Status = "absent"
)

type Attendance struct {
	ID         string
	EmployeeID string
	CompanyID  string
	Date       time.Time
	CheckInAt  *time.Time
	CheckOutAt *time.Time
	Status     Status
	Notes      *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// PeriodSummary aggregates attendance facts for one employee over a pay period.
// This is the input the salary slip generator consumes.
type PeriodSummary struct {
	EmployeeID  string
	WorkingDays int
	PresentDays int
	LeaveDays   int
}
