package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/apexhr/hrm-backend-go/internal/domain/attendance"
	"github.com/apexhr/hrm-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type AttendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &AttendanceRepositoryImpl{db: db}
}

const attendanceColumns = `id, employee_id, company_id, date, check_in_at, check_out_at, status, notes, created_at, updated_at`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var a attendance.Attendance
	err := row.Scan(
		&a.ID, &a.EmployeeID, &a.CompanyID, &a.Date, &a.CheckInAt,
		&a.CheckOutAt, &a.Status, &a.Notes, &a.CreatedAt, &a.UpdatedAt,
	)
	return a, err
}

func (r *AttendanceRepositoryImpl) GetByEmployeeDate(ctx context.Context, employeeID string, date time.Time, companyID string) (attendance.Attendance, error) {
	querier := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE employee_id = $1 AND date = $2 AND company_id = $3`

	a, err := scanAttendance(querier.QueryRow(ctx, query, employeeID, date, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance: %w", err)
	}

	return a, nil
}

func (r *AttendanceRepositoryImpl) Create(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	querier := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendances (id, employee_id, company_id, date, check_in_at, check_out_at, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + attendanceColumns

	created, err := scanAttendance(querier.QueryRow(ctx, query,
		newID(), att.EmployeeID, att.CompanyID, att.Date, att.CheckInAt, att.CheckOutAt, att.Status, att.Notes,
	))
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return created, nil
}

func (r *AttendanceRepositoryImpl) SetCheckOut(ctx context.Context, id string, companyID string, checkOutAt time.Time) (attendance.Attendance, error) {
	querier := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendances
		SET check_out_at = $3, updated_at = NOW()
		WHERE id = $1 AND company_id = $2
		RETURNING ` + attendanceColumns

	updated, err := scanAttendance(querier.QueryRow(ctx, query, id, companyID, checkOutAt))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to set check out: %w", err)
	}

	return updated, nil
}

// GetPeriodSummary counts working, present and approved-leave days in one
// round trip. Working days are weekdays in the period; the leave count comes
// from approved leave requests, not attendance rows, so unmarked leave days
// still show up as absences.
func (r *AttendanceRepositoryImpl) GetPeriodSummary(ctx context.Context, employeeID string, periodStart, periodEnd time.Time, companyID string) (attendance.PeriodSummary, error) {
	querier := GetQuerier(ctx, r.db)

	query := `
		SELECT
			(SELECT COUNT(*)
			 FROM generate_series($2::date, $3::date, '1 day') AS d
			 WHERE EXTRACT(ISODOW FROM d) < 6),
			(SELECT COUNT(*)
			 FROM attendances
			 WHERE employee_id = $1 AND company_id = $4
			   AND date BETWEEN $2 AND $3 AND status = 'present'),
			(SELECT COALESCE(SUM(
				LEAST(end_date, $3::date) - GREATEST(start_date, $2::date) + 1), 0)
			 FROM leave_requests
			 WHERE employee_id = $1 AND company_id = $4
			   AND status = 'approved'
			   AND start_date <= $3 AND end_date >= $2)`

	summary := attendance.PeriodSummary{EmployeeID: employeeID}
	err := querier.QueryRow(ctx, query, employeeID, periodStart, periodEnd, companyID).Scan(
		&summary.WorkingDays, &summary.PresentDays, &summary.LeaveDays,
	)
	if err != nil {
		return attendance.PeriodSummary{}, fmt.Errorf("failed to get period summary: %w", err)
	}

	return summary, nil
}
