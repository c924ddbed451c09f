package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/apexhr/hrm-backend-go/internal/domain/leave"
	"github.com/apexhr/hrm-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type LeaveRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRepository(db *database.DB) leave.LeaveRepository {
	return &LeaveRepositoryImpl{db: db}
}

const leaveColumns = `id, employee_id, company_id, leave_type, start_date, end_date,
	total_days, reason, status, decided_by, decided_at, created_at, updated_at`

func scanLeave(row pgx.Row) (leave.LeaveRequest, error) {
	var l leave.LeaveRequest
	err := row.Scan(
		&l.ID, &l.EmployeeID, &l.CompanyID, &l.LeaveType, &l.StartDate, &l.EndDate,
		&l.TotalDays, &l.Reason, &l.Status, &l.DecidedBy, &l.DecidedAt, &l.CreatedAt, &l.UpdatedAt,
	)
	return l, err
}

func (r *LeaveRepositoryImpl) Create(ctx context.Context, req leave.LeaveRequest) (leave.LeaveRequest, error) {
	querier := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_requests (id, employee_id, company_id, leave_type, start_date, end_date, total_days, reason, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + leaveColumns

	created, err := scanLeave(querier.QueryRow(ctx, query,
		newID(), req.EmployeeID, req.CompanyID, req.LeaveType, req.StartDate, req.EndDate,
		req.TotalDays, req.Reason, req.Status,
	))
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return created, nil
}

func (r *LeaveRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (leave.LeaveRequest, error) {
	querier := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveColumns + `
		FROM leave_requests
		WHERE id = $1 AND company_id = $2`

	l, err := scanLeave(querier.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to get leave request: %w", err)
	}

	return l, nil
}

func (r *LeaveRepositoryImpl) HasOverlap(ctx context.Context, employeeID string, start, end time.Time, companyID string) (bool, error) {
	querier := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM leave_requests
			WHERE employee_id = $1 AND company_id = $2
			  AND status IN ('pending', 'approved')
			  AND start_date <= $4 AND end_date >= $3
		)`

	var exists bool
	if err := querier.QueryRow(ctx, query, employeeID, companyID, start, end).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check leave overlap: %w", err)
	}

	return exists, nil
}

func (r *LeaveRepositoryImpl) UpdateStatus(ctx context.Context, id string, companyID string, status leave.RequestStatus, decidedBy string) (leave.LeaveRequest, error) {
	querier := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET status = $3, decided_by = $4, decided_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND company_id = $2
		RETURNING ` + leaveColumns

	updated, err := scanLeave(querier.QueryRow(ctx, query, id, companyID, status, decidedBy))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to update leave request status: %w", err)
	}

	return updated, nil
}

func (r *LeaveRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string, companyID string) ([]leave.LeaveRequest, error) {
	querier := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveColumns + `
		FROM leave_requests
		WHERE employee_id = $1 AND company_id = $2
		ORDER BY start_date DESC`

	rows, err := querier.Query(ctx, query, employeeID, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	defer rows.Close()

	var requests []leave.LeaveRequest
	for rows.Next() {
		l, err := scanLeave(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return requests, nil
}
