package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/apexhr/hrm-backend-go/internal/domain/salary"
	"github.com/apexhr/hrm-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type SlipRepositoryImpl struct {
	db *database.DB
}

func NewSlipRepository(db *database.DB) salary.SlipRepository {
	return &SlipRepositoryImpl{db: db}
}

const slipColumns = `s.id, s.employee_id, s.company_id, s.structure_id, s.period_start, s.period_end,
	s.working_days, s.present_days, s.leave_days, s.absent_days,
	s.gross_salary, s.total_deductions, s.loss_of_pay, s.net_salary,
	s.snapshot, s.status, s.approved_by, s.approved_at, s.paid_by, s.paid_at,
	s.payment_mode, s.payment_reference, s.cancel_reason, s.created_at, s.updated_at`

func scanSlip(row pgx.Row, withEmployee bool) (salary.Slip, error) {
	var slip salary.Slip
	var snapshot []byte

	dest := []interface{}{
		&slip.ID, &slip.EmployeeID, &slip.CompanyID, &slip.StructureID, &slip.PeriodStart, &slip.PeriodEnd,
		&slip.WorkingDays, &slip.PresentDays, &slip.LeaveDays, &slip.AbsentDays,
		&slip.GrossSalary, &slip.TotalDeductions, &slip.LossOfPay, &slip.NetSalary,
		&snapshot, &slip.Status, &slip.ApprovedBy, &slip.ApprovedAt, &slip.PaidBy, &slip.PaidAt,
		&slip.PaymentMode, &slip.PaymentReference, &slip.CancelReason, &slip.CreatedAt, &slip.UpdatedAt,
	}
	if withEmployee {
		dest = append(dest, &slip.EmployeeName, &slip.EmployeeCode)
	}

	if err := row.Scan(dest...); err != nil {
		return salary.Slip{}, err
	}

	if err := json.Unmarshal(snapshot, &slip.Snapshot); err != nil {
		return salary.Slip{}, fmt.Errorf("failed to decode slip snapshot: %w", err)
	}

	return slip, nil
}

func (r *SlipRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (salary.Slip, error) {
	querier := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + slipColumns + `, e.full_name, e.employee_code
		FROM salary_slips s
		JOIN employees e ON e.id = s.employee_id
		WHERE s.id = $1 AND s.company_id = $2`

	slip, err := scanSlip(querier.QueryRow(ctx, query, id, companyID), true)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return salary.Slip{}, salary.ErrSlipNotFound
		}
		return salary.Slip{}, fmt.Errorf("failed to get slip: %w", err)
	}

	return slip, nil
}

func (r *SlipRepositoryImpl) GetByEmployeePeriodForUpdate(ctx context.Context, employeeID string, periodEnd time.Time, companyID string) (salary.Slip, error) {
	querier := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + slipColumns + `
		FROM salary_slips s
		WHERE s.employee_id = $1 AND s.period_end = $2 AND s.company_id = $3
		  AND s.status <> 'cancelled'
		FOR UPDATE`

	slip, err := scanSlip(querier.QueryRow(ctx, query, employeeID, periodEnd, companyID), false)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return salary.Slip{}, salary.ErrSlipNotFound
		}
		return salary.Slip{}, fmt.Errorf("failed to get slip for period: %w", err)
	}

	return slip, nil
}

func (r *SlipRepositoryImpl) GetByIDForUpdate(ctx context.Context, id string, companyID string) (salary.Slip, error) {
	querier := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + slipColumns + `
		FROM salary_slips s
		WHERE s.id = $1 AND s.company_id = $2
		FOR UPDATE`

	slip, err := scanSlip(querier.QueryRow(ctx, query, id, companyID), false)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return salary.Slip{}, salary.ErrSlipNotFound
		}
		return salary.Slip{}, fmt.Errorf("failed to get slip for update: %w", err)
	}

	return slip, nil
}

func (r *SlipRepositoryImpl) Insert(ctx context.Context, slip salary.Slip) (salary.Slip, error) {
	querier := GetQuerier(ctx, r.db)

	snapshot, err := json.Marshal(slip.Snapshot)
	if err != nil {
		return salary.Slip{}, fmt.Errorf("failed to encode slip snapshot: %w", err)
	}

	query := `
		INSERT INTO salary_slips AS s (
			id, employee_id, company_id, structure_id, period_start, period_end,
			working_days, present_days, leave_days, absent_days,
			gross_salary, total_deductions, loss_of_pay, net_salary,
			snapshot, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING ` + slipColumns

	created, err := scanSlip(querier.QueryRow(ctx, query,
		newID(), slip.EmployeeID, slip.CompanyID, slip.StructureID, slip.PeriodStart, slip.PeriodEnd,
		slip.WorkingDays, slip.PresentDays, slip.LeaveDays, slip.AbsentDays,
		slip.GrossSalary, slip.TotalDeductions, slip.LossOfPay, slip.NetSalary,
		snapshot, slip.Status,
	), false)
	if err != nil {
		return salary.Slip{}, fmt.Errorf("failed to insert slip: %w", err)
	}

	return created, nil
}

// ReplaceDraft overwrites a draft slip's computed fields in place, keeping its
// id. Callers must have verified under lock that the slip is still a draft.
func (r *SlipRepositoryImpl) ReplaceDraft(ctx context.Context, slip salary.Slip) (salary.Slip, error) {
	querier := GetQuerier(ctx, r.db)

	snapshot, err := json.Marshal(slip.Snapshot)
	if err != nil {
		return salary.Slip{}, fmt.Errorf("failed to encode slip snapshot: %w", err)
	}

	query := `
		UPDATE salary_slips AS s
		SET structure_id = $2, period_start = $3,
			working_days = $4, present_days = $5, leave_days = $6, absent_days = $7,
			gross_salary = $8, total_deductions = $9, loss_of_pay = $10, net_salary = $11,
			snapshot = $12, status = $13, updated_at = NOW()
		WHERE s.id = $1 AND s.status = 'draft'
		RETURNING ` + slipColumns

	updated, err := scanSlip(querier.QueryRow(ctx, query,
		slip.ID, slip.StructureID, slip.PeriodStart,
		slip.WorkingDays, slip.PresentDays, slip.LeaveDays, slip.AbsentDays,
		slip.GrossSalary, slip.TotalDeductions, slip.LossOfPay, slip.NetSalary,
		snapshot, slip.Status,
	), false)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return salary.Slip{}, salary.ErrSlipLocked
		}
		return salary.Slip{}, fmt.Errorf("failed to replace draft slip: %w", err)
	}

	return updated, nil
}

func (r *SlipRepositoryImpl) UpdateStatus(ctx context.Context, slip salary.Slip) (salary.Slip, error) {
	querier := GetQuerier(ctx, r.db)

	query := `
		UPDATE salary_slips AS s
		SET status = $2, approved_by = $3, approved_at = $4, paid_by = $5, paid_at = $6,
			payment_mode = $7, payment_reference = $8, cancel_reason = $9, updated_at = NOW()
		WHERE s.id = $1
		RETURNING ` + slipColumns

	updated, err := scanSlip(querier.QueryRow(ctx, query,
		slip.ID, slip.Status, slip.ApprovedBy, slip.ApprovedAt, slip.PaidBy, slip.PaidAt,
		slip.PaymentMode, slip.PaymentReference, slip.CancelReason,
	), false)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return salary.Slip{}, salary.ErrSlipNotFound
		}
		return salary.Slip{}, fmt.Errorf("failed to update slip status: %w", err)
	}

	return updated, nil
}

func (r *SlipRepositoryImpl) List(ctx context.Context, companyID string, filter salary.SlipFilter) ([]salary.Slip, int64, error) {
	querier := GetQuerier(ctx, r.db)

	conditions := []string{"s.company_id = $1"}
	args := []interface{}{companyID}

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		args = append(args, *filter.EmployeeID)
		conditions = append(conditions, fmt.Sprintf("s.employee_id = $%d", len(args)))
	}
	if filter.Status != nil && *filter.Status != "" {
		args = append(args, *filter.Status)
		conditions = append(conditions, fmt.Sprintf("s.status = $%d", len(args)))
	}

	where := strings.Join(conditions, " AND ")

	var total int64
	countQuery := "SELECT COUNT(*) FROM salary_slips s WHERE " + where
	if err := querier.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count slips: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	args = append(args, filter.Limit, offset)
	query := fmt.Sprintf(`
		SELECT %s, e.full_name, e.employee_code
		FROM salary_slips s
		JOIN employees e ON e.id = s.employee_id
		WHERE %s
		ORDER BY s.period_end DESC, e.employee_code
		LIMIT $%d OFFSET $%d`, slipColumns, where, len(args)-1, len(args))

	rows, err := querier.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list slips: %w", err)
	}
	defer rows.Close()

	var slips []salary.Slip
	for rows.Next() {
		slip, err := scanSlip(rows, true)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan slip: %w", err)
		}
		slips = append(slips, slip)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return slips, total, nil
}
