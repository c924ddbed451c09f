package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/apexhr/hrm-backend-go/internal/domain/employee"
	"github.com/apexhr/hrm-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type EmployeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &EmployeeRepositoryImpl{db: db}
}

const employeeColumns = `id, user_id, company_id, department_id, office_id, employee_code,
	full_name, email, phone_number, hire_date, resignation_date,
	employment_type, employment_status, base_wage, created_at, updated_at`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.ID, &e.UserID, &e.CompanyID, &e.DepartmentID, &e.OfficeID, &e.EmployeeCode,
		&e.FullName, &e.Email, &e.PhoneNumber, &e.HireDate, &e.ResignationDate,
		&e.EmploymentType, &e.EmploymentStatus, &e.BaseWage, &e.CreatedAt, &e.UpdatedAt,
	)
	return e, err
}

func (r *EmployeeRepositoryImpl) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	querier := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employees (
			id, user_id, company_id, department_id, office_id, employee_code,
			full_name, email, phone_number, hire_date,
			employment_type, employment_status, base_wage
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING ` + employeeColumns

	created, err := scanEmployee(querier.QueryRow(ctx, query,
		newID(), emp.UserID, emp.CompanyID, emp.DepartmentID, emp.OfficeID, emp.EmployeeCode,
		emp.FullName, emp.Email, emp.PhoneNumber, emp.HireDate,
		emp.EmploymentType, emp.EmploymentStatus, emp.BaseWage,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			if strings.Contains(pgErr.ConstraintName, "employee_code") {
				return employee.Employee{}, employee.ErrEmployeeCodeExists
			}
			return employee.Employee{}, employee.ErrEmailExists
		}
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return created, nil
}

func (r *EmployeeRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (employee.Employee, error) {
	querier := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE id = $1 AND company_id = $2 AND deleted_at IS NULL`

	e, err := scanEmployee(querier.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return e, nil
}

func (r *EmployeeRepositoryImpl) List(ctx context.Context, companyID string, filter employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	querier := GetQuerier(ctx, r.db)

	conditions := []string{"company_id = $1", "deleted_at IS NULL"}
	args := []interface{}{companyID}

	if filter.Search != nil && *filter.Search != "" {
		args = append(args, "%"+*filter.Search+"%")
		conditions = append(conditions, fmt.Sprintf("(full_name ILIKE $%d OR employee_code ILIKE $%d)", len(args), len(args)))
	}
	if filter.Status != nil && *filter.Status != "" {
		args = append(args, *filter.Status)
		conditions = append(conditions, fmt.Sprintf("employment_status = $%d", len(args)))
	}

	where := strings.Join(conditions, " AND ")

	var total int64
	countQuery := "SELECT COUNT(*) FROM employees WHERE " + where
	if err := querier.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count employees: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	args = append(args, filter.Limit, offset)
	query := fmt.Sprintf(`
		SELECT %s
		FROM employees
		WHERE %s
		ORDER BY employee_code
		LIMIT $%d OFFSET $%d`, employeeColumns, where, len(args)-1, len(args))

	rows, err := querier.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return employees, total, nil
}

func (r *EmployeeRepositoryImpl) Update(ctx context.Context, companyID string, req employee.UpdateEmployeeRequest) error {
	querier := GetQuerier(ctx, r.db)

	sets := []string{"updated_at = NOW()"}
	args := []interface{}{req.ID, companyID}

	addSet := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if req.FullName != nil {
		addSet("full_name", *req.FullName)
	}
	if req.PhoneNumber != nil {
		addSet("phone_number", *req.PhoneNumber)
	}
	if req.DepartmentID != nil {
		addSet("department_id", *req.DepartmentID)
	}
	if req.OfficeID != nil {
		addSet("office_id", *req.OfficeID)
	}
	if req.EmploymentType != nil {
		addSet("employment_type", *req.EmploymentType)
	}
	if req.BaseWage != nil {
		addSet("base_wage", *req.BaseWage)
	}

	query := fmt.Sprintf(`
		UPDATE employees
		SET %s
		WHERE id = $1 AND company_id = $2 AND deleted_at IS NULL`, strings.Join(sets, ", "))

	tag, err := querier.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}

func (r *EmployeeRepositoryImpl) Delete(ctx context.Context, id string, companyID string) error {
	querier := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND company_id = $2 AND deleted_at IS NULL`

	tag, err := querier.Exec(ctx, query, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}
