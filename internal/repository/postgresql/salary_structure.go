package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/apexhr/hrm-backend-go/internal/domain/salary"
	"github.com/apexhr/hrm-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type StructureRepositoryImpl struct {
	db *database.DB
}

func NewStructureRepository(db *database.DB) salary.StructureRepository {
	return &StructureRepositoryImpl{db: db}
}

const structureColumns = `id, employee_id, company_id, effective_from, effective_to,
	wage_amount, pay_frequency, status, created_by, created_at, updated_at`

func scanStructure(row pgx.Row) (salary.Structure, error) {
	var s salary.Structure
	err := row.Scan(
		&s.ID, &s.EmployeeID, &s.CompanyID, &s.EffectiveFrom, &s.EffectiveTo,
		&s.WageAmount, &s.PayFrequency, &s.Status, &s.CreatedBy, &s.CreatedAt, &s.UpdatedAt,
	)
	return s, err
}

// GetActiveByEmployeeForUpdate locks the active structure row. A partial
// unique index on (employee_id) WHERE status = 'active' guarantees at most one
// row qualifies, so concurrent versioning calls for the same employee
// serialize here.
func (r *StructureRepositoryImpl) GetActiveByEmployeeForUpdate(ctx context.Context, employeeID string, companyID string) (salary.Structure, error) {
	querier := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + structureColumns + `
		FROM salary_structures
		WHERE employee_id = $1 AND company_id = $2 AND status = 'active'
		FOR UPDATE`

	s, err := scanStructure(querier.QueryRow(ctx, query, employeeID, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return salary.Structure{}, salary.ErrStructureNotFound
		}
		return salary.Structure{}, fmt.Errorf("failed to get active structure: %w", err)
	}

	s.Components, err = r.loadComponents(ctx, s.ID)
	if err != nil {
		return salary.Structure{}, err
	}

	return s, nil
}

func (r *StructureRepositoryImpl) Supersede(ctx context.Context, structureID string, effectiveTo time.Time) error {
	querier := GetQuerier(ctx, r.db)

	query := `
		UPDATE salary_structures
		SET status = 'superseded', effective_to = $2, updated_at = NOW()
		WHERE id = $1 AND status = 'active'`

	tag, err := querier.Exec(ctx, query, structureID, effectiveTo)
	if err != nil {
		return fmt.Errorf("failed to supersede structure: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return salary.ErrStructureNotFound
	}

	return nil
}

func (r *StructureRepositoryImpl) Create(ctx context.Context, structure salary.Structure) (salary.Structure, error) {
	querier := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO salary_structures (
			id, employee_id, company_id, effective_from, effective_to,
			wage_amount, pay_frequency, status, created_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + structureColumns

	created, err := scanStructure(querier.QueryRow(ctx, query,
		newID(), structure.EmployeeID, structure.CompanyID, structure.EffectiveFrom, structure.EffectiveTo,
		structure.WageAmount, structure.PayFrequency, structure.Status, structure.CreatedBy,
	))
	if err != nil {
		return salary.Structure{}, fmt.Errorf("failed to create structure: %w", err)
	}

	componentQuery := `
		INSERT INTO salary_structure_components (
			id, structure_id, rule_code, display_name, category, mode,
			amount, is_taxable, is_statutory, display_order
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	for _, c := range structure.Components {
		_, err := querier.Exec(ctx, componentQuery,
			newID(), created.ID, c.RuleCode, c.DisplayName, c.Category, c.Mode,
			c.Amount, c.IsTaxable, c.IsStatutory, c.DisplayOrder,
		)
		if err != nil {
			return salary.Structure{}, fmt.Errorf("failed to insert structure component %s: %w", c.RuleCode, err)
		}
	}

	created.Components = structure.Components
	return created, nil
}

func (r *StructureRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (salary.Structure, error) {
	querier := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + structureColumns + `
		FROM salary_structures
		WHERE id = $1 AND company_id = $2`

	s, err := scanStructure(querier.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return salary.Structure{}, salary.ErrStructureNotFound
		}
		return salary.Structure{}, fmt.Errorf("failed to get structure: %w", err)
	}

	s.Components, err = r.loadComponents(ctx, s.ID)
	if err != nil {
		return salary.Structure{}, err
	}

	return s, nil
}

func (r *StructureRepositoryImpl) GetEffectiveOn(ctx context.Context, employeeID string, date time.Time, companyID string) (salary.Structure, error) {
	querier := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + structureColumns + `
		FROM salary_structures
		WHERE employee_id = $1 AND company_id = $2
		  AND effective_from <= $3
		  AND (effective_to IS NULL OR effective_to >= $3)
		ORDER BY effective_from DESC
		LIMIT 1`

	s, err := scanStructure(querier.QueryRow(ctx, query, employeeID, companyID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return salary.Structure{}, salary.ErrStructureNotFound
		}
		return salary.Structure{}, fmt.Errorf("failed to get effective structure: %w", err)
	}

	s.Components, err = r.loadComponents(ctx, s.ID)
	if err != nil {
		return salary.Structure{}, err
	}

	return s, nil
}

func (r *StructureRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string, companyID string) ([]salary.Structure, error) {
	querier := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + structureColumns + `
		FROM salary_structures
		WHERE employee_id = $1 AND company_id = $2
		ORDER BY effective_from DESC`

	rows, err := querier.Query(ctx, query, employeeID, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list structures: %w", err)
	}
	defer rows.Close()

	var structures []salary.Structure
	for rows.Next() {
		s, err := scanStructure(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan structure: %w", err)
		}
		structures = append(structures, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range structures {
		structures[i].Components, err = r.loadComponents(ctx, structures[i].ID)
		if err != nil {
			return nil, err
		}
	}

	return structures, nil
}

func (r *StructureRepositoryImpl) loadComponents(ctx context.Context, structureID string) ([]salary.ComputedComponent, error) {
	querier := GetQuerier(ctx, r.db)

	query := `
		SELECT rule_code, display_name, category, mode, amount, is_taxable, is_statutory, display_order
		FROM salary_structure_components
		WHERE structure_id = $1
		ORDER BY display_order, rule_code`

	rows, err := querier.Query(ctx, query, structureID)
	if err != nil {
		return nil, fmt.Errorf("failed to load structure components: %w", err)
	}
	defer rows.Close()

	var components []salary.ComputedComponent
	for rows.Next() {
		var c salary.ComputedComponent
		err := rows.Scan(&c.RuleCode, &c.DisplayName, &c.Category, &c.Mode,
			&c.Amount, &c.IsTaxable, &c.IsStatutory, &c.DisplayOrder)
		if err != nil {
			return nil, fmt.Errorf("failed to scan structure component: %w", err)
		}
		components = append(components, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return components, nil
}
