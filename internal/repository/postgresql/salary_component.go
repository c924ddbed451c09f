package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/apexhr/hrm-backend-go/internal/domain/salary"
	"github.com/apexhr/hrm-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type ComponentRuleRepositoryImpl struct {
	db *database.DB
}

func NewComponentRuleRepository(db *database.DB) salary.ComponentRuleRepository {
	return &ComponentRuleRepositoryImpl{db: db}
}

const componentRuleColumns = `id, company_id, code, display_name, category, mode, base_component_code,
	fixed_value, percent_value, is_taxable, is_statutory, display_order, is_active, created_at, updated_at`

func scanComponentRule(row pgx.Row) (salary.ComponentRule, error) {
	var rule salary.ComponentRule
	err := row.Scan(
		&rule.ID, &rule.CompanyID, &rule.Code, &rule.DisplayName, &rule.Category, &rule.Mode,
		&rule.BaseComponentCode, &rule.FixedValue, &rule.PercentValue, &rule.IsTaxable,
		&rule.IsStatutory, &rule.DisplayOrder, &rule.IsActive, &rule.CreatedAt, &rule.UpdatedAt,
	)
	return rule, err
}

func (r *ComponentRuleRepositoryImpl) Create(ctx context.Context, rule salary.ComponentRule) (salary.ComponentRule, error) {
	querier := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO salary_component_rules (
			id, company_id, code, display_name, category, mode, base_component_code,
			fixed_value, percent_value, is_taxable, is_statutory, display_order, is_active
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING ` + componentRuleColumns

	created, err := scanComponentRule(querier.QueryRow(ctx, query,
		newID(), rule.CompanyID, rule.Code, rule.DisplayName, rule.Category, rule.Mode, rule.BaseComponentCode,
		rule.FixedValue, rule.PercentValue, rule.IsTaxable, rule.IsStatutory, rule.DisplayOrder, rule.IsActive,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return salary.ComponentRule{}, salary.ErrComponentCodeExists
		}
		return salary.ComponentRule{}, fmt.Errorf("failed to create component rule: %w", err)
	}

	return created, nil
}

func (r *ComponentRuleRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (salary.ComponentRule, error) {
	querier := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + componentRuleColumns + `
		FROM salary_component_rules
		WHERE id = $1 AND company_id = $2`

	rule, err := scanComponentRule(querier.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return salary.ComponentRule{}, salary.ErrComponentRuleNotFound
		}
		return salary.ComponentRule{}, fmt.Errorf("failed to get component rule: %w", err)
	}

	return rule, nil
}

func (r *ComponentRuleRepositoryImpl) GetByIDs(ctx context.Context, ids []string, companyID string) ([]salary.ComponentRule, error) {
	querier := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + componentRuleColumns + `
		FROM salary_component_rules
		WHERE id = ANY($1) AND company_id = $2`

	rows, err := querier.Query(ctx, query, ids, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get component rules by ids: %w", err)
	}
	defer rows.Close()

	return collectComponentRules(rows)
}

func (r *ComponentRuleRepositoryImpl) GetByCodes(ctx context.Context, codes []string, companyID string) ([]salary.ComponentRule, error) {
	querier := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + componentRuleColumns + `
		FROM salary_component_rules
		WHERE code = ANY($1) AND company_id = $2`

	rows, err := querier.Query(ctx, query, codes, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get component rules by codes: %w", err)
	}
	defer rows.Close()

	return collectComponentRules(rows)
}

func (r *ComponentRuleRepositoryImpl) ListByCompany(ctx context.Context, companyID string, activeOnly bool) ([]salary.ComponentRule, error) {
	querier := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + componentRuleColumns + `
		FROM salary_component_rules
		WHERE company_id = $1`
	if activeOnly {
		query += ` AND is_active = TRUE`
	}
	query += ` ORDER BY display_order, code`

	rows, err := querier.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list component rules: %w", err)
	}
	defer rows.Close()

	return collectComponentRules(rows)
}

func (r *ComponentRuleRepositoryImpl) Update(ctx context.Context, companyID string, req salary.UpdateComponentRuleRequest) error {
	querier := GetQuerier(ctx, r.db)

	sets := []string{"updated_at = NOW()"}
	args := []interface{}{req.ID, companyID}

	addSet := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if req.DisplayName != nil {
		addSet("display_name", *req.DisplayName)
	}
	if req.FixedValue != nil {
		addSet("fixed_value", *req.FixedValue)
	}
	if req.PercentValue != nil {
		addSet("percent_value", *req.PercentValue)
	}
	if req.IsTaxable != nil {
		addSet("is_taxable", *req.IsTaxable)
	}
	if req.IsStatutory != nil {
		addSet("is_statutory", *req.IsStatutory)
	}
	if req.DisplayOrder != nil {
		addSet("display_order", *req.DisplayOrder)
	}
	if req.IsActive != nil {
		addSet("is_active", *req.IsActive)
	}

	query := fmt.Sprintf(`
		UPDATE salary_component_rules
		SET %s
		WHERE id = $1 AND company_id = $2`, strings.Join(sets, ", "))

	tag, err := querier.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update component rule: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return salary.ErrComponentRuleNotFound
	}

	return nil
}

// Delete deactivates the rule. Rules are never removed because structure
// components reference them by code.
func (r *ComponentRuleRepositoryImpl) Delete(ctx context.Context, id string, companyID string) error {
	querier := GetQuerier(ctx, r.db)

	query := `
		UPDATE salary_component_rules
		SET is_active = FALSE, updated_at = NOW()
		WHERE id = $1 AND company_id = $2`

	tag, err := querier.Exec(ctx, query, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to deactivate component rule: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return salary.ErrComponentRuleNotFound
	}

	return nil
}

func collectComponentRules(rows pgx.Rows) ([]salary.ComponentRule, error) {
	var rules []salary.ComponentRule
	for rows.Next() {
		rule, err := scanComponentRule(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan component rule: %w", err)
		}
		rules = append(rules, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return rules, nil
}
