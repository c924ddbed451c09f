package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/apexhr/hrm-backend-go/internal/domain/user"
	"github.com/apexhr/hrm-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type UserRepositoryImpl struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &UserRepositoryImpl{db: db}
}

func (r *UserRepositoryImpl) GetByEmail(ctx context.Context, email string) (user.User, error) {
	querier := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, employee_id, email, password_hash, role, email_verified, created_at, updated_at
		FROM users
		WHERE email = $1 AND deleted_at IS NULL`

	var u user.User
	err := querier.QueryRow(ctx, query, email).Scan(
		&u.ID, &u.CompanyID, &u.EmployeeID, &u.Email, &u.PasswordHash,
		&u.Role, &u.EmailVerified, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	return u, nil
}

func (r *UserRepositoryImpl) GetByID(ctx context.Context, id string) (user.User, error) {
	querier := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, employee_id, email, password_hash, role, email_verified, created_at, updated_at
		FROM users
		WHERE id = $1 AND deleted_at IS NULL`

	var u user.User
	err := querier.QueryRow(ctx, query, id).Scan(
		&u.ID, &u.CompanyID, &u.EmployeeID, &u.Email, &u.PasswordHash,
		&u.Role, &u.EmailVerified, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	return u, nil
}
