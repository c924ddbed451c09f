package postgresql

import (
	"context"
	"fmt"

	"github.com/apexhr/hrm-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// newID generates a UUIDv7. Time-ordered ids keep btree inserts append-only.
func newID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// WithTransaction runs fn inside a transaction, committing on nil error and
// rolling back otherwise. Callers pass the tx to repositories through the
// context ("tx" key); GetQuerier picks it up.
func WithTransaction(ctx context.Context, db *database.DB, fn func(tx pgx.Tx) error) error {
	tx, err := db.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetQuerier returns the transaction from context when present, otherwise the
// pool. Repository methods call this so they work the same inside and outside
// a transaction.
func GetQuerier(ctx context.Context, db *database.DB) database.Querier {
	if tx, ok := ctx.Value("tx").(pgx.Tx); ok {
		return tx
	}
	return db
}
