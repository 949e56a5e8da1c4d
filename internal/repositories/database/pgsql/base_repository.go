package pgsql

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/keluargaku/keluargaku_app/internal/apperrors"
)

// BaseRepository provides common functionality for all repositories.
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// Begin starts a new database transaction.
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	return tx, nil
}

// Commit commits a transaction.
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction", err)
	}
	return nil
}

// Rollback rolls back a transaction.
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return apperrors.NewAppError(500, "failed to rollback transaction", err)
	}
	return nil
}

// scopeArgs expands a visibility scope into the (family_id, user_id) argument
// pair used by the shared ledger predicate:
//
//	(family_id = $n OR user_id = $n+1)
//
// Exactly one argument is non-NULL, and an equality against NULL never
// matches, so the other arm is inert. A family scope therefore matches family
// rows only (rows created before a member joined stay out of the family view,
// agreeing with the per-record visibility check), and a solo scope matches
// the user's own rows only.
func scopeArgs(familyID *string, userID string) (any, any) {
	if familyID != nil && *familyID != "" {
		return familyID, nil
	}
	return nil, userID
}
