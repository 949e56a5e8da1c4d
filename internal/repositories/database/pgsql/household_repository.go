package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/keluargaku/keluargaku_app/internal/apperrors"
	"github.com/keluargaku/keluargaku_app/internal/core/domain"
	portsrepo "github.com/keluargaku/keluargaku_app/internal/core/ports/repositories"
)

type PgxHouseholdRepository struct {
	BaseRepository
}

func newPgxHouseholdRepository(pool *pgxpool.Pool) portsrepo.HouseholdRepository {
	return &PgxHouseholdRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxHouseholdRepository implements portsrepo.HouseholdRepository
var _ portsrepo.HouseholdRepository = (*PgxHouseholdRepository)(nil)

const householdSelectColumns = `
	transaction_id, user_id, family_id, type, amount, category_id, txn_date,
	description, created_at, created_by, last_updated_at, last_updated_by
`

func scanHouseholdTransaction(row pgx.Row) (*domain.HouseholdTransaction, error) {
	var t domain.HouseholdTransaction
	err := row.Scan(
		&t.TransactionID,
		&t.UserID,
		&t.FamilyID,
		&t.Type,
		&t.Amount,
		&t.CategoryID,
		&t.TxnDate,
		&t.Description,
		&t.CreatedAt,
		&t.CreatedBy,
		&t.LastUpdatedAt,
		&t.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// SaveTransaction inserts a transaction. family_id is deliberately absent
// from the column list: an insert trigger stamps it from the owner's current
// membership.
func (r *PgxHouseholdRepository) SaveTransaction(ctx context.Context, txn domain.HouseholdTransaction) error {
	query := `
		INSERT INTO household_transactions (
			transaction_id, user_id, type, amount, category_id, txn_date,
			description, created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		txn.TransactionID,
		txn.UserID,
		txn.Type,
		txn.Amount,
		txn.CategoryID,
		txn.TxnDate,
		txn.Description,
		txn.CreatedAt,
		txn.CreatedBy,
		txn.LastUpdatedAt,
		txn.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
			return apperrors.NewValidationFailedError("referenced category or user does not exist")
		}
		return fmt.Errorf("failed to save transaction %s: %w", txn.TransactionID, err)
	}
	return nil
}

func (r *PgxHouseholdRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.HouseholdTransaction, error) {
	query := `SELECT ` + householdSelectColumns + ` FROM household_transactions WHERE transaction_id = $1;`
	txn, err := scanHouseholdTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction by ID %s: %w", transactionID, err)
	}
	return txn, nil
}

func (r *PgxHouseholdRepository) ListTransactions(ctx context.Context, scope portsrepo.Scope) ([]domain.HouseholdTransaction, error) {
	query := `SELECT ` + householdSelectColumns + `
		FROM household_transactions
		WHERE (family_id = $1 OR user_id = $2)
		ORDER BY txn_date DESC, created_at DESC;
	`
	familyID, userID := scopeArgs(scope.FamilyID, scope.UserID)
	rows, err := r.Pool.Query(ctx, query, familyID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	txns := []domain.HouseholdTransaction{}
	for rows.Next() {
		t, err := scanHouseholdTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txns = append(txns, *t)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", rows.Err())
	}
	return txns, nil
}

func (r *PgxHouseholdRepository) UpdateTransaction(ctx context.Context, txn domain.HouseholdTransaction) error {
	query := `
		UPDATE household_transactions
		SET type = $1, amount = $2, category_id = $3, txn_date = $4,
			description = $5, last_updated_at = $6, last_updated_by = $7
		WHERE transaction_id = $8;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		txn.Type,
		txn.Amount,
		txn.CategoryID,
		txn.TxnDate,
		txn.Description,
		txn.LastUpdatedAt,
		txn.LastUpdatedBy,
		txn.TransactionID,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction %s: %w", txn.TransactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxHouseholdRepository) DeleteTransaction(ctx context.Context, transactionID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM household_transactions WHERE transaction_id = $1;`, transactionID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction %s: %w", transactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
