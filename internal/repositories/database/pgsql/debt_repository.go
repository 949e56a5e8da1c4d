package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/keluargaku/keluargaku_app/internal/apperrors"
	"github.com/keluargaku/keluargaku_app/internal/core/domain"
	portsrepo "github.com/keluargaku/keluargaku_app/internal/core/ports/repositories"
)

type PgxDebtRepository struct {
	BaseRepository
}

func newPgxDebtRepository(pool *pgxpool.Pool) portsrepo.DebtRepository {
	return &PgxDebtRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxDebtRepository implements portsrepo.DebtRepository
var _ portsrepo.DebtRepository = (*PgxDebtRepository)(nil)

const debtSelectColumns = `
	debt_id, user_id, family_id, counterparty, direction, amount, due_date,
	description, created_at, created_by, last_updated_at, last_updated_by
`

func scanDebt(row pgx.Row) (*domain.Debt, error) {
	var d domain.Debt
	err := row.Scan(
		&d.DebtID,
		&d.UserID,
		&d.FamilyID,
		&d.Counterparty,
		&d.Direction,
		&d.Amount,
		&d.DueDate,
		&d.Description,
		&d.CreatedAt,
		&d.CreatedBy,
		&d.LastUpdatedAt,
		&d.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// SaveDebt inserts a debt. family_id is stamped by the insert trigger.
func (r *PgxDebtRepository) SaveDebt(ctx context.Context, debt domain.Debt) error {
	query := `
		INSERT INTO debts (
			debt_id, user_id, counterparty, direction, amount, due_date,
			description, created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		debt.DebtID,
		debt.UserID,
		debt.Counterparty,
		debt.Direction,
		debt.Amount,
		debt.DueDate,
		debt.Description,
		debt.CreatedAt,
		debt.CreatedBy,
		debt.LastUpdatedAt,
		debt.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save debt %s: %w", debt.DebtID, err)
	}
	return nil
}

func (r *PgxDebtRepository) FindDebtByID(ctx context.Context, debtID string) (*domain.Debt, error) {
	query := `SELECT ` + debtSelectColumns + ` FROM debts WHERE debt_id = $1;`
	debt, err := scanDebt(r.Pool.QueryRow(ctx, query, debtID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find debt by ID %s: %w", debtID, err)
	}

	payments, err := r.findPaymentsForDebts(ctx, []string{debtID})
	if err != nil {
		return nil, err
	}
	debt.Payments = payments[debtID]
	if debt.Payments == nil {
		debt.Payments = []domain.DebtPayment{}
	}
	return debt, nil
}

func (r *PgxDebtRepository) ListDebts(ctx context.Context, scope portsrepo.Scope) ([]domain.Debt, error) {
	query := `SELECT ` + debtSelectColumns + `
		FROM debts
		WHERE (family_id = $1 OR user_id = $2)
		ORDER BY created_at DESC;
	`
	familyID, userID := scopeArgs(scope.FamilyID, scope.UserID)
	rows, err := r.Pool.Query(ctx, query, familyID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query debts: %w", err)
	}
	defer rows.Close()

	debts := []domain.Debt{}
	debtIDs := []string{}
	for rows.Next() {
		d, err := scanDebt(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan debt row: %w", err)
		}
		d.Payments = []domain.DebtPayment{}
		debts = append(debts, *d)
		debtIDs = append(debtIDs, d.DebtID)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating debt rows: %w", rows.Err())
	}

	if len(debtIDs) == 0 {
		return debts, nil
	}
	paymentsByDebt, err := r.findPaymentsForDebts(ctx, debtIDs)
	if err != nil {
		return nil, err
	}
	for i := range debts {
		if ps, ok := paymentsByDebt[debts[i].DebtID]; ok {
			debts[i].Payments = ps
		}
	}
	return debts, nil
}

func (r *PgxDebtRepository) UpdateDebt(ctx context.Context, debt domain.Debt) error {
	query := `
		UPDATE debts
		SET counterparty = $1, amount = $2, due_date = $3, description = $4,
			last_updated_at = $5, last_updated_by = $6
		WHERE debt_id = $7;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		debt.Counterparty,
		debt.Amount,
		debt.DueDate,
		debt.Description,
		debt.LastUpdatedAt,
		debt.LastUpdatedBy,
		debt.DebtID,
	)
	if err != nil {
		return fmt.Errorf("failed to update debt %s: %w", debt.DebtID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteDebt removes a debt; the payment rows go with it via ON DELETE
// CASCADE.
func (r *PgxDebtRepository) DeleteDebt(ctx context.Context, debtID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM debts WHERE debt_id = $1;`, debtID)
	if err != nil {
		return fmt.Errorf("failed to delete debt %s: %w", debtID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxDebtRepository) SaveDebtPayment(ctx context.Context, payment domain.DebtPayment) error {
	query := `
		INSERT INTO debt_payments (payment_id, debt_id, amount, paid_at, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := r.Pool.Exec(ctx, query,
		payment.PaymentID,
		payment.DebtID,
		payment.Amount,
		payment.PaidAt,
		payment.Note,
		payment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save debt payment %s: %w", payment.PaymentID, err)
	}
	return nil
}

func (r *PgxDebtRepository) FindDebtPaymentByID(ctx context.Context, paymentID string) (*domain.DebtPayment, error) {
	query := `
		SELECT payment_id, debt_id, amount, paid_at, note, created_at
		FROM debt_payments
		WHERE payment_id = $1;
	`
	var p domain.DebtPayment
	err := r.Pool.QueryRow(ctx, query, paymentID).Scan(
		&p.PaymentID,
		&p.DebtID,
		&p.Amount,
		&p.PaidAt,
		&p.Note,
		&p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find debt payment by ID %s: %w", paymentID, err)
	}
	return &p, nil
}

func (r *PgxDebtRepository) DeleteDebtPayment(ctx context.Context, paymentID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM debt_payments WHERE payment_id = $1;`, paymentID)
	if err != nil {
		return fmt.Errorf("failed to delete debt payment %s: %w", paymentID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxDebtRepository) findPaymentsForDebts(ctx context.Context, debtIDs []string) (map[string][]domain.DebtPayment, error) {
	query := `
		SELECT payment_id, debt_id, amount, paid_at, note, created_at
		FROM debt_payments
		WHERE debt_id = ANY($1)
		ORDER BY paid_at, created_at;
	`
	rows, err := r.Pool.Query(ctx, query, debtIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query debt payments: %w", err)
	}
	defer rows.Close()

	byDebt := make(map[string][]domain.DebtPayment)
	for rows.Next() {
		var p domain.DebtPayment
		err := rows.Scan(&p.PaymentID, &p.DebtID, &p.Amount, &p.PaidAt, &p.Note, &p.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan debt payment row: %w", err)
		}
		byDebt[p.DebtID] = append(byDebt[p.DebtID], p)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating debt payment rows: %w", rows.Err())
	}
	return byDebt, nil
}
