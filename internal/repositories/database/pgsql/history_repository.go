package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/keluargaku/keluargaku_app/internal/core/domain"
	portsrepo "github.com/keluargaku/keluargaku_app/internal/core/ports/repositories"
)

type PgxHistoryRepository struct {
	BaseRepository
}

func newPgxHistoryRepository(pool *pgxpool.Pool) portsrepo.HistoryRepository {
	return &PgxHistoryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxHistoryRepository implements portsrepo.HistoryRepository
var _ portsrepo.HistoryRepository = (*PgxHistoryRepository)(nil)

const historySelectColumns = `
	history_id, collection, record_id, actor_id, family_id, action, detail, created_at
`

func (r *PgxHistoryRepository) SaveEntry(ctx context.Context, entry domain.EditHistory) error {
	query := `
		INSERT INTO edit_history (history_id, collection, record_id, actor_id, family_id, action, detail, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		entry.HistoryID,
		entry.Collection,
		entry.RecordID,
		entry.ActorID,
		entry.FamilyID,
		entry.Action,
		entry.Detail,
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save history entry %s: %w", entry.HistoryID, err)
	}
	return nil
}

func (r *PgxHistoryRepository) ListByRecord(ctx context.Context, collection, recordID string) ([]domain.EditHistory, error) {
	query := `SELECT ` + historySelectColumns + `
		FROM edit_history
		WHERE collection = $1 AND record_id = $2
		ORDER BY created_at DESC;
	`
	return r.listEntries(ctx, query, collection, recordID)
}

func (r *PgxHistoryRepository) ListByScope(ctx context.Context, scope portsrepo.Scope, limit int) ([]domain.EditHistory, error) {
	query := `SELECT ` + historySelectColumns + `
		FROM edit_history
		WHERE (family_id = $1 OR actor_id = $2)
		ORDER BY created_at DESC
		LIMIT $3;
	`
	familyID, userID := scopeArgs(scope.FamilyID, scope.UserID)
	return r.listEntries(ctx, query, familyID, userID, limit)
}

func (r *PgxHistoryRepository) listEntries(ctx context.Context, query string, args ...any) ([]domain.EditHistory, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query history entries: %w", err)
	}
	defer rows.Close()

	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.EditHistory, error) {
		var e domain.EditHistory
		err := row.Scan(&e.HistoryID, &e.Collection, &e.RecordID, &e.ActorID, &e.FamilyID, &e.Action, &e.Detail, &e.CreatedAt)
		return e, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to collect history rows: %w", err)
	}
	return entries, nil
}
