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

type PgxCategoryRepository struct {
	BaseRepository
}

func newPgxCategoryRepository(pool *pgxpool.Pool) portsrepo.CategoryRepository {
	return &PgxCategoryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxCategoryRepository implements portsrepo.CategoryRepository
var _ portsrepo.CategoryRepository = (*PgxCategoryRepository)(nil)

func (r *PgxCategoryRepository) SaveCategory(ctx context.Context, category domain.HouseholdCategory) error {
	query := `
		INSERT INTO household_categories (category_id, name, type, is_default, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := r.Pool.Exec(ctx, query,
		category.CategoryID,
		category.Name,
		category.Type,
		category.IsDefault,
		category.UserID,
		category.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return apperrors.NewConflictError("category " + category.Name + " already exists")
		}
		return fmt.Errorf("failed to save category %s: %w", category.CategoryID, err)
	}
	return nil
}

func (r *PgxCategoryRepository) FindCategoryByID(ctx context.Context, categoryID string) (*domain.HouseholdCategory, error) {
	query := `
		SELECT category_id, name, type, is_default, user_id, created_at
		FROM household_categories
		WHERE category_id = $1;
	`
	var c domain.HouseholdCategory
	err := r.Pool.QueryRow(ctx, query, categoryID).Scan(
		&c.CategoryID,
		&c.Name,
		&c.Type,
		&c.IsDefault,
		&c.UserID,
		&c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find category by ID %s: %w", categoryID, err)
	}
	return &c, nil
}

// ListCategoriesForUser returns all global defaults plus the user's own
// custom categories, defaults first.
func (r *PgxCategoryRepository) ListCategoriesForUser(ctx context.Context, userID string) ([]domain.HouseholdCategory, error) {
	query := `
		SELECT category_id, name, type, is_default, user_id, created_at
		FROM household_categories
		WHERE is_default OR user_id = $1
		ORDER BY is_default DESC, name;
	`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	categories, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.HouseholdCategory, error) {
		var c domain.HouseholdCategory
		err := row.Scan(&c.CategoryID, &c.Name, &c.Type, &c.IsDefault, &c.UserID, &c.CreatedAt)
		return c, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to collect category rows: %w", err)
	}
	return categories, nil
}

func (r *PgxCategoryRepository) DeleteCategory(ctx context.Context, categoryID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM household_categories WHERE category_id = $1;`, categoryID)
	if err != nil {
		return fmt.Errorf("failed to delete category %s: %w", categoryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
