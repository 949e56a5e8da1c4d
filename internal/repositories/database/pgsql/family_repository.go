package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/keluargaku/keluargaku_app/internal/apperrors"
	"github.com/keluargaku/keluargaku_app/internal/core/domain"
	portsrepo "github.com/keluargaku/keluargaku_app/internal/core/ports/repositories"
)

type PgxFamilyRepository struct {
	BaseRepository
}

func newPgxFamilyRepository(pool *pgxpool.Pool) portsrepo.FamilyRepository {
	return &PgxFamilyRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxFamilyRepository implements portsrepo.FamilyRepository
var _ portsrepo.FamilyRepository = (*PgxFamilyRepository)(nil)

func (r *PgxFamilyRepository) SaveFamily(ctx context.Context, family domain.Family) error {
	query := `
		INSERT INTO families (family_id, name, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := r.Pool.Exec(ctx, query,
		family.FamilyID,
		family.Name,
		family.CreatedAt,
		family.CreatedBy,
		family.LastUpdatedAt,
		family.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return apperrors.NewConflictError("family ID " + family.FamilyID + " already exists")
		}
		return fmt.Errorf("failed to save family %s: %w", family.FamilyID, err)
	}
	return nil
}

func (r *PgxFamilyRepository) FindFamilyByID(ctx context.Context, familyID string) (*domain.Family, error) {
	query := `
		SELECT family_id, name, created_at, created_by, last_updated_at, last_updated_by
		FROM families
		WHERE family_id = $1;
	`
	var f domain.Family
	err := r.Pool.QueryRow(ctx, query, familyID).Scan(
		&f.FamilyID,
		&f.Name,
		&f.CreatedAt,
		&f.CreatedBy,
		&f.LastUpdatedAt,
		&f.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrFamilyNotFound
		}
		return nil, fmt.Errorf("failed to find family by ID %s: %w", familyID, err)
	}
	return &f, nil
}

// FindFamilyWithMembers reads a family plus its derived member set in one
// round trip. A family with no members is still returned; orphaned families
// are a legal state.
func (r *PgxFamilyRepository) FindFamilyWithMembers(ctx context.Context, familyID string) (*domain.FamilyWithMembers, error) {
	query := `
		SELECT
			f.family_id, f.name, f.created_at, f.created_by, f.last_updated_at, f.last_updated_by,
			u.user_id, u.email, u.name, u.role, u.family_id, u.password_hash, u.auth_provider,
			u.provider_user_id, u.refresh_token_hash, u.refresh_token_expiry_time,
			u.created_at, u.created_by, u.last_updated_at, u.last_updated_by, u.deleted_at
		FROM families f
		LEFT JOIN users u ON u.family_id = f.family_id AND u.deleted_at IS NULL
		WHERE f.family_id = $1
		ORDER BY u.role, u.created_at;
	`
	rows, err := r.Pool.Query(ctx, query, familyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query family with members: %w", err)
	}
	defer rows.Close()

	var result *domain.FamilyWithMembers
	for rows.Next() {
		var f domain.Family
		// Every user column scans through a pointer: the LEFT JOIN yields an
		// all-NULL user side for an orphaned family.
		var (
			userID, email, name, familyID, passwordHash *string
			role                                        *domain.FamilyRole
			authProvider                                *domain.AuthProvider
			providerUserID, refreshHash                 *string
			refreshExpiry, deletedAt                    *time.Time
			createdAt, lastUpdatedAt                    *time.Time
			createdBy, lastUpdatedBy                    *string
		)
		err := rows.Scan(
			&f.FamilyID, &f.Name, &f.CreatedAt, &f.CreatedBy, &f.LastUpdatedAt, &f.LastUpdatedBy,
			&userID, &email, &name, &role, &familyID, &passwordHash, &authProvider,
			&providerUserID, &refreshHash, &refreshExpiry,
			&createdAt, &createdBy, &lastUpdatedAt, &lastUpdatedBy, &deletedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan family member row: %w", err)
		}
		if result == nil {
			result = &domain.FamilyWithMembers{Family: f, Members: []domain.User{}}
		}
		if userID == nil { // LEFT JOIN miss means an orphaned family
			continue
		}
		u := domain.User{
			UserID:         *userID,
			Email:          *email,
			Name:           *name,
			Role:           *role,
			FamilyID:       familyID,
			PasswordHash:   passwordHash,
			AuthProvider:   *authProvider,
			ProviderUserID: providerUserID,
			AuditFields: domain.AuditFields{
				CreatedAt:     *createdAt,
				CreatedBy:     *createdBy,
				LastUpdatedAt: *lastUpdatedAt,
				LastUpdatedBy: *lastUpdatedBy,
			},
			RefreshTokenExpiryTime: refreshExpiry,
			DeletedAt:              deletedAt,
		}
		if refreshHash != nil {
			u.RefreshTokenHash = *refreshHash
		}
		result.Members = append(result.Members, u)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating family member rows: %w", rows.Err())
	}
	if result == nil {
		return nil, apperrors.ErrFamilyNotFound
	}
	return result, nil
}

// DeleteFamily removes a family row. Only used as the compensating action
// when seating the creator in a freshly created family fails.
func (r *PgxFamilyRepository) DeleteFamily(ctx context.Context, familyID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM families WHERE family_id = $1;`, familyID)
	if err != nil {
		return fmt.Errorf("failed to delete family %s: %w", familyID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrFamilyNotFound
	}
	return nil
}
