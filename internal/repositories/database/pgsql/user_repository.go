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

type PgxUserRepository struct {
	BaseRepository
}

func newPgxUserRepository(pool *pgxpool.Pool) portsrepo.UserRepository {
	return &PgxUserRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxUserRepository implements portsrepo.UserRepository
var _ portsrepo.UserRepository = (*PgxUserRepository)(nil)

const userSelectColumns = `
	user_id, email, name, role, family_id, password_hash, auth_provider,
	provider_user_id, refresh_token_hash, refresh_token_expiry_time,
	created_at, created_by, last_updated_at, last_updated_by, deleted_at
`

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.UserID,
		&u.Email,
		&u.Name,
		&u.Role,
		&u.FamilyID,
		&u.PasswordHash,
		&u.AuthProvider,
		&u.ProviderUserID,
		&u.RefreshTokenHash,
		&u.RefreshTokenExpiryTime,
		&u.CreatedAt,
		&u.CreatedBy,
		&u.LastUpdatedAt,
		&u.LastUpdatedBy,
		&u.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *PgxUserRepository) findOne(ctx context.Context, filter string, args ...any) (*domain.User, error) {
	query := `SELECT ` + userSelectColumns + ` FROM users ` + filter
	user, err := scanUser(r.Pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	return user, nil
}

func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	query := `
		INSERT INTO users (
			user_id, email, name, role, family_id, password_hash, auth_provider,
			provider_user_id, refresh_token_hash, refresh_token_expiry_time,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.Pool.Exec(ctx, query,
		user.UserID,
		user.Email,
		user.Name,
		user.Role,
		user.FamilyID,
		user.PasswordHash,
		user.AuthProvider,
		user.ProviderUserID,
		user.RefreshTokenHash,
		user.RefreshTokenExpiryTime,
		user.CreatedAt,
		user.CreatedBy,
		user.LastUpdatedAt,
		user.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return apperrors.NewConflictError("user with email " + user.Email + " already exists")
		}
		return fmt.Errorf("failed to save user %s: %w", user.UserID, err)
	}
	return nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return r.findOne(ctx, `WHERE user_id = $1 AND deleted_at IS NULL`, userID)
}

func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, `WHERE lower(email) = lower($1) AND deleted_at IS NULL`, email)
}

func (r *PgxUserRepository) FindUserByProviderDetails(ctx context.Context, provider string, providerUserID string) (*domain.User, error) {
	return r.findOne(ctx, `WHERE auth_provider = $1 AND provider_user_id = $2 AND deleted_at IS NULL`, provider, providerUserID)
}

func (r *PgxUserRepository) FindUsersByFamilyID(ctx context.Context, familyID string) ([]domain.User, error) {
	query := `SELECT ` + userSelectColumns + `
		FROM users
		WHERE family_id = $1 AND deleted_at IS NULL
		ORDER BY role, created_at;
	`
	rows, err := r.Pool.Query(ctx, query, familyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query family members: %w", err)
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, *u)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", rows.Err())
	}
	return users, nil
}

func (r *PgxUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	query := `
		UPDATE users
		SET email = $1, name = $2, role = $3, last_updated_at = $4, last_updated_by = $5
		WHERE user_id = $6 AND deleted_at IS NULL;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		user.Email,
		user.Name,
		user.Role,
		user.LastUpdatedAt,
		user.LastUpdatedBy,
		user.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update user query: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user not found or already deleted: %w", apperrors.ErrNotFound)
	}
	return nil
}

// SetFamilyID writes only the family linkage column. Join and leave go
// through here so they can never clobber concurrent profile edits.
func (r *PgxUserRepository) SetFamilyID(ctx context.Context, userID string, familyID *string, updatedBy string) error {
	query := `
		UPDATE users
		SET family_id = $1, last_updated_at = $2, last_updated_by = $3
		WHERE user_id = $4 AND deleted_at IS NULL;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, familyID, time.Now(), updatedBy, userID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			// Lost the race on idx_users_family_role: another member took
			// the role slot between the service check and this write.
			role := ""
			_ = r.Pool.QueryRow(ctx, `SELECT role FROM users WHERE user_id = $1;`, userID).Scan(&role)
			return apperrors.NewRoleSlotTakenError(role)
		}
		return fmt.Errorf("failed to set family id for user %s: %w", userID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user not found or already deleted: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxUserRepository) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, expiry time.Time) error {
	query := `
		UPDATE users
		SET refresh_token_hash = $1, refresh_token_expiry_time = $2, last_updated_at = $3
		WHERE user_id = $4 AND deleted_at IS NULL;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, refreshTokenHash, expiry, time.Now(), userID)
	if err != nil {
		return fmt.Errorf("failed to update refresh token for user %s: %w", userID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user not found or already deleted: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxUserRepository) ClearRefreshToken(ctx context.Context, userID string) error {
	query := `
		UPDATE users
		SET refresh_token_hash = '', refresh_token_expiry_time = NULL, last_updated_at = $1
		WHERE user_id = $2 AND deleted_at IS NULL;
	`
	if _, err := r.Pool.Exec(ctx, query, time.Now(), userID); err != nil {
		return fmt.Errorf("failed to clear refresh token for user %s: %w", userID, err)
	}
	return nil
}
