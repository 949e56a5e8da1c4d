package repositories

import (
	"context"
	"time"

	"github.com/keluargaku/keluargaku_app/internal/core/domain"
)

// UserRepository persists application users and their family linkage.
type UserRepository interface {
	SaveUser(ctx context.Context, user domain.User) error
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
	FindUserByProviderDetails(ctx context.Context, provider string, providerUserID string) (*domain.User, error)
	// FindUsersByFamilyID lists the derived member set of a family.
	FindUsersByFamilyID(ctx context.Context, familyID string) ([]domain.User, error)
	UpdateUser(ctx context.Context, user domain.User) error
	// SetFamilyID writes only the family linkage; nil clears it. Join and
	// leave never touch any other column.
	SetFamilyID(ctx context.Context, userID string, familyID *string, updatedBy string) error
	UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, expiry time.Time) error
	ClearRefreshToken(ctx context.Context, userID string) error
}
