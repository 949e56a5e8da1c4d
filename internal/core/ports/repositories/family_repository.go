package repositories

import (
	"context"

	"github.com/keluargaku/keluargaku_app/internal/core/domain"
)

// FamilyRepository persists family rows. Member lists are derived from the
// users table and never stored here.
type FamilyRepository interface {
	SaveFamily(ctx context.Context, family domain.Family) error
	FindFamilyByID(ctx context.Context, familyID string) (*domain.Family, error)
	// FindFamilyWithMembers performs the joined read of a family plus its
	// member set in one round trip. Callers fall back to FindFamilyByID +
	// UserRepository.FindUsersByFamilyID when it fails; both forms must
	// produce identical results.
	FindFamilyWithMembers(ctx context.Context, familyID string) (*domain.FamilyWithMembers, error)
	// DeleteFamily removes a family row. Used only as the compensating
	// action when assigning the creator's membership fails.
	DeleteFamily(ctx context.Context, familyID string) error
}
