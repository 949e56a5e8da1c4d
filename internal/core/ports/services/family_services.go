package services

import (
	"context"

	"github.com/keluargaku/keluargaku_app/internal/core/domain"
)

// FamilySvcFacade manages families and their membership. It owns the
// one-AYAH/one-IBU-per-family invariant.
type FamilySvcFacade interface {
	// CreateFamily inserts the family row, then assigns the creator's
	// membership. If the assignment fails the family row is deleted so no
	// memberless family is left behind.
	CreateFamily(ctx context.Context, name, creatorUserID string) (*domain.FamilyWithMembers, error)
	// JoinFamily adds a solo user to an existing family, failing with a
	// RoleSlotTakenError naming the occupied role when the user's role slot
	// is filled.
	JoinFamily(ctx context.Context, userID, familyID string) error
	// LeaveFamily clears the user's membership. Idempotent: leaving while
	// solo is a no-op success. The family row survives even when its last
	// member leaves.
	LeaveFamily(ctx context.Context, userID string) error
	// GetFamilyByID resolves the family plus its live-queried member list,
	// preferring the joined read and falling back to two sequential reads.
	GetFamilyByID(ctx context.Context, familyID string) (*domain.FamilyWithMembers, error)
}
