package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/keluargaku/keluargaku_app/internal/apperrors"
	"github.com/keluargaku/keluargaku_app/internal/core/domain"
	portsrepo "github.com/keluargaku/keluargaku_app/internal/core/ports/repositories"
	portssvc "github.com/keluargaku/keluargaku_app/internal/core/ports/services"
)

// familyService handles family lifecycle and membership. It owns the
// invariant that a family holds at most one AYAH and one IBU.
type familyService struct {
	BaseService
	familyRepo portsrepo.FamilyRepository
	userRepo   portsrepo.UserRepository
}

// NewFamilyService creates a new family service.
func NewFamilyService(fr portsrepo.FamilyRepository, ur portsrepo.UserRepository) portssvc.FamilySvcFacade {
	return &familyService{familyRepo: fr, userRepo: ur}
}

var _ portssvc.FamilySvcFacade = (*familyService)(nil)

// CreateFamily inserts the family row and then assigns the creator's
// membership. The two writes hit different tables and the store offers no
// cross-table transaction here, so a failed membership write is compensated
// by deleting the just-created family row.
func (s *familyService) CreateFamily(ctx context.Context, name, creatorUserID string) (*domain.FamilyWithMembers, error) {
	creator, err := s.userRepo.FindUserByID(ctx, creatorUserID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load creator for family creation", slog.String("user_id", creatorUserID))
		return nil, fmt.Errorf("failed to load creator: %w", err)
	}
	if creator.InFamily() {
		return nil, apperrors.ErrAlreadyInFamily
	}

	now := time.Now()
	family := domain.Family{
		FamilyID: uuid.NewString(),
		Name:     name,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.familyRepo.SaveFamily(ctx, family); err != nil {
		s.LogError(ctx, err, "Failed to save family", slog.String("family_name", name))
		return nil, fmt.Errorf("failed to create family: %w", err)
	}

	if err := s.userRepo.SetFamilyID(ctx, creatorUserID, &family.FamilyID, creatorUserID); err != nil {
		s.LogError(ctx, err, "Failed to assign creator membership, rolling back family row",
			slog.String("family_id", family.FamilyID), slog.String("user_id", creatorUserID))
		if delErr := s.familyRepo.DeleteFamily(ctx, family.FamilyID); delErr != nil {
			// The orphaned row has no members and is invisible to queries;
			// log and surface the original failure.
			s.LogError(ctx, delErr, "Compensating family delete failed", slog.String("family_id", family.FamilyID))
		}
		return nil, fmt.Errorf("failed to assign creator to family: %w", err)
	}

	s.LogInfo(ctx, "Family created", slog.String("family_id", family.FamilyID), slog.String("creator_user_id", creatorUserID))

	creator.FamilyID = &family.FamilyID
	return &domain.FamilyWithMembers{Family: family, Members: []domain.User{*creator}}, nil
}

// JoinFamily adds a solo user to an existing family after checking that the
// slot for their role is free.
func (s *familyService) JoinFamily(ctx context.Context, userID, familyID string) error {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load user for family join", slog.String("user_id", userID))
		return fmt.Errorf("failed to load user: %w", err)
	}
	if user.InFamily() {
		return apperrors.ErrAlreadyInFamily
	}

	family, err := s.GetFamilyByID(ctx, familyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrFamilyNotFound
		}
		return err
	}

	if occupant := family.MemberWithRole(user.Role); occupant != nil {
		s.LogInfo(ctx, "Family join rejected: role slot occupied",
			slog.String("family_id", familyID), slog.String("role", string(user.Role)))
		return apperrors.NewRoleSlotTakenError(string(user.Role))
	}

	// Single-row write; no compensating action needed.
	if err := s.userRepo.SetFamilyID(ctx, userID, &familyID, userID); err != nil {
		s.LogError(ctx, err, "Failed to set family membership", slog.String("user_id", userID), slog.String("family_id", familyID))
		return fmt.Errorf("failed to join family: %w", err)
	}

	s.LogInfo(ctx, "User joined family", slog.String("user_id", userID), slog.String("family_id", familyID))
	return nil
}

// LeaveFamily clears the user's membership unconditionally. Leaving while
// solo is a no-op success. The family row is never deleted here, even when
// the last member leaves.
func (s *familyService) LeaveFamily(ctx context.Context, userID string) error {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load user for family leave", slog.String("user_id", userID))
		return fmt.Errorf("failed to load user: %w", err)
	}
	if !user.InFamily() {
		return nil
	}

	if err := s.userRepo.SetFamilyID(ctx, userID, nil, userID); err != nil {
		s.LogError(ctx, err, "Failed to clear family membership", slog.String("user_id", userID))
		return fmt.Errorf("failed to leave family: %w", err)
	}

	s.LogInfo(ctx, "User left family", slog.String("user_id", userID), slog.String("family_id", *user.FamilyID))
	return nil
}

// GetFamilyByID resolves the family with its live-queried member list. The
// joined read is attempted first; on failure (other than not-found) the
// two-step form runs instead. Both forms produce identical results.
func (s *familyService) GetFamilyByID(ctx context.Context, familyID string) (*domain.FamilyWithMembers, error) {
	family, err := s.familyRepo.FindFamilyWithMembers(ctx, familyID)
	if err == nil {
		return family, nil
	}
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	s.LogDebug(ctx, "Joined family read failed, falling back to two-step read",
		slog.String("family_id", familyID), slog.String("error", err.Error()))

	row, err := s.familyRepo.FindFamilyByID(ctx, familyID)
	if err != nil {
		return nil, err
	}
	members, err := s.userRepo.FindUsersByFamilyID(ctx, familyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load family members: %w", err)
	}
	return &domain.FamilyWithMembers{Family: *row, Members: members}, nil
}
