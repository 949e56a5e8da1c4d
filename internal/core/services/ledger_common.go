package services

import (
	"github.com/keluargaku/keluargaku_app/internal/apperrors"
	"github.com/keluargaku/keluargaku_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// recordVisibleTo applies the shared visibility rule: a record is visible to
// a family member when it carries their family id, and to a solo user only
// when they own it. Invisible records read as not found rather than
// forbidden, so record existence is not revealed across households.
func recordVisibleTo(actor *domain.User, ownerID string, familyID *string) bool {
	if actor.InFamily() {
		return familyID != nil && *familyID == *actor.FamilyID
	}
	return ownerID == actor.UserID
}

// requireVisible converts an invisible record into ErrNotFound.
func requireVisible(actor *domain.User, ownerID string, familyID *string) error {
	if !recordVisibleTo(actor, ownerID, familyID) {
		return apperrors.ErrNotFound
	}
	return nil
}

// requireNonNegative rejects negative monetary amounts.
func requireNonNegative(amount decimal.Decimal, field string) error {
	if amount.IsNegative() {
		return apperrors.NewValidationFailedError(field + " must not be negative")
	}
	return nil
}
