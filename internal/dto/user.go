package dto

import (
	"time"

	"github.com/keluargaku/keluargaku_app/internal/core/domain"
)

// UpdateUserRequest defines the data allowed for updating a user profile.
// Pointers distinguish omitted fields from zero values. Role changes are
// rejected while the user belongs to a family (the role occupies a slot).
type UpdateUserRequest struct {
	Name *string            `json:"name"`
	Role *domain.FamilyRole `json:"role" binding:"omitempty,famrole"`
}

// UserResponse defines data returned for a user.
type UserResponse struct {
	UserID    string            `json:"userID"`
	Email     string            `json:"email"`
	Name      string            `json:"name"`
	Role      domain.FamilyRole `json:"role"`
	FamilyID  *string           `json:"familyID,omitempty"`
	CreatedAt time.Time         `json:"createdAt"`
}

// ToUserResponse converts a domain.User to its response DTO.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:    u.UserID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		FamilyID:  u.FamilyID,
		CreatedAt: u.CreatedAt,
	}
}

// ProfileResponse is a resolved profile: the user plus their family with
// members when they have one.
type ProfileResponse struct {
	User   UserResponse    `json:"user"`
	Family *FamilyResponse `json:"family,omitempty"`
}

// ToProfileResponse converts a domain.Profile to its response DTO.
func ToProfileResponse(p *domain.Profile) ProfileResponse {
	resp := ProfileResponse{User: ToUserResponse(&p.User)}
	if p.Family != nil {
		fam := ToFamilyResponse(p.Family)
		resp.Family = &fam
	}
	return resp
}
