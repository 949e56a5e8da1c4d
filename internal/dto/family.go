package dto

import (
	"time"

	"github.com/keluargaku/keluargaku_app/internal/core/domain"
)

// CreateFamilyRequest defines data for creating a new family.
type CreateFamilyRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

// JoinFamilyRequest defines data for joining an existing family.
type JoinFamilyRequest struct {
	FamilyID string `json:"familyID" binding:"required,uuid"`
}

// FamilyResponse defines data returned for a family, members included.
type FamilyResponse struct {
	FamilyID  string         `json:"familyID"`
	Name      string         `json:"name"`
	Members   []UserResponse `json:"members"`
	CreatedAt time.Time      `json:"createdAt"`
	CreatedBy string         `json:"createdBy"`
}

// ToFamilyResponse converts a domain.FamilyWithMembers to its response DTO.
func ToFamilyResponse(f *domain.FamilyWithMembers) FamilyResponse {
	members := make([]UserResponse, len(f.Members))
	for i := range f.Members {
		members[i] = ToUserResponse(&f.Members[i])
	}
	return FamilyResponse{
		FamilyID:  f.Family.FamilyID,
		Name:      f.Family.Name,
		Members:   members,
		CreatedAt: f.Family.CreatedAt,
		CreatedBy: f.Family.CreatedBy,
	}
}
