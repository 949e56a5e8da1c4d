package dto

import (
	"time"

	"github.com/keluargaku/keluargaku_app/internal/core/domain"
)

// RegisterRequest defines data for creating a local account.
type RegisterRequest struct {
	Email    string            `json:"email" binding:"required,email"`
	Password string            `json:"password" binding:"required,min=8"`
	Name     string            `json:"name" binding:"required"`
	Role     domain.FamilyRole `json:"role" binding:"required,famrole"`
}

// LoginRequest defines login credentials.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse returns the issued access token. The refresh token travels in
// an HTTP-only cookie, never in the body.
type LoginResponse struct {
	UserID      string    `json:"userID"`
	Name        string    `json:"name"`
	AccessToken string    `json:"accessToken"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// RefreshRequest identifies whose refresh token cookie accompanies the call.
type RefreshRequest struct {
	UserID string `json:"userID" binding:"required,uuid"`
}

// GoogleTokenRequest carries a Google ID token for direct exchange.
type GoogleTokenRequest struct {
	IDToken string `json:"idToken" binding:"required"`
}
