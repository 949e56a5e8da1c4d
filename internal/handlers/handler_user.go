package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/keluargaku/keluargaku_app/internal/apperrors"
	"github.com/keluargaku/keluargaku_app/internal/core/domain"
	portssvc "github.com/keluargaku/keluargaku_app/internal/core/ports/services"
	"github.com/keluargaku/keluargaku_app/internal/dto"
	"github.com/keluargaku/keluargaku_app/internal/middleware"
)

// userHandler handles HTTP requests related to users and profiles.
type userHandler struct {
	userService    portssvc.UserSvcFacade
	profileService portssvc.ProfileSvcFacade
}

// newUserHandler creates a new userHandler.
func newUserHandler(us portssvc.UserSvcFacade, ps portssvc.ProfileSvcFacade) *userHandler {
	return &userHandler{
		userService:    us,
		profileService: ps,
	}
}

// registerUserRoutes registers all user- and profile-related routes.
func registerUserRoutes(rg *gin.RouterGroup, userService portssvc.UserSvcFacade, profileService portssvc.ProfileSvcFacade) {
	h := newUserHandler(userService, profileService)

	users := rg.Group("/users")
	{
		users.GET("/:id", h.getUser)    // Own only
		users.PUT("/:id", h.updateUser) // Own only
	}

	profile := rg.Group("/profile")
	{
		profile.GET("", h.getProfile)
		profile.POST("/refresh", h.refreshProfile)
	}
}

// getProfile godoc
// @Summary Resolve the caller's profile
// @Description Loads the authenticated user's profile and, when they belong to a family, the family with its members.
// @Tags profile
// @Produce json
// @Success 200 {object} dto.ProfileResponse
// @Failure 401 {object} ErrorResponse
// @Failure 504 {object} ErrorResponse "Store timeout"
// @Security BearerAuth
// @Router /profile [get]
func (h *userHandler) getProfile(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	profile, err := h.profileService.ResolveProfile(c.Request.Context(), userID, domain.IdentityMetadata{})
	if err != nil {
		logger.Error("Failed to resolve profile", slog.String("error", err.Error()))
		respondServiceError(c, err, "Failed to resolve profile")
		return
	}

	c.JSON(http.StatusOK, dto.ToProfileResponse(profile))
}

// refreshProfile godoc
// @Summary Refresh the caller's profile
// @Description Re-resolves the profile against current store state with bounded retry. On exhaustion the client keeps its previous profile.
// @Tags profile
// @Produce json
// @Success 200 {object} dto.ProfileResponse
// @Failure 401 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse "Refresh retries exhausted"
// @Security BearerAuth
// @Router /profile/refresh [post]
func (h *userHandler) refreshProfile(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	profile, err := h.profileService.Refresh(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrRefreshFailed) {
			logger.Warn("Profile refresh exhausted retries", slog.String("error", err.Error()))
			c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "Refresh failed, keep the current profile"})
			return
		}
		respondServiceError(c, err, "Failed to refresh profile")
		return
	}

	c.JSON(http.StatusOK, dto.ToProfileResponse(profile))
}

// getUser godoc
// @Summary Get a user by ID
// @Description Retrieves details for the authenticated user.
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/{id} [get]
func (h *userHandler) getUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID := c.Param("id")

	loggedInUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}
	if loggedInUserID != userID {
		logger.Warn("User forbidden to access another user's details",
			slog.String("accessor_id", loggedInUserID), slog.String("target_id", userID))
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Forbidden"})
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve user")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// updateUser godoc
// @Summary Update a user
// @Description Updates the authenticated user's name or role. Role changes are rejected while in a family.
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User ID to update"
// @Param user body dto.UpdateUserRequest true "User details to update"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/{id} [put]
func (h *userHandler) updateUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID := c.Param("id")

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	loggedInUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}
	if loggedInUserID != userID {
		logger.Warn("User forbidden to update another user's details",
			slog.String("updater_id", loggedInUserID), slog.String("target_id", userID))
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Forbidden"})
		return
	}

	updatedUser, err := h.userService.UpdateUser(c.Request.Context(), userID, req, loggedInUserID)
	if err != nil {
		respondServiceError(c, err, "Failed to update user")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(updatedUser))
}
