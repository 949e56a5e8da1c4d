package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/keluargaku/keluargaku_app/internal/apperrors"
	"github.com/keluargaku/keluargaku_app/internal/core/domain"
	portssvc "github.com/keluargaku/keluargaku_app/internal/core/ports/services"
	"github.com/keluargaku/keluargaku_app/internal/middleware"
)

// ErrorResponse is the generic error body returned by all handlers.
type ErrorResponse struct {
	Error string `json:"error"`
}

// resolveActor loads the full acting user behind the authenticated request.
// Writes the error response itself and returns false when it cannot.
func resolveActor(c *gin.Context, userService portssvc.UserSvcFacade) (*domain.User, bool) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return nil, false
	}

	actor, err := userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Authenticated user no longer exists", slog.String("user_id", userID))
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		} else {
			logger.Error("Failed to load acting user", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to load user"})
		}
		return nil, false
	}
	return actor, true
}

// respondServiceError maps service errors onto HTTP responses. fallbackMsg is
// used for anything not recognized as a domain error.
func respondServiceError(c *gin.Context, err error, fallbackMsg string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	switch {
	case apperrors.IsRoleSlotTaken(err):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrNotFound), errors.Is(err, apperrors.ErrFamilyNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate), errors.Is(err, apperrors.ErrAlreadyInFamily):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Forbidden"})
	case errors.Is(err, apperrors.ErrUnauthorized), errors.Is(err, apperrors.ErrRefreshTokenExpired):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
	case errors.Is(err, apperrors.ErrTimeout):
		c.JSON(http.StatusGatewayTimeout, ErrorResponse{Error: "Upstream timeout, retry shortly"})
	default:
		logger.Error(fallbackMsg, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: fallbackMsg})
	}
}
