package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/keluargaku/keluargaku_app/internal/core/ports/services"
	"github.com/keluargaku/keluargaku_app/internal/dto"
	"github.com/keluargaku/keluargaku_app/internal/middleware"
)

// familyHandler handles HTTP requests related to families.
type familyHandler struct {
	familyService portssvc.FamilySvcFacade
	userService   portssvc.UserSvcFacade
}

// registerFamilyRoutes registers all family-related routes.
func registerFamilyRoutes(rg *gin.RouterGroup, familyService portssvc.FamilySvcFacade, userService portssvc.UserSvcFacade) {
	h := &familyHandler{familyService: familyService, userService: userService}

	families := rg.Group("/families")
	{
		families.POST("", h.createFamily)
		families.GET("/:id", h.getFamily)
		families.POST("/join", h.joinFamily)
		families.POST("/leave", h.leaveFamily)
	}
}

// createFamily godoc
// @Summary Create a family
// @Description Creates a family and seats the caller as its first member.
// @Tags families
// @Accept json
// @Produce json
// @Param family body dto.CreateFamilyRequest true "Family details"
// @Success 201 {object} dto.FamilyResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Caller already belongs to a family"
// @Security BearerAuth
// @Router /families [post]
func (h *familyHandler) createFamily(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateFamilyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	family, err := h.familyService.CreateFamily(c.Request.Context(), req.Name, userID)
	if err != nil {
		logger.Warn("Failed to create family", slog.String("error", err.Error()))
		respondServiceError(c, err, "Failed to create family")
		return
	}

	c.JSON(http.StatusCreated, dto.ToFamilyResponse(family))
}

// getFamily godoc
// @Summary Get a family by ID
// @Description Retrieves a family with its derived member list.
// @Tags families
// @Produce json
// @Param id path string true "Family ID"
// @Success 200 {object} dto.FamilyResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /families/{id} [get]
func (h *familyHandler) getFamily(c *gin.Context) {
	familyID := c.Param("id")

	family, err := h.familyService.GetFamilyByID(c.Request.Context(), familyID)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve family")
		return
	}

	c.JSON(http.StatusOK, dto.ToFamilyResponse(family))
}

// joinFamily godoc
// @Summary Join a family
// @Description Joins the caller to an existing family. Fails when the caller already belongs to a family or the family already has a member with the caller's role.
// @Tags families
// @Accept json
// @Produce json
// @Param join body dto.JoinFamilyRequest true "Family to join"
// @Success 200 {object} dto.FamilyResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Family not found"
// @Failure 409 {object} ErrorResponse "Role slot taken or already in a family"
// @Security BearerAuth
// @Router /families/join [post]
func (h *familyHandler) joinFamily(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.JoinFamilyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.familyService.JoinFamily(c.Request.Context(), userID, req.FamilyID); err != nil {
		logger.Warn("Failed to join family",
			slog.String("family_id", req.FamilyID), slog.String("error", err.Error()))
		respondServiceError(c, err, "Failed to join family")
		return
	}

	family, err := h.familyService.GetFamilyByID(c.Request.Context(), req.FamilyID)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve family")
		return
	}

	c.JSON(http.StatusOK, dto.ToFamilyResponse(family))
}

// leaveFamily godoc
// @Summary Leave the current family
// @Description Detaches the caller from their family. A no-op when the caller is solo.
// @Tags families
// @Produce json
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /families/leave [post]
func (h *familyHandler) leaveFamily(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.familyService.LeaveFamily(c.Request.Context(), userID); err != nil {
		respondServiceError(c, err, "Failed to leave family")
		return
	}

	c.Status(http.StatusNoContent)
}
