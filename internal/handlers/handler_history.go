package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	portssvc "github.com/keluargaku/keluargaku_app/internal/core/ports/services"
	"github.com/keluargaku/keluargaku_app/internal/dto"
)

// historyHandler handles HTTP requests for the edit-history log.
type historyHandler struct {
	historyService portssvc.HistorySvcFacade
	userService    portssvc.UserSvcFacade
}

// registerHistoryRoutes registers the edit-history routes.
func registerHistoryRoutes(rg *gin.RouterGroup, historyService portssvc.HistorySvcFacade, userService portssvc.UserSvcFacade) {
	h := &historyHandler{historyService: historyService, userService: userService}

	history := rg.Group("/history")
	{
		history.GET("", h.listRecent)
		history.GET("/:collection/:id", h.listForRecord)
	}
}

// listRecent godoc
// @Summary List recent edit-history entries
// @Tags history
// @Produce json
// @Param limit query int false "Maximum entries to return"
// @Success 200 {object} dto.HistoryListResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /history [get]
func (h *historyHandler) listRecent(c *gin.Context) {
	actor, ok := resolveActor(c, h.userService)
	if !ok {
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid limit parameter"})
			return
		}
		limit = parsed
	}

	entries, err := h.historyService.ListRecent(c.Request.Context(), actor, limit)
	if err != nil {
		respondServiceError(c, err, "Failed to list history")
		return
	}

	c.JSON(http.StatusOK, dto.HistoryListResponse{Entries: entries})
}

// listForRecord godoc
// @Summary List the edit history of a single record
// @Tags history
// @Produce json
// @Param collection path string true "Collection name"
// @Param id path string true "Record ID"
// @Success 200 {object} dto.HistoryListResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /history/{collection}/{id} [get]
func (h *historyHandler) listForRecord(c *gin.Context) {
	actor, ok := resolveActor(c, h.userService)
	if !ok {
		return
	}

	entries, err := h.historyService.ListForRecord(c.Request.Context(), actor, c.Param("collection"), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to list record history")
		return
	}

	c.JSON(http.StatusOK, dto.HistoryListResponse{Entries: entries})
}
