package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/keluargaku/keluargaku_app/internal/core/ports/services"
	"github.com/keluargaku/keluargaku_app/internal/dto"
)

// householdHandler handles HTTP requests for the household ledger.
type householdHandler struct {
	householdService portssvc.HouseholdSvcFacade
	userService      portssvc.UserSvcFacade
}

// registerHouseholdRoutes registers the household ledger routes.
func registerHouseholdRoutes(rg *gin.RouterGroup, householdService portssvc.HouseholdSvcFacade, userService portssvc.UserSvcFacade) {
	h := &householdHandler{householdService: householdService, userService: userService}

	txns := rg.Group("/household/transactions")
	{
		txns.GET("", h.listTransactions)
		txns.POST("", h.createTransaction)
		txns.GET("/:id", h.getTransaction)
		txns.PUT("/:id", h.updateTransaction)
		txns.DELETE("/:id", h.deleteTransaction)
	}
}

// listTransactions godoc
// @Summary List household transactions
// @Description Lists transactions visible to the caller: family-wide when in a family, own rows otherwise.
// @Tags household
// @Produce json
// @Success 200 {array} dto.HouseholdTransactionResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /household/transactions [get]
func (h *householdHandler) listTransactions(c *gin.Context) {
	actor, ok := resolveActor(c, h.userService)
	if !ok {
		return
	}

	txns, err := h.householdService.ListTransactions(c.Request.Context(), actor)
	if err != nil {
		respondServiceError(c, err, "Failed to list transactions")
		return
	}

	c.JSON(http.StatusOK, dto.ToHouseholdTransactionListResponse(txns))
}

// createTransaction godoc
// @Summary Create a household transaction
// @Tags household
// @Accept json
// @Produce json
// @Param transaction body dto.CreateHouseholdTransactionRequest true "Transaction details"
// @Success 201 {object} dto.HouseholdTransactionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /household/transactions [post]
func (h *householdHandler) createTransaction(c *gin.Context) {
	actor, ok := resolveActor(c, h.userService)
	if !ok {
		return
	}

	var req dto.CreateHouseholdTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	txn, err := h.householdService.CreateTransaction(c.Request.Context(), actor, req)
	if err != nil {
		respondServiceError(c, err, "Failed to create transaction")
		return
	}

	c.JSON(http.StatusCreated, dto.ToHouseholdTransactionResponse(txn))
}

// getTransaction godoc
// @Summary Get a household transaction
// @Tags household
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} dto.HouseholdTransactionResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /household/transactions/{id} [get]
func (h *householdHandler) getTransaction(c *gin.Context) {
	actor, ok := resolveActor(c, h.userService)
	if !ok {
		return
	}

	txn, err := h.householdService.GetTransaction(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve transaction")
		return
	}

	c.JSON(http.StatusOK, dto.ToHouseholdTransactionResponse(txn))
}

// updateTransaction godoc
// @Summary Update a household transaction
// @Description Any family member may edit any family record; edits are attributed in the history log.
// @Tags household
// @Accept json
// @Produce json
// @Param id path string true "Transaction ID"
// @Param transaction body dto.UpdateHouseholdTransactionRequest true "Fields to update"
// @Success 200 {object} dto.HouseholdTransactionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /household/transactions/{id} [put]
func (h *householdHandler) updateTransaction(c *gin.Context) {
	actor, ok := resolveActor(c, h.userService)
	if !ok {
		return
	}

	var req dto.UpdateHouseholdTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	txn, err := h.householdService.UpdateTransaction(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err, "Failed to update transaction")
		return
	}

	c.JSON(http.StatusOK, dto.ToHouseholdTransactionResponse(txn))
}

// deleteTransaction godoc
// @Summary Delete a household transaction
// @Tags household
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /household/transactions/{id} [delete]
func (h *householdHandler) deleteTransaction(c *gin.Context) {
	actor, ok := resolveActor(c, h.userService)
	if !ok {
		return
	}

	if err := h.householdService.DeleteTransaction(c.Request.Context(), actor, c.Param("id")); err != nil {
		respondServiceError(c, err, "Failed to delete transaction")
		return
	}

	c.Status(http.StatusNoContent)
}
