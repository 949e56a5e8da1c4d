package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/keluargaku/keluargaku_app/internal/core/ports/services"
	"github.com/keluargaku/keluargaku_app/internal/dto"
)

// debtHandler handles HTTP requests for the debt/receivable ledger.
type debtHandler struct {
	debtService portssvc.DebtSvcFacade
	userService portssvc.UserSvcFacade
}

// registerDebtRoutes registers the debt ledger routes.
func registerDebtRoutes(rg *gin.RouterGroup, debtService portssvc.DebtSvcFacade, userService portssvc.UserSvcFacade) {
	h := &debtHandler{debtService: debtService, userService: userService}

	debts := rg.Group("/debts")
	{
		debts.GET("", h.listDebts)
		debts.POST("", h.createDebt)
		debts.GET("/:id", h.getDebt)
		debts.PUT("/:id", h.updateDebt)
		debts.DELETE("/:id", h.deleteDebt)
		debts.POST("/:id/payments", h.addPayment)
		debts.DELETE("/:id/payments/:paymentID", h.deletePayment)
	}
}

// listDebts godoc
// @Summary List debts and receivables
// @Tags debts
// @Produce json
// @Success 200 {array} dto.DebtResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /debts [get]
func (h *debtHandler) listDebts(c *gin.Context) {
	actor, ok := resolveActor(c, h.userService)
	if !ok {
		return
	}

	debts, err := h.debtService.ListDebts(c.Request.Context(), actor)
	if err != nil {
		respondServiceError(c, err, "Failed to list debts")
		return
	}

	c.JSON(http.StatusOK, dto.ToDebtListResponse(debts))
}

// createDebt godoc
// @Summary Create a debt or receivable
// @Tags debts
// @Accept json
// @Produce json
// @Param debt body dto.CreateDebtRequest true "Debt details"
// @Success 201 {object} dto.DebtResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /debts [post]
func (h *debtHandler) createDebt(c *gin.Context) {
	actor, ok := resolveActor(c, h.userService)
	if !ok {
		return
	}

	var req dto.CreateDebtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	debt, err := h.debtService.CreateDebt(c.Request.Context(), actor, req)
	if err != nil {
		respondServiceError(c, err, "Failed to create debt")
		return
	}

	c.JSON(http.StatusCreated, dto.ToDebtResponse(debt))
}

// getDebt godoc
// @Summary Get a debt
// @Description Returns the debt with its payments and derived remaining/settled figures.
// @Tags debts
// @Produce json
// @Param id path string true "Debt ID"
// @Success 200 {object} dto.DebtResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /debts/{id} [get]
func (h *debtHandler) getDebt(c *gin.Context) {
	actor, ok := resolveActor(c, h.userService)
	if !ok {
		return
	}

	debt, err := h.debtService.GetDebt(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve debt")
		return
	}

	c.JSON(http.StatusOK, dto.ToDebtResponse(debt))
}

// updateDebt godoc
// @Summary Update a debt
// @Description Updates debt fields. The paid amount is derived from payments and never written directly.
// @Tags debts
// @Accept json
// @Produce json
// @Param id path string true "Debt ID"
// @Param debt body dto.UpdateDebtRequest true "Fields to update"
// @Success 200 {object} dto.DebtResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /debts/{id} [put]
func (h *debtHandler) updateDebt(c *gin.Context) {
	actor, ok := resolveActor(c, h.userService)
	if !ok {
		return
	}

	var req dto.UpdateDebtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	debt, err := h.debtService.UpdateDebt(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err, "Failed to update debt")
		return
	}

	c.JSON(http.StatusOK, dto.ToDebtResponse(debt))
}

// deleteDebt godoc
// @Summary Delete a debt
// @Tags debts
// @Produce json
// @Param id path string true "Debt ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /debts/{id} [delete]
func (h *debtHandler) deleteDebt(c *gin.Context) {
	actor, ok := resolveActor(c, h.userService)
	if !ok {
		return
	}

	if err := h.debtService.DeleteDebt(c.Request.Context(), actor, c.Param("id")); err != nil {
		respondServiceError(c, err, "Failed to delete debt")
		return
	}

	c.Status(http.StatusNoContent)
}

// addPayment godoc
// @Summary Record a repayment
// @Description Adds a payment and returns the debt with its remaining amount recomputed.
// @Tags debts
// @Accept json
// @Produce json
// @Param id path string true "Debt ID"
// @Param payment body dto.AddDebtPaymentRequest true "Payment details"
// @Success 200 {object} dto.DebtResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /debts/{id}/payments [post]
func (h *debtHandler) addPayment(c *gin.Context) {
	actor, ok := resolveActor(c, h.userService)
	if !ok {
		return
	}

	var req dto.AddDebtPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	debt, err := h.debtService.AddDebtPayment(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err, "Failed to add debt payment")
		return
	}

	c.JSON(http.StatusOK, dto.ToDebtResponse(debt))
}

// deletePayment godoc
// @Summary Remove a repayment
// @Tags debts
// @Produce json
// @Param id path string true "Debt ID"
// @Param paymentID path string true "Payment ID"
// @Success 200 {object} dto.DebtResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /debts/{id}/payments/{paymentID} [delete]
func (h *debtHandler) deletePayment(c *gin.Context) {
	actor, ok := resolveActor(c, h.userService)
	if !ok {
		return
	}

	debt, err := h.debtService.DeleteDebtPayment(c.Request.Context(), actor, c.Param("id"), c.Param("paymentID"))
	if err != nil {
		respondServiceError(c, err, "Failed to delete debt payment")
		return
	}

	c.JSON(http.StatusOK, dto.ToDebtResponse(debt))
}
