package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/keluargaku/keluargaku_app/internal/core/ports/services"
	"github.com/keluargaku/keluargaku_app/internal/dto"
)

// orderHandler handles HTTP requests for the business order ledger. Every
// route is gated to AYAH by the service layer.
type orderHandler struct {
	orderService portssvc.OrderSvcFacade
	userService  portssvc.UserSvcFacade
}

// registerOrderRoutes registers the order ledger routes.
func registerOrderRoutes(rg *gin.RouterGroup, orderService portssvc.OrderSvcFacade, userService portssvc.UserSvcFacade) {
	h := &orderHandler{orderService: orderService, userService: userService}

	orders := rg.Group("/orders")
	{
		orders.GET("", h.listOrders)
		orders.POST("", h.createOrder)
		orders.GET("/:id", h.getOrder)
		orders.PUT("/:id", h.updateOrder)
		orders.DELETE("/:id", h.deleteOrder)
		orders.POST("/:id/expenses", h.addExpense)
		orders.DELETE("/:id/expenses/:expenseID", h.deleteExpense)
	}
}

// listOrders godoc
// @Summary List business orders
// @Tags orders
// @Produce json
// @Success 200 {array} dto.OrderResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "Caller is not AYAH"
// @Security BearerAuth
// @Router /orders [get]
func (h *orderHandler) listOrders(c *gin.Context) {
	actor, ok := resolveActor(c, h.userService)
	if !ok {
		return
	}

	orders, err := h.orderService.ListOrders(c.Request.Context(), actor)
	if err != nil {
		respondServiceError(c, err, "Failed to list orders")
		return
	}

	c.JSON(http.StatusOK, dto.ToOrderListResponse(orders))
}

// createOrder godoc
// @Summary Create a business order
// @Tags orders
// @Accept json
// @Produce json
// @Param order body dto.CreateOrderRequest true "Order details"
// @Success 201 {object} dto.OrderResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /orders [post]
func (h *orderHandler) createOrder(c *gin.Context) {
	actor, ok := resolveActor(c, h.userService)
	if !ok {
		return
	}

	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), actor, req)
	if err != nil {
		respondServiceError(c, err, "Failed to create order")
		return
	}

	c.JSON(http.StatusCreated, dto.ToOrderResponse(order))
}

// getOrder godoc
// @Summary Get a business order
// @Description Returns the order with its expenses and derived income/profit figures.
// @Tags orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} dto.OrderResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /orders/{id} [get]
func (h *orderHandler) getOrder(c *gin.Context) {
	actor, ok := resolveActor(c, h.userService)
	if !ok {
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve order")
		return
	}

	c.JSON(http.StatusOK, dto.ToOrderResponse(order))
}

// updateOrder godoc
// @Summary Update a business order
// @Tags orders
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param order body dto.UpdateOrderRequest true "Fields to update"
// @Success 200 {object} dto.OrderResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /orders/{id} [put]
func (h *orderHandler) updateOrder(c *gin.Context) {
	actor, ok := resolveActor(c, h.userService)
	if !ok {
		return
	}

	var req dto.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	order, err := h.orderService.UpdateOrder(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err, "Failed to update order")
		return
	}

	c.JSON(http.StatusOK, dto.ToOrderResponse(order))
}

// deleteOrder godoc
// @Summary Delete a business order
// @Tags orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /orders/{id} [delete]
func (h *orderHandler) deleteOrder(c *gin.Context) {
	actor, ok := resolveActor(c, h.userService)
	if !ok {
		return
	}

	if err := h.orderService.DeleteOrder(c.Request.Context(), actor, c.Param("id")); err != nil {
		respondServiceError(c, err, "Failed to delete order")
		return
	}

	c.Status(http.StatusNoContent)
}

// addExpense godoc
// @Summary Attach an expense to an order
// @Description Adds a cost to the order and returns the order with profit recomputed.
// @Tags orders
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param expense body dto.AddOrderExpenseRequest true "Expense details"
// @Success 200 {object} dto.OrderResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /orders/{id}/expenses [post]
func (h *orderHandler) addExpense(c *gin.Context) {
	actor, ok := resolveActor(c, h.userService)
	if !ok {
		return
	}

	var req dto.AddOrderExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	order, err := h.orderService.AddOrderExpense(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err, "Failed to add order expense")
		return
	}

	c.JSON(http.StatusOK, dto.ToOrderResponse(order))
}

// deleteExpense godoc
// @Summary Detach an expense from an order
// @Tags orders
// @Produce json
// @Param id path string true "Order ID"
// @Param expenseID path string true "Expense ID"
// @Success 200 {object} dto.OrderResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /orders/{id}/expenses/{expenseID} [delete]
func (h *orderHandler) deleteExpense(c *gin.Context) {
	actor, ok := resolveActor(c, h.userService)
	if !ok {
		return
	}

	order, err := h.orderService.DeleteOrderExpense(c.Request.Context(), actor, c.Param("id"), c.Param("expenseID"))
	if err != nil {
		respondServiceError(c, err, "Failed to delete order expense")
		return
	}

	c.JSON(http.StatusOK, dto.ToOrderResponse(order))
}
