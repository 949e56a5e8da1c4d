package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/keluargaku/keluargaku_app/internal/core/ports/services"
	"github.com/keluargaku/keluargaku_app/internal/dto"
)

// reportingHandler handles HTTP requests for the monthly summary reports.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
	userService      portssvc.UserSvcFacade
}

// registerReportingRoutes registers the reporting routes.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade, userService portssvc.UserSvcFacade) {
	h := &reportingHandler{reportingService: reportingService, userService: userService}

	reports := rg.Group("/reports")
	{
		reports.GET("/household", h.householdSummary)
		reports.GET("/orders", h.orderSummary)
		reports.GET("/debts", h.debtSummary)
	}
}

// summaryWindow parses the from/to query parameters. When omitted the window
// covers the last twelve months up to the end of the current day.
func summaryWindow(params dto.SummaryParams) (time.Time, time.Time) {
	now := time.Now().UTC()
	from := now.AddDate(-1, 0, 0)
	to := now

	if params.From != "" {
		from, _ = time.Parse("2006-01-02", params.From)
	}
	if params.To != "" {
		parsed, _ := time.Parse("2006-01-02", params.To)
		// Make the 'to' day inclusive.
		to = parsed.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	return from, to
}

// householdSummary godoc
// @Summary Monthly household income/expense summary
// @Tags reports
// @Produce json
// @Param from query string false "Window start (YYYY-MM-DD)"
// @Param to query string false "Window end (YYYY-MM-DD)"
// @Success 200 {object} dto.HouseholdSummaryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/household [get]
func (h *reportingHandler) householdSummary(c *gin.Context) {
	actor, ok := resolveActor(c, h.userService)
	if !ok {
		return
	}

	var params dto.SummaryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	from, to := summaryWindow(params)
	rows, err := h.reportingService.HouseholdSummary(c.Request.Context(), actor, from, to)
	if err != nil {
		respondServiceError(c, err, "Failed to build household summary")
		return
	}

	c.JSON(http.StatusOK, dto.HouseholdSummaryResponse{Rows: rows})
}

// orderSummary godoc
// @Summary Monthly business revenue/expense/profit summary
// @Tags reports
// @Produce json
// @Param from query string false "Window start (YYYY-MM-DD)"
// @Param to query string false "Window end (YYYY-MM-DD)"
// @Success 200 {object} dto.OrderSummaryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/orders [get]
func (h *reportingHandler) orderSummary(c *gin.Context) {
	actor, ok := resolveActor(c, h.userService)
	if !ok {
		return
	}

	var params dto.SummaryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	from, to := summaryWindow(params)
	rows, err := h.reportingService.OrderSummary(c.Request.Context(), actor, from, to)
	if err != nil {
		respondServiceError(c, err, "Failed to build order summary")
		return
	}

	c.JSON(http.StatusOK, dto.OrderSummaryResponse{Rows: rows})
}

// debtSummary godoc
// @Summary Aggregate debt/receivable standing
// @Tags reports
// @Produce json
// @Success 200 {object} domain.DebtSummary
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/debts [get]
func (h *reportingHandler) debtSummary(c *gin.Context) {
	actor, ok := resolveActor(c, h.userService)
	if !ok {
		return
	}

	summary, err := h.reportingService.DebtSummary(c.Request.Context(), actor)
	if err != nil {
		respondServiceError(c, err, "Failed to build debt summary")
		return
	}

	c.JSON(http.StatusOK, summary)
}
