package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/spendlens/spendlens_backend/internal/apperrors"
	portssvc "github.com/spendlens/spendlens_backend/internal/core/ports/services"
	"github.com/spendlens/spendlens_backend/internal/dto"
	"github.com/spendlens/spendlens_backend/internal/middleware"
)

// alertHandler handles HTTP requests related to budget alerts.
type alertHandler struct {
	alertService portssvc.AlertSvcFacade
}

// registerAlertRoutes registers routes related to budget alerts.
func registerAlertRoutes(rg *gin.RouterGroup, alertService portssvc.AlertSvcFacade) {
	h := &alertHandler{alertService: alertService}

	alerts := rg.Group("/alerts")
	{
		alerts.GET("", h.listAlerts)
		alerts.POST("/:id/read", h.markAlertRead)
	}

	// Per-budget alert history lives under the budget resource.
	rg.GET("/budgets/:id/alerts", h.listBudgetAlerts)
}

// listAlerts godoc
// @Summary List budget alerts
// @Description Retrieves the user's budget alerts, newest first
// @Tags alerts
// @Produce json
// @Param limit query int false "Max results" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {array} dto.AlertResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /alerts [get]
func (h *alertHandler) listAlerts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var params dto.ListAlertsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	alerts, err := h.alertService.ListAlerts(c.Request.Context(), userID, params.Limit, params.Offset)
	if err != nil {
		logger.Error("Failed to list alerts", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list alerts"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListAlertResponse(alerts))
}

// listBudgetAlerts godoc
// @Summary List alerts for a budget
// @Description Retrieves all alerts raised against one of the user's budgets, newest first
// @Tags alerts
// @Produce json
// @Param id path string true "Budget ID"
// @Success 200 {array} dto.AlertResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /budgets/{id}/alerts [get]
func (h *alertHandler) listBudgetAlerts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	alerts, err := h.alertService.ListBudgetAlerts(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Budget not found"})
			return
		}
		logger.Error("Failed to list budget alerts", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list budget alerts"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListAlertResponse(alerts))
}

// markAlertRead godoc
// @Summary Mark an alert as read
// @Tags alerts
// @Produce json
// @Param id path string true "Alert ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /alerts/{id}/read [post]
func (h *alertHandler) markAlertRead(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.alertService.MarkAlertRead(c.Request.Context(), userID, c.Param("id")); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Alert not found"})
			return
		}
		logger.Error("Failed to mark alert read", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to mark alert read"})
		return
	}

	c.Status(http.StatusNoContent)
}
