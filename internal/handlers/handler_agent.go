package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kiranacart/marketplace_backend/internal/apperrors"
	portssvc "github.com/kiranacart/marketplace_backend/internal/core/ports/services"
	"github.com/kiranacart/marketplace_backend/internal/dto"
	"github.com/kiranacart/marketplace_backend/internal/middleware"
)

// agentHandler handles HTTP requests for agent-scoped views: active work and
// statistics.
type agentHandler struct {
	assignmentService portssvc.AssignmentSvcFacade
	statsService      portssvc.StatsSvcFacade
}

func newAgentHandler(as portssvc.AssignmentSvcFacade, ss portssvc.StatsSvcFacade) *agentHandler {
	return &agentHandler{
		assignmentService: as,
		statsService:      ss,
	}
}

// registerAgentRoutes registers agent-scoped routes.
func registerAgentRoutes(rg *gin.RouterGroup, as portssvc.AssignmentSvcFacade, ss portssvc.StatsSvcFacade) {
	h := newAgentHandler(as, ss)

	agents := rg.Group("/agents")
	{
		agents.GET("/:agentID/assignments/active", h.listActiveAssignments)
		agents.GET("/:agentID/stats", h.getStats)
		agents.GET("/:agentID/stats/daily", h.getDailyStats)
	}
}

// listActiveAssignments godoc
// @Summary List an agent's active assignments
// @Tags agents
// @Produce  json
// @Param   agentID path string true "Agent ID"
// @Success 200 {array} dto.AssignmentResponse
// @Router /agents/{agentID}/assignments/active [get]
func (h *agentHandler) listActiveAssignments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	assignments, err := h.assignmentService.ListActiveByAgent(c.Request.Context(), c.Param("agentID"))
	if err != nil {
		logger.Error("Failed to list active assignments from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list active assignments"})
		return
	}

	c.JSON(http.StatusOK, dto.ToAssignmentResponses(assignments))
}

// getStats godoc
// @Summary Get an agent's lifetime statistics
// @Tags agents
// @Produce  json
// @Param   agentID path string true "Agent ID"
// @Success 200 {object} dto.AgentStatsResponse
// @Failure 404 {object} map[string]string "Agent not found"
// @Router /agents/{agentID}/stats [get]
func (h *agentHandler) getStats(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	stats, err := h.statsService.GetAgentStats(c.Request.Context(), c.Param("agentID"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Agent not found"})
		} else {
			logger.Error("Failed to get agent stats from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve agent stats"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToAgentStatsResponse(stats))
}

// getDailyStats godoc
// @Summary Get an agent's statistics for one day
// @Tags agents
// @Produce  json
// @Param   agentID path string true "Agent ID"
// @Param   date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} dto.AgentDailyStatsResponse
// @Failure 400 {object} map[string]string "Invalid date"
// @Failure 404 {object} map[string]string "Agent not found"
// @Router /agents/{agentID}/stats/daily [get]
func (h *agentHandler) getDailyStats(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or missing date, expected YYYY-MM-DD"})
		return
	}

	stats, err := h.statsService.GetAgentDailyStats(c.Request.Context(), c.Param("agentID"), date)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Agent not found"})
		} else {
			logger.Error("Failed to get agent daily stats from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve agent daily stats"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToAgentDailyStatsResponse(stats))
}
