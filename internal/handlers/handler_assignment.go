package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kiranacart/marketplace_backend/internal/apperrors"
	portssvc "github.com/kiranacart/marketplace_backend/internal/core/ports/services"
	"github.com/kiranacart/marketplace_backend/internal/dto"
	"github.com/kiranacart/marketplace_backend/internal/middleware"
)

// assignmentHandler handles HTTP requests for the delivery assignment
// lifecycle, including the OTP handshake that closes a delivery.
type assignmentHandler struct {
	assignmentService portssvc.AssignmentSvcFacade
}

func newAssignmentHandler(as portssvc.AssignmentSvcFacade) *assignmentHandler {
	return &assignmentHandler{assignmentService: as}
}

// registerAssignmentRoutes registers routes related to delivery assignments.
func registerAssignmentRoutes(rg *gin.RouterGroup, as portssvc.AssignmentSvcFacade) {
	h := newAssignmentHandler(as)

	assignments := rg.Group("/assignments")
	{
		assignments.POST("", h.createAssignment)
		assignments.GET("/:id", h.getAssignment)
		assignments.POST("/:id/accept", h.accept)
		assignments.POST("/:id/pickup", h.startPickup)
		assignments.POST("/:id/transit", h.markInTransit)
		assignments.POST("/:id/fail", h.markFailed)
		assignments.POST("/:id/deliver", h.markDelivered)
		assignments.POST("/:id/otp", h.requestOtp)
		assignments.POST("/:id/confirm", h.confirmDelivery)
	}
}

// agentFromHeaders pulls the acting agent from the X-Agent-ID header.
func agentFromHeaders(c *gin.Context) (string, bool) {
	agentID := c.GetHeader("X-Agent-ID")
	if agentID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "X-Agent-ID header is required"})
		return "", false
	}
	return agentID, true
}

// respondAssignmentError maps service errors to HTTP codes shared by all
// lifecycle endpoints.
func respondAssignmentError(c *gin.Context, err error, action string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Assignment not found"})
	case errors.Is(err, apperrors.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrOtpMismatch):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Confirmation code does not match"})
	case errors.Is(err, apperrors.ErrNoOtpIssued):
		c.JSON(http.StatusBadRequest, gin.H{"error": "No confirmation code has been issued"})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.Error("Failed to "+action, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + action + ", please try again"})
	}
}

// createAssignment godoc
// @Summary Assign an order to a delivery agent
// @Tags assignments
// @Accept  json
// @Produce  json
// @Param   assignment body dto.CreateAssignmentRequest true "Assignment details"
// @Success 201 {object} dto.AssignmentResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 404 {object} map[string]string "Order or agent not found"
// @Router /assignments [post]
func (h *assignmentHandler) createAssignment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateAssignment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	assignment, err := h.assignmentService.CreateAssignment(c.Request.Context(), req, actorFromHeaders(c))
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrDuplicate):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to create assignment in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create assignment"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToAssignmentResponse(assignment))
}

// getAssignment godoc
// @Summary Get a delivery assignment by ID
// @Tags assignments
// @Produce  json
// @Param   id path string true "Assignment ID"
// @Success 200 {object} dto.AssignmentResponse
// @Failure 404 {object} map[string]string "Assignment not found"
// @Router /assignments/{id} [get]
func (h *assignmentHandler) getAssignment(c *gin.Context) {
	assignment, err := h.assignmentService.GetAssignmentByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondAssignmentError(c, err, "retrieve assignment")
		return
	}
	c.JSON(http.StatusOK, dto.ToAssignmentResponse(assignment))
}

// accept godoc
// @Summary Accept an assignment
// @Description Moves the assignment into the agent's hands and flips the order's items to out_for_delivery.
// @Tags assignments
// @Produce  json
// @Param   id path string true "Assignment ID"
// @Param   X-Agent-ID header string true "Agent ID"
// @Success 200 {object} dto.AssignmentResponse
// @Failure 409 {object} map[string]string "Assignment is not in a state that can be accepted"
// @Router /assignments/{id}/accept [post]
func (h *assignmentHandler) accept(c *gin.Context) {
	agentID, ok := agentFromHeaders(c)
	if !ok {
		return
	}
	assignment, err := h.assignmentService.Accept(c.Request.Context(), c.Param("id"), agentID)
	if err != nil {
		respondAssignmentError(c, err, "accept assignment")
		return
	}
	c.JSON(http.StatusOK, dto.ToAssignmentResponse(assignment))
}

// startPickup godoc
// @Summary Start parcel pickup
// @Tags assignments
// @Produce  json
// @Param   id path string true "Assignment ID"
// @Param   X-Agent-ID header string true "Agent ID"
// @Success 200 {object} dto.AssignmentResponse
// @Failure 409 {object} map[string]string "Assignment is not in a state that allows pickup"
// @Router /assignments/{id}/pickup [post]
func (h *assignmentHandler) startPickup(c *gin.Context) {
	agentID, ok := agentFromHeaders(c)
	if !ok {
		return
	}
	assignment, err := h.assignmentService.StartPickup(c.Request.Context(), c.Param("id"), agentID)
	if err != nil {
		respondAssignmentError(c, err, "start pickup")
		return
	}
	c.JSON(http.StatusOK, dto.ToAssignmentResponse(assignment))
}

// markInTransit godoc
// @Summary Mark the parcel in transit
// @Tags assignments
// @Produce  json
// @Param   id path string true "Assignment ID"
// @Param   X-Agent-ID header string true "Agent ID"
// @Success 200 {object} dto.AssignmentResponse
// @Failure 409 {object} map[string]string "Assignment is not in a state that allows transit"
// @Router /assignments/{id}/transit [post]
func (h *assignmentHandler) markInTransit(c *gin.Context) {
	agentID, ok := agentFromHeaders(c)
	if !ok {
		return
	}
	assignment, err := h.assignmentService.MarkInTransit(c.Request.Context(), c.Param("id"), agentID)
	if err != nil {
		respondAssignmentError(c, err, "mark in transit")
		return
	}
	c.JSON(http.StatusOK, dto.ToAssignmentResponse(assignment))
}

// markFailed godoc
// @Summary Record a failed delivery attempt
// @Description Records a failed attempt. The assignment stays retryable and no money moves.
// @Tags assignments
// @Accept  json
// @Produce  json
// @Param   id path string true "Assignment ID"
// @Param   X-Agent-ID header string true "Agent ID"
// @Param   reason body dto.MarkFailedRequest true "Failure reason"
// @Success 200 {object} dto.AssignmentResponse
// @Failure 409 {object} map[string]string "Assignment is terminal"
// @Router /assignments/{id}/fail [post]
func (h *assignmentHandler) markFailed(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	agentID, ok := agentFromHeaders(c)
	if !ok {
		return
	}

	var req dto.MarkFailedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for MarkFailed", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	assignment, err := h.assignmentService.MarkFailed(c.Request.Context(), c.Param("id"), agentID, req.Reason)
	if err != nil {
		respondAssignmentError(c, err, "record failed attempt")
		return
	}
	c.JSON(http.StatusOK, dto.ToAssignmentResponse(assignment))
}

// markDelivered godoc
// @Summary Mark the delivery completed
// @Description Settles the delivery directly, without the OTP handshake: terminal status, commission and wallet credit in one transaction. Repeating the call is a no-op returning the settled assignment.
// @Tags assignments
// @Produce  json
// @Param   id path string true "Assignment ID"
// @Param   X-Agent-ID header string true "Agent ID"
// @Success 200 {object} dto.AssignmentResponse
// @Failure 404 {object} map[string]string "Assignment not found"
// @Router /assignments/{id}/deliver [post]
func (h *assignmentHandler) markDelivered(c *gin.Context) {
	agentID, ok := agentFromHeaders(c)
	if !ok {
		return
	}
	assignment, err := h.assignmentService.MarkDelivered(c.Request.Context(), c.Param("id"), agentID)
	if err != nil {
		respondAssignmentError(c, err, "mark delivered")
		return
	}
	c.JSON(http.StatusOK, dto.ToAssignmentResponse(assignment))
}

// requestOtp godoc
// @Summary Issue a delivery confirmation code
// @Description Issues a fresh code for an in-transit assignment. The caller forwards the code to the customer.
// @Tags assignments
// @Produce  json
// @Param   id path string true "Assignment ID"
// @Param   X-Agent-ID header string true "Agent ID"
// @Success 200 {object} dto.OtpResponse
// @Failure 409 {object} map[string]string "Assignment is not in transit"
// @Router /assignments/{id}/otp [post]
func (h *assignmentHandler) requestOtp(c *gin.Context) {
	agentID, ok := agentFromHeaders(c)
	if !ok {
		return
	}
	resp, err := h.assignmentService.RequestDeliveryOtp(c.Request.Context(), c.Param("id"), agentID)
	if err != nil {
		respondAssignmentError(c, err, "issue confirmation code")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// confirmDelivery godoc
// @Summary Confirm delivery with the customer's code
// @Description Verifies the code and, on match, settles the delivery: terminal status, commission and wallet credit in one transaction. Confirming an already-settled delivery is a no-op.
// @Tags assignments
// @Accept  json
// @Produce  json
// @Param   id path string true "Assignment ID"
// @Param   X-Agent-ID header string true "Agent ID"
// @Param   code body dto.ConfirmOtpRequest true "Confirmation code"
// @Success 200 {object} dto.AssignmentResponse
// @Failure 400 {object} map[string]string "Code mismatch or no code issued"
// @Router /assignments/{id}/confirm [post]
func (h *assignmentHandler) confirmDelivery(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	agentID, ok := agentFromHeaders(c)
	if !ok {
		return
	}

	var req dto.ConfirmOtpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ConfirmDelivery", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	assignment, err := h.assignmentService.ConfirmDeliveryWithOtp(c.Request.Context(), c.Param("id"), agentID, req.Code)
	if err != nil {
		respondAssignmentError(c, err, "confirm delivery")
		return
	}
	c.JSON(http.StatusOK, dto.ToAssignmentResponse(assignment))
}
