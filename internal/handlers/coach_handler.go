package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/coachdesk/coach-service/internal/metrics"
	"github.com/coachdesk/coach-service/internal/services"
	"github.com/coachdesk/coach-service/internal/utils"
	"github.com/coachdesk/coach-service/internal/validator"
)

// ErrorResponse is the JSON body returned on every failed request.
type ErrorResponse struct {
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

type CoachHandler struct {
	service services.CoachService
	logger  utils.Logger
}

func NewCoachHandler(service services.CoachService, logger utils.Logger) *CoachHandler {
	return &CoachHandler{
		service: service,
		logger:  logger,
	}
}

// ===== COACH ENDPOINTS =====

// ListCoaches returns the full collection in insertion order
func (h *CoachHandler) ListCoaches(c *gin.Context) {
	coaches, err := h.service.List(c.Request.Context())
	metrics.ObserveOperation("list", err)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, coaches)
}

// GetCoach returns a single coach by id
func (h *CoachHandler) GetCoach(c *gin.Context) {
	id := c.Param("id")

	coach, err := h.service.GetByID(c.Request.Context(), id)
	metrics.ObserveOperation("get", err)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, coach)
}

// CreateCoach validates the request and appends a new record
func (h *CoachHandler) CreateCoach(c *gin.Context) {
	var req services.CreateCoachRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	coach, err := h.service.Create(c.Request.Context(), &req)
	metrics.ObserveOperation("create", err)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, coach)
}

// UpdateCoach applies a partial update; omitted fields stay unchanged
func (h *CoachHandler) UpdateCoach(c *gin.Context) {
	id := c.Param("id")

	var req services.UpdateCoachRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	coach, err := h.service.Update(c.Request.Context(), id, &req)
	metrics.ObserveOperation("update", err)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, coach)
}

// DeleteCoach removes a record by id
func (h *CoachHandler) DeleteCoach(c *gin.Context) {
	id := c.Param("id")

	ack, err := h.service.Delete(c.Request.Context(), id)
	metrics.ObserveOperation("delete", err)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, ack)
}

// ExportCoaches streams the collection as an xlsx workbook
func (h *CoachHandler) ExportCoaches(c *gin.Context) {
	workbook, err := h.service.ExportXLSX(c.Request.Context())
	metrics.ObserveOperation("export", err)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := workbook.Write(&buf); err != nil {
		h.handleServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("coaches-%s.xlsx", time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// ===== ERROR HANDLING =====

func (h *CoachHandler) handleServiceError(c *gin.Context, err error) {
	// Map service errors to HTTP status codes
	var validationErrs validator.ValidationErrors
	switch {
	case errors.As(err, &validationErrs):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Details: validationErrs,
		})
	case errors.Is(err, services.ErrCoachNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Message: "coach not found",
		})
	default:
		utils.LoggerFromContext(c, h.logger).Error("Unexpected service error", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "Internal server error",
		})
	}
}
