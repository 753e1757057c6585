package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kotashimizu/care-plan/internal/domain"
	"github.com/kotashimizu/care-plan/internal/logger"
	"github.com/kotashimizu/care-plan/internal/services"
)

type QualityHandler struct {
	log        *logger.Logger
	qualitySvc services.QualityService
}

func NewQualityHandler(log *logger.Logger, qualitySvc services.QualityService) *QualityHandler {
	return &QualityHandler{
		log:        log.With("handler", "QualityHandler"),
		qualitySvc: qualitySvc,
	}
}

type qualityCheckRequest struct {
	Plan *domain.IndividualSupportPlan `json:"plan"`
}

// POST /api/quality-check
// Score a finished plan and return improvement advice.
func (h *QualityHandler) QualityCheck(c *gin.Context) {
	var req qualityCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", fmt.Errorf("invalid request body: %w", err))
		return
	}

	result, err := h.qualitySvc.Check(c.Request.Context(), req.Plan)
	countOperation("quality", err)
	if err != nil {
		status, code := statusFor(err)
		h.log.Warn("Quality check failed", "status", status, "error", err)
		RespondError(c, status, code, err)
		return
	}
	RespondOK(c, result)
}
