package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kotashimizu/care-plan/internal/logger"
	"github.com/kotashimizu/care-plan/internal/services"
)

type PlanHandler struct {
	log     *logger.Logger
	planSvc services.PlanService
}

func NewPlanHandler(log *logger.Logger, planSvc services.PlanService) *PlanHandler {
	return &PlanHandler{
		log:     log.With("handler", "PlanHandler"),
		planSvc: planSvc,
	}
}

// POST /api/generate-options
// Nine categorized option proposals plus two summary strings.
func (h *PlanHandler) GenerateOptions(c *gin.Context) {
	var req services.OptionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", fmt.Errorf("invalid request body: %w", err))
		return
	}

	result, err := h.planSvc.GenerateOptions(c.Request.Context(), req)
	countOperation("options", err)
	if err != nil {
		status, code := statusFor(err)
		h.log.Warn("Option generation failed", "status", status, "error", err)
		RespondError(c, status, code, err)
		return
	}
	RespondOK(c, result)
}

// POST /api/generate-plan
// One full structured plan from facility settings + interview record.
func (h *PlanHandler) GeneratePlan(c *gin.Context) {
	var req services.PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", fmt.Errorf("invalid request body: %w", err))
		return
	}

	plan, err := h.planSvc.GeneratePlan(c.Request.Context(), req)
	countOperation("plan", err)
	if err != nil {
		status, code := statusFor(err)
		h.log.Warn("Plan generation failed", "status", status, "error", err)
		RespondError(c, status, code, err)
		return
	}
	RespondOK(c, gin.H{"plan": plan})
}
