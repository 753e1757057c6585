package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kotashimizu/care-plan/internal/logger"
	"github.com/kotashimizu/care-plan/internal/validation"
)

type ValidateHandler struct {
	log *logger.Logger
}

func NewValidateHandler(log *logger.Logger) *ValidateHandler {
	return &ValidateHandler{log: log.With("handler", "ValidateHandler")}
}

type validateRequest struct {
	InterviewRecord string `json:"interviewRecord"`
}

type validateResponse struct {
	validation.Result
	Summary string `json:"summary"`
}

// POST /api/validate-interview
// Advisory keyword check on the interview record. Never blocks
// generation; the caller decides what to do with the warnings.
func (h *ValidateHandler) ValidateInterview(c *gin.Context) {
	var req validateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", fmt.Errorf("invalid request body: %w", err))
		return
	}

	result := validation.ValidateInterviewRecord(req.InterviewRecord)
	RespondOK(c, validateResponse{
		Result:  result,
		Summary: validation.Summary(result),
	})
}
