package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kotashimizu/care-plan/internal/assembly"
	"github.com/kotashimizu/care-plan/internal/export"
	"github.com/kotashimizu/care-plan/internal/logger"
)

type ExportHandler struct {
	log      *logger.Logger
	exporter *export.Exporter
}

func NewExportHandler(log *logger.Logger, exporter *export.Exporter) *ExportHandler {
	return &ExportHandler{
		log:      log.With("handler", "ExportHandler"),
		exporter: exporter,
	}
}

type exportRequest struct {
	assembly.Request
	Options struct {
		Scale      float64 `json:"scale"`
		MarginMM   float64 `json:"marginMm"`
		FitOnePage bool    `json:"fitOnePage"`
		Background string  `json:"background"`
	} `json:"options"`
}

// POST /api/export-pdf
// Assemble the selected options into the document record and stream the
// PDF back.
func (h *ExportHandler) ExportPDF(c *gin.Context) {
	var req exportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", fmt.Errorf("invalid request body: %w", err))
		return
	}
	if !req.ServiceType.Valid() {
		RespondError(c, http.StatusBadRequest, "invalid_request", fmt.Errorf("不明な事業区分です: %s", req.ServiceType))
		return
	}

	doc := assembly.BuildPlanDocument(req.Request)
	out, err := h.exporter.Export(doc, export.Options{
		Scale:      req.Options.Scale,
		MarginMM:   req.Options.MarginMM,
		FitOnePage: req.Options.FitOnePage,
		Background: req.Options.Background,
	})
	countOperation("export", err)
	if err != nil {
		h.log.Error("PDF export failed", "error", err)
		RespondError(c, http.StatusInternalServerError, "export_failed", err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="care-plan.pdf"`)
	c.Data(http.StatusOK, "application/pdf", out)
}
