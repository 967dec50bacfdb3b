package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"memoir-backend/application/services"
	"memoir-backend/pkg/common"
)

// ExportHandler serves the rendered project documents as downloads.
type ExportHandler struct {
	export *services.ExportService
	logger *zap.Logger
}

// NewExportHandler creates a new export handler
func NewExportHandler(export *services.ExportService, logger *zap.Logger) *ExportHandler {
	return &ExportHandler{export: export, logger: logger}
}

// Download handles GET /api/projects/{projectID}/export/{format}
func (h *ExportHandler) Download(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectID")

	var (
		doc services.Document
		err error
	)
	switch format := chi.URLParam(r, "format"); format {
	case "json":
		doc, err = h.export.JSON(projectID)
	case "text":
		doc, err = h.export.Text(projectID)
	case "html":
		doc, err = h.export.HTML(projectID)
	default:
		common.RespondError(w, http.StatusNotFound, "Not found")
		return
	}
	if err != nil {
		h.logger.Error("export failed", zap.String("projectID", projectID), zap.Error(err))
		common.RespondAppError(w, err)
		return
	}

	common.RespondAttachment(w, doc.Filename, doc.ContentType, doc.Body)
}
