package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"memoir-backend/application/services"
	"memoir-backend/pkg/common"
)

// UploadHandler accepts multipart image uploads for a project.
type UploadHandler struct {
	upload *services.UploadService
	logger *zap.Logger
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(upload *services.UploadService, logger *zap.Logger) *UploadHandler {
	return &UploadHandler{upload: upload, logger: logger}
}

// UploadResponse carries the relative URL of the stored image.
type UploadResponse struct {
	URL string `json:"url"`
}

// Upload handles POST /api/projects/{projectID}/upload. The image arrives
// as the multipart field "image".
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	// Multipart framing adds overhead beyond the image itself.
	r.Body = http.MaxBytesReader(w, r.Body, services.MaxUploadSize+1<<20)

	file, header, err := r.FormFile("image")
	if err != nil {
		common.RespondError(w, http.StatusBadRequest, "No image received")
		return
	}
	defer file.Close()

	url, err := h.upload.Save(chi.URLParam(r, "projectID"), file, header.Size)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, UploadResponse{URL: url})
}
