package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"memoir-backend/domain/memoir"
	"memoir-backend/infrastructure/persistence/filestore"
	"memoir-backend/pkg/common"
	"memoir-backend/pkg/utils"
)

// ChapterHandler handles chapter-related HTTP requests
type ChapterHandler struct {
	store  *filestore.Store
	logger *zap.Logger
}

// NewChapterHandler creates a new chapter handler
func NewChapterHandler(store *filestore.Store, logger *zap.Logger) *ChapterHandler {
	return &ChapterHandler{store: store, logger: logger}
}

// ReorderRequest is the body of PUT .../chapters/reorder.
type ReorderRequest struct {
	Order []string `json:"order" validate:"required"`
}

// ListChapters handles GET /api/projects/{projectID}/chapters
func (h *ChapterHandler) ListChapters(w http.ResponseWriter, r *http.Request) {
	chapters, err := h.store.ListChapters(chi.URLParam(r, "projectID"))
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, chapters)
}

// CreateChapter handles POST /api/projects/{projectID}/chapters
func (h *ChapterHandler) CreateChapter(w http.ResponseWriter, r *http.Request) {
	var patch memoir.ChapterPatch
	if err := common.ParseJSONBody(r, &patch, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := utils.ValidateStruct(patch); err != nil {
		common.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	chapter, err := h.store.CreateChapter(chi.URLParam(r, "projectID"), patch)
	if err != nil {
		h.logger.Error("failed to create chapter", zap.Error(err))
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, chapter)
}

// UpdateChapter handles PUT /api/projects/{projectID}/chapters/{chapterID}
func (h *ChapterHandler) UpdateChapter(w http.ResponseWriter, r *http.Request) {
	var patch memoir.ChapterPatch
	if err := common.ParseJSONBody(r, &patch, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := utils.ValidateStruct(patch); err != nil {
		common.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	chapter, err := h.store.UpdateChapter(chi.URLParam(r, "projectID"), chi.URLParam(r, "chapterID"), patch)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, chapter)
}

// DeleteChapter handles DELETE /api/projects/{projectID}/chapters/{chapterID}
func (h *ChapterHandler) DeleteChapter(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteChapter(chi.URLParam(r, "projectID"), chi.URLParam(r, "chapterID")); err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondOK(w)
}

// ReorderChapters handles PUT /api/projects/{projectID}/chapters/reorder.
// Chapters named in the order list come first in that order; chapters the
// list omits keep their original relative order at the end.
func (h *ChapterHandler) ReorderChapters(w http.ResponseWriter, r *http.Request) {
	var req ReorderRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	chapters, err := h.store.ReorderChapters(chi.URLParam(r, "projectID"), req.Order)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, chapters)
}
