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

// MemoryHandler handles memory-related HTTP requests
type MemoryHandler struct {
	store  *filestore.Store
	logger *zap.Logger
}

// NewMemoryHandler creates a new memory handler
func NewMemoryHandler(store *filestore.Store, logger *zap.Logger) *MemoryHandler {
	return &MemoryHandler{store: store, logger: logger}
}

// ListMemories handles GET /api/projects/{projectID}/memories
func (h *MemoryHandler) ListMemories(w http.ResponseWriter, r *http.Request) {
	memories, err := h.store.ListMemories(chi.URLParam(r, "projectID"))
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, memories)
}

// CreateMemory handles POST /api/projects/{projectID}/memories
func (h *MemoryHandler) CreateMemory(w http.ResponseWriter, r *http.Request) {
	var patch memoir.MemoryPatch
	if err := common.ParseJSONBody(r, &patch, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := utils.ValidateStruct(patch); err != nil {
		common.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	memory, err := h.store.CreateMemory(chi.URLParam(r, "projectID"), patch)
	if err != nil {
		h.logger.Error("failed to create memory", zap.Error(err))
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, memory)
}

// UpdateMemory handles PUT /api/projects/{projectID}/memories/{memoryID}
func (h *MemoryHandler) UpdateMemory(w http.ResponseWriter, r *http.Request) {
	var patch memoir.MemoryPatch
	if err := common.ParseJSONBody(r, &patch, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := utils.ValidateStruct(patch); err != nil {
		common.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	memory, err := h.store.UpdateMemory(chi.URLParam(r, "projectID"), chi.URLParam(r, "memoryID"), patch)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, memory)
}

// DeleteMemory handles DELETE /api/projects/{projectID}/memories/{memoryID}
func (h *MemoryHandler) DeleteMemory(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteMemory(chi.URLParam(r, "projectID"), chi.URLParam(r, "memoryID")); err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondOK(w)
}
