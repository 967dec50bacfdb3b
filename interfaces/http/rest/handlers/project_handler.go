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

// maxBodyBytes bounds JSON request bodies; chapter content can carry
// inline editor HTML, so the limit is generous.
const maxBodyBytes = 10 << 20

// ProjectHandler handles project-related HTTP requests
type ProjectHandler struct {
	store  *filestore.Store
	logger *zap.Logger
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(store *filestore.Store, logger *zap.Logger) *ProjectHandler {
	return &ProjectHandler{store: store, logger: logger}
}

// ListProjects handles GET /api/projects
func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.store.ListProjects()
	if err != nil {
		h.logger.Error("failed to list projects", zap.Error(err))
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, projects)
}

// CreateProject handles POST /api/projects
func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var patch memoir.ProjectPatch
	if err := common.ParseJSONBody(r, &patch, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := utils.ValidateStruct(patch); err != nil {
		common.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	project, err := h.store.CreateProject(patch)
	if err != nil {
		h.logger.Error("failed to create project", zap.Error(err))
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, project)
}

// GetProject handles GET /api/projects/{projectID}
func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	project, err := h.store.GetProject(chi.URLParam(r, "projectID"))
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, project)
}

// UpdateProject handles PUT /api/projects/{projectID}
func (h *ProjectHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	var patch memoir.ProjectPatch
	if err := common.ParseJSONBody(r, &patch, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := utils.ValidateStruct(patch); err != nil {
		common.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	project, err := h.store.UpdateProject(chi.URLParam(r, "projectID"), patch)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, project)
}

// DeleteProject handles DELETE /api/projects/{projectID}
func (h *ProjectHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteProject(chi.URLParam(r, "projectID")); err != nil {
		h.logger.Error("failed to delete project", zap.Error(err))
		common.RespondAppError(w, err)
		return
	}
	common.RespondOK(w)
}
