package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"memoir-backend/application/services"
	"memoir-backend/pkg/common"
)

// AssistHandler routes the writing-assistance actions to the assist
// service. Whatever the outcome, the response is HTTP 200 with either
// {text} or {error}: upstream failures are application payloads here, not
// transport errors.
type AssistHandler struct {
	assist *services.AssistService
	logger *zap.Logger
}

// NewAssistHandler creates a new assist handler
func NewAssistHandler(assist *services.AssistService, logger *zap.Logger) *AssistHandler {
	return &AssistHandler{assist: assist, logger: logger}
}

// AssistRequest is the union body of all assistance actions. Memories is
// raw because most actions send it as a context string while
// suggest-structure sends the memory objects themselves.
type AssistRequest struct {
	Text     string          `json:"text"`
	Title    string          `json:"title"`
	Question string          `json:"question"`
	Answer   string          `json:"answer"`
	Memories json.RawMessage `json:"memories"`
}

func (req *AssistRequest) memoriesText() string {
	if len(req.Memories) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(req.Memories, &s); err != nil {
		return ""
	}
	return s
}

func (req *AssistRequest) memoriesList() []services.MemoryDigest {
	if len(req.Memories) == 0 {
		return nil
	}
	var list []services.MemoryDigest
	if err := json.Unmarshal(req.Memories, &list); err != nil {
		return nil
	}
	return list
}

// Run handles POST /api/projects/{projectID}/ai/{action}
func (h *AssistHandler) Run(w http.ResponseWriter, r *http.Request) {
	var req AssistRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ctx := r.Context()
	var result services.AssistResult

	switch action := chi.URLParam(r, "action"); action {
	case "expand":
		result = h.assist.Expand(ctx, req.Text, req.memoriesText())
	case "draft-opening":
		result = h.assist.DraftOpening(ctx, req.Title, req.memoriesText())
	case "polish":
		result = h.assist.Polish(ctx, req.Text)
	case "follow-up":
		result = h.assist.FollowUp(ctx, req.Question, req.Answer)
	case "continue":
		result = h.assist.Continue(ctx, req.Text, req.memoriesText())
	case "sensory-details":
		result = h.assist.SensoryDetails(ctx, req.Text)
	case "dialogue":
		result = h.assist.Dialogue(ctx, req.Text)
	case "suggest-title":
		result = h.assist.SuggestTitle(ctx, req.Text)
	case "summarize":
		result = h.assist.Summarize(ctx, req.Text)
	case "suggest-structure":
		result = h.assist.SuggestStructure(ctx, req.memoriesList())
	default:
		common.RespondError(w, http.StatusNotFound, "Not found")
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}
