package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"memoir-backend/infrastructure/ai"
)

// answerExcerptLen bounds how much of each answer goes into the structure
// prompt so a long interview still fits the request.
const answerExcerptLen = 150

// AssistResult is the wire shape every assistance action returns. Upstream
// failures surface as Error with HTTP 200, so the client's AI panel can
// render them inline without distinguishing transport from application
// errors.
type AssistResult struct {
	Text  string `json:"text,omitempty"`
	Error string `json:"error,omitempty"`
}

// MemoryDigest is the caller-supplied memory context for the structure
// suggestion: the model receives a 1-based numbered list and must answer
// with indices into it.
type MemoryDigest struct {
	Stage    string `json:"stage"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// AssistService turns caller text and memory context into prompt pairs
// for the AI gateway.
type AssistService struct {
	provider ai.Provider
	logger   *zap.Logger
}

// NewAssistService creates the service. A nil provider means no credential
// was configured; every action then degrades to an inline error.
func NewAssistService(provider ai.Provider, logger *zap.Logger) *AssistService {
	return &AssistService{provider: provider, logger: logger}
}

// Configured reports whether a provider is available.
func (s *AssistService) Configured() bool {
	return s.provider != nil
}

// Expand turns rough notes into narrative prose, optionally grounded in
// reference memories.
func (s *AssistService) Expand(ctx context.Context, text, memories string) AssistResult {
	user := text
	if memories != "" {
		user += "\n\nReference memories:\n" + memories
	}
	return s.complete(ctx, "expand", promptExpand, user)
}

// DraftOpening writes a chapter opening from its title and memory context.
func (s *AssistService) DraftOpening(ctx context.Context, title, memories string) AssistResult {
	if title == "" {
		title = "Untitled"
	}
	if memories == "" {
		memories = "No specific memories provided."
	}
	user := "Chapter title: " + title + "\n\nReference memories:\n" + memories
	return s.complete(ctx, "draft-opening", promptDraftOpening, user)
}

// Polish edits text for clarity and flow.
func (s *AssistService) Polish(ctx context.Context, text string) AssistResult {
	return s.complete(ctx, "polish", promptPolish, text)
}

// FollowUp generates follow-up interview questions from an answer.
func (s *AssistService) FollowUp(ctx context.Context, question, answer string) AssistResult {
	user := "Original question: " + question + "\n\nTheir answer: " + answer
	return s.complete(ctx, "follow-up", promptFollowUp, user)
}

// Continue extends a passage in the author's voice.
func (s *AssistService) Continue(ctx context.Context, text, memories string) AssistResult {
	user := text
	if memories != "" {
		user += "\n\nReference memories for context:\n" + memories
	}
	return s.complete(ctx, "continue", promptContinue, user)
}

// SensoryDetails enriches a passage with sensory detail.
func (s *AssistService) SensoryDetails(ctx context.Context, text string) AssistResult {
	return s.complete(ctx, "sensory-details", promptSensoryDetails, text)
}

// Dialogue rewrites narrated conversations as dialogue scenes.
func (s *AssistService) Dialogue(ctx context.Context, text string) AssistResult {
	return s.complete(ctx, "dialogue", promptDialogue, text)
}

// SuggestTitle proposes chapter titles for the given content.
func (s *AssistService) SuggestTitle(ctx context.Context, text string) AssistResult {
	return s.complete(ctx, "suggest-title", promptSuggestTitle, text)
}

// Summarize condenses chapter content into a short third-person summary.
func (s *AssistService) Summarize(ctx context.Context, text string) AssistResult {
	return s.complete(ctx, "summarize", promptSummarize, text)
}

// SuggestStructure asks for a chapter structure over the numbered memory
// list. The model is instructed to answer with a strict JSON array of
// {title, memoryIndices}; the raw text is forwarded as-is and parsing is
// the caller's concern.
func (s *AssistService) SuggestStructure(ctx context.Context, memories []MemoryDigest) AssistResult {
	var b strings.Builder
	for i, m := range memories {
		answer := m.Answer
		if len(answer) > answerExcerptLen {
			answer = answer[:answerExcerptLen]
		}
		fmt.Fprintf(&b, "%d. [%s] %s: %s...\n", i+1, m.Stage, m.Question, answer)
	}
	return s.complete(ctx, "suggest-structure", promptSuggestStructure, b.String())
}

func (s *AssistService) complete(ctx context.Context, action, system, user string) AssistResult {
	if s.provider == nil {
		return AssistResult{Error: "API key not configured. Set MEMOIR_API_KEY in the environment."}
	}

	text, err := s.provider.Complete(ctx, system, user)
	if err != nil {
		s.logger.Warn("assist request failed", zap.String("action", action), zap.Error(err))
		return AssistResult{Error: err.Error()}
	}
	return AssistResult{Text: text}
}
