// Package ai abstracts the external chat-completion service behind a
// single-operation provider interface. Implementations live in
// subpackages; callers only see Complete.
package ai

import "context"

// Provider sends one system prompt plus user content to the LLM and
// returns the full response text. Implementations must not retry; the
// client decides whether the user retries.
type Provider interface {
	Complete(ctx context.Context, systemPrompt, userContent string) (string, error)
}
