// Package intelligence obtains the next model turn for a conversation: it
// sends history plus the tool registry's declarations to Gemini, walking an
// ordered fallback chain of backing models, and tells plain-text replies apart
// from tool invocations.
package intelligence

import (
	"context"

	genai "github.com/google/generative-ai-go/genai"
)

// Turn is one prior conversation turn, reduced to what the model needs.
type Turn struct {
	Role string // models.RoleUser or models.RoleAgent
	Text string
}

// CompletionRequest carries everything one completion attempt needs.
type CompletionRequest struct {
	System          string
	History         []Turn
	Input           string
	Tools           []*genai.FunctionDeclaration
	Temperature     float32
	MaxOutputTokens int32

	// Hints for the offline dev-mode responder; the real model derives these
	// from the conversation itself.
	CurrentStep string
	AmountDue   float64
}

// FunctionCall is a structured tool invocation returned by the model. Args are
// always delivered whole, never partially streamed.
type FunctionCall struct {
	Name string
	Args map[string]any
}

// ModelTurn is the classified output of one completion: either Text or a
// FunctionCall is set. Fallbacks records how many chain transitions happened
// before this turn was produced.
type ModelTurn struct {
	Text         string
	FunctionCall *FunctionCall
	Model        string
	Fallbacks    int
}

// StreamFunc receives incremental text deltas during a streamed completion.
type StreamFunc func(chunk string)

// CompletionService is what the conversation layer depends on.
type CompletionService interface {
	Complete(ctx context.Context, req CompletionRequest) (*ModelTurn, error)
	CompleteStream(ctx context.Context, req CompletionRequest, emit StreamFunc) (*ModelTurn, error)
}

// ModelInvoker performs a single attempt against one named backing model. The
// fallback chain lives above this seam so it can be tested without a network.
type ModelInvoker interface {
	Invoke(ctx context.Context, model string, req CompletionRequest) (*ModelTurn, error)
	InvokeStream(ctx context.Context, model string, req CompletionRequest, emit StreamFunc) (*ModelTurn, error)
}
