package intelligence

import (
	"context"
	"fmt"
	"strings"

	"stopover/models"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// GeminiInvoker performs single-model completion attempts against the Gemini
// API. One client is shared across all conversations; per-attempt state lives
// in the chat session built for each call.
type GeminiInvoker struct {
	client *genai.Client
}

// NewGeminiInvoker dials the Gemini API.
func NewGeminiInvoker(ctx context.Context, apiKey string) (*GeminiInvoker, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiInvoker{client: client}, nil
}

// Close releases the underlying connection.
func (g *GeminiInvoker) Close() error {
	return g.client.Close()
}

// Invoke runs one non-streaming attempt against the named model.
func (g *GeminiInvoker) Invoke(ctx context.Context, model string, req CompletionRequest) (*ModelTurn, error) {
	cs := g.newChat(model, req)
	resp, err := cs.SendMessage(ctx, genai.Text(req.Input))
	if err != nil {
		return nil, fmt.Errorf("gemini generate error: %w", err)
	}
	return parseResponse(resp)
}

// InvokeStream runs one streaming attempt, emitting text deltas as they
// arrive. A function call encountered mid-stream is accumulated and returned
// whole so tool arguments are never partially applied.
func (g *GeminiInvoker) InvokeStream(ctx context.Context, model string, req CompletionRequest, emit StreamFunc) (*ModelTurn, error) {
	cs := g.newChat(model, req)
	iter := cs.SendMessageStream(ctx, genai.Text(req.Input))

	var sb strings.Builder
	var call *FunctionCall
	for {
		resp, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("gemini stream error: %w", err)
		}
		if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
			continue
		}
		for _, part := range resp.Candidates[0].Content.Parts {
			switch p := part.(type) {
			case genai.Text:
				if emit != nil {
					emit(string(p))
				}
				sb.WriteString(string(p))
			case genai.FunctionCall:
				call = &FunctionCall{Name: p.Name, Args: p.Args}
			}
		}
	}
	return &ModelTurn{Text: sb.String(), FunctionCall: call}, nil
}

func (g *GeminiInvoker) newChat(model string, req CompletionRequest) *genai.ChatSession {
	m := g.client.GenerativeModel(model)
	m.SetTemperature(req.Temperature)
	m.SetMaxOutputTokens(req.MaxOutputTokens)
	if req.System != "" {
		m.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(req.System)}}
	}
	if len(req.Tools) > 0 {
		m.Tools = []*genai.Tool{{FunctionDeclarations: req.Tools}}
	}

	cs := m.StartChat()
	cs.History = historyContents(req.History)
	return cs
}

func historyContents(history []Turn) []*genai.Content {
	contents := make([]*genai.Content, 0, len(history))
	for _, t := range history {
		if t.Text == "" {
			continue
		}
		role := "user"
		if t.Role == models.RoleAgent {
			role = "model"
		}
		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(t.Text)},
		})
	}
	return contents
}

func parseResponse(resp *genai.GenerateContentResponse) (*ModelTurn, error) {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("gemini returned no candidates")
	}

	var sb strings.Builder
	var call *FunctionCall
	for _, part := range resp.Candidates[0].Content.Parts {
		switch p := part.(type) {
		case genai.Text:
			sb.WriteString(string(p))
		case genai.FunctionCall:
			call = &FunctionCall{Name: p.Name, Args: p.Args}
		}
	}
	return &ModelTurn{Text: sb.String(), FunctionCall: call}, nil
}
