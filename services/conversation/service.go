package conversation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"stopover/models"
	"stopover/services/catalog"
	"stopover/services/intelligence"
	"stopover/services/session"
	"stopover/services/tools"
	"stopover/utils"

	"go.uber.org/zap"
)

// ErrNoUserMessage is returned when a turn arrives without a user message to
// respond to; the handler maps it to a 400.
var ErrNoUserMessage = errors.New("request contains no user message")

// Service drives one conversation turn end to end.
type Service interface {
	ProcessTurn(ctx context.Context, req models.ChatRequest) (*models.ChatResponse, error)
	ProcessTurnStream(ctx context.Context, req models.ChatRequest, emit intelligence.StreamFunc) (*models.ChatResponse, error)
}

// DefaultConversationService wires the session coordinator, the conversation
// store, the completion adapter, and the tool registry together. Each
// conversation is processed strictly sequentially by its single caller; the
// only shared state is the read-only catalog.
type DefaultConversationService struct {
	Sessions      session.Coordinator
	Conversations session.ConversationStore
	Completion    intelligence.CompletionService
	Registry      *tools.Registry
	Logger        *zap.Logger

	Temperature     float32
	MaxOutputTokens int32
}

// ProcessTurn handles one user input and produces one agent reply.
func (s *DefaultConversationService) ProcessTurn(ctx context.Context, req models.ChatRequest) (*models.ChatResponse, error) {
	return s.processTurn(ctx, req, nil)
}

// ProcessTurnStream is ProcessTurn with incremental text delivery.
func (s *DefaultConversationService) ProcessTurnStream(ctx context.Context, req models.ChatRequest, emit intelligence.StreamFunc) (*models.ChatResponse, error) {
	return s.processTurn(ctx, req, emit)
}

func (s *DefaultConversationService) processTurn(ctx context.Context, req models.ChatRequest, emit intelligence.StreamFunc) (*models.ChatResponse, error) {
	input := lastUserMessage(req.Messages)
	if input == "" {
		return nil, ErrNoUserMessage
	}

	sess, state := s.loadState(ctx, req)

	// Exactly one message per user input, appended before any model call.
	AppendUserMessage(state, input)

	creq := s.buildCompletionRequest(sess, state, req.ConversationContext, input)
	var turn *intelligence.ModelTurn
	var err error
	if emit != nil {
		turn, err = s.Completion.CompleteStream(ctx, creq, emit)
	} else {
		turn, err = s.Completion.Complete(ctx, creq)
	}
	if err != nil {
		// The failure still becomes an agent-authored message so the widget
		// has something honest to show when the conversation reloads.
		AppendAgentMessage(state,
			"I'm having trouble reaching our booking assistant right now. Give me a moment and try again.",
			nil, []string{"Try again", "Start over"})
		s.persist(ctx, sess, state)
		return nil, err
	}

	var component *models.UIComponent
	var replyText string
	var quickReplies []string

	if turn.FunctionCall != nil {
		result := s.Registry.Dispatch(turn.FunctionCall.Name, turn.FunctionCall.Args, sess)
		if result.Success {
			result.SessionPatch.Apply(sess)
			state.CurrentStep = NextStep(state.CurrentStep, turn.FunctionCall.Name)
		} else {
			s.Logger.Debug("tool call rejected",
				zap.String("tool", turn.FunctionCall.Name),
				zap.String("error", result.Error))
		}
		replyText = result.Message
		component = result.UIComponent
		quickReplies = result.QuickReplies
	} else {
		replyText = turn.Text
	}

	// Exactly one message per model turn.
	AppendAgentMessage(state, replyText, component, quickReplies)
	s.persist(ctx, sess, state)

	return &models.ChatResponse{
		SessionID:        sess.SessionID,
		ConversationID:   state.ConversationID,
		Message:          replyText,
		Component:        component,
		CurrentStep:      state.CurrentStep,
		SuggestedReplies: quickReplies,
	}, nil
}

// loadState resumes the session and conversation, or seeds fresh ones. All
// persistence failures are absorbed below this call; the turn always gets a
// usable pair back.
func (s *DefaultConversationService) loadState(ctx context.Context, req models.ChatRequest) (*models.BookingSession, *models.ConversationState) {
	cc := req.ConversationContext

	var sess *models.BookingSession
	if req.SessionID != "" {
		if got, err := s.Sessions.GetSession(ctx, req.SessionID); err == nil {
			sess = got
		}
	}
	if sess == nil {
		sess, _ = s.Sessions.InitializeSession(ctx, cc.CustomerID, cc.CustomerName, cc.BookingRef, "chat-widget")
		if req.ConversationID != "" {
			sess.ConversationID = req.ConversationID
		}
	}

	var state *models.ConversationState
	if got, err := s.Conversations.Get(ctx, sess.ConversationID); err == nil {
		state = got
	} else {
		state = NewConversationState(sess.ConversationID, sess.CustomerName, sess.BookingReference)
		if cc.CurrentStep != "" {
			state.CurrentStep = cc.CurrentStep
		}
	}
	return sess, state
}

func (s *DefaultConversationService) persist(ctx context.Context, sess *models.BookingSession, state *models.ConversationState) {
	if !s.Sessions.UpdateSession(ctx, sess) {
		s.Logger.Warn("session not persisted this turn", zap.String("sessionId", sess.SessionID))
	}
	if !s.Conversations.Save(ctx, state) {
		s.Logger.Warn("conversation not persisted this turn", zap.String("conversationId", state.ConversationID))
	}
}

func (s *DefaultConversationService) buildCompletionRequest(sess *models.BookingSession, state *models.ConversationState, cc models.ConversationContext, input string) intelligence.CompletionRequest {
	var amountDue float64
	if sess.Selection.HotelID != "" && sess.Selection.Nights > 0 {
		amountDue = catalog.ComputePricing(sess.Selection, sess.Selection.Nights).TotalCashPrice
	}

	// History excludes the user message appended this turn: that is the Input.
	history := make([]intelligence.Turn, 0, len(state.Messages))
	for _, m := range state.Messages[:len(state.Messages)-1] {
		history = append(history, intelligence.Turn{Role: m.Role, Text: m.Content})
	}

	return intelligence.CompletionRequest{
		System:          systemPrompt(sess, cc, state.CurrentStep),
		History:         history,
		Input:           input,
		Tools:           s.Registry.Declarations(),
		Temperature:     s.Temperature,
		MaxOutputTokens: s.MaxOutputTokens,
		CurrentStep:     state.CurrentStep,
		AmountDue:       amountDue,
	}
}

func systemPrompt(sess *models.BookingSession, cc models.ConversationContext, currentStep string) string {
	var sb strings.Builder
	sb.WriteString("You are the stopover concierge for an airline. You help customers add a Doha stopover package to an existing flight booking.\n")
	sb.WriteString("Always use the provided booking tools to show options and record selections; reply in free text only for questions and small talk.\n")
	sb.WriteString("Follow the funnel in order: packages, hotel, timing and nights, extras, summary, payment, confirmation. Never skip a step.\n\n")
	fmt.Fprintf(&sb, "Customer: %s (id %s)\n", sess.CustomerName, sess.CustomerID)
	fmt.Fprintf(&sb, "Booking reference: %s\n", sess.BookingReference)
	if route := utils.FormatRoute(cc.Origin, cc.StopoverHub, cc.Destination); route != "" {
		fmt.Fprintf(&sb, "Itinerary: %s\n", route)
	}
	fmt.Fprintf(&sb, "Current step: %s\n", currentStep)
	if sess.Selection.CategoryID != "" {
		fmt.Fprintf(&sb, "Selection so far: category=%s hotel=%s timing=%s nights=%d\n",
			sess.Selection.CategoryID, sess.Selection.HotelID, sess.Selection.Timing, sess.Selection.Nights)
	}
	return sb.String()
}

func lastUserMessage(messages []models.ChatMessage) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == models.RoleUser || messages[i].Role == "customer" {
			return strings.TrimSpace(messages[i].Content)
		}
	}
	return ""
}
