// Package conversation owns the step-based state machine of the booking
// funnel and orchestrates each turn: user input, model completion, tool
// dispatch, and persistence.
package conversation

import (
	"fmt"
	"time"

	"stopover/models"
	"stopover/services/tools"

	"github.com/google/uuid"
)

// StepOrder is the funnel in its only legal order.
var StepOrder = []string{
	models.StepWelcome,
	models.StepCategorySelection,
	models.StepHotelSelection,
	models.StepTimingDuration,
	models.StepExtrasSelection,
	models.StepBookingSummary,
	models.StepPayment,
	models.StepConfirmation,
}

type transition struct {
	From string
	To   string
}

// stepTransitions is the single authoritative table mapping a successful tool
// call onto the next conversation step. From records the canonical entry step
// and is what VerifyTransitions chains through StepOrder.
var stepTransitions = map[string]transition{
	tools.ToolListCategories:          {From: models.StepWelcome, To: models.StepCategorySelection},
	tools.ToolSelectStopoverCategory:  {From: models.StepCategorySelection, To: models.StepHotelSelection},
	tools.ToolSelectHotel:             {From: models.StepHotelSelection, To: models.StepTimingDuration},
	tools.ToolSelectTimingAndDuration: {From: models.StepTimingDuration, To: models.StepExtrasSelection},
	tools.ToolSelectExtras:            {From: models.StepExtrasSelection, To: models.StepBookingSummary},
	tools.ToolInitiatePayment:         {From: models.StepBookingSummary, To: models.StepPayment},
	tools.ToolCompleteBooking:         {From: models.StepPayment, To: models.StepConfirmation},
}

// NextStep resolves the step after a successful tool call. Success implies the
// tool's own preconditions held, so the conversation follows the tool straight
// to its target step even when earlier steps were skipped: a customer naming a
// package at the welcome step lands directly on hotel selection, and the step
// always matches the component the tool just rendered. Confirmation is
// terminal; tools cannot succeed against a confirmed session, so the step
// never leaves it.
func NextStep(current, toolName string) string {
	t, ok := stepTransitions[toolName]
	if !ok {
		return current
	}
	if current == models.StepConfirmation {
		return current
	}
	return t.To
}

// VerifyTransitions checks the table at startup: every registered tool must
// have an entry, and the entries must chain through StepOrder without skips.
// A gap here is a programming error, so main fails fast on it.
func VerifyTransitions(toolNames []string) error {
	for _, name := range toolNames {
		if _, ok := stepTransitions[name]; !ok {
			return fmt.Errorf("tool %q has no step transition", name)
		}
	}
	if len(stepTransitions) != len(StepOrder)-1 {
		return fmt.Errorf("transition table has %d entries, expected %d", len(stepTransitions), len(StepOrder)-1)
	}
	for i := 0; i < len(StepOrder)-1; i++ {
		found := false
		for _, t := range stepTransitions {
			if t.From == StepOrder[i] && t.To == StepOrder[i+1] {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("no transition from %q to %q", StepOrder[i], StepOrder[i+1])
		}
	}
	return nil
}

// NewConversationState seeds a fresh conversation at the welcome step, with a
// greeting synthesized from the customer's name and booking reference.
func NewConversationState(conversationID, customerName, bookingRef string) *models.ConversationState {
	now := time.Now()
	greeting := fmt.Sprintf(
		"Welcome back, %s! I can add a Doha stopover to your booking %s: a few nights in Qatar on the way, hotel included. Want to take a look?",
		customerName, bookingRef)
	return &models.ConversationState{
		ConversationID: conversationID,
		CurrentStep:    models.StepWelcome,
		AwaitingInput:  true,
		Messages: []models.Message{{
			ID:        uuid.New().String(),
			Role:      models.RoleAgent,
			Type:      models.MessageText,
			Content:   greeting,
			Timestamp: now,
		}},
		SuggestedReplies: []string{"Show me the packages", "How does it work?", "Not now"},
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// AppendUserMessage records exactly one message for one user input, before
// any model call.
func AppendUserMessage(state *models.ConversationState, text string) {
	state.Messages = append(state.Messages, models.Message{
		ID:        uuid.New().String(),
		Role:      models.RoleUser,
		Type:      models.MessageText,
		Content:   text,
		Timestamp: time.Now(),
	})
	state.AwaitingInput = false
	state.SuggestedReplies = nil
	state.UpdatedAt = time.Now()
}

// AppendAgentMessage records exactly one message for one model turn. The
// component is nil for plain-text replies.
func AppendAgentMessage(state *models.ConversationState, text string, component *models.UIComponent, quickReplies []string) {
	msgType := models.MessageText
	if component != nil {
		msgType = models.MessageRich
		if component.Type == models.UIForm {
			msgType = models.MessageForm
		}
	}
	state.Messages = append(state.Messages, models.Message{
		ID:        uuid.New().String(),
		Role:      models.RoleAgent,
		Type:      msgType,
		Content:   text,
		Component: component,
		Timestamp: time.Now(),
	})
	state.AwaitingInput = true
	state.SuggestedReplies = quickReplies
	state.UpdatedAt = time.Now()
}
