package models

import "time"

// Message roles.
const (
	RoleAgent = "agent"
	RoleUser  = "user"
)

// Message content kinds.
const (
	MessageText = "text"
	MessageRich = "rich"
	MessageForm = "form"
)

// Conversation steps, in funnel order. Transitions between them are owned by
// the conversation package; no other component may advance a step.
const (
	StepWelcome           = "welcome"
	StepCategorySelection = "category-selection"
	StepHotelSelection    = "hotel-selection"
	StepTimingDuration    = "timing-duration"
	StepExtrasSelection   = "extras-selection"
	StepBookingSummary    = "booking-summary"
	StepPayment           = "payment"
	StepConfirmation      = "confirmation"
)

// UI component type tags. The renderer switches on these; each tool returns a
// fixed tag.
const (
	UICategories = "categories"
	UIHotels     = "hotels"
	UIOptions    = "options"
	UIExtras     = "extras"
	UISummary    = "summary"
	UIForm       = "form"
)

// UIComponent describes an interactive widget for the presentation layer. The
// renderer switches on Type; unknown types must render as a no-op.
type UIComponent struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// Message is a single conversation turn.
type Message struct {
	ID        string       `json:"id"`
	Role      string       `json:"role"`
	Type      string       `json:"type"`
	Content   string       `json:"content"`
	Component *UIComponent `json:"component,omitempty"`
	Timestamp time.Time    `json:"timestamp"`
}

// ConversationState is the full dialogue record for one booking flow. One is
// created per customer session and appended to by every turn; it is never
// deleted mid-flow.
type ConversationState struct {
	ConversationID   string    `json:"conversationId" bson:"conversationId"`
	Messages         []Message `json:"messages" bson:"messages"`
	CurrentStep      string    `json:"currentStep" bson:"currentStep"`
	AwaitingInput    bool      `json:"awaitingInput" bson:"awaitingInput"`
	SuggestedReplies []string  `json:"suggestedReplies" bson:"suggestedReplies"`
	CreatedAt        time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt" bson:"updatedAt"`
}

// ToolResult is the standard envelope every tool returns. It is folded into
// the conversation history and the booking session, never persisted directly.
type ToolResult struct {
	Success      bool           `json:"success"`
	Message      string         `json:"message"`
	UIComponent  *UIComponent   `json:"uiComponent,omitempty"`
	Error        string         `json:"error,omitempty"`
	QuickReplies []string       `json:"quickReplies,omitempty"`
	SessionPatch *SessionPatch  `json:"-"`
	Extra        map[string]any `json:"extra,omitempty"`
}
