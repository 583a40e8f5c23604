package models

// ChatMessage is one entry of the wire-level message list on /api/chat.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ConversationContext carries the customer and booking facts the widget knows
// when it opens the chat.
type ConversationContext struct {
	CustomerID   string `json:"customerId"`
	CustomerName string `json:"customerName"`
	BookingRef   string `json:"bookingRef"`
	Origin       string `json:"origin,omitempty"`
	Destination  string `json:"destination,omitempty"`
	StopoverHub  string `json:"stopoverHub,omitempty"`
	CurrentStep  string `json:"currentStep,omitempty"`
}

// ChatRequest is the body of POST /api/chat.
type ChatRequest struct {
	Messages            []ChatMessage       `json:"messages"`
	ConversationContext ConversationContext `json:"conversationContext"`
	SessionID           string              `json:"sessionId,omitempty"`
	ConversationID      string              `json:"conversationId,omitempty"`
}

// ChatResponse is the non-streaming reply of POST /api/chat.
type ChatResponse struct {
	SessionID        string       `json:"sessionId"`
	ConversationID   string       `json:"conversationId"`
	Message          string       `json:"message"`
	Component        *UIComponent `json:"component,omitempty"`
	CurrentStep      string       `json:"currentStep"`
	SuggestedReplies []string     `json:"suggestedReplies,omitempty"`
}
