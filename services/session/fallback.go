package session

import (
	"time"

	"stopover/models"
)

// Static fallback sessions, the second tier of the degradation chain. The
// demo entries keep the widget demonstrable when the cache is down and the
// caller supplied no default.
var staticFallbackSessions = map[string]models.BookingSession{
	"demo-session": {
		SessionID:        "demo-session",
		ConversationID:   "demo-conversation",
		CustomerID:       "demo-customer",
		CustomerName:     "Alex Johnson",
		BookingReference: "X4HG8",
		Status:           models.SessionActive,
		EntryPoint:       "demo",
	},
}

func staticFallbackSession(sessionID string) *models.BookingSession {
	entry, ok := staticFallbackSessions[sessionID]
	if !ok {
		return nil
	}
	now := time.Now()
	entry.CreatedAt = now
	entry.UpdatedAt = now
	return &entry
}
