package models

import "time"

// Booking session lifecycle states.
const (
	SessionActive    = "active"
	SessionConfirmed = "confirmed"
)

// BookingSession correlates a customer's chat with their original reservation
// and the evolving stopover selection. It is cached in Redis under its
// SessionID and expires via TTL when abandoned.
type BookingSession struct {
	SessionID        string            `json:"sessionId"`
	ConversationID   string            `json:"conversationId"`
	CustomerID       string            `json:"customerId"`
	CustomerName     string            `json:"customerName"`
	BookingReference string            `json:"bookingReference"`
	NewReference     string            `json:"newReference,omitempty"`
	Selection        StopoverSelection `json:"selection"`
	Status           string            `json:"status"`
	PaymentMethod    string            `json:"paymentMethod,omitempty"`
	EntryPoint       string            `json:"entryPoint,omitempty"`
	CreatedAt        time.Time         `json:"createdAt"`
	UpdatedAt        time.Time         `json:"updatedAt"`
}

// SessionPatch is the delta a tool asks the caller to apply to the active
// session. Tools never mutate the session themselves.
type SessionPatch struct {
	Selection     *StopoverSelection
	Status        string
	PaymentMethod string
	NewReference  string
}

// Apply folds the patch into a session. Nil or zero fields are left untouched.
func (p *SessionPatch) Apply(s *BookingSession) {
	if p == nil || s == nil {
		return
	}
	if p.Selection != nil {
		s.Selection = *p.Selection
	}
	if p.Status != "" {
		s.Status = p.Status
	}
	if p.PaymentMethod != "" {
		s.PaymentMethod = p.PaymentMethod
	}
	if p.NewReference != "" {
		s.NewReference = p.NewReference
	}
	s.UpdatedAt = time.Now()
}
