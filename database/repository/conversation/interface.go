// Package conversationRepo is the durable per-conversation store. Each
// conversation id owns exactly one document, and every write funnels through
// this repository, which makes each conversation single-writer by
// construction; no other component mutates conversation state directly.
package conversationRepo

import (
	"context"
	"errors"

	"stopover/models"
)

// ErrNotFound is returned when no document exists for a conversation id.
var ErrNotFound = errors.New("conversation not found")

// Repository is the narrow protocol to the durable conversation object.
type Repository interface {
	Init(ctx context.Context, state *models.ConversationState) error
	Get(ctx context.Context, conversationID string) (*models.ConversationState, error)
	Update(ctx context.Context, state *models.ConversationState) error
	AppendMessage(ctx context.Context, conversationID string, msg models.Message) error
}
