package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	conversationRepo "stopover/database/repository/conversation"
	"stopover/models"

	"go.uber.org/zap"
)

const conversationKeyPrefix = "conv:"

// ConversationStore is the persistence surface for conversation state: a fast
// Redis read cache in front of the durable per-conversation Mongo document.
type ConversationStore interface {
	Get(ctx context.Context, conversationID string) (*models.ConversationState, error)
	Save(ctx context.Context, state *models.ConversationState) bool
}

// DefaultConversationStore reads through the cache and writes through to the
// durable repository. All calls run under the shared retry policy; failures
// degrade to a fresh conversation rather than surfacing an error.
type DefaultConversationStore struct {
	cache   KV
	durable conversationRepo.Repository
	ttl     time.Duration
	logger  *zap.Logger
}

// NewDefaultConversationStore builds the cache-fronted conversation store.
// durable may be nil in cache-only deployments.
func NewDefaultConversationStore(cache KV, durable conversationRepo.Repository, ttl time.Duration, logger *zap.Logger) *DefaultConversationStore {
	return &DefaultConversationStore{cache: cache, durable: durable, ttl: ttl, logger: logger}
}

// Get loads conversation state, preferring the cache. ErrNotFound means a
// fresh conversation should be started; persistence failures degrade to the
// same answer after logging.
func (s *DefaultConversationStore) Get(ctx context.Context, conversationID string) (*models.ConversationState, error) {
	var data []byte
	err := withRetry(ctx, "get conversation cache", func() error {
		var gerr error
		data, gerr = s.cache.Get(ctx, conversationKeyPrefix+conversationID)
		return gerr
	})
	if err == nil {
		var state models.ConversationState
		if uerr := json.Unmarshal(data, &state); uerr == nil {
			return &state, nil
		}
		s.logger.Warn("conversation cache payload corrupt, falling back to durable store",
			zap.String("conversationId", conversationID))
	} else if !errors.Is(err, ErrNotFound) {
		s.logger.Warn("conversation cache read failed, falling back to durable store",
			zap.String("conversationId", conversationID), zap.Error(err))
	}

	if s.durable == nil {
		return nil, ErrNotFound
	}

	var state *models.ConversationState
	err = withRetry(ctx, "get conversation", func() error {
		var gerr error
		state, gerr = s.durable.Get(ctx, conversationID)
		if errors.Is(gerr, conversationRepo.ErrNotFound) {
			return ErrNotFound
		}
		return gerr
	})
	if errors.Is(err, ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		// Degraded durable store: the caller reseeds the conversation. The
		// greeting repeats, but the flow keeps working.
		s.logger.Error("conversation read failed, starting fresh",
			zap.String("conversationId", conversationID), zap.Error(err))
		return nil, ErrNotFound
	}
	return state, nil
}

// Save writes conversation state through to the durable store and refreshes
// the cache. Returns false only when both writes failed.
func (s *DefaultConversationStore) Save(ctx context.Context, state *models.ConversationState) bool {
	durableOK := s.durable != nil
	if s.durable != nil {
		err := withRetry(ctx, "update conversation", func() error {
			return s.durable.Update(ctx, state)
		})
		if err != nil {
			s.logger.Error("durable conversation write failed",
				zap.String("conversationId", state.ConversationID), zap.Error(err))
			durableOK = false
		}
	}

	cacheOK := false
	if data, err := json.Marshal(state); err == nil {
		err = withRetry(ctx, "cache conversation", func() error {
			return s.cache.Set(ctx, conversationKeyPrefix+state.ConversationID, data, s.ttl)
		})
		cacheOK = err == nil
		if err != nil {
			s.logger.Warn("conversation cache write failed",
				zap.String("conversationId", state.ConversationID), zap.Error(err))
		}
	}

	return durableOK || cacheOK
}
