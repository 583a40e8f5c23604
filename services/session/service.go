package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"stopover/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const sessionKeyPrefix = "session:"

// Coordinator is the booking-session surface the conversation layer uses.
type Coordinator interface {
	InitializeSession(ctx context.Context, customerID, customerName, bookingRef, entryPoint string) (*models.BookingSession, error)
	GetSession(ctx context.Context, sessionID string) (*models.BookingSession, error)
	GetSessionOrDefault(ctx context.Context, sessionID string, def *models.BookingSession) (*models.BookingSession, error)
	UpdateSession(ctx context.Context, session *models.BookingSession) bool
}

// DefaultCoordinator stores booking sessions in the Redis session cache with a
// TTL; abandoned sessions simply expire.
type DefaultCoordinator struct {
	kv     KV
	ttl    time.Duration
	logger *zap.Logger
}

// NewDefaultCoordinator builds the session coordinator.
func NewDefaultCoordinator(kv KV, ttl time.Duration, logger *zap.Logger) *DefaultCoordinator {
	return &DefaultCoordinator{kv: kv, ttl: ttl, logger: logger}
}

// InitializeSession generates fresh session and conversation identifiers,
// seeds default state, and persists it.
func (c *DefaultCoordinator) InitializeSession(ctx context.Context, customerID, customerName, bookingRef, entryPoint string) (*models.BookingSession, error) {
	now := time.Now()
	session := &models.BookingSession{
		SessionID:        uuid.New().String(),
		ConversationID:   uuid.New().String(),
		CustomerID:       customerID,
		CustomerName:     customerName,
		BookingReference: bookingRef,
		Status:           models.SessionActive,
		EntryPoint:       entryPoint,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	// A failed initial write degrades to stateless operation: the session
	// object still works for this turn, it just won't survive to the next.
	if !c.UpdateSession(ctx, session) {
		c.logger.Warn("session seeded statelessly, cache write failed",
			zap.String("sessionId", session.SessionID))
	}
	return session, nil
}

// GetSession retrieves a session by id. Absence returns ErrNotFound so the
// caller can start a fresh session.
func (c *DefaultCoordinator) GetSession(ctx context.Context, sessionID string) (*models.BookingSession, error) {
	return c.GetSessionOrDefault(ctx, sessionID, nil)
}

// GetSessionOrDefault retrieves a session with the three-tier fallback: on
// persistence exhaustion it returns, in priority order, the supplied default,
// the static demo fallback, or a bare built-in session. Persistence errors
// are logged and absorbed, never propagated.
func (c *DefaultCoordinator) GetSessionOrDefault(ctx context.Context, sessionID string, def *models.BookingSession) (*models.BookingSession, error) {
	var data []byte
	err := withRetry(ctx, "get session", func() error {
		var gerr error
		data, gerr = c.kv.Get(ctx, sessionKeyPrefix+sessionID)
		return gerr
	})
	if errors.Is(err, ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		c.logger.Error("session read failed, applying fallback",
			zap.String("sessionId", sessionID), zap.Error(err))
		return c.fallbackSession(sessionID, def), nil
	}

	var session models.BookingSession
	if uerr := json.Unmarshal(data, &session); uerr != nil {
		c.logger.Error("session payload corrupt, applying fallback",
			zap.String("sessionId", sessionID), zap.Error(uerr))
		return c.fallbackSession(sessionID, def), nil
	}
	return &session, nil
}

// UpdateSession writes the session back, read-modify-write with last-write-
// wins semantics. Returns false when persistence is degraded; the turn still
// completes statelessly.
func (c *DefaultCoordinator) UpdateSession(ctx context.Context, session *models.BookingSession) bool {
	session.UpdatedAt = time.Now()
	data, err := json.Marshal(session)
	if err != nil {
		c.logger.Error("failed to marshal session", zap.Error(err))
		return false
	}
	err = withRetry(ctx, "update session", func() error {
		return c.kv.Set(ctx, sessionKeyPrefix+session.SessionID, data, c.ttl)
	})
	if err != nil {
		c.logger.Error("session write failed, continuing statelessly",
			zap.String("sessionId", session.SessionID), zap.Error(err))
		return false
	}
	return true
}

func (c *DefaultCoordinator) fallbackSession(sessionID string, def *models.BookingSession) *models.BookingSession {
	if def != nil {
		return def
	}
	if s := staticFallbackSession(sessionID); s != nil {
		return s
	}
	now := time.Now()
	return &models.BookingSession{
		SessionID:      sessionID,
		ConversationID: uuid.New().String(),
		Status:         models.SessionActive,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}
