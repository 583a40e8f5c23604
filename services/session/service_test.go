package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"stopover/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// memoryKV is an in-memory KV for tests.
type memoryKV struct {
	data map[string][]byte
}

func newMemoryKV() *memoryKV {
	return &memoryKV{data: make(map[string][]byte)}
}

func (m *memoryKV) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return v, nil
}

func (m *memoryKV) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	m.data[key] = value
	return nil
}

// brokenKV fails every call, counting attempts.
type brokenKV struct {
	gets int
	sets int
}

var errDown = errors.New("connection refused")

func (b *brokenKV) Get(context.Context, string) ([]byte, error) {
	b.gets++
	return nil, errDown
}

func (b *brokenKV) Set(context.Context, string, []byte, time.Duration) error {
	b.sets++
	return errDown
}

func TestCoordinatorRoundTrip(t *testing.T) {
	kv := newMemoryKV()
	c := NewDefaultCoordinator(kv, time.Minute, zap.NewNop())
	ctx := context.Background()

	created, err := c.InitializeSession(ctx, "cust-42", "Alex Johnson", "X4HG8", "chat-widget")
	require.NoError(t, err)
	assert.NotEmpty(t, created.SessionID)
	assert.NotEmpty(t, created.ConversationID)
	assert.NotEqual(t, created.SessionID, created.ConversationID)
	assert.Equal(t, models.SessionActive, created.Status)

	got, err := c.GetSession(ctx, created.SessionID)
	require.NoError(t, err)
	assert.Equal(t, created.SessionID, got.SessionID)
	assert.Equal(t, "Alex Johnson", got.CustomerName)

	got.Selection.CategoryID = models.CategoryPremium
	assert.True(t, c.UpdateSession(ctx, got))

	again, err := c.GetSession(ctx, created.SessionID)
	require.NoError(t, err)
	assert.Equal(t, models.CategoryPremium, again.Selection.CategoryID)
}

func TestGetSessionNotFound(t *testing.T) {
	c := NewDefaultCoordinator(newMemoryKV(), time.Minute, zap.NewNop())

	_, err := c.GetSession(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetSessionOrDefaultFallbackTiers(t *testing.T) {
	ctx := context.Background()

	t.Run("supplied default wins", func(t *testing.T) {
		c := NewDefaultCoordinator(&brokenKV{}, time.Minute, zap.NewNop())
		def := &models.BookingSession{SessionID: "s1", CustomerName: "Supplied Default"}

		got, err := c.GetSessionOrDefault(ctx, "s1", def)
		require.NoError(t, err)
		assert.Equal(t, "Supplied Default", got.CustomerName)
	})

	t.Run("static demo fallback", func(t *testing.T) {
		c := NewDefaultCoordinator(&brokenKV{}, time.Minute, zap.NewNop())

		got, err := c.GetSessionOrDefault(ctx, "demo-session", nil)
		require.NoError(t, err)
		assert.Equal(t, "Alex Johnson", got.CustomerName)
		assert.Equal(t, "X4HG8", got.BookingReference)
	})

	t.Run("bare built-in session as the last resort", func(t *testing.T) {
		c := NewDefaultCoordinator(&brokenKV{}, time.Minute, zap.NewNop())

		got, err := c.GetSessionOrDefault(ctx, "unknown-id", nil)
		require.NoError(t, err)
		assert.Equal(t, "unknown-id", got.SessionID)
		assert.Equal(t, models.SessionActive, got.Status)
	})

	t.Run("corrupt payload also falls back", func(t *testing.T) {
		kv := newMemoryKV()
		kv.data[sessionKeyPrefix+"s2"] = []byte("{not json")
		c := NewDefaultCoordinator(kv, time.Minute, zap.NewNop())

		got, err := c.GetSessionOrDefault(ctx, "s2", nil)
		require.NoError(t, err)
		assert.Equal(t, "s2", got.SessionID)
	})
}

func TestUpdateSessionDegrades(t *testing.T) {
	kv := &brokenKV{}
	c := NewDefaultCoordinator(kv, time.Minute, zap.NewNop())

	ok := c.UpdateSession(context.Background(), &models.BookingSession{SessionID: "s1"})
	assert.False(t, ok)
	assert.Equal(t, retryAttempts, kv.sets)
}

func TestWithRetry(t *testing.T) {
	ctx := context.Background()

	t.Run("succeeds after transient failures", func(t *testing.T) {
		calls := 0
		err := withRetry(ctx, "op", func() error {
			calls++
			if calls < 3 {
				return errDown
			}
			return nil
		})
		assert.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("not found is returned without retrying", func(t *testing.T) {
		calls := 0
		err := withRetry(ctx, "op", func() error {
			calls++
			return ErrNotFound
		})
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Equal(t, 1, calls)
	})

	t.Run("exhaustion wraps in a persistence error", func(t *testing.T) {
		err := withRetry(ctx, "get session", func() error { return errDown })
		var perr *PersistenceError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, "get session", perr.Op)
		assert.ErrorIs(t, err, errDown)
	})

	t.Run("cancelled context aborts the backoff", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		calls := 0
		err := withRetry(cctx, "op", func() error {
			calls++
			return errDown
		})
		var perr *PersistenceError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, 1, calls)
	})
}
