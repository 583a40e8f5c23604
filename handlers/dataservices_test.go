package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"stopover/models"
	"stopover/services/session"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCoordinator is an in-memory session.Coordinator.
type fakeCoordinator struct {
	sessions map[string]*models.BookingSession
	updateOK bool
}

func newFakeCoordinator() *fakeCoordinator {
	return &fakeCoordinator{sessions: make(map[string]*models.BookingSession), updateOK: true}
}

func (f *fakeCoordinator) InitializeSession(_ context.Context, customerID, customerName, bookingRef, entryPoint string) (*models.BookingSession, error) {
	s := &models.BookingSession{
		SessionID:        "sess-test",
		ConversationID:   "conv-test",
		CustomerID:       customerID,
		CustomerName:     customerName,
		BookingReference: bookingRef,
		Status:           models.SessionActive,
		EntryPoint:       entryPoint,
	}
	f.sessions[s.SessionID] = s
	return s, nil
}

func (f *fakeCoordinator) GetSession(ctx context.Context, sessionID string) (*models.BookingSession, error) {
	return f.GetSessionOrDefault(ctx, sessionID, nil)
}

func (f *fakeCoordinator) GetSessionOrDefault(_ context.Context, sessionID string, _ *models.BookingSession) (*models.BookingSession, error) {
	s, ok := f.sessions[sessionID]
	if !ok {
		return nil, session.ErrNotFound
	}
	return s, nil
}

func (f *fakeCoordinator) UpdateSession(_ context.Context, s *models.BookingSession) bool {
	if !f.updateOK {
		return false
	}
	f.sessions[s.SessionID] = s
	return true
}

func setupDataServicesRouter(coord session.Coordinator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewDataServicesHandler(coord)
	r.GET("/api/data-services", h.Handle)
	r.POST("/api/data-services", h.Handle)
	return r
}

type envelope struct {
	Success bool                   `json:"success"`
	Error   string                 `json:"error"`
	Session *models.BookingSession `json:"session"`
}

func postAction(t *testing.T, router *gin.Engine, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/data-services", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	return rec, env
}

func TestDataServicesInitSession(t *testing.T) {
	coord := newFakeCoordinator()
	router := setupDataServicesRouter(coord)

	rec, env := postAction(t, router, gin.H{
		"action":       "init-session",
		"customerId":   "cust-42",
		"customerName": "Alex Johnson",
		"bookingRef":   "X4HG8",
		"entryPoint":   "manage-booking",
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)
	require.NotNil(t, env.Session)
	assert.Equal(t, "X4HG8", env.Session.BookingReference)
	assert.Equal(t, "manage-booking", env.Session.EntryPoint)
}

func TestDataServicesGetSession(t *testing.T) {
	coord := newFakeCoordinator()
	coord.sessions["sess-1"] = &models.BookingSession{SessionID: "sess-1", CustomerName: "Alex Johnson"}
	router := setupDataServicesRouter(coord)

	t.Run("found via GET query", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/data-services?action=get-session&sessionId=sess-1", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var env envelope
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
		assert.True(t, env.Success)
		assert.Equal(t, "Alex Johnson", env.Session.CustomerName)
	})

	t.Run("missing session reports success false", func(t *testing.T) {
		rec, env := postAction(t, router, gin.H{"action": "get-session", "sessionId": "nope"})
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.False(t, env.Success)
		assert.NotEmpty(t, env.Error)
	})
}

func TestDataServicesUpdateSession(t *testing.T) {
	coord := newFakeCoordinator()
	coord.sessions["sess-1"] = &models.BookingSession{SessionID: "sess-1", Status: models.SessionActive}
	router := setupDataServicesRouter(coord)

	rec, env := postAction(t, router, gin.H{
		"action":    "update-session",
		"sessionId": "sess-1",
		"selection": models.StopoverSelection{CategoryID: models.CategoryPremium, HotelID: "millennium", Nights: 2},
		"status":    models.SessionConfirmed,
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)
	assert.Equal(t, models.SessionConfirmed, coord.sessions["sess-1"].Status)
	assert.Equal(t, "millennium", coord.sessions["sess-1"].Selection.HotelID)
}

func TestDataServicesUpdateSessionDegraded(t *testing.T) {
	coord := newFakeCoordinator()
	coord.sessions["sess-1"] = &models.BookingSession{SessionID: "sess-1"}
	coord.updateOK = false
	router := setupDataServicesRouter(coord)

	rec, env := postAction(t, router, gin.H{
		"action":    "update-session",
		"sessionId": "sess-1",
		"status":    models.SessionConfirmed,
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, env.Success)
}

func TestDataServicesUnknownAction(t *testing.T) {
	router := setupDataServicesRouter(newFakeCoordinator())

	rec, env := postAction(t, router, gin.H{"action": "drop-tables"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, env.Success)
	assert.Contains(t, env.Error, "drop-tables")
}

func TestDataServicesHealthCheck(t *testing.T) {
	router := setupDataServicesRouter(newFakeCoordinator())

	rec, env := postAction(t, router, gin.H{"action": "health-check"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)
}
