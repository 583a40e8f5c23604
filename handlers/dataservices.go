package handlers

import (
	"errors"
	"net/http"

	"stopover/models"
	"stopover/services/session"
	"stopover/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DataServicesHandler serves the management actions behind /api/data-services.
type DataServicesHandler struct {
	sessions session.Coordinator
}

// NewDataServicesHandler builds the data-services handler.
func NewDataServicesHandler(sessions session.Coordinator) *DataServicesHandler {
	return &DataServicesHandler{sessions: sessions}
}

type dataServicesRequest struct {
	Action       string                    `json:"action" form:"action"`
	SessionID    string                    `json:"sessionId" form:"sessionId"`
	CustomerID   string                    `json:"customerId" form:"customerId"`
	CustomerName string                    `json:"customerName" form:"customerName"`
	BookingRef   string                    `json:"bookingRef" form:"bookingRef"`
	EntryPoint   string                    `json:"entryPoint" form:"entryPoint"`
	Selection    *models.StopoverSelection `json:"selection"`
	Status       string                    `json:"status"`
}

// Handle dispatches on the action field. Every action answers with a
// {success: bool, ...} envelope.
func (h *DataServicesHandler) Handle(c *gin.Context) {
	logger := utils.GetLogger()

	var req dataServicesRequest
	if c.Request.Method == http.MethodGet {
		if err := c.ShouldBindQuery(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid query: " + err.Error()})
			return
		}
	} else if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid body: " + err.Error()})
		return
	}

	ctx := c.Request.Context()
	switch req.Action {
	case "init-session":
		sess, err := h.sessions.InitializeSession(ctx, req.CustomerID, req.CustomerName, req.BookingRef, req.EntryPoint)
		if err != nil {
			logger.Error("init-session failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "could not initialize session"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "session": sess})

	case "get-session":
		sess, err := h.sessions.GetSession(ctx, req.SessionID)
		if errors.Is(err, session.ErrNotFound) {
			c.JSON(http.StatusOK, gin.H{"success": false, "error": "session not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "session": sess})

	case "update-session":
		sess, err := h.sessions.GetSession(ctx, req.SessionID)
		if errors.Is(err, session.ErrNotFound) {
			c.JSON(http.StatusOK, gin.H{"success": false, "error": "session not found"})
			return
		}
		if req.Selection != nil {
			sess.Selection = *req.Selection
		}
		if req.Status != "" {
			sess.Status = req.Status
		}
		ok := h.sessions.UpdateSession(ctx, sess)
		c.JSON(http.StatusOK, gin.H{"success": ok, "session": sess})

	case "health-check":
		c.JSON(http.StatusOK, gin.H{"success": true, "health": utils.GetHealthStatus()})

	case "get-asset-urls":
		c.JSON(http.StatusOK, gin.H{"success": true, "assets": utils.AssetURLMap()})

	default:
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "unknown action: " + req.Action})
	}
}
