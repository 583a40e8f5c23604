package handlers

import (
	"errors"
	"net/http"
	"strings"

	"stopover/config"
	"stopover/models"
	"stopover/services/conversation"
	"stopover/services/intelligence"
	"stopover/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ChatHandler serves POST /api/chat.
type ChatHandler struct {
	svc conversation.Service
}

// NewChatHandler builds the chat handler.
func NewChatHandler(svc conversation.Service) *ChatHandler {
	return &ChatHandler{svc: svc}
}

// HandleChat processes one conversation turn. Replies stream as SSE when
// streaming is enabled and the client asks for text/event-stream, and as a
// single JSON body otherwise.
func (h *ChatHandler) HandleChat(c *gin.Context) {
	logger := utils.GetLogger()

	if config.AppConfig.GeminiAPIKey == "" && config.IsProduction() {
		utils.JSONError(c, http.StatusInternalServerError, utils.ErrorResponse{
			Error: "Completion provider is not configured.",
			Type:  "configuration",
		})
		return
	}

	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, utils.ErrorResponse{
			Error:   "Invalid message format",
			Type:    "validation",
			Details: []string{err.Error()},
		})
		return
	}
	if len(req.Messages) == 0 {
		utils.JSONError(c, http.StatusBadRequest, utils.ErrorResponse{
			Error: "Invalid message format",
			Type:  "validation",
			Details: []string{
				"messages must contain at least one entry",
			},
		})
		return
	}

	if h.wantsStream(c) {
		h.streamTurn(c, req)
		return
	}

	resp, err := h.svc.ProcessTurn(c.Request.Context(), req)
	if err != nil {
		logger.Error("chat turn failed", zap.Error(err))
		writeTurnError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ChatHandler) wantsStream(c *gin.Context) bool {
	return config.AppConfig.StreamingEnabled &&
		strings.Contains(c.GetHeader("Accept"), "text/event-stream")
}

func (h *ChatHandler) streamTurn(c *gin.Context, req models.ChatRequest) {
	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	flusher, _ := c.Writer.(http.Flusher)
	emit := func(chunk string) {
		c.SSEvent("message", chunk)
		if flusher != nil {
			flusher.Flush()
		}
	}

	resp, err := h.svc.ProcessTurnStream(c.Request.Context(), req, emit)
	if err != nil {
		// Headers are already out; deliver the error as a terminal event.
		status, body := classifyTurnError(err)
		body.Error = strings.TrimSpace(body.Error)
		c.SSEvent("error", gin.H{"status": status, "error": body.Error, "type": body.Type, "retryable": body.Retryable})
		if flusher != nil {
			flusher.Flush()
		}
		return
	}
	// Tool results arrive as one atomic unit at the end of the stream.
	c.SSEvent("done", resp)
	if flusher != nil {
		flusher.Flush()
	}
}

func writeTurnError(c *gin.Context, err error) {
	status, body := classifyTurnError(err)
	utils.JSONError(c, status, body)
}

func classifyTurnError(err error) (int, utils.ErrorResponse) {
	if errors.Is(err, conversation.ErrNoUserMessage) {
		return http.StatusBadRequest, utils.ErrorResponse{
			Error: "Invalid message format",
			Type:  "validation",
			Details: []string{
				"the last message must come from the user",
			},
		}
	}

	var merr *intelligence.ModelError
	if errors.As(err, &merr) {
		return merr.Status, utils.ErrorResponse{
			Error:     userFacingModelError(merr.Type),
			Type:      string(merr.Type),
			Retryable: merr.Retryable,
		}
	}

	var afe *intelligence.AllModelsFailedError
	if errors.As(err, &afe) {
		return http.StatusInternalServerError, utils.ErrorResponse{
			Error:     "Our assistant is temporarily unavailable. Please try again.",
			Type:      "all_models_failed",
			Retryable: true,
		}
	}

	return http.StatusInternalServerError, utils.ErrorResponse{
		Error:     "An unexpected error occurred. Please try again later.",
		Type:      "internal",
		Retryable: true,
	}
}

func userFacingModelError(t intelligence.ErrorType) string {
	switch t {
	case intelligence.ErrTypeRateLimit:
		return "We're receiving a lot of requests right now. Please try again in a moment."
	case intelligence.ErrTypeContextTooLong:
		return "This conversation has grown too long. Please start a new one."
	case intelligence.ErrTypeAuthentication:
		return "The assistant is misconfigured. Our team has been notified."
	default:
		return "Something went wrong talking to the assistant. Please try again."
	}
}
