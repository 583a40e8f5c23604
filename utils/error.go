package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse defines the structure of error responses.
type ErrorResponse struct {
	Error     string   `json:"error"`
	Type      string   `json:"type,omitempty"`
	Retryable bool     `json:"retryable,omitempty"`
	Details   []string `json:"details,omitempty"`
}

// ErrorHandler is a middleware to catch panics and return structured errors.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				GetLogger().Error("Unhandled panic", zap.Any("error", err))
				c.JSON(http.StatusInternalServerError, ErrorResponse{
					Error:     "An unexpected error occurred. Please try again later.",
					Type:      "internal",
					Retryable: true,
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// JSONError sends a standardized JSON error response.
func JSONError(c *gin.Context, status int, resp ErrorResponse) {
	GetLogger().Warn(resp.Error, zap.String("type", resp.Type), zap.Int("status", status))
	c.JSON(status, resp)
}
