package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"eventgrid/internal/auth"
	"eventgrid/internal/logger"

	"github.com/gin-gonic/gin"
)

const tokenKey = "bearer_token"

// Token returns the bearer token RequireAuth extracted for this request.
func Token(c *gin.Context) string {
	if v, exists := c.Get(tokenKey); exists {
		if token, ok := v.(string); ok {
			return token
		}
	}
	return ""
}

// CORS middleware for browser clients
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(200)
			return
		}

		c.Next()
	}
}

// Logger middleware for structured request logging
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := logger.NewRequestID()
		c.Set("request_id", requestID)

		c.Next()

		latency := time.Since(start)

		logFields := []any{
			"request_id", requestID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status_code", c.Writer.Status(),
			"latency_ms", latency.Milliseconds(),
			"client_ip", c.ClientIP(),
		}

		if c.Writer.Status() >= 400 {
			if len(c.Errors) > 0 {
				logFields = append(logFields, "error", c.Errors.String())
			}
			slog.Error("Request completed with error", logFields...)
		} else {
			slog.Debug("Request completed", logFields...)
		}
	}
}

// Recovery middleware with detailed panic logging
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		slog.Error("PANIC recovered",
			"panic", recovered,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"query", c.Request.URL.RawQuery,
			"client_ip", c.ClientIP(),
		)

		if !c.Writer.Written() {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
	})
}

// RequireAuth extracts the bearer credential issued by the external auth
// collaborator. The storefront never validates or refreshes it, only
// forwards it upstream.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := auth.BearerFromHeader(c.GetHeader("Authorization"))
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		c.Set(tokenKey, token)
		c.Next()
	}
}
