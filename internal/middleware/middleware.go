package middleware

import (
	"log/slog"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joshua-takyi/eventhive/internal/session"
)

const (
	accessTokenCookie  = "access_token"
	refreshTokenCookie = "refresh_token"
)

// RequestID middleware adds a unique request ID to each request
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// StructuredLogger provides structured logging middleware
func StructuredLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		if raw != "" {
			path = path + "?" + raw
		}
		requestID, _ := c.Get("request_id")

		logger.Info("HTTP Request",
			"request_id", requestID,
			"method", c.Request.Method,
			"path", path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
		)
	}
}

// ErrorHandler logs errors attached with c.Error. Handlers that already wrote
// a response keep it; otherwise a generic 500 is sent.
func ErrorHandler(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last()
		requestID, _ := c.Get("request_id")

		logger.Error("Request error",
			"request_id", requestID,
			"error", err.Error(),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
		)

		if !c.Writer.Written() {
			c.JSON(500, gin.H{
				"success":    false,
				"error":      "Internal server error",
				"request_id": requestID,
			})
		}
	}
}

// Session reads the caller's session token, from a bearer header or the
// access_token cookie, and stores the resolved identity in the context. It
// never rejects a request: an absent or invalid session just means no
// identity. An expired access token is refreshed when a refresh cookie is
// present.
func Session(provider session.Provider, logger *slog.Logger, secureCookies bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			token, _ = c.Cookie(accessTokenCookie)
		}
		if token == "" {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		id, err := provider.Resolve(ctx, token)
		if err != nil {
			refreshToken, cookieErr := c.Cookie(refreshTokenCookie)
			if cookieErr != nil || refreshToken == "" {
				logger.Debug("Session not resolved", "error", err)
				c.Next()
				return
			}

			tokens, refreshErr := provider.Refresh(ctx, refreshToken)
			if refreshErr != nil {
				logger.Info("Token refresh failed", "error", refreshErr)
				c.Next()
				return
			}
			c.SetCookie(accessTokenCookie, tokens.AccessToken, tokens.ExpiresIn, "/", "", secureCookies, true)
			c.SetCookie(refreshTokenCookie, tokens.RefreshToken, 3600*24*30, "/", "", secureCookies, true)

			id, err = provider.Resolve(ctx, tokens.AccessToken)
			if err != nil {
				logger.Info("Refreshed token validation failed", "error", err)
				c.Next()
				return
			}
			logger.Info("Token refreshed successfully", "user_id", id.UserID)
		}

		session.WithIdentity(c, id)
		c.Next()
	}
}

func bearerToken(header string) string {
	const prefix = "bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}
