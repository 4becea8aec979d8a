package handlers

import (
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	requestIDHeader = "X-Request-ID"

	msgLoginRequired = "Please log in to view this page."
)

// requireLogin rejects anonymous callers before any handler runs and
// publishes the session identity under ContextUserKey.
func (h *Handler) requireLogin(c *gin.Context) {
	state := checkSession(sessions.Default(c))
	if !state.allowed {
		h.redirectWithFlash(c, "/login", flashDanger, msgLoginRequired)
		c.Abort()
		return
	}

	c.Set(ContextUserKey, state.username)
	c.Next()
}

// requestLogger tags each request with an id and logs the outcome at a level
// derived from the status code.
func (h *Handler) requestLogger(c *gin.Context) {
	requestID := c.GetHeader(requestIDHeader)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	c.Header(requestIDHeader, requestID)

	start := time.Now()
	c.Next()

	if h.log == nil {
		return
	}
	status := c.Writer.Status()
	kv := []interface{}{
		"request_id", requestID,
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"status", status,
		"latency", time.Since(start),
	}
	switch {
	case status >= 500:
		h.log.Errorw("http_request", kv...)
	case status >= 400:
		h.log.Warnw("http_request", kv...)
	default:
		h.log.Infow("http_request", kv...)
	}
}
