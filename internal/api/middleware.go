package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	traceIDKey    = "trace_id"
	traceIDHeader = "X-Trace-ID"
)

// TraceID tags each request with an id, reusing a well-formed incoming
// X-Trace-ID header.
func TraceID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(traceIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set(traceIDKey, id)
		c.Writer.Header().Set(traceIDHeader, id)
		c.Next()
	}
}

// RequestLogger writes one entry per request; level follows the status.
func RequestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		fields := []zap.Field{
			zap.String("method", strings.ToUpper(c.Request.Method)),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
			zap.String(traceIDKey, traceID(c)),
		}
		if sid := c.Param("id"); sid != "" {
			fields = append(fields, zap.String("session_id", sid))
		}

		switch {
		case status >= http.StatusInternalServerError:
			log.Error("http request", fields...)
		case status >= http.StatusBadRequest:
			log.Warn("http request", fields...)
		default:
			log.Info("http request", fields...)
		}
	}
}

// LimitPerSession rejects requests for a session that exceeded its rate.
func LimitPerSession(l *SessionLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.Allow(c.Param("id")) {
			respondError(c, http.StatusTooManyRequests, "too many messages for this session, slow down")
			return
		}
		c.Next()
	}
}
