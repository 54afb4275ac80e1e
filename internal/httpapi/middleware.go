package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nguyentantai21042004/audio-summarizer/internal/logger"
	"github.com/nguyentantai21042004/audio-summarizer/internal/metrics"
)

const requestIDKey = "request_id"

// RequestID adds a unique request ID to each request and its context.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Set(requestIDKey, requestID)
		c.Header("X-Request-ID", requestID)
		c.Request = c.Request.WithContext(logger.WithRequestID(c.Request.Context(), requestID))
		c.Next()
	}
}

// AccessLog logs one line per request, skipping health and metrics probes.
func AccessLog(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.Request.URL.Path
		if path == "/health" || path == "/metrics" {
			return
		}

		log.Info(c.Request.Context(), "HTTP %s %s %d %s %s",
			c.Request.Method,
			path,
			c.Writer.Status(),
			time.Since(start).Round(time.Millisecond),
			c.ClientIP(),
		)
	}
}

// Metrics records request counts and latency per route pattern.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		pattern := c.FullPath()
		if pattern == "" {
			pattern = "unmatched"
		}
		metrics.HTTPRequestsTotal.WithLabelValues(c.Request.Method, pattern, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(c.Request.Method, pattern).Observe(time.Since(start).Seconds())
	}
}

// Recovery turns a panic into a JSON 500 instead of dropping the connection.
func Recovery(log logger.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Error(c.Request.Context(), "Recovered from panic on %s %s: %v", c.Request.Method, c.Request.URL.Path, recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError, &APIError{
			Kind:      KindInternal,
			Message:   "Internal server error",
			RequestID: c.GetString(requestIDKey),
		})
	})
}
