package middleware

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"log/slog"
	"regexp"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/simp-lee/logger"
)

const (
	requestIDHeader     = "X-Request-ID"
	requestIDContextKey = "request_id"
	requestIDLength     = 16
)

// Upstream ids are only accepted when they look like correlation ids, not
// arbitrary header payloads.
var upstreamIDPattern = regexp.MustCompile(`^[A-Za-z0-9-]{1,64}$`)

// RequestIDConfig controls whether an incoming X-Request-ID is reused.
type RequestIDConfig struct {
	TrustUpstream bool
}

// RequestID returns the middleware with upstream ids distrusted: every
// request gets a freshly generated id.
func RequestID() gin.HandlerFunc {
	return RequestIDWithConfig(RequestIDConfig{})
}

// RequestIDWithConfig returns a gin middleware that attaches a correlation id
// to every request. The id lands in three places: the gin context (where the
// response envelope reads it), the X-Request-ID response header, and the
// request's slog attrs so every log line carries it. With TrustUpstream a
// well-formed incoming X-Request-ID is kept instead of generating a new one.
func RequestIDWithConfig(cfg RequestIDConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := generateRequestID()
		if cfg.TrustUpstream {
			if upstream := c.GetHeader(requestIDHeader); upstreamIDPattern.MatchString(upstream) {
				id = upstream
			}
		}

		c.Set(requestIDContextKey, id)
		c.Header(requestIDHeader, id)

		ctx := logger.WithContextAttrs(c.Request.Context(), slog.String("request_id", id))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// GetRequestID returns the request's correlation id, or "" before the
// middleware has run.
func GetRequestID(c *gin.Context) string {
	if v, exists := c.Get(requestIDContextKey); exists {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

var fallbackCounter atomic.Uint64

// generateRequestID returns 16 random bytes hex-encoded. If the system
// entropy source fails, a timestamp plus counter keeps ids unique within
// the process.
func generateRequestID() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		binary.BigEndian.PutUint64(b[:8], uint64(time.Now().UnixNano()))
		binary.BigEndian.PutUint64(b[8:], fallbackCounter.Add(1))
	}
	return hex.EncodeToString(b[:])
}
