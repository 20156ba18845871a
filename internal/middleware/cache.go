package middleware

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mastrovia/devxtra-team/internal/services"
	"github.com/mastrovia/devxtra-team/pkg/logger"
)

type bodyRecorder struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *bodyRecorder) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *bodyRecorder) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// PublicCache serves GET responses from cache, keyed by request path, and
// stores successful responses for ttl. Every response carries a shared
// Cache-Control header.
func PublicCache(cache services.Cache, ttl time.Duration) gin.HandlerFunc {
	seconds := int(ttl.Seconds())
	header := fmt.Sprintf("public, max-age=%d, stale-while-revalidate=%d", seconds, seconds)

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet || cache == nil {
			c.Next()
			return
		}

		key := c.Request.URL.Path
		c.Header("Cache-Control", header)

		if body, ok := cache.Get(c.Request.Context(), key); ok {
			c.Header("X-Cache", "HIT")
			c.Data(http.StatusOK, "application/json; charset=utf-8", body)
			c.Abort()
			return
		}

		rec := &bodyRecorder{ResponseWriter: c.Writer}
		c.Writer = rec
		c.Header("X-Cache", "MISS")
		c.Next()

		if rec.Status() != http.StatusOK || rec.body.Len() == 0 {
			return
		}
		if err := cache.Set(c.Request.Context(), key, rec.body.Bytes(), ttl); err != nil {
			logger.Warn().Err(err).Str("key", key).Msg("cache set failed")
		}
	}
}
