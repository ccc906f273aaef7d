package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"runtime/debug"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// guardedWriter serializes the handler goroutine and the timeout
// branch. Exactly one response wins: once the deadline response went
// out, every later write from the handler is discarded.
type guardedWriter struct {
	gin.ResponseWriter
	mu     sync.Mutex
	closed bool
}

func (w *guardedWriter) WriteHeader(code int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *guardedWriter) Write(b []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return len(b), nil
	}
	return w.ResponseWriter.Write(b)
}

func (w *guardedWriter) WriteString(s string) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return len(s), nil
	}
	return w.ResponseWriter.WriteString(s)
}

// seal claims the connection for an error response. It reports false
// when the handler already wrote, or the writer was sealed before.
func (w *guardedWriter) seal(status int, message, requestID string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed || w.ResponseWriter.Written() {
		return false
	}
	w.closed = true

	body, _ := json.Marshal(ErrorResponse{
		Code:    status,
		Message: message,
		TraceID: requestID,
	})
	w.ResponseWriter.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.ResponseWriter.WriteHeader(status)
	w.ResponseWriter.Write(body)
	return true
}

// Timeout caps how long the rest of the chain may run. The handler
// keeps running in its own goroutine after the deadline, but its
// writes go nowhere once the 504 is on the wire.
func Timeout(duration time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), duration)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)

		w := &guardedWriter{ResponseWriter: c.Writer}
		c.Writer = w
		requestID := c.GetString(ContextRequestID)

		done := make(chan struct{})
		go func() {
			defer close(done)
			defer func() {
				if rec := recover(); rec != nil {
					log.Error().
						Interface("panic", rec).
						Bytes("stack", debug.Stack()).
						Str("request_id", requestID).
						Str("path", c.Request.URL.Path).
						Msg("panic inside timeout window")
					w.seal(http.StatusInternalServerError, "internal server error", requestID)
				}
			}()
			c.Next()
		}()

		select {
		case <-done:
		case <-ctx.Done():
			w.seal(http.StatusGatewayTimeout, "request timed out", requestID)
		}
	}
}
