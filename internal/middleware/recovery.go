package middleware

import (
	"errors"
	"net"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Recovery converts panics into a 500 envelope. Writes against a
// connection the client already dropped are not worth a stack trace
// and get logged at warn without a response.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}

			requestID := c.GetString(ContextRequestID)
			if clientGone(rec) {
				log.Warn().
					Interface("panic", rec).
					Str("request_id", requestID).
					Str("path", c.Request.URL.Path).
					Msg("client dropped connection mid-response")
				c.Abort()
				return
			}

			log.Error().
				Interface("panic", rec).
				Bytes("stack", debug.Stack()).
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Str("client_ip", c.ClientIP()).
				Str("request_id", requestID).
				Msg("panic recovered")

			c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
				Code:    http.StatusInternalServerError,
				Message: "internal server error",
				TraceID: requestID,
			})
		}()
		c.Next()
	}
}

// clientGone reports whether the panic came from writing to a closed
// connection.
func clientGone(rec interface{}) bool {
	err, ok := rec.(error)
	if !ok {
		return false
	}
	var opErr *net.OpError
	if !errors.As(err, &opErr) {
		return false
	}
	msg := strings.ToLower(opErr.Error())
	return strings.Contains(msg, "broken pipe") || strings.Contains(msg, "connection reset by peer")
}
