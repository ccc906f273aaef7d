package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/patasfelizes/clinic-api/internal/middleware"
)

func newEngine(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(mw...)
	return engine
}

func get(engine *gin.Engine, path string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestTimeoutReturns504(t *testing.T) {
	engine := newEngine(middleware.Timeout(20 * time.Millisecond))
	release := make(chan struct{})
	handlerDone := make(chan struct{})
	engine.GET("/slow", func(c *gin.Context) {
		<-release
		c.JSON(http.StatusOK, gin.H{"late": "write"})
		close(handlerDone)
	})

	rec := get(engine, "/slow", nil)
	require.Equal(t, http.StatusGatewayTimeout, rec.Code)

	var body middleware.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, http.StatusGatewayTimeout, body.Code)
	assert.Equal(t, "request timed out", body.Message)

	// the handler keeps running, but its response must go nowhere
	close(release)
	<-handlerDone
	assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
	assert.NotContains(t, rec.Body.String(), "late")
}

func TestTimeoutLeavesFastRequestsAlone(t *testing.T) {
	engine := newEngine(middleware.Timeout(time.Second))
	engine.GET("/fast", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	rec := get(engine, "/fast", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok":true`)
}

func TestTimeoutRecoversHandlerPanic(t *testing.T) {
	engine := newEngine(middleware.Timeout(time.Second))
	engine.GET("/boom", func(c *gin.Context) {
		panic("kaput")
	})

	rec := get(engine, "/boom", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "internal server error")
}

func TestRecoveryReturns500Envelope(t *testing.T) {
	engine := newEngine(middleware.RequestID(), middleware.Recovery())
	engine.GET("/boom", func(c *gin.Context) {
		panic("kaput")
	})

	rec := get(engine, "/boom", nil)
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var body middleware.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "internal server error", body.Message)
	assert.NotEmpty(t, body.TraceID)
}

func TestRequestIDGeneratedWhenAbsent(t *testing.T) {
	engine := newEngine(middleware.RequestID())
	engine.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	rec := get(engine, "/", nil)
	rid := rec.Header().Get(middleware.HeaderXRequestID)
	_, err := uuid.Parse(rid)
	assert.NoError(t, err, "generated id is a uuid")
}

func TestRequestIDEchoesValidInboundID(t *testing.T) {
	engine := newEngine(middleware.RequestID())
	engine.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	inbound := uuid.New().String()
	rec := get(engine, "/", map[string]string{middleware.HeaderXRequestID: inbound})
	assert.Equal(t, inbound, rec.Header().Get(middleware.HeaderXRequestID))
}

func TestRequestIDReplacesGarbageInboundID(t *testing.T) {
	engine := newEngine(middleware.RequestID())
	engine.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	rec := get(engine, "/", map[string]string{middleware.HeaderXRequestID: "<script>alert(1)</script>"})
	rid := rec.Header().Get(middleware.HeaderXRequestID)
	_, err := uuid.Parse(rid)
	assert.NoError(t, err, "garbage ids are never reflected")
}

func TestRateLimitRejectsBeyondBurst(t *testing.T) {
	engine := newEngine(middleware.RateLimit(rate.Limit(0.001), 2))
	engine.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, get(engine, "/", nil).Code)
	assert.Equal(t, http.StatusOK, get(engine, "/", nil).Code)

	rec := get(engine, "/", nil)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), "rate limit exceeded")
}

func TestSecurityHeaders(t *testing.T) {
	engine := newEngine(middleware.SecurityHeaders(middleware.DefaultSecurityConfig()))
	engine.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	rec := get(engine, "/", nil)
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.Equal(t, "no-referrer", rec.Header().Get("Referrer-Policy"))
	assert.Equal(t, "max-age=31536000; includeSubDomains", rec.Header().Get("Strict-Transport-Security"))
	assert.Equal(t, "default-src 'none'; frame-ancestors 'none'", rec.Header().Get("Content-Security-Policy"))
}

func TestCORSPreflight(t *testing.T) {
	engine := newEngine(middleware.CORS(middleware.DefaultCORSConfig()))

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/patients", nil)
	req.Header.Set("Origin", "https://app.patasfelizes.com")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	// wildcard plus credentials reflects the caller's origin
	assert.Equal(t, "https://app.patasfelizes.com", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodDelete)
}

func TestCORSPassesNonPreflightThrough(t *testing.T) {
	engine := newEngine(middleware.CORS(middleware.DefaultCORSConfig()))
	engine.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	rec := get(engine, "/", map[string]string{"Origin": "https://app.patasfelizes.com"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "86400", rec.Header().Get("Access-Control-Max-Age"))
}
