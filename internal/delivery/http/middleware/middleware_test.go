package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"portfolio-contact-api/internal/delivery/http/response"
	"portfolio-contact-api/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newEngine(mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(mw...)
	return r
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) response.ErrorResponse {
	t.Helper()
	var body response.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestErrorHandler(t *testing.T) {
	r := newEngine(RequestID(), ErrorHandler())
	r.GET("/app", func(c *gin.Context) {
		_ = c.Error(apperror.BadRequest("全ての項目を入力してください", errors.New("name missing")))
	})
	r.GET("/raw", func(c *gin.Context) {
		_ = c.Error(errors.New("dial tcp: hooks.slack.com refused"))
	})

	t.Run("app error keeps status and message", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/app", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "全ての項目を入力してください", decodeError(t, w).Error)
	})

	t.Run("unknown error is generic", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/raw", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, GenericErrorMessage, decodeError(t, w).Error)
		assert.NotContains(t, w.Body.String(), "hooks.slack.com")
	})
}

func TestRecovery(t *testing.T) {
	r := newEngine(Recovery())
	r.GET("/panic", func(c *gin.Context) {
		panic("nil map write")
	})

	w := httptest.NewRecorder()
	require.NotPanics(t, func() {
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, GenericErrorMessage, decodeError(t, w).Error)
}

func TestRequestID(t *testing.T) {
	r := newEngine(RequestID())
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("RequestID"))
	})

	t.Run("generates id", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		id := w.Header().Get(RequestIDHeader)
		_, err := uuid.Parse(id)
		require.NoError(t, err)
		assert.Equal(t, id, w.Body.String())
	})

	t.Run("reuses valid incoming id", func(t *testing.T) {
		incoming := uuid.NewString()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, incoming)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, incoming, w.Header().Get(RequestIDHeader))
	})

	t.Run("replaces garbage id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "<script>")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.NotEqual(t, "<script>", w.Header().Get(RequestIDHeader))
	})
}

func TestCORSMiddleware(t *testing.T) {
	preflight := func(r *gin.Engine, origin string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodOptions, "/api/contact", nil)
		req.Header.Set("Origin", origin)
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	site := "https://denimcap.work"

	t.Run("production allows whitelist only", func(t *testing.T) {
		r := newEngine(CORSMiddleware([]string{site}, true))
		r.POST("/api/contact", func(c *gin.Context) {})

		assert.Equal(t, site, preflight(r, site).Header().Get("Access-Control-Allow-Origin"))
		assert.Empty(t, preflight(r, "http://localhost:3000").Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("development allows localhost", func(t *testing.T) {
		r := newEngine(CORSMiddleware([]string{site}, false))
		r.POST("/api/contact", func(c *gin.Context) {})

		assert.Equal(t, "http://localhost:3000", preflight(r, "http://localhost:3000").Header().Get("Access-Control-Allow-Origin"))
		assert.Empty(t, preflight(r, "https://evil.example").Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestSecurityHeadersMiddleware(t *testing.T) {
	r := newEngine(SecurityHeadersMiddleware(false, APIContentSecurityPolicy))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "strict-origin-when-cross-origin", w.Header().Get("Referrer-Policy"))
	assert.Equal(t, APIContentSecurityPolicy, w.Header().Get("Content-Security-Policy"))
}

func TestRateLimitMiddleware(t *testing.T) {
	cfg := ContactRateLimitConfig(2, time.Minute, false)
	cfg.KeyPrefix = "rl:test:" + uuid.NewString() + ":"

	r := newEngine(RateLimitMiddleware(cfg))
	r.POST("/api/contact", func(c *gin.Context) { c.Status(http.StatusOK) })

	send := func() *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/contact", nil))
		return w
	}

	first := send()
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, http.StatusOK, send().Code)

	blocked := send()
	assert.Equal(t, http.StatusTooManyRequests, blocked.Code)
	assert.Equal(t, RateLimitMessage, decodeError(t, blocked).Error)
	assert.NotEmpty(t, blocked.Header().Get("Retry-After"))
}

func TestRateLimitDisabled(t *testing.T) {
	r := newEngine(RateLimitMiddleware(ContactRateLimitConfig(0, time.Minute, false)))
	r.POST("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestRateLimitRedisUnavailable(t *testing.T) {
	// nothing listens on port 1, so every Eval fails fast
	broken := goredis.NewClient(&goredis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer broken.Close()

	cases := []struct {
		name       string
		failClosed bool
		want       int
	}{
		{"falls back to memory", false, http.StatusOK},
		{"fails closed", true, http.StatusServiceUnavailable},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := ContactRateLimitConfig(5, time.Minute, tc.failClosed)
			cfg.KeyPrefix = "rl:test:" + uuid.NewString() + ":"
			cfg.Redis = func() *goredis.Client { return broken }

			r := newEngine(RateLimitMiddleware(cfg))
			r.POST("/api/contact", func(c *gin.Context) { c.Status(http.StatusOK) })

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/contact", nil))
			assert.Equal(t, tc.want, w.Code)
			if tc.failClosed {
				assert.Equal(t, GenericErrorMessage, decodeError(t, w).Error)
			}
		})
	}
}

func TestCheckRateLimitInMemoryWindowReset(t *testing.T) {
	cfg := RateLimitConfig{Limit: 1, Window: time.Second}
	key := "rl:window:" + uuid.NewString()
	start := time.Now()

	count, _ := checkRateLimitInMemory(key, cfg, start)
	assert.Equal(t, 1, count)
	count, _ = checkRateLimitInMemory(key, cfg, start.Add(500*time.Millisecond))
	assert.Equal(t, 2, count)
	count, _ = checkRateLimitInMemory(key, cfg, start.Add(2*time.Second))
	assert.Equal(t, 1, count)
}
