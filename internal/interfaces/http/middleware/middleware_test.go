package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/modgate/internal/infrastructure/auth"
	"github.com/orris-inc/modgate/internal/infrastructure/ratelimit"
	"github.com/orris-inc/modgate/internal/interfaces/http/handlers/testutil"
)

type stubLimiter struct {
	decision ratelimit.Decision
	err      error
	calls    []string
}

func (s *stubLimiter) Admit(_ context.Context, clientID string, _ time.Time) (ratelimit.Decision, error) {
	s.calls = append(s.calls, clientID)
	return s.decision, s.err
}

func (s *stubLimiter) Reset(context.Context, string) error { return nil }

func newEngine(handlers ...gin.HandlerFunc) *gin.Engine {
	engine := gin.New()
	engine.Use(handlers...)
	engine.GET("/*path", func(c *gin.Context) {
		c.String(http.StatusOK, GetClientID(c))
	})
	return engine
}

func serve(engine *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func signToken(t *testing.T, secret, subject string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestClientIdentity(t *testing.T) {
	const secret = "test-secret"

	tests := []struct {
		name          string
		secret        string
		authorization func(t *testing.T) string
		want          string
	}{
		{
			name:          "no token uses client ip",
			secret:        secret,
			authorization: func(*testing.T) string { return "" },
			want:          "ip:192.0.2.1",
		},
		{
			name:   "valid token uses subject",
			secret: secret,
			authorization: func(t *testing.T) string {
				return "Bearer " + signToken(t, secret, "alice")
			},
			want: "user:alice",
		},
		{
			name:   "token signed with another secret falls back to ip",
			secret: secret,
			authorization: func(t *testing.T) string {
				return "Bearer " + signToken(t, "other-secret", "alice")
			},
			want: "ip:192.0.2.1",
		},
		{
			name:   "verification disabled ignores token",
			secret: "",
			authorization: func(t *testing.T) string {
				return "Bearer " + signToken(t, secret, "alice")
			},
			want: "ip:192.0.2.1",
		},
		{
			name:          "non bearer scheme ignored",
			secret:        secret,
			authorization: func(*testing.T) string { return "Basic dXNlcjpwYXNz" },
			want:          "ip:192.0.2.1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := newEngine(ClientIdentity(auth.NewTokenVerifier(tt.secret), testutil.NewMockLogger()))

			req := httptest.NewRequest(http.MethodGet, "/anything", nil)
			req.RemoteAddr = "192.0.2.1:1234"
			if h := tt.authorization(t); h != "" {
				req.Header.Set("Authorization", h)
			}

			w := serve(engine, req)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.want, w.Body.String())
		})
	}
}

func TestRateLimiter_Limit(t *testing.T) {
	tests := []struct {
		name         string
		path         string
		decision     ratelimit.Decision
		err          error
		wantStatus   int
		wantCalls    int
		wantLimitHdr string
		wantRetryHdr string
	}{
		{
			name:         "allowed",
			path:         "/api/v1/moderation/categories",
			decision:     ratelimit.Decision{Allowed: true, Limit: 10, Remaining: 9},
			wantStatus:   http.StatusOK,
			wantCalls:    1,
			wantLimitHdr: "10",
		},
		{
			name:         "denied",
			path:         "/api/v1/moderation/categories",
			decision:     ratelimit.Decision{Allowed: false, Limit: 10, RetryAfter: time.Minute},
			wantStatus:   http.StatusTooManyRequests,
			wantCalls:    1,
			wantLimitHdr: "10",
			wantRetryHdr: "60",
		},
		{
			name:       "limiter error fails open",
			path:       "/api/v1/moderation/categories",
			err:        errors.New("store down"),
			wantStatus: http.StatusOK,
			wantCalls:  1,
		},
		{
			name:       "exempt path not counted",
			path:       "/health",
			decision:   ratelimit.Decision{Allowed: false},
			wantStatus: http.StatusOK,
			wantCalls:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limiter := &stubLimiter{decision: tt.decision, err: tt.err}
			rl := NewRateLimiter(limiter, ratelimit.NewExemptPaths([]string{"/health"}), testutil.NewMockLogger())
			engine := newEngine(rl.Limit())

			w := serve(engine, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Len(t, limiter.calls, tt.wantCalls)
			assert.Equal(t, tt.wantLimitHdr, w.Header().Get("X-RateLimit-Limit"))
			assert.Equal(t, tt.wantRetryHdr, w.Header().Get("Retry-After"))
		})
	}
}

func TestRequestID(t *testing.T) {
	engine := newEngine(RequestID())

	t.Run("echoes valid id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(HeaderRequestID, "abc-123_XYZ")

		w := serve(engine, req)

		assert.Equal(t, "abc-123_XYZ", w.Header().Get(HeaderRequestID))
	})

	t.Run("replaces unsafe id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(HeaderRequestID, "<script>")

		w := serve(engine, req)

		got := w.Header().Get(HeaderRequestID)
		assert.NotEqual(t, "<script>", got)
		assert.Regexp(t, `^req_[0-9A-Za-z]{16}$`, got)
	})
}

func TestCORS(t *testing.T) {
	t.Run("wildcard", func(t *testing.T) {
		engine := newEngine(CORS([]string{"*"}))
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "https://example.com")

		w := serve(engine, req)

		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("listed origin", func(t *testing.T) {
		engine := newEngine(CORS([]string{"https://app.example.com"}))
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "https://app.example.com")

		w := serve(engine, req)

		assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
		assert.Equal(t, "Origin", w.Header().Get("Vary"))
	})

	t.Run("preflight", func(t *testing.T) {
		engine := newEngine(CORS([]string{"*"}))
		engine.OPTIONS("/*path", func(c *gin.Context) { c.Status(http.StatusOK) })

		w := serve(engine, httptest.NewRequest(http.MethodOptions, "/api/v1/moderate/text", nil))

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Contains(t, w.Header().Get("Access-Control-Expose-Headers"), "Retry-After")
	})
}

func TestRecovery(t *testing.T) {
	engine := gin.New()
	engine.Use(Recovery(testutil.NewMockLogger()))
	engine.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})

	req := httptest.NewRequest(http.MethodGet, "/panic", nil)
	req.Header.Set("Authorization", "Bearer secret")
	w := serve(engine, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "internal_error", resp.Error.Type)
}

func TestErrorHandler(t *testing.T) {
	engine := gin.New()
	engine.Use(ErrorHandler(testutil.NewMockLogger()))
	engine.GET("/fails", func(c *gin.Context) {
		_ = c.Error(errors.New("unexpected"))
	})

	w := serve(engine, httptest.NewRequest(http.MethodGet, "/fails", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "internal_error", resp.Error.Type)
}

func TestCustomLogger_SetsProcessTime(t *testing.T) {
	engine := newEngine(CustomLogger(testutil.NewMockLogger()))

	w := serve(engine, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Regexp(t, `^\d+\.\d{4}$`, w.Header().Get(HeaderProcessTime))
}
