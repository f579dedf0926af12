package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/modgate/internal/domain/moderation"
	"github.com/orris-inc/modgate/internal/infrastructure/config"
	"github.com/orris-inc/modgate/internal/infrastructure/ratelimit"
	"github.com/orris-inc/modgate/internal/interfaces/http/handlers/testutil"
	sharedConfig "github.com/orris-inc/modgate/internal/shared/config"
)

const testSecret = "test-secret"

func testConfig() *config.Config {
	return &config.Config{
		Server: sharedConfig.ServerConfig{
			Mode:           "test",
			Version:        "1.2.3",
			AllowedOrigins: []string{"*"},
		},
		RateLimit: sharedConfig.RateLimitConfig{
			Enabled:     true,
			Backend:     "memory",
			Window:      60 * time.Second,
			MaxRequests: 2,
			ExemptPaths: []string{"/health", "/ready", "/metrics", "/swagger/*", "/api/v1/openapi.json"},
		},
		Moderation: sharedConfig.ModerationConfig{
			DefaultThreshold: 0.7,
			TextCategories:   []string{"hate_speech", "violence"},
			ImageCategories:  []string{"explicit_content"},
			ScoringTimeout:   time.Second,
			TextMinLength:    1,
			TextMaxLength:    100,
		},
		Upload: sharedConfig.UploadConfig{
			MaxSize:           1024,
			AllowedTypes:      []string{"image/png"},
			AllowedExtensions: []string{".png"},
		},
		Auth: sharedConfig.AuthConfig{JWTSecret: testSecret},
	}
}

func newTestRouter(t *testing.T) *Router {
	t.Helper()
	cfg := testConfig()
	log := testutil.NewMockLogger()

	limiter, err := ratelimit.New(cfg.RateLimit, nil, log)
	require.NoError(t, err)

	scorer := moderation.ScorerFunc(func(ctx context.Context, content moderation.Content) (moderation.Scores, error) {
		if strings.Contains(content.Text, "hurt") {
			return moderation.Scores{"hate_speech": 0.1, "violence": 0.95}, nil
		}
		return moderation.Scores{"hate_speech": 0.1, "violence": 0.1}, nil
	})

	router, err := NewRouter(cfg, limiter, scorer, log)
	require.NoError(t, err)
	router.SetupRoutes()
	return router
}

func doRequest(r *Router, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.GetEngine().ServeHTTP(w, req)
	return w
}

func bearer(t *testing.T, subject string) map[string]string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return map[string]string{"Authorization": "Bearer " + token}
}

func TestRouter_Health(t *testing.T) {
	r := newTestRouter(t)

	for i := 0; i < 5; i++ {
		w := doRequest(r, http.MethodGet, "/health", "", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, map[string]string{"status": "healthy", "version": "1.2.3", "environment": "test"}, body)
	}

	w := doRequest(r, http.MethodGet, "/ready", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_ModerateText_RateLimited(t *testing.T) {
	r := newTestRouter(t)
	body := `{"text":"hello there","content_type":"text"}`

	for i := 0; i < 2; i++ {
		w := doRequest(r, http.MethodPost, "/api/v1/moderate/text", body, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}

	w := doRequest(r, http.MethodPost, "/api/v1/moderate/text", body, nil)
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, "rate_limit_exceeded", resp.Error.Type)
	assert.Equal(t, 60, resp.RetryAfterSeconds)

	// exempt paths stay reachable
	assert.Equal(t, http.StatusOK, doRequest(r, http.MethodGet, "/health", "", nil).Code)
}

func TestRouter_ModerateText_Verdict(t *testing.T) {
	r := newTestRouter(t)

	w := doRequest(r, http.MethodPost, "/api/v1/moderate/text", `{"text":"I will hurt you"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.Equal(t, "success", resp.Status)

	_, err := time.Parse(time.RFC3339, resp.Timestamp)
	assert.NoError(t, err)

	var verdict struct {
		IsApproved bool   `json:"is_approved"`
		Reason     string `json:"reason"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &verdict))
	assert.False(t, verdict.IsApproved)
	assert.Equal(t, "Violation found in content: violence", verdict.Reason)
}

func TestRouter_InvalidInputDoesNotConsumeQuota(t *testing.T) {
	r := newTestRouter(t)

	for i := 0; i < 5; i++ {
		w := doRequest(r, http.MethodPost, "/api/v1/moderate/text", `{"text":"   "}`, nil)
		require.Equal(t, http.StatusBadRequest, w.Code)
	}

	w := doRequest(r, http.MethodPost, "/api/v1/moderate/text", `{"text":"fine"}`, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_ClientIdentity(t *testing.T) {
	r := newTestRouter(t)
	body := `{"text":"hello"}`

	alice := bearer(t, "alice")
	for i := 0; i < 2; i++ {
		require.Equal(t, http.StatusOK, doRequest(r, http.MethodPost, "/api/v1/moderate/text", body, alice).Code)
	}
	assert.Equal(t, http.StatusTooManyRequests, doRequest(r, http.MethodPost, "/api/v1/moderate/text", body, alice).Code)

	// same IP, different identity
	assert.Equal(t, http.StatusOK, doRequest(r, http.MethodPost, "/api/v1/moderate/text", body, bearer(t, "bob")).Code)

	// an invalid token falls back to the IP window, which is still empty
	invalid := map[string]string{"Authorization": "Bearer not-a-token"}
	assert.Equal(t, http.StatusOK, doRequest(r, http.MethodPost, "/api/v1/moderate/text", body, invalid).Code)
}

func TestRouter_CategoriesAreRateLimited(t *testing.T) {
	r := newTestRouter(t)

	for i := 0; i < 2; i++ {
		w := doRequest(r, http.MethodGet, "/api/v1/moderation/categories", "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	}

	w := doRequest(r, http.MethodGet, "/api/v1/moderation/categories", "", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))
}

func TestRouter_ResponseHeaders(t *testing.T) {
	r := newTestRouter(t)

	w := doRequest(r, http.MethodGet, "/health", "", map[string]string{"X-Request-ID": "client-supplied-1"})

	assert.Equal(t, "client-supplied-1", w.Header().Get("X-Request-ID"))
	assert.NotEmpty(t, w.Header().Get("X-Process-Time"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))

	w = doRequest(r, http.MethodGet, "/health", "", map[string]string{"X-Request-ID": "bad id with spaces"})
	assert.True(t, strings.HasPrefix(w.Header().Get("X-Request-ID"), "req_"))
}

func TestRouter_NotFound(t *testing.T) {
	r := newTestRouter(t)

	w := doRequest(r, http.MethodGet, "/nope", "", nil)

	require.Equal(t, http.StatusNotFound, w.Code)
	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.Equal(t, "not_found", resp.Error.Type)
}

func TestRouter_OpenAPI(t *testing.T) {
	r := newTestRouter(t)

	w := doRequest(r, http.MethodGet, "/api/v1/openapi.json", "", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	assert.Equal(t, "2.0", doc["swagger"])
	assert.Contains(t, doc["paths"], "/api/v1/moderate/text")
}

func TestRouter_Metrics(t *testing.T) {
	r := newTestRouter(t)
	doRequest(r, http.MethodPost, "/api/v1/moderate/text", `{"text":"hello"}`, nil)

	w := doRequest(r, http.MethodGet, "/metrics", "", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "modgate_verdicts_total")
}
