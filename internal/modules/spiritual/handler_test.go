package spiritual

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gracepath/core/internal/middleware"
	"github.com/gracepath/core/internal/pkg/jwt"
	"github.com/gracepath/core/internal/pkg/response"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(env *testEnv) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.OptionalAuth())
	NewHandler(env.svc).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func bearer(t *testing.T, userID string) string {
	t.Helper()
	jwt.SetSecret("handler-secret")
	token, err := jwt.Sign(userID, time.Hour)
	require.NoError(t, err)
	return "Bearer " + token
}

func doJSON(r http.Handler, method, path, auth string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) response.ErrorBody {
	t.Helper()
	var body response.ErrorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestPrayerEndpointStatusCodes(t *testing.T) {
	env := newTestEnv(t)
	r := newTestRouter(env)
	auth := bearer(t, "u-1")

	w := doJSON(r, http.MethodPost, "/api/v1/prayers/generate", "", peacePrayer())
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(r, http.MethodPost, "/api/v1/prayers/generate", auth, PrayerRequest{Language: "en"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, ErrMissingIntention.Error(), decodeError(t, w).Message)

	w = doJSON(r, http.MethodPost, "/api/v1/prayers/generate", auth, peacePrayer())
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2", w.Header().Get(middleware.HeaderRateLimitLimit))
	assert.Equal(t, "0", w.Header().Get(middleware.HeaderRateLimitRemaining))
	var out PrayerResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, "primary", out.Source)
	assert.NotEmpty(t, out.ScriptureReferences)

	w = doJSON(r, http.MethodPost, "/api/v1/prayers/generate", auth, peacePrayer())
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))
	assert.Equal(t, "0", w.Header().Get(middleware.HeaderRateLimitRemaining))
}

func TestAuthRoutesRejectBeforeCountingQuota(t *testing.T) {
	env := newTestEnv(t)
	r := newTestRouter(env)
	bearer(t, "u-1")

	for _, path := range []string{"/api/v1/prayers/generate", "/api/v1/speech"} {
		w := doJSON(r, http.MethodPost, path, "Bearer not-a-token", map[string]string{"intention": "peace", "text": "Amen"})
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
		assert.Empty(t, w.Header().Get(middleware.HeaderRateLimitLimit), path)
	}
	assert.Zero(t, env.provider.calls)
	assert.Zero(t, env.synth.calls)
}

func TestPrayerEndpointModerationAndOutputFailure(t *testing.T) {
	env := newTestEnv(t)
	r := newTestRouter(env)

	req := peacePrayer()
	req.Intention = "please put a hex on my neighbour"
	w := doJSON(r, http.MethodPost, "/api/v1/prayers/generate", bearer(t, "u-1"), req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeError(t, w).Message, "hex on")

	env.provider.text = "This is a guaranteed miracle."
	w = doJSON(r, http.MethodPost, "/api/v1/prayers/generate", bearer(t, "u-1"), peacePrayer())
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "guaranteed miracle")
}

func TestDailyMessageEndpoint(t *testing.T) {
	env := newTestEnv(t)
	r := newTestRouter(env)

	w := doJSON(r, http.MethodGet, "/api/v1/daily-message?lang=es", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(middleware.HeaderRateLimitLimit))

	var out DailyMessageResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.False(t, out.Cached)
	assert.Equal(t, "es", out.ScriptureReferences[0].Language)

	w = doJSON(r, http.MethodGet, "/api/v1/daily-message?lang=es", "", nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.True(t, out.Cached)
}

func TestGuidanceEndpointAlwaysOK(t *testing.T) {
	env := newTestEnv(t)
	r := newTestRouter(env)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/guidance/chat", bytes.NewBufferString("{not json"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	for i := 0; i < 3; i++ {
		w = doJSON(r, http.MethodPost, "/api/v1/guidance/chat", "", GuidanceRequest{Message: "I am afraid"})
		assert.Equal(t, http.StatusOK, w.Code)
	}
	var out GuidanceResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, SourceRateLimited, out.Source)
}

func TestSpeechEndpoint(t *testing.T) {
	env := newTestEnv(t)
	r := newTestRouter(env)

	w := doJSON(r, http.MethodPost, "/api/v1/speech", "", SpeechRequest{Text: "Amen"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(r, http.MethodPost, "/api/v1/speech", bearer(t, "u-1"), SpeechRequest{Text: "Amen", Speed: 9})
	require.Equal(t, http.StatusOK, w.Code)
	var out SpeechResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.NotEmpty(t, out.AudioURL)
	assert.False(t, out.Cached)
}

func TestSpeechEndpointUnavailable(t *testing.T) {
	env := newTestEnv(t, func(c *envConfig) { c.noSpeech = true })
	r := newTestRouter(env)

	w := doJSON(r, http.MethodPost, "/api/v1/speech", bearer(t, "u-1"), SpeechRequest{Text: "Amen"})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, FallbackBrowserSpeech, decodeError(t, w).Fallback)
}

func TestScriptureEndpoint(t *testing.T) {
	env := newTestEnv(t)
	r := newTestRouter(env)

	w := doJSON(r, http.MethodGet, "/api/v1/scripture?theme=peace&count=2", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var out ScriptureResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.Len(t, out.References, 2)
	assert.Equal(t, "John 14:27", out.References[0].Citation)
}
