package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(handler gin.HandlerFunc) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	handler(c)
	return w
}

func TestTooManyRequestsSetsRetryAfter(t *testing.T) {
	w := run(func(c *gin.Context) { TooManyRequests(c, "slow down", 0) })
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "1", w.Header().Get("Retry-After"))

	var body ErrorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 0, body.OK)
	assert.Equal(t, http.StatusTooManyRequests, body.Code)
	assert.Equal(t, 1, body.RetryAfter)
}

func TestServiceUnavailableCarriesFallback(t *testing.T) {
	w := run(func(c *gin.Context) { ServiceUnavailable(c, "speech disabled", "browser-speech-synthesis") })
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"ok":0,"code":503,"message":"speech disabled","fallback":"browser-speech-synthesis"}`, w.Body.String())
}

func TestErrorOmitsOptionalFields(t *testing.T) {
	w := run(func(c *gin.Context) { BadRequest(c, "intention is required") })
	assert.JSONEq(t, `{"ok":0,"code":400,"message":"intention is required"}`, w.Body.String())
}
