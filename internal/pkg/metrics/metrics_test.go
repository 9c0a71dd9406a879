package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddlewareRecordsMatchedRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware())
	r.GET("/api/v1/scripture/:theme", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	before := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/api/v1/scripture/:theme", "204"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/scripture/peace", nil))

	after := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/api/v1/scripture/:theme", "204"))
	assert.Equal(t, before+1, after)
}

func TestRecorders(t *testing.T) {
	RecordGenerationAttempt("", "prayer", "failure", 20*time.Millisecond)
	assert.GreaterOrEqual(t, testutil.ToFloat64(generationAttempts.WithLabelValues("unknown", "prayer", "failure")), 1.0)

	RecordRateLimit("prayer", RateLimitFailOpen)
	assert.GreaterOrEqual(t, testutil.ToFloat64(rateLimitDecisions.WithLabelValues("prayer", RateLimitFailOpen)), 1.0)

	RecordCacheLookup("daily", CacheHit)
	assert.GreaterOrEqual(t, testutil.ToFloat64(cacheLookups.WithLabelValues("daily", CacheHit)), 1.0)

	RecordFallback("guidance")
	RecordModerationRejection("prayer", "forbidden_topic")
	assert.GreaterOrEqual(t, testutil.ToFloat64(moderationRejections.WithLabelValues("prayer", "forbidden_topic")), 1.0)
}

func TestHandlerExposesNamespace(t *testing.T) {
	RecordFallback("daily")
	w := httptest.NewRecorder()
	Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "gracepath_generation_fallbacks_total"))
}
