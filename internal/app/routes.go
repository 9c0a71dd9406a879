package app

import (
	"context"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gracepath/core/internal/config"
	"github.com/gracepath/core/internal/middleware"
	"github.com/gracepath/core/internal/modules/spiritual"
	"github.com/gracepath/core/internal/pkg/metrics"
	"github.com/gracepath/core/internal/pkg/response"
	"github.com/gracepath/core/internal/pkg/storage"
)

const healthPingTimeout = 2 * time.Second

func (a *App) registerRoutes() {
	r := a.router

	r.GET("/health", a.health)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	if local, ok := a.storage.(*storage.Local); ok {
		prefix := a.cfg.Storage.PublicBaseURL
		if strings.HasPrefix(prefix, "/") {
			r.Static(path.Clean(prefix), local.Dir())
		}
	}

	api := r.Group("/api/v1")
	spiritual.NewHandler(a.svc).RegisterRoutes(api, middleware.RateLimit(a.limiter, config.EndpointDefault))

	r.NoRoute(response.NotFound)
}

func (a *App) health(c *gin.Context) {
	status := "ok"
	code := http.StatusOK

	redisState := "disabled"
	if a.redis != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthPingTimeout)
		defer cancel()
		if err := a.redis.Ping(ctx); err != nil {
			redisState = "unreachable"
			status = "degraded"
			code = http.StatusServiceUnavailable
		} else {
			redisState = "ok"
		}
	}

	c.JSON(code, gin.H{
		"status":    status,
		"uptime":    humanizeDuration(time.Since(processStart)),
		"redis":     redisState,
		"providers": a.chain.ProviderIDs(),
		"speech":    a.svc.SpeechAvailable(),
		"rateLimit": a.cfg.RateLimit.Backend,
		"cache":     a.cfg.Cache.Backend,
		"cron":      a.sched.List(),
	})
}
