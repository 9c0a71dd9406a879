package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gracepath/core/internal/config"
	"github.com/gracepath/core/internal/middleware"
	"github.com/gracepath/core/internal/modules/processing/ai"
	"github.com/gracepath/core/internal/modules/processing/moderation"
	"github.com/gracepath/core/internal/modules/processing/speech"
	"github.com/gracepath/core/internal/modules/spiritual"
	"github.com/gracepath/core/internal/pkg/cache"
	pkgcron "github.com/gracepath/core/internal/pkg/cron"
	"github.com/gracepath/core/internal/pkg/metrics"
	"github.com/gracepath/core/internal/pkg/ratelimit"
	pkgredis "github.com/gracepath/core/internal/pkg/redis"
	"github.com/gracepath/core/internal/pkg/storage"
	"go.uber.org/zap"
)

// App holds all application dependencies.
type App struct {
	cfg     *config.AppConfig
	router  *gin.Engine
	logger  *zap.Logger
	cancel  context.CancelFunc
	sched   *pkgcron.Scheduler
	redis   *pkgredis.Client
	limiter *ratelimit.Limiter
	memRate *ratelimit.MemoryStore
	cache   cache.Store
	chain   *ai.Chain
	svc     *spiritual.Service
	storage storage.Storage
	closers []io.Closer
}

// New initializes the application: config → Redis → stores → providers → routes.
func New(logger *zap.Logger, cfg *config.AppConfig) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := applyRuntimeSettings(cfg, logger); err != nil {
		return nil, err
	}

	a := &App{cfg: cfg, logger: logger}
	if err := a.build(); err != nil {
		a.closeAll()
		return nil, err
	}

	if cfg.IsDev() {
		gin.SetMode(gin.DebugMode)
		gin.DebugPrintRouteFunc = func(string, string, string, int) {}
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))
	router.Use(metrics.Middleware())
	router.Use(cors.New(corsConfig(cfg)))
	router.Use(middleware.OptionalAuth())
	a.router = router

	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel
	a.sched = pkgcron.New(logger.Named("CronService"))
	a.registerCronJobs()
	a.sched.Start(ctx)

	a.registerRoutes()
	return a, nil
}

func (a *App) build() error {
	cfg := a.cfg
	if needsRedis(cfg) {
		rc, err := pkgredis.Connect(context.Background(), cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("redis: %w", err)
		}
		a.redis = rc
		a.closers = append(a.closers, rc)
	}

	var rateStore ratelimit.Store
	if cfg.RateLimit.Backend == config.BackendRedis {
		rateStore = ratelimit.NewRedisStore(a.redis.Raw())
	} else {
		a.memRate = ratelimit.NewMemoryStore()
		rateStore = a.memRate
	}
	a.limiter = ratelimit.New(rateStore, rateLimitRules(cfg), a.logger.Named("RateLimit"),
		ratelimit.WithFailClosed(cfg.RateLimit.FailClosed),
		ratelimit.WithObserver(observeRateLimit),
	)

	switch cfg.Cache.Backend {
	case config.BackendRedis:
		a.cache = cache.NewRedisStore(a.redis.Raw())
	case config.BackendSQLite:
		store, err := cache.OpenSQLite(cfg.DataPath(cfg.Cache.SQLitePath))
		if err != nil {
			return fmt.Errorf("cache: %w", err)
		}
		a.cache = store
		a.closers = append(a.closers, store)
	default:
		a.cache = cache.NewMemory()
	}

	providers, err := ai.NewProviders(cfg.EnabledProviders(), &http.Client{Timeout: cfg.AI.Timeout + 5*time.Second})
	if err != nil {
		return fmt.Errorf("ai providers: %w", err)
	}
	if len(providers) == 0 {
		a.logger.Warn("no AI provider enabled, every response comes from the fallback pool")
	}
	a.chain = ai.NewChain(providers,
		ai.WithAttemptTimeout(cfg.AI.Timeout),
		ai.WithLogger(a.logger.Named("AIChain")),
		ai.WithObserver(func(at ai.Attempt) {
			metrics.RecordGenerationAttempt(at.Provider, string(at.Prompt.Kind), string(at.Outcome), at.Latency)
		}),
	)

	synth, err := speech.New(cfg.Speech)
	if err != nil {
		return fmt.Errorf("speech: %w", err)
	}
	store, err := storage.New(cfg.Storage, cfg.DataPath)
	if err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	a.storage = store

	a.svc = spiritual.NewService(spiritual.Deps{
		Limiter:     a.limiter,
		Moderator:   moderation.New(cfg.Moderation.ForbiddenTopics, cfg.Moderation.WarningPhrases),
		Chain:       a.chain,
		Cache:       a.cache,
		Synthesizer: synth,
		Storage:     store,
		Logger:      a.logger.Named("Spiritual"),
	},
		spiritual.WithLocation(cfg.Location()),
		spiritual.WithMaxOutputTokens(cfg.AI.MaxOutputTokens),
		spiritual.WithCacheTTLs(cfg.Cache.AudioTTL, cfg.Cache.DailyTTL),
		spiritual.WithDefaultVoice(cfg.Speech.DefaultVoice),
	)
	return nil
}

// Addr returns the listen address.
func (a *App) Addr() string { return fmt.Sprintf(":%d", a.cfg.Port) }

// Router returns the HTTP handler.
func (a *App) Router() http.Handler { return a.router }

// Scheduler exposes the background job scheduler.
func (a *App) Scheduler() *pkgcron.Scheduler { return a.sched }

// Shutdown stops background jobs and releases store connections.
func (a *App) Shutdown() {
	if a.cancel != nil {
		a.cancel()
	}
	if a.sched != nil {
		a.sched.Wait()
	}
	a.closeAll()
}

func (a *App) closeAll() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			a.logger.Warn("close resource failed", zap.Error(err))
		}
	}
	a.closers = nil
}

func needsRedis(cfg *config.AppConfig) bool {
	return cfg.RateLimit.Backend == config.BackendRedis || cfg.Cache.Backend == config.BackendRedis
}

func rateLimitRules(cfg *config.AppConfig) map[string]ratelimit.Rule {
	rules := make(map[string]ratelimit.Rule, len(cfg.RateLimit.Endpoints))
	for name, rule := range cfg.RateLimit.Endpoints {
		rules[name] = ratelimit.Rule{Window: rule.Window, Max: rule.Max}
	}
	return rules
}

func observeRateLimit(endpoint string, _ ratelimit.Subject, res ratelimit.Result) {
	switch {
	case res.FailOpen:
		metrics.RecordRateLimit(endpoint, metrics.RateLimitFailOpen)
	case res.Allowed:
		metrics.RecordRateLimit(endpoint, metrics.RateLimitAllowed)
	default:
		metrics.RecordRateLimit(endpoint, metrics.RateLimitRejected)
	}
}

func corsConfig(cfg *config.AppConfig) cors.Config {
	c := cors.Config{
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.HeaderRequestID},
		ExposeHeaders:    []string{"Content-Length", "Retry-After", middleware.HeaderRequestID, middleware.HeaderRateLimitLimit, middleware.HeaderRateLimitRemaining, middleware.HeaderRateLimitReset},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) > 0 && !cfg.IsDev() {
		patterns := cfg.AllowedOrigins
		c.AllowOriginFunc = func(origin string) bool {
			host := extractOriginHost(origin)
			for _, pattern := range patterns {
				if matchOriginPattern(pattern, host) {
					return true
				}
			}
			return false
		}
	} else {
		c.AllowOriginFunc = func(origin string) bool { return true }
	}
	return c
}
