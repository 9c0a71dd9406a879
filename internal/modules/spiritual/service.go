// Package spiritual orchestrates prayer generation, the daily message,
// guidance chat and text-to-speech.
//
// Every request runs the same pipeline: rate limit, input moderation, cache
// lookup, provider chain, output moderation, scripture enrichment, cache
// write. Cache and store failures are logged and absorbed.
package spiritual

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gracepath/core/internal/modules/processing/ai"
	"github.com/gracepath/core/internal/modules/processing/moderation"
	"github.com/gracepath/core/internal/modules/processing/speech"
	"github.com/gracepath/core/internal/pkg/cache"
	"github.com/gracepath/core/internal/pkg/metrics"
	"github.com/gracepath/core/internal/pkg/ratelimit"
	"github.com/gracepath/core/internal/pkg/storage"
	"go.uber.org/zap"
)

// Rate limit endpoint names.
const (
	EndpointPrayer       = "prayer"
	EndpointGuidance     = "guidance"
	EndpointDailyMessage = "daily-message"
	EndpointSpeech       = "speech"
)

const (
	cacheNamespaceDaily  = "daily"
	cacheNamespaceSpeech = "tts"

	defaultMaxOutputTokens = 600
	defaultAudioTTL        = 24 * time.Hour
	defaultDailyTTL        = 48 * time.Hour
	// fallbackDailyTTL keeps a fallback daily message briefly so providers
	// get retried once they recover.
	fallbackDailyTTL = 10 * time.Minute

	maxGuidanceRunes    = 1000
	maxGuidanceHistory  = 6
	maxScriptureCount   = 10
	guidanceReferences  = 2
	dailyReferenceCount = 3
)

// Deps are the collaborators of the Service. Cache, Synthesizer and Storage
// may be nil.
type Deps struct {
	Limiter     *ratelimit.Limiter
	Moderator   *moderation.Moderator
	Chain       *ai.Chain
	Cache       cache.Store
	Synthesizer speech.Synthesizer
	Storage     storage.Storage
	Logger      *zap.Logger
}

// Service implements the spiritual content operations.
type Service struct {
	limiter   *ratelimit.Limiter
	moderator *moderation.Moderator
	chain     *ai.Chain
	cache     cache.Store
	synth     speech.Synthesizer
	storage   storage.Storage
	logger    *zap.Logger

	location     *time.Location
	now          func() time.Time
	maxTokens    int
	audioTTL     time.Duration
	dailyTTL     time.Duration
	defaultVoice string
}

// Option configures a Service.
type Option func(*Service)

// WithLocation sets the timezone that decides the calendar day.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.location = loc
		}
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithMaxOutputTokens bounds provider output.
func WithMaxOutputTokens(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxTokens = n
		}
	}
}

// WithCacheTTLs sets the audio and daily message TTLs. Zero keeps the default.
func WithCacheTTLs(audio, daily time.Duration) Option {
	return func(s *Service) {
		if audio > 0 {
			s.audioTTL = audio
		}
		if daily > 0 {
			s.dailyTTL = daily
		}
	}
}

// WithDefaultVoice sets the voice used when a request names none.
func WithDefaultVoice(voice string) Option {
	return func(s *Service) { s.defaultVoice = strings.ToLower(strings.TrimSpace(voice)) }
}

// NewService wires the Service.
func NewService(deps Deps, opts ...Option) *Service {
	s := &Service{
		limiter:   deps.Limiter,
		moderator: deps.Moderator,
		chain:     deps.Chain,
		cache:     deps.Cache,
		synth:     deps.Synthesizer,
		storage:   deps.Storage,
		logger:    deps.Logger,
		location:  time.UTC,
		now:       time.Now,
		maxTokens: defaultMaxOutputTokens,
		audioTTL:  defaultAudioTTL,
		dailyTTL:  defaultDailyTTL,
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.moderator == nil {
		s.moderator = moderation.New(nil, nil)
	}
	if s.chain == nil {
		s.chain = ai.NewChain(nil)
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SpeechAvailable reports whether server-side synthesis is configured.
func (s *Service) SpeechAvailable() bool {
	return s.synth != nil && s.storage != nil
}

// checkRate counts the request. A nil limiter allows everything. Decisions
// reach the metrics through the limiter's observer.
func (s *Service) checkRate(ctx context.Context, subject ratelimit.Subject, endpoint string) ratelimit.Result {
	if s.limiter == nil {
		return ratelimit.Result{Allowed: true}
	}
	return s.limiter.Check(ctx, subject, endpoint)
}

func (s *Service) moderateInput(endpoint string, texts ...string) *ModerationError {
	v := s.moderator.ModerateAll(texts...)
	if v.Appropriate {
		return nil
	}
	metrics.RecordModerationRejection(endpoint, v.Code)
	s.logger.Info("input rejected by moderation",
		zap.String("endpoint", endpoint),
		zap.String("code", v.Code),
	)
	return &ModerationError{Verdict: v}
}

// moderateOutput checks generated text. The text itself is never logged.
func (s *Service) moderateOutput(endpoint string, res ai.Result) bool {
	v := s.moderator.Moderate(res.Text)
	if v.Appropriate {
		return true
	}
	metrics.RecordModerationRejection(endpoint+"_output", v.Code)
	s.logger.Warn("generated content rejected by moderation",
		zap.String("endpoint", endpoint),
		zap.String("source", res.Source),
		zap.String("code", v.Code),
	)
	return false
}

func (s *Service) cacheGet(ctx context.Context, ns, key string) []byte {
	if s.cache == nil {
		return nil
	}
	entry, err := s.cache.Get(ctx, key)
	if err != nil {
		metrics.RecordCacheLookup(ns, metrics.CacheError)
		s.logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
		return nil
	}
	if entry == nil {
		metrics.RecordCacheLookup(ns, metrics.CacheMiss)
		return nil
	}
	metrics.RecordCacheLookup(ns, metrics.CacheHit)
	return entry.Payload
}

func (s *Service) cachePut(ctx context.Context, key string, payload []byte, ttl time.Duration) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Put(ctx, key, payload, ttl); err != nil {
		s.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *Service) today() time.Time {
	return s.now().In(s.location)
}

func (s *Service) recordFallback(kind ai.Kind, res ai.Result) {
	if res.Fallback() {
		metrics.RecordFallback(string(kind))
	}
}

func truncateRunes(text string, max int) string {
	if utf8.RuneCountInString(text) <= max {
		return text
	}
	runes := []rune(text)
	return string(runes[:max])
}
