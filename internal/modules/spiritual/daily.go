package spiritual

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gracepath/core/internal/modules/processing/ai"
	"github.com/gracepath/core/internal/modules/processing/markdown"
	"github.com/gracepath/core/internal/modules/processing/scripture"
	"github.com/gracepath/core/internal/pkg/cache"
	"github.com/gracepath/core/internal/pkg/ratelimit"
	"go.uber.org/zap"
)

// DailyMessage returns the reflection of the current calendar day. Everyone
// asking in the same language on the same day gets the same message.
func (s *Service) DailyMessage(ctx context.Context, subject ratelimit.Subject, language string) (*DailyMessageResponse, error) {
	rl := s.checkRate(ctx, subject, EndpointDailyMessage)
	if !rl.Allowed {
		return nil, &RateLimitError{Endpoint: EndpointDailyMessage, Result: rl}
	}

	day := s.today()
	lang := scripture.NormalizeLanguage(language)
	key := cache.DailyKey(cacheNamespaceDaily, day, lang)

	if payload := s.cacheGet(ctx, cacheNamespaceDaily, key); payload != nil {
		var cached DailyMessageResponse
		err := json.Unmarshal(payload, &cached)
		if err == nil {
			cached.Cached = true
			cached.RateLimit = rl
			return &cached, nil
		}
		s.logger.Warn("discarding corrupt daily message cache entry", zap.String("key", key), zap.Error(err))
	}

	season := scripture.SeasonFor(day)
	theme := ThemeOfDay(day)
	prompt := ai.BuildDailyPrompt(ai.DailyInput{
		Date:     day,
		Season:   season.Label(scripture.LangEnglish),
		Theme:    theme,
		Language: lang,
	}, s.maxTokens)
	res := s.chain.Generate(ctx, prompt)
	s.recordFallback(ai.KindDaily, res)
	if !s.moderateOutput(EndpointDailyMessage, res) {
		return nil, ErrOutputRejected
	}

	out := &DailyMessageResponse{
		Message:             res.Text,
		HTML:                markdown.Render(res.Text),
		ScriptureReferences: scripture.Resolve(theme, season, lang, dailyReferenceCount),
		LiturgicalSeason:    season.Label(lang),
		Theme:               theme,
		Date:                day.Format(time.DateOnly),
		Source:              res.Source,
	}
	if payload, err := json.Marshal(out); err == nil {
		ttl := s.dailyTTL
		if res.Fallback() {
			ttl = fallbackDailyTTL
		}
		s.cachePut(ctx, key, payload, ttl)
	}
	out.RateLimit = rl
	return out, nil
}

// ThemeOfDay rotates through the scripture themes by day of year.
func ThemeOfDay(day time.Time) string {
	themes := scripture.Themes()
	if len(themes) == 0 {
		return ""
	}
	return themes[(day.YearDay()-1)%len(themes)]
}
