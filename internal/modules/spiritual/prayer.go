package spiritual

import (
	"context"
	"strings"

	"github.com/gracepath/core/internal/modules/processing/ai"
	"github.com/gracepath/core/internal/modules/processing/markdown"
	"github.com/gracepath/core/internal/modules/processing/scripture"
	"github.com/gracepath/core/internal/pkg/ratelimit"
)

// GeneratePrayer writes a personal prayer. Prayers are never cached.
func (s *Service) GeneratePrayer(ctx context.Context, subject ratelimit.Subject, req PrayerRequest) (*PrayerResponse, error) {
	if subject.Anonymous || subject.ID == "" {
		return nil, ErrUnauthenticated
	}

	rl := s.checkRate(ctx, subject, EndpointPrayer)
	if !rl.Allowed {
		return nil, &RateLimitError{Endpoint: EndpointPrayer, Result: rl}
	}

	intention := strings.TrimSpace(req.Intention)
	if intention == "" {
		return nil, ErrMissingIntention
	}
	inputs := append([]string{intention, req.SaintDevotion, req.LifeCircumstance}, req.SpiritualNeeds...)
	if merr := s.moderateInput(EndpointPrayer, inputs...); merr != nil {
		return nil, merr
	}

	now := s.today()
	lang := scripture.NormalizeLanguage(req.Language)
	season := scripture.SeasonFor(now)

	prompt := ai.BuildPrayerPrompt(ai.PrayerInput{
		Intention:        intention,
		PrayerType:       req.PrayerType,
		SpiritualNeeds:   req.SpiritualNeeds,
		SaintDevotion:    req.SaintDevotion,
		LifeCircumstance: req.LifeCircumstance,
		Season:           season.Label(scripture.LangEnglish),
		Language:         lang,
	}, s.maxTokens)
	res := s.chain.Generate(ctx, prompt)
	s.recordFallback(ai.KindPrayer, res)
	if !s.moderateOutput(EndpointPrayer, res) {
		return nil, ErrOutputRejected
	}

	theme := strings.Join(append([]string{intention, req.PrayerType}, req.SpiritualNeeds...), " ")
	return &PrayerResponse{
		Prayer:              res.Text,
		PrayerHTML:          markdown.Render(res.Text),
		ScriptureReferences: scripture.Resolve(theme, season, lang, scripture.DefaultCount),
		LiturgicalSeason:    season.Label(lang),
		Source:              res.Source,
		Timestamp:           s.now().UTC(),
		RateLimit:           rl,
	}, nil
}
