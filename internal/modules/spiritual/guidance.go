package spiritual

import (
	"context"
	"strings"

	"github.com/gracepath/core/internal/modules/processing/ai"
	"github.com/gracepath/core/internal/modules/processing/scripture"
	"github.com/gracepath/core/internal/pkg/ratelimit"
)

// Sources of guidance replies that did not come from a provider.
const (
	SourceRateLimited = "rate_limited"
	SourceModerated   = "moderated"
	SourcePrompt      = "prompt"
)

var gentleReplies = map[string]map[string]string{
	SourceRateLimited: {
		scripture.LangEnglish: "Let's pause for a moment. Take a slow breath and rest in God's presence; I'll be here to continue our conversation in a minute.",
		scripture.LangSpanish: "Hagamos una pausa. Respira despacio y descansa en la presencia de Dios; en un minuto seguimos conversando.",
	},
	SourceModerated: {
		scripture.LangEnglish: "I'm not able to talk about that here, but I'm still with you. If you're in danger, please reach out to local emergency services or someone you trust. Would you like to share what's weighing on your heart?",
		scripture.LangSpanish: "No puedo hablar de eso aquí, pero sigo contigo. Si estás en peligro, busca a los servicios de emergencia o a alguien de confianza. ¿Quieres contarme qué pesa en tu corazón?",
	},
	SourcePrompt: {
		scripture.LangEnglish: "I'm here to listen. What's on your heart today?",
		scripture.LangSpanish: "Estoy aquí para escucharte. ¿Qué hay en tu corazón hoy?",
	},
}

// Guide answers a guidance chat message. It never fails: rate limits,
// invalid input and rejected output are answered with a gentle in-character
// message instead.
func (s *Service) Guide(ctx context.Context, subject ratelimit.Subject, req GuidanceRequest) *GuidanceResponse {
	lang := scripture.NormalizeLanguage(req.Language)

	rl := s.checkRate(ctx, subject, EndpointGuidance)
	if !rl.Allowed {
		return s.gentle(SourceRateLimited, lang, rl)
	}

	message := truncateRunes(strings.TrimSpace(req.Message), maxGuidanceRunes)
	if message == "" {
		return s.gentle(SourcePrompt, lang, rl)
	}
	history := capHistory(req.History)

	// History is client-supplied whatever its role, so every turn is checked.
	texts := []string{message}
	for _, turn := range history {
		texts = append(texts, turn.Content)
	}
	if merr := s.moderateInput(EndpointGuidance, texts...); merr != nil {
		return s.gentle(SourceModerated, lang, rl)
	}

	season := scripture.SeasonFor(s.today())
	prompt := ai.BuildGuidancePrompt(ai.GuidanceInput{
		Message:  message,
		History:  history,
		Season:   season.Label(scripture.LangEnglish),
		Language: lang,
	}, s.maxTokens)
	res := s.chain.Generate(ctx, prompt)
	s.recordFallback(ai.KindGuidance, res)
	if !s.moderateOutput(EndpointGuidance, res) {
		res = ai.Result{Text: s.chain.FallbackText(prompt), Source: ai.SourceFallback}
	}

	return &GuidanceResponse{
		Response:            res.Text,
		ScriptureReferences: scripture.Resolve(message, season, lang, guidanceReferences),
		Source:              res.Source,
		RateLimit:           rl,
	}
}

func (s *Service) gentle(source, lang string, rl ratelimit.Result) *GuidanceResponse {
	return &GuidanceResponse{
		Response:            gentleReplies[source][lang],
		ScriptureReferences: scripture.Resolve("peace", scripture.SeasonFor(s.today()), lang, 1),
		Source:              source,
		RateLimit:           rl,
	}
}

// capHistory keeps the last turns with content, normalizing roles.
func capHistory(turns []ChatTurn) []ai.Turn {
	out := make([]ai.Turn, 0, len(turns))
	for _, t := range turns {
		content := strings.TrimSpace(t.Content)
		if content == "" {
			continue
		}
		role := "user"
		if strings.EqualFold(strings.TrimSpace(t.Role), "assistant") {
			role = "assistant"
		}
		out = append(out, ai.Turn{Role: role, Content: content})
	}
	if len(out) > maxGuidanceHistory {
		out = out[len(out)-maxGuidanceHistory:]
	}
	return out
}
