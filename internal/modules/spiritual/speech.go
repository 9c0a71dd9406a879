package spiritual

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/gracepath/core/internal/modules/processing/scripture"
	"github.com/gracepath/core/internal/modules/processing/speech"
	"github.com/gracepath/core/internal/pkg/cache"
	"github.com/gracepath/core/internal/pkg/ratelimit"
	"go.uber.org/zap"
)

const audioKeyPrefix = "audio/"

// Speak synthesizes text to audio, stores it and returns its URL. Identical
// requests reuse the stored audio until the cache entry expires.
func (s *Service) Speak(ctx context.Context, subject ratelimit.Subject, req SpeechRequest) (*SpeechResponse, error) {
	if subject.Anonymous || subject.ID == "" {
		return nil, ErrUnauthenticated
	}

	rl := s.checkRate(ctx, subject, EndpointSpeech)
	if !rl.Allowed {
		return nil, &RateLimitError{Endpoint: EndpointSpeech, Result: rl}
	}
	if !s.SpeechAvailable() {
		return nil, ErrSpeechUnavailable
	}

	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, ErrEmptyText
	}
	if utf8.RuneCountInString(text) > speech.MaxTextRunes {
		return nil, ErrTextTooLong
	}
	if merr := s.moderateInput(EndpointSpeech, text); merr != nil {
		return nil, merr
	}

	lang := scripture.NormalizeLanguage(req.Language)
	voice := speech.ResolveVoice(req.Voice, lang, s.defaultVoice)
	speed := speech.ClampSpeed(req.Speed)
	key := cache.Key(cacheNamespaceSpeech, map[string]string{
		"text":       text,
		"language":   lang,
		"voice":      voice,
		"speed":      strconv.FormatFloat(speed, 'f', 2, 64),
		"prayerType": strings.ToLower(strings.TrimSpace(req.PrayerType)),
		"engine":     s.synth.Name(),
	})

	if payload := s.cacheGet(ctx, cacheNamespaceSpeech, key); payload != nil {
		var cached cachedAudio
		err := json.Unmarshal(payload, &cached)
		if err == nil && cached.AudioURL != "" {
			return &SpeechResponse{AudioURL: cached.AudioURL, Duration: cached.Duration, Cached: true, RateLimit: rl}, nil
		}
		s.logger.Warn("discarding corrupt speech cache entry", zap.String("key", key), zap.Error(err))
	}

	audio, err := s.synth.Synthesize(ctx, speech.Request{Text: text, Voice: voice, Speed: speed, Language: lang})
	if err != nil {
		s.logger.Warn("speech synthesis failed", zap.String("engine", s.synth.Name()), zap.Error(err))
		return nil, ErrSpeechFailed
	}

	objectKey := audioKeyPrefix + strings.TrimPrefix(key, cacheNamespaceSpeech+":") + ".mp3"
	url, err := s.storage.Put(ctx, objectKey, audio, s.synth.ContentType())
	if err != nil {
		s.logger.Error("storing synthesized audio failed", zap.String("key", objectKey), zap.Error(err))
		return nil, ErrSpeechFailed
	}

	out := cachedAudio{AudioURL: url, Duration: speech.EstimateDuration(text, speed)}
	if payload, err := json.Marshal(out); err == nil {
		s.cachePut(ctx, key, payload, s.audioTTL)
	}
	return &SpeechResponse{AudioURL: out.AudioURL, Duration: out.Duration, RateLimit: rl}, nil
}

// LookupScripture resolves a theme without generating anything. An empty
// season means the season of today.
func (s *Service) LookupScripture(theme, language, seasonName string, count int) *ScriptureResponse {
	if count > maxScriptureCount {
		count = maxScriptureCount
	}
	season, ok := scripture.ParseSeason(seasonName)
	if !ok {
		season = scripture.SeasonFor(s.today())
	}
	lang := scripture.NormalizeLanguage(language)
	return &ScriptureResponse{
		Theme:            strings.TrimSpace(theme),
		References:       scripture.Resolve(theme, season, lang, count),
		LiturgicalSeason: season.Label(lang),
	}
}
