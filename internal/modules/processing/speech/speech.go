// Package speech synthesizes audio for generated text.
package speech

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	appcfg "github.com/gracepath/core/internal/config"
	openaiclient "github.com/openai/openai-go/v2"
	openaioption "github.com/openai/openai-go/v2/option"
)

const (
	ContentTypeMP3 = "audio/mpeg"

	MinSpeed     = 0.25
	MaxSpeed     = 4.0
	DefaultSpeed = 1.0

	// MaxTextRunes is the input limit of the speech endpoint.
	MaxTextRunes = 4096

	wordsPerMinute = 150
)

var ErrEmptyText = errors.New("speech text is empty")

// Request is one synthesis call.
type Request struct {
	Text     string
	Voice    string
	Speed    float64
	Language string
}

// Synthesizer turns text into audio bytes.
type Synthesizer interface {
	Name() string
	ContentType() string
	Synthesize(ctx context.Context, req Request) ([]byte, error)
}

var supportedVoices = map[string]struct{}{
	"alloy": {}, "ash": {}, "ballad": {}, "coral": {}, "echo": {}, "fable": {},
	"nova": {}, "onyx": {}, "sage": {}, "shimmer": {}, "verse": {},
}

var languageVoices = map[string]string{
	"en": "nova",
	"es": "shimmer",
}

// New builds the configured synthesizer. It returns nil when synthesis is
// disabled.
func New(cfg appcfg.SpeechConfig) (Synthesizer, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "":
		return nil, nil
	case "openai":
		return NewOpenAI(cfg)
	default:
		return nil, fmt.Errorf("unsupported speech provider %q", cfg.Provider)
	}
}

// OpenAI synthesizes mp3 audio through the OpenAI speech endpoint.
type OpenAI struct {
	client       openaiclient.Client
	model        string
	defaultVoice string
	timeout      time.Duration
}

// NewOpenAI creates an OpenAI synthesizer.
func NewOpenAI(cfg appcfg.SpeechConfig) (*OpenAI, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errors.New("speech api key is empty")
	}
	opts := []openaioption.RequestOption{
		openaioption.WithAPIKey(apiKey),
		openaioption.WithMaxRetries(0),
	}
	if endpoint := strings.TrimRight(strings.TrimSpace(cfg.Endpoint), "/"); endpoint != "" {
		if !strings.HasSuffix(endpoint, "/v1") {
			endpoint += "/v1"
		}
		opts = append(opts, openaioption.WithBaseURL(endpoint))
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = "tts-1"
	}
	return &OpenAI{
		client:       openaiclient.NewClient(opts...),
		model:        model,
		defaultVoice: strings.ToLower(strings.TrimSpace(cfg.DefaultVoice)),
		timeout:      cfg.Timeout,
	}, nil
}

func (s *OpenAI) Name() string        { return "openai" }
func (s *OpenAI) ContentType() string { return ContentTypeMP3 }

// Synthesize implements Synthesizer.
func (s *OpenAI) Synthesize(ctx context.Context, req Request) ([]byte, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, ErrEmptyText
	}
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	resp, err := s.client.Audio.Speech.New(ctx, openaiclient.AudioSpeechNewParams{
		Input:          truncateRunes(text, MaxTextRunes),
		Model:          openaiclient.SpeechModel(s.model),
		Voice:          openaiclient.AudioSpeechNewParamsVoice(ResolveVoice(req.Voice, req.Language, s.defaultVoice)),
		Speed:          openaiclient.Float(ClampSpeed(req.Speed)),
		ResponseFormat: openaiclient.AudioSpeechNewParamsResponseFormatMP3,
	})
	if err != nil {
		return nil, fmt.Errorf("openai speech: %w", err)
	}
	defer resp.Body.Close()

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read speech audio: %w", err)
	}
	if len(audio) == 0 {
		return nil, errors.New("openai speech: empty audio")
	}
	return audio, nil
}

// ResolveVoice returns voice when it is supported, otherwise the configured
// default, otherwise the voice for language.
func ResolveVoice(voice, language, configured string) string {
	v := strings.ToLower(strings.TrimSpace(voice))
	if _, ok := supportedVoices[v]; ok {
		return v
	}
	if _, ok := supportedVoices[configured]; ok {
		return configured
	}
	lang := strings.ToLower(strings.TrimSpace(language))
	if len(lang) > 2 {
		lang = lang[:2]
	}
	if v, ok := languageVoices[lang]; ok {
		return v
	}
	return languageVoices["en"]
}

// ClampSpeed keeps speed inside the supported range. Zero means default.
func ClampSpeed(speed float64) float64 {
	switch {
	case speed == 0 || math.IsNaN(speed):
		return DefaultSpeed
	case speed < MinSpeed:
		return MinSpeed
	case speed > MaxSpeed:
		return MaxSpeed
	}
	return speed
}

// EstimateDuration estimates the spoken length of text in seconds, rounded
// to one decimal.
func EstimateDuration(text string, speed float64) float64 {
	words := len(strings.Fields(text))
	if words == 0 {
		return 0
	}
	seconds := float64(words) / wordsPerMinute * 60 / ClampSpeed(speed)
	return math.Round(seconds*10) / 10
}

func truncateRunes(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max])
}
