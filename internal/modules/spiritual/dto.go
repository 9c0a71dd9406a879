package spiritual

import (
	"time"

	"github.com/gracepath/core/internal/modules/processing/scripture"
	"github.com/gracepath/core/internal/pkg/ratelimit"
)

type PrayerRequest struct {
	Intention        string   `json:"intention"`
	PrayerType       string   `json:"prayerType"`
	SpiritualNeeds   []string `json:"spiritualNeeds"`
	SaintDevotion    string   `json:"saintDevotion,omitempty"`
	LifeCircumstance string   `json:"lifeCircumstance,omitempty"`
	Language         string   `json:"language"`
}

type PrayerResponse struct {
	Prayer              string                `json:"prayer"`
	PrayerHTML          string                `json:"prayerHtml"`
	ScriptureReferences []scripture.Reference `json:"scriptureReferences"`
	LiturgicalSeason    string                `json:"liturgicalSeason"`
	Source              string                `json:"source"`
	Timestamp           time.Time             `json:"timestamp"`

	RateLimit ratelimit.Result `json:"-"`
}

type DailyMessageResponse struct {
	Message             string                `json:"message"`
	HTML                string                `json:"html"`
	ScriptureReferences []scripture.Reference `json:"scriptureReferences"`
	LiturgicalSeason    string                `json:"liturgicalSeason"`
	Theme               string                `json:"theme"`
	Date                string                `json:"date"`
	Source              string                `json:"source"`
	Cached              bool                  `json:"cached"`

	RateLimit ratelimit.Result `json:"-"`
}

// ChatTurn is one earlier message of a guidance conversation.
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type GuidanceRequest struct {
	Message  string     `json:"message"`
	History  []ChatTurn `json:"history"`
	Language string     `json:"language"`
}

type GuidanceResponse struct {
	Response            string                `json:"response"`
	ScriptureReferences []scripture.Reference `json:"scriptureReferences"`
	Source              string                `json:"source"`

	RateLimit ratelimit.Result `json:"-"`
}

type SpeechRequest struct {
	Text       string  `json:"text"`
	Language   string  `json:"language"`
	Voice      string  `json:"voice"`
	Speed      float64 `json:"speed"`
	PrayerType string  `json:"prayerType"`
}

type SpeechResponse struct {
	AudioURL string  `json:"audioUrl"`
	Duration float64 `json:"duration"`
	Cached   bool    `json:"cached"`

	RateLimit ratelimit.Result `json:"-"`
}

type ScriptureResponse struct {
	Theme            string                `json:"theme"`
	References       []scripture.Reference `json:"references"`
	LiturgicalSeason string                `json:"liturgicalSeason"`
}

// cachedAudio is the cache payload of a synthesized speech request.
type cachedAudio struct {
	AudioURL string  `json:"audioUrl"`
	Duration float64 `json:"duration"`
}
