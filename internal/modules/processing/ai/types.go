package ai

import (
	"context"
	"time"
)

// Kind selects the prompt family and the fallback pool.
type Kind string

const (
	KindPrayer   Kind = "prayer"
	KindGuidance Kind = "guidance"
	KindDaily    Kind = "daily"
)

// SourceFallback tags text that came from the static pool instead of a
// provider.
const SourceFallback = "fallback"

// Prompt is one generation request.
type Prompt struct {
	System    string
	User      string
	Kind      Kind
	Language  string
	MaxTokens int
}

// Provider turns a prompt into text or fails.
type Provider interface {
	ID() string
	Generate(ctx context.Context, prompt Prompt) (string, error)
}

// Outcome of a single provider attempt.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeFailure Outcome = "failure"
)

// Attempt records one provider call made while traversing the chain. Prompt
// and Text carry user content and must not be logged.
type Attempt struct {
	Provider string
	Prompt   Prompt
	Outcome  Outcome
	Text     string
	Err      error
	Latency  time.Duration
}

// Result is the outcome of a full traversal. Source is the id of the
// provider that produced Text, or SourceFallback.
type Result struct {
	Text     string
	Source   string
	Attempts []Attempt
}

// Fallback reports whether Text came from the static pool.
func (r Result) Fallback() bool { return r.Source == SourceFallback }
