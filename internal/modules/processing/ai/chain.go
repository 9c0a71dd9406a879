// Package ai generates spiritual content through an ordered list of text
// providers, ending in a static fallback pool when all of them fail.
package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

const defaultAttemptTimeout = 20 * time.Second

// chainState is the traversal state. Generate always ends in stateSuccess
// or stateExhausted.
type chainState int

const (
	stateTrying chainState = iota
	stateSuccess
	stateExhausted
)

// Observer receives every attempt once it completes.
type Observer func(Attempt)

// Chain tries providers in order and never fails.
type Chain struct {
	providers []Provider
	timeout   time.Duration
	pool      *FallbackPool
	observers []Observer
	logger    *zap.Logger
	now       func() time.Time
}

// ChainOption configures a Chain.
type ChainOption func(*Chain)

// WithAttemptTimeout bounds each provider call.
func WithAttemptTimeout(d time.Duration) ChainOption {
	return func(c *Chain) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithFallbackPool replaces the built-in fallback messages.
func WithFallbackPool(pool *FallbackPool) ChainOption {
	return func(c *Chain) { c.pool = pool }
}

// WithObserver adds an attempt observer.
func WithObserver(o Observer) ChainOption {
	return func(c *Chain) { c.observers = append(c.observers, o) }
}

// WithLogger sets the chain logger.
func WithLogger(logger *zap.Logger) ChainOption {
	return func(c *Chain) { c.logger = logger }
}

// WithChainClock overrides time.Now for latency measurement.
func WithChainClock(now func() time.Time) ChainOption {
	return func(c *Chain) { c.now = now }
}

// NewChain creates a Chain over providers, tried in the given order.
func NewChain(providers []Provider, opts ...ChainOption) *Chain {
	c := &Chain{
		providers: append([]Provider(nil), providers...),
		timeout:   defaultAttemptTimeout,
		pool:      DefaultFallbackPool(),
		logger:    zap.NewNop(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	return c
}

// ProviderIDs lists the providers in traversal order.
func (c *Chain) ProviderIDs() []string {
	ids := make([]string, len(c.providers))
	for i, p := range c.providers {
		ids[i] = p.ID()
	}
	return ids
}

// FallbackText returns the pool message Generate would use for prompt once
// every provider failed.
func (c *Chain) FallbackText(prompt Prompt) string {
	return c.pool.Pick(prompt)
}

// Generate returns the first provider success, or a fallback message once
// every provider failed. Each provider is called at most once.
func (c *Chain) Generate(ctx context.Context, prompt Prompt) Result {
	var (
		res   Result
		state = stateTrying
		next  = 0
	)
	for {
		switch state {
		case stateTrying:
			if next >= len(c.providers) {
				state = stateExhausted
				continue
			}
			attempt := c.attempt(ctx, c.providers[next], prompt)
			next++
			res.Attempts = append(res.Attempts, attempt)
			c.observe(attempt)
			if attempt.Outcome == OutcomeSuccess {
				res.Text = attempt.Text
				res.Source = attempt.Provider
				state = stateSuccess
			}

		case stateSuccess:
			return res

		case stateExhausted:
			res.Text = c.FallbackText(prompt)
			res.Source = SourceFallback
			c.logger.Warn("all AI providers failed, using fallback message",
				zap.String("kind", string(prompt.Kind)),
				zap.Int("attempts", len(res.Attempts)),
			)
			return res
		}
	}
}

func (c *Chain) attempt(ctx context.Context, p Provider, prompt Prompt) (a Attempt) {
	a = Attempt{Provider: p.ID(), Prompt: prompt, Outcome: OutcomeFailure}
	start := c.now()

	attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	defer func() {
		if r := recover(); r != nil {
			a.Err = fmt.Errorf("provider panic: %v", r)
			a.Outcome = OutcomeFailure
			a.Text = ""
		}
		a.Latency = c.now().Sub(start)
		if a.Outcome == OutcomeFailure {
			c.logger.Warn("AI provider attempt failed",
				zap.String("provider", a.Provider),
				zap.String("kind", string(prompt.Kind)),
				zap.Duration("latency", a.Latency),
				zap.Error(a.Err),
			)
		}
	}()

	text, err := p.Generate(attemptCtx, prompt)
	switch {
	case err != nil:
		a.Err = err
	case strings.TrimSpace(text) == "":
		a.Err = ErrEmptyResponse
	default:
		a.Text = strings.TrimSpace(text)
		a.Outcome = OutcomeSuccess
	}
	return a
}

func (c *Chain) observe(a Attempt) {
	for _, o := range c.observers {
		o(a)
	}
}
