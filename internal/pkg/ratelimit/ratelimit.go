// Package ratelimit implements fixed-window request quotas per
// (subject, endpoint) pair.
//
// Counters are kept in a Store. The in-process MemoryStore suits a single
// instance; RedisStore shares windows between instances through INCR. Both
// accept bursts at window boundaries: up to 2*max requests can pass across
// two adjacent windows.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// anonymousDivisor reduces the quota of subjects identified only by their
// network address.
const anonymousDivisor = 4

// Rule is the quota for one endpoint.
type Rule struct {
	Window time.Duration
	Max    int
}

// Subject identifies who is being limited.
type Subject struct {
	ID        string
	Anonymous bool
}

// AnonymousSubject builds the degraded subject used when no user id is known.
func AnonymousSubject(clientIP string) Subject {
	return Subject{ID: "ip:" + clientIP, Anonymous: true}
}

// UserSubject builds the subject for an authenticated user.
func UserSubject(userID string) Subject {
	return Subject{ID: "user:" + userID}
}

// Window is the counter state of one (subject, endpoint) pair.
type Window struct {
	Subject  string
	Endpoint string
	Count    int64
	Start    time.Time
	Length   time.Duration
}

// End returns the last instant still inside the window.
func (w Window) End() time.Time { return w.Start.Add(w.Length) }

// Store performs an atomic check-and-increment of a window counter.
//
// Increment returns the window after the increment. A new window starting at
// now with count 1 must be opened when now is after the current window's end.
type Store interface {
	Increment(ctx context.Context, subject, endpoint string, length time.Duration, now time.Time) (Window, error)
}

// Result is the outcome of a Check.
type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
	// FailOpen is set when the store failed and the request was let through.
	FailOpen bool
}

// RetryAfter returns how long a rejected caller should wait.
func (r Result) RetryAfter(now time.Time) time.Duration {
	if r.Allowed {
		return 0
	}
	d := r.ResetAt.Sub(now)
	if d < time.Second {
		return time.Second
	}
	return d.Round(time.Second)
}

// Observer receives every decision. Used for metrics.
type Observer func(endpoint string, subject Subject, res Result)

// Limiter applies per-endpoint rules on top of a Store.
type Limiter struct {
	store       Store
	rules       map[string]Rule
	defaultRule Rule
	failClosed  bool
	logger      *zap.Logger
	now         func() time.Time
	observer    Observer
}

// Option configures a Limiter.
type Option func(*Limiter)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) { l.now = now }
}

// WithFailClosed denies requests when the store is unavailable.
func WithFailClosed(failClosed bool) Option {
	return func(l *Limiter) { l.failClosed = failClosed }
}

// WithObserver registers a decision observer.
func WithObserver(o Observer) Option {
	return func(l *Limiter) { l.observer = o }
}

// New creates a Limiter. rules must contain a "default" entry or every
// unknown endpoint is allowed through unlimited.
func New(store Store, rules map[string]Rule, logger *zap.Logger, opts ...Option) *Limiter {
	if logger == nil {
		logger = zap.NewNop()
	}
	l := &Limiter{
		store:  store,
		rules:  make(map[string]Rule, len(rules)),
		logger: logger,
		now:    time.Now,
	}
	for name, rule := range rules {
		l.rules[name] = rule
	}
	l.defaultRule = rules["default"]
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Rule returns the effective rule for endpoint and subject.
func (l *Limiter) Rule(endpoint string, subject Subject) Rule {
	rule, ok := l.rules[endpoint]
	if !ok {
		rule = l.defaultRule
	}
	if subject.Anonymous && rule.Max > 0 {
		rule.Max /= anonymousDivisor
		if rule.Max < 1 {
			rule.Max = 1
		}
	}
	return rule
}

// Check counts one request for subject on endpoint and reports whether it
// fits in the current window.
func (l *Limiter) Check(ctx context.Context, subject Subject, endpoint string) Result {
	now := l.now()
	rule := l.Rule(endpoint, subject)
	if rule.Max <= 0 || rule.Window <= 0 {
		return Result{Allowed: true, ResetAt: now}
	}

	window, err := l.store.Increment(ctx, subject.ID, endpoint, rule.Window, now)
	if err != nil {
		res := l.storeFailure(endpoint, subject, rule, now, err)
		l.observe(endpoint, subject, res)
		return res
	}

	remaining := int64(rule.Max) - window.Count
	if remaining < 0 {
		remaining = 0
	}
	res := Result{
		Allowed:   window.Count <= int64(rule.Max),
		Limit:     rule.Max,
		Remaining: int(remaining),
		ResetAt:   window.End(),
	}
	if !res.Allowed {
		l.logger.Info("rate limit exceeded",
			zap.String("endpoint", endpoint),
			zap.String("subject", subject.ID),
			zap.Int64("count", window.Count),
			zap.Int("limit", rule.Max),
		)
	}
	l.observe(endpoint, subject, res)
	return res
}

func (l *Limiter) storeFailure(endpoint string, subject Subject, rule Rule, now time.Time, err error) Result {
	if l.failClosed {
		l.logger.Error("rate limit store unavailable, denying request",
			zap.String("endpoint", endpoint),
			zap.String("subject", subject.ID),
			zap.Error(err),
		)
		return Result{Allowed: false, Limit: rule.Max, ResetAt: now.Add(rule.Window)}
	}
	// Failing open lets every request through while the store is down.
	l.logger.Warn("rate limit store unavailable, failing open",
		zap.String("endpoint", endpoint),
		zap.String("subject", subject.ID),
		zap.Error(err),
	)
	return Result{
		Allowed:   true,
		Limit:     rule.Max,
		Remaining: rule.Max,
		ResetAt:   now.Add(rule.Window),
		FailOpen:  true,
	}
}

func (l *Limiter) observe(endpoint string, subject Subject, res Result) {
	if l.observer != nil {
		l.observer(endpoint, subject, res)
	}
}

func storeKey(subject, endpoint string) string {
	return fmt.Sprintf("%s|%s", endpoint, subject)
}
