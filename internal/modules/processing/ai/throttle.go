package ai

import (
	"context"
	"errors"
	"time"

	"golang.org/x/time/rate"
)

// ErrThrottled is returned when a provider's local request budget is spent.
var ErrThrottled = errors.New("AI provider throttled")

// throttledProvider rejects calls above a token-bucket budget without
// contacting the upstream, so the chain moves to the next provider.
type throttledProvider struct {
	Provider
	limiter *rate.Limiter
}

// Throttle wraps p with a budget of perMinute calls. A non-positive budget
// returns p unchanged.
func Throttle(p Provider, perMinute int) Provider {
	if perMinute <= 0 {
		return p
	}
	burst := perMinute / 10
	if burst < 1 {
		burst = 1
	}
	return &throttledProvider{
		Provider: p,
		limiter:  rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), burst),
	}
}

func (p *throttledProvider) Generate(ctx context.Context, prompt Prompt) (string, error) {
	if !p.limiter.Allow() {
		return "", ErrThrottled
	}
	return p.Provider.Generate(ctx, prompt)
}
