package spiritual

import (
	"errors"
	"fmt"

	"github.com/gracepath/core/internal/modules/processing/moderation"
	"github.com/gracepath/core/internal/pkg/ratelimit"
)

// FallbackBrowserSpeech tells clients to synthesize speech locally.
const FallbackBrowserSpeech = "browser-speech-synthesis"

var (
	ErrUnauthenticated   = errors.New("authentication required")
	ErrMissingIntention  = errors.New("intention is required")
	ErrEmptyText         = errors.New("text is required")
	ErrTextTooLong       = errors.New("text is too long")
	ErrOutputRejected    = errors.New("generated content did not meet our guidelines, please try again")
	ErrSpeechUnavailable = errors.New("speech synthesis is not available")
	ErrSpeechFailed      = errors.New("speech synthesis failed, please try again")
)

// RateLimitError is returned when the subject spent its quota.
type RateLimitError struct {
	Endpoint string
	Result   ratelimit.Result
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limit exceeded for %s", e.Endpoint)
}

// ModerationError is returned when user input fails moderation.
type ModerationError struct {
	Verdict moderation.Verdict
}

func (e *ModerationError) Error() string {
	return "content not appropriate: " + e.Verdict.Reason
}
