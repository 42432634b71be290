package driven

import (
	"context"
	"time"
)

// RateLimiter throttles outbound calls to a fixed rate.
type RateLimiter interface {
	// WaitN blocks until n units are available or ctx is done.
	// It never rejects a request while ctx is live.
	WaitN(ctx context.Context, n int) error
}

// BackoffRecorder is implemented by limiters that can pause after the
// destination reports a rate limit violation.
type BackoffRecorder interface {
	// RecordRateLimitError pauses acquisition for the given duration.
	// A non-positive duration selects the implementation default.
	RecordRateLimitError(retryAfter time.Duration)
}
