package llm

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"
)

// RetryProvider retries rate limits and unavailable backends with
// exponential backoff and jitter. A response that fails schema validation
// is retried once. Anything else, such as a rejected request, fails
// immediately.
type RetryProvider struct {
	inner  Provider
	config RetryConfig
}

// WithRetry wraps p with retries.
func WithRetry(p Provider, cfg RetryConfig) Provider {
	return &RetryProvider{inner: p, config: cfg}
}

func (r *RetryProvider) ModelID() string { return r.inner.ModelID() }

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	attempts := max(r.config.MaxAttempts, 1)
	retriedInvalid := false

	var err error
	for attempt := 0; attempt < attempts; attempt++ {
		var resp *Response
		resp, err = r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}

		switch kind := retryKind(err); {
		case kind == retryNever:
			return nil, err
		case kind == retryOnce && retriedInvalid:
			return nil, err
		case kind == retryOnce:
			retriedInvalid = true
		}

		if attempt == attempts-1 {
			break
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		timer := time.NewTimer(r.wait(attempt, err))
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
	return nil, err
}

type retryPolicy int

const (
	retryNever retryPolicy = iota
	retryOnce
	retryBackoff
)

func retryKind(err error) retryPolicy {
	var (
		rateLimited *ErrRateLimit
		unavailable *ErrProviderUnavailable
		invalid     *ErrInvalidResponse
	)
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return retryNever
	case errors.As(err, &invalid):
		return retryOnce
	case errors.As(err, &rateLimited), errors.As(err, &unavailable):
		return retryBackoff
	default:
		return retryNever
	}
}

// wait is the pause before the next attempt: the server's Retry-After
// when given, otherwise InitialWait*Multiplier^attempt capped at MaxWait,
// with +/-20% jitter.
func (r *RetryProvider) wait(attempt int, err error) time.Duration {
	var rateLimited *ErrRateLimit
	if errors.As(err, &rateLimited) && rateLimited.RetryAfter > 0 {
		return rateLimited.RetryAfter
	}

	d := float64(r.config.InitialWait)
	for i := 0; i < attempt; i++ {
		d *= r.config.Multiplier
		if d >= float64(r.config.MaxWait) {
			break
		}
	}
	d = min(d, float64(r.config.MaxWait))
	d *= 0.8 + 0.4*rand.Float64()
	return time.Duration(max(d, 0))
}
