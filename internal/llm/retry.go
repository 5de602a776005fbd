package llm

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"
)

// RetryProvider is a decorator that retries transient errors with
// exponential backoff and jitter.
type RetryProvider struct {
	inner  Provider
	config RetryConfig
}

// WithRetry wraps a Provider with retry logic.
func WithRetry(p Provider, cfg RetryConfig) Provider {
	return &RetryProvider{inner: p, config: cfg}
}

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	return retry(ctx, r.config, func() (*Response, error) {
		return r.inner.Generate(ctx, req)
	})
}

func (r *RetryProvider) ModelID() string {
	return r.inner.ModelID()
}

// RetryImageGenerator applies the same retry policy to image generation.
type RetryImageGenerator struct {
	inner  ImageGenerator
	config RetryConfig
}

// WithImageRetry wraps an ImageGenerator with retry logic.
func WithImageRetry(g ImageGenerator, cfg RetryConfig) ImageGenerator {
	return &RetryImageGenerator{inner: g, config: cfg}
}

func (r *RetryImageGenerator) GenerateImage(ctx context.Context, req ImageRequest) (*ImageResponse, error) {
	return retry(ctx, r.config, func() (*ImageResponse, error) {
		return r.inner.GenerateImage(ctx, req)
	})
}

func (r *RetryImageGenerator) ImageModelID() string {
	return r.inner.ImageModelID()
}

// RetrySearchGrounder applies the same retry policy to grounded search.
type RetrySearchGrounder struct {
	inner  SearchGrounder
	config RetryConfig
}

// WithSearchRetry wraps a SearchGrounder with retry logic.
func WithSearchRetry(s SearchGrounder, cfg RetryConfig) SearchGrounder {
	return &RetrySearchGrounder{inner: s, config: cfg}
}

func (r *RetrySearchGrounder) GenerateGrounded(ctx context.Context, req Request) (*GroundedResponse, error) {
	return retry(ctx, r.config, func() (*GroundedResponse, error) {
		return r.inner.GenerateGrounded(ctx, req)
	})
}

func (r *RetrySearchGrounder) SearchModelID() string {
	return r.inner.SearchModelID()
}

// retry runs call up to cfg.MaxAttempts times (at least once).
func retry[T any](ctx context.Context, cfg RetryConfig, call func() (T, error)) (T, error) {
	var zero T
	var lastErr error
	invalidRetried := false

	attempts := max(cfg.MaxAttempts, 1)
	for attempt := range attempts {
		resp, err := call()
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if !shouldRetry(err, &invalidRetried) {
			return zero, err
		}

		// Last attempt: don't sleep, just return the error.
		if attempt == attempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(backoff(cfg, attempt, err)):
		}
	}

	return zero, lastErr
}

// shouldRetry determines if an error is retryable.
func shouldRetry(err error, invalidRetried *bool) bool {
	// Context errors are never retried.
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	// The provider refused the request; the same request will be refused again.
	var rejected *ErrRejected
	if errors.As(err, &rejected) {
		return false
	}
	var unsupported *ErrCapabilityUnsupported
	if errors.As(err, &unsupported) {
		return false
	}

	// Invalid response gets one retry.
	var invResp *ErrInvalidResponse
	if errors.As(err, &invResp) {
		if *invalidRetried {
			return false
		}
		*invalidRetried = true
		return true
	}

	// Rate limits, outages and network errors are treated as transient.
	return true
}

// backoff computes the wait duration for the given attempt.
func backoff(cfg RetryConfig, attempt int, err error) time.Duration {
	// Respect RetryAfter for rate limits.
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}

	wait := float64(cfg.InitialWait) * math.Pow(cfg.Multiplier, float64(attempt))
	if wait > float64(cfg.MaxWait) {
		wait = float64(cfg.MaxWait)
	}

	// Add ±20% jitter.
	jitter := wait * 0.2 * (2*rand.Float64() - 1)
	wait += jitter

	if wait < 0 {
		wait = 0
	}
	return time.Duration(wait)
}
