package llm

import (
	"context"
	"errors"
	"time"

	"github.com/chainguard-dev/clog"

	"github.com/sevigo/pr-warden/internal/config"
	"github.com/sevigo/pr-warden/internal/core"
)

// RetryPolicy is a bounded fixed-interval retry. There is no backoff and no
// jitter: one call per CI run does not need either.
type RetryPolicy struct {
	MaxAttempts int
	Delay       time.Duration
}

// DefaultRetryPolicy makes three attempts two seconds apart.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 3, Delay: 2 * time.Second}
}

// NewRetryPolicy builds the policy from configuration.
func NewRetryPolicy(cfg *config.LLMConfig) RetryPolicy {
	return RetryPolicy{MaxAttempts: cfg.MaxAttempts, Delay: cfg.RetryDelay}
}

// Do calls fn until it succeeds, the attempts are used up or ctx is done.
// It returns the number of attempts made and the last error.
// Configuration errors are returned immediately.
func (p RetryPolicy) Do(ctx context.Context, operation string, fn func(context.Context) error) (int, error) {
	maxAttempts := max(p.MaxAttempts, 1)

	var lastErr error
	for attempt := 1; ; attempt++ {
		lastErr = fn(ctx)
		if lastErr == nil {
			return attempt, nil
		}

		var cfgErr *core.ConfigurationError
		if errors.As(lastErr, &cfgErr) {
			return attempt, lastErr
		}
		if ctx.Err() != nil {
			return attempt, ctx.Err()
		}
		if attempt >= maxAttempts {
			return attempt, lastErr
		}

		clog.FromContext(ctx).With("operation", operation).
			With("attempt", attempt).
			With("max_attempts", maxAttempts).
			With("delay", p.Delay).
			With("error", lastErr.Error()).
			Warn("completion attempt failed, retrying")

		if p.Delay <= 0 {
			continue
		}
		select {
		case <-ctx.Done():
			return attempt, ctx.Err()
		case <-time.After(p.Delay):
		}
	}
}

// CompleteJSON sends prompt through c and decodes the answer with parse,
// retrying both transport failures and rejected answers under policy.
// Exhausting the attempts yields a *core.ProviderError.
func CompleteJSON[T any](ctx context.Context, c Completer, policy RetryPolicy, operation, prompt string, parse func(string) (T, error)) (T, error) {
	var result T
	attempts, err := policy.Do(ctx, operation, func(ctx context.Context) error {
		raw, err := c.Complete(ctx, prompt)
		if err != nil {
			return err
		}
		parsed, err := parse(raw)
		if err != nil {
			clog.FromContext(ctx).With("operation", operation).
				With("response_preview", preview(raw, 200)).
				Debug("rejected model response")
			return err
		}
		result = parsed
		return nil
	})
	if err == nil {
		return result, nil
	}
	if ctx.Err() != nil {
		return result, ctx.Err()
	}
	var cfgErr *core.ConfigurationError
	if errors.As(err, &cfgErr) {
		return result, err
	}
	return result, &core.ProviderError{Provider: string(c.Provider()), Attempts: attempts, Err: err}
}

func preview(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
