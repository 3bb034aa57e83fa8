package llm

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"readmellm/internal/models"
)

const defaultBaseDelay = 500 * time.Millisecond

// Retrier wraps a Client with bounded exponential backoff. Transient
// failures are retried up to maxRetries times; any other failure is
// surfaced immediately. The successful response records how many
// retries it took.
type Retrier struct {
	client     Client
	maxRetries int
	baseDelay  time.Duration
	logger     *zap.Logger
}

// NewRetrier builds a Retrier; maxRetries is the number of additional
// attempts after the first.
func NewRetrier(client Client, maxRetries int, logger *zap.Logger) *Retrier {
	return &Retrier{
		client:     client,
		maxRetries: maxRetries,
		baseDelay:  defaultBaseDelay,
		logger:     logger,
	}
}

// Model returns the wrapped client's model name
func (r *Retrier) Model() string { return r.client.Model() }

// Generate invokes the wrapped client, sleeping between attempts with
// exponential backoff plus jitter. Exhausting the attempt limit
// escalates to a fatal error carrying the last transient cause.
func (r *Retrier) Generate(ctx context.Context, req *models.PromptRequest) (*models.ModelResponse, error) {
	var lastErr error

	for attempt := 0; attempt <= r.maxRetries; attempt++ {
		if attempt > 0 {
			delay := backoffDelay(r.baseDelay, attempt)
			r.logger.Warn("retrying model call",
				zap.Int("attempt", attempt),
				zap.Duration("backoff", delay),
				zap.Error(lastErr))
			if err := sleep(ctx, delay); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrTransient, err)
			}
		}

		resp, err := r.client.Generate(ctx, req)
		if err == nil {
			resp.Retries = attempt
			return resp, nil
		}
		if !Retryable(err) {
			return nil, err
		}
		lastErr = err
	}

	return nil, fmt.Errorf("retries exhausted after %d attempts: %w", r.maxRetries+1, lastErr)
}

// backoffDelay doubles the base per attempt and applies ±50% jitter so
// concurrent runs do not synchronize against a rate limit.
func backoffDelay(base time.Duration, attempt int) time.Duration {
	d := base << uint(attempt-1)
	return time.Duration(float64(d) * (0.5 + rand.Float64()))
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
