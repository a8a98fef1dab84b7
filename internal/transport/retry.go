package transport

import (
	"context"
	"errors"
	"math/rand"
	"os"
	"time"

	apperrors "homequest-admin/internal/errors"
	"homequest-admin/pkg/logger"
	"homequest-admin/pkg/metrics"
)

// RetryConfig bounds the retry loop around the base transport.
type RetryConfig struct {
	MaxRetries     int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

// DefaultRetryConfig returns the client's standard retry bounds.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:     3,
		InitialBackoff: 100 * time.Millisecond,
		MaxBackoff:     10 * time.Second,
	}
}

type retryDoer struct {
	next Doer
	cfg  RetryConfig
	log  *logger.Logger
}

// NewRetry wraps a Doer with bounded retries. Network failures and
// transient statuses (429, 5xx) are retried with exponential backoff;
// validation and auth failures are returned immediately. The wrapped
// Doer is called at most 1+MaxRetries times.
func NewRetry(next Doer, cfg RetryConfig, log *logger.Logger) Doer {
	if log == nil {
		log = logger.New(os.Stdout, logger.ERROR)
	}
	return &retryDoer{next: next, cfg: cfg, log: log}
}

func (r *retryDoer) Do(ctx context.Context, req *Request) (*Response, error) {
	var resp *Response
	var err error

	for attempt := 0; ; attempt++ {
		resp, err = r.next.Do(ctx, req)

		if err != nil {
			// Cancellation is the caller's decision, not a transient
			// failure.
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil, err
			}
		} else if !apperrors.Retryable(resp.Status) {
			return resp, nil
		}

		if attempt >= r.cfg.MaxRetries {
			return resp, err
		}

		metrics.RetriesTotal.Inc()
		backoff := r.backoff(attempt)
		r.log.Debugf("transport: retrying %s %s in %s (attempt %d/%d)", req.Method, req.Path, backoff, attempt+1, r.cfg.MaxRetries)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}
}

func (r *retryDoer) backoff(attempt int) time.Duration {
	backoff := r.cfg.InitialBackoff << uint(attempt)
	if backoff > r.cfg.MaxBackoff || backoff <= 0 {
		backoff = r.cfg.MaxBackoff
	}
	// Up to 10% jitter keeps simultaneous retries from aligning.
	jitter := time.Duration(rand.Int63n(int64(backoff)/10 + 1))
	return backoff + jitter
}
