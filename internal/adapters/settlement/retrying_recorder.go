package settlement

import (
	"context"
	"errors"
	"log/slog"
	"time"

	portssvc "github.com/SscSPs/family_treasury/internal/core/ports/services"
	"github.com/SscSPs/family_treasury/internal/middleware"
	"github.com/cenkalti/backoff/v5"
	"github.com/shopspring/decimal"
)

const defaultMaxAttempts = 3

// RetryingRecorder retries transient failures of the wrapped recorder with exponential
// backoff. ErrRecordRejected and context errors are not retried.
type RetryingRecorder struct {
	next            portssvc.SettlementRecorder
	maxAttempts     uint
	initialInterval time.Duration
	maxInterval     time.Duration
}

// RetryOption is a functional option for configuring the retrying recorder
type RetryOption func(*RetryingRecorder)

// WithMaxAttempts caps the number of calls to the wrapped recorder, including the first.
func WithMaxAttempts(n int) RetryOption {
	return func(r *RetryingRecorder) {
		if n > 0 {
			r.maxAttempts = uint(n)
		}
	}
}

// WithIntervals sets the first and the largest wait between attempts.
func WithIntervals(initial, maxWait time.Duration) RetryOption {
	return func(r *RetryingRecorder) {
		r.initialInterval = initial
		r.maxInterval = maxWait
	}
}

// NewRetryingRecorder wraps next.
func NewRetryingRecorder(next portssvc.SettlementRecorder, options ...RetryOption) *RetryingRecorder {
	r := &RetryingRecorder{
		next:            next,
		maxAttempts:     defaultMaxAttempts,
		initialInterval: 200 * time.Millisecond,
		maxInterval:     2 * time.Second,
	}
	for _, option := range options {
		option(r)
	}
	return r
}

var _ portssvc.SettlementRecorder = (*RetryingRecorder)(nil)

func (r *RetryingRecorder) Record(ctx context.Context, poolExternalReference string, claimID string, amount decimal.Decimal) (string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	operation := func() (string, error) {
		reference, err := r.next.Record(ctx, poolExternalReference, claimID, amount)
		if err == nil {
			return reference, nil
		}
		if errors.Is(err, ErrRecordRejected) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return "", backoff.Permanent(err)
		}
		return "", err
	}

	return backoff.Retry(ctx, operation,
		backoff.WithBackOff(r.newBackOff()),
		backoff.WithMaxTries(r.maxAttempts),
		backoff.WithNotify(func(err error, wait time.Duration) {
			logger.Warn("Settlement attempt failed, retrying",
				slog.String("claim_id", claimID),
				slog.String("error", err.Error()),
				slog.Duration("wait", wait))
		}),
	)
}

func (r *RetryingRecorder) newBackOff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = r.initialInterval
	b.MaxInterval = r.maxInterval
	return b
}
