package postgres

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5/pgconn"
)

// Transient postgres error codes worth retrying: deadlocks and
// serialization failures under concurrent lifecycle operations on the
// same asset.
const (
	codeDeadlockDetected     = "40P01"
	codeSerializationFailure = "40001"
)

// Retrier implements usecase.Retrier with capped exponential backoff.
type Retrier struct {
	maxAttempts    uint64
	firstInterval  time.Duration
	maxInterval    time.Duration
	maxElapsedTime time.Duration
	logger         *slog.Logger
}

// NewRetrier creates a Retrier with defaults suited to short
// row-lock conflicts.
func NewRetrier() *Retrier {
	return &Retrier{
		maxAttempts:    3,
		firstInterval:  50 * time.Millisecond,
		maxInterval:    time.Second,
		maxElapsedTime: 10 * time.Second,
		logger:         slog.Default(),
	}
}

// Retry runs the operation, retrying on transient postgres errors until
// the attempt or time budget runs out. Non-transient errors return
// immediately.
func (r *Retrier) Retry(ctx context.Context, operation func() error) error {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = r.firstInterval
	policy.MaxInterval = r.maxInterval
	policy.MaxElapsedTime = r.maxElapsedTime

	attempt := 0

	wrapped := func() error {
		err := operation()
		if err == nil {
			return nil
		}

		if !transient(err) {
			return backoff.Permanent(err)
		}

		attempt++
		r.logger.Warn("transient database error",
			slog.String("error", err.Error()),
			slog.Int("attempt", attempt))

		return err
	}

	return backoff.Retry(wrapped, backoff.WithMaxRetries(backoff.WithContext(policy, ctx), r.maxAttempts))
}

func transient(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	return pgErr.Code == codeDeadlockDetected || pgErr.Code == codeSerializationFailure
}
