package database

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"strings"
	"time"

	"ripple/internal/middleware"
	"ripple/internal/observability"

	"github.com/jackc/pgx/v5/pgconn"
)

// Retry policy for transient storage faults: a fixed small bound with a
// fixed backoff, after which the fault escalates to the caller as fatal.
const (
	maxRetries   = 2
	retryBackoff = time.Second
)

// Transient SQLSTATE classes: serialization/deadlock failures, admin
// shutdown, crash recovery, and connection exceptions.
var transientPgCodes = map[string]bool{
	"40001": true, // serialization_failure
	"40P01": true, // deadlock_detected
	"57P01": true, // admin_shutdown
	"57P02": true, // crash_shutdown
	"57P03": true, // cannot_connect_now
	"08000": true, // connection_exception
	"08003": true, // connection_does_not_exist
	"08006": true, // connection_failure
	"53300": true, // too_many_connections
}

// IsTransient reports whether err is a storage fault expected to succeed
// if retried shortly.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return transientPgCodes[pgErr.Code]
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	msg := err.Error()
	return strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "connection terminated") ||
		strings.Contains(msg, "broken pipe")
}

// WithRetry executes a single-statement store operation, retrying
// transient faults up to the fixed bound. Non-transient errors propagate
// immediately; a fault that survives every retry escalates unchanged.
func WithRetry(ctx context.Context, op string, fn func() error) error {
	var err error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		err = fn()
		if err == nil || !IsTransient(err) {
			return err
		}
		if attempt == maxRetries {
			break
		}

		observability.StoreRetries.WithLabelValues(op).Inc()
		middleware.Logger.WarnContext(ctx, "transient store fault, retrying",
			slog.String("operation", op),
			slog.Int("attempt", attempt+1),
			slog.String("error", err.Error()),
		)

		select {
		case <-time.After(retryBackoff):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return err
}
