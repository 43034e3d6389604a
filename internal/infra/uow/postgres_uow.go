package uow

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"log/slog"
	"time"

	"spotstay/internal/infra"
	"spotstay/internal/infra/db"
	"spotstay/internal/infra/store"
	"spotstay/internal/pkg/errs"
	"spotstay/internal/usecase/shared"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgErrCodeSerializationFailure = "40001"
	pgErrCodeDeadlockDetected     = "40P01"
)

var (
	errTransactionBegin  = errs.New("failed to begin transaction")
	errTransactionCommit = errs.New("failed to commit transaction")

	// ErrRetriesExhausted marks a transaction that kept losing
	// serialization races; callers may retry the whole request.
	ErrRetriesExhausted = errs.New("transaction failed after max retries")
)

// PostgresUoW runs check-then-write sequences in SERIALIZABLE
// transactions. Serialization failures are expected under concurrent
// bookings on the same spot and are retried with capped backoff.
type PostgresUoW struct {
	pool     *pgxpool.Pool
	bookings *store.BookingStore
}

func NewPostgresUoW(pool *pgxpool.Pool, bookings *store.BookingStore) shared.UnitOfWork {
	return &PostgresUoW{
		pool:     pool,
		bookings: bookings,
	}
}

func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.runInTxWithOptions(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable}, fn)
}

// Avoids defer accumulation in retry loops to prevent connection leaks
func (u *PostgresUoW) runInTxWithOptions(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) error {
	const maxRetries = 3
	base := 100 * time.Millisecond

	for attempt := 0; attempt <= maxRetries; attempt++ {
		pgxTx, err := u.pool.BeginTx(ctx, options)
		if err != nil {
			return errs.Mark(err, errTransactionBegin)
		}

		tx := &pgTx{
			dbtx:     pgxTx,
			bookings: u.bookings,
		}

		err = fn(ctx, tx)
		if err == nil {
			if err = pgxTx.Commit(ctx); err == nil {
				return nil
			}
			err = errs.Mark(err, errTransactionCommit)
		}

		if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil {
			if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				slog.Warn("rollback failed", "attempt", attempt+1, "error", rollbackErr.Error())
			}
		}

		if !isRetryable(err) {
			return err
		}
		if attempt == maxRetries {
			slog.Error("transaction failed after max retries",
				"attempts", attempt+1,
				"error", err.Error())
			return errs.Mark(err, ErrRetriesExhausted)
		}

		waitTime := calculateBackoff(attempt, base)

		slog.Warn("retrying transaction due to retryable error",
			"attempt", attempt+1,
			"wait_ms", waitTime.Milliseconds(),
			"error", err.Error())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(waitTime):
		}
	}

	return ErrRetriesExhausted
}

func isRetryable(err error) bool {
	if infra.IsKind(err, infra.KindSerialization) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgErrCodeSerializationFailure || pgErr.Code == pgErrCodeDeadlockDetected
	}
	return false
}

// Exponential backoff with jitter so colliding writers spread out.
func calculateBackoff(attempt int, base time.Duration) time.Duration {
	backoff := base << attempt

	var b [8]byte
	if _, err := rand.Read(b[:]); err == nil {
		jitter := time.Duration(binary.LittleEndian.Uint64(b[:]) % uint64(base))
		backoff += jitter
	}

	const maxBackoff = 2 * time.Second
	if backoff > maxBackoff {
		backoff = maxBackoff
	}
	return backoff
}

type pgTx struct {
	dbtx     pgx.Tx
	bookings *store.BookingStore
}

func (t *pgTx) Bookings() shared.BookingRepository {
	return t.bookings
}

func (t *pgTx) DB() db.DBTX {
	return t.dbtx
}
