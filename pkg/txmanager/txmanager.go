package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/m04kA/SMC-RoomAllocationService/pkg/dbmetrics"
)

// PostgreSQL коды ошибок, после которых транзакцию имеет смысл повторить
const (
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
)

var (
	// ErrTransaction возвращается при ошибках начала или фиксации транзакции
	ErrTransaction = errors.New("txmanager: transaction error")

	// ErrRetriesExhausted возвращается, когда все повторы сериализуемой транзакции провалились
	ErrRetriesExhausted = errors.New("txmanager: serialization retries exhausted")
)

// TxBeginner интерфейс для начала транзакций
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error)
}

// Options параметры повторов
type Options struct {
	MaxRetries     int           // дополнительные попытки после первой
	InitialBackoff time.Duration // пауза перед первым повтором, далее удваивается
	MaxBackoff     time.Duration
}

// DefaultOptions три повтора с паузой от 20мс до 200мс
func DefaultOptions() Options {
	return Options{
		MaxRetries:     3,
		InitialBackoff: 20 * time.Millisecond,
		MaxBackoff:     200 * time.Millisecond,
	}
}

// TransactionManager выполняет функции в транзакции, передавая ее через контекст
type TransactionManager struct {
	db   TxBeginner
	opts Options
}

// NewTransactionManager создает менеджер транзакций с параметрами по умолчанию
func NewTransactionManager(db TxBeginner) *TransactionManager {
	return NewTransactionManagerWithOptions(db, DefaultOptions())
}

// NewTransactionManagerWithOptions создает менеджер транзакций
func NewTransactionManagerWithOptions(db TxBeginner, opts Options) *TransactionManager {
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	}
	return &TransactionManager{db: db, opts: opts}
}

// Do выполняет fn в транзакции READ COMMITTED без повторов
func (m *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted}, fn)
}

// DoSerializable выполняет fn в сериализуемой транзакции
// При конфликте сериализации или deadlock транзакция повторяется с экспоненциальной паузой
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	opts := &sql.TxOptions{Isolation: sql.LevelSerializable}
	backoff := m.opts.InitialBackoff

	var lastErr error
	for attempt := 0; attempt <= m.opts.MaxRetries; attempt++ {
		if attempt > 0 {
			if err := sleep(ctx, backoff); err != nil {
				return fmt.Errorf("%w: %v (last error: %v)", ErrTransaction, err, lastErr)
			}
			backoff *= 2
			if m.opts.MaxBackoff > 0 && backoff > m.opts.MaxBackoff {
				backoff = m.opts.MaxBackoff
			}
		}

		lastErr = m.run(ctx, opts, fn)
		if lastErr == nil || !IsRetryable(lastErr) {
			return lastErr
		}
	}

	return fmt.Errorf("%w: %d attempts: %v", ErrRetriesExhausted, m.opts.MaxRetries+1, lastErr)
}

func (m *TransactionManager) run(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) (err error) {
	// вложенный вызов переиспользует внешнюю транзакцию
	if dbmetrics.IsInTransaction(ctx) {
		return fn(ctx)
	}

	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("%w: begin: %w", ErrTransaction, err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(dbmetrics.WithTx(ctx, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback failed: %v)", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %w", ErrTransaction, err)
	}
	return nil
}

// IsRetryable возвращает true для ошибок сериализации и deadlock PostgreSQL
func IsRetryable(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pgSerializationFailure || pqErr.Code == pgDeadlockDetected
	}
	return false
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
