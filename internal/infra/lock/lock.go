package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-RoomAllocationService/internal/domain"
)

var (
	// ErrNotAcquired возвращается, когда блокировку не удалось получить за все попытки
	ErrNotAcquired = errors.New("lock: not acquired")

	// ErrLockLost возвращается при освобождении блокировки, которая уже истекла или перехвачена
	ErrLockLost = errors.New("lock: lock lost")

	// ErrBackend возвращается при ошибке хранилища блокировок
	ErrBackend = errors.New("lock: backend error")
)

// Lock полученная эксклюзивная блокировка
type Lock interface {
	Key() string
	Release(ctx context.Context) error
}

// Locker выдает эксклюзивные блокировки по ключу
type Locker interface {
	Acquire(ctx context.Context, key string) (Lock, error)
}

// Options параметры блокировок
type Options struct {
	TTL        time.Duration // время жизни блокировки, должно превышать таймаут фиксации
	RetryCount int           // повторы после первой неудачной попытки
	RetryDelay time.Duration
}

// DefaultOptions блокировка на 10с, 5 повторов через 50мс
func DefaultOptions() Options {
	return Options{
		TTL:        10 * time.Second,
		RetryCount: 5,
		RetryDelay: 50 * time.Millisecond,
	}
}

// RoomDayKey ключ блокировки комнаты на день
func RoomDayKey(roomID string, day domain.Day) string {
	return fmt.Sprintf("room:%s:%s", roomID, day)
}

// acquireWithRetry повторяет tryAcquire до успеха, исчерпания попыток или отмены контекста
func acquireWithRetry(ctx context.Context, key string, opts Options, tryAcquire func() (bool, error)) error {
	for attempt := 0; attempt <= opts.RetryCount; attempt++ {
		if attempt > 0 {
			timer := time.NewTimer(opts.RetryDelay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return fmt.Errorf("%w: %s: %v", ErrNotAcquired, key, ctx.Err())
			case <-timer.C:
			}
		}

		ok, err := tryAcquire()
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
	}
	return fmt.Errorf("%w: %s after %d attempts", ErrNotAcquired, key, opts.RetryCount+1)
}
