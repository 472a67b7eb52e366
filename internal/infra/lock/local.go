package lock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// LocalLocker блокировка в памяти процесса, используется когда Redis отключен
// Корректна только для одного экземпляра сервиса
type LocalLocker struct {
	mu    sync.Mutex
	held  map[string]localHolder
	opts  Options
	nowFn func() time.Time
}

type localHolder struct {
	token   string
	expires time.Time
}

// NewLocalLocker создает блокировщик в памяти
func NewLocalLocker(opts Options) *LocalLocker {
	return &LocalLocker{
		held:  make(map[string]localHolder),
		opts:  opts,
		nowFn: time.Now,
	}
}

// Acquire получает блокировку с повторами, истекшие блокировки перехватываются
func (l *LocalLocker) Acquire(ctx context.Context, key string) (Lock, error) {
	token := uuid.NewString()

	err := acquireWithRetry(ctx, key, l.opts, func() (bool, error) {
		l.mu.Lock()
		defer l.mu.Unlock()

		now := l.nowFn()
		if h, ok := l.held[key]; ok && now.Before(h.expires) {
			return false, nil
		}
		l.held[key] = localHolder{token: token, expires: now.Add(l.opts.TTL)}
		return true, nil
	})
	if err != nil {
		return nil, err
	}

	return &localLock{locker: l, key: key, token: token}, nil
}

func (l *LocalLocker) release(key, token string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	h, ok := l.held[key]
	if !ok || h.token != token {
		return fmt.Errorf("%w: %s", ErrLockLost, key)
	}
	delete(l.held, key)
	return nil
}

type localLock struct {
	locker *LocalLocker
	key    string
	token  string
}

func (l *localLock) Key() string {
	return l.key
}

func (l *localLock) Release(_ context.Context) error {
	return l.locker.release(l.key, l.token)
}
