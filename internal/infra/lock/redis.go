package lock

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// releaseScript удаляет ключ, только если он все еще принадлежит владельцу токена
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker распределенная блокировка на SET NX PX
type RedisLocker struct {
	client redis.Cmdable
	opts   Options
}

// NewRedisLocker создает блокировщик поверх клиента Redis
func NewRedisLocker(client redis.Cmdable, opts Options) *RedisLocker {
	return &RedisLocker{client: client, opts: opts}
}

// Acquire получает блокировку с повторами
func (l *RedisLocker) Acquire(ctx context.Context, key string) (Lock, error) {
	token := uuid.NewString()

	err := acquireWithRetry(ctx, key, l.opts, func() (bool, error) {
		ok, err := l.client.SetNX(ctx, key, token, l.opts.TTL).Result()
		if err != nil {
			return false, fmt.Errorf("%w: SETNX %s: %v", ErrBackend, key, err)
		}
		return ok, nil
	})
	if err != nil {
		return nil, err
	}

	return &redisLock{client: l.client, key: key, token: token}, nil
}

type redisLock struct {
	client redis.Cmdable
	key    string
	token  string
}

func (l *redisLock) Key() string {
	return l.key
}

// Release освобождает блокировку, если срок ее жизни еще не истек
func (l *redisLock) Release(ctx context.Context) error {
	deleted, err := releaseScript.Run(ctx, l.client, []string{l.key}, l.token).Int64()
	if err != nil {
		return fmt.Errorf("%w: release %s: %v", ErrBackend, l.key, err)
	}
	if deleted == 0 {
		return fmt.Errorf("%w: %s", ErrLockLost, l.key)
	}
	return nil
}
