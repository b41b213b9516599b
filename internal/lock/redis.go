package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Locker hands out a token on acquisition; only that token can release the key.
type Locker interface {
	Lock(ctx context.Context, key string, ttl time.Duration) (token string, acquired bool, err error)
	Unlock(ctx context.Context, key, token string) error
}

const keyPrefix = "booking-calendar:lock:"

// LineKey is the lock guarding booking writes on one line.
func LineKey(lineID string) string {
	return fmt.Sprintf("line:%s", lineID)
}

// releaseScript deletes the key only if it still holds the caller's token, so
// a lock that expired and was taken by someone else is left alone.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLock is a SET NX PX lock holding a random token per acquisition.
type RedisLock struct {
	client *redis.Client
}

func NewRedisLock(redisAddr string) (*RedisLock, error) {
	const op = "lock.NewRedisLock"

	client := redis.NewClient(&redis.Options{
		Addr: redisAddr,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &RedisLock{client: client}, nil
}

func (r *RedisLock) Lock(ctx context.Context, key string, ttl time.Duration) (string, bool, error) {
	const op = "lock.RedisLock.Lock"

	token := uuid.NewString()

	ok, err := r.client.SetNX(ctx, keyPrefix+key, token, ttl).Result()
	if err != nil {
		return "", false, fmt.Errorf("%s: %w", op, err)
	}
	if !ok {
		return "", false, nil
	}

	return token, true, nil
}

// Unlock is a no-op when the key has expired or now belongs to another token.
func (r *RedisLock) Unlock(ctx context.Context, key, token string) error {
	const op = "lock.RedisLock.Unlock"

	if err := releaseScript.Run(ctx, r.client, []string{keyPrefix + key}, token).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (r *RedisLock) Close() error {
	return r.client.Close()
}

// WithLock runs fn while holding key. acquired is false, and fn is not run,
// when another holder has the key.
func WithLock(ctx context.Context, l Locker, key string, ttl time.Duration, fn func() error) (acquired bool, err error) {
	const op = "lock.WithLock"

	token, ok, err := l.Lock(ctx, key, ttl)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	if !ok {
		return false, nil
	}
	defer func() {
		_ = l.Unlock(context.WithoutCancel(ctx), key, token)
	}()

	return true, fn()
}
