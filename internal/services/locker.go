package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// YearLocker serialises admissions that share an academic year. The returned
// unlock func must be called exactly once.
type YearLocker interface {
	Lock(ctx context.Context, year int) (func(), error)
}

var ErrLockTimeout = errors.New("timed out waiting for admission lock")

type localYearLocker struct {
	mu    sync.Mutex
	slots map[int]chan struct{}
}

// NewLocalYearLocker locks within the current process only.
func NewLocalYearLocker() YearLocker {
	return &localYearLocker{slots: make(map[int]chan struct{})}
}

func (l *localYearLocker) slot(year int) chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()

	s, ok := l.slots[year]
	if !ok {
		s = make(chan struct{}, 1)
		l.slots[year] = s
	}
	return s
}

func (l *localYearLocker) Lock(ctx context.Context, year int) (func(), error) {
	s := l.slot(year)
	select {
	case s <- struct{}{}:
		var once sync.Once
		return func() { once.Do(func() { <-s }) }, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %v", ErrLockTimeout, ctx.Err())
	}
}

type noopYearLocker struct{}

// NewNoopYearLocker keeps the unserialised check-then-act behaviour.
func NewNoopYearLocker() YearLocker {
	return noopYearLocker{}
}

func (noopYearLocker) Lock(context.Context, int) (func(), error) {
	return func() {}, nil
}

var releaseScript = goredis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

type redisYearLocker struct {
	client *goredis.Client
	ttl    time.Duration
	retry  time.Duration
	log    *zap.Logger
}

// NewRedisYearLocker shares the lock between replicas. ttl bounds how long a
// crashed holder can block a year.
func NewRedisYearLocker(client *goredis.Client, ttl time.Duration, log *zap.Logger) YearLocker {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &redisYearLocker{
		client: client,
		ttl:    ttl,
		retry:  50 * time.Millisecond,
		log:    log,
	}
}

func (l *redisYearLocker) Lock(ctx context.Context, year int) (func(), error) {
	key := fmt.Sprintf("capstone:admission:lock:%d", year)
	token := uuid.New().String()

	ticker := time.NewTicker(l.retry)
	defer ticker.Stop()

	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("%w: %v", ErrLockTimeout, ctx.Err())
			}
			return nil, fmt.Errorf("failed to acquire admission lock: %w", err)
		}
		if ok {
			break
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %v", ErrLockTimeout, ctx.Err())
		case <-ticker.C:
		}
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			// The request context may already be done; release on a fresh one.
			releaseCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := releaseScript.Run(releaseCtx, l.client, []string{key}, token).Err(); err != nil {
				l.log.Warn("failed to release admission lock", zap.String("key", key), zap.Error(err))
			}
		})
	}, nil
}
