package services

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLocalLockerSerialisesSameYear(t *testing.T) {
	locker := NewLocalYearLocker()

	var active, peak int32
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := locker.Lock(context.Background(), 2025)
			if !assert.NoError(t, err) {
				return
			}
			defer unlock()

			n := atomic.AddInt32(&active, 1)
			for {
				p := atomic.LoadInt32(&peak)
				if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
					break
				}
			}
			time.Sleep(2 * time.Millisecond)
			atomic.AddInt32(&active, -1)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), peak)
}

func TestLocalLockerYearsAreIndependent(t *testing.T) {
	locker := NewLocalYearLocker()

	unlock, err := locker.Lock(context.Background(), 2025)
	require.NoError(t, err)
	defer unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	other, err := locker.Lock(ctx, 2026)
	require.NoError(t, err)
	other()
}

func TestLocalLockerTimesOut(t *testing.T) {
	locker := NewLocalYearLocker()

	unlock, err := locker.Lock(context.Background(), 2025)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err = locker.Lock(ctx, 2025)
	assert.ErrorIs(t, err, ErrLockTimeout)

	unlock()
	unlock() // second call is a no-op

	again, err := locker.Lock(context.Background(), 2025)
	require.NoError(t, err)
	again()
}

func TestNoopLockerNeverBlocks(t *testing.T) {
	locker := NewNoopYearLocker()

	first, err := locker.Lock(context.Background(), 2025)
	require.NoError(t, err)
	second, err := locker.Lock(context.Background(), 2025)
	require.NoError(t, err)

	first()
	second()
}

func newTestRedisLocker(t *testing.T, ttl time.Duration) (*miniredis.Miniredis, YearLocker) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, NewRedisYearLocker(client, ttl, zap.NewNop())
}

const lockKey2025 = "capstone:admission:lock:2025"

func TestRedisLockerWaitsForHolder(t *testing.T) {
	mr, locker := newTestRedisLocker(t, 30*time.Second)

	unlock, err := locker.Lock(context.Background(), 2025)
	require.NoError(t, err)
	assert.True(t, mr.Exists(lockKey2025))

	acquired := make(chan func(), 1)
	go func() {
		next, err := locker.Lock(context.Background(), 2025)
		if assert.NoError(t, err) {
			acquired <- next
		}
	}()

	select {
	case <-acquired:
		t.Fatal("second lock acquired while the first is held")
	case <-time.After(150 * time.Millisecond):
	}

	unlock()

	select {
	case next := <-acquired:
		next()
	case <-time.After(2 * time.Second):
		t.Fatal("second lock not acquired after release")
	}
	assert.False(t, mr.Exists(lockKey2025))
}

func TestRedisLockerCancelledWhileWaiting(t *testing.T) {
	_, locker := newTestRedisLocker(t, 30*time.Second)

	unlock, err := locker.Lock(context.Background(), 2025)
	require.NoError(t, err)
	defer unlock()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(80 * time.Millisecond)
		cancel()
	}()

	_, err = locker.Lock(ctx, 2025)
	assert.ErrorIs(t, err, ErrLockTimeout)
}

func TestRedisLockerStaleUnlockKeepsNewHolder(t *testing.T) {
	mr, locker := newTestRedisLocker(t, time.Second)

	stale, err := locker.Lock(context.Background(), 2025)
	require.NoError(t, err)

	mr.FastForward(2 * time.Second)
	require.False(t, mr.Exists(lockKey2025))

	current, err := locker.Lock(context.Background(), 2025)
	require.NoError(t, err)
	token, err := mr.Get(lockKey2025)
	require.NoError(t, err)

	stale()
	require.True(t, mr.Exists(lockKey2025))
	got, err := mr.Get(lockKey2025)
	require.NoError(t, err)
	assert.Equal(t, token, got)

	current()
	assert.False(t, mr.Exists(lockKey2025))
}

func TestRedisLockerUnlockIsIdempotent(t *testing.T) {
	mr, locker := newTestRedisLocker(t, 30*time.Second)

	unlock, err := locker.Lock(context.Background(), 2025)
	require.NoError(t, err)

	unlock()
	assert.False(t, mr.Exists(lockKey2025))

	next, err := locker.Lock(context.Background(), 2025)
	require.NoError(t, err)

	unlock()
	assert.True(t, mr.Exists(lockKey2025), "a repeated unlock must not release the next holder")
	next()
}

func TestRedisLockerYearsAreIndependent(t *testing.T) {
	mr, locker := newTestRedisLocker(t, 30*time.Second)

	a, err := locker.Lock(context.Background(), 2025)
	require.NoError(t, err)
	b, err := locker.Lock(context.Background(), 2026)
	require.NoError(t, err)

	assert.True(t, mr.Exists("capstone:admission:lock:2026"))
	a()
	b()
}
