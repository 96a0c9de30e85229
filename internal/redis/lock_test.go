package redisclient

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLocker(t *testing.T, retries int, retryDelay time.Duration) (Locker, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisDoctorLocker(client, 2*time.Second, retries, retryDelay), mr
}

func TestWithDoctorLockRunsAndReleases(t *testing.T) {
	locker, mr := newTestLocker(t, 0, 0)
	doctorID := uuid.New()
	key := fmt.Sprintf("lock:doctor:%s", doctorID)

	ran := false
	err := locker.WithDoctorLock(context.Background(), doctorID, func(ctx context.Context) error {
		ran = true
		assert.True(t, mr.Exists(key), "lock key held during the critical section")
		_, ok := ctx.Deadline()
		assert.True(t, ok, "critical section runs under the lock TTL deadline")
		return nil
	})
	require.NoError(t, err)
	assert.True(t, ran)
	assert.False(t, mr.Exists(key), "lock key released on return")
}

func TestWithDoctorLockPropagatesError(t *testing.T) {
	locker, mr := newTestLocker(t, 0, 0)
	doctorID := uuid.New()
	boom := errors.New("boom")

	err := locker.WithDoctorLock(context.Background(), doctorID, func(context.Context) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.False(t, mr.Exists(fmt.Sprintf("lock:doctor:%s", doctorID)))
}

func TestWithDoctorLockContention(t *testing.T) {
	locker, _ := newTestLocker(t, 0, 0)
	doctorID := uuid.New()

	inside := make(chan struct{})
	release := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = locker.WithDoctorLock(context.Background(), doctorID, func(context.Context) error {
			close(inside)
			<-release
			return nil
		})
	}()

	<-inside
	err := locker.WithDoctorLock(context.Background(), doctorID, func(context.Context) error {
		t.Error("second holder entered the critical section")
		return nil
	})
	assert.ErrorIs(t, err, ErrLockNotAcquired)

	close(release)
	wg.Wait()

	// Once released, acquisition succeeds again.
	err = locker.WithDoctorLock(context.Background(), doctorID, func(context.Context) error { return nil })
	assert.NoError(t, err)
}

func TestWithDoctorLockRetriesUntilFree(t *testing.T) {
	locker, _ := newTestLocker(t, 50, 2*time.Millisecond)
	doctorID := uuid.New()

	inside := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = locker.WithDoctorLock(context.Background(), doctorID, func(context.Context) error {
			close(inside)
			time.Sleep(20 * time.Millisecond)
			return nil
		})
	}()

	<-inside
	err := locker.WithDoctorLock(context.Background(), doctorID, func(context.Context) error { return nil })
	assert.NoError(t, err, "retry loop acquires once the first holder finishes")
	wg.Wait()
}

func TestWithDoctorLockIndependentDoctors(t *testing.T) {
	locker, _ := newTestLocker(t, 0, 0)
	a, b := uuid.New(), uuid.New()

	err := locker.WithDoctorLock(context.Background(), a, func(ctx context.Context) error {
		// Holding a's lock never blocks b.
		return locker.WithDoctorLock(ctx, b, func(context.Context) error { return nil })
	})
	assert.NoError(t, err)
}

func TestWithDoctorLockHonorsContextDuringRetry(t *testing.T) {
	locker, _ := newTestLocker(t, 1000, 10*time.Millisecond)
	doctorID := uuid.New()

	inside := make(chan struct{})
	release := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = locker.WithDoctorLock(context.Background(), doctorID, func(context.Context) error {
			close(inside)
			<-release
			return nil
		})
	}()

	<-inside
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	err := locker.WithDoctorLock(ctx, doctorID, func(context.Context) error { return nil })
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	close(release)
	wg.Wait()
}
