package keylock_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"farmdesk/internal/pkg/errs"
	"farmdesk/internal/pkg/keylock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocker_SerializesSameKey(t *testing.T) {
	// Given
	locks := keylock.New()
	var inside, maxInside int32
	var wg sync.WaitGroup

	// When
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := locks.Lock(context.Background(), "customer:C1")
			if !assert.NoError(t, err) {
				return
			}
			n := atomic.AddInt32(&inside, 1)
			for {
				current := atomic.LoadInt32(&maxInside)
				if n <= current || atomic.CompareAndSwapInt32(&maxInside, current, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&inside, -1)
			unlock()
		}()
	}
	wg.Wait()

	// Then
	assert.Equal(t, int32(1), maxInside)
	assert.Zero(t, locks.Len())
}

func TestLocker_DifferentKeysDoNotBlock(t *testing.T) {
	// Given
	locks := keylock.New()
	unlockA, err := locks.Lock(t.Context(), "order:A")
	require.NoError(t, err)
	defer unlockA()

	// When
	ctx, cancel := context.WithTimeout(t.Context(), 100*time.Millisecond)
	defer cancel()
	unlockB, err := locks.Lock(ctx, "order:B")

	// Then
	require.NoError(t, err)
	unlockB()
	assert.Equal(t, 1, locks.Len())
}

func TestLocker_DeadlineBecomesTimeout(t *testing.T) {
	// Given
	locks := keylock.New()
	unlock, err := locks.Lock(t.Context(), "order:A")
	require.NoError(t, err)
	defer unlock()

	ctx, cancel := context.WithTimeout(t.Context(), 20*time.Millisecond)
	defer cancel()

	// When
	_, err = locks.Lock(ctx, "order:A")

	// Then
	require.ErrorIs(t, err, errs.ErrTimeout)
	assert.Equal(t, 1, locks.Len())
}

func TestLocker_UnlockIsIdempotent(t *testing.T) {
	// Given
	locks := keylock.New()
	unlock, err := locks.Lock(t.Context(), "order:A")
	require.NoError(t, err)

	// When
	unlock()
	unlock()

	// Then
	assert.Zero(t, locks.Len())
	again, err := locks.Lock(t.Context(), "order:A")
	require.NoError(t, err)
	again()
}
