package patterns

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBulkheadBoundsConcurrency(t *testing.T) {
	b := NewBulkhead(2, "test", "console")
	var active, peak int32
	var wg sync.WaitGroup

	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := b.Execute(context.Background(), func() error {
				n := atomic.AddInt32(&active, 1)
				for {
					p := atomic.LoadInt32(&peak)
					if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
						break
					}
				}
				time.Sleep(5 * time.Millisecond)
				atomic.AddInt32(&active, -1)
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(2))
	assert.Equal(t, 2, b.Capacity())
}

func TestBulkheadStopsWaitingOnContext(t *testing.T) {
	b := NewBulkhead(1, "test", "console")
	release := make(chan struct{})
	started := make(chan struct{})
	go func() {
		_ = b.Execute(context.Background(), func() error {
			close(started)
			<-release
			return nil
		})
	}()
	<-started

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := b.Execute(ctx, func() error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
	close(release)
}

func TestWithTimeout(t *testing.T) {
	ctx := context.Background()
	got, cancel := WithTimeout(ctx, NoTimeout)
	defer cancel()
	assert.Equal(t, ctx, got)
	_, hasDeadline := got.Deadline()
	assert.False(t, hasDeadline)

	bounded, cancel2 := WithTimeout(ctx, time.Second)
	defer cancel2()
	_, hasDeadline = bounded.Deadline()
	assert.True(t, hasDeadline)
}

var errServer = errors.New("server failure")
var errClient = errors.New("client rejection")

func TestCircuitBreakerTripsOnCountedFailures(t *testing.T) {
	cb := NewCircuitBreaker("remote-trip", "console", func(err error) bool {
		return errors.Is(err, errServer)
	})

	for i := 0; i < 3; i++ {
		assert.ErrorIs(t, cb.Execute(func() error { return errServer }), errServer)
	}
	assert.Equal(t, "open", cb.GetState())
	assert.Equal(t, 1, stateValue(cb.State()))

	called := false
	err := cb.Execute(func() error { called = true; return nil })
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.False(t, called)
}

func TestCircuitBreakerIgnoresUncountedErrors(t *testing.T) {
	cb := NewCircuitBreaker("remote-ignore", "console", func(err error) bool {
		return errors.Is(err, errServer)
	})

	for i := 0; i < 5; i++ {
		assert.ErrorIs(t, cb.Execute(func() error { return errClient }), errClient)
	}
	assert.Equal(t, "closed", cb.GetState())
}
