package taskgroup

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

func TestGroupBoundsConcurrency(t *testing.T) {
	var running, peak int32
	g := New(context.Background(), 3)

	for i := 0; i < 20; i++ {
		g.Go(func(ctx context.Context) error {
			n := atomic.AddInt32(&running, 1)
			for {
				p := atomic.LoadInt32(&peak)
				if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			atomic.AddInt32(&running, -1)
			return nil
		})
	}

	require.NoError(t, g.Wait())
	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(3))
	assert.Positive(t, atomic.LoadInt32(&peak))
}

func TestGroupFailsFast(t *testing.T) {
	boom := errors.New("boom")
	var ran int32

	g := New(context.Background(), 1)
	g.Go(func(ctx context.Context) error { return boom })
	for i := 0; i < 5; i++ {
		g.Go(func(ctx context.Context) error {
			atomic.AddInt32(&ran, 1)
			return nil
		})
	}

	assert.ErrorIs(t, g.Wait(), boom)
	assert.Zero(t, atomic.LoadInt32(&ran))
}

func TestGroupCancelsRunningTasks(t *testing.T) {
	boom := errors.New("boom")
	g := New(context.Background(), 2)

	var cancelled atomic.Bool
	started := make(chan struct{})
	g.Go(func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		cancelled.Store(true)
		return ctx.Err()
	})
	g.Go(func(ctx context.Context) error {
		<-started
		return boom
	})

	assert.ErrorIs(t, g.Wait(), boom)
	assert.True(t, cancelled.Load())
}

func TestGroupSkipsAfterParentCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var ran int32
	g := New(ctx, 4)
	g.Go(func(ctx context.Context) error {
		atomic.AddInt32(&ran, 1)
		return nil
	})

	assert.ErrorIs(t, g.Wait(), context.Canceled)
	assert.Zero(t, atomic.LoadInt32(&ran))
}

func TestEach(t *testing.T) {
	var mu sync.Mutex
	seen := map[string]bool{}

	err := Each(context.Background(), 2, []string{"SOF", "LTN", "BER"}, func(ctx context.Context, code string) error {
		mu.Lock()
		defer mu.Unlock()
		seen[code] = true
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"SOF": true, "LTN": true, "BER": true}, seen)
}
