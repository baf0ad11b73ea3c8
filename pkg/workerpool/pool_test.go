package workerpool_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/automart/pkg/workerpool"
)

func TestPool_BoundsConcurrency(t *testing.T) {
	p := workerpool.New(3)
	var running, peak atomic.Int32

	for i := 0; i < 30; i++ {
		require.NoError(t, p.Go(context.Background(), func() error {
			n := running.Add(1)
			for {
				old := peak.Load()
				if n <= old || peak.CompareAndSwap(old, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			running.Add(-1)
			return nil
		}))
	}

	require.NoError(t, p.Wait())
	assert.LessOrEqual(t, peak.Load(), int32(3))
	assert.Positive(t, peak.Load())
}

func TestPool_CollectsErrorsAndPanics(t *testing.T) {
	p := workerpool.New(2)
	boom := errors.New("s3: access denied")

	_ = p.Go(context.Background(), func() error { return boom })
	_ = p.Go(context.Background(), func() error { panic("nil disk") })
	_ = p.Go(context.Background(), func() error { return nil })

	err := p.Wait()
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "task panicked: nil disk")
}

func TestPool_GoGivesUpWhenContextEnds(t *testing.T) {
	p := workerpool.New(1)
	release := make(chan struct{})
	require.NoError(t, p.Go(context.Background(), func() error { <-release; return nil }))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	err := p.Go(ctx, func() error { return nil })
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	close(release)
	assert.NoError(t, p.Wait())
}

func TestForEach(t *testing.T) {
	var sum atomic.Int64
	err := workerpool.ForEach(context.Background(), 4, []int64{1, 2, 3, 4, 5}, func(_ context.Context, n int64) error {
		sum.Add(n)
		if n == 4 {
			return errors.New("four")
		}
		return nil
	})
	assert.EqualError(t, err, "four")
	assert.Equal(t, int64(15), sum.Load())

	assert.NoError(t, workerpool.ForEach(context.Background(), 4, []string(nil), func(context.Context, string) error {
		return errors.New("never called")
	}))
}
