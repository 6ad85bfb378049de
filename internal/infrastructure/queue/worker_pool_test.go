package queue

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reel-processor/internal/domain/repositories"
)

type stubInvoker struct {
	delay   time.Duration
	err     error
	running int32
	peak    int32
	calls   int32
}

func (s *stubInvoker) Run(ctx context.Context, argv []string) (repositories.Outcome, error) {
	atomic.AddInt32(&s.calls, 1)
	n := atomic.AddInt32(&s.running, 1)
	defer atomic.AddInt32(&s.running, -1)
	for {
		p := atomic.LoadInt32(&s.peak)
		if n <= p || atomic.CompareAndSwapInt32(&s.peak, p, n) {
			break
		}
	}

	select {
	case <-time.After(s.delay):
	case <-ctx.Done():
		return repositories.Outcome{ExitCode: -1}, ctx.Err()
	}
	if s.err != nil {
		return repositories.Outcome{ExitCode: 1}, s.err
	}
	return repositories.Outcome{ExitCode: 0, Stderr: argv[0]}, nil
}

func TestWorkerPool_SingleWorkerSerializes(t *testing.T) {
	log, _ := test.NewNullLogger()
	inv := &stubInvoker{delay: 20 * time.Millisecond}
	pool := NewWorkerPool(1, inv, log)
	defer pool.Shutdown()

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out, err := pool.Submit(context.Background(), "job", []string{"ffmpeg"})
			assert.NoError(t, err)
			assert.Equal(t, "ffmpeg", out.Stderr)
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 5, atomic.LoadInt32(&inv.calls))
	assert.EqualValues(t, 1, atomic.LoadInt32(&inv.peak))
}

func TestWorkerPool_BoundsConcurrency(t *testing.T) {
	log, _ := test.NewNullLogger()
	inv := &stubInvoker{delay: 30 * time.Millisecond}
	pool := NewWorkerPool(3, inv, log)
	defer pool.Shutdown()

	var wg sync.WaitGroup
	for i := 0; i < 12; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = pool.Run(context.Background(), []string{"ffmpeg"})
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, atomic.LoadInt32(&inv.peak), int32(3))
}

func TestWorkerPool_PropagatesError(t *testing.T) {
	log, _ := test.NewNullLogger()
	boom := errors.New("boom")
	pool := NewWorkerPool(1, &stubInvoker{err: boom}, log)
	defer pool.Shutdown()

	out, err := pool.Submit(context.Background(), "job", []string{"ffmpeg"})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 1, out.ExitCode)
}

func TestWorkerPool_CancelledCallerIsSkipped(t *testing.T) {
	log, _ := test.NewNullLogger()
	inv := &stubInvoker{}
	pool := NewWorkerPool(1, inv, log)
	defer pool.Shutdown()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := pool.Submit(ctx, "job", []string{"ffmpeg"})
	require.ErrorIs(t, err, context.Canceled)
	assert.EqualValues(t, 0, atomic.LoadInt32(&inv.calls))
}

func TestWorkerPool_ShutdownKillsRunningJob(t *testing.T) {
	log, _ := test.NewNullLogger()
	pool := NewWorkerPool(1, &stubInvoker{delay: time.Minute}, log)

	done := make(chan error, 1)
	go func() {
		_, err := pool.Submit(context.Background(), "job", []string{"ffmpeg"})
		done <- err
	}()

	time.Sleep(20 * time.Millisecond)
	pool.Shutdown()

	select {
	case err := <-done:
		require.Error(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("submit did not return after shutdown")
	}

	_, err := pool.Submit(context.Background(), "late", []string{"ffmpeg"})
	require.ErrorIs(t, err, ErrPoolClosed)
}

func TestWorkerPool_DoSharesWorkerSlots(t *testing.T) {
	log, _ := test.NewNullLogger()
	inv := &stubInvoker{delay: 100 * time.Millisecond}
	pool := NewWorkerPool(1, inv, log)
	defer pool.Shutdown()

	encoded := make(chan error, 1)
	go func() {
		_, err := pool.Submit(context.Background(), "encode", []string{"ffmpeg"})
		encoded <- err
	}()
	require.Eventually(t, func() bool { return atomic.LoadInt32(&inv.running) == 1 }, time.Second, 5*time.Millisecond)

	var overlapped int32
	err := pool.Do(context.Background(), "probe", func(context.Context) error {
		overlapped = atomic.LoadInt32(&inv.running)
		return nil
	})
	require.NoError(t, err)
	assert.EqualValues(t, 0, overlapped)
	require.NoError(t, <-encoded)
}

func TestWorkerPool_DoPropagatesError(t *testing.T) {
	log, _ := test.NewNullLogger()
	pool := NewWorkerPool(1, &stubInvoker{}, log)
	defer pool.Shutdown()

	boom := errors.New("boom")
	err := pool.Do(context.Background(), "probe", func(context.Context) error { return boom })
	require.ErrorIs(t, err, boom)

	pool.Shutdown()
	err = pool.Do(context.Background(), "late", func(context.Context) error { return nil })
	require.ErrorIs(t, err, ErrPoolClosed)
}
