package xpersist

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omeyang/retryblock/pkg/resilience/xdelay"
	"github.com/omeyang/retryblock/pkg/resilience/xretry"
)

// recordingInjector 在内存注入器之上记录每次写入的状态，用于断言写入顺序。
type recordingInjector[ID comparable, I, O any] struct {
	*MemoryInjector[ID, I, O]

	mu     sync.Mutex
	writes []Status[O]
}

func newRecordingInjector[ID comparable, I, O any]() *recordingInjector[ID, I, O] {
	return &recordingInjector[ID, I, O]{
		MemoryInjector: NewMemoryInjector[ID, I, O](),
	}
}

func (r *recordingInjector[ID, I, O]) SaveStatus(ctx context.Context, id ID, input I, status Status[O]) error {
	r.mu.Lock()
	r.writes = append(r.writes, status)
	r.mu.Unlock()
	return r.MemoryInjector.SaveStatus(ctx, id, input, status)
}

// failingInjector 在第 failAt 次写入时返回错误。
type failingInjector[ID comparable, I, O any] struct {
	*MemoryInjector[ID, I, O]

	calls  int
	failAt int
	err    error
}

func (f *failingInjector[ID, I, O]) SaveStatus(ctx context.Context, id ID, input I, status Status[O]) error {
	f.calls++
	if f.calls == f.failAt {
		return f.err
	}
	return f.MemoryInjector.SaveStatus(ctx, id, input, status)
}

func TestNewHandle(t *testing.T) {
	t.Run("NilInjector", func(t *testing.T) {
		_, err := NewHandle[string, int, int](nil, xdelay.NoDelay{})
		assert.ErrorIs(t, err, ErrNilInjector)
	})

	t.Run("NilTemplate", func(t *testing.T) {
		_, err := NewHandle[string, int, int](NewMemoryInjector[string, int, int](), nil)
		assert.ErrorIs(t, err, ErrNilTemplate)
	})

	t.Run("Valid", func(t *testing.T) {
		h, err := NewHandle[string, int, int](NewMemoryInjector[string, int, int](), xdelay.NoDelay{})
		require.NoError(t, err)
		assert.NotNil(t, h)
	})
}

func TestHandleRetry(t *testing.T) {
	errTransient := errors.New("transient")

	t.Run("ImmediateSuccess", func(t *testing.T) {
		inj := newRecordingInjector[string, int, int]()
		h, err := NewHandle[string, int, int](inj, xdelay.NoDelay{})
		require.NoError(t, err)

		err = h.Retry(t.Context(), "job-1", 21, func(_ context.Context, input int) xretry.Outcome[int] {
			return xretry.OK(input * 2)
		})
		require.NoError(t, err)

		status, ok := inj.Status("job-1")
		require.True(t, ok)
		assert.True(t, status.IsSuccess())
		assert.Equal(t, 42, status.Output())

		// 恰好两次写入: Pending 先于终态
		require.Len(t, inj.writes, 2)
		assert.True(t, inj.writes[0].IsPending())
		assert.True(t, inj.writes[1].IsSuccess())
	})

	t.Run("TransientFailuresThenSuccess", func(t *testing.T) {
		inj := newRecordingInjector[string, int, int]()
		h, err := NewHandle[string, int, int](inj, xdelay.NoDelay{})
		require.NoError(t, err)

		var attempts int
		err = h.Retry(t.Context(), "job-1", 0, func(_ context.Context, _ int) xretry.Outcome[int] {
			attempts++
			if attempts <= 3 {
				return xretry.Retry[int](errTransient)
			}
			return xretry.OK(attempts)
		})
		require.NoError(t, err)

		assert.Equal(t, 4, attempts)

		status, ok := inj.Status("job-1")
		require.True(t, ok)
		assert.Equal(t, 4, status.Output())
	})

	t.Run("ExhaustionRecordsLastError", func(t *testing.T) {
		inj := newRecordingInjector[string, int, int]()
		h, err := NewHandle[string, int, int](inj, xdelay.Take(xdelay.NoDelay{}, 2))
		require.NoError(t, err)

		var attempts int
		err = h.Retry(t.Context(), "job-1", 0, func(_ context.Context, _ int) xretry.Outcome[int] {
			attempts++
			return xretry.Retry[int](fmt.Errorf("attempt %d: %w", attempts, errTransient))
		})
		require.NoError(t, err)

		// 2 次延迟额度 = 3 次尝试
		assert.Equal(t, 3, attempts)

		status, ok := inj.Status("job-1")
		require.True(t, ok)
		assert.True(t, status.IsFailure())
		assert.ErrorIs(t, status.Err(), errTransient)
		assert.Contains(t, status.Err().Error(), "attempt 3")
	})

	t.Run("PermanentFailureShortCircuits", func(t *testing.T) {
		errFatal := errors.New("fatal")
		inj := newRecordingInjector[string, int, int]()
		h, err := NewHandle[string, int, int](inj, xdelay.NoDelay{})
		require.NoError(t, err)

		var attempts int
		err = h.Retry(t.Context(), "job-1", 0, func(_ context.Context, _ int) xretry.Outcome[int] {
			attempts++
			return xretry.Fail[int](errFatal)
		})
		require.NoError(t, err)

		assert.Equal(t, 1, attempts)

		status, ok := inj.Status("job-1")
		require.True(t, ok)
		assert.True(t, status.IsFailure())
		assert.ErrorIs(t, status.Err(), errFatal)
	})

	t.Run("PendingWriteFailurePropagates", func(t *testing.T) {
		errStore := errors.New("store down")
		inj := &failingInjector[string, int, int]{
			MemoryInjector: NewMemoryInjector[string, int, int](),
			failAt:         1,
			err:            errStore,
		}
		h, err := NewHandle[string, int, int](inj, xdelay.NoDelay{})
		require.NoError(t, err)

		var attempts int
		err = h.Retry(t.Context(), "job-1", 0, func(_ context.Context, _ int) xretry.Outcome[int] {
			attempts++
			return xretry.OK(1)
		})
		assert.ErrorIs(t, err, errStore)
		// Pending 写入失败, 操作从未执行
		assert.Zero(t, attempts)
	})

	t.Run("TerminalWriteFailurePropagates", func(t *testing.T) {
		errStore := errors.New("store down")
		inj := &failingInjector[string, int, int]{
			MemoryInjector: NewMemoryInjector[string, int, int](),
			failAt:         2,
			err:            errStore,
		}
		h, err := NewHandle[string, int, int](inj, xdelay.NoDelay{})
		require.NoError(t, err)

		err = h.Retry(t.Context(), "job-1", 0, func(_ context.Context, _ int) xretry.Outcome[int] {
			return xretry.OK(1)
		})
		assert.ErrorIs(t, err, errStore)
	})

	t.Run("CancelDuringSleepLeavesPending", func(t *testing.T) {
		inj := newRecordingInjector[string, int, int]()
		h, err := NewHandle[string, int, int](inj, xdelay.NewFixedExact(time.Hour))
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(t.Context())

		start := time.Now()
		go func() {
			time.Sleep(20 * time.Millisecond)
			cancel()
		}()

		err = h.Retry(ctx, "job-1", 0, func(_ context.Context, _ int) xretry.Outcome[int] {
			return xretry.Retry[int](errTransient)
		})
		assert.ErrorIs(t, err, context.Canceled)
		assert.Less(t, time.Since(start), time.Second)

		status, ok := inj.Status("job-1")
		require.True(t, ok)
		assert.True(t, status.IsPending())
	})

	t.Run("NilGuards", func(t *testing.T) {
		h, err := NewHandle[string, int, int](NewMemoryInjector[string, int, int](), xdelay.NoDelay{})
		require.NoError(t, err)

		//nolint:staticcheck // 验证 nil 上下文防御
		err = h.Retry(nil, "job-1", 0, func(_ context.Context, _ int) xretry.Outcome[int] {
			return xretry.OK(0)
		})
		assert.ErrorIs(t, err, ErrNilContext)

		err = h.Retry(t.Context(), "job-1", 0, nil)
		assert.ErrorIs(t, err, ErrNilOperation)
	})
}

func TestHandleRetryPending(t *testing.T) {
	t.Run("RetriesAllPendingEntries", func(t *testing.T) {
		inj := NewMemoryInjector[string, int, int]()
		ctx := t.Context()

		for i := 1; i <= 5; i++ {
			require.NoError(t, inj.SaveStatus(ctx, fmt.Sprintf("job-%d", i), i, Pending[int]()))
		}
		require.NoError(t, inj.SaveStatus(ctx, "done", 99, Success(99)))

		h, err := NewHandle[string, int, int](inj, xdelay.NoDelay{})
		require.NoError(t, err)

		err = h.RetryPending(ctx, 2, func(_ context.Context, input int) xretry.Outcome[int] {
			return xretry.OK(input * 10)
		})
		require.NoError(t, err)

		for i := 1; i <= 5; i++ {
			status, ok := inj.Status(fmt.Sprintf("job-%d", i))
			require.True(t, ok)
			assert.True(t, status.IsSuccess())
			assert.Equal(t, i*10, status.Output())
		}

		pending, err := inj.LoadPending(ctx)
		require.NoError(t, err)
		assert.Empty(t, pending)
	})

	t.Run("EmptyStore", func(t *testing.T) {
		h, err := NewHandle[string, int, int](NewMemoryInjector[string, int, int](), xdelay.NoDelay{})
		require.NoError(t, err)

		err = h.RetryPending(t.Context(), 4, func(_ context.Context, input int) xretry.Outcome[int] {
			return xretry.OK(input)
		})
		assert.NoError(t, err)
	})
}

func TestHandleRetryStream(t *testing.T) {
	t.Run("ConcurrencyCapRespected", func(t *testing.T) {
		const limit = 3
		const jobs = 12

		inj := NewMemoryInjector[int, int, int]()
		h, err := NewHandle[int, int, int](inj, xdelay.NoDelay{})
		require.NoError(t, err)

		stream := make(chan Op[int, int], jobs)
		for i := 0; i < jobs; i++ {
			stream <- Op[int, int]{ID: i, Input: i}
		}
		close(stream)

		var inFlight, maxInFlight atomic.Int64
		err = h.RetryStream(t.Context(), stream, limit, func(_ context.Context, input int) xretry.Outcome[int] {
			cur := inFlight.Add(1)
			for {
				prev := maxInFlight.Load()
				if cur <= prev || maxInFlight.CompareAndSwap(prev, cur) {
					break
				}
			}
			time.Sleep(10 * time.Millisecond)
			inFlight.Add(-1)
			return xretry.OK(input)
		})
		require.NoError(t, err)

		assert.LessOrEqual(t, maxInFlight.Load(), int64(limit))
		assert.Equal(t, jobs, inj.Len())
	})

	t.Run("EpisodesInterleaveIndependently", func(t *testing.T) {
		inj := NewMemoryInjector[int, int, int]()
		h, err := NewHandle[int, int, int](inj, xdelay.Take(xdelay.NoDelay{}, 3))
		require.NoError(t, err)

		stream := make(chan Op[int, int], 4)
		for i := 0; i < 4; i++ {
			stream <- Op[int, int]{ID: i, Input: i}
		}
		close(stream)

		var failures atomic.Int64
		err = h.RetryStream(t.Context(), stream, 4, func(_ context.Context, input int) xretry.Outcome[int] {
			if failures.Add(1)%2 == 0 {
				return xretry.Retry[int](errors.New("flaky"))
			}
			return xretry.OK(input)
		})
		require.NoError(t, err)

		// 每个回合独立到达终态
		for i := 0; i < 4; i++ {
			status, ok := inj.Status(i)
			require.True(t, ok)
			assert.False(t, status.IsPending())
		}
	})

	t.Run("InjectorFailureCancelsRemaining", func(t *testing.T) {
		errStore := errors.New("store down")
		inj := &failingInjector[int, int, int]{
			MemoryInjector: NewMemoryInjector[int, int, int](),
			failAt:         3,
			err:            errStore,
		}
		h, err := NewHandle[int, int, int](inj, xdelay.NoDelay{})
		require.NoError(t, err)

		stream := make(chan Op[int, int], 8)
		for i := 0; i < 8; i++ {
			stream <- Op[int, int]{ID: i, Input: i}
		}
		close(stream)

		err = h.RetryStream(t.Context(), stream, 1, func(_ context.Context, input int) xretry.Outcome[int] {
			return xretry.OK(input)
		})
		assert.ErrorIs(t, err, errStore)
	})

	t.Run("NilGuards", func(t *testing.T) {
		h, err := NewHandle[int, int, int](NewMemoryInjector[int, int, int](), xdelay.NoDelay{})
		require.NoError(t, err)

		op := func(_ context.Context, input int) xretry.Outcome[int] { return xretry.OK(input) }

		err = h.RetryStream(t.Context(), nil, 1, op)
		assert.ErrorIs(t, err, ErrNilStream)

		stream := make(chan Op[int, int])
		close(stream)
		err = h.RetryStream(t.Context(), stream, 1, nil)
		assert.ErrorIs(t, err, ErrNilOperation)
	})
}
