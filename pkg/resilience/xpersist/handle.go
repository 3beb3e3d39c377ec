package xpersist

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/omeyang/retryblock/pkg/resilience/xdelay"
)

// Handle 持久化重试句柄。
//
// 句柄把一个延迟模板和一个注入器组合在一起，对任意多个标识符执行
// 带状态记录的重试回合。每个回合从模板派生独立的延迟游标，回合之间
// 互不影响。句柄可被多个 goroutine 并发使用。
type Handle[ID comparable, I, O any] struct {
	mu       sync.Mutex
	injector Injector[ID, I, O]
	template xdelay.Template
	metrics  *handleMetrics
}

// NewHandle 创建持久化重试句柄。
func NewHandle[ID comparable, I, O any](
	injector Injector[ID, I, O],
	template xdelay.Template,
	opts ...Option,
) (*Handle[ID, I, O], error) {
	if injector == nil {
		return nil, ErrNilInjector
	}
	if template == nil {
		return nil, ErrNilTemplate
	}

	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	metrics, err := newHandleMetrics(options.meterProvider)
	if err != nil {
		return nil, err
	}

	return &Handle[ID, I, O]{
		injector: injector,
		template: template,
		metrics:  metrics,
	}, nil
}

// Retry 对单个标识符执行一次完整的重试回合。
//
// 回合流程：先持久化 Pending，再从模板派生新的延迟游标并按 xretry
// 协议反复调用 op，到达终态后持久化 Success 或 Failure。操作本身的
// 失败被记录在状态里，不会成为返回值；返回的 error 只反映注入器
// 写入失败或上下文取消。
//
// 设计决策: 上下文取消时保留 Pending 状态直接返回，不写入终态——
// 中断的回合之后可由 RetryPending 恢复，这正是持久化状态的用途。
func (h *Handle[ID, I, O]) Retry(ctx context.Context, id ID, input I, op Operation[I, O]) error {
	if ctx == nil {
		return ErrNilContext
	}
	if op == nil {
		return ErrNilOperation
	}

	if err := h.saveStatus(ctx, id, input, Pending[O]()); err != nil {
		return err
	}

	delays := h.template.Sequence()

	var status Status[O]
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		out := op(ctx, input)
		h.metrics.recordAttempt(ctx)

		if out.IsOK() {
			status = Success(out.Value())
			break
		}
		if out.IsFail() {
			status = Failure[O](out.Err())
			break
		}

		d, ok := delays.Next()
		if !ok {
			status = Failure[O](out.Err())
			break
		}
		if err := sleepContext(ctx, d); err != nil {
			return err
		}
	}

	if err := h.saveStatus(ctx, id, input, status); err != nil {
		return err
	}
	h.metrics.recordEpisode(ctx, status.IsSuccess())
	return nil
}

// RetryPending 加载注入器中所有 Pending 的 (标识符, 输入) 对，
// 以最多 limit 个并发回合重试它们。
func (h *Handle[ID, I, O]) RetryPending(ctx context.Context, limit int, op Operation[I, O]) error {
	if ctx == nil {
		return ErrNilContext
	}

	pending, err := h.loadPending(ctx)
	if err != nil {
		return err
	}

	stream := make(chan Op[ID, I], len(pending))
	for _, item := range pending {
		stream <- item
	}
	close(stream)

	return h.RetryStream(ctx, stream, limit, op)
}

// RetryStream 消费一个 (标识符, 输入) 流，以最多 limit 个并发回合
// 重试其中的每一项，直到流关闭且所有回合结束。
//
// limit 小于 1 时按 1 处理。任一回合返回错误（注入器失败或取消）
// 会取消其余回合并向调用方传播首个错误。
func (h *Handle[ID, I, O]) RetryStream(ctx context.Context, stream <-chan Op[ID, I], limit int, op Operation[I, O]) error {
	if ctx == nil {
		return ErrNilContext
	}
	if stream == nil {
		return ErrNilStream
	}
	if op == nil {
		return ErrNilOperation
	}
	if limit < 1 {
		limit = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

recv:
	for {
		select {
		case <-gctx.Done():
			break recv
		case item, ok := <-stream:
			if !ok {
				break recv
			}
			g.Go(func() error {
				return h.Retry(gctx, item.ID, item.Input, op)
			})
		}
	}

	return g.Wait()
}

// saveStatus 串行化对注入器的写入。锁只覆盖这一次调用，
// 不跨越回合内的任何等待。
func (h *Handle[ID, I, O]) saveStatus(ctx context.Context, id ID, input I, status Status[O]) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.injector.SaveStatus(ctx, id, input, status)
}

func (h *Handle[ID, I, O]) loadPending(ctx context.Context) ([]Op[ID, I], error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.injector.LoadPending(ctx)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
