package xretry

import (
	"context"
	"time"

	"github.com/omeyang/retryblock/pkg/resilience/xdelay"
)

// Do 执行带重试的操作，直到成功、永久失败或延迟序列耗尽。
//
// 状态机：每次调用 op 得到一个 Outcome；
//   - OK：返回成功值
//   - Fail：立即返回错误，不消费延迟
//   - Retry：从 delays 拉取一个延迟值并阻塞等待后重试；
//     序列耗尽时返回最后一次的瞬时错误
//
// delays 是单次消费的游标，调用方每次执行应传入新的 Sequence
// （通常来自 Template.Sequence()）。序列有限时 Do 必然在有限时间内
// 返回；序列无限且操作始终返回 Retry 时 Do 不会返回。
func Do[T any](delays xdelay.Sequence, op func() Outcome[T]) (T, error) {
	var zero T
	if delays == nil {
		return zero, ErrNilSequence
	}
	if op == nil {
		return zero, ErrNilOperation
	}

	for {
		out := op()
		switch out.kind {
		case kindOK:
			return out.value, nil
		case kindFail:
			return zero, out.err
		default:
			d, ok := delays.Next()
			if !ok {
				// 重试预算耗尽，最后一次瞬时错误成为最终错误
				return zero, out.err
			}
			time.Sleep(d)
		}
	}
}

// DoContext 执行带重试的操作，语义与 Do 相同，但每个等待点都响应
// ctx 取消：等待期间 ctx 被取消时立即返回 ctx 的错误。
//
// 操作本身的执行不会被强制中断；op 应自行观察传入的 ctx。
func DoContext[T any](ctx context.Context, delays xdelay.Sequence, op func(ctx context.Context) Outcome[T]) (T, error) {
	var zero T
	if ctx == nil {
		return zero, ErrNilContext
	}
	if delays == nil {
		return zero, ErrNilSequence
	}
	if op == nil {
		return zero, ErrNilOperation
	}

	for {
		if err := ctx.Err(); err != nil {
			return zero, err
		}

		out := op(ctx)
		switch out.kind {
		case kindOK:
			return out.value, nil
		case kindFail:
			return zero, out.err
		default:
			d, ok := delays.Next()
			if !ok {
				return zero, out.err
			}
			if err := sleepContext(ctx, d); err != nil {
				return zero, err
			}
		}
	}
}

// sleepContext 阻塞 d 时长，期间 ctx 取消时提前返回 ctx 的错误。
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
