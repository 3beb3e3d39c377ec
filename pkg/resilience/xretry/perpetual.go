package xretry

import (
	"context"
	"time"

	"github.com/omeyang/retryblock/pkg/resilience/xdelay"
)

const (
	// perpetualBase 永久重试的指数延迟基准。
	perpetualBase = 100 * time.Millisecond

	// perpetualBudget 永久重试的累计延迟预算。
	perpetualBudget = time.Hour
)

// perpetualSequence 返回永久重试使用的延迟游标：
// 100ms 抖动指数增长，1 小时累计预算。
func perpetualSequence() xdelay.Sequence {
	return xdelay.NewExponential(perpetualBase).Bounded(perpetualBudget).Sequence()
}

// Perpetual 永久重试操作直到成功，返回成功值。
//
// 二态结果：任何错误都触发重试，没有永久失败的出口。延迟调度的
// 累计预算为 1 小时；调度在成功之前耗尽说明操作长时间无法恢复，
// 这违反了"最终会成功"的调用方契约，直接 panic 而不是静默继续。
func Perpetual[T any](op func() (T, error)) T {
	if op == nil {
		panic(ErrNilOperation)
	}

	seq := perpetualSequence()
	for {
		v, err := op()
		if err == nil {
			return v
		}
		d, ok := seq.Next()
		if !ok {
			panic("xretry: perpetual delay schedule exhausted before success")
		}
		time.Sleep(d)
	}
}

// PerpetualContext 与 Perpetual 相同，但每个等待点都响应 ctx 取消；
// ctx 取消时返回 ctx 的错误。
func PerpetualContext[T any](ctx context.Context, op func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	if ctx == nil {
		return zero, ErrNilContext
	}
	if op == nil {
		return zero, ErrNilOperation
	}

	seq := perpetualSequence()
	for {
		if err := ctx.Err(); err != nil {
			return zero, err
		}

		v, err := op(ctx)
		if err == nil {
			return v, nil
		}
		d, ok := seq.Next()
		if !ok {
			panic("xretry: perpetual delay schedule exhausted before success")
		}
		if err := sleepContext(ctx, d); err != nil {
			return zero, err
		}
	}
}
