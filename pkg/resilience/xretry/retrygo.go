package xretry

import (
	"sync"
	"time"

	retry "github.com/avast/retry-go/v5"

	"github.com/omeyang/retryblock/pkg/resilience/xdelay"
)

// 复用 retry-go 的不可恢复错误标记，使两套 API 的错误分类一致：
// Unrecoverable 标记的错误在 FromError 中转换为永久失败。
var (
	// Unrecoverable 将错误标记为不可恢复（不再重试）。
	Unrecoverable = retry.Unrecoverable

	// IsRecoverable 检查错误是否可恢复。
	IsRecoverable = retry.IsRecoverable
)

// DelayType 将延迟序列模板适配为 retry-go 的 DelayTypeFunc，
// 使 xdelay 策略可以驱动 retry-go 的 Retrier：
//
//	retrier := retry.New(
//	    retry.Attempts(5),
//	    retry.DelayType(xretry.DelayType(xdelay.NewFibonacciExact(100*time.Millisecond))),
//	    retry.LastErrorOnly(true),
//	)
//
// 返回的函数内部持有一个游标，为一次性使用：每个 Retrier 实例应
// 调用 DelayType 获取独立的适配函数，复用会导致重试预算互相干扰。
//
// 设计决策: retry-go 的 DelayTypeFunc 无法表达"序列耗尽"，耗尽后
// 退化为零延迟；重试次数上限应由 retry.Attempts 另行控制。
func DelayType(tmpl xdelay.Template) retry.DelayTypeFunc {
	seq := tmpl.Sequence()
	var mu sync.Mutex
	return func(_ uint, _ error, _ retry.DelayContext) time.Duration {
		mu.Lock()
		defer mu.Unlock()
		d, ok := seq.Next()
		if !ok {
			return 0
		}
		return d
	}
}
