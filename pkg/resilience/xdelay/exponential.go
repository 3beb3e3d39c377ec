package xdelay

import (
	"math"
	"time"
)

// Exponential 指数延迟策略：每次重试的延迟是上一次乘以固定因子。
//
// 增长在浮点域计算；当乘积溢出时长范围或产生非有限/负数结果时，
// 当前值保持不变（饱和，不报错），序列退化为重复最大已达到的延迟。
type Exponential struct {
	initial time.Duration
	factor  float64
}

// NewExponential 创建指数延迟策略，构造时对 base 应用一次完全抖动。
// 因子默认为 base 的毫秒数（以浮点表示）。
func NewExponential(base time.Duration) *Exponential {
	return NewExponentialWithFactor(base, defaultFactor(base))
}

// NewExponentialWithFactor 创建带抖动的指数延迟策略，并指定增长因子。
func NewExponentialWithFactor(base time.Duration, factor float64) *Exponential {
	return &Exponential{initial: Jitter(base), factor: factor}
}

// NewExponentialExact 创建指数延迟策略，不做抖动。
// 因子默认为 base 的毫秒数（以浮点表示）。
func NewExponentialExact(base time.Duration) *Exponential {
	return NewExponentialExactWithFactor(base, defaultFactor(base))
}

// NewExponentialExactWithFactor 创建不带抖动的指数延迟策略，并指定增长因子。
// base < 0 时按 0 处理。
func NewExponentialExactWithFactor(base time.Duration, factor float64) *Exponential {
	if base < 0 {
		base = 0
	}
	return &Exponential{initial: base, factor: factor}
}

// defaultFactor 默认增长因子：基准时长的毫秒数。
// 亚毫秒基准的默认因子为 0，序列在第二项即衰减为零延迟；
// 此时调用方应显式使用 WithFactor 变体。
func defaultFactor(base time.Duration) float64 {
	return float64(base.Milliseconds())
}

// Bounded 以 max 为累计延迟预算包装此策略，等价于 Bound(e, max)。
func (e *Exponential) Bounded(max time.Duration) Template {
	return Bound(e, max)
}

// Sequence 实现 Template，返回独立游标。
func (e *Exponential) Sequence() Sequence {
	return &exponentialSeq{current: e.initial, factor: e.factor}
}

type exponentialSeq struct {
	current time.Duration
	factor  float64
}

func (s *exponentialSeq) Next() (time.Duration, bool) {
	d := s.current

	// 在纳秒域做浮点乘法；结果非有限、为负或超出 int64 范围时
	// 保持 current 不变（饱和）
	next := float64(s.current) * s.factor
	if !math.IsNaN(next) && !math.IsInf(next, 0) && next >= 0 && next < float64(math.MaxInt64) {
		s.current = time.Duration(next)
	}

	return d, true
}

var (
	_ Template = (*Exponential)(nil)
	_ Sequence = (*exponentialSeq)(nil)
)
