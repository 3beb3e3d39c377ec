package xdelay

import (
	"math"
	"time"
)

// Sequence 延迟序列游标。
//
// 序列按从左到右的顺序被消费，每次失败的重试尝试拉取一个值。
// 序列不要求可重置；需要多个独立游标时使用 Template。
type Sequence interface {
	// Next 返回下一个等待时长。
	// 第二个返回值为 false 表示序列耗尽，不允许继续重试；
	// 一旦返回 false，后续每次调用都必须返回 false。
	Next() (time.Duration, bool)
}

// Template 可重复实例化的延迟序列模板。
//
// 每次调用 Sequence 返回一个独立的游标，互不共享状态。
// xpersist.Handle 依赖此性质为每个重试回合克隆新游标。
type Template interface {
	Sequence() Sequence
}

// Take 限制模板产生的延迟个数，最多 n 个。
// n <= 0 时序列立即耗尽（即不允许任何重试）。
func Take(inner Template, n int) Template {
	return &taken{inner: inner, n: n}
}

type taken struct {
	inner Template
	n     int
}

func (t *taken) Sequence() Sequence {
	return &takenSeq{inner: t.inner.Sequence(), remaining: t.n}
}

type takenSeq struct {
	inner     Sequence
	remaining int
}

func (s *takenSeq) Next() (time.Duration, bool) {
	if s.remaining <= 0 {
		return 0, false
	}
	d, ok := s.inner.Next()
	if !ok {
		s.remaining = 0
		return 0, false
	}
	s.remaining--
	return d, true
}

// saturatingAdd 饱和加法：溢出时返回最大可表示时长。
// 要求 a、b 非负，包内所有策略产生的延迟都满足此前置条件。
func saturatingAdd(a, b time.Duration) time.Duration {
	if a > math.MaxInt64-b {
		return math.MaxInt64
	}
	return a + b
}

var (
	_ Template = (*taken)(nil)
	_ Sequence = (*takenSeq)(nil)
)
