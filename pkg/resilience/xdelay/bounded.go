package xdelay

import (
	"math"
	"time"
)

// Bounded 累计延迟预算组合器：包装任意模板，使其游标在累计延迟
// 将要超出预算时终止。
//
// 预算检查发生在产出之前：会把累计和推过预算的那个值不会被产出，
// 序列就此终止（过滤式包装，而非截断式切片）。一旦游标决定终止，
// 后续每次拉取都返回耗尽——包括累计和运算溢出的情形：溢出被视为
// 预算耗尽，而不是无限额度。
type Bounded struct {
	inner Template
	max   time.Duration
}

// Bound 以 max 为累计延迟预算包装 inner。
// max < 0 时按 0 处理（即不允许任何延迟）。
func Bound(inner Template, max time.Duration) *Bounded {
	if max < 0 {
		max = 0
	}
	return &Bounded{inner: inner, max: max}
}

// Sequence 实现 Template，返回独立游标（独立的累计和）。
func (b *Bounded) Sequence() Sequence {
	return &boundedSeq{inner: b.inner.Sequence(), max: b.max}
}

type boundedSeq struct {
	inner Sequence
	max   time.Duration
	acc   time.Duration
	done  bool
}

func (s *boundedSeq) Next() (time.Duration, bool) {
	if s.done {
		return 0, false
	}

	d, ok := s.inner.Next()
	if !ok {
		s.done = true
		return 0, false
	}

	// 累计和溢出等同于预算耗尽。先于加法判断，保证第一个值同时超出
	// 预算和可表示范围时也正确终止，而不是回绕成一个小的合法累计和。
	if s.acc > math.MaxInt64-d {
		s.done = true
		return 0, false
	}

	sum := s.acc + d
	if sum > s.max {
		s.done = true
		return 0, false
	}

	s.acc = sum
	return d, true
}

var (
	_ Template = (*Bounded)(nil)
	_ Sequence = (*boundedSeq)(nil)
)
