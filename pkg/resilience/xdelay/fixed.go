package xdelay

import "time"

// Fixed 固定延迟策略：每次重试等待相同的时长。
type Fixed struct {
	d time.Duration
}

// NewFixed 创建固定延迟策略，构造时对 base 应用一次完全抖动。
// 同一模板的所有游标共享抖动后的时长。
func NewFixed(base time.Duration) *Fixed {
	return &Fixed{d: Jitter(base)}
}

// NewFixedExact 创建固定延迟策略，不做抖动。
// base < 0 时按 0 处理。
func NewFixedExact(base time.Duration) *Fixed {
	if base < 0 {
		base = 0
	}
	return &Fixed{d: base}
}

// Sequence 实现 Template。Fixed 无游标状态，直接返回自身。
func (f *Fixed) Sequence() Sequence {
	return f
}

func (f *Fixed) Next() (time.Duration, bool) {
	return f.d, true
}

// NoDelay 零延迟策略：每次重试立即进行。
type NoDelay struct{}

// Sequence 实现 Template。
func (NoDelay) Sequence() Sequence {
	return NoDelay{}
}

func (NoDelay) Next() (time.Duration, bool) {
	return 0, true
}

var (
	_ Template = (*Fixed)(nil)
	_ Sequence = (*Fixed)(nil)
	_ Template = NoDelay{}
	_ Sequence = NoDelay{}
)
