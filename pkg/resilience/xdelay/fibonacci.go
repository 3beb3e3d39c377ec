package xdelay

import "time"

// Fibonacci 斐波那契延迟策略：每次重试的延迟是前两次延迟之和。
//
// 相比指数策略，斐波那契序列增长更平缓；在部分场景（如广播重传）下
// 能取得更好的吞吐表现。加法饱和：达到最大可表示时长后保持不变。
type Fibonacci struct {
	initial time.Duration
}

// NewFibonacci 创建斐波那契延迟策略，构造时对 base 应用一次完全抖动。
// 序列前两项均为抖动后的时长。
func NewFibonacci(base time.Duration) *Fibonacci {
	return &Fibonacci{initial: Jitter(base)}
}

// NewFibonacciExact 创建斐波那契延迟策略，不做抖动。
// base < 0 时按 0 处理。
func NewFibonacciExact(base time.Duration) *Fibonacci {
	if base < 0 {
		base = 0
	}
	return &Fibonacci{initial: base}
}

// Sequence 实现 Template，返回独立游标。
func (f *Fibonacci) Sequence() Sequence {
	return &fibonacciSeq{curr: f.initial, next: f.initial}
}

type fibonacciSeq struct {
	curr time.Duration
	next time.Duration
}

func (s *fibonacciSeq) Next() (time.Duration, bool) {
	d := s.curr
	s.curr, s.next = s.next, saturatingAdd(s.curr, s.next)
	return d, true
}

var (
	_ Template = (*Fibonacci)(nil)
	_ Sequence = (*fibonacciSeq)(nil)
)
