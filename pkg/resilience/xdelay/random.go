package xdelay

import (
	"fmt"
	"math"
	"time"
)

// maxMillis 可无损转换为 time.Duration 的最大毫秒数。
const maxMillis = uint64(math.MaxInt64 / int64(time.Millisecond))

// Range 随机区间延迟策略：每次重试从毫秒区间内独立均匀抽取一个延迟。
//
// 与 New 系列构造函数的"构造时抖动一次"不同，Range 的每次拉取都是
// 一次新的随机抽样。
type Range struct {
	min       uint64
	max       uint64
	inclusive bool
}

// NewRangeExclusive 创建 [minMillis, maxMillis) 区间的随机延迟策略。
//
// minMillis >= maxMillis 属于调用方契约违反，直接 panic。
// 这是构造期的程序错误，不作为可恢复的运行期错误处理；
// 来自配置文件等运行期输入的区间应先经 Config.Validate 校验。
func NewRangeExclusive(minMillis, maxMillis uint64) *Range {
	if minMillis >= maxMillis {
		panic(fmt.Sprintf("xdelay: invalid range [%d, %d): min must be less than max", minMillis, maxMillis))
	}
	return &Range{min: minMillis, max: maxMillis, inclusive: false}
}

// NewRangeInclusive 创建 [minMillis, maxMillis] 区间的随机延迟策略。
//
// minMillis > maxMillis 属于调用方契约违反，直接 panic。
// minMillis == maxMillis 合法，退化为固定延迟。
func NewRangeInclusive(minMillis, maxMillis uint64) *Range {
	if minMillis > maxMillis {
		panic(fmt.Sprintf("xdelay: invalid range [%d, %d]: min must not exceed max", minMillis, maxMillis))
	}
	return &Range{min: minMillis, max: maxMillis, inclusive: true}
}

// Sequence 实现 Template。Range 无游标状态，直接返回自身。
func (r *Range) Sequence() Sequence {
	return r
}

func (r *Range) Next() (time.Duration, bool) {
	return millisToDuration(r.draw()), true
}

// draw 抽取一个区间内的毫秒数。
func (r *Range) draw() uint64 {
	span := r.max - r.min
	if r.inclusive {
		if span == math.MaxUint64 {
			// [0, MaxUint64] 全区间，span+1 会回绕
			return randomUint64()
		}
		span++
	}
	return r.min + randomUint64n(span)
}

// millisToDuration 毫秒转时长，超出可表示范围时饱和到最大时长。
func millisToDuration(ms uint64) time.Duration {
	if ms > maxMillis {
		return math.MaxInt64
	}
	return time.Duration(ms) * time.Millisecond
}

var (
	_ Template = (*Range)(nil)
	_ Sequence = (*Range)(nil)
)
