package xdelay

import (
	"crypto/rand"
	"encoding/binary"
	"math"
	mrand "math/rand/v2"
	"time"
)

const (
	floatBits  = 53
	floatScale = 1.0 / (1 << floatBits)
)

// randomFloat64 返回 [0.0, 1.0) 范围内的随机浮点数。
// 使用 crypto/rand 确保高质量随机数。
func randomFloat64() float64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// crypto/rand 失败表示系统随机数源不可用，返回 0 作为安全默认值（无抖动）
		return 0
	}
	return float64(binary.LittleEndian.Uint64(buf[:])>>11) * floatScale
}

// randomUint64 返回均匀分布的随机 uint64。
func randomUint64() uint64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0
	}
	return binary.LittleEndian.Uint64(buf[:])
}

// randomUint64n 返回 [0, n) 范围内的均匀随机数。
// 使用拒绝采样消除模偏差。n == 0 时返回 0。
func randomUint64n(n uint64) uint64 {
	if n == 0 {
		return 0
	}
	// 丢弃落入不完整区间的样本，保证各余数等概率
	limit := math.MaxUint64 - math.MaxUint64%n
	for {
		if v := randomUint64(); v < limit {
			return v % n
		}
	}
}

// Jitter 对时长应用完全抖动，返回 [0, d) 内均匀分布的时长。
// d <= 0 时返回 0。
//
// 用于打散大量并发调用方的重试节奏，避免同步重试造成的压力尖峰。
func Jitter(d time.Duration) time.Duration {
	if d <= 0 {
		return 0
	}
	return time.Duration(float64(d) * randomFloat64())
}

// JitterRand 与 Jitter 相同，但使用调用方注入的随机源。
// 主要用于需要确定性抖动的测试场景。
func JitterRand(d time.Duration, r *mrand.Rand) time.Duration {
	if d <= 0 {
		return 0
	}
	return time.Duration(float64(d) * r.Float64())
}
