package xdelay

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBounded(t *testing.T) {
	t.Run("StopsBeforeExceedingBudget", func(t *testing.T) {
		// 1+2=3 <= 4，下一个值 4 会使累计和达到 7 > 4，不产出
		seq := NewExponentialExactWithFactor(time.Second, 2.0).Bounded(4 * time.Second).Sequence()

		d, ok := seq.Next()
		assert.True(t, ok)
		assert.Equal(t, time.Second, d)

		d, ok = seq.Next()
		assert.True(t, ok)
		assert.Equal(t, 2*time.Second, d)

		_, ok = seq.Next()
		assert.False(t, ok)
	})

	t.Run("ExhaustionIsPermanent", func(t *testing.T) {
		seq := Bound(NewFixedExact(3*time.Second), 4*time.Second).Sequence()

		_, ok := seq.Next()
		assert.True(t, ok)
		_, ok = seq.Next()
		assert.False(t, ok)

		// 终止后即使后续内层值变小也不再产出
		for i := 0; i < 3; i++ {
			_, ok = seq.Next()
			assert.False(t, ok)
		}
	})

	t.Run("ValueReachingBudgetExactlyIsYielded", func(t *testing.T) {
		seq := Bound(NewFixedExact(2*time.Second), 4*time.Second).Sequence()

		d, ok := seq.Next()
		assert.True(t, ok)
		assert.Equal(t, 2*time.Second, d)

		d, ok = seq.Next()
		assert.True(t, ok)
		assert.Equal(t, 2*time.Second, d)

		_, ok = seq.Next()
		assert.False(t, ok)
	})

	t.Run("FirstValueOverBudgetYieldsNothing", func(t *testing.T) {
		seq := Bound(NewFixedExact(10*time.Second), time.Second).Sequence()
		_, ok := seq.Next()
		assert.False(t, ok)
	})

	t.Run("AccumulatorOverflowTerminates", func(t *testing.T) {
		// 第一个最大值恰好用满预算；第二个最大值使累计和溢出，
		// 溢出按预算耗尽处理而不是回绕
		seq := Bound(NewExponentialExactWithFactor(math.MaxInt64, 1.0), math.MaxInt64).Sequence()

		d, ok := seq.Next()
		assert.True(t, ok)
		assert.Equal(t, time.Duration(math.MaxInt64), d)

		_, ok = seq.Next()
		assert.False(t, ok)
	})

	t.Run("SumNeverExceedsBudget", func(t *testing.T) {
		budget := 10 * time.Second
		seq := Bound(NewFibonacciExact(time.Second), budget).Sequence()

		var sum time.Duration
		for {
			d, ok := seq.Next()
			if !ok {
				break
			}
			sum += d
		}
		assert.LessOrEqual(t, sum, budget)
	})

	t.Run("InnerExhaustionPropagates", func(t *testing.T) {
		seq := Bound(Take(NewFixedExact(time.Millisecond), 2), time.Hour).Sequence()
		_, ok := seq.Next()
		assert.True(t, ok)
		_, ok = seq.Next()
		assert.True(t, ok)
		_, ok = seq.Next()
		assert.False(t, ok)
	})

	t.Run("NegativeBudgetMeansNoDelays", func(t *testing.T) {
		_, ok := Bound(NoDelay{}, -time.Second).Sequence().Next()
		// NoDelay 产出 0，0 <= 0 预算仍可产出零延迟
		assert.True(t, ok)
	})

	t.Run("IndependentCursors", func(t *testing.T) {
		tmpl := Bound(NewFixedExact(3*time.Second), 4*time.Second)
		a := tmpl.Sequence()
		b := tmpl.Sequence()

		a.Next()
		_, ok := a.Next()
		assert.False(t, ok)

		// b 的累计和独立于 a
		_, ok = b.Next()
		assert.True(t, ok)
	})
}
