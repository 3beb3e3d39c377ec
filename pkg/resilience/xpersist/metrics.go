package xpersist

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// scopeName 指标作用域名称
const scopeName = "github.com/omeyang/retryblock/pkg/resilience/xpersist"

// handleMetrics 句柄级指标。nil 接收者表示指标关闭，所有方法为空操作。
type handleMetrics struct {
	episodes metric.Int64Counter
	attempts metric.Int64Counter
}

func newHandleMetrics(mp metric.MeterProvider) (*handleMetrics, error) {
	if mp == nil {
		return nil, nil
	}

	meter := mp.Meter(scopeName)

	episodes, err := meter.Int64Counter("retryblock.episodes",
		metric.WithDescription("完成的重试回合数，按终态分类"))
	if err != nil {
		return nil, err
	}

	attempts, err := meter.Int64Counter("retryblock.attempts",
		metric.WithDescription("重试操作的尝试次数"))
	if err != nil {
		return nil, err
	}

	return &handleMetrics{episodes: episodes, attempts: attempts}, nil
}

func (m *handleMetrics) recordAttempt(ctx context.Context) {
	if m == nil {
		return
	}
	m.attempts.Add(ctx, 1)
}

func (m *handleMetrics) recordEpisode(ctx context.Context, success bool) {
	if m == nil {
		return
	}
	status := "failure"
	if success {
		status = "success"
	}
	m.episodes.Add(ctx, 1, metric.WithAttributes(attribute.String("status", status)))
}
