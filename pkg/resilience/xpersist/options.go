package xpersist

import "go.opentelemetry.io/otel/metric"

// Options 句柄配置选项
type Options struct {
	meterProvider metric.MeterProvider
}

// Option 配置选项函数
type Option func(*Options)

// defaultOptions 返回默认配置。
// 设计决策: 默认不上报指标而非使用全局 MeterProvider，
// 库代码不应隐式依赖进程级全局状态。
func defaultOptions() *Options {
	return &Options{}
}

// WithMeterProvider 启用 OpenTelemetry 指标上报。
// 传入 nil 保持指标关闭。
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(o *Options) {
		o.meterProvider = mp
	}
}
