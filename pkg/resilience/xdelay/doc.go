// Package xdelay 提供重试延迟序列的策略和组合器。
//
// # 设计理念
//
// xdelay 将重试间隔建模为惰性的、可能无限的延迟序列：
//   - Sequence：单次消费的序列游标，每次失败的尝试拉取一个延迟值
//   - Template：可重复实例化的序列模板，每次 Sequence() 返回独立游标
//
// 策略本身只负责产生延迟值，不关心重试的执行；执行协议见 xretry 包，
// 持久化重试见 xpersist 包。
//
// # 延迟策略
//
// 内置五种策略：
//   - Fixed：固定延迟
//   - NoDelay：零延迟（立即重试）
//   - Exponential：指数增长，溢出时饱和
//   - Fibonacci：斐波那契增长（前两项之和），饱和加法
//   - Range：毫秒区间内均匀随机
//
// # 组合器
//
//   - Bound：累计延迟预算，超出预算即终止序列
//   - Take：限制序列产生的延迟个数
//
// 组合器包装任意 Template 并保持惰性，策略与组合器可自由叠加。
//
// # 抖动
//
// New 系列构造函数在构造时对基准延迟应用一次完全抖动（[0, base) 内均匀
// 缩放），使大量并发调用方不会以相同节奏重试（避免 thundering herd）。
// NewXxxExact 系列不做抖动，用于确定性测试或由调用方自行组合抖动。
// Jitter / JitterRand 可单独使用。
//
// # 随机数
//
// 默认随机源使用 crypto/rand，确保安全随机性；单次抖动耗时约 50-100ns，
// 对重试场景（通常每秒最多几次）完全可接受。需要确定性时使用
// JitterRand 注入 math/rand/v2 的 *rand.Rand。
package xdelay
