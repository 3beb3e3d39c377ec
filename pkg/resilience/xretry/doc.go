// Package xretry 提供由延迟序列驱动的重试执行协议。
//
// # 设计理念
//
// xretry 不维护"第几次尝试"之类的计数状态，重试预算完全由 xdelay
// 的延迟序列表达：每次瞬时失败消费序列中的一个延迟值，序列耗尽即
// 停止重试。这使策略（产生延迟）与执行（消费延迟）彻底解耦。
//
// # 三态结果
//
// 一次尝试的结果是三态的 Outcome：
//   - OK(v)：成功，停止
//   - Retry(err)：瞬时失败，消费一个延迟后重试
//   - Fail(err)：永久失败，立即停止，不消费延迟
//
// FromError 将普通的 (value, error) 二态结果转换为 Outcome，默认把
// 错误视为瞬时失败；标记为 PermanentError 或 retry-go Unrecoverable
// 的错误转换为永久失败。
//
// # 执行入口
//
//   - Do：同步执行，time.Sleep 阻塞等待
//   - DoContext：上下文感知执行，每个等待点都可被 ctx 取消中断
//   - Perpetual / PerpetualContext：永久重试直到成功（延迟调度为
//     100ms 抖动指数、1 小时累计预算；调度耗尽属于调用方契约违反，
//     直接 panic）
//
// # retry-go 桥接
//
// DelayType 将延迟序列模板适配为 [avast/retry-go/v5] 的
// DelayTypeFunc，使 xdelay 策略可以驱动 retry-go 的 Retrier。
//
// [avast/retry-go/v5]: https://github.com/avast/retry-go
package xretry
