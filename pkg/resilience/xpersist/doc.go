// Package xpersist 提供带持久化状态的重试句柄。
//
// # 设计理念
//
// xpersist 在 xretry 的执行协议之上为每个标识符维护可持久化的重试
// 状态（Status），使重试进度能够在进程重启后恢复：
//   - 回合开始前写入 Pending
//   - 协议到达终态后恰好写入一次 Success 或 Failure
//
// 持久化本身不由本包实现：Injector 是一个能力接口，由调用方绑定到
// 具体存储（数据库、文件、内存 map 等）。go-redis 和 mongo-driver
// 的现成绑定见 pkg/storage/xstatus。
//
// # 并发模型
//
// RetryStream / RetryPending 以有限并发度在多个标识符之间扇出重试
// 回合：回合之间完全独立、可任意交错，完成顺序不作保证。共享的
// Injector 通过互斥锁串行访问，锁只覆盖单次注入器调用，不会跨越
// 回合内的等待（睡眠期间其他回合不被阻塞）。
//
// # 指标
//
// 通过 WithMeterProvider 可选启用 OpenTelemetry 指标（回合终态计数、
// 尝试次数计数）；未配置时不产生任何观测开销。
package xpersist
