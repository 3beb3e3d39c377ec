package xpersist

import (
	"context"

	"github.com/omeyang/retryblock/pkg/resilience/xretry"
)

// Op 一个待重试的 (标识符, 输入) 对。
type Op[ID comparable, I any] struct {
	ID    ID
	Input I
}

// Injector 持久化注入器能力接口，由调用方绑定到具体存储实现。
//
// 两个方法都可能执行持久化 I/O，必须接受 ctx 并尊重取消；本包不
// 假设它们同步完成，慢注入器只会拖慢回合，不会使其失败。注入器
// 返回的错误不由本包解释，原样向 Retry / RetryStream 的调用方传播。
//
// RetryStream 会从最多 concurrencyLimit 个并发回合中访问注入器；
// Handle 已用互斥锁把这些访问串行化，实现无须自带并发保护。
type Injector[ID comparable, I, O any] interface {
	// LoadPending 返回所有状态为 Pending 的 (标识符, 输入) 对。
	LoadPending(ctx context.Context) ([]Op[ID, I], error)

	// SaveStatus 保存一个标识符的重试状态。
	SaveStatus(ctx context.Context, id ID, input I, status Status[O]) error
}

// Operation 一次重试回合中被反复调用的操作。
// 每次尝试调用一次，结果为三态 Outcome（见 xretry 包）。
type Operation[I, O any] func(ctx context.Context, input I) xretry.Outcome[O]
