package xpersist

import (
	"context"
	"sync"
)

// MemoryInjector 基于内存 map 的注入器参考实现。
// 适合测试和单进程场景；跨进程持久化见 pkg/storage/xstatus。
type MemoryInjector[ID comparable, I, O any] struct {
	mu      sync.RWMutex
	entries map[ID]memoryEntry[I, O]
}

type memoryEntry[I, O any] struct {
	input  I
	status Status[O]
}

var _ Injector[string, int, int] = (*MemoryInjector[string, int, int])(nil)

// NewMemoryInjector 创建内存注入器。
func NewMemoryInjector[ID comparable, I, O any]() *MemoryInjector[ID, I, O] {
	return &MemoryInjector[ID, I, O]{
		entries: make(map[ID]memoryEntry[I, O]),
	}
}

// LoadPending 返回所有 Pending 状态的条目。
func (m *MemoryInjector[ID, I, O]) LoadPending(_ context.Context) ([]Op[ID, I], error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var pending []Op[ID, I]
	for id, entry := range m.entries {
		if entry.status.IsPending() {
			pending = append(pending, Op[ID, I]{ID: id, Input: entry.input})
		}
	}
	return pending, nil
}

// SaveStatus 保存一个标识符的状态。
func (m *MemoryInjector[ID, I, O]) SaveStatus(_ context.Context, id ID, input I, status Status[O]) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[id] = memoryEntry[I, O]{input: input, status: status}
	return nil
}

// Status 查询一个标识符的当前状态。
func (m *MemoryInjector[ID, I, O]) Status(id ID) (Status[O], bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, ok := m.entries[id]
	return entry.status, ok
}

// Len 返回条目总数。
func (m *MemoryInjector[ID, I, O]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
