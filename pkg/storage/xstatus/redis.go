package xstatus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/omeyang/retryblock/pkg/resilience/xpersist"
)

// RedisInjector 基于 Redis hash 的状态注入器。
//
// 一个命名空间对应一个 hash（键为 "retryblock:status:<namespace>"），
// hash 字段为标识符，值为 JSON 编码的状态记录。
// 基础操作直接委托给 go-redis，本类型不持有连接所有权，不负责 Close。
type RedisInjector[I, O any] struct {
	client redis.UniversalClient
	key    string
}

var _ xpersist.Injector[string, int, int] = (*RedisInjector[int, int])(nil)

// NewRedisInjector 创建 Redis 注入器。
// namespace 区分同一 Redis 实例上的多个互不相关的重试域。
func NewRedisInjector[I, O any](client redis.UniversalClient, namespace string) (*RedisInjector[I, O], error) {
	if client == nil {
		return nil, ErrNilClient
	}
	if namespace == "" {
		return nil, ErrEmptyNamespace
	}

	return &RedisInjector[I, O]{
		client: client,
		key:    "retryblock:status:" + namespace,
	}, nil
}

// LoadPending 返回命名空间内所有 Pending 状态的条目。
func (r *RedisInjector[I, O]) LoadPending(ctx context.Context) ([]xpersist.Op[string, I], error) {
	if ctx == nil {
		return nil, ErrNilContext
	}

	fields, err := r.client.HGetAll(ctx, r.key).Result()
	if err != nil {
		return nil, fmt.Errorf("xstatus: load pending: %w", err)
	}

	var pending []xpersist.Op[string, I]
	for id, payload := range fields {
		var record statusRecord[I, O]
		if err := json.Unmarshal([]byte(payload), &record); err != nil {
			return nil, fmt.Errorf("xstatus: decode record %q: %w", id, err)
		}
		if record.State == statePending {
			pending = append(pending, xpersist.Op[string, I]{ID: id, Input: record.Input})
		}
	}
	return pending, nil
}

// SaveStatus 保存一个标识符的状态。
func (r *RedisInjector[I, O]) SaveStatus(ctx context.Context, id string, input I, status xpersist.Status[O]) error {
	if ctx == nil {
		return ErrNilContext
	}

	payload, err := json.Marshal(newStatusRecord(id, input, status))
	if err != nil {
		return fmt.Errorf("xstatus: encode record %q: %w", id, err)
	}

	if err := r.client.HSet(ctx, r.key, id, payload).Err(); err != nil {
		return fmt.Errorf("xstatus: save status %q: %w", id, err)
	}
	return nil
}

// Status 查询一个标识符的当前状态。
// 标识符不存在时返回 ErrNotFound。
func (r *RedisInjector[I, O]) Status(ctx context.Context, id string) (xpersist.Status[O], error) {
	if ctx == nil {
		return xpersist.Status[O]{}, ErrNilContext
	}

	payload, err := r.client.HGet(ctx, r.key, id).Result()
	if errors.Is(err, redis.Nil) {
		return xpersist.Status[O]{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	if err != nil {
		return xpersist.Status[O]{}, fmt.Errorf("xstatus: load status %q: %w", id, err)
	}

	var record statusRecord[I, O]
	if err := json.Unmarshal([]byte(payload), &record); err != nil {
		return xpersist.Status[O]{}, fmt.Errorf("xstatus: decode record %q: %w", id, err)
	}
	return record.status()
}
