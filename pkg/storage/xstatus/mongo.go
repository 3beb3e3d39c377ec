package xstatus

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/omeyang/retryblock/pkg/resilience/xpersist"
)

// statusCollectionOps 定义注入器用到的集合级操作子集。
// *mongo.Collection 实现此接口，测试中以 mock 替换。
type statusCollectionOps interface {
	Find(ctx context.Context, filter any, opts ...options.Lister[options.FindOptions]) (*mongo.Cursor, error)
	FindOne(ctx context.Context, filter any, opts ...options.Lister[options.FindOneOptions]) *mongo.SingleResult
	ReplaceOne(ctx context.Context, filter any, replacement any, opts ...options.Lister[options.ReplaceOptions]) (*mongo.UpdateResult, error)
}

// MongoInjector 基于 MongoDB 集合的状态注入器。
//
// 一个文档对应一个标识符（_id 即标识符），SaveStatus 以 upsert 方式
// 整体替换文档。本类型不持有客户端所有权，不负责断连。
type MongoInjector[I, O any] struct {
	coll statusCollectionOps
}

var _ xpersist.Injector[string, int, int] = (*MongoInjector[int, int])(nil)

// NewMongoInjector 创建 MongoDB 注入器。
func NewMongoInjector[I, O any](coll *mongo.Collection) (*MongoInjector[I, O], error) {
	if coll == nil {
		return nil, ErrNilCollection
	}
	return newMongoInjector[I, O](coll), nil
}

// newMongoInjector 从操作接口构造注入器，测试注入 mock 时使用。
func newMongoInjector[I, O any](coll statusCollectionOps) *MongoInjector[I, O] {
	return &MongoInjector[I, O]{coll: coll}
}

// LoadPending 返回集合内所有 Pending 状态的条目。
func (m *MongoInjector[I, O]) LoadPending(ctx context.Context) ([]xpersist.Op[string, I], error) {
	if ctx == nil {
		return nil, ErrNilContext
	}

	cursor, err := m.coll.Find(ctx, bson.M{"state": statePending})
	if err != nil {
		return nil, fmt.Errorf("xstatus: load pending: %w", err)
	}

	var records []statusRecord[I, O]
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("xstatus: decode pending: %w", err)
	}

	pending := make([]xpersist.Op[string, I], 0, len(records))
	for _, record := range records {
		pending = append(pending, xpersist.Op[string, I]{ID: record.ID, Input: record.Input})
	}
	return pending, nil
}

// SaveStatus 保存一个标识符的状态。
func (m *MongoInjector[I, O]) SaveStatus(ctx context.Context, id string, input I, status xpersist.Status[O]) error {
	if ctx == nil {
		return ErrNilContext
	}

	record := newStatusRecord(id, input, status)
	_, err := m.coll.ReplaceOne(ctx, bson.M{"_id": id}, record,
		options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("xstatus: save status %q: %w", id, err)
	}
	return nil
}

// Status 查询一个标识符的当前状态。
// 标识符不存在时返回 ErrNotFound。
func (m *MongoInjector[I, O]) Status(ctx context.Context, id string) (xpersist.Status[O], error) {
	if ctx == nil {
		return xpersist.Status[O]{}, ErrNilContext
	}

	var record statusRecord[I, O]
	err := m.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return xpersist.Status[O]{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	if err != nil {
		return xpersist.Status[O]{}, fmt.Errorf("xstatus: load status %q: %w", id, err)
	}
	return record.status()
}
