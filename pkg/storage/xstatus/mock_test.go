package xstatus

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// =============================================================================
// Mock 实现 - 用于单元测试
// =============================================================================

type replaceCall struct {
	filter      any
	replacement any
}

// mockStatusColl 实现 statusCollectionOps 接口
type mockStatusColl struct {
	findDocs   []any
	findErr    error
	findFilter any

	findOneDoc any
	findOneErr error

	replaceCalls []replaceCall
	replaceErr   error
}

func (m *mockStatusColl) Find(_ context.Context, filter any, _ ...options.Lister[options.FindOptions]) (*mongo.Cursor, error) {
	m.findFilter = filter
	if m.findErr != nil {
		return nil, m.findErr
	}
	return mongo.NewCursorFromDocuments(m.findDocs, nil, nil)
}

func (m *mockStatusColl) FindOne(_ context.Context, _ any, _ ...options.Lister[options.FindOneOptions]) *mongo.SingleResult {
	if m.findOneErr != nil {
		// 文档参数为 nil 时驱动返回 ErrNilDocument 并丢弃注入的错误，
		// 故传入空文档以保留 findOneErr。
		return mongo.NewSingleResultFromDocument(bson.D{}, m.findOneErr, nil)
	}
	return mongo.NewSingleResultFromDocument(m.findOneDoc, nil, nil)
}

func (m *mockStatusColl) ReplaceOne(_ context.Context, filter any, replacement any, _ ...options.Lister[options.ReplaceOptions]) (*mongo.UpdateResult, error) {
	m.replaceCalls = append(m.replaceCalls, replaceCall{filter: filter, replacement: replacement})
	if m.replaceErr != nil {
		return nil, m.replaceErr
	}
	return &mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}
