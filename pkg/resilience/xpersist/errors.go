package xpersist

import "errors"

// 预定义错误
var (
	// ErrNilInjector 注入器为空
	ErrNilInjector = errors.New("xpersist: injector is nil")

	// ErrNilTemplate 延迟模板为空
	ErrNilTemplate = errors.New("xpersist: delay template is nil")

	// ErrNilOperation 重试操作为空
	ErrNilOperation = errors.New("xpersist: operation is nil")

	// ErrNilContext 上下文为空
	ErrNilContext = errors.New("xpersist: context is nil")

	// ErrNilStream 操作流为空
	ErrNilStream = errors.New("xpersist: op stream is nil")
)
