package xstatus

import "errors"

var (
	// ErrNilClient 表示传入的客户端为 nil。
	ErrNilClient = errors.New("xstatus: nil client")

	// ErrNilCollection 表示传入的 collection 为 nil。
	ErrNilCollection = errors.New("xstatus: nil collection")

	// ErrNilContext 表示传入的 context 为 nil。
	ErrNilContext = errors.New("xstatus: context must not be nil")

	// ErrEmptyNamespace 表示命名空间为空字符串。
	ErrEmptyNamespace = errors.New("xstatus: empty namespace")

	// ErrNotFound 表示标识符不存在。
	ErrNotFound = errors.New("xstatus: status not found")
)
