package xretry

type outcomeKind uint8

const (
	kindOK outcomeKind = iota
	kindRetry
	kindFail
)

// Outcome 一次操作尝试的三态结果。
//
// 相比二态的 (value, error)，第三种状态让操作可以独立于延迟预算
// 表达"这个错误不要重试"。
type Outcome[T any] struct {
	kind  outcomeKind
	value T
	err   error
}

// OK 构造成功结果。
func OK[T any](v T) Outcome[T] {
	return Outcome[T]{kind: kindOK, value: v}
}

// Retry 构造瞬时失败结果：执行协议会消费一个延迟后重试。
func Retry[T any](err error) Outcome[T] {
	return Outcome[T]{kind: kindRetry, err: err}
}

// Fail 构造永久失败结果：执行协议立即停止，不消费延迟。
func Fail[T any](err error) Outcome[T] {
	return Outcome[T]{kind: kindFail, err: err}
}

// FromError 将二态结果转换为 Outcome。
//
// err == nil 转换为 OK；其余默认转换为 Retry（未知错误视为瞬时），
// 但被 NewPermanentError 包装或 Unrecoverable 标记的错误转换为 Fail。
func FromError[T any](v T, err error) Outcome[T] {
	if err == nil {
		return OK(v)
	}
	if !IsRecoverable(err) || IsPermanent(err) {
		return Fail[T](err)
	}
	return Retry[T](err)
}

// IsOK 报告结果是否为成功。
func (o Outcome[T]) IsOK() bool {
	return o.kind == kindOK
}

// IsRetry 报告结果是否为瞬时失败。
func (o Outcome[T]) IsRetry() bool {
	return o.kind == kindRetry
}

// IsFail 报告结果是否为永久失败。
func (o Outcome[T]) IsFail() bool {
	return o.kind == kindFail
}

// Value 返回成功值；非成功结果返回零值。
func (o Outcome[T]) Value() T {
	return o.value
}

// Err 返回失败错误；成功结果返回 nil。
func (o Outcome[T]) Err() error {
	return o.err
}
