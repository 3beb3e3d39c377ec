package xpersist

import "fmt"

type statusKind uint8

const (
	statusPending statusKind = iota
	statusSuccess
	statusFailure
)

// Status 一个标识符的持久化重试状态。
//
// 生命周期：回合开始时为 Pending；协议到达终态后转换为 Success 或
// Failure，且同一回合内只转换一次。之后对同一标识符开启新回合会
// 重置为 Pending。
type Status[O any] struct {
	kind   statusKind
	output O
	err    error
}

// Pending 构造进行中状态。
func Pending[O any]() Status[O] {
	return Status[O]{kind: statusPending}
}

// Success 构造成功终态。
func Success[O any](output O) Status[O] {
	return Status[O]{kind: statusSuccess, output: output}
}

// Failure 构造失败终态。
func Failure[O any](err error) Status[O] {
	return Status[O]{kind: statusFailure, err: err}
}

// IsPending 报告状态是否为进行中。
func (s Status[O]) IsPending() bool {
	return s.kind == statusPending
}

// IsSuccess 报告状态是否为成功终态。
func (s Status[O]) IsSuccess() bool {
	return s.kind == statusSuccess
}

// IsFailure 报告状态是否为失败终态。
func (s Status[O]) IsFailure() bool {
	return s.kind == statusFailure
}

// Output 返回成功输出；非成功状态返回零值。
func (s Status[O]) Output() O {
	return s.output
}

// Err 返回失败错误；非失败状态返回 nil。
func (s Status[O]) Err() error {
	return s.err
}

func (s Status[O]) String() string {
	switch s.kind {
	case statusSuccess:
		return fmt.Sprintf("Success(%v)", s.output)
	case statusFailure:
		return fmt.Sprintf("Failure(%v)", s.err)
	default:
		return "Pending"
	}
}
