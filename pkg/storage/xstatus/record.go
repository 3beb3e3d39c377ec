package xstatus

import (
	"errors"
	"fmt"

	"github.com/omeyang/retryblock/pkg/resilience/xpersist"
)

// 状态记录的 state 取值
const (
	statePending = "pending"
	stateSuccess = "success"
	stateFailure = "failure"
)

// statusRecord 状态在存储中的序列化形态。
// JSON 标签用于 Redis，BSON 标签用于 MongoDB。
type statusRecord[I, O any] struct {
	ID     string `json:"-" bson:"_id"`
	Input  I      `json:"input" bson:"input"`
	State  string `json:"state" bson:"state"`
	Output O      `json:"output,omitempty" bson:"output,omitempty"`
	Error  string `json:"error,omitempty" bson:"error,omitempty"`
}

func newStatusRecord[I, O any](id string, input I, status xpersist.Status[O]) statusRecord[I, O] {
	record := statusRecord[I, O]{ID: id, Input: input}
	switch {
	case status.IsSuccess():
		record.State = stateSuccess
		record.Output = status.Output()
	case status.IsFailure():
		record.State = stateFailure
		if err := status.Err(); err != nil {
			record.Error = err.Error()
		}
	default:
		record.State = statePending
	}
	return record
}

func (r statusRecord[I, O]) status() (xpersist.Status[O], error) {
	switch r.State {
	case statePending:
		return xpersist.Pending[O](), nil
	case stateSuccess:
		return xpersist.Success(r.Output), nil
	case stateFailure:
		return xpersist.Failure[O](errors.New(r.Error)), nil
	default:
		return xpersist.Status[O]{}, fmt.Errorf("xstatus: unknown state %q", r.State)
	}
}
