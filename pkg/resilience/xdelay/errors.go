package xdelay

import "errors"

// Config 校验相关错误。
var (
	// ErrNegativeCount 表示重试次数为负。
	ErrNegativeCount = errors.New("xdelay: negative retry count")

	// ErrNegativeBackoff 表示退避区间出现负值。
	ErrNegativeBackoff = errors.New("xdelay: negative backoff bound")

	// ErrInvertedBackoff 表示最小退避大于最大退避。
	ErrInvertedBackoff = errors.New("xdelay: min backoff greater than max backoff")
)
