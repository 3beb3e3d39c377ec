package xdelay

import "fmt"

// Config 可序列化的重试配置：有限次数 + 随机退避区间。
//
// 字段均为普通数据，适合从配置文件反序列化（加载见 xretrycfg 包）。
// 语义上等价于 Take(NewRangeInclusive(MinBackoff, MaxBackoff), Count)。
type Config struct {
	// Count 最多重试的次数（不含首次尝试）。
	Count int `json:"count" koanf:"count"`

	// MinBackoff 重试前等待的最小毫秒数。
	MinBackoff int64 `json:"min_backoff" koanf:"min_backoff"`

	// MaxBackoff 重试前等待的最大毫秒数（含）。
	// 允许与 MinBackoff 相等，此时退化为固定延迟。
	MaxBackoff int64 `json:"max_backoff" koanf:"max_backoff"`
}

// Validate 校验配置。
// 配置通常来自运行期输入（文件、环境），校验失败返回错误而非 panic。
func (c Config) Validate() error {
	if c.Count < 0 {
		return fmt.Errorf("%w: count=%d", ErrNegativeCount, c.Count)
	}
	if c.MinBackoff < 0 || c.MaxBackoff < 0 {
		return fmt.Errorf("%w: min=%d max=%d", ErrNegativeBackoff, c.MinBackoff, c.MaxBackoff)
	}
	if c.MinBackoff > c.MaxBackoff {
		return fmt.Errorf("%w: min=%d max=%d", ErrInvertedBackoff, c.MinBackoff, c.MaxBackoff)
	}
	return nil
}

// Template 将配置转换为延迟序列模板：
// [MinBackoff, MaxBackoff] 毫秒区间内均匀随机，最多 Count 个值。
//
// 配置非法时 panic；来自运行期输入的配置必须先经 Validate 校验。
func (c Config) Template() Template {
	if err := c.Validate(); err != nil {
		panic(err)
	}
	return Take(NewRangeInclusive(uint64(c.MinBackoff), uint64(c.MaxBackoff)), c.Count)
}
