package layout

import (
	"errors"
	"fmt"
)

// 布局前在边界处拒绝的错误；布局计算本身不会失败。
var (
	// ErrInvalidConfig 表示配置值非法（负长度、负行数上限等）。
	ErrInvalidConfig = errors.New("layout: 配置非法")
	// ErrInvalidSpec 表示 MeasureSpec 非法。
	ErrInvalidSpec = errors.New("layout: 尺寸约束非法")
	// ErrInvalidMetrics 表示字体度量不可用（非有限值或行高为 0）。
	ErrInvalidMetrics = errors.New("layout: 字体度量非法")
	// ErrNoMeasurer 表示缺少测量后端。
	ErrNoMeasurer = errors.New("layout: 缺少测量后端 Measurer")
)

// ConfigError 指出具体出错的配置字段。
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("layout: 配置 %s 非法: %s", e.Field, e.Reason)
}

func (e *ConfigError) Unwrap() error { return ErrInvalidConfig }
