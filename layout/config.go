package layout

import (
	"fmt"
	"math"
)

// 默认值（单位 mm）。
const (
	DefaultFontSize         = 12 * PtToMm
	DefaultTitleTextPadding = 1.5
	DefaultImagePadding     = 1.5
	DefaultTextMaxLines     = 2
)

// ImageMode 决定图片尺寸的来源，在配置时确定。
type ImageMode int

const (
	// ImageNone 不显示图片。
	ImageNone ImageMode = iota
	// ImageFixed 使用调用方给定的宽高。
	ImageFixed
	// ImageLines 根据目标行数推导出正方形尺寸。
	ImageLines
)

func (m ImageMode) String() string {
	switch m {
	case ImageFixed:
		return "fixed"
	case ImageLines:
		return "lines"
	default:
		return "none"
	}
}

// ImageSizing 描述图片及其尺寸模式。
type ImageSizing struct {
	Mode   ImageMode
	Src    string
	DPI    int
	Width  float64 // ImageFixed
	Height float64 // ImageFixed
	Lines  int     // ImageLines：图片需要覆盖的行数
}

// Config 是图文混排视图的全部输入。行数上限为 0 表示不限。
type Config struct {
	Title         string
	TitleStyle    TextStyle
	TitleMaxLines int

	Text         string
	TextStyle    TextStyle
	TextMaxLines int

	Image ImageSizing

	Padding          Padding
	ImagePadding     float64 // 图片与右侧文字的间距
	TitleTextPadding float64 // 标题块与正文块的间距
}

// NewConfig 返回带默认值的配置。
func NewConfig() Config {
	return Config{
		TitleStyle:       TextStyle{Size: DefaultFontSize},
		TextStyle:        TextStyle{Size: DefaultFontSize},
		TextMaxLines:     DefaultTextMaxLines,
		ImagePadding:     DefaultImagePadding,
		TitleTextPadding: DefaultTitleTextPadding,
	}
}

// Validate 在布局开始前检查配置。
func (c Config) Validate() error {
	if err := c.Padding.validate("padding"); err != nil {
		return err
	}
	if err := checkLength("image-padding", c.ImagePadding); err != nil {
		return err
	}
	if err := checkLength("title-text-padding", c.TitleTextPadding); err != nil {
		return err
	}
	if c.TitleMaxLines < 0 {
		return &ConfigError{Field: "title-max-lines", Reason: fmt.Sprintf("不能为负数: %d", c.TitleMaxLines)}
	}
	if c.TextMaxLines < 0 {
		return &ConfigError{Field: "text-max-lines", Reason: fmt.Sprintf("不能为负数: %d", c.TextMaxLines)}
	}
	return c.Image.validate()
}

func (s ImageSizing) validate() error {
	switch s.Mode {
	case ImageNone:
		return nil
	case ImageFixed:
		if err := checkLength("image-width", s.Width); err != nil {
			return err
		}
		return checkLength("image-height", s.Height)
	case ImageLines:
		if s.Lines < 1 {
			return &ConfigError{Field: "image-lines", Reason: fmt.Sprintf("至少为 1: %d", s.Lines)}
		}
		return nil
	default:
		return &ConfigError{Field: "image-mode", Reason: fmt.Sprintf("未知模式 %d", int(s.Mode))}
	}
}

func (p Padding) validate(field string) error {
	for _, v := range []float64{p.Top, p.Right, p.Bottom, p.Left} {
		if err := checkLength(field, v); err != nil {
			return err
		}
	}
	return nil
}

func (s MeasureSpec) validate(field string) error {
	if s.Mode == Unspecified {
		return nil
	}
	if s.Mode != Exactly && s.Mode != AtMost {
		return fmt.Errorf("%w: %s 模式未知 %d", ErrInvalidSpec, field, int(s.Mode))
	}
	if math.IsNaN(s.Size) || math.IsInf(s.Size, 0) || s.Size < 0 {
		return fmt.Errorf("%w: %s=%g", ErrInvalidSpec, field, s.Size)
	}
	return nil
}

func checkLength(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &ConfigError{Field: field, Reason: "不是有限值"}
	}
	if v < 0 {
		return &ConfigError{Field: field, Reason: fmt.Sprintf("不能为负数: %g", v)}
	}
	return nil
}

// lineCap 将 0 映射为不限。
func lineCap(n int) int {
	if n == 0 {
		return math.MaxInt
	}
	return n
}
