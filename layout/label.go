package layout

import (
	"log/slog"

	"github.com/ByLCY/wrapview/wrap"
)

// LabelConfig 描述只有一条文本流、宽度统一的标签。
type LabelConfig struct {
	Text     string
	Style    TextStyle
	MaxLines int // 0 表示不限
	Padding  Padding
}

// ComposeLabel 按统一宽度折行，超出 MaxLines 时末行加省略号。
// AtMost 宽度下返回内容实际需要的宽度与上限中的较小者。
func ComposeLabel(cfg LabelConfig, width, height MeasureSpec, m Measurer) (*Result, error) {
	if m == nil {
		return nil, ErrNoMeasurer
	}
	if err := cfg.Padding.validate("padding"); err != nil {
		return nil, err
	}
	if cfg.MaxLines < 0 {
		return nil, &ConfigError{Field: "max-lines", Reason: "不能为负数"}
	}
	if err := width.validate("width"); err != nil {
		return nil, err
	}
	if err := height.validate("height"); err != nil {
		return nil, err
	}
	f, err := resolveFace(m, cfg.Style, StreamText)
	if err != nil {
		return nil, err
	}

	p := cfg.Padding
	broken := f.breaker().Break(cfg.Text, wrap.Uniform(contentWidth(width, p)), lineCap(cfg.MaxLines))

	res := &Result{Padding: p}
	res.Text = f.place(cfg.Style, broken.Lines, 0, p.Left, 0, p.Top)
	res.Text.MaxLines = cfg.MaxLines
	res.Width = width.resolve(p.Left + broken.MaxWidth + p.Right)
	res.Height = height.resolve(p.Top + float64(len(broken.Lines))*f.lineHeight + p.Bottom)

	Logger().Debug("layout: label",
		slog.String("widthMode", width.Mode.String()),
		slog.Int("lines", len(broken.Lines)),
		slog.Float64("maxWidth", broken.MaxWidth),
		slog.Float64("width", res.Width),
		slog.Float64("height", res.Height),
	)
	return res, nil
}
