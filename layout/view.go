package layout

// View 保存一份已校验的配置与最近一次成功的布局结果。
// 配置或尺寸非法时保留之前的有效状态。View 不是并发安全的。
type View struct {
	measurer Measurer
	cfg      Config
	result   *Result
}

// NewView 校验 cfg 并创建视图。
func NewView(m Measurer, cfg Config) (*View, error) {
	if m == nil {
		return nil, ErrNoMeasurer
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &View{measurer: m, cfg: cfg}, nil
}

// Config 返回当前生效的配置。
func (v *View) Config() Config { return v.cfg }

// Configure 替换配置。校验失败时不做任何修改；成功时清空缓存的结果，需重新 Measure。
func (v *View) Configure(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	v.cfg = cfg
	v.result = nil
	return nil
}

// Measure 重新布局并返回视图尺寸。失败时保留上一次的结果。
func (v *View) Measure(width, height MeasureSpec) (float64, float64, error) {
	res, err := Compose(v.cfg, width, height, v.measurer)
	if err != nil {
		return 0, 0, err
	}
	v.result = res
	return res.Width, res.Height, nil
}

// Result 返回最近一次成功的布局结果，尚未布局时为 nil。
func (v *View) Result() *Result { return v.result }

// WrappedLines 返回某条文本流折行后的各行。
func (v *View) WrappedLines(s Stream) []string {
	if v.result == nil {
		return nil
	}
	return v.block(s).Contents()
}

// NarrowedLineCount 返回某条文本流中为图片让位的前导行数。
func (v *View) NarrowedLineCount(s Stream) int {
	if v.result == nil {
		return 0
	}
	return v.block(s).Narrowed
}

func (v *View) block(s Stream) Block {
	if s == StreamTitle {
		return v.result.Title
	}
	return v.result.Text
}
