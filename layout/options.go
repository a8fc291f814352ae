package layout

// BuildOptions 配置布局阶段所需的依赖，例如测量后端。
type BuildOptions struct {
	Measurer Measurer
	// Length 将 DSL 中的长度换算为 Measurer 的单位，为空时按 mm。
	Length func(Length) float64
}

func (o BuildOptions) length(l Length) float64 {
	if o.Length != nil {
		return o.Length(l)
	}
	return l.ToMM()
}

// Measurer 负责把 TextStyle 解析为可测量的字面。
type Measurer interface {
	Face(style TextStyle) (Face, error)
}

// Face 测量已解析样式下的文本。TextWidth 对追加字符必须单调不减。
type Face interface {
	TextWidth(s string) float64
	// Metrics 返回上升部（正值）与下降部。
	Metrics() (ascent, descent float64)
}

// MeasureMode 对应宿主布局传入的尺寸约束方式。
type MeasureMode int

const (
	Unspecified MeasureMode = iota
	Exactly
	AtMost
)

func (m MeasureMode) String() string {
	switch m {
	case Exactly:
		return "exactly"
	case AtMost:
		return "at-most"
	default:
		return "unspecified"
	}
}

// MeasureSpec 为一个方向上的尺寸约束。
type MeasureSpec struct {
	Mode MeasureMode
	Size float64
}

// ExactlySpec 返回固定尺寸约束。
func ExactlySpec(size float64) MeasureSpec { return MeasureSpec{Mode: Exactly, Size: size} }

// AtMostSpec 返回上限约束。
func AtMostSpec(size float64) MeasureSpec { return MeasureSpec{Mode: AtMost, Size: size} }

// UnspecifiedSpec 表示不受限。
func UnspecifiedSpec() MeasureSpec { return MeasureSpec{} }

// resolve 按约束方式得到最终尺寸，content 为内容所需尺寸。
func (s MeasureSpec) resolve(content float64) float64 {
	switch s.Mode {
	case Exactly:
		return s.Size
	case AtMost:
		if content < s.Size {
			return content
		}
		return s.Size
	default:
		return content
	}
}
