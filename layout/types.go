package layout

import "fmt"

// 该文件定义布局结果与资源描述，供布局计算、渲染与调试 JSON 共用。

// Result 是一次布局计算的不可变结果，绘制阶段只读取它。
// 除 Resources/Meta 外，所有长度单位与 Measurer 一致（canvas 渲染器为 mm）。
type Result struct {
	Width   float64   `json:"width"`
	Height  float64   `json:"height"`
	Padding Padding   `json:"padding"`
	Image   *ImageBox `json:"image,omitempty"`
	Title   Block     `json:"title"`
	Text    Block     `json:"text"`

	Resources ResourceSet  `json:"resources"`
	Meta      DocumentMeta `json:"meta"`
}

// Stream 区分标题与正文两条文本流。
type Stream int

const (
	StreamTitle Stream = iota
	StreamText
)

func (s Stream) String() string {
	if s == StreamTitle {
		return "title"
	}
	return "text"
}

// Block 表示一条文本流排版后的所有行。
type Block struct {
	Style      TextStyle  `json:"style"`
	LineHeight float64    `json:"lineHeight"`
	Ascent     float64    `json:"ascent"`
	MaxLines   int        `json:"maxLines"` // 0 表示不限
	Narrowed   int        `json:"narrowed"` // 让出图片宽度的前导行数
	Lines      []TextLine `json:"lines"`
}

// Contents 返回各行文本。
func (b Block) Contents() []string {
	out := make([]string, len(b.Lines))
	for i, l := range b.Lines {
		out[i] = l.Content
	}
	return out
}

// TextLine 表示排版后的一行文本内容及其位置。
type TextLine struct {
	Content  string  `json:"content"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"` // 行顶部
	Baseline float64 `json:"baseline"`
	Width    float64 `json:"width"`
	Narrowed bool    `json:"narrowed,omitempty"`
}

// ImageBox 描述图片在视图中的位置与尺寸。
type ImageBox struct {
	Src    string  `json:"src"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	DPI    int     `json:"dpi,omitempty"`
}

// Padding 为四边内边距。
type Padding struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// FontVariant 是字体的粗细/斜体组合，由宿主的字体系统解析。
type FontVariant int

const (
	VariantNormal FontVariant = iota
	VariantBold
	VariantItalic
	VariantBoldItalic
)

func (v FontVariant) String() string {
	switch v {
	case VariantBold:
		return "bold"
	case VariantItalic:
		return "italic"
	case VariantBoldItalic:
		return "bold-italic"
	default:
		return "normal"
	}
}

// MarshalText 使调试 JSON 中的变体可读。
func (v FontVariant) MarshalText() ([]byte, error) { return []byte(v.String()), nil }

func (v *FontVariant) UnmarshalText(b []byte) error {
	parsed, ok := ParseFontVariant(string(b))
	if !ok {
		return fmt.Errorf("未知字体变体 %q", b)
	}
	*v = parsed
	return nil
}

// ParseFontVariant 解析 normal/bold/italic/bold-italic，未知值返回 false。
func ParseFontVariant(s string) (FontVariant, bool) {
	switch s {
	case "", "normal", "regular":
		return VariantNormal, true
	case "bold":
		return VariantBold, true
	case "italic", "oblique":
		return VariantItalic, true
	case "bold-italic", "bolditalic", "bold+italic":
		return VariantBoldItalic, true
	default:
		return VariantNormal, false
	}
}

// TextStyle 是传给 Measurer 的字体配置，排版期间不可变。
type TextStyle struct {
	Font    FontResource `json:"font"`
	Size    float64      `json:"size"`
	Color   Color        `json:"color"`
	Variant FontVariant  `json:"variant"`
}

// ResourceSet 记录解析出的字体、颜色与图片定义。
type ResourceSet struct {
	Fonts  map[string]FontResource  `json:"fonts"`
	Colors map[string]Color         `json:"colors"`
	Images map[string]ImageResource `json:"images"`
	Styles map[string]Style         `json:"styles"`
}

// FontResource 描述字体资源，src 可以是文件路径或 builtin:* 形式。
type FontResource struct {
	Name     string `json:"name"`
	Src      string `json:"src"`
	Family   string `json:"family"` // 渲染器使用的 Family 名称
	Fallback string `json:"fallback,omitempty"`
}

// ImageResource 记录图片资源。
type ImageResource struct {
	Name string `json:"name"`
	Src  string `json:"src"`
	DPI  int    `json:"dpi"`
}

// Color 采用 0-255 的 RGB 数值。
type Color struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// Style 用于描述可继承的文本样式。
type Style struct {
	Name    string            `json:"name"`
	Extends string            `json:"extends,omitempty"`
	Props   map[string]string `json:"props"`
}

// DocumentMeta 保存 PDF 元信息。
type DocumentMeta struct {
	Title    string   `json:"title"`
	Author   string   `json:"author"`
	Subject  string   `json:"subject"`
	Creator  string   `json:"creator"`
	Keywords []string `json:"keywords"`
}
