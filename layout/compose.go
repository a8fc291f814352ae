package layout

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/ByLCY/wrapview/wrap"
)

// 该文件实现图文混排：根据图片占位推导每行宽度，分别折行标题与正文，再汇总出内容高度。

// Footprint 是图片占用的宽高。
type Footprint struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// EstimateFootprint 给出折行前使用的图片尺寸。
// ImageLines 模式下实际行数尚未知，先按 Lines 个标题行高近似为正方形。
func EstimateFootprint(img ImageSizing, titleLineHeight float64) Footprint {
	switch img.Mode {
	case ImageFixed:
		return Footprint{Width: img.Width, Height: img.Height}
	case ImageLines:
		h := float64(img.Lines) * titleLineHeight
		return Footprint{Width: h, Height: h}
	default:
		return Footprint{}
	}
}

// CorrectFootprint 用实际标题行数修正 ImageLines 模式的尺寸，其它模式原样返回 est。
// 标题行数不足 Lines 时，图片继续向下覆盖标题间距与若干正文行。
func CorrectFootprint(cfg Config, est Footprint, titleLines int, titleLineHeight, textLineHeight float64) Footprint {
	if cfg.Image.Mode != ImageLines {
		return est
	}
	target := cfg.Image.Lines
	var h float64
	if titleLines < target {
		h = float64(titleLines)*titleLineHeight + cfg.TitleTextPadding
		h += float64(target-titleLines) * textLineHeight
	} else {
		h = float64(target) * titleLineHeight
	}
	h -= cfg.ImagePadding
	if h < 0 {
		h = 0
	}
	return Footprint{Width: h, Height: h}
}

// Compose 执行一次完整的布局计算。每次调用都从头折行，不复用上次结果。
func Compose(cfg Config, width, height MeasureSpec, m Measurer) (*Result, error) {
	if m == nil {
		return nil, ErrNoMeasurer
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := width.validate("width"); err != nil {
		return nil, err
	}
	if err := height.validate("height"); err != nil {
		return nil, err
	}
	title, err := resolveFace(m, cfg.TitleStyle, StreamTitle)
	if err != nil {
		return nil, err
	}
	text, err := resolveFace(m, cfg.TextStyle, StreamText)
	if err != nil {
		return nil, err
	}

	p := cfg.Padding
	full := contentWidth(width, p)
	est := EstimateFootprint(cfg.Image, title.lineHeight)

	// 折行预算与绘制偏移使用同一个图片尺寸，修正后尺寸变化时按新尺寸重新折行。
	fp := est
	pass := wrapPass(cfg, fp, full, title, text)
	for range maxFootprintPasses {
		next := CorrectFootprint(cfg, est, len(pass.title.Lines), title.lineHeight, text.lineHeight)
		if next == fp {
			break
		}
		fp = next
		pass = wrapPass(cfg, fp, full, title, text)
	}
	titleRes, textRes := pass.title, pass.text
	titleN, textN := len(titleRes.Lines), len(textRes.Lines)
	titleTabbed, textTabbed, narrow := pass.titleTabbed, pass.textTabbed, pass.narrow

	res := &Result{Padding: p}
	offset := 0.0
	if cfg.Image.Mode != ImageNone {
		res.Image = &ImageBox{
			Src:    cfg.Image.Src,
			DPI:    cfg.Image.DPI,
			X:      p.Left,
			Y:      p.Top,
			Width:  fp.Width,
			Height: fp.Height,
		}
		offset = fp.Width + cfg.ImagePadding
	}

	textTop := p.Top + float64(titleN)*title.lineHeight + cfg.TitleTextPadding
	res.Title = title.place(cfg.TitleStyle, titleRes.Lines, min(titleTabbed, titleN), p.Left, offset, p.Top)
	res.Title.MaxLines = cfg.TitleMaxLines
	res.Text = text.place(cfg.TextStyle, textRes.Lines, min(textTabbed, textN), p.Left, offset, textTop)
	res.Text.MaxLines = cfg.TextMaxLines

	contentHeight := textTop + float64(textN)*text.lineHeight + p.Bottom
	contentHeight = math.Max(contentHeight, p.Top+fp.Height+p.Bottom)
	res.Height = height.resolve(contentHeight)
	if width.Mode == Unspecified {
		res.Width = intrinsicWidth(res)
	} else {
		res.Width = width.Size
	}

	Logger().Debug("layout: compose",
		slog.String("widthMode", width.Mode.String()),
		slog.Float64("full", full),
		slog.Float64("narrow", narrow),
		slog.String("image", cfg.Image.Mode.String()),
		slog.Float64("imageWidth", fp.Width),
		slog.Float64("imageHeight", fp.Height),
		slog.Int("titleLines", titleN),
		slog.Int("titleNarrowed", res.Title.Narrowed),
		slog.Int("textLines", textN),
		slog.Int("textNarrowed", res.Text.Narrowed),
		slog.Float64("height", res.Height),
	)
	return res, nil
}

// streamFace 是一条文本流解析后的字面与行度量。
type streamFace struct {
	face       Face
	ascent     float64
	lineHeight float64
}

func resolveFace(m Measurer, style TextStyle, stream Stream) (streamFace, error) {
	face, err := m.Face(style)
	if err != nil {
		return streamFace{}, fmt.Errorf("layout: 解析 %s 字体失败: %w", stream, err)
	}
	if face == nil {
		return streamFace{}, fmt.Errorf("%w: %s 字面为空", ErrInvalidMetrics, stream)
	}
	ascent, descent := face.Metrics()
	lh := ascent + descent
	if !finite(ascent) || !finite(descent) || !finite(lh) || lh <= 0 {
		return streamFace{}, fmt.Errorf("%w: %s ascent=%g descent=%g", ErrInvalidMetrics, stream, ascent, descent)
	}
	if w := face.TextWidth(wrap.DefaultEllipsis); !finite(w) || w < 0 {
		return streamFace{}, fmt.Errorf("%w: %s 宽度测量结果 %g", ErrInvalidMetrics, stream, w)
	}
	return streamFace{face: face, ascent: ascent, lineHeight: lh}, nil
}

// maxFootprintPasses 限制图片尺寸修正后重新折行的次数。
const maxFootprintPasses = 3

type composePass struct {
	title, text             wrap.Result
	titleTabbed, textTabbed int
	narrow                  float64
}

// wrapPass 按图片尺寸 fp 计算收窄宽度与收窄行数，并折行标题与正文。
func wrapPass(cfg Config, fp Footprint, full float64, title, text streamFace) composePass {
	narrow := full
	if cfg.Image.Mode != ImageNone {
		narrow = full - (fp.Width + cfg.ImagePadding)
		if narrow < 0 {
			Logger().Warn("layout: image wider than content box",
				slog.Float64("content", full), slog.Float64("image", fp.Width))
			narrow = 0
		}
	}

	titleCap := lineCap(cfg.TitleMaxLines)
	titleTabbed := min(titleCap, linesCovering(fp.Height, title.lineHeight))
	titleRes := title.breaker().Break(cfg.Title, wrap.Narrowed(titleTabbed, narrow, full), titleCap)
	titleN := len(titleRes.Lines)

	textTabbed := 0
	if covered := float64(titleN)*title.lineHeight + cfg.TitleTextPadding; covered < fp.Height {
		textTabbed = linesCovering(fp.Height-covered, text.lineHeight)
	}
	textCap := lineCap(cfg.TextMaxLines)
	textTabbed = min(textTabbed, textCap)
	textRes := text.breaker().Break(cfg.Text, wrap.Narrowed(textTabbed, narrow, full), textCap)

	return composePass{
		title:       titleRes,
		text:        textRes,
		titleTabbed: titleTabbed,
		textTabbed:  textTabbed,
		narrow:      narrow,
	}
}

func (f streamFace) breaker() wrap.Breaker {
	return wrap.Breaker{Measure: f.face.TextWidth}
}

// place 计算每行的位置；前 narrowed 行右移 offset 给图片让位。
func (f streamFace) place(style TextStyle, lines []string, narrowed int, left, offset, top float64) Block {
	b := Block{
		Style:      style,
		LineHeight: f.lineHeight,
		Ascent:     f.ascent,
		Narrowed:   narrowed,
		Lines:      make([]TextLine, len(lines)),
	}
	for i, content := range lines {
		x := left
		if i < narrowed {
			x += offset
		}
		y := top + float64(i)*f.lineHeight
		b.Lines[i] = TextLine{
			Content:  content,
			X:        x,
			Y:        y,
			Baseline: y + f.ascent,
			Width:    f.face.TextWidth(content),
			Narrowed: i < narrowed,
		}
	}
	return b
}

// contentWidth 返回去掉左右内边距后的可用宽度，不受限时为 +Inf。
func contentWidth(spec MeasureSpec, p Padding) float64 {
	if spec.Mode == Unspecified {
		return math.Inf(1)
	}
	return math.Max(spec.Size-p.Left-p.Right, 0)
}

// intrinsicWidth 为不受限宽度下内容实际占用的宽度。
func intrinsicWidth(res *Result) float64 {
	right := 0.0
	if res.Image != nil {
		right = res.Image.X + res.Image.Width
	}
	for _, b := range []Block{res.Title, res.Text} {
		for _, l := range b.Lines {
			right = math.Max(right, l.X+l.Width)
		}
	}
	if right == 0 {
		return res.Padding.Left + res.Padding.Right
	}
	return right + res.Padding.Right
}

// linesCovering 返回覆盖高度 h 需要的行数。
func linesCovering(h, lineHeight float64) int {
	if h <= 0 {
		return 0
	}
	// 抵消 n*lh/lh 的浮点误差，避免多算一行。
	return int(math.Ceil(h/lineHeight - 1e-9))
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
