// Package termrenderer 在终端中预览布局：一个单元格为一个长度单位，图片以色块占位。
package termrenderer

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ByLCY/wrapview/layout"
	"github.com/ByLCY/wrapview/renderer"
	"github.com/ByLCY/wrapview/wrap"
)

// DefaultCellMM 为一个终端单元格对应的毫米数。
const DefaultCellMM = 2.5

const imageRune = "▒"

var _ renderer.Backend = (*Renderer)(nil)

// Options configures the terminal renderer.
type Options struct {
	// CellMM 将 DSL 中的长度换算为单元格，0 表示 DefaultCellMM。
	CellMM float64
	// Border 为预览加上圆角边框。
	Border bool
}

// Renderer 以单元格为单位测量文字，并用 lipgloss 输出带样式的文本。
type Renderer struct {
	cellMM float64
	border bool

	imageStyle lipgloss.Style
}

func New(opts Options) *Renderer {
	cell := opts.CellMM
	if cell <= 0 {
		cell = DefaultCellMM
	}
	return &Renderer{
		cellMM:     cell,
		border:     opts.Border,
		imageStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("242")),
	}
}

// Length 将长度换算为整数个单元格，可用作 layout.BuildOptions.Length。
func (r *Renderer) Length(l layout.Length) float64 {
	return math.Round(l.ToMM() / r.cellMM)
}

// Face 实现 layout.Measurer；每行高度为一个单元格。
func (r *Renderer) Face(layout.TextStyle) (layout.Face, error) { return cellFace{}, nil }

type cellFace struct{}

func (cellFace) TextWidth(s string) float64   { return wrap.CellWidth(s) }
func (cellFace) Metrics() (float64, float64) { return 1, 0 }

type span struct {
	x     int
	text  string
	style lipgloss.Style
}

// Render 输出预览文本。超出视图高度的行被裁掉。
func (r *Renderer) Render(result *layout.Result) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("渲染结果为空")
	}
	cols := int(math.Ceil(result.Width))
	rows := int(math.Ceil(result.Height))
	if cols <= 0 || rows <= 0 {
		return nil, fmt.Errorf("视图尺寸无效: %gx%g", result.Width, result.Height)
	}

	grid := make([][]span, rows)
	if img := result.Image; img != nil {
		x, y := cell(img.X), cell(img.Y)
		w, h := cell(img.Width), cell(img.Height)
		for row := y; row < y+h && row < rows; row++ {
			grid[row] = append(grid[row], span{x: x, text: strings.Repeat(imageRune, w), style: r.imageStyle})
		}
	}
	for _, b := range []layout.Block{result.Title, result.Text} {
		style := textStyle(b.Style)
		for _, line := range b.Lines {
			row := cell(line.Y)
			if row >= rows {
				break
			}
			grid[row] = append(grid[row], span{x: cell(line.X), text: line.Content, style: style})
		}
	}

	out := make([]string, rows)
	for i, spans := range grid {
		out[i] = renderRow(spans, cols)
	}
	body := strings.Join(out, "\n")
	if r.border {
		body = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Render(body)
	}
	return []byte(body + "\n"), nil
}

// renderRow 按列位置拼接同一行的片段，并用空格补齐到 cols 列。
func renderRow(spans []span, cols int) string {
	sort.SliceStable(spans, func(i, j int) bool { return spans[i].x < spans[j].x })
	var b strings.Builder
	cursor := 0
	for _, s := range spans {
		if s.x > cursor {
			b.WriteString(strings.Repeat(" ", s.x-cursor))
			cursor = s.x
		}
		b.WriteString(s.style.Render(s.text))
		cursor += int(wrap.CellWidth(s.text))
	}
	if cursor < cols {
		b.WriteString(strings.Repeat(" ", cols-cursor))
	}
	return b.String()
}

func textStyle(ts layout.TextStyle) lipgloss.Style {
	c := ts.Color
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B))).
		Bold(ts.Variant == layout.VariantBold || ts.Variant == layout.VariantBoldItalic).
		Italic(ts.Variant == layout.VariantItalic || ts.Variant == layout.VariantBoldItalic)
}

func cell(v float64) int {
	return int(math.Round(v))
}
