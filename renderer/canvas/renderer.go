package canvasrenderer

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/ByLCY/wrapview/fonts"
	"github.com/ByLCY/wrapview/layout"
	"github.com/ByLCY/wrapview/renderer"
)

// Renderer 通过 github.com/tdewolff/canvas 测量文字并输出 PDF。
// 所有长度单位为 mm，字号在创建字面时换算为 pt。
type Renderer struct {
	baseDir    string
	defaultDPI int

	// 注入的资源，通过 builtin:<name> 引用
	fontBlobs  map[string][]byte
	imageBlobs map[string][]byte

	fontMu       sync.Mutex
	fontFamilies map[string]*canvas.FontFamily
}

var (
	_ renderer.Backend = (*Renderer)(nil)
	_ layout.Face      = (*face)(nil)
)

// Options configures the canvas renderer.
type Options struct {
	BaseDir string
	// DefaultDPI 为未声明 dpi 的图片的输出分辨率，0 表示保持原图像素。
	DefaultDPI int
	Fonts      map[string]Resource
	Images     map[string]Resource
}

// Resource can be provided either by Bytes or by Path.
type Resource struct {
	Bytes []byte
	Path  string
}

// NewRenderer creates a canvas-based renderer rooted at baseDir for resolving assets.
func NewRenderer(baseDir string) *Renderer { return NewRendererWithOptions(Options{BaseDir: baseDir}) }

// NewRendererWithOptions creates a renderer with injected resources.
// Resources that cannot be read are skipped; the error surfaces on first use.
func NewRendererWithOptions(opts Options) *Renderer {
	return &Renderer{
		baseDir:      opts.BaseDir,
		defaultDPI:   opts.DefaultDPI,
		fontBlobs:    ingest(opts.Fonts),
		imageBlobs:   ingest(opts.Images),
		fontFamilies: map[string]*canvas.FontFamily{},
	}
}

func ingest(in map[string]Resource) map[string][]byte {
	out := map[string][]byte{}
	for name, res := range in {
		if name == "" {
			continue
		}
		data := res.Bytes
		if len(data) == 0 && res.Path != "" {
			data, _ = os.ReadFile(res.Path)
		}
		if len(data) > 0 {
			out[name] = data
		}
	}
	return out
}

// face 适配 canvas.FontFace 到 layout.Face。
type face struct {
	ff *canvas.FontFace
}

func (f *face) TextWidth(s string) float64 { return f.ff.TextWidth(s) }

func (f *face) Metrics() (float64, float64) {
	m := f.ff.Metrics()
	return m.Ascent, math.Abs(m.Descent)
}

// Face 实现 layout.Measurer。
func (r *Renderer) Face(style layout.TextStyle) (layout.Face, error) {
	ff, err := r.fontFace(style)
	if err != nil {
		return nil, err
	}
	return &face{ff: ff}, nil
}

// Render renders the result into a single-page PDF sized to the view.
func (r *Renderer) Render(result *layout.Result) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("渲染结果为空")
	}
	if result.Width <= 0 || result.Height <= 0 {
		return nil, fmt.Errorf("视图尺寸无效: %gx%g", result.Width, result.Height)
	}

	var buf bytes.Buffer
	writer := pdf.New(&buf, result.Width, result.Height, nil)
	meta := result.Meta
	writer.SetInfo(meta.Title, meta.Subject, strings.Join(meta.Keywords, ", "), meta.Author, meta.Creator)

	c := canvas.New(result.Width, result.Height)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV) // 使坐标与布局保持左上角为原点

	if result.Image != nil {
		if err := r.drawImage(ctx, *result.Image); err != nil {
			return nil, err
		}
	}
	for _, b := range []layout.Block{result.Title, result.Text} {
		if err := r.drawBlock(ctx, b, result.Height); err != nil {
			return nil, err
		}
	}
	c.RenderTo(writer)

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("写入 PDF 失败: %w", err)
	}
	return buf.Bytes(), nil
}

// drawBlock 绘制一条文本流，超出视图高度的行不绘制。
func (r *Renderer) drawBlock(ctx *canvas.Context, b layout.Block, height float64) error {
	if len(b.Lines) == 0 {
		return nil
	}
	ff, err := r.fontFace(b.Style)
	if err != nil {
		return err
	}
	for _, line := range b.Lines {
		if line.Y+b.LineHeight > height+1e-9 {
			layout.Logger().Debug("canvas: line clipped", slog.String("content", line.Content))
			break
		}
		ctx.DrawText(line.X, line.Baseline, canvas.NewTextLine(ff, line.Content, canvas.Left))
	}
	return nil
}

func (r *Renderer) drawImage(ctx *canvas.Context, box layout.ImageBox) error {
	if box.Src == "" || box.Width <= 0 || box.Height <= 0 {
		return nil
	}
	src, err := r.loadImage(box.Src)
	if err != nil {
		return err
	}

	dpi := box.DPI
	if dpi <= 0 {
		dpi = r.defaultDPI
	}
	w, h := 0, 0
	if dpi > 0 {
		w = int(math.Ceil(box.Width * float64(dpi) / 25.4))
		h = int(math.Ceil(box.Height * float64(dpi) / 25.4))
	}
	cropped := CenterCrop(src, w, h, box.Width/box.Height)
	dpmm := float64(cropped.Bounds().Dx()) / box.Width
	if dpmm <= 0 {
		dpmm = 1
	}
	ctx.DrawImage(box.X, box.Y, cropped, canvas.DPMM(dpmm))
	return nil
}

func (r *Renderer) loadImage(src string) (image.Image, error) {
	if fonts.IsBuiltin(src) {
		name := strings.TrimPrefix(src, fonts.Prefix)
		blob, ok := r.imageBlobs[name]
		if !ok {
			return nil, fmt.Errorf("找不到内置图片资源 %s", src)
		}
		img, _, err := image.Decode(bytes.NewReader(blob))
		if err != nil {
			return nil, fmt.Errorf("解码内置图片 %s 失败: %w", src, err)
		}
		return img, nil
	}
	path, err := r.resolvePath(src)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("读取图片 %s 失败: %w", src, err)
	}
	defer file.Close()
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("解码图片 %s 失败: %w", src, err)
	}
	return img, nil
}

func (r *Renderer) resolvePath(src string) (string, error) {
	if filepath.IsAbs(src) {
		return src, nil
	}
	if r.baseDir == "" {
		return "", fmt.Errorf("未指定资源目录时不允许直接使用路径：%s（请改用 builtin:）", src)
	}
	return filepath.Join(r.baseDir, src), nil
}

func (r *Renderer) fontFace(style layout.TextStyle) (*canvas.FontFace, error) {
	family, fontStyle, err := r.ensureFontFamily(style.Font, style.Variant)
	if err != nil {
		return nil, err
	}
	return family.Face(toPt(style.Size), colorFromLayout(style.Color), fontStyle, canvas.FontNormal), nil
}

// ensureFontFamily 按字体与变体缓存 FontFamily。加载失败时退回内置 serif。
func (r *Renderer) ensureFontFamily(font layout.FontResource, v layout.FontVariant) (*canvas.FontFamily, canvas.FontStyle, error) {
	style := fontStyleOf(v)
	key := fmt.Sprintf("%s|%s|%s", font.Name, font.Src, v)

	r.fontMu.Lock()
	defer r.fontMu.Unlock()
	if family, ok := r.fontFamilies[key]; ok {
		return family, style, nil
	}

	name := font.Family
	if name == "" {
		name = font.Name
	}
	family := canvas.NewFontFamily(name)
	data, err := r.loadFontBytes(font, v)
	if err == nil {
		err = family.LoadFont(data, 0, style)
	}
	if err != nil {
		layout.Logger().Warn("canvas: font fallback",
			slog.String("font", font.Name), slog.String("src", font.Src), slog.Any("err", err))
		family = canvas.NewFontFamily("wrapview-fallback")
		data, fbErr := r.fallbackBytes(font, v)
		if fbErr == nil {
			fbErr = family.LoadFont(data, 0, style)
		}
		if fbErr != nil {
			return nil, style, fmt.Errorf("加载字体 %s 失败: %w", font.Name, err)
		}
	}
	r.fontFamilies[key] = family
	return family, style, nil
}

func (r *Renderer) loadFontBytes(font layout.FontResource, v layout.FontVariant) ([]byte, error) {
	src := font.Src
	if src == "" {
		return nil, fmt.Errorf("字体 %s 缺少 src", font.Name)
	}
	if fonts.IsBuiltin(src) {
		if blob, ok := r.fontBlobs[strings.TrimPrefix(src, fonts.Prefix)]; ok {
			return blob, nil
		}
		return fonts.Load(src, isBold(v), isItalic(v))
	}
	path, err := r.resolvePath(src)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(path)
}

// fallbackBytes 先尝试字体自身声明的 fallback，再退回内置 serif。
func (r *Renderer) fallbackBytes(font layout.FontResource, v layout.FontVariant) ([]byte, error) {
	if font.Fallback != "" {
		if data, err := r.loadFontBytes(layout.FontResource{Name: font.Name, Src: font.Fallback}, v); err == nil {
			return data, nil
		}
	}
	return fonts.Load(fonts.Prefix+"serif", isBold(v), isItalic(v))
}

func isBold(v layout.FontVariant) bool {
	return v == layout.VariantBold || v == layout.VariantBoldItalic
}

func isItalic(v layout.FontVariant) bool {
	return v == layout.VariantItalic || v == layout.VariantBoldItalic
}

func fontStyleOf(v layout.FontVariant) canvas.FontStyle {
	style := canvas.FontRegular
	if isBold(v) {
		style = canvas.FontBold
	}
	if isItalic(v) {
		style |= canvas.FontItalic
	}
	return style
}

func colorFromLayout(c layout.Color) color.Color {
	return canvas.RGBA(float64(c.R)/255.0, float64(c.G)/255.0, float64(c.B)/255.0, 1.0)
}

// toPt 将毫米(mm)转换为点(pt)。
func toPt(mm float64) float64 { return mm * layout.MmToPt }
