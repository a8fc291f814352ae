package layout

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ByLCY/wrapview/binding"
	"github.com/ByLCY/wrapview/dsl"
)

// Build 根据 DSL AST 解析 view 或 label 段落并完成布局。
// data 为 JSON 解码后的数据，用于替换标题与正文中的 ${...} 占位符。
func Build(doc *dsl.Document, data any, opts BuildOptions) (*Result, error) {
	if doc == nil {
		return nil, fmt.Errorf("文档为空")
	}
	if opts.Measurer == nil {
		return nil, ErrNoMeasurer
	}

	res, err := collectResources(doc)
	if err != nil {
		return nil, err
	}

	var out *Result
	switch section := firstLayoutSection(doc); {
	case section == nil:
		return nil, fmt.Errorf("文档中缺少 view 或 label 段落")
	case section.View != nil:
		cfg, width, height, err := ViewConfig(section.View, res, data, opts)
		if err != nil {
			return nil, err
		}
		out, err = Compose(cfg, width, height, opts.Measurer)
		if err != nil {
			return nil, err
		}
	default:
		cfg, width, height, err := labelConfig(section.Label, res, data, opts)
		if err != nil {
			return nil, err
		}
		out, err = ComposeLabel(cfg, width, height, opts.Measurer)
		if err != nil {
			return nil, err
		}
	}

	out.Resources = res
	out.Meta = collectMeta(doc)
	return out, nil
}

// LoadView 解析文档中的 view 段落，返回可交给 NewView 的配置与尺寸约束。
func LoadView(doc *dsl.Document, data any, opts BuildOptions) (Config, MeasureSpec, MeasureSpec, error) {
	if doc == nil {
		return Config{}, MeasureSpec{}, MeasureSpec{}, fmt.Errorf("文档为空")
	}
	res, err := collectResources(doc)
	if err != nil {
		return Config{}, MeasureSpec{}, MeasureSpec{}, err
	}
	for _, section := range doc.Sections {
		if section.View != nil {
			return ViewConfig(section.View, res, data, opts)
		}
	}
	return Config{}, MeasureSpec{}, MeasureSpec{}, fmt.Errorf("文档中缺少 view 段落")
}

// ViewConfig 将 view 段落翻译为 Config 与宽高约束。
func ViewConfig(view *dsl.ViewSection, res ResourceSet, data any, opts BuildOptions) (Config, MeasureSpec, MeasureSpec, error) {
	cfg := NewConfig()
	cfg.ImagePadding = opts.length(Length{Value: DefaultImagePadding, Unit: UnitMM})
	cfg.TitleTextPadding = opts.length(Length{Value: DefaultTitleTextPadding, Unit: UnitMM})

	width, height, padding, err := parseBoxParams(view.Params, opts)
	if err != nil {
		return cfg, width, height, err
	}
	cfg.Padding = padding

	var haveTitle, haveText bool
	defaultStyle, err := textStyle("", nil, res, opts)
	if err != nil {
		return cfg, width, height, err
	}
	cfg.TitleStyle, cfg.TextStyle = defaultStyle, defaultStyle

	for _, stmt := range statements(view.Block) {
		cmd := stmt.Command
		if cmd == nil {
			continue
		}
		styleName, attrs := parseArgs(cmd.Args)
		switch cmd.Name {
		case "image":
			cfg.Image, cfg.ImagePadding, err = imageSizing(styleName, attrs, cfg.ImagePadding, res, opts)
		case "title":
			if haveTitle {
				return cfg, width, height, fmt.Errorf("%s: title 只能出现一次", cmd.Pos)
			}
			haveTitle = true
			cfg.Title = binding.Interpolate(extractText(cmd.Block), data)
			cfg.TitleMaxLines, err = maxLines(attrs, 0)
			if err == nil {
				cfg.TitleStyle, err = textStyle(styleName, styleProps(attrs), res, opts)
			}
		case "text":
			if haveText {
				return cfg, width, height, fmt.Errorf("%s: text 只能出现一次", cmd.Pos)
			}
			haveText = true
			cfg.Text = binding.Interpolate(extractText(cmd.Block), data)
			cfg.TextMaxLines, err = maxLines(attrs, DefaultTextMaxLines)
			if err == nil && attrs["gap"] != "" {
				cfg.TitleTextPadding, err = lengthAttr("gap", attrs["gap"], opts)
			}
			if err == nil {
				cfg.TextStyle, err = textStyle(styleName, styleProps(attrs), res, opts)
			}
		default:
			err = fmt.Errorf("view 中未知指令 %s", cmd.Name)
		}
		if err != nil {
			return cfg, width, height, fmt.Errorf("%s: %w", cmd.Pos, err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return cfg, width, height, err
	}
	return cfg, width, height, nil
}

func labelConfig(label *dsl.LabelSection, res ResourceSet, data any, opts BuildOptions) (LabelConfig, MeasureSpec, MeasureSpec, error) {
	cfg := LabelConfig{MaxLines: DefaultTextMaxLines}
	width, height, padding, err := parseBoxParams(label.Params, opts)
	if err != nil {
		return cfg, width, height, err
	}
	cfg.Padding = padding
	if cfg.Style, err = textStyle("", nil, res, opts); err != nil {
		return cfg, width, height, err
	}
	for _, stmt := range statements(label.Block) {
		cmd := stmt.Command
		if cmd == nil {
			continue
		}
		if cmd.Name != "text" {
			return cfg, width, height, fmt.Errorf("%s: label 中只允许 text 指令，得到 %s", cmd.Pos, cmd.Name)
		}
		styleName, attrs := parseArgs(cmd.Args)
		cfg.Text = binding.Interpolate(extractText(cmd.Block), data)
		if cfg.MaxLines, err = maxLines(attrs, DefaultTextMaxLines); err != nil {
			return cfg, width, height, fmt.Errorf("%s: %w", cmd.Pos, err)
		}
		if cfg.Style, err = textStyle(styleName, styleProps(attrs), res, opts); err != nil {
			return cfg, width, height, fmt.Errorf("%s: %w", cmd.Pos, err)
		}
	}
	return cfg, width, height, nil
}

// imageSizing 解析 `image Name lines 3 gap 2mm` 或 `image src "a.png" width 30mm height 20mm`。
func imageSizing(name string, attrs map[string]string, gap float64, res ResourceSet, opts BuildOptions) (ImageSizing, float64, error) {
	img := ImageSizing{}
	if name != "" {
		r, ok := res.Images[name]
		if !ok {
			return img, gap, fmt.Errorf("image %s 未定义", name)
		}
		img.Src, img.DPI = r.Src, r.DPI
	}
	if src := attrs["src"]; src != "" {
		img.Src = src
	}
	if dpi := attrs["dpi"]; dpi != "" {
		v, err := strconv.Atoi(dpi)
		if err != nil || v <= 0 {
			return img, gap, &ConfigError{Field: "dpi", Reason: fmt.Sprintf("需要正整数: %s", dpi)}
		}
		img.DPI = v
	}
	if g := attrs["gap"]; g != "" {
		v, err := lengthAttr("gap", g, opts)
		if err != nil {
			return img, gap, err
		}
		gap = v
	}

	_, hasLines := attrs["lines"]
	_, hasW := attrs["width"]
	_, hasH := attrs["height"]
	switch {
	case hasLines && (hasW || hasH):
		return img, gap, &ConfigError{Field: "image", Reason: "lines 与 width/height 不能同时使用"}
	case hasLines:
		n, err := strconv.Atoi(attrs["lines"])
		if err != nil {
			return img, gap, &ConfigError{Field: "image-lines", Reason: fmt.Sprintf("需要整数: %s", attrs["lines"])}
		}
		img.Mode, img.Lines = ImageLines, n
	case hasW && hasH:
		var err error
		img.Mode = ImageFixed
		if img.Width, err = lengthAttr("image-width", attrs["width"], opts); err != nil {
			return img, gap, err
		}
		if img.Height, err = lengthAttr("image-height", attrs["height"], opts); err != nil {
			return img, gap, err
		}
	default:
		return img, gap, &ConfigError{Field: "image", Reason: "需要 lines 或 width 与 height"}
	}
	return img, gap, nil
}

// parseBoxParams 解析 view/label 段落头部的尺寸参数。
// width/height 为精确尺寸，max-width/max-height 为上限，缺省为不受限。
func parseBoxParams(params []*dsl.Lexeme, opts BuildOptions) (MeasureSpec, MeasureSpec, Padding, error) {
	var width, height MeasureSpec
	var padding Padding
	for i := 0; i < len(params); i++ {
		key := params[i].Value
		if key == "padding" {
			var vals []float64
			for i+1 < len(params) && len(vals) < 4 && isLength(params[i+1].Value) {
				i++
				v, err := lengthAttr("padding", params[i].Value, opts)
				if err != nil {
					return width, height, padding, err
				}
				vals = append(vals, v)
			}
			if len(vals) == 0 {
				return width, height, padding, &ConfigError{Field: "padding", Reason: "缺少数值"}
			}
			padding = paddingOf(vals)
			continue
		}
		if i+1 >= len(params) {
			return width, height, padding, &ConfigError{Field: key, Reason: "缺少数值"}
		}
		i++
		v, err := lengthAttr(key, params[i].Value, opts)
		if err != nil {
			return width, height, padding, err
		}
		switch key {
		case "width":
			width = ExactlySpec(v)
		case "max-width":
			width = AtMostSpec(v)
		case "height":
			height = ExactlySpec(v)
		case "max-height":
			height = AtMostSpec(v)
		default:
			return width, height, padding, &ConfigError{Field: key, Reason: "未知参数"}
		}
	}
	return width, height, padding, nil
}

// paddingOf 按 CSS 语义展开 1~4 个值：
// 1 个值四边相同；2 个值为 上下/左右；3 个值为 上/左右/下；4 个值为 上/右/下/左。
func paddingOf(vals []float64) Padding {
	switch len(vals) {
	case 1:
		return Padding{Top: vals[0], Right: vals[0], Bottom: vals[0], Left: vals[0]}
	case 2:
		return Padding{Top: vals[0], Right: vals[1], Bottom: vals[0], Left: vals[1]}
	case 3:
		return Padding{Top: vals[0], Right: vals[1], Bottom: vals[2], Left: vals[1]}
	default:
		return Padding{Top: vals[0], Right: vals[1], Bottom: vals[2], Left: vals[3]}
	}
}

// parseArgs 解析命令参数。参数个数为奇数时第一个为名称（样式或图片资源），其余按 key value 成对出现。
func parseArgs(args []*dsl.Lexeme) (string, map[string]string) {
	attrs := map[string]string{}
	cursor := 0
	var name string
	if len(args)%2 == 1 {
		name = args[0].Value
		cursor = 1
	}
	for ; cursor+1 < len(args); cursor += 2 {
		attrs[args[cursor].Value] = args[cursor+1].Value
	}
	return name, attrs
}

// styleProps 挑出可以覆盖样式的行内属性。
func styleProps(attrs map[string]string) map[string]string {
	out := map[string]string{}
	for _, k := range []string{"font", "size", "color", "weight"} {
		if v, ok := attrs[k]; ok {
			out[k] = v
		}
	}
	return out
}

func maxLines(attrs map[string]string, def int) (int, error) {
	v, ok := attrs["max-lines"]
	if !ok {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, &ConfigError{Field: "max-lines", Reason: fmt.Sprintf("需要非负整数: %s", v)}
	}
	return n, nil
}

func lengthAttr(field, value string, opts BuildOptions) (float64, error) {
	l, err := ParseLength(value)
	if err != nil {
		return 0, &ConfigError{Field: field, Reason: err.Error()}
	}
	return opts.length(l), nil
}

func extractText(block *dsl.Block) string {
	var b strings.Builder
	for _, stmt := range statements(block) {
		if stmt.Text != nil {
			b.WriteString(string(stmt.Text.Value))
		}
	}
	return b.String()
}

func statements(block *dsl.Block) []*dsl.Statement {
	if block == nil {
		return nil
	}
	return block.Statements
}

func firstLayoutSection(doc *dsl.Document) *dsl.Section {
	for _, section := range doc.Sections {
		if section.View != nil || section.Label != nil {
			return section
		}
	}
	return nil
}
