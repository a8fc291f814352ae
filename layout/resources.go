package layout

import (
	"fmt"
	"maps"
	"strconv"
	"strings"

	"github.com/ByLCY/wrapview/dsl"
)

// defaultFont 在文档未声明任何字体时使用。
var defaultFont = FontResource{Name: "Body", Src: "builtin:serif", Family: "Body"}

var defaultColor = Color{R: 30, G: 30, B: 30}

func collectResources(doc *dsl.Document) (ResourceSet, error) {
	res := ResourceSet{
		Fonts:  map[string]FontResource{},
		Colors: map[string]Color{},
		Images: map[string]ImageResource{},
		Styles: map[string]Style{},
	}
	rawStyles := map[string]Style{}

	for _, section := range doc.Sections {
		if section.Resources == nil || section.Resources.Block == nil {
			continue
		}
		for _, stmt := range section.Resources.Block.Statements {
			cmd := stmt.Command
			if cmd == nil || len(cmd.Args) == 0 {
				continue
			}
			name := cmd.Args[0].Value
			switch cmd.Name {
			case "font":
				res.Fonts[name] = parseFontResource(name, cmd.Block)
			case "color":
				c, err := parseColor(cmd.Args[len(cmd.Args)-1].Value)
				if err != nil {
					return res, fmt.Errorf("%s: color %s: %w", cmd.Pos, name, err)
				}
				res.Colors[name] = c
			case "image":
				img, err := parseImageResource(name, cmd.Block)
				if err != nil {
					return res, fmt.Errorf("%s: image %s: %w", cmd.Pos, name, err)
				}
				res.Images[name] = img
			case "style":
				rawStyles[name] = parseStyleResource(cmd)
			default:
				return res, fmt.Errorf("%s: 未知资源类型 %s", cmd.Pos, cmd.Name)
			}
		}
	}

	if len(res.Fonts) == 0 {
		res.Fonts[defaultFont.Name] = defaultFont
	}

	styles, err := resolveStyles(rawStyles)
	if err != nil {
		return res, err
	}
	res.Styles = styles
	return res, nil
}

func collectMeta(doc *dsl.Document) DocumentMeta {
	meta := DocumentMeta{Creator: "Wrapview"}
	for _, section := range doc.Sections {
		if section.Meta == nil || section.Meta.Block == nil {
			continue
		}
		for _, stmt := range section.Meta.Block.Statements {
			a := stmt.Assignment
			if a == nil {
				continue
			}
			switch strings.ToLower(a.Key) {
			case "title":
				meta.Title = valueToString(a.Value)
			case "author":
				meta.Author = valueToString(a.Value)
			case "subject":
				meta.Subject = valueToString(a.Value)
			case "creator":
				meta.Creator = valueToString(a.Value)
			case "keywords":
				meta.Keywords = valueToStringSlice(a.Value)
			}
		}
	}
	return meta
}

func parseFontResource(name string, block *dsl.Block) FontResource {
	font := FontResource{Name: name, Family: name}
	for _, a := range assignments(block) {
		switch a.Key {
		case "src":
			font.Src = valueToString(a.Value)
		case "fallback":
			font.Fallback = valueToString(a.Value)
		}
	}
	if font.Src == "" {
		font.Src = defaultFont.Src
	}
	return font
}

func parseImageResource(name string, block *dsl.Block) (ImageResource, error) {
	img := ImageResource{Name: name}
	for _, a := range assignments(block) {
		switch a.Key {
		case "src":
			img.Src = valueToString(a.Value)
		case "dpi":
			v, err := strconv.Atoi(valueToString(a.Value))
			if err != nil || v <= 0 {
				return img, &ConfigError{Field: "dpi", Reason: fmt.Sprintf("需要正整数: %s", valueToString(a.Value))}
			}
			img.DPI = v
		}
	}
	return img, nil
}

func parseStyleResource(cmd *dsl.Command) Style {
	style := Style{Name: cmd.Args[0].Value, Props: map[string]string{}}
	if len(cmd.Args) >= 3 && strings.EqualFold(cmd.Args[1].Value, "extends") {
		style.Extends = cmd.Args[2].Value
	}
	for _, a := range assignments(cmd.Block) {
		if val := valueToString(a.Value); val != "" {
			style.Props[a.Key] = val
		}
	}
	return style
}

// resolveStyles 展开 extends 继承链，子样式覆盖父样式的同名属性。
func resolveStyles(styles map[string]Style) (map[string]Style, error) {
	resolved := map[string]Style{}
	visiting := map[string]bool{}

	var visit func(name string) (Style, error)
	visit = func(name string) (Style, error) {
		if style, ok := resolved[name]; ok {
			return style, nil
		}
		style, ok := styles[name]
		if !ok {
			return Style{}, fmt.Errorf("style %s 未定义", name)
		}
		if visiting[name] {
			return Style{}, fmt.Errorf("style 继承存在循环：%s", name)
		}
		visiting[name] = true

		props := map[string]string{}
		if style.Extends != "" {
			parent, err := visit(style.Extends)
			if err != nil {
				return Style{}, err
			}
			maps.Copy(props, parent.Props)
		}
		maps.Copy(props, style.Props)
		style.Props = props
		resolved[name] = style
		delete(visiting, name)
		return style, nil
	}

	for name := range styles {
		if _, err := visit(name); err != nil {
			return nil, err
		}
	}
	return resolved, nil
}

// textStyle 合并命名样式与行内属性，得到交给 Measurer 的 TextStyle。
func textStyle(name string, inline map[string]string, res ResourceSet, opts BuildOptions) (TextStyle, error) {
	props := map[string]string{}
	if name != "" {
		s, ok := res.Styles[name]
		if !ok {
			return TextStyle{}, fmt.Errorf("style %s 未定义", name)
		}
		maps.Copy(props, s.Props)
	}
	maps.Copy(props, inline)

	style := TextStyle{
		Font:  defaultFontOf(res),
		Size:  opts.length(Length{Value: 12, Unit: UnitPT}),
		Color: resolveColor(props["color"], res),
	}
	if f := props["font"]; f != "" {
		font, ok := res.Fonts[f]
		switch {
		case ok:
			style.Font = font
		case strings.HasPrefix(f, "builtin:"):
			style.Font = FontResource{Name: f, Src: f, Family: f}
		default:
			return TextStyle{}, &ConfigError{Field: "font", Reason: fmt.Sprintf("字体 %s 未定义", f)}
		}
	}
	if s := props["size"]; s != "" {
		l, err := ParseLength(s)
		if err != nil || l.Value <= 0 {
			return TextStyle{}, &ConfigError{Field: "size", Reason: fmt.Sprintf("无法解析字号 %q", s)}
		}
		style.Size = opts.length(l)
	}
	if w := props["weight"]; w != "" {
		v, ok := ParseFontVariant(strings.ToLower(w))
		if !ok {
			return TextStyle{}, &ConfigError{Field: "weight", Reason: fmt.Sprintf("未知字重 %s", w)}
		}
		style.Variant = v
	}
	return style, nil
}

// defaultFontOf 优先使用名为 Body 的字体，否则取名称最小的字体以保证结果确定。
func defaultFontOf(res ResourceSet) FontResource {
	if f, ok := res.Fonts[defaultFont.Name]; ok {
		return f
	}
	var best FontResource
	for name, f := range res.Fonts {
		if best.Name == "" || name < best.Name {
			best = f
		}
	}
	if best.Name == "" {
		return defaultFont
	}
	return best
}

func resolveColor(value string, res ResourceSet) Color {
	if value == "" {
		return defaultColor
	}
	if c, ok := res.Colors[value]; ok {
		return c
	}
	if c, err := parseColor(value); err == nil {
		return c
	}
	return defaultColor
}

// parseColor 支持 #rgb、#rrggbb 与 #rrggbbaa（忽略 alpha）。
func parseColor(value string) (Color, error) {
	hex := strings.TrimPrefix(value, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 && len(hex) != 8 {
		return Color{}, fmt.Errorf("颜色值 %s 无法解析", value)
	}
	var rgb [3]int
	for i := range rgb {
		v, err := strconv.ParseUint(hex[2*i:2*i+2], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("颜色值 %s 无法解析", value)
		}
		rgb[i] = int(v)
	}
	return Color{R: rgb[0], G: rgb[1], B: rgb[2]}, nil
}

func assignments(block *dsl.Block) []*dsl.Assignment {
	if block == nil {
		return nil
	}
	var out []*dsl.Assignment
	for _, stmt := range block.Statements {
		if stmt.Assignment != nil {
			out = append(out, stmt.Assignment)
		}
	}
	return out
}

func valueToString(val *dsl.Value) string {
	if val == nil {
		return ""
	}
	switch {
	case val.String != nil:
		return string(*val.String)
	case val.Number != nil:
		return *val.Number
	case val.Color != nil:
		return *val.Color
	case val.Expr != nil:
		var b strings.Builder
		for _, part := range val.Expr.Parts {
			b.WriteString(part.Value)
		}
		return b.String()
	default:
		return ""
	}
}

func valueToStringSlice(val *dsl.Value) []string {
	if val == nil {
		return nil
	}
	if val.Array == nil {
		if s := valueToString(val); s != "" {
			return []string{s}
		}
		return nil
	}
	out := make([]string, 0, len(val.Array.Values))
	for _, item := range val.Array.Values {
		if s := valueToString(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}
