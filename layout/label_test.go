package layout

import (
	"errors"
	"testing"
)

func labelConfigOf(text string, maxLines int) LabelConfig {
	return LabelConfig{
		Text:     text,
		Style:    TextStyle{Size: 10},
		MaxLines: maxLines,
		Padding:  Padding{Top: 1, Right: 1, Bottom: 1, Left: 1},
	}
}

func TestComposeLabelWraps(t *testing.T) {
	res, err := ComposeLabel(labelConfigOf("aaaa bbbb cccc", 2), ExactlySpec(100), UnspecifiedSpec(), fixedMeasurer{})
	if err != nil {
		t.Fatalf("布局失败: %v", err)
	}
	assertLines(t, res.Text, "aaaa bbbb", "cccc")
	if res.Width != 100 || res.Height != 22 {
		t.Fatalf("尺寸期望 100x22，实际 %gx%g", res.Width, res.Height)
	}
	if res.Image != nil || len(res.Title.Lines) != 0 {
		t.Fatalf("标签只有正文")
	}
	if l := res.Text.Lines[1]; l.X != 1 || l.Y != 11 {
		t.Fatalf("第二行位置错误: %+v", l)
	}
}

func TestComposeLabelEllipsis(t *testing.T) {
	res, err := ComposeLabel(labelConfigOf("aaaa bbbb cccc", 1), ExactlySpec(100), UnspecifiedSpec(), fixedMeasurer{})
	if err != nil {
		t.Fatalf("布局失败: %v", err)
	}
	assertLines(t, res.Text, "aaaa...")
}

func TestComposeLabelAtMostShrinksToContent(t *testing.T) {
	cfg := labelConfigOf("aaaa bbbb cccc", 2)
	res, err := ComposeLabel(cfg, AtMostSpec(200), UnspecifiedSpec(), fixedMeasurer{})
	if err != nil {
		t.Fatalf("布局失败: %v", err)
	}
	// 198 宽能放下整行 140
	if res.Width != 142 {
		t.Fatalf("AtMost 宽度应收缩到内容 142，实际 %g", res.Width)
	}
	res, err = ComposeLabel(cfg, UnspecifiedSpec(), AtMostSpec(5), fixedMeasurer{})
	if err != nil {
		t.Fatalf("布局失败: %v", err)
	}
	if res.Width != 142 || res.Height != 5 {
		t.Fatalf("尺寸期望 142x5，实际 %gx%g", res.Width, res.Height)
	}
}

func TestComposeLabelRejectsInvalid(t *testing.T) {
	if _, err := ComposeLabel(labelConfigOf("x", -1), ExactlySpec(10), UnspecifiedSpec(), fixedMeasurer{}); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("负行数上限应报错，实际 %v", err)
	}
	if _, err := ComposeLabel(labelConfigOf("x", 1), MeasureSpec{Mode: MeasureMode(9)}, UnspecifiedSpec(), fixedMeasurer{}); !errors.Is(err, ErrInvalidSpec) {
		t.Fatalf("未知模式应报错，实际 %v", err)
	}
	if _, err := ComposeLabel(labelConfigOf("x", 1), ExactlySpec(10), UnspecifiedSpec(), nil); !errors.Is(err, ErrNoMeasurer) {
		t.Fatalf("缺少 Measurer 应报错，实际 %v", err)
	}
}
