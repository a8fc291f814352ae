package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	canvasrenderer "github.com/ByLCY/wrapview/renderer/canvas"
	termrenderer "github.com/ByLCY/wrapview/renderer/term"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("写入 %s 失败: %v", name, err)
	}
	return path
}

func TestLoadSettings(t *testing.T) {
	s, err := loadSettings("")
	if err != nil {
		t.Fatalf("默认设置不应报错: %v", err)
	}
	if s.Format != "pdf" || s.Term.CellMM != termrenderer.DefaultCellMM {
		t.Fatalf("默认设置异常: %+v", s)
	}

	dir := t.TempDir()
	path := writeFile(t, dir, "settings.toml", `
format = "term"
log_level = "debug"

[pdf]
dpi = 300

[term]
cell_mm = 2
border = true
`)
	s, err = loadSettings(path)
	if err != nil {
		t.Fatalf("加载设置失败: %v", err)
	}
	if s.Format != "term" || s.LogLevel != "debug" || s.PDF.DPI != 300 || s.Term.CellMM != 2 || !s.Term.Border {
		t.Fatalf("设置解析错误: %+v", s)
	}
}

func TestLoadSettingsRejects(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"未知键":  "colour = \"red\"\n",
		"未知格式": "format = \"svg\"\n",
		"未知级别": "log_level = \"loud\"\n",
		"负 dpi": "[pdf]\ndpi = -1\n",
		"语法错误": "format = \n",
	}
	for name, content := range cases {
		path := writeFile(t, dir, "bad.toml", content)
		if _, err := loadSettings(path); err == nil {
			t.Fatalf("%s: 应报错", name)
		}
	}
	if _, err := loadSettings(filepath.Join(dir, "missing.toml")); err == nil {
		t.Fatalf("缺失文件应报错")
	}
}

const cliDSL = `doc T v1 {
  view width 30mm padding 2.5mm {
    title { "${name|Hi}" }
  }
}
`

func TestRunTerm(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "t.view", cliDSL)
	out := filepath.Join(dir, "out", "t.txt")
	debug := filepath.Join(dir, "debug", "t.json")

	b := termrenderer.New(termrenderer.Options{})
	if err := run(in, out, debug, map[string]any{"name": "Wrap"}, b); err != nil {
		t.Fatalf("run 失败: %v", err)
	}
	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("读取输出失败: %v", err)
	}
	if !strings.Contains(string(got), " Wrap") {
		t.Fatalf("输出缺少标题: %q", got)
	}
	// 按单元格换算：30mm / 2.5mm = 12 列
	if first := strings.SplitN(string(got), "\n", 2)[0]; len(first) != 12 {
		t.Fatalf("首行应为 12 列，得到 %d", len(first))
	}
	dbg, err := os.ReadFile(debug)
	if err != nil {
		t.Fatalf("读取调试 JSON 失败: %v", err)
	}
	if !bytes.Contains(dbg, []byte(`"Wrap"`)) {
		t.Fatalf("调试 JSON 缺少行内容: %s", dbg)
	}
}

func TestRunPDF(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "t.view", cliDSL)
	out := filepath.Join(dir, "t.pdf")

	b := canvasrenderer.NewRenderer(dir)
	if err := run(in, out, "", nil, b); err != nil {
		t.Fatalf("run 失败: %v", err)
	}
	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("读取 PDF 失败: %v", err)
	}
	if !bytes.HasPrefix(got, []byte("%PDF")) {
		t.Fatalf("输出不是 PDF")
	}
}

func TestRunErrors(t *testing.T) {
	dir := t.TempDir()
	b := termrenderer.New(termrenderer.Options{})
	if err := run(filepath.Join(dir, "missing.view"), "", "", nil, b); err == nil {
		t.Fatalf("缺失输入应报错")
	}
	bad := writeFile(t, dir, "bad.view", "doc {")
	if err := run(bad, "", "", nil, b); err == nil {
		t.Fatalf("语法错误应报错")
	}
	noView := writeFile(t, dir, "empty.view", "doc T v1 { meta { title: \"x\" } }")
	if err := run(noView, "", "", nil, b); err == nil {
		t.Fatalf("缺少 view/label 应报错")
	}
	if err := run(bad, "", "", nil, nil); err == nil {
		t.Fatalf("nil 后端应报错")
	}
}
