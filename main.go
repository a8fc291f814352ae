package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ByLCY/wrapview/dsl"
	"github.com/ByLCY/wrapview/layout"
	"github.com/ByLCY/wrapview/renderer"
	canvasrenderer "github.com/ByLCY/wrapview/renderer/canvas"
	termrenderer "github.com/ByLCY/wrapview/renderer/term"
)

func main() {
	input := flag.String("in", "examples/card.view", "DSL 文件路径")
	output := flag.String("out", "", "输出路径，term 格式为空时写到标准输出")
	debug := flag.String("debug", "", "布局调试 JSON 输出路径")
	dataJSON := flag.String("data", "", "绑定到 DSL 的 JSON 数据")
	format := flag.String("format", "", "输出格式 pdf|term，覆盖设置文件")
	configPath := flag.String("config", "", "TOML 设置文件路径")
	verbose := flag.Bool("v", false, "输出布局调试日志")
	flag.Parse()

	s, err := loadSettings(*configPath)
	if err != nil {
		log.Fatalf("加载设置失败: %v", err)
	}
	if *format != "" {
		s.Format = *format
	}
	if *verbose {
		s.LogLevel = "debug"
	}
	if err := s.validate(); err != nil {
		log.Fatalf("设置无效: %v", err)
	}
	level, _ := parseLevel(s.LogLevel)
	layout.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	var inputData any
	if *dataJSON != "" {
		if err := json.Unmarshal([]byte(*dataJSON), &inputData); err != nil {
			log.Fatalf("解析 data JSON 失败: %v", err)
		}
	}

	baseDir := s.BaseDir
	if baseDir == "" {
		baseDir = filepath.Dir(*input)
	}
	out := *output
	if out == "" && s.Format == "pdf" {
		out = "output/card.pdf"
	}
	if err := run(*input, out, *debug, inputData, newBackend(s, baseDir)); err != nil {
		log.Fatalf("生成 %s 失败: %v", s.Format, err)
	}
	if out != "" {
		fmt.Fprintf(os.Stderr, "已生成 %s：%s\n", s.Format, out)
	}
}

// newBackend 根据输出格式选择测量与渲染后端。
func newBackend(s settings, baseDir string) renderer.Backend {
	if s.Format == "term" {
		return termrenderer.New(termrenderer.Options{CellMM: s.Term.CellMM, Border: s.Term.Border})
	}
	return canvasrenderer.NewRendererWithOptions(canvasrenderer.Options{BaseDir: baseDir, DefaultDPI: s.PDF.DPI})
}

// lengther 由以非 mm 为单位测量的后端实现。
type lengther interface {
	Length(layout.Length) float64
}

// run 串联解析、布局与渲染。outputPath 为空时写到标准输出。
func run(inputPath, outputPath, debugPath string, data any, b renderer.Backend) error {
	if b == nil {
		return fmt.Errorf("renderer 不能为空")
	}
	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("无法打开 DSL 文件 %s: %w", inputPath, err)
	}
	defer file.Close()

	doc, err := dsl.Parse(file)
	if err != nil {
		return fmt.Errorf("解析 DSL 失败: %w", err)
	}

	opts := layout.BuildOptions{Measurer: b}
	if l, ok := b.(lengther); ok {
		opts.Length = l.Length
	}
	result, err := layout.Build(doc, data, opts)
	if err != nil {
		return fmt.Errorf("布局计算失败: %w", err)
	}

	if debugPath != "" {
		if err := writeDebug(result, debugPath); err != nil {
			return err
		}
	}

	rendered, err := b.Render(result)
	if err != nil {
		return fmt.Errorf("渲染失败: %w", err)
	}
	if outputPath == "" {
		_, err = os.Stdout.Write(rendered)
		return err
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}
	if err := os.WriteFile(outputPath, rendered, 0o644); err != nil {
		return fmt.Errorf("写入输出文件失败: %w", err)
	}
	return nil
}

func writeDebug(result *layout.Result, debugPath string) error {
	if err := os.MkdirAll(filepath.Dir(debugPath), 0o755); err != nil {
		return fmt.Errorf("创建调试目录失败: %w", err)
	}
	if err := layout.WriteDebugJSON(result, debugPath); err != nil {
		return fmt.Errorf("输出调试 JSON 失败: %w", err)
	}
	return nil
}
