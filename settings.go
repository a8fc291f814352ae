package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/BurntSushi/toml"

	termrenderer "github.com/ByLCY/wrapview/renderer/term"
)

// settings 是 -config 指定的 TOML 文件内容，命令行参数优先。
//
//	format = "term"
//	base_dir = "assets"
//	log_level = "debug"
//
//	[pdf]
//	dpi = 300
//
//	[term]
//	cell_mm = 2.5
//	border = true
type settings struct {
	Format   string       `toml:"format"`
	BaseDir  string       `toml:"base_dir"`
	LogLevel string       `toml:"log_level"`
	PDF      pdfSettings  `toml:"pdf"`
	Term     termSettings `toml:"term"`
}

type pdfSettings struct {
	DPI int `toml:"dpi"`
}

type termSettings struct {
	CellMM float64 `toml:"cell_mm"`
	Border bool    `toml:"border"`
}

func defaultSettings() settings {
	return settings{
		Format:   "pdf",
		LogLevel: "warn",
		Term:     termSettings{CellMM: termrenderer.DefaultCellMM},
	}
}

// loadSettings 读取 TOML 设置；path 为空时返回默认值。未知键视为错误。
func loadSettings(path string) (settings, error) {
	s := defaultSettings()
	if path == "" {
		return s, nil
	}
	md, err := toml.DecodeFile(path, &s)
	if err != nil {
		return s, fmt.Errorf("读取设置 %s 失败: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return s, fmt.Errorf("设置 %s 含未知键: %s", path, strings.Join(keys, ", "))
	}
	return s, s.validate()
}

func (s settings) validate() error {
	switch s.Format {
	case "pdf", "term":
	default:
		return fmt.Errorf("未知输出格式 %q（可选 pdf、term）", s.Format)
	}
	if _, err := parseLevel(s.LogLevel); err != nil {
		return err
	}
	if s.PDF.DPI < 0 {
		return fmt.Errorf("pdf.dpi 不能为负数: %d", s.PDF.DPI)
	}
	if s.Term.CellMM < 0 {
		return fmt.Errorf("term.cell_mm 不能为负数: %g", s.Term.CellMM)
	}
	return nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("未知日志级别 %q", s)
	}
	return level, nil
}
