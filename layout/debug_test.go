package layout

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestEncodeDebug(t *testing.T) {
	cfg := testConfig()
	cfg.Title = "Hello"
	cfg.Text = "abcdefghij klmnopqrst uv"
	cfg.Image = ImageSizing{Mode: ImageLines, Lines: 3}
	res := mustCompose(t, cfg, ExactlySpec(200), UnspecifiedSpec())

	var buf bytes.Buffer
	if err := EncodeDebug(&buf, res); err != nil {
		t.Fatalf("编码失败: %v", err)
	}
	var dump struct {
		Summary DebugSummary `json:"summary"`
		Layout  Result       `json:"layout"`
	}
	if err := json.Unmarshal(buf.Bytes(), &dump); err != nil {
		t.Fatalf("解码失败: %v", err)
	}
	s := dump.Summary
	if s.TitleLines != 1 || s.TitleNarrowed != 1 || s.TextLines != len(res.Text.Lines) || s.TextNarrowed != res.Text.Narrowed {
		t.Fatalf("摘要错误: %+v", s)
	}
	if s.Footprint == nil || s.Footprint.Width != res.Image.Width {
		t.Fatalf("摘要缺少图片尺寸: %+v", s.Footprint)
	}
	if dump.Layout.Height != res.Height || len(dump.Layout.Title.Lines) != 1 {
		t.Fatalf("布局内容丢失: %+v", dump.Layout)
	}
}

func TestWriteDebugJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.json")
	cfg := testConfig()
	cfg.Text = "one"
	if err := WriteDebugJSON(mustCompose(t, cfg, ExactlySpec(100), UnspecifiedSpec()), path); err != nil {
		t.Fatalf("写入失败: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("读取失败: %v", err)
	}
	if !bytes.Contains(data, []byte(`"content": "one"`)) {
		t.Fatalf("缺少行内容: %s", data)
	}
	if bytes.Contains(data, []byte(`"footprint"`)) {
		t.Fatalf("无图片时不应输出 footprint")
	}

	if err := WriteDebugJSON(nil, path); err == nil {
		t.Fatalf("nil 结果应报错")
	}
}
