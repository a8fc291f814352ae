package fonts

import (
	"bytes"
	"testing"
)

func TestLoadBuiltin(t *testing.T) {
	regular, err := Load("builtin:serif", false, false)
	if err != nil || len(regular) == 0 {
		t.Fatalf("读取 serif 失败: %v", err)
	}
	bold, err := Load("builtin:", true, false)
	if err != nil {
		t.Fatalf("读取默认字体失败: %v", err)
	}
	if bytes.Equal(regular, bold) {
		t.Fatalf("bold 应使用独立字形")
	}
	mono, err := Load("builtin:MONO", true, true)
	if err != nil || len(mono) == 0 {
		t.Fatalf("mono 缺少的字形应退回 regular: %v", err)
	}
	if _, err := Load("builtin:fantasy", false, false); err == nil {
		t.Fatalf("未知字体应返回错误")
	}
	if !IsBuiltin("builtin:sans") || IsBuiltin("fonts/a.ttf") {
		t.Fatalf("IsBuiltin 判断错误")
	}
}
