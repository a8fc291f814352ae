package binding

import (
	"encoding/json"
	"testing"
)

func decode(t *testing.T, raw string) any {
	t.Helper()
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		t.Fatalf("解码测试数据失败: %v", err)
	}
	return v
}

func TestInterpolate(t *testing.T) {
	data := decode(t, `{"user":{"name":"Ada","tags":["x","y"]},"price":12,"ratio":0.25}`)
	cases := []struct {
		in, want string
	}{
		{"Hello, ${user.name}!", "Hello, Ada!"},
		{"${user.tags[1]}", "y"},
		{"${price} / ${ratio}", "12 / 0.25"},
		{"${user.age|n/a}", "n/a"},
		{"${user.age|}", ""},
		{"${user.age}", "${user.age}"},
		{"${user.tags[5]}", "${user.tags[5]}"},
		{"no placeholders", "no placeholders"},
	}
	for _, c := range cases {
		if got := Interpolate(c.in, data); got != c.want {
			t.Fatalf("Interpolate(%q) = %q，期望 %q", c.in, got, c.want)
		}
	}
}

func TestInterpolateNilData(t *testing.T) {
	if got := Interpolate("${a|fallback} ${b}", nil); got != "fallback ${b}" {
		t.Fatalf("nil 数据应只应用默认值，实际 %q", got)
	}
}
