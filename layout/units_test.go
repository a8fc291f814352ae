package layout

import (
	"math"
	"testing"
)

// TestPtMmRoundTrip 验证 pt↔mm 换算的往返精度（允许极小的浮点误差）。
func TestPtMmRoundTrip(t *testing.T) {
	samples := []float64{0, 0.001, 1, 12, 14.4, 72, 96, 144, 1000}
	for _, pt := range samples {
		mm := Length{Value: pt, Unit: UnitPT}.ToMM()
		back := Length{Value: mm, Unit: UnitMM}.ToPT()
		if diff := math.Abs(back - pt); diff > 1e-9 {
			t.Fatalf("pt→mm→pt 往返误差过大: in=%gpt mm=%g back=%g diff=%g", pt, mm, back, diff)
		}
	}
}

// TestLengthToConversions 覆盖 Length 在常见单位上到 mm 的转换。
func TestLengthToConversions(t *testing.T) {
	cases := []struct {
		in   Length
		want float64
	}{
		{Length{Value: 1, Unit: UnitIN}, 25.4},
		{Length{Value: 2.54, Unit: UnitCM}, 25.4},
		{Length{Value: 12, Unit: UnitPT}, 12 * PtToMm},
		{Length{Value: 7, Unit: UnitNone}, 7},
	}
	for _, c := range cases {
		if got := c.in.ToMM(); math.Abs(got-c.want) > 1e-9 {
			t.Fatalf("%s 转 mm 期望 %g，实际 %g", c.in, c.want, got)
		}
	}
}

// TestParseLength 验证单位后缀与错误输入。
func TestParseLength(t *testing.T) {
	l, err := ParseLength(" 12PT ")
	if err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	if l.Unit != UnitPT || l.Value != 12 {
		t.Fatalf("期望 12pt，实际 %+v", l)
	}
	l, err = ParseLength("3.5")
	if err != nil || l.Unit != UnitNone || l.Value != 3.5 {
		t.Fatalf("期望无单位 3.5，实际 %+v err=%v", l, err)
	}
	if _, err := ParseLength("portrait"); err == nil {
		t.Fatalf("非数字应返回错误")
	}
	if _, err := ParseLength(""); err == nil {
		t.Fatalf("空字符串应返回错误")
	}
}
