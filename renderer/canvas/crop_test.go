package canvasrenderer

import (
	"image"
	"image/color"
	"testing"
)

func TestCropRect(t *testing.T) {
	cases := []struct {
		in     image.Rectangle
		aspect float64
		want   image.Rectangle
	}{
		{image.Rect(0, 0, 100, 50), 1, image.Rect(25, 0, 75, 50)},
		{image.Rect(0, 0, 40, 100), 1, image.Rect(0, 30, 40, 70)},
		{image.Rect(10, 10, 110, 60), 2, image.Rect(10, 10, 110, 60)},
		{image.Rect(0, 0, 30, 30), 0, image.Rect(0, 0, 30, 30)},
	}
	for _, c := range cases {
		if got := cropRect(c.in, c.aspect); got != c.want {
			t.Fatalf("cropRect(%v, %g) = %v，期望 %v", c.in, c.aspect, got, c.want)
		}
	}
}

func TestCenterCropKeepsCenter(t *testing.T) {
	// 左右两侧红色，中间 50 像素蓝色；裁成正方形后应只剩蓝色。
	src := image.NewRGBA(image.Rect(0, 0, 100, 50))
	for y := 0; y < 50; y++ {
		for x := 0; x < 100; x++ {
			c := color.RGBA{R: 255, A: 255}
			if x >= 25 && x < 75 {
				c = color.RGBA{B: 255, A: 255}
			}
			src.Set(x, y, c)
		}
	}
	out := CenterCrop(src, 10, 10, 1)
	if out.Bounds().Dx() != 10 || out.Bounds().Dy() != 10 {
		t.Fatalf("输出尺寸错误: %v", out.Bounds())
	}
	if c := out.RGBAAt(5, 5); c.B < 200 || c.R > 50 {
		t.Fatalf("中心像素应为蓝色，实际 %+v", c)
	}

	same := CenterCrop(src, 0, 0, 1)
	if same.Bounds().Dx() != 50 || same.Bounds().Dy() != 50 {
		t.Fatalf("未指定像素尺寸时应保留裁剪尺寸: %v", same.Bounds())
	}
}
