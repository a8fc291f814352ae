package canvasrenderer

import (
	"image"
	"math"

	"golang.org/x/image/draw"
)

// cropRect 返回 b 中居中、宽高比为 aspect (宽/高) 的最大矩形。
func cropRect(b image.Rectangle, aspect float64) image.Rectangle {
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 || aspect <= 0 || math.IsInf(aspect, 0) || math.IsNaN(aspect) {
		return b
	}
	if float64(w)/float64(h) > aspect {
		cw := int(math.Round(float64(h) * aspect))
		cw = max(cw, 1)
		x0 := b.Min.X + (w-cw)/2
		return image.Rect(x0, b.Min.Y, x0+cw, b.Max.Y)
	}
	ch := int(math.Round(float64(w) / aspect))
	ch = max(ch, 1)
	y0 := b.Min.Y + (h-ch)/2
	return image.Rect(b.Min.X, y0, b.Max.X, y0+ch)
}

// CenterCrop 按 w:h 的比例从 src 中心裁剪，再用 CatmullRom 缩放到 w×h 像素。
// w 或 h 不大于 0 时只裁剪不缩放。
func CenterCrop(src image.Image, w, h int, aspect float64) *image.RGBA {
	r := cropRect(src.Bounds(), aspect)
	if w <= 0 || h <= 0 {
		w, h = r.Dx(), r.Dy()
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, r, draw.Src, nil)
	return dst
}
