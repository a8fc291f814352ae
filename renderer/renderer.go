package renderer

import "github.com/ByLCY/wrapview/layout"

// Renderer 将布局结果输出为最终文件，例如 PDF 或终端文本。
// Render 返回生成的二进制数据以及可能的错误。
type Renderer interface {
	Render(result *layout.Result) ([]byte, error)
}

// Backend 同时提供测量与绘制，保证两阶段使用同一套字体度量。
type Backend interface {
	layout.Measurer
	Renderer
}
