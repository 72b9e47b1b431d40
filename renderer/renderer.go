package renderer

import (
	"image"

	"github.com/ByLCY/textshot/layout"
)

// Renderer 将布局结果绘制为内存中的位图；落盘格式由编码器决定。
type Renderer interface {
	Render(result *layout.Result) (image.Image, error)
}
