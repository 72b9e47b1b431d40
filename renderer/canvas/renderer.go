package canvasrenderer

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/rasterizer"

	"github.com/ByLCY/textshot/fonts"
	"github.com/ByLCY/textshot/layout"
	"github.com/ByLCY/textshot/renderer"
)

// Renderer 通过 github.com/tdewolff/canvas 绘制布局结果。
// 画布以 1 单位 = 1 像素建立，光栅化分辨率固定为 DPMM(1)，
// 因此布局阶段的像素坐标可以直接用作画布坐标。
type Renderer struct {
	fontMu   sync.Mutex
	families map[string]*canvas.FontFamily
}

var (
	_ renderer.Renderer = (*Renderer)(nil)
	_ layout.Metrics    = (*Renderer)(nil)
)

// NewRenderer 创建基于 canvas 的渲染器，内置字体按需加载并缓存。
func NewRenderer() *Renderer {
	return &Renderer{families: map[string]*canvas.FontFamily{}}
}

// Advance 实现 layout.Metrics：返回内置等宽字体在给定字号（像素）下的字符前进宽度。
func (r *Renderer) Advance(fontSize float64) (float64, error) {
	face, err := r.fontFace(fonts.Mono, fontSize, layout.Color{})
	if err != nil {
		return 0, err
	}
	return face.TextWidth("M"), nil
}

// Render 将布局结果光栅化为 RGBA 位图。
func (r *Renderer) Render(result *layout.Result) (image.Image, error) {
	if result == nil {
		return nil, fmt.Errorf("渲染结果为空")
	}
	if result.Width <= 0 || result.Height <= 0 {
		return nil, fmt.Errorf("画布尺寸无效: %gx%g", result.Width, result.Height)
	}
	st := result.Style

	textFace, err := r.fontFace(fonts.Mono, st.FontSize, st.Text)
	if err != nil {
		return nil, err
	}
	headerFace, err := r.fontFace(fonts.MonoBold, st.FontSize+layout.HeaderFontDelta, st.Filename)
	if err != nil {
		return nil, err
	}

	c := canvas.New(result.Width, result.Height)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV) // 使坐标与布局保持左上角为原点

	// 背景
	ctx.SetFillColor(colorFromLayout(st.Background))
	ctx.DrawPath(0, 0, canvas.Rectangle(result.Width, result.Height))

	for _, p := range result.Placements {
		switch p.Kind {
		case layout.KindBorder:
			drawBorder(ctx, p, st)
		case layout.KindSeparator:
			drawSeparator(ctx, p, st)
		case layout.KindHeader:
			drawTextLine(ctx, headerFace, p)
		case layout.KindTextLine:
			drawTextLine(ctx, textFace, p)
		}
	}

	return rasterizer.Draw(c, canvas.DPMM(1.0), canvas.LinearColorSpace{}), nil
}

// drawBorder 沿外框内侧描边，使整条边框落在 Placement 的 W×H 之内。
func drawBorder(ctx *canvas.Context, p layout.Placement, st layout.Style) {
	if st.BorderWidth <= 0 {
		return
	}
	inset := st.BorderWidth / 2
	ctx.SetFillColor(color.RGBA{0, 0, 0, 0})
	ctx.SetStrokeColor(colorFromLayout(st.Border))
	ctx.SetStrokeWidth(st.BorderWidth)
	ctx.DrawPath(p.X+inset, p.Y+inset, canvas.Rectangle(p.W-st.BorderWidth, p.H-st.BorderWidth))
}

func drawSeparator(ctx *canvas.Context, p layout.Placement, st layout.Style) {
	ctx.SetStrokeColor(colorFromLayout(st.Border))
	ctx.SetStrokeWidth(p.H)
	path := &canvas.Path{}
	path.MoveTo(0, 0)
	path.LineTo(p.W, 0)
	ctx.DrawPath(p.X, p.Y, path)
}

// drawTextLine 以 Placement 顶边加字体上升部作为基线绘制一行文本。
func drawTextLine(ctx *canvas.Context, face *canvas.FontFace, p layout.Placement) {
	if p.Content == "" {
		return
	}
	baseline := p.Y + face.Metrics().Ascent
	ctx.DrawText(p.X, baseline, canvas.NewTextLine(face, p.Content, canvas.Left))
}

// fontFace 创建指定内置字体、字号（像素）与颜色的字体面。字号在此处换算为 pt。
func (r *Renderer) fontFace(name string, sizePx float64, col layout.Color) (*canvas.FontFace, error) {
	family, err := r.ensureFamily(name)
	if err != nil {
		return nil, err
	}
	return family.Face(sizePx*layout.PxToPt, colorFromLayout(col), canvas.FontRegular, canvas.FontNormal), nil
}

func (r *Renderer) ensureFamily(name string) (*canvas.FontFamily, error) {
	r.fontMu.Lock()
	defer r.fontMu.Unlock()

	if family, ok := r.families[name]; ok {
		return family, nil
	}
	data, err := fonts.Load(name)
	if err != nil {
		return nil, err
	}
	family := canvas.NewFontFamily(name)
	if err := family.LoadFont(data, 0, canvas.FontRegular); err != nil {
		return nil, fmt.Errorf("加载字体 %s 失败: %w", name, err)
	}
	r.families[name] = family
	return family, nil
}

func colorFromLayout(c layout.Color) color.Color {
	return canvas.RGBA(float64(c.R)/255.0, float64(c.G)/255.0, float64(c.B)/255.0, 1.0)
}
