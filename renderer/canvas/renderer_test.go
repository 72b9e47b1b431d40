package canvasrenderer

import (
	"image/color"
	"testing"

	"github.com/ByLCY/textshot/layout"
)

// TestAdvancePositive 验证等宽字体度量：前进宽度为正且随字号增大。
func TestAdvancePositive(t *testing.T) {
	r := NewRenderer()
	small, err := r.Advance(12)
	if err != nil {
		t.Fatalf("获取度量失败: %v", err)
	}
	if small <= 0 {
		t.Fatalf("前进宽度应为正: %g", small)
	}
	large, err := r.Advance(24)
	if err != nil {
		t.Fatalf("获取度量失败: %v", err)
	}
	if large <= small {
		t.Fatalf("前进宽度应随字号增大: %g <= %g", large, small)
	}
}

// TestRenderProducesCanvasSizedImage 走通 Build→Render，验证位图尺寸与布局一致。
func TestRenderProducesCanvasSizedImage(t *testing.T) {
	r := NewRenderer()
	inputs := []layout.Input{
		{Name: "a.txt", Content: "hello world\nsecond line"},
		{Name: "b.txt", Content: "another file"},
	}
	res, err := layout.Build(inputs, layout.DefaultStyle(), layout.BuildOptions{
		Metrics:      r,
		Columns:      2,
		CharsPerLine: 20,
	})
	if err != nil {
		t.Fatalf("布局计算失败: %v", err)
	}

	img, err := r.Render(res)
	if err != nil {
		t.Fatalf("渲染失败: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != int(res.Width+0.5) || b.Dy() != int(res.Height+0.5) {
		t.Fatalf("位图尺寸与布局不一致: got=%dx%d want=%gx%g", b.Dx(), b.Dy(), res.Width, res.Height)
	}

	// 背景默认为白色，取画布中心附近一点应接近白色或正文黑色，而不是零值透明。
	_, _, _, a := img.At(b.Dx()/2, b.Dy()/2).RGBA()
	if a == 0 {
		t.Fatalf("画布中心不应为全透明")
	}
}

// TestRenderRejectsInvalidResult 验证空结果与非法尺寸报错。
func TestRenderRejectsInvalidResult(t *testing.T) {
	r := NewRenderer()
	if _, err := r.Render(nil); err == nil {
		t.Fatalf("空结果应报错")
	}
	if _, err := r.Render(&layout.Result{Width: 0, Height: 10, Style: layout.DefaultStyle()}); err == nil {
		t.Fatalf("零宽画布应报错")
	}
}

// TestBackgroundPixel 验证渲染结果左上角为背景色。
func TestBackgroundPixel(t *testing.T) {
	r := NewRenderer()
	st := layout.DefaultStyle()
	st.BorderWidth = 0
	res := &layout.Result{Width: 16, Height: 16, Style: st}
	img, err := r.Render(res)
	if err != nil {
		t.Fatalf("渲染失败: %v", err)
	}
	got := color.RGBAModel.Convert(img.At(1, 1)).(color.RGBA)
	if got.R != 255 || got.G != 255 || got.B != 255 {
		t.Fatalf("背景应为白色，实际: %+v", got)
	}
}
