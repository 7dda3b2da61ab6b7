package canvasrenderer

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/ByLCY/poptag/layout"
	"github.com/ByLCY/poptag/product"
)

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := New(Options{})
	if err != nil {
		t.Fatalf("构造渲染器失败: %v", err)
	}
	return r
}

// TestMeasurerMonotonic 验证测量后端的基本单调性：字号越大越宽，
// 文本越长越宽，上升部为正。
func TestMeasurerMonotonic(t *testing.T) {
	r := newTestRenderer(t)
	font := layout.FontSpec{Style: "bold", Size: 10}

	w1 := r.TextWidth("Rp 35.000", font)
	w2 := r.TextWidth("Rp 35.000", layout.FontSpec{Style: "bold", Size: 20})
	if !(0 < w1 && w1 < w2) {
		t.Fatalf("宽度应随字号增长: w1=%g w2=%g", w1, w2)
	}
	if r.TextWidth("Rp", font) >= w1 {
		t.Fatalf("短文本不应比长文本宽")
	}
	if a := r.Ascent(font); a <= 0 || a > font.Size*1.2 {
		t.Fatalf("上升部不合理: %g", a)
	}
}

// TestRenderPageDimensions 验证栅格尺寸按页面尺寸与倍率给定。
func TestRenderPageDimensions(t *testing.T) {
	r := newTestRenderer(t)
	p := &product.Product{SKU: "1001", Name: "Semen 50kg", NormalPrice: 65000}

	img, err := r.RenderPage(p, layout.Settings{ShowStrikePrice: true}, nil, nil, 1)
	if err != nil {
		t.Fatalf("渲染失败: %v", err)
	}
	wantW := layout.PageWidth * previewDPMM
	if got := float64(img.Bounds().Dx()); math.Abs(got-wantW) > 2 {
		t.Fatalf("1x 栅格宽度错误: got=%g want≈%g", got, wantW)
	}

	img3, err := r.RenderPage(p, layout.Settings{}, nil, nil, 3)
	if err != nil {
		t.Fatalf("3x 渲染失败: %v", err)
	}
	if got, want := float64(img3.Bounds().Dx()), wantW*3; math.Abs(got-want) > 4 {
		t.Fatalf("3x 栅格宽度错误: got=%g want≈%g", got, want)
	}
}

// TestRenderPageNilProduct 验证 nil 商品渲染整页白底。
func TestRenderPageNilProduct(t *testing.T) {
	r := newTestRenderer(t)
	img, err := r.RenderPage(nil, layout.Settings{}, nil, nil, 1)
	if err != nil {
		t.Fatalf("空页渲染失败: %v", err)
	}
	b := img.Bounds()
	cr, cg, cb, _ := img.At(b.Dx()/2, b.Dy()/2).RGBA()
	if cr < 0xf000 || cg < 0xf000 || cb < 0xf000 {
		t.Fatalf("空页中心应为白色: %v", img.At(b.Dx()/2, b.Dy()/2))
	}
}

// TestRenderPageBackgroundFillsPage 验证背景模板精确铺满整页：角落
// 像素取模板色而非白底。
func TestRenderPageBackgroundFillsPage(t *testing.T) {
	r := newTestRenderer(t)
	bg := image.NewRGBA(image.Rect(0, 0, 40, 40))
	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			bg.Set(x, y, color.RGBA{R: 255, G: 200, B: 100, A: 255})
		}
	}

	p := &product.Product{SKU: "1001", Name: "Semen 50kg", NormalPrice: 65000}
	img, err := r.RenderPage(p, layout.Settings{}, bg, nil, 1)
	if err != nil {
		t.Fatalf("渲染失败: %v", err)
	}
	b := img.Bounds()
	cr, cg, _, _ := img.At(b.Max.X-3, b.Max.Y-3).RGBA()
	if cr>>8 < 200 || cg>>8 > 240 {
		t.Fatalf("角落应为模板色: %v", img.At(b.Max.X-3, b.Max.Y-3))
	}
}

// TestBackgroundRasterFollowsScale 验证背景重采样密度跟随栅格倍率，
// 导出时背景不比标签内容模糊。
func TestBackgroundRasterFollowsScale(t *testing.T) {
	bg := image.NewRGBA(image.Rect(0, 0, 40, 40))

	r1 := backgroundRaster(bg, layout.PageWidth, layout.PageHeight, previewDPMM)
	r3 := backgroundRaster(bg, layout.PageWidth, layout.PageHeight, previewDPMM*3)
	if got, want := float64(r3.Bounds().Dx()), float64(r1.Bounds().Dx())*3; math.Abs(got-want) > 4 {
		t.Fatalf("3x 背景重采样宽度错误: got=%g want≈%g", got, want)
	}
	if r1.Bounds().Dx() < 700 {
		t.Fatalf("1x 背景重采样密度过低: %d", r1.Bounds().Dx())
	}
}

// TestRenderPageSkipsBrokenImage 验证品牌图加载失败只跳过该图元。
func TestRenderPageSkipsBrokenImage(t *testing.T) {
	r, err := New(Options{ImageLoader: func(src string) (image.Image, error) {
		return nil, fmt.Errorf("模拟加载失败")
	}})
	if err != nil {
		t.Fatalf("构造渲染器失败: %v", err)
	}

	p := &product.Product{SKU: "1001", Name: "Cat Kayu", BrandImageURL: "https://cdn.example.com/x.png", NormalPrice: 52000}
	if _, err := r.RenderPage(p, layout.Settings{}, nil, nil, 1); err != nil {
		t.Fatalf("品牌图失败不应中断整页: %v", err)
	}
}
