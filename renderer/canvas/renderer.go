package canvasrenderer

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/rasterizer"
	"go.uber.org/zap"
	xdraw "golang.org/x/image/draw"

	"github.com/ByLCY/poptag/fonts"
	"github.com/ByLCY/poptag/layout"
	"github.com/ByLCY/poptag/product"
	"github.com/ByLCY/poptag/renderer"
)

// 基于 github.com/tdewolff/canvas 的页面渲染器。布局阶段的测量与这
// 里的绘制共用同一批字体面，保证拟合结果与渲染一致。

// previewDPMM 是 1x 预览的栅格密度（≈96dpi）；导出时乘以统一倍率。
const previewDPMM = 96.0 / 25.4

// ImageLoader 解引用图元里的图片地址（模板/品牌图）。
type ImageLoader func(src string) (image.Image, error)

// Renderer 同时实现 renderer.PageRenderer 与 layout.Measurer。
type Renderer struct {
	log       *zap.Logger
	loadImage ImageLoader

	fontMu sync.Mutex
	family *canvas.FontFamily
}

var (
	_ renderer.PageRenderer = (*Renderer)(nil)
	_ layout.Measurer       = (*Renderer)(nil)
)

// Options 配置渲染器依赖。
type Options struct {
	Logger      *zap.Logger
	ImageLoader ImageLoader
}

// New 构造渲染器并装载内置字体（常规 + 粗体两个字重）。
func New(opts Options) (*Renderer, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	loader := opts.ImageLoader
	if loader == nil {
		loader = func(src string) (image.Image, error) {
			return nil, fmt.Errorf("未配置图片加载器，无法解引用 %s", src)
		}
	}

	family := canvas.NewFontFamily("poptag")
	regular, err := fonts.Regular()
	if err != nil {
		return nil, err
	}
	if err := family.LoadFont(regular, 0, canvas.FontRegular); err != nil {
		return nil, fmt.Errorf("装载常规字重失败: %w", err)
	}
	bold, err := fonts.Bold()
	if err != nil {
		return nil, err
	}
	if err := family.LoadFont(bold, 0, canvas.FontBold); err != nil {
		return nil, fmt.Errorf("装载粗体字重失败: %w", err)
	}

	return &Renderer{log: log, loadImage: loader, family: family}, nil
}

// face 按 FontSpec 创建字体面。字号入参为 mm，字体系统交互用 pt，
// 只在这一处做换算。
func (r *Renderer) face(spec layout.FontSpec, col color.Color) *canvas.FontFace {
	style := canvas.FontRegular
	if spec.Style == "bold" {
		style = canvas.FontBold
	}
	r.fontMu.Lock()
	defer r.fontMu.Unlock()
	return r.family.Face(toPt(spec.Size), col, style, canvas.FontNormal)
}

// TextWidth 实现 layout.Measurer，返回单行文本的测量宽度（mm）。
func (r *Renderer) TextWidth(content string, font layout.FontSpec) float64 {
	return r.face(font, canvas.Black).TextWidth(content)
}

// Ascent 实现 layout.Measurer，返回该字体面的上升部高度（mm）。
func (r *Renderer) Ascent(font layout.FontSpec) float64 {
	return r.face(font, canvas.Black).Metrics().Ascent
}

// RenderPage 清空并重绘一页：背景模板（有则铺满整页）、布局引擎产
// 出的图元组、可选的手工位移覆盖，最后按统一倍率栅格化。
func (r *Renderer) RenderPage(p *product.Product, set layout.Settings, background image.Image, transform *layout.Transform, scale float64) (image.Image, error) {
	if scale <= 0 {
		scale = 1
	}
	w, h := layout.PageWidth, layout.PageHeight
	c := canvas.New(w, h)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV) // 坐标与布局一致：左上角为原点

	ctx.SetFillColor(canvas.White)
	ctx.SetStrokeColor(canvas.Transparent)
	ctx.DrawPath(0, 0, canvas.Rectangle(w, h))

	// 空页：只清底，不绘制其他内容。
	if p == nil {
		return rasterize(c, scale), nil
	}

	hasBackground := background != nil
	if hasBackground {
		r.drawBackground(ctx, background, w, h, previewDPMM*scale)
	}

	group := layout.Build(p, w, h, set, hasBackground, r)
	if transform != nil {
		group = transform.Apply(group)
	}
	r.drawGroup(ctx, group)

	return rasterize(c, scale), nil
}

func rasterize(c *canvas.Canvas, scale float64) image.Image {
	return rasterizer.Draw(c, canvas.DPMM(previewDPMM*scale), canvas.DefaultColorSpace)
}

// drawBackground 把模板图精确拉伸铺满整页：先重采样成页面比例的位
// 图（允许变形），再绘制。重采样密度跟随栅格倍率，导出时背景与标
// 签内容一样清晰。
func (r *Renderer) drawBackground(ctx *canvas.Context, img image.Image, w, h, dpmm float64) {
	target := backgroundRaster(img, w, h, dpmm)
	ctx.DrawImage(0, 0, target, canvas.DPMM(dpmm))
}

func backgroundRaster(img image.Image, w, h, dpmm float64) *image.RGBA {
	target := image.NewRGBA(image.Rect(0, 0, int(w*dpmm), int(h*dpmm)))
	xdraw.ApproxBiLinear.Scale(target, target.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	return target
}

// drawGroup 按列表顺序绘制（顺序即 z 序）。
func (r *Renderer) drawGroup(ctx *canvas.Context, g layout.Group) {
	for _, item := range g.Items {
		switch v := item.(type) {
		case layout.Group:
			r.drawGroup(ctx, v)
		case layout.Rect:
			r.drawRect(ctx, v)
		case layout.Text:
			r.drawText(ctx, v)
		case layout.Line:
			r.drawLine(ctx, v)
		case layout.Image:
			r.drawEmbeddedImage(ctx, v)
		}
	}
}

func (r *Renderer) drawRect(ctx *canvas.Context, rc layout.Rect) {
	path := canvas.Rectangle(rc.Width, rc.Height)
	if rc.Radius > 0 {
		path = canvas.RoundedRectangle(rc.Width, rc.Height, rc.Radius)
	}

	if rc.Shadow {
		offset := rc.Height * 0.02
		if offset < 0.6 {
			offset = 0.6
		}
		ctx.SetFillColor(canvas.RGBA(0, 0, 0, 0.18))
		ctx.SetStrokeColor(canvas.Transparent)
		ctx.DrawPath(rc.X+offset, rc.Y+offset, path)
	}

	switch {
	case rc.Gradient != nil:
		g := canvas.NewLinearGradient(canvas.Point{X: rc.X, Y: rc.Y}, canvas.Point{X: rc.X + rc.Width, Y: rc.Y})
		g.Add(0, rgba(rc.Gradient.From))
		g.Add(1, rgba(rc.Gradient.To))
		ctx.SetFillGradient(g)
	case rc.Fill != nil:
		ctx.SetFillColor(colorFromLayout(*rc.Fill))
	default:
		ctx.SetFillColor(color.RGBA{})
	}
	if rc.Stroke != nil {
		ctx.SetStrokeColor(colorFromLayout(*rc.Stroke))
		w := rc.StrokeWidth
		if w <= 0 {
			w = 0.2
		}
		ctx.SetStrokeWidth(w)
	} else {
		ctx.SetStrokeColor(canvas.Transparent)
	}
	ctx.DrawPath(rc.X, rc.Y, path)
}

func (r *Renderer) drawText(ctx *canvas.Context, tr layout.Text) {
	face := r.face(tr.Font, colorFromLayout(tr.Color))
	align := canvas.Left
	switch tr.Align {
	case "center":
		align = canvas.Center
	case "right":
		align = canvas.Right
	}
	line := canvas.NewTextLine(face, tr.Content, align)
	// Text.Y 约定为基线坐标，直接作为绘制锚点。
	ctx.DrawText(tr.X, tr.Y, line)
}

func (r *Renderer) drawLine(ctx *canvas.Context, ln layout.Line) {
	w := ln.Width
	if w <= 0 {
		w = 0.2
	}
	ctx.SetStrokeColor(colorFromLayout(ln.Color))
	ctx.SetStrokeWidth(w)
	p := &canvas.Path{}
	p.MoveTo(0, 0)
	p.LineTo(ln.X2-ln.X1, ln.Y2-ln.Y1)
	ctx.DrawPath(ln.X1, ln.Y1, p)
}

// drawEmbeddedImage 绘制图元里的嵌入图（品牌图）。加载失败只记日志
// 并跳过该图元，不中断整页（AssetLoadFailure 降级）。
func (r *Renderer) drawEmbeddedImage(ctx *canvas.Context, im layout.Image) {
	if im.Src == "" || im.Width <= 0 || im.Height <= 0 {
		return
	}
	img, err := r.loadImage(im.Src)
	if err != nil {
		r.log.Warn("嵌入图加载失败，跳过该图元", zap.String("src", im.Src), zap.Error(err))
		return
	}
	// 等比缩放并在盒内居中。
	bounds := img.Bounds()
	dpmm := float64(bounds.Dx()) / im.Width
	if drawnH := float64(bounds.Dy()) / dpmm; drawnH > im.Height {
		dpmm = float64(bounds.Dy()) / im.Height
	}
	drawnW := float64(bounds.Dx()) / dpmm
	drawnH := float64(bounds.Dy()) / dpmm
	x := im.X + (im.Width-drawnW)/2
	y := im.Y + (im.Height-drawnH)/2
	ctx.DrawImage(x, y, img, canvas.DPMM(dpmm))
}

func colorFromLayout(c layout.Color) color.Color {
	return canvas.RGBA(float64(c.R)/255.0, float64(c.G)/255.0, float64(c.B)/255.0, 1.0)
}

func rgba(c layout.Color) color.RGBA {
	return color.RGBA{R: uint8(c.R), G: uint8(c.G), B: uint8(c.B), A: 255}
}

// toPt 将毫米(mm)转换为点(pt)。
func toPt(mm float64) float64 { return mm * layout.MmToPt }
