package renderer

import (
	"image"

	"github.com/ByLCY/poptag/layout"
	"github.com/ByLCY/poptag/product"
)

// PageRenderer 把单个商品渲染成一页位图。product 为 nil 时输出整页
// 白底；background 为 nil 时走平底路径；transform 为 nil 表示无手工
// 位移覆盖。scale 是统一的栅格倍率（预览 1x，导出 3x），布局本身与
// 倍率无关。
type PageRenderer interface {
	RenderPage(p *product.Product, set layout.Settings, background image.Image, transform *layout.Transform, scale float64) (image.Image, error)
}
