package export

import (
	"fmt"
	"image"

	"go.uber.org/zap"

	"github.com/ByLCY/poptag/layout"
	"github.com/ByLCY/poptag/product"
	"github.com/ByLCY/poptag/renderer"
)

// 分页/导出驱动：一个商品一页，严格按输入顺序串行渲染。串行既为了
// 限制内存（同一时刻只存在一张高分辨率离屏页面），也为了输出顺序
// 确定。

// ExportScale 是导出（PDF/打印）相对预览的固定栅格倍率。
const ExportScale = 3.0

// Driver 驱动页面渲染器完成预览与整批导出。
type Driver struct {
	r   renderer.PageRenderer
	log *zap.Logger

	// 每商品的手工位移覆盖，键为 SKU。只在拖拽结束回调里写入，
	// 布局与渲染阶段只读。
	overrides map[string]layout.Transform
}

// NewDriver 构造导出驱动。
func NewDriver(r renderer.PageRenderer, log *zap.Logger) *Driver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Driver{r: r, log: log, overrides: map[string]layout.Transform{}}
}

// SetOverride 记录一个商品的手工位移覆盖（拖拽结束回调）。
func (d *Driver) SetOverride(sku string, t layout.Transform) {
	d.overrides[sku] = t
}

// ClearOverride 清除一个商品的覆盖。
func (d *Driver) ClearOverride(sku string) {
	delete(d.overrides, sku)
}

func (d *Driver) transformFor(p *product.Product) *layout.Transform {
	if p == nil {
		return nil
	}
	if t, ok := d.overrides[p.SKU]; ok {
		return &t
	}
	return nil
}

// Preview 渲染第 index 页的 1x 预览位图。index 越界时返回整页白底
// （空页语义），不报错。
func (d *Driver) Preview(products []*product.Product, set layout.Settings, background image.Image, index int) (image.Image, error) {
	var p *product.Product
	if index >= 0 && index < len(products) {
		p = products[index]
	}
	return d.r.RenderPage(p, set, background, d.transformFor(p), 1)
}

// ExportPages 按输入顺序把每个商品渲染成一张导出分辨率位图。输出
// 数量恒等于输入数量；空输入返回空序列（零页，而非一张空白页）。
func (d *Driver) ExportPages(products []*product.Product, set layout.Settings, background image.Image) ([]image.Image, error) {
	if len(products) == 0 {
		return []image.Image{}, nil
	}
	pages := make([]image.Image, 0, len(products))
	for i, p := range products {
		img, err := d.r.RenderPage(p, set, background, d.transformFor(p), ExportScale)
		if err != nil {
			return nil, fmt.Errorf("渲染第 %d 页失败: %w", i+1, err)
		}
		pages = append(pages, img)
	}
	d.log.Info("导出页面渲染完成", zap.Int("pages", len(pages)))
	return pages, nil
}
