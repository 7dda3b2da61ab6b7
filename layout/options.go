package layout

// Density 是版面密度档位：标签纸固定 A4，单页条目密度决定字号乘数。
// 目前端到端只使用单张档，另两档为预留配置。
type Density int

const (
	DensitySingle Density = iota // 一页一张
	DensityDouble                // 一页两张（预留）
	DensityQuad                  // 一页四张（预留）
)

// scale 返回该密度档的整体字号乘数。
func (d Density) scale() float64 {
	switch d {
	case DensityDouble:
		return 0.82
	case DensityQuad:
		return 0.66
	default:
		return 1.0
	}
}

// brandWidthFrac 返回品牌区允许占用的页宽比例。
func (d Density) brandWidthFrac() float64 {
	switch d {
	case DensityDouble:
		return 0.84
	case DensityQuad:
		return 0.80
	default:
		return 0.88
	}
}

// Settings 是会话级的呈现设置，对所有页面生效。
type Settings struct {
	ShowStrikePrice bool    // 是否绘制划线原价
	Density         Density // 版面密度档位
	ShowBarcode     bool    // 是否绘制装饰性伪条码占位
}

// Measurer 是布局阶段依赖的字体测量后端。实现方必须与最终绘制共用
// 同一字体面（见 renderer/canvas），宽度与上升部单位均为 mm。
type Measurer interface {
	TextWidth(content string, font FontSpec) float64
	Ascent(font FontSpec) float64
}
