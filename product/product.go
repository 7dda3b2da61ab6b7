package product

import "math"

// 该文件定义标签渲染的基本单位：商品记录。字段形状对齐后端返回的
// 商品结构；字段名到后端原生 schema 的转换由 catalog 层负责。

// DiscountTypeCut 表示固定金额折扣（"potongan"），此时百分比折扣一律忽略。
const DiscountTypeCut = "cut"

// PriceRow 表示一个计价单位下的正常价/促销价组合，金额为整数 Rupiah。
type PriceRow struct {
	UOM         string `json:"uom,omitempty"`
	NormalPrice int64  `json:"normal_price"`
	PromoPrice  int64  `json:"promo_price"`
}

// Product 是渲染单位。价格均为非负整数 Rupiah；布局引擎信任输入，
// 录入校验（例如 cut 金额不得超过正常价）由上游表单负责。
type Product struct {
	SKU           string `json:"sku"`
	Name          string `json:"name"`
	Description   string `json:"description,omitempty"`
	Brand         string `json:"brand,omitempty"`
	BrandImageURL string `json:"brand_image_url,omitempty"`
	UOM           string `json:"uom,omitempty"`

	NormalPrice int64 `json:"normal_price"`
	PromoPrice  int64 `json:"promo_price"`

	// 四档独立来源的百分比折扣。第四档的含义（额外折扣或会员折扣）
	// 取决于记录来源，见 Resolve。
	DiscountPct  float64 `json:"discount_pct,omitempty"`
	DiscountPct2 float64 `json:"discount_pct2,omitempty"`
	DiscountPct3 float64 `json:"discount_pct3,omitempty"`
	DiscountPct4 float64 `json:"discount_pct4,omitempty"`

	// DiscountType 为 "cut" 时 DiscountAmount 生效，百分比档位全部忽略。
	DiscountType   string `json:"discount_type,omitempty"`
	DiscountAmount int64  `json:"discount_amount,omitempty"`

	// UpTo 只影响折扣卡片的措辞（DISKON UP TO）。
	UpTo bool `json:"up_to,omitempty"`

	// 多计价单位商品的价格行；非空时首行即主价格。
	PriceRows []PriceRow `json:"price_rows,omitempty"`

	// 每平方米双价，仅当描述命中花岗岩标记时参与布局。
	// 后端历史数据里存在缺失（NaN/Inf），由 Resolve 清洗。
	MeterNormalPrice float64 `json:"meter_normal_price,omitempty"`
	MeterPromoPrice  float64 `json:"meter_promo_price,omitempty"`

	// IsCustom 区分用户临时录入与目录查询结果，同时是第四档折扣
	// 语义的来源开关。
	IsCustom bool `json:"is_custom,omitempty"`
}

// sanitize 将非有限的数值钳为 0（MalformedInput 降级，不向上传播）。
func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
