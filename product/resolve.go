package product

import (
	"math"
	"strings"
)

// 价格/折扣归一化：把商品记录上混杂的折扣字段整理成布局引擎可以
// 无歧义消费的视图。只做分类，不做修正——promo 价与折扣百分比由
// 录入方保证，二者不一致时按录入原样渲染。

// DiscountKind 标识折扣的呈现形态。
type DiscountKind int

const (
	DiscountNone DiscountKind = iota
	DiscountPercent
	DiscountFlat
)

// 花岗岩标记：描述文本统一转大写后做子串匹配（印尼语 "GRANIT"）。
const graniteMarker = "GRANIT"

// 第四档折扣的会员哨兵值。两条路径在系统演进中产生了不同规则，
// 按来源分别保留，不做合并：
//   - 临时录入表单只在第四档为正且恰等于 customMemberSentinel 时标记会员；
//   - 目录记录在第四档绝对值命中 catalogMemberSentinels 之一时标记会员。
const customMemberSentinel = 10

var catalogMemberSentinels = [...]float64{5, 10}

// ResolvedPricing 是归一化结果。
type ResolvedPricing struct {
	// Primary 为主价格；Alternates 仅在商品声明多行价格时非空，
	// 此时 Primary 即 Alternates[0]。
	Primary    PriceRow
	Alternates []PriceRow

	Kind          DiscountKind
	Parts         []float64 // Kind == DiscountPercent 时的各档百分比，按声明顺序
	MemberPercent float64   // 会员折扣百分比，0 表示无
	FlatAmount    int64     // Kind == DiscountFlat 时的固定金额
	UpTo          bool

	// 每平方米双价分支，仅当描述命中花岗岩标记且两个米价均有效时成立。
	MeterPriced bool
	MeterNormal int64
	MeterPromo  int64
}

// HasDiscount 报告是否存在任何非零折扣成分。
func (r ResolvedPricing) HasDiscount() bool {
	return r.Kind != DiscountNone
}

// Resolve 归一化一个商品记录。任何字段缺失都优雅降级（渲染成只有
// 价格、没有折扣卡片的标签），永不报错。
func Resolve(p *Product) ResolvedPricing {
	var r ResolvedPricing
	if p == nil {
		return r
	}

	r.Primary = PriceRow{
		UOM:         p.UOM,
		NormalPrice: clampPrice(p.NormalPrice),
		PromoPrice:  clampPrice(p.PromoPrice),
	}
	if len(p.PriceRows) > 0 {
		rows := make([]PriceRow, len(p.PriceRows))
		for i, row := range p.PriceRows {
			rows[i] = PriceRow{
				UOM:         row.UOM,
				NormalPrice: clampPrice(row.NormalPrice),
				PromoPrice:  clampPrice(row.PromoPrice),
			}
		}
		r.Primary = rows[0]
		r.Alternates = rows
	}
	r.UpTo = p.UpTo

	if strings.EqualFold(p.DiscountType, DiscountTypeCut) {
		// cut 类型由固定金额驱动，百分比档位无论取值一概忽略。
		if amount := clampPrice(p.DiscountAmount); amount > 0 {
			r.Kind = DiscountFlat
			r.FlatAmount = amount
		}
	} else {
		parts := make([]float64, 0, 4)
		for _, pct := range [...]float64{
			sanitize(p.DiscountPct),
			sanitize(p.DiscountPct2),
			sanitize(p.DiscountPct3),
		} {
			if pct > 0 {
				parts = append(parts, pct)
			}
		}
		tier4 := sanitize(p.DiscountPct4)
		if isMemberTier(tier4, p.IsCustom) {
			r.MemberPercent = math.Abs(tier4)
		} else if tier4 > 0 {
			parts = append(parts, tier4)
		}
		if len(parts) > 0 || r.MemberPercent > 0 {
			r.Kind = DiscountPercent
			r.Parts = parts
		}
	}

	if meterNormal, meterPromo, ok := meterPrices(p); ok {
		r.MeterPriced = true
		r.MeterNormal = meterNormal
		r.MeterPromo = meterPromo
	}

	return r
}

func isMemberTier(tier4 float64, custom bool) bool {
	if tier4 == 0 {
		return false
	}
	if custom {
		return tier4 > 0 && tier4 == customMemberSentinel
	}
	abs := math.Abs(tier4)
	for _, s := range catalogMemberSentinels {
		if abs == s {
			return true
		}
	}
	return false
}

// meterPrices 判定花岗岩双价是否成立：描述命中标记，且两个米价都是
// 有限正数。任何一个缺失都静默退回普通分支。
func meterPrices(p *Product) (int64, int64, bool) {
	if !strings.Contains(strings.ToUpper(p.Description), graniteMarker) {
		return 0, 0, false
	}
	normal := sanitize(p.MeterNormalPrice)
	promo := sanitize(p.MeterPromoPrice)
	if normal <= 0 || promo <= 0 {
		return 0, 0, false
	}
	return int64(math.Round(normal)), int64(math.Round(promo)), true
}

func clampPrice(v int64) int64 {
	if v < 0 {
		return 0
	}
	return v
}
