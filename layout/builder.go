package layout

import (
	"hash/fnv"
	"math/rand"

	"github.com/ByLCY/poptag/product"
)

// 标签布局引擎：单次自上而下扫描，用一个纵向游标把品牌、品名、描
// 述、价格块与折扣卡片依次堆进页面，输出一棵图元组。所有尺寸都是
// 页面尺寸乘以密度档位缩放的公式，不出现绝对像素。

var (
	colorInk    = Color{R: 33, G: 33, B: 33}
	colorMuted  = Color{R: 97, G: 97, B: 97}
	colorStrike = Color{R: 117, G: 117, B: 117}
	colorBorder = Color{R: 214, G: 214, B: 214}
	colorWhite  = Color{R: 255, G: 255, B: 255}
	colorPromo  = Color{R: 183, G: 28, B: 28}

	gradientDiscount = Gradient{From: Color{R: 229, G: 57, B: 53}, To: Color{R: 183, G: 28, B: 28}}
	gradientMember   = Gradient{From: Color{R: 30, G: 136, B: 229}, To: Color{R: 13, G: 71, B: 161}}
	colorMemberInk   = Color{R: 13, G: 71, B: 161}
)

// 折扣卡片的固定文案（印尼语）。
const (
	labelDiscount     = "DISKON"
	labelDiscountUpTo = "DISKON UP TO"
	labelMember       = "MEMBER"
	labelFlatCut      = "POTONGAN HARGA"
)

// Build 生成一个商品在一页上的完整视觉组合。结构上有效的商品永不
// 失败：缺品名、缺价格都照常输出一张视觉上成立的标签。
func Build(p *product.Product, pageW, pageH float64, set Settings, hasBackground bool, m Measurer) Group {
	f := &labelFlow{
		m:       m,
		set:     set,
		pageW:   pageW,
		pageH:   pageH,
		scale:   set.Density.scale(),
		cursorY: pageH * 0.30,
	}
	f.em = pageW * 0.05 * f.scale
	f.contentW = pageW * set.Density.brandWidthFrac()
	f.left = (pageW - f.contentW) / 2
	f.centerX = pageW / 2

	// 无背景模板时先垫一张满幅白底卡（z 序最底）。
	if !hasBackground {
		f.add(Rect{
			X: 0, Y: 0, Width: pageW, Height: pageH,
			Radius:      pageW * 0.012,
			Fill:        &colorWhite,
			Stroke:      &colorBorder,
			StrokeWidth: 0.8,
		})
	}
	if p == nil {
		return Group{Items: f.items}
	}

	f.brand(p)

	rp := product.Resolve(p)
	hasDiscount := rp.HasDiscount()

	f.name(p.Name, hasDiscount)
	f.description(p.Description)
	f.divider(len(rp.Alternates) >= 2)

	positive := hasPositivePrice(rp)
	switch {
	case !positive:
		// 无任何正价（含全零的多价格行）：整块价格区域留空；有折
		// 扣时折扣卡片放大接管版面。
	case rp.MeterPriced && len(rp.Alternates) <= 1:
		f.meterColumns(rp)
	case len(rp.Alternates) >= 2:
		f.multiRow(rp)
	default:
		f.singleRow(rp, hasDiscount)
	}

	f.discountBadges(rp, hasDiscount && !positive)

	if set.ShowBarcode {
		f.barcodePlaceholder(p.SKU)
	}
	return Group{Items: f.items}
}

type labelFlow struct {
	m     Measurer
	set   Settings
	pageW float64
	pageH float64

	scale    float64 // 密度档位缩放
	em       float64 // 基准字号单位 = pageW * 0.05 * scale
	contentW float64
	left     float64
	centerX  float64
	cursorY  float64

	items []Primitive
}

func (f *labelFlow) add(p Primitive) {
	f.items = append(f.items, p)
}

// brand 绘制品牌区：有品牌图用图，否则用拟合到内容宽度的品牌文字。
func (f *labelFlow) brand(p *product.Product) {
	brandW := f.pageW * f.set.Density.brandWidthFrac()
	if p.BrandImageURL != "" {
		h := f.pageH * 0.09 * f.scale
		w := brandW * 0.62
		f.add(Image{
			Src: p.BrandImageURL,
			X:   f.centerX - w/2, Y: f.cursorY,
			Width: w, Height: h,
		})
		f.cursorY += h + f.em*0.35
		return
	}
	if p.Brand == "" {
		return
	}
	start := f.em * 2.2
	spec := FontSpec{Style: "bold", Size: FitToWidth(f.m, p.Brand, "bold", start, brandW, start*0.6)}
	f.add(Text{
		Content: p.Brand,
		X:       f.centerX, Y: f.cursorY + f.m.Ascent(spec),
		Font: spec, Color: colorInk, Align: "center", VAlign: "baseline",
	})
	f.cursorY += spec.Size*1.2 + f.em*0.35
}

// name 绘制品名：有折扣时字号收 15% 且只许一行，为底部折扣卡片让
// 出纵向空间；无折扣时允许两行。
func (f *labelFlow) name(name string, hasDiscount bool) {
	if name == "" {
		return
	}
	start := f.em * 1.6
	maxLines := 2
	if hasDiscount {
		start *= 0.85
		maxLines = 1
	}
	size := FitToLines(f.m, name, "bold", start, f.contentW, maxLines)
	spec := FontSpec{Style: "bold", Size: size}
	for _, line := range WrapText(f.m, name, spec, f.contentW) {
		f.add(Text{
			Content: line,
			X:       f.centerX, Y: f.cursorY + f.m.Ascent(spec),
			Font: spec, Color: colorInk, Align: "center", VAlign: "baseline",
		})
		f.cursorY += size * 1.25
	}
	f.cursorY += f.em * 0.3
}

// description 固定字号、不拟合；缺省时只留一个较小的固定间隙。
func (f *labelFlow) description(desc string) {
	if desc == "" {
		f.cursorY += f.em * 0.25
		return
	}
	spec := FontSpec{Style: "regular", Size: f.em * 0.9}
	f.add(Text{
		Content: desc,
		X:       f.centerX, Y: f.cursorY + f.m.Ascent(spec),
		Font: spec, Color: colorMuted, Align: "center", VAlign: "baseline",
	})
	f.cursorY += spec.Size*1.3 + f.em*0.25
}

// divider 绘制横贯 90% 内容宽度的分隔线；多行价格时其后的间隙收紧。
func (f *labelFlow) divider(tight bool) {
	half := f.contentW * 0.45
	f.add(Line{
		X1: f.centerX - half, Y1: f.cursorY,
		X2: f.centerX + half, Y2: f.cursorY,
		Color: Color{R: 189, G: 189, B: 189}, Width: 0.7,
	})
	if tight {
		f.cursorY += f.em * 0.35
	} else {
		f.cursorY += f.em * 0.8
	}
}

// singleRow 绘制单行价格：可选划线原价 + 一个促销价块。无折扣时价
// 格块放大（纵向空间富余）。
func (f *labelFlow) singleRow(rp product.ResolvedPricing, hasDiscount bool) {
	row := rp.Primary
	boost := 1.45
	if !hasDiscount {
		boost = 1.65
	}
	digitSize := f.em * 2.0 * boost

	promo := row.PromoPrice
	if promo <= 0 {
		promo = row.NormalPrice
	}
	if f.set.ShowStrikePrice && row.NormalPrice > row.PromoPrice && row.PromoPrice > 0 {
		f.strikePrice(row.NormalPrice, digitSize*0.38, f.centerX)
	}
	f.priceBlock(promo, row.UOM, digitSize, f.contentW*0.9, f.centerX, colorPromo)
	f.cursorY += f.em * 0.4
}

// multiRow 依次堆叠每个价格行，行数越多价格块越小，行间用短分隔线。
func (f *labelFlow) multiRow(rp product.ResolvedPricing) {
	rowScale := 0.58
	switch len(rp.Alternates) {
	case 2:
		rowScale = 0.72
	case 3:
		rowScale = 0.64
	}
	digitSize := f.em * 2.0 * 1.45 * rowScale

	for i, row := range rp.Alternates {
		if f.set.ShowStrikePrice && row.NormalPrice > row.PromoPrice && row.PromoPrice > 0 {
			f.strikePrice(row.NormalPrice, digitSize*0.38, f.centerX)
		}
		promo := row.PromoPrice
		if promo <= 0 {
			promo = row.NormalPrice
		}
		f.priceBlock(promo, row.UOM, digitSize, f.contentW*0.9, f.centerX, colorPromo)
		if i < len(rp.Alternates)-1 {
			f.cursorY += f.em * 0.25
			half := f.contentW * 0.25
			f.add(Line{
				X1: f.centerX - half, Y1: f.cursorY,
				X2: f.centerX + half, Y2: f.cursorY,
				Color: colorBorder, Width: 0.5,
			})
			f.cursorY += f.em * 0.3
		}
	}
	f.cursorY += f.em * 0.3
}

// meterColumns 绘制花岗岩双价：左列按件、右列按平方米，各自在半幅
// 内容宽度内独立拟合。
func (f *labelFlow) meterColumns(rp product.ResolvedPricing) {
	leftCx := f.left + f.contentW*0.27
	rightCx := f.left + f.contentW*0.73
	colW := f.contentW * 0.46
	digitSize := f.em * 2.0 * 0.85

	startY := f.cursorY
	unitUOM := rp.Primary.UOM
	if unitUOM == "" {
		unitUOM = "PCS"
	}
	leftBottom := f.meterColumn(rp.Primary.NormalPrice, rp.Primary.PromoPrice, unitUOM, digitSize, colW, leftCx, startY)
	rightBottom := f.meterColumn(rp.MeterNormal, rp.MeterPromo, "M2", digitSize, colW, rightCx, startY)

	f.cursorY = leftBottom
	if rightBottom > f.cursorY {
		f.cursorY = rightBottom
	}
	f.cursorY += f.em * 0.4
}

// meterColumn 在指定列内绘制（可选的）划线原价与促销价块，返回该列
// 的底部游标。
func (f *labelFlow) meterColumn(normal, promo int64, uom string, digitSize, colW, cx, startY float64) float64 {
	saved := f.cursorY
	f.cursorY = startY
	if promo <= 0 {
		promo = normal
	}
	if f.set.ShowStrikePrice && normal > promo && promo > 0 {
		f.strikePrice(normal, digitSize*0.38, cx)
	}
	f.priceBlock(promo, uom, digitSize, colW, cx, colorPromo)
	bottom := f.cursorY
	f.cursorY = saved
	return bottom
}

// priceBlock 把一个金额排成 "Rp" 前缀、主数字、小一号千分尾巴与计价
// 单位四段横向拼接的整体，居中于 cx；整体以 0.04 的步长缩小（下限
// 0.6 倍）直到组合宽度放进 maxWidth。
func (f *labelFlow) priceBlock(amount int64, uom string, digitSize, maxWidth, cx float64, ink Color) {
	mainStr, tailStr := splitRupiah(formatRupiah(amount))
	uomStr := ""
	if uom != "" {
		uomStr = "/" + uom
	}

	factor := 1.0
	var mainSpec, prefixSpec, tailSpec, uomSpec FontSpec
	var prefixW, mainW, tailW, uomW, gap, total float64
	for {
		s := digitSize * factor
		prefixSpec = FontSpec{Style: "bold", Size: s * 0.45}
		mainSpec = FontSpec{Style: "bold", Size: s}
		tailSpec = FontSpec{Style: "bold", Size: s * 0.55}
		uomSpec = FontSpec{Style: "bold", Size: s * 0.35}
		gap = s * 0.12

		prefixW = f.m.TextWidth("Rp", prefixSpec)
		mainW = f.m.TextWidth(mainStr, mainSpec)
		tailW = 0
		if tailStr != "" {
			tailW = f.m.TextWidth(tailStr, tailSpec)
		}
		uomW = 0
		if uomStr != "" {
			uomW = f.m.TextWidth(uomStr, uomSpec) + gap
		}
		total = prefixW + gap + mainW + tailW + uomW
		if total <= maxWidth || factor <= 0.6 {
			break
		}
		factor -= 0.04
		if factor < 0.6 {
			factor = 0.6
		}
	}

	baseline := f.cursorY + f.m.Ascent(mainSpec)
	x := cx - total/2
	f.add(Text{Content: "Rp", X: x, Y: baseline, Font: prefixSpec, Color: ink, Align: "left", VAlign: "baseline"})
	x += prefixW + gap
	f.add(Text{Content: mainStr, X: x, Y: baseline, Font: mainSpec, Color: ink, Align: "left", VAlign: "baseline"})
	x += mainW
	if tailStr != "" {
		f.add(Text{Content: tailStr, X: x, Y: baseline, Font: tailSpec, Color: ink, Align: "left", VAlign: "baseline"})
		x += tailW
	}
	if uomStr != "" {
		// 计价单位吊在尾巴的基线上。
		f.add(Text{Content: uomStr, X: x + gap, Y: baseline, Font: uomSpec, Color: colorMuted, Align: "left", VAlign: "baseline"})
	}
	f.cursorY += mainSpec.Size * 1.1
}

// strikePrice 绘制带删除线的原价。
func (f *labelFlow) strikePrice(amount int64, size, cx float64) {
	content := "Rp " + formatRupiah(amount)
	spec := FontSpec{Style: "regular", Size: size}
	w := f.m.TextWidth(content, spec)
	baseline := f.cursorY + f.m.Ascent(spec)
	f.add(Text{Content: content, X: cx, Y: baseline, Font: spec, Color: colorStrike, Align: "center", VAlign: "baseline"})
	f.add(Line{
		X1: cx - w/2, Y1: baseline - size*0.28,
		X2: cx + w/2, Y2: baseline - size*0.28,
		Color: colorStrike, Width: size * 0.06,
	})
	f.cursorY += size*1.2 + f.em*0.15
}

// discountBadges 绘制底部折扣卡片区。两种互斥形态：固定金额的单卡
// 片，或百分比折扣的一至两张并排卡片（会员卡仅在会员折扣为正时出
// 现）。折扣但无价格时整个区域放大（宽 1.6 倍，高与字号 2.2 倍）。
func (f *labelFlow) discountBadges(rp product.ResolvedPricing, discountOnly bool) {
	if !rp.HasDiscount() {
		return
	}
	scaleW, scaleH := 1.0, 1.0
	if discountOnly {
		scaleW, scaleH = 1.6, 2.2
	}
	cardH := f.pageH * 0.115 * f.scale * scaleH
	y := f.pageH - cardH - f.pageH*0.055

	if rp.Kind == product.DiscountFlat {
		cardW := f.contentW * 0.55 * scaleW
		if cardW > f.contentW {
			cardW = f.contentW
		}
		f.badgeCard(f.centerX-cardW/2, y, cardW, cardH, labelFlatCut, "Rp "+formatRupiah(rp.FlatAmount), gradientDiscount, colorPromo)
		return
	}

	type card struct {
		label, value string
		grad         Gradient
		ink          Color
	}
	var cards []card
	if len(rp.Parts) > 0 {
		label := labelDiscount
		if rp.UpTo {
			label = labelDiscountUpTo
		}
		cards = append(cards, card{label, joinPercents(rp.Parts), gradientDiscount, colorPromo})
	}
	if rp.MemberPercent > 0 {
		cards = append(cards, card{labelMember, formatPercent(rp.MemberPercent), gradientMember, colorMemberInk})
	}
	if len(cards) == 0 {
		return
	}

	cardW := f.contentW * 0.40 * scaleW
	gap := f.contentW * 0.035
	total := float64(len(cards))*cardW + float64(len(cards)-1)*gap
	if total > f.contentW {
		cardW = (f.contentW - float64(len(cards)-1)*gap) / float64(len(cards))
		total = f.contentW
	}
	x := f.centerX - total/2
	for _, c := range cards {
		f.badgeCard(x, y, cardW, cardH, c.label, c.value, c.grad, c.ink)
		x += cardW + gap
	}
}

// badgeCard 绘制一张圆角卡片：投影白底、渐变头条、头条内的标签文
// 字与卡身内的数值文字，两段文字分别拟合到卡片内宽。
func (f *labelFlow) badgeCard(x, y, w, h float64, label, value string, grad Gradient, ink Color) {
	radius := h * 0.12
	headerH := h * 0.42

	f.add(Rect{
		X: x, Y: y, Width: w, Height: h,
		Radius: radius, Fill: &colorWhite,
		Stroke: &colorBorder, StrokeWidth: 0.5,
		Shadow: true,
	})
	f.add(Rect{
		X: x, Y: y, Width: w, Height: headerH,
		Radius: radius, Gradient: &grad,
	})

	inner := w * 0.86
	labelSpec := FontSpec{Style: "bold", Size: FitToWidth(f.m, label, "bold", headerH*0.5, inner, 4)}
	f.add(Text{
		Content: label,
		X:       x + w/2, Y: y + headerH/2 + labelSpec.Size*0.35,
		Font: labelSpec, Color: colorWhite, Align: "center", VAlign: "baseline",
	})

	bodyH := h - headerH
	valueSpec := FontSpec{Style: "bold", Size: FitToWidth(f.m, value, "bold", bodyH*0.6, inner, 5)}
	f.add(Text{
		Content: value,
		X:       x + w/2, Y: y + headerH + bodyH/2 + valueSpec.Size*0.35,
		Font: valueSpec, Color: ink, Align: "center", VAlign: "baseline",
	})
}

// barcodePlaceholder 绘制装饰用伪条码：由 SKU 播种的伪随机条纹，
// 不是真实的条码编码，只是版面占位。
func (f *labelFlow) barcodePlaceholder(sku string) {
	h := f.pageH * 0.035
	w := f.contentW * 0.22
	x := f.left + f.contentW - w
	y := f.pageH - h - f.pageH*0.018

	seed := fnv.New64a()
	seed.Write([]byte(sku))
	rng := rand.New(rand.NewSource(int64(seed.Sum64())))

	black := Color{R: 0, G: 0, B: 0}
	cursor := x
	for cursor < x+w {
		bar := 0.35 + rng.Float64()*0.9
		if cursor+bar > x+w {
			break
		}
		f.add(Rect{X: cursor, Y: y, Width: bar, Height: h, Fill: &black})
		cursor += bar + 0.3 + rng.Float64()*0.7
	}
}

func hasPositivePrice(rp product.ResolvedPricing) bool {
	if rp.Primary.NormalPrice > 0 || rp.Primary.PromoPrice > 0 {
		return true
	}
	for _, row := range rp.Alternates {
		if row.NormalPrice > 0 || row.PromoPrice > 0 {
			return true
		}
	}
	return false
}
