package layout

// 该文件定义布局引擎的输出单位：带绝对页面坐标的可绘制图元。
// 坐标一次性算好，不保留布局树；渲染器按列表顺序绘制（顺序即 z 序）。

// Color 采用 0-255 的 RGB 数值。
type Color struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// Gradient 描述从左到右的线性渐变填充。
type Gradient struct {
	From Color `json:"from"`
	To   Color `json:"to"`
}

// Primitive 是图元变体的标签接口。
type Primitive interface {
	primitive()
}

// Rect 表示一个矩形，可选圆角、渐变填充与投影。
type Rect struct {
	X           float64   `json:"x"`
	Y           float64   `json:"y"`
	Width       float64   `json:"width"`
	Height      float64   `json:"height"`
	Radius      float64   `json:"radius,omitempty"`
	Fill        *Color    `json:"fill,omitempty"`
	Gradient    *Gradient `json:"gradient,omitempty"`
	Stroke      *Color    `json:"stroke,omitempty"`
	StrokeWidth float64   `json:"strokeWidth,omitempty"`
	Shadow      bool      `json:"shadow,omitempty"`
}

// FontSpec 描述一次文本测量/绘制所用的字体。测量与绘制必须共用同
// 一份字体度量，否则拟合结果与实际渲染会漂移。
type FontSpec struct {
	Style string  `json:"style"` // "regular" 或 "bold"
	Size  float64 `json:"size"`  // mm
}

// Text 表示一段单行文本。Y 为基线坐标；Align 决定 X 的锚定方式
// （left/center/right），VAlign 目前只有 baseline 一种语义。
type Text struct {
	Content string   `json:"content"`
	X       float64  `json:"x"`
	Y       float64  `json:"y"`
	Font    FontSpec `json:"font"`
	Color   Color    `json:"color"`
	Align   string   `json:"align,omitempty"`
	VAlign  string   `json:"valign,omitempty"`
}

// Line 表示一条线段。
type Line struct {
	X1    float64 `json:"x1"`
	Y1    float64 `json:"y1"`
	X2    float64 `json:"x2"`
	Y2    float64 `json:"y2"`
	Color Color   `json:"color"`
	Width float64 `json:"width"` // mm，<=0 时由渲染器给默认值
}

// Image 表示一张嵌入的栅格图（品牌图等），Src 由渲染器的图片加载
// 器解引用；加载失败降级为跳过，不中断整页。
type Image struct {
	Src    string  `json:"src"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Group 是一组按顺序绘制的图元，作为一个整体定位。
type Group struct {
	Items []Primitive `json:"items"`
}

func (Rect) primitive()  {}
func (Text) primitive()  {}
func (Line) primitive()  {}
func (Image) primitive() {}
func (Group) primitive() {}

// Transform 是单页标签的手工位移/缩放覆盖，由拖拽结束回调写入，
// 布局与渲染阶段只读。
type Transform struct {
	DX    float64 `json:"dx"`
	DY    float64 `json:"dy"`
	Scale float64 `json:"scale"`
}

// Apply 以页面中心为锚点对整组图元施加覆盖变换，返回新的组，
// 不修改原图元。
func (t Transform) Apply(g Group) Group {
	s := t.Scale
	if s <= 0 {
		s = 1
	}
	cx, cy := PageWidth/2, PageHeight/2
	mapX := func(x float64) float64 { return cx + (x-cx)*s + t.DX }
	mapY := func(y float64) float64 { return cy + (y-cy)*s + t.DY }

	var walk func(p Primitive) Primitive
	walk = func(p Primitive) Primitive {
		switch v := p.(type) {
		case Rect:
			v.X, v.Y = mapX(v.X), mapY(v.Y)
			v.Width *= s
			v.Height *= s
			v.Radius *= s
			return v
		case Text:
			v.X, v.Y = mapX(v.X), mapY(v.Y)
			v.Font.Size *= s
			return v
		case Line:
			v.X1, v.Y1 = mapX(v.X1), mapY(v.Y1)
			v.X2, v.Y2 = mapX(v.X2), mapY(v.Y2)
			v.Width *= s
			return v
		case Image:
			v.X, v.Y = mapX(v.X), mapY(v.Y)
			v.Width *= s
			v.Height *= s
			return v
		case Group:
			items := make([]Primitive, len(v.Items))
			for i, item := range v.Items {
				items[i] = walk(item)
			}
			return Group{Items: items}
		default:
			return p
		}
	}
	out := walk(g)
	return out.(Group)
}
