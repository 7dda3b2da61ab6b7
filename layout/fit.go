package layout

import (
	"math"
	"strings"
)

// 文本拟合工具：在字号预算内缩小字体直到文本放得下。两个算法都是
// 纯函数，测量能力由 Measurer 注入。

// FitToLines 逐步把字号减 1，直到文本在给定盒宽下折行后不超过
// maxLines 行，或字号到达下限 max(12, start*0.7)。不截断文本：到达
// 下限仍放不下时允许溢出。只减不增：起始字号已在下限之下时原样返
// 回。返回最终字号。
func FitToLines(m Measurer, text string, style string, start, boxWidth float64, maxLines int) float64 {
	floor := math.Max(12, start*0.7)
	if start <= floor {
		return start
	}
	size := start
	for size > floor && len(WrapText(m, text, FontSpec{Style: style, Size: size}, boxWidth)) > maxLines {
		size--
	}
	if size < floor {
		size = floor
	}
	return size
}

// FitToWidth 在单行测量宽度超出 maxWidth 且字号大于 min 时逐步减 1。
// 返回最终字号。
func FitToWidth(m Measurer, text string, style string, start, maxWidth, min float64) float64 {
	size := start
	for size > min && m.TextWidth(text, FontSpec{Style: style, Size: size}) > maxWidth {
		size--
	}
	if size < min {
		size = min
	}
	return size
}

// WrapText 用贪心算法按空白分词折行；单个词超宽时按宽度在词内硬拆。
// 返回折行后的各行内容。
func WrapText(m Measurer, text string, font FontSpec, width float64) []string {
	if width <= 0 {
		return []string{text}
	}
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	var line strings.Builder
	lineWidth := 0.0
	emit := func() {
		if line.Len() == 0 {
			return
		}
		lines = append(lines, line.String())
		line.Reset()
		lineWidth = 0
	}
	push := func(s string) {
		if line.Len() > 0 {
			line.WriteString(" ")
			lineWidth += m.TextWidth(" ", font)
		}
		line.WriteString(s)
		lineWidth += m.TextWidth(s, font)
	}

	for _, word := range words {
		w := m.TextWidth(word, font)
		if lineWidth > 0 && lineWidth+m.TextWidth(" ", font)+w > width {
			emit()
		}
		if w <= width {
			push(word)
			continue
		}
		for _, chunk := range splitWordByWidth(m, word, font, width) {
			cw := m.TextWidth(chunk, font)
			if lineWidth > 0 && lineWidth+cw > width {
				emit()
			}
			push(chunk)
		}
	}
	emit()
	if len(lines) == 0 {
		lines = []string{""}
	}
	return lines
}

func splitWordByWidth(m Measurer, word string, font FontSpec, limit float64) []string {
	var parts []string
	var runes []rune
	for _, r := range word {
		runes = append(runes, r)
		// 按字符数而不是字节数判断：单个多字节字符即便超宽也不可再拆。
		if len(runes) > 1 && m.TextWidth(string(runes), font) > limit {
			parts = append(parts, string(runes[:len(runes)-1]))
			runes = []rune{r}
		}
	}
	if len(runes) > 0 {
		parts = append(parts, string(runes))
	}
	return parts
}
