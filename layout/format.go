package layout

import (
	"fmt"
	"strings"
)

// 金额与折扣的本地化格式：Rupiah 用 "." 做千分组，百分比最多保留一
// 位小数并去掉无意义的 .0 尾巴。

// formatRupiah 把整数 Rupiah 格式化为 "50.000" 这样的千分组字符串。
func formatRupiah(amount int64) string {
	if amount < 0 {
		amount = 0
	}
	digits := fmt.Sprintf("%d", amount)
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// splitRupiah 把格式化金额拆成主数字与千分尾巴（"50.000" -> "50",
// ".000"），尾巴在价格块里以小一号字绘制。无尾巴时第二个返回值为空。
func splitRupiah(formatted string) (string, string) {
	if i := strings.IndexByte(formatted, '.'); i >= 0 {
		return formatted[:i], formatted[i:]
	}
	return formatted, ""
}

// formatPercent 把百分比格式化为最多一位小数，去掉 .0/.00 尾巴。
func formatPercent(v float64) string {
	s := fmt.Sprintf("%.1f", v)
	s = strings.TrimSuffix(s, ".0")
	return s + "%"
}

// joinPercents 把多档折扣拼成 "12% + 5%" 样式。
func joinPercents(parts []float64) string {
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = formatPercent(p)
	}
	return strings.Join(out, " + ")
}
