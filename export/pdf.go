package export

import (
	"bytes"
	"fmt"
	"image"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"
)

// PDF 打包：把导出位图序列装订成一页一图的 PDF。页面尺寸为 mm。

// WritePDF 按顺序把位图序列写成 PDF 字节。空序列返回错误（导出空
// 文档没有意义，调用方应先检查商品列表）。
func WritePDF(pages []image.Image, pageW, pageH float64) ([]byte, error) {
	if len(pages) == 0 {
		return nil, fmt.Errorf("缺少可打包的页面")
	}

	var buf bytes.Buffer
	writer := pdf.New(&buf, pageW, pageH, nil)
	for i, img := range pages {
		if i > 0 {
			writer.NewPage(pageW, pageH)
		}
		c := canvas.New(pageW, pageH)
		ctx := canvas.NewContext(c)
		ctx.SetCoordSystem(canvas.CartesianIV)

		dpmm := float64(img.Bounds().Dx()) / pageW
		if dpmm <= 0 {
			dpmm = 1
		}
		ctx.DrawImage(0, 0, img, canvas.DPMM(dpmm))
		c.RenderTo(writer)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("写入 PDF 失败: %w", err)
	}
	return buf.Bytes(), nil
}
