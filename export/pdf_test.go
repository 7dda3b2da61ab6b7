package export

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/ByLCY/poptag/layout"
)

// TestWritePDFEmpty 验证空序列拒绝打包。
func TestWritePDFEmpty(t *testing.T) {
	if _, err := WritePDF(nil, layout.PageWidth, layout.PageHeight); err == nil {
		t.Fatalf("空序列应报错")
	}
}

// TestWritePDF 验证多页打包产出合法的 PDF 头。
func TestWritePDF(t *testing.T) {
	page := image.NewRGBA(image.Rect(0, 0, 21, 30))
	for y := 0; y < 30; y++ {
		for x := 0; x < 21; x++ {
			page.Set(x, y, color.RGBA{R: 255, G: 255, B: 255, A: 255})
		}
	}

	data, err := WritePDF([]image.Image{page, page}, layout.PageWidth, layout.PageHeight)
	if err != nil {
		t.Fatalf("打包失败: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("输出不是 PDF: %q", data[:8])
	}
}
