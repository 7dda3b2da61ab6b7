package fonts

import (
	"embed"
	"fmt"
)

//go:embed Inter/static/Inter-Regular.ttf Inter/static/Inter-Bold.ttf
var fontFS embed.FS

// Regular 返回内置的正文字重字体数据。
func Regular() ([]byte, error) { return load("Inter/static/Inter-Regular.ttf") }

// Bold 返回内置的粗体字体数据，价格与折扣卡片使用。
func Bold() ([]byte, error) { return load("Inter/static/Inter-Bold.ttf") }

func load(path string) ([]byte, error) {
	data, err := fontFS.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取内置字体 %s 失败: %w", path, err)
	}
	return data, nil
}
