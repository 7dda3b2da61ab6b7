package layout

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

// TestWriteDebugJSON 验证调试输出带变体标签且可回读。
func TestWriteDebugJSON(t *testing.T) {
	g := Group{Items: []Primitive{
		Rect{X: 1, Y: 2, Width: 3, Height: 4},
		Text{Content: "Rp", X: 5, Y: 6, Font: FontSpec{Style: "bold", Size: 10}},
	}}
	path := filepath.Join(t.TempDir(), "page.json")
	if err := WriteDebugJSON(g, path); err != nil {
		t.Fatalf("输出调试 JSON 失败: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("读取调试 JSON 失败: %v", err)
	}
	var entries []map[string]any
	if err := json.Unmarshal(raw, &entries); err != nil {
		t.Fatalf("调试 JSON 不可解析: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("图元数量错误: %d", len(entries))
	}
	if entries[0]["kind"] != "rect" || entries[1]["kind"] != "text" {
		t.Fatalf("变体标签错误: %v / %v", entries[0]["kind"], entries[1]["kind"])
	}
}
