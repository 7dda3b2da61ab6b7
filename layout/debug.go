package layout

import (
	"encoding/json"
	"os"
)

// WriteDebugJSON 把单页的图元树输出为 JSON，便于调试或可视化比对。
func WriteDebugJSON(g Group, path string) error {
	data, err := json.MarshalIndent(debugGroup(g), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// debugGroup 给每个图元补上变体标签，否则接口切片序列化后分不清类型。
func debugGroup(g Group) []map[string]any {
	out := make([]map[string]any, 0, len(g.Items))
	for _, item := range g.Items {
		entry := map[string]any{}
		switch v := item.(type) {
		case Rect:
			entry["kind"] = "rect"
			entry["value"] = v
		case Text:
			entry["kind"] = "text"
			entry["value"] = v
		case Line:
			entry["kind"] = "line"
			entry["value"] = v
		case Image:
			entry["kind"] = "image"
			entry["value"] = v
		case Group:
			entry["kind"] = "group"
			entry["value"] = debugGroup(v)
		}
		out = append(out, entry)
	}
	return out
}
