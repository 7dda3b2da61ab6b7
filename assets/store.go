package assets

import (
	"context"
	"encoding/json"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
)

// 模板/品牌资源协作方：核心只拿模板元数据并解引用 ImageUrl 取回栅
// 格图，图片如何持久化由后端决定。

// Template 是模板元数据。ImageURL 为空表示内置平底背景槽位。
type Template struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
}

// Store 列出可用模板。
type Store interface {
	Templates(ctx context.Context) ([]Template, error)
}

// HTTPStore 是 Store 的 HTTP 实现。
type HTTPStore struct {
	base  string
	token string
	hc    *http.Client
}

var _ Store = (*HTTPStore)(nil)

// NewHTTPStore 构造模板元数据客户端。
func NewHTTPStore(base, token string) *HTTPStore {
	return &HTTPStore{
		base:  base,
		token: token,
		hc:    &http.Client{Timeout: 15 * time.Second},
	}
}

// Templates 拉取模板列表。
func (s *HTTPStore) Templates(ctx context.Context) ([]Template, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.base+"/templates", nil)
	if err != nil {
		return nil, fmt.Errorf("构造请求失败: %w", err)
	}
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	resp, err := s.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("请求模板列表失败: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("模板服务返回异常状态 %d", resp.StatusCode)
	}
	var out []Template
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("解析模板列表失败: %w", err)
	}
	return out, nil
}

// Loader 解引用图片地址（http(s) 或本地路径）并解码为栅格图。
type Loader struct {
	hc  *http.Client
	log *zap.Logger
}

// NewLoader 构造图片加载器。
func NewLoader(log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{hc: &http.Client{Timeout: 30 * time.Second}, log: log}
}

// Load 取回并解码一张图片。
func (l *Loader) Load(src string) (image.Image, error) {
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		resp, err := l.hc.Get(src)
		if err != nil {
			return nil, fmt.Errorf("下载图片 %s 失败: %w", src, err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("下载图片 %s 返回状态 %d", src, resp.StatusCode)
		}
		img, _, err := image.Decode(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("解码图片 %s 失败: %w", src, err)
		}
		return img, nil
	}

	file, err := os.Open(src)
	if err != nil {
		return nil, fmt.Errorf("读取图片 %s 失败: %w", src, err)
	}
	defer file.Close()
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("解码图片 %s 失败: %w", src, err)
	}
	return img, nil
}

// LoadTemplate 取模板背景图；失败时记日志并返回 nil，让该页回退平
// 底路径而不是中断整次渲染。
func (l *Loader) LoadTemplate(tpl *Template) image.Image {
	if tpl == nil || tpl.ImageURL == "" {
		return nil
	}
	img, err := l.Load(tpl.ImageURL)
	if err != nil {
		l.log.Warn("模板背景加载失败，回退平底背景", zap.String("template", tpl.ID), zap.Error(err))
		return nil
	}
	return img
}
