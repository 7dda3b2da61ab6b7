package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ByLCY/poptag/assets"
	"github.com/ByLCY/poptag/catalog"
	"github.com/ByLCY/poptag/config"
	"github.com/ByLCY/poptag/export"
	"github.com/ByLCY/poptag/layout"
	"github.com/ByLCY/poptag/product"
	canvasrenderer "github.com/ByLCY/poptag/renderer/canvas"
)

func main() {
	dataPath := flag.String("data", "", "商品 JSON 文件路径（数组）")
	skus := flag.String("skus", "", "从目录拉取的 SKU 列表，逗号分隔")
	templateSrc := flag.String("template", "", "背景模板图（路径或 URL），留空走平底背景")
	output := flag.String("out", "output/labels.pdf", "PDF 输出路径")
	preview := flag.String("preview", "", "预览 PNG 输出路径（1x，渲染 -preview-page 指定页）")
	previewPage := flag.Int("preview-page", 0, "预览页下标")
	debugPath := flag.String("debug", "", "首页图元树调试 JSON 输出路径")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(*dataPath, *skus, *templateSrc, *output, *preview, *previewPage, *debugPath, logger); err != nil {
		logger.Fatal("生成标签失败", zap.Error(err))
	}
}

// run 串联取数、布局、渲染与导出。
func run(dataPath, skus, templateSrc, output, preview string, previewPage int, debugPath string, logger *zap.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	set := cfg.Settings()

	products, err := loadProducts(dataPath, skus, cfg, logger)
	if err != nil {
		return err
	}
	if len(products) == 0 {
		return fmt.Errorf("没有可渲染的商品（-data 与 -skus 至少给一个）")
	}

	loader := assets.NewLoader(logger)
	background := loader.LoadTemplate(&assets.Template{ID: "cli", ImageURL: templateSrc})

	r, err := canvasrenderer.New(canvasrenderer.Options{Logger: logger, ImageLoader: loader.Load})
	if err != nil {
		return err
	}
	driver := export.NewDriver(r, logger)

	if debugPath != "" {
		group := layout.Build(products[0], layout.PageWidth, layout.PageHeight, set, background != nil, r)
		if err := os.MkdirAll(filepath.Dir(debugPath), 0o755); err != nil {
			return fmt.Errorf("创建调试目录失败: %w", err)
		}
		if err := layout.WriteDebugJSON(group, debugPath); err != nil {
			return fmt.Errorf("输出调试 JSON 失败: %w", err)
		}
	}

	pages, err := driver.ExportPages(products, set, background)
	if err != nil {
		return err
	}
	pdfBytes, err := export.WritePDF(pages, layout.PageWidth, layout.PageHeight)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}
	if err := os.WriteFile(output, pdfBytes, 0o644); err != nil {
		return fmt.Errorf("写入 PDF 文件失败: %w", err)
	}
	logger.Info("已生成 PDF", zap.String("path", output), zap.Int("pages", len(pages)))

	if preview != "" {
		img, err := driver.Preview(products, set, background, previewPage)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(preview), 0o755); err != nil {
			return fmt.Errorf("创建预览目录失败: %w", err)
		}
		file, err := os.Create(preview)
		if err != nil {
			return fmt.Errorf("创建预览文件失败: %w", err)
		}
		defer file.Close()
		if err := png.Encode(file, img); err != nil {
			return fmt.Errorf("写入预览 PNG 失败: %w", err)
		}
		logger.Info("已生成预览", zap.String("path", preview), zap.Int("page", previewPage))
	}
	return nil
}

// loadProducts 汇总本地 JSON 与目录查询两个来源，保持输入顺序。
func loadProducts(dataPath, skus string, cfg *config.Config, logger *zap.Logger) ([]*product.Product, error) {
	var products []*product.Product

	if dataPath != "" {
		raw, err := os.ReadFile(dataPath)
		if err != nil {
			return nil, fmt.Errorf("读取商品文件 %s 失败: %w", dataPath, err)
		}
		var local []*product.Product
		if err := json.Unmarshal(raw, &local); err != nil {
			return nil, fmt.Errorf("解析商品文件 %s 失败: %w", dataPath, err)
		}
		products = append(products, local...)
	}

	if skus != "" {
		client := catalog.NewClient(cfg.Catalog.BaseURL, cfg.Catalog.Token, logger)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		for _, sku := range strings.Split(skus, ",") {
			sku = strings.TrimSpace(sku)
			if sku == "" {
				continue
			}
			p, err := client.FetchBySKU(ctx, sku)
			if err != nil {
				return nil, err
			}
			if p == nil {
				logger.Warn("SKU 未命中，跳过", zap.String("sku", sku))
				continue
			}
			products = append(products, p)
		}
	}
	return products, nil
}
