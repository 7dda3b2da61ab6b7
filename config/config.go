package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/ByLCY/poptag/layout"
)

// 进程配置：.env（存在则装载）+ 环境变量。逐次调用的输入（数据文
// 件、输出路径）走命令行 flag，不放在这里。

type Config struct {
	Catalog CatalogConfig
	Assets  AssetsConfig
	Render  RenderConfig
}

type CatalogConfig struct {
	BaseURL string
	Token   string
}

type AssetsConfig struct {
	BaseURL string
	Token   string
}

type RenderConfig struct {
	ShowStrikePrice bool
	ShowBarcode     bool
	Density         layout.Density
}

// Load 读取配置。所有键都有可用的默认值，缺失不报错。
func Load() (*Config, error) {
	// .env 不存在不算错误。
	_ = godotenv.Load()

	cfg := &Config{
		Catalog: CatalogConfig{
			BaseURL: getEnv("POPTAG_CATALOG_URL", "http://localhost:8080/api"),
			Token:   os.Getenv("POPTAG_CATALOG_TOKEN"),
		},
		Assets: AssetsConfig{
			BaseURL: getEnv("POPTAG_ASSETS_URL", "http://localhost:8080/api"),
			Token:   os.Getenv("POPTAG_ASSETS_TOKEN"),
		},
		Render: RenderConfig{
			ShowStrikePrice: getEnvBool("POPTAG_SHOW_STRIKE_PRICE", true),
			ShowBarcode:     getEnvBool("POPTAG_SHOW_BARCODE", false),
			Density:         parseDensity(os.Getenv("POPTAG_DENSITY")),
		},
	}
	return cfg, nil
}

// Settings 把渲染配置转成会话级呈现设置。
func (c *Config) Settings() layout.Settings {
	return layout.Settings{
		ShowStrikePrice: c.Render.ShowStrikePrice,
		Density:         c.Render.Density,
		ShowBarcode:     c.Render.ShowBarcode,
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func parseDensity(v string) layout.Density {
	switch v {
	case "double", "2":
		return layout.DensityDouble
	case "quad", "4":
		return layout.DensityQuad
	default:
		return layout.DensitySingle
	}
}
