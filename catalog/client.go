package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ByLCY/poptag/product"
)

// 商品数据源协作方：按 SKU 查询与模糊搜索，走后端 REST 接口。
// 后端原生 schema 到 Product 的字段名转换发生在这里，核心不感知。

// ErrNotFound 表示查询没有命中任何记录（DataUnavailable，非致命）。
// Source 接口约定未命中返回 (nil, nil)，该错误只在内部使用。
var ErrNotFound = errors.New("catalog: 记录不存在")

// Summary 是搜索结果条目。
type Summary struct {
	SKU  string `json:"sku"`
	Name string `json:"name"`
}

// Source 是核心消费的数据源接口。两个方法都容忍未命中：FetchBySKU
// 未命中返回 (nil, nil)，Search 未命中返回空切片。
type Source interface {
	FetchBySKU(ctx context.Context, sku string) (*product.Product, error)
	Search(ctx context.Context, query string) ([]Summary, error)
}

// Client 是 Source 的 HTTP 实现。
type Client struct {
	base  string
	token string
	hc    *http.Client
	log   *zap.Logger
}

var _ Source = (*Client)(nil)

// NewClient 构造目录客户端。base 形如 "https://host/api"。
func NewClient(base, token string, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		base:  base,
		token: token,
		hc:    &http.Client{Timeout: 15 * time.Second},
		log:   log,
	}
}

// productDTO 是后端返回的商品结构（印尼语字段），只在本包内流通。
type productDTO struct {
	PLU           string   `json:"plu"`
	NamaBarang    string   `json:"nama_barang"`
	Deskripsi     string   `json:"deskripsi"`
	Merek         string   `json:"merek"`
	MerekImageURL string   `json:"merek_image_url"`
	Satuan        string   `json:"satuan"`
	HargaNormal   int64    `json:"harga_normal"`
	HargaPromo    int64    `json:"harga_promo"`
	Diskon1       float64  `json:"diskon1"`
	Diskon2       float64  `json:"diskon2"`
	Diskon3       float64  `json:"diskon3"`
	Diskon4       float64  `json:"diskon4"`
	TipeDiskon    string   `json:"tipe_diskon"`
	NilaiPotongan int64    `json:"nilai_potongan"`
	UpTo          bool     `json:"up_to"`
	HargaMeterNrm float64  `json:"harga_meter_normal"`
	HargaMeterPro float64  `json:"harga_meter_promo"`
	MultiSatuan   []rowDTO `json:"multi_satuan"`
}

type rowDTO struct {
	Satuan      string `json:"satuan"`
	HargaNormal int64  `json:"harga_normal"`
	HargaPromo  int64  `json:"harga_promo"`
}

func (d *productDTO) toProduct() *product.Product {
	p := &product.Product{
		SKU:              d.PLU,
		Name:             d.NamaBarang,
		Description:      d.Deskripsi,
		Brand:            d.Merek,
		BrandImageURL:    d.MerekImageURL,
		UOM:              d.Satuan,
		NormalPrice:      d.HargaNormal,
		PromoPrice:       d.HargaPromo,
		DiscountPct:      d.Diskon1,
		DiscountPct2:     d.Diskon2,
		DiscountPct3:     d.Diskon3,
		DiscountPct4:     d.Diskon4,
		DiscountType:     d.TipeDiskon,
		DiscountAmount:   d.NilaiPotongan,
		UpTo:             d.UpTo,
		MeterNormalPrice: d.HargaMeterNrm,
		MeterPromoPrice:  d.HargaMeterPro,
		IsCustom:         false,
	}
	for _, row := range d.MultiSatuan {
		p.PriceRows = append(p.PriceRows, product.PriceRow{
			UOM:         row.Satuan,
			NormalPrice: row.HargaNormal,
			PromoPrice:  row.HargaPromo,
		})
	}
	return p
}

// FetchBySKU 按 SKU 拉取一条商品记录；404 视为未命中，返回 (nil, nil)。
func (c *Client) FetchBySKU(ctx context.Context, sku string) (*product.Product, error) {
	var dto productDTO
	err := c.getJSON(ctx, "/products/"+url.PathEscape(sku), &dto)
	if errors.Is(err, ErrNotFound) {
		c.log.Debug("商品未命中", zap.String("sku", sku))
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return dto.toProduct(), nil
}

// Search 按关键字搜索，未命中返回空切片而非错误。
func (c *Client) Search(ctx context.Context, query string) ([]Summary, error) {
	var out []Summary
	err := c.getJSON(ctx, "/products?q="+url.QueryEscape(query), &out)
	if errors.Is(err, ErrNotFound) {
		return []Summary{}, nil
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
	if err != nil {
		return fmt.Errorf("构造请求失败: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("请求后端失败: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("后端返回异常状态 %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("解析后端响应失败: %w", err)
	}
	return nil
}

// NewCustomProduct 构造一条用户临时录入的商品记录：生成本地 SKU，
// 标记 IsCustom 以启用临时录入路径的第四档折扣语义。
func NewCustomProduct(name string, normalPrice, promoPrice int64) *product.Product {
	return &product.Product{
		SKU:         "CUSTOM-" + uuid.NewString(),
		Name:        name,
		NormalPrice: normalPrice,
		PromoPrice:  promoPrice,
		IsCustom:    true,
	}
}
