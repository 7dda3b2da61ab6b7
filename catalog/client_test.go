package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestFetchBySKUTranslates 验证后端印尼语字段到 Product 的转换。
func TestFetchBySKUTranslates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/products/10023456", r.URL.Path)
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"plu": "10023456",
			"nama_barang": "Keramik 60x60",
			"deskripsi": "Granit Lantai",
			"merek": "Alpha",
			"satuan": "DUS",
			"harga_normal": 50000,
			"harga_promo": 35000,
			"diskon1": 30,
			"diskon4": 10,
			"up_to": true,
			"harga_meter_normal": 247222,
			"harga_meter_promo": 198000,
			"multi_satuan": [
				{"satuan": "DUS", "harga_normal": 50000, "harga_promo": 35000},
				{"satuan": "PCS", "harga_normal": 14000, "harga_promo": 10000}
			]
		}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/api", "tok-1", nil)
	p, err := c.FetchBySKU(context.Background(), "10023456")
	require.NoError(t, err)
	require.NotNil(t, p)

	assert.Equal(t, "10023456", p.SKU)
	assert.Equal(t, "Keramik 60x60", p.Name)
	assert.Equal(t, "Granit Lantai", p.Description)
	assert.Equal(t, "Alpha", p.Brand)
	assert.Equal(t, "DUS", p.UOM)
	assert.Equal(t, int64(50000), p.NormalPrice)
	assert.Equal(t, int64(35000), p.PromoPrice)
	assert.Equal(t, 30.0, p.DiscountPct)
	assert.Equal(t, 10.0, p.DiscountPct4)
	assert.True(t, p.UpTo)
	assert.Equal(t, 247222.0, p.MeterNormalPrice)
	assert.Len(t, p.PriceRows, 2)
	assert.Equal(t, "PCS", p.PriceRows[1].UOM)
	assert.False(t, p.IsCustom)
}

// TestFetchBySKUNotFound 验证 404 视为未命中而非错误。
func TestFetchBySKUNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", nil)
	p, err := c.FetchBySKU(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, p)
}

// TestFetchBySKUServerError 验证非 200/404 状态向上报错。
func TestFetchBySKUServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", nil)
	_, err := c.FetchBySKU(context.Background(), "10023456")
	require.Error(t, err)
}

// TestSearch 验证搜索命中与未命中（空切片）两种路径。
func TestSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("q") == "granit" {
			w.Write([]byte(`[{"sku": "10023456", "name": "Granit Alpha"}]`))
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", nil)

	hits, err := c.Search(context.Background(), "granit")
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "10023456", hits[0].SKU)

	misses, err := c.Search(context.Background(), "tidak-ada")
	require.NoError(t, err)
	assert.Empty(t, misses)
}

// TestNewCustomProduct 验证临时录入商品的本地 SKU 与来源标记。
func TestNewCustomProduct(t *testing.T) {
	p := NewCustomProduct("Paku Custom", 12000, 9000)
	assert.True(t, strings.HasPrefix(p.SKU, "CUSTOM-"))
	assert.True(t, p.IsCustom)
	assert.Equal(t, int64(12000), p.NormalPrice)
	assert.Equal(t, int64(9000), p.PromoPrice)

	q := NewCustomProduct("Paku Custom", 12000, 9000)
	assert.NotEqual(t, p.SKU, q.SKU)
}
