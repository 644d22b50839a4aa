package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/product-catalog-service/internal/config"
	"github.com/maxviazov/product-catalog-service/internal/handler"
	"github.com/maxviazov/product-catalog-service/internal/model"
	"github.com/maxviazov/product-catalog-service/internal/repository"
	"github.com/maxviazov/product-catalog-service/internal/repository/contract"
	"github.com/maxviazov/product-catalog-service/internal/repository/memory"
	"github.com/maxviazov/product-catalog-service/internal/service"
	"github.com/maxviazov/product-catalog-service/pkg/response"
)

type stubPinger struct{ err error }

func (s stubPinger) Ping(context.Context) error { return s.err }

// stubProducts fails every call with err and records the deadline it saw.
type stubProducts struct {
	err         error
	hadDeadline bool
}

func (s *stubProducts) ListProductsByCategory(ctx context.Context, _ int64, _ repository.PageRequest) (repository.PageResult[model.Product], error) {
	_, s.hadDeadline = ctx.Deadline()
	return repository.PageResult[model.Product]{}, s.err
}
func (s *stubProducts) SearchProductsByName(context.Context, string, repository.PageRequest) (repository.PageResult[model.Product], error) {
	return repository.PageResult[model.Product]{}, s.err
}
func (s *stubProducts) GetProduct(context.Context, int64) (model.Product, error) {
	return model.Product{}, s.err
}

func httpConfig() config.HTTPConfig {
	return config.HTTPConfig{
		Addr:           ":0",
		RequestTimeout: time.Second,
		CORS:           config.CORSConfig{AllowedOrigins: []string{"http://localhost:4200"}, MaxAge: time.Hour},
	}
}

func newSeededEngine(t *testing.T) *gin.Engine {
	t.Helper()
	db := memory.New()
	products, categories := memory.NewProductRepository(db), memory.NewCategoryRepository(db)
	contract.Seed(t, context.Background(), products, categories)
	countries, states := memory.NewCountryRepository(db), memory.NewStateRepository(db)
	contract.SeedLocations(t, context.Background(), countries, states)

	logger := zerolog.New(io.Discard)
	paging := service.DefaultPaging()
	return handler.NewEngine(httpConfig(), gin.TestMode, logger, handler.Services{
		Store:           stubPinger{},
		Products:        service.NewProductService(products, paging, logger),
		Categories:      service.NewCategoryService(categories, paging, logger),
		Locations:       service.NewLocationService(countries, states, paging, logger),
		DefaultPageSize: paging.DefaultPageSize,
	})
}

func do(r http.Handler, method, target string, hdr map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type productPage struct {
	Items      []model.Product `json:"items"`
	Page       int             `json:"page"`
	Size       int             `json:"size"`
	TotalItems int             `json:"total_items"`
	TotalPages int             `json:"total_pages"`
	HasNext    bool            `json:"has_next"`
	Sort       string          `json:"sort"`
	Direction  string          `json:"direction"`
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func pageIDs(p productPage) []int64 {
	out := []int64{}
	for _, it := range p.Items {
		out = append(out, it.ID)
	}
	return out
}

func TestListProductsByCategory_HTTP(t *testing.T) {
	r := newSeededEngine(t)

	w := do(r, http.MethodGet, "/api/v1/products?categoryId=5&page=1&size=3", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	got := decode[productPage](t, w)
	assert.Equal(t, []int64{8, 9, 11}, pageIDs(got))
	assert.Equal(t, 7, got.TotalItems)
	assert.Equal(t, 3, got.TotalPages)
	assert.True(t, got.HasNext)
	assert.Equal(t, "id", got.Sort)
	assert.Equal(t, "asc", got.Direction)

	// path form returns the same page
	w2 := do(r, http.MethodGet, "/api/v1/categories/5/products?page=1&size=3", nil)
	require.Equal(t, http.StatusOK, w2.Code)
	assert.JSONEq(t, w.Body.String(), w2.Body.String())

	// past the end is an empty page, not an error
	w = do(r, http.MethodGet, "/api/v1/products?categoryId=5&page=9&size=3", nil)
	require.Equal(t, http.StatusOK, w.Code)
	got = decode[productPage](t, w)
	assert.Empty(t, got.Items)
	assert.Equal(t, 7, got.TotalItems)

	// unknown category is an empty set
	w = do(r, http.MethodGet, "/api/v1/products?categoryId=777", nil)
	require.Equal(t, http.StatusOK, w.Code)
	got = decode[productPage](t, w)
	assert.Zero(t, got.TotalPages)
	assert.Equal(t, 20, got.Size, "absent size takes the default")
}

func TestListProductsByCategory_HTTPSort(t *testing.T) {
	r := newSeededEngine(t)
	for _, sort := range []string{"unit_price:desc", "unit_price,DESC"} {
		w := do(r, http.MethodGet, "/api/v1/products?categoryId=5&size=10&sort="+sort, nil)
		require.Equal(t, http.StatusOK, w.Code, sort)
		got := decode[productPage](t, w)
		require.Len(t, got.Items, 7)
		for i := 1; i < len(got.Items); i++ {
			assert.GreaterOrEqual(t, got.Items[i-1].UnitPrice, got.Items[i].UnitPrice, sort)
		}
		assert.Equal(t, "desc", got.Direction)
	}
}

func TestListProductsByCategory_HTTPBadRequests(t *testing.T) {
	r := newSeededEngine(t)

	cases := []struct {
		name   string
		target string
		fields []string
	}{
		{"missing category", "/api/v1/products", []string{"categoryId"}},
		{"non-numeric category", "/api/v1/products?categoryId=abc", []string{"categoryId"}},
		{"malformed page and size", "/api/v1/products?categoryId=5&page=x&size=1.5", []string{"page", "size"}},
		{"negative page", "/api/v1/products?categoryId=5&page=-1", []string{"page"}},
		{"zero size", "/api/v1/products?categoryId=5&size=0", []string{"size"}},
		{"size above max", "/api/v1/products?categoryId=5&size=1001", []string{"size"}},
		{"unknown sort key", "/api/v1/products?categoryId=5&sort=password", []string{"sort"}},
		{"bad direction", "/api/v1/products?categoryId=5&sort=name:up", []string{"sort"}},
		{"zero category", "/api/v1/categories/0/products", []string{"category_id"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := do(r, http.MethodGet, tc.target, nil)
			require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
			body := decode[response.ErrorPayload](t, w)
			assert.Equal(t, "invalid_argument", body.Error)
			var fields []string
			for _, fe := range body.FieldErrors {
				fields = append(fields, fe.Field)
			}
			assert.Equal(t, tc.fields, fields)
			assert.NotEmpty(t, body.RequestID)
		})
	}
}

func TestSearchAndGetProduct_HTTP(t *testing.T) {
	r := newSeededEngine(t)

	w := do(r, http.MethodGet, "/api/v1/products/search?name=STICKER%20b", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, []int64{8}, pageIDs(decode[productPage](t, w)))

	w = do(r, http.MethodGet, "/api/v1/products/search", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodGet, "/api/v1/products/8", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Sticker Bravo", decode[model.Product](t, w).Name)

	w = do(r, http.MethodGet, "/api/v1/products/404", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(r, http.MethodGet, "/api/v1/products/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCategories_HTTP(t *testing.T) {
	r := newSeededEngine(t)

	w := do(r, http.MethodGet, "/api/v1/categories?size=2&sort=category_name:desc", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var page struct {
		Items      []model.ProductCategory `json:"items"`
		TotalItems int                     `json:"total_items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Equal(t, 5, page.TotalItems)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "Stickers", page.Items[0].CategoryName)

	w = do(r, http.MethodGet, "/api/v1/categories/2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Coffee Mugs", decode[model.ProductCategory](t, w).CategoryName)

	w = do(r, http.MethodGet, "/api/v1/categories/99", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLocations_HTTP(t *testing.T) {
	r := newSeededEngine(t)

	w := do(r, http.MethodGet, "/api/v1/countries?sort=name", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	countries := decode[struct {
		Items      []model.Country `json:"items"`
		TotalItems int             `json:"total_items"`
	}](t, w)
	assert.Equal(t, 4, countries.TotalItems)
	require.Len(t, countries.Items, 4)
	assert.Equal(t, model.Country{ID: 1, Code: "BR", Name: "Brazil"}, countries.Items[0])

	w = do(r, http.MethodGet, "/api/v1/states?countryCode=us&size=2&sort=name", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	states := decode[struct {
		Items      []model.State `json:"items"`
		TotalItems int           `json:"total_items"`
		HasNext    bool          `json:"has_next"`
	}](t, w)
	require.Len(t, states.Items, 2)
	assert.Equal(t, "Alaska", states.Items[0].Name)
	assert.Equal(t, 3, states.TotalItems)
	assert.True(t, states.HasNext)

	w = do(r, http.MethodGet, "/api/v1/states?countryCode=ZZ", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, decode[productPage](t, w).TotalItems)

	for target, field := range map[string]string{
		"/api/v1/states":                  "countryCode",
		"/api/v1/states?countryCode=USA":  "country_code",
		"/api/v1/countries?sort=category": "sort",
	} {
		w = do(r, http.MethodGet, target, nil)
		require.Equal(t, http.StatusBadRequest, w.Code, target)
		body := decode[response.ErrorPayload](t, w)
		require.NotEmpty(t, body.FieldErrors, target)
		assert.Equal(t, field, body.FieldErrors[0].Field, target)
	}
}

func TestStoreUnavailable_HTTP(t *testing.T) {
	stub := &stubProducts{err: repository.Unavailable(errors.New("dial tcp: connection refused"))}
	r := handler.NewEngine(httpConfig(), gin.TestMode, zerolog.New(io.Discard), handler.Services{
		Store:           stubPinger{},
		Products:        stub,
		DefaultPageSize: 20,
	})

	w := do(r, http.MethodGet, "/api/v1/products?categoryId=5", map[string]string{handler.RequestIDHeader: "req-42"})
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	body := decode[response.ErrorPayload](t, w)
	assert.Equal(t, "store_unavailable", body.Error)
	assert.Equal(t, "req-42", body.RequestID)
	assert.NotContains(t, w.Body.String(), "connection refused", "driver details stay in the logs")
	assert.Equal(t, "req-42", w.Header().Get(handler.RequestIDHeader))
	assert.True(t, stub.hadDeadline, "request timeout bounds the store call")
}

func TestDocs_HTTP(t *testing.T) {
	r := newSeededEngine(t)

	w := do(r, http.MethodGet, "/openapi.yaml", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/products/search")

	w = do(r, http.MethodGet, "/docs", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "swagger-ui")
}

func TestMiddleware_RequestIDAndCORS(t *testing.T) {
	r := newSeededEngine(t)

	w := do(r, http.MethodGet, "/live", nil)
	assert.Len(t, w.Header().Get(handler.RequestIDHeader), 26, "ULID")

	w = do(r, http.MethodGet, "/api/v1/categories", map[string]string{"Origin": "http://localhost:4200"})
	assert.Equal(t, "http://localhost:4200", w.Header().Get("Access-Control-Allow-Origin"))

	w = do(r, http.MethodOptions, "/api/v1/categories", map[string]string{
		"Origin":                        "http://evil.example",
		"Access-Control-Request-Method": http.MethodGet,
	})
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
