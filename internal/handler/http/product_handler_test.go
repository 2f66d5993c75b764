package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valentin72637-cmd/fitness-supplements-ecommerce/internal/catalog"
)

type mockCatalogService struct {
	listProductsFunc   func(ctx context.Context) ([]catalog.Product, error)
	getProductFunc     func(ctx context.Context, id int64) (*catalog.Product, error)
	createProductFunc  func(ctx context.Context, p *catalog.Product) (int64, error)
	updateProductFunc  func(ctx context.Context, id int64, upd catalog.ProductUpdate) error
	deleteProductFunc  func(ctx context.Context, id int64) error
	listCategoriesFunc func(ctx context.Context) ([]catalog.Category, error)
}

func (m *mockCatalogService) ListProducts(ctx context.Context) ([]catalog.Product, error) {
	return m.listProductsFunc(ctx)
}

func (m *mockCatalogService) GetProductByID(ctx context.Context, id int64) (*catalog.Product, error) {
	return m.getProductFunc(ctx, id)
}

func (m *mockCatalogService) CreateProduct(ctx context.Context, p *catalog.Product) (int64, error) {
	return m.createProductFunc(ctx, p)
}

func (m *mockCatalogService) UpdateProduct(ctx context.Context, id int64, upd catalog.ProductUpdate) error {
	return m.updateProductFunc(ctx, id, upd)
}

func (m *mockCatalogService) DeleteProduct(ctx context.Context, id int64) error {
	return m.deleteProductFunc(ctx, id)
}

func (m *mockCatalogService) ListCategories(ctx context.Context) ([]catalog.Category, error) {
	return m.listCategoriesFunc(ctx)
}

func newProductTestRouter(svc catalog.Service) *chi.Mux {
	r := chi.NewRouter()
	NewProductHandler(svc).RegisterRoutes(r)
	return r
}

func TestProductHandler_ListProducts(t *testing.T) {
	categoryName := "Proteínas"
	mockSvc := &mockCatalogService{
		listProductsFunc: func(ctx context.Context) ([]catalog.Product, error) {
			return []catalog.Product{
				{ID: 1, Name: "Whey Protein", Price: 4500, Stock: 50, CategoryName: &categoryName},
			}, nil
		},
	}
	router := newProductTestRouter(mockSvc)

	req := httptest.NewRequest(http.MethodGet, "/productos", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"nombre":"Whey Protein"`)
	assert.Contains(t, rec.Body.String(), `"categoria_nombre":"Proteínas"`)
}

func TestProductHandler_GetProduct(t *testing.T) {
	mockSvc := &mockCatalogService{
		getProductFunc: func(ctx context.Context, id int64) (*catalog.Product, error) {
			if id != 1 {
				return nil, catalog.ErrProductNotFound
			}
			return &catalog.Product{ID: 1, Name: "Creatina", Price: 1500, Stock: 100}, nil
		},
	}
	router := newProductTestRouter(mockSvc)

	req := httptest.NewRequest(http.MethodGet, "/productos/1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"precio":1500`)

	req = httptest.NewRequest(http.MethodGet, "/productos/999", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Producto no encontrado"}`, rec.Body.String())
}

func TestProductHandler_CreateProduct(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		expectedStatus int
	}{
		{
			name:           "success",
			body:           `{"nombre": "Beta Alanina", "precio": 1700, "stock": 50, "categoria_id": 2}`,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "missing_name",
			body:           `{"precio": 1700, "stock": 50}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "negative_price",
			body:           `{"nombre": "Beta Alanina", "precio": -1, "stock": 50}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "negative_stock",
			body:           `{"nombre": "Beta Alanina", "precio": 1700, "stock": -5}`,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := &mockCatalogService{
				createProductFunc: func(ctx context.Context, p *catalog.Product) (int64, error) {
					return 13, nil
				},
			}
			router := newProductTestRouter(mockSvc)

			req := httptest.NewRequest(http.MethodPost, "/productos", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedStatus == http.StatusCreated {
				assert.JSONEq(t, `{"id":13,"message":"Producto creado exitosamente"}`, rec.Body.String())
			}
		})
	}
}

func TestProductHandler_UpdateProduct(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		updateErr      error
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "success",
			body:           `{"precio": 1800}`,
			updateErr:      nil,
			expectedStatus: http.StatusOK,
			expectedBody:   `{"message":"Producto actualizado exitosamente"}`,
		},
		{
			name:           "no_fields",
			body:           `{}`,
			updateErr:      catalog.ErrNoFieldsToUpdate,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"No hay campos para actualizar"}`,
		},
		{
			name:           "not_found",
			body:           `{"precio": 1800}`,
			updateErr:      catalog.ErrProductNotFound,
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"error":"Producto no encontrado"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := &mockCatalogService{
				updateProductFunc: func(ctx context.Context, id int64, upd catalog.ProductUpdate) error {
					return tt.updateErr
				},
			}
			router := newProductTestRouter(mockSvc)

			req := httptest.NewRequest(http.MethodPut, "/productos/1", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.JSONEq(t, tt.expectedBody, rec.Body.String())
		})
	}
}

func TestProductHandler_UpdateProduct_PartialFieldsReachService(t *testing.T) {
	var gotUpd catalog.ProductUpdate
	mockSvc := &mockCatalogService{
		updateProductFunc: func(ctx context.Context, id int64, upd catalog.ProductUpdate) error {
			gotUpd = upd
			return nil
		},
	}
	router := newProductTestRouter(mockSvc)

	req := httptest.NewRequest(http.MethodPut, "/productos/1", strings.NewReader(`{"precio": 2000, "stock": 30}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, gotUpd.Price)
	assert.Equal(t, 2000.0, *gotUpd.Price)
	require.NotNil(t, gotUpd.Stock)
	assert.Equal(t, 30, *gotUpd.Stock)
	assert.Nil(t, gotUpd.Name)
	assert.Nil(t, gotUpd.Description)
}

func TestProductHandler_DeleteProduct(t *testing.T) {
	mockSvc := &mockCatalogService{
		deleteProductFunc: func(ctx context.Context, id int64) error {
			if id != 1 {
				return catalog.ErrProductNotFound
			}
			return nil
		},
	}
	router := newProductTestRouter(mockSvc)

	req := httptest.NewRequest(http.MethodDelete, "/productos/1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Producto eliminado exitosamente"}`, rec.Body.String())

	req = httptest.NewRequest(http.MethodDelete, "/productos/999", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProductHandler_ListCategories(t *testing.T) {
	mockSvc := &mockCatalogService{
		listCategoriesFunc: func(ctx context.Context) ([]catalog.Category, error) {
			return []catalog.Category{{ID: 1, Name: "Proteínas"}}, nil
		},
	}
	router := newProductTestRouter(mockSvc)

	req := httptest.NewRequest(http.MethodGet, "/categorias", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"nombre":"Proteínas"`)
}
