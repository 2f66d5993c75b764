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

	"github.com/valentin72637-cmd/fitness-supplements-ecommerce/internal/order"
)

type mockOrderService struct {
	createOrderFunc  func(ctx context.Context, customerID int64, items []order.LineItem) (*order.CreateResult, error)
	getOrderByIDFunc func(ctx context.Context, id int64) (*order.Order, error)
	listOrdersFunc   func(ctx context.Context) ([]order.Order, error)
	deleteOrderFunc  func(ctx context.Context, id int64) error
}

func (m *mockOrderService) CreateOrder(ctx context.Context, customerID int64, items []order.LineItem) (*order.CreateResult, error) {
	return m.createOrderFunc(ctx, customerID, items)
}

func (m *mockOrderService) GetOrderByID(ctx context.Context, id int64) (*order.Order, error) {
	return m.getOrderByIDFunc(ctx, id)
}

func (m *mockOrderService) ListOrders(ctx context.Context) ([]order.Order, error) {
	return m.listOrdersFunc(ctx)
}

func (m *mockOrderService) DeleteOrder(ctx context.Context, id int64) error {
	return m.deleteOrderFunc(ctx, id)
}

func newOrderTestRouter(svc order.Service) *chi.Mux {
	r := chi.NewRouter()
	NewOrderHandler(svc).RegisterRoutes(r)
	return r
}

func TestOrderHandler_CreateOrder(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		createOrder    func(ctx context.Context, customerID int64, items []order.LineItem) (*order.CreateResult, error)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "success",
			body: `{"cliente_id": 7, "productos": [{"producto_id": 1, "cantidad": 3}]}`,
			createOrder: func(ctx context.Context, customerID int64, items []order.LineItem) (*order.CreateResult, error) {
				return &order.CreateResult{OrderID: 42, Total: 300}, nil
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `{"id":42,"total":300,"message":"Pedido creado exitosamente"}`,
		},
		{
			name: "product_not_found",
			body: `{"cliente_id": 7, "productos": [{"producto_id": 99, "cantidad": 1}]}`,
			createOrder: func(ctx context.Context, customerID int64, items []order.LineItem) (*order.CreateResult, error) {
				return nil, &order.ProductNotFoundError{ProductID: 99}
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"error":"Producto 99 no encontrado"}`,
		},
		{
			name: "insufficient_stock",
			body: `{"cliente_id": 7, "productos": [{"producto_id": 1, "cantidad": 8}]}`,
			createOrder: func(ctx context.Context, customerID int64, items []order.LineItem) (*order.CreateResult, error) {
				return nil, &order.InsufficientStockError{ProductID: 1, Requested: 8, Available: 7}
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"Stock insuficiente para producto 1"}`,
		},
		{
			name: "stock_conflict",
			body: `{"cliente_id": 7, "productos": [{"producto_id": 1, "cantidad": 6}]}`,
			createOrder: func(ctx context.Context, customerID int64, items []order.LineItem) (*order.CreateResult, error) {
				return nil, &order.StockConflictError{ProductID: 1}
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `{"error":"Conflicto de stock para producto 1, intente nuevamente"}`,
		},
		{
			name: "customer_not_found",
			body: `{"cliente_id": 123, "productos": [{"producto_id": 1, "cantidad": 1}]}`,
			createOrder: func(ctx context.Context, customerID int64, items []order.LineItem) (*order.CreateResult, error) {
				return nil, order.ErrCustomerNotFound
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"error":"Cliente no encontrado"}`,
		},
		{
			name:           "invalid_json",
			body:           `{invalid json}`,
			createOrder:    nil,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"Cuerpo de solicitud inválido"}`,
		},
		{
			name:           "empty_products",
			body:           `{"cliente_id": 7, "productos": []}`,
			createOrder:    nil,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "zero_quantity",
			body:           `{"cliente_id": 7, "productos": [{"producto_id": 1, "cantidad": 0}]}`,
			createOrder:    nil,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing_customer",
			body:           `{"productos": [{"producto_id": 1, "cantidad": 2}]}`,
			createOrder:    nil,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svcCalled := false
			mockSvc := &mockOrderService{
				createOrderFunc: func(ctx context.Context, customerID int64, items []order.LineItem) (*order.CreateResult, error) {
					svcCalled = true
					require.NotNil(t, tt.createOrder, "service must not be reached for %s", tt.name)
					return tt.createOrder(ctx, customerID, items)
				},
			}
			router := newOrderTestRouter(mockSvc)

			req := httptest.NewRequest(http.MethodPost, "/pedidos", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedBody != "" {
				assert.JSONEq(t, tt.expectedBody, rec.Body.String())
			}
			if tt.createOrder == nil {
				assert.False(t, svcCalled)
			}
		})
	}
}

func TestOrderHandler_CreateOrder_PassesParsedItems(t *testing.T) {
	var gotCustomerID int64
	var gotItems []order.LineItem

	mockSvc := &mockOrderService{
		createOrderFunc: func(ctx context.Context, customerID int64, items []order.LineItem) (*order.CreateResult, error) {
			gotCustomerID = customerID
			gotItems = items
			return &order.CreateResult{OrderID: 1, Total: 500}, nil
		},
	}
	router := newOrderTestRouter(mockSvc)

	body := `{"cliente_id": 3, "productos": [{"producto_id": 1, "cantidad": 2}, {"producto_id": 5, "cantidad": 1}]}`
	req := httptest.NewRequest(http.MethodPost, "/pedidos", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, int64(3), gotCustomerID)
	assert.Equal(t, []order.LineItem{
		{ProductID: 1, Quantity: 2},
		{ProductID: 5, Quantity: 1},
	}, gotItems)
}

func TestOrderHandler_GetOrder(t *testing.T) {
	name := "Juan Pérez"
	mockSvc := &mockOrderService{
		getOrderByIDFunc: func(ctx context.Context, id int64) (*order.Order, error) {
			if id != 5 {
				return nil, order.ErrOrderNotFound
			}
			return &order.Order{
				ID:           5,
				CustomerID:   1,
				Total:        300,
				Status:       order.StatusPending,
				CustomerName: &name,
			}, nil
		},
	}
	router := newOrderTestRouter(mockSvc)

	req := httptest.NewRequest(http.MethodGet, "/pedidos/5", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"estado":"Pendiente"`)
	assert.Contains(t, rec.Body.String(), `"cliente_nombre":"Juan Pérez"`)

	req = httptest.NewRequest(http.MethodGet, "/pedidos/999", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Pedido no encontrado"}`, rec.Body.String())
}

func TestOrderHandler_GetOrder_InvalidID(t *testing.T) {
	router := newOrderTestRouter(&mockOrderService{})

	req := httptest.NewRequest(http.MethodGet, "/pedidos/abc", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOrderHandler_DeleteOrder_AlwaysReportsSuccess(t *testing.T) {
	var deletedID int64
	mockSvc := &mockOrderService{
		deleteOrderFunc: func(ctx context.Context, id int64) error {
			deletedID = id
			return nil
		},
	}
	router := newOrderTestRouter(mockSvc)

	req := httptest.NewRequest(http.MethodDelete, "/pedidos/12345", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Pedido eliminado exitosamente"}`, rec.Body.String())
	assert.Equal(t, int64(12345), deletedID)
}
