package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/valentin72637-cmd/fitness-supplements-ecommerce/internal/order"
)

type OrderLineRequest struct {
	ProductID int64 `json:"producto_id" validate:"required,gt=0"`
	Quantity  int   `json:"cantidad" validate:"required,gte=1"`
}

type CreateOrderRequest struct {
	CustomerID int64              `json:"cliente_id" validate:"required,gt=0"`
	Products   []OrderLineRequest `json:"productos" validate:"required,min=1,dive"`
}

type CreateOrderResponse struct {
	ID      int64   `json:"id"`
	Total   float64 `json:"total"`
	Message string  `json:"message"`
}

type OrderHandler struct {
	service  order.Service
	validate *validator.Validate
}

func NewOrderHandler(service order.Service) *OrderHandler {
	return &OrderHandler{
		service:  service,
		validate: validator.New(),
	}
}

func (h *OrderHandler) RegisterRoutes(router chi.Router) {
	router.Get("/pedidos", h.handleListOrders)
	router.Get("/pedidos/{pedido_id}", h.handleGetOrder)
	router.Post("/pedidos", h.handleCreateOrder)
	router.Delete("/pedidos/{pedido_id}", h.handleDeleteOrder)
}

func (h *OrderHandler) handleListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.ListOrders(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list orders")
		respondWithError(w, http.StatusInternalServerError, "Error al obtener pedidos")
		return
	}

	respondWithJSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "pedido_id")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "ID de pedido inválido")
		return
	}

	ord, err := h.service.GetOrderByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			respondWithError(w, http.StatusNotFound, "Pedido no encontrado")
			return
		}
		log.Error().Err(err).Int64("order_id", id).Msg("Failed to get order")
		respondWithError(w, http.StatusInternalServerError, "Error al obtener pedido")
		return
	}

	respondWithJSON(w, http.StatusOK, ord)
}

func (h *OrderHandler) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Cuerpo de solicitud inválido")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	items := make([]order.LineItem, 0, len(req.Products))
	for _, line := range req.Products {
		items = append(items, order.LineItem{ProductID: line.ProductID, Quantity: line.Quantity})
	}

	result, err := h.service.CreateOrder(r.Context(), req.CustomerID, items)
	if err != nil {
		h.respondCreateOrderError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, CreateOrderResponse{
		ID:      result.OrderID,
		Total:   result.Total,
		Message: "Pedido creado exitosamente",
	})
}

func (h *OrderHandler) respondCreateOrderError(w http.ResponseWriter, err error) {
	var notFound *order.ProductNotFoundError
	var insufficient *order.InsufficientStockError
	var conflict *order.StockConflictError

	switch {
	case errors.As(err, &notFound):
		respondWithError(w, http.StatusNotFound, fmt.Sprintf("Producto %d no encontrado", notFound.ProductID))
	case errors.As(err, &insufficient):
		respondWithError(w, http.StatusBadRequest, fmt.Sprintf("Stock insuficiente para producto %d", insufficient.ProductID))
	case errors.As(err, &conflict):
		respondWithError(w, http.StatusConflict, fmt.Sprintf("Conflicto de stock para producto %d, intente nuevamente", conflict.ProductID))
	case errors.Is(err, order.ErrCustomerNotFound):
		respondWithError(w, http.StatusNotFound, "Cliente no encontrado")
	case errors.Is(err, order.ErrEmptyOrder):
		respondWithError(w, http.StatusBadRequest, "El pedido debe contener al menos un producto")
	default:
		log.Error().Err(err).Msg("Failed to create order")
		respondWithError(w, http.StatusInternalServerError, "Error al crear pedido")
	}
}

func (h *OrderHandler) handleDeleteOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "pedido_id")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "ID de pedido inválido")
		return
	}

	// Deleting a missing order still reports success; the operation is a
	// no-op in that case.
	if err := h.service.DeleteOrder(r.Context(), id); err != nil {
		log.Error().Err(err).Int64("order_id", id).Msg("Failed to delete order")
		respondWithError(w, http.StatusInternalServerError, "Error al eliminar pedido")
		return
	}

	respondWithJSON(w, http.StatusOK, messageResponse{Message: "Pedido eliminado exitosamente"})
}
