package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/valentin72637-cmd/fitness-supplements-ecommerce/internal/catalog"
)

type CreateProductRequest struct {
	Name        string  `json:"nombre" validate:"required"`
	Description *string `json:"descripcion"`
	Price       float64 `json:"precio" validate:"gte=0"`
	Stock       int     `json:"stock" validate:"gte=0"`
	CategoryID  *int64  `json:"categoria_id"`
	ImageURL    *string `json:"imagen_url"`
}

type UpdateProductRequest struct {
	Name        *string  `json:"nombre"`
	Description *string  `json:"descripcion"`
	Price       *float64 `json:"precio" validate:"omitempty,gte=0"`
	Stock       *int     `json:"stock" validate:"omitempty,gte=0"`
	CategoryID  *int64   `json:"categoria_id"`
	ImageURL    *string  `json:"imagen_url"`
}

type ProductHandler struct {
	service  catalog.Service
	validate *validator.Validate
}

func NewProductHandler(service catalog.Service) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: validator.New(),
	}
}

func (h *ProductHandler) RegisterRoutes(router chi.Router) {
	router.Get("/productos", h.handleListProducts)
	router.Get("/productos/{producto_id}", h.handleGetProduct)
	router.Post("/productos", h.handleCreateProduct)
	router.Put("/productos/{producto_id}", h.handleUpdateProduct)
	router.Delete("/productos/{producto_id}", h.handleDeleteProduct)
	router.Get("/categorias", h.handleListCategories)
}

func (h *ProductHandler) handleListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ListProducts(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list products")
		respondWithError(w, http.StatusInternalServerError, "Error al obtener productos")
		return
	}

	respondWithJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "producto_id")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "ID de producto inválido")
		return
	}

	product, err := h.service.GetProductByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			respondWithError(w, http.StatusNotFound, "Producto no encontrado")
			return
		}
		log.Error().Err(err).Int64("product_id", id).Msg("Failed to get product")
		respondWithError(w, http.StatusInternalServerError, "Error al obtener producto")
		return
	}

	respondWithJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest

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

	product := catalog.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		CategoryID:  req.CategoryID,
		ImageURL:    req.ImageURL,
	}

	id, err := h.service.CreateProduct(r.Context(), &product)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create product")
		respondWithError(w, http.StatusInternalServerError, "Error al crear producto")
		return
	}

	respondWithJSON(w, http.StatusCreated, createdResponse{ID: id, Message: "Producto creado exitosamente"})
}

func (h *ProductHandler) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "producto_id")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "ID de producto inválido")
		return
	}

	var req UpdateProductRequest

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

	upd := catalog.ProductUpdate{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		CategoryID:  req.CategoryID,
		ImageURL:    req.ImageURL,
	}

	err := h.service.UpdateProduct(r.Context(), id, upd)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrNoFieldsToUpdate):
			respondWithError(w, http.StatusBadRequest, "No hay campos para actualizar")
		case errors.Is(err, catalog.ErrProductNotFound):
			respondWithError(w, http.StatusNotFound, "Producto no encontrado")
		default:
			log.Error().Err(err).Int64("product_id", id).Msg("Failed to update product")
			respondWithError(w, http.StatusInternalServerError, "Error al actualizar producto")
		}
		return
	}

	respondWithJSON(w, http.StatusOK, messageResponse{Message: "Producto actualizado exitosamente"})
}

func (h *ProductHandler) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "producto_id")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "ID de producto inválido")
		return
	}

	err := h.service.DeleteProduct(r.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			respondWithError(w, http.StatusNotFound, "Producto no encontrado")
			return
		}
		log.Error().Err(err).Int64("product_id", id).Msg("Failed to delete product")
		respondWithError(w, http.StatusInternalServerError, "Error al eliminar producto")
		return
	}

	respondWithJSON(w, http.StatusOK, messageResponse{Message: "Producto eliminado exitosamente"})
}

func (h *ProductHandler) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.ListCategories(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list categories")
		respondWithError(w, http.StatusInternalServerError, "Error al obtener categorías")
		return
	}

	respondWithJSON(w, http.StatusOK, categories)
}
