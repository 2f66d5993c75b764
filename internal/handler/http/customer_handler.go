package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/valentin72637-cmd/fitness-supplements-ecommerce/internal/customer"
)

type CreateCustomerRequest struct {
	Name    string  `json:"nombre" validate:"required"`
	Email   string  `json:"email" validate:"required,email"`
	Phone   *string `json:"telefono"`
	Address *string `json:"direccion"`
}

type UpdateCustomerRequest struct {
	Name    *string `json:"nombre"`
	Email   *string `json:"email" validate:"omitempty,email"`
	Phone   *string `json:"telefono"`
	Address *string `json:"direccion"`
}

type CustomerHandler struct {
	service  customer.Service
	validate *validator.Validate
}

func NewCustomerHandler(service customer.Service) *CustomerHandler {
	return &CustomerHandler{
		service:  service,
		validate: validator.New(),
	}
}

func (h *CustomerHandler) RegisterRoutes(router chi.Router) {
	router.Get("/clientes", h.handleListCustomers)
	router.Get("/clientes/{cliente_id}", h.handleGetCustomer)
	router.Post("/clientes", h.handleCreateCustomer)
	router.Put("/clientes/{cliente_id}", h.handleUpdateCustomer)
	router.Delete("/clientes/{cliente_id}", h.handleDeleteCustomer)
}

func (h *CustomerHandler) handleListCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.service.ListCustomers(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list customers")
		respondWithError(w, http.StatusInternalServerError, "Error al obtener clientes")
		return
	}

	respondWithJSON(w, http.StatusOK, customers)
}

func (h *CustomerHandler) handleGetCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "cliente_id")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "ID de cliente inválido")
		return
	}

	c, err := h.service.GetCustomerByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, customer.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Cliente no encontrado")
			return
		}
		log.Error().Err(err).Int64("customer_id", id).Msg("Failed to get customer")
		respondWithError(w, http.StatusInternalServerError, "Error al obtener cliente")
		return
	}

	respondWithJSON(w, http.StatusOK, c)
}

func (h *CustomerHandler) handleCreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req CreateCustomerRequest

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

	c := customer.Customer{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
	}

	id, err := h.service.CreateCustomer(r.Context(), &c)
	if err != nil {
		if errors.Is(err, customer.ErrEmailExists) {
			respondWithError(w, http.StatusConflict, "El email ya está registrado")
			return
		}
		log.Error().Err(err).Msg("Failed to create customer")
		respondWithError(w, http.StatusInternalServerError, "Error al registrar cliente")
		return
	}

	respondWithJSON(w, http.StatusCreated, createdResponse{ID: id, Message: "Cliente registrado exitosamente"})
}

func (h *CustomerHandler) handleUpdateCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "cliente_id")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "ID de cliente inválido")
		return
	}

	var req UpdateCustomerRequest

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

	upd := customer.CustomerUpdate{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
	}

	err := h.service.UpdateCustomer(r.Context(), id, upd)
	if err != nil {
		switch {
		case errors.Is(err, customer.ErrNoFieldsToUpdate):
			respondWithError(w, http.StatusBadRequest, "No hay campos para actualizar")
		case errors.Is(err, customer.ErrNotFound):
			respondWithError(w, http.StatusNotFound, "Cliente no encontrado")
		case errors.Is(err, customer.ErrEmailExists):
			respondWithError(w, http.StatusConflict, "El email ya está registrado")
		default:
			log.Error().Err(err).Int64("customer_id", id).Msg("Failed to update customer")
			respondWithError(w, http.StatusInternalServerError, "Error al actualizar cliente")
		}
		return
	}

	respondWithJSON(w, http.StatusOK, messageResponse{Message: "Cliente actualizado exitosamente"})
}

func (h *CustomerHandler) handleDeleteCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "cliente_id")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "ID de cliente inválido")
		return
	}

	err := h.service.DeleteCustomer(r.Context(), id)
	if err != nil {
		if errors.Is(err, customer.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Cliente no encontrado")
			return
		}
		log.Error().Err(err).Int64("customer_id", id).Msg("Failed to delete customer")
		respondWithError(w, http.StatusInternalServerError, "Error al eliminar cliente")
		return
	}

	respondWithJSON(w, http.StatusOK, messageResponse{Message: "Cliente eliminado exitosamente"})
}
