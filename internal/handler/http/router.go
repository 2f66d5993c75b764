package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/valentin72637-cmd/fitness-supplements-ecommerce/internal/catalog"
	"github.com/valentin72637-cmd/fitness-supplements-ecommerce/internal/customer"
	"github.com/valentin72637-cmd/fitness-supplements-ecommerce/internal/order"
)

// NewRouter wires repositories, services and handlers onto a chi mux.
// CORS is wide open: the storefront frontend is served from a different
// origin.
func NewRouter(pool *pgxpool.Pool) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	catalogSvc := catalog.NewService(catalog.NewRepository(pool))
	customerSvc := customer.NewService(customer.NewRepository(pool))
	orderSvc := order.NewService(order.NewRepository(pool))

	NewProductHandler(catalogSvc).RegisterRoutes(r)
	NewCustomerHandler(customerSvc).RegisterRoutes(r)
	NewOrderHandler(orderSvc).RegisterRoutes(r)

	return r
}
