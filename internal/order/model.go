package order

import "time"

type Status string

const (
	StatusPending   Status = "Pendiente"
	StatusInProcess Status = "En Proceso"
	StatusCompleted Status = "Completado"
)

func (s Status) String() string {
	return string(s)
}

// LineItem is one requested (product, quantity) pair in an incoming
// order. Validated at the boundary before reaching the service.
type LineItem struct {
	ProductID int64
	Quantity  int
}

// Item is a persisted order line. UnitPrice is the product price
// snapshotted at order time; ProductName and ProductPrice are filled by
// a join against the live catalog on reads and may be nil when the
// product has since been removed.
type Item struct {
	ID           int64    `json:"id" db:"id"`
	OrderID      int64    `json:"pedido_id" db:"order_id"`
	ProductID    int64    `json:"producto_id" db:"product_id"`
	Quantity     int      `json:"cantidad" db:"quantity"`
	UnitPrice    float64  `json:"precio_unitario" db:"unit_price"`
	ProductName  *string  `json:"producto_nombre" db:"product_name"`
	ProductPrice *float64 `json:"precio" db:"product_price"`
}

// Order is an order header. Total is computed once at creation and
// never recomputed; Status is written at creation and not transitioned
// here. CustomerName/CustomerEmail come from a join on reads.
type Order struct {
	ID            int64     `json:"id" db:"id"`
	CustomerID    int64     `json:"cliente_id" db:"customer_id"`
	CreatedAt     time.Time `json:"fecha" db:"created_at"`
	Total         float64   `json:"total" db:"total"`
	Status        Status    `json:"estado" db:"status"`
	CustomerName  *string   `json:"cliente_nombre,omitempty" db:"customer_name"`
	CustomerEmail *string   `json:"cliente_email,omitempty" db:"customer_email"`
	Items         []Item    `json:"detalles,omitempty" db:"-"`
}

// CreateResult is what order placement returns to the caller: the new
// order id and the total computed from snapshotted prices.
type CreateResult struct {
	OrderID int64
	Total   float64
}
