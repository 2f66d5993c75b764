package catalog

// Category groups products on the storefront.
type Category struct {
	ID          int64   `json:"id" db:"id"`
	Name        string  `json:"nombre" db:"name"`
	Description *string `json:"descripcion" db:"description"`
}

// Product is a catalog entry. CategoryName is filled by a join on reads
// and never written through this struct. JSON field names keep the
// Spanish contract the storefront consumes.
type Product struct {
	ID           int64   `json:"id" db:"id"`
	Name         string  `json:"nombre" db:"name"`
	Description  *string `json:"descripcion" db:"description"`
	Price        float64 `json:"precio" db:"price"`
	Stock        int     `json:"stock" db:"stock"`
	CategoryID   *int64  `json:"categoria_id" db:"category_id"`
	ImageURL     *string `json:"imagen_url" db:"image_url"`
	CategoryName *string `json:"categoria_nombre,omitempty" db:"category_name"`
}

// ProductUpdate carries the fields of a partial update. Nil means
// "leave unchanged"; an update with every field nil is rejected.
type ProductUpdate struct {
	Name        *string
	Description *string
	Price       *float64
	Stock       *int
	CategoryID  *int64
	ImageURL    *string
}
