package customer

// Customer is a registered store client. The email is unique across the
// store; uniqueness is enforced by the database.
type Customer struct {
	ID      int64   `json:"id" db:"id"`
	Name    string  `json:"nombre" db:"name"`
	Email   string  `json:"email" db:"email"`
	Phone   *string `json:"telefono" db:"phone"`
	Address *string `json:"direccion" db:"address"`
}

// CustomerUpdate carries the fields of a partial update; nil means
// "leave unchanged".
type CustomerUpdate struct {
	Name    *string
	Email   *string
	Phone   *string
	Address *string
}
