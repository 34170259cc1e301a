package entity

import "time"

// Supplier es el proveedor de órdenes de compra. RUC único.
type Supplier struct {
	ID        string
	RUC       string
	DV        string
	Name      string // razón social
	Address   string
	Phone     string
	Email     string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
