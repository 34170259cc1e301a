package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock es el saldo materializado de un producto en un almacén.
// Invariante: Quantity = Σ cantidad firmada de los movimientos y ≥ 0.
type Stock struct {
	ProductID   string
	WarehouseID string
	Quantity    decimal.Decimal
	UpdatedAt   time.Time
}
