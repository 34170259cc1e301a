package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de la cuota.
const (
	CuotaPendiente = "PENDIENTE"
	CuotaParcial   = "PARCIAL"
	CuotaPagada    = "PAGADA"
	CuotaVencida   = "VENCIDA"
)

// Cuota es una cuota del cronograma de una venta a crédito.
// La cuota 0 es la entrega inicial, prepaga al crearse.
// Invariante: pagado + balance = amount.
type Cuota struct {
	ID           string
	SaleID       string
	Index        int // 0 = entrega inicial
	Amount       decimal.Decimal
	Balance      decimal.Decimal
	DueDay       int // día fijo ∈ [1,28]
	DueDate      time.Time
	State        string
	InitialEntry bool
	PaidAt       *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// DeriveState deriva el estado desde (balance, hoy, vencimiento).
// Una entrega inicial PAGADA es permanente.
func (c *Cuota) DeriveState(today time.Time) string {
	if c.InitialEntry && c.Balance.IsZero() {
		return CuotaPagada
	}
	switch {
	case c.Balance.IsZero():
		return CuotaPagada
	case today.After(c.DueDate):
		return CuotaVencida
	case c.Balance.LessThan(c.Amount):
		return CuotaParcial
	default:
		return CuotaPendiente
	}
}

// CuotaPayment es un cobro aplicado a una cuota. La cancelación restaura el
// balance de la cuota y compensa la caja; el pago queda marcado, nunca se borra.
type CuotaPayment struct {
	ID             string
	CuotaID        string
	Amount         decimal.Decimal
	Method         string
	Date           time.Time
	CashRegisterID string
	ActorID        string
	ReceiptNumber  string // asignado desde la secuencia RECIBO_PAGO
	Notes          string
	Cancelled      bool
	CancelMotive   string
	CancelledBy    string
	CancelledAt    *time.Time
	CreatedAt      time.Time
}
