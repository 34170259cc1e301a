package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de caja y de sesión.
const (
	RegisterAbierta = "ABIERTA"
	RegisterCerrada = "CERRADA"

	SessionAbierta = "ABIERTA"
	SessionCerrada = "CERRADA"
)

// Tipos de movimiento de caja.
const (
	CashIngreso = "INGRESO"
	CashEgreso  = "EGRESO"
)

// Métodos de pago.
const (
	PagoEfectivo      = "EFECTIVO"
	PagoTarjeta       = "TARJETA"
	PagoTransferencia = "TRANSFERENCIA"
	PagoMixto         = "MIXTO"
)

// CashRegister es una caja física atada a un punto de expedición.
// Solo puede tener una sesión ABIERTA a la vez.
type CashRegister struct {
	ID                string
	ExpeditionPointID string
	Name              string
	CurrentBalance    decimal.Decimal
	State             string
	ResponsibleID     string
	OpenedAt          *time.Time
	ClosedAt          *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// CashSession es el periodo entre apertura y cierre de una caja. Al cerrar se
// registra el saldo físico declarado y la diferencia contra el teórico.
type CashSession struct {
	ID              string
	RegisterID      string
	ResponsibleID   string
	OpeningBalance  decimal.Decimal
	ClosingBalance  decimal.Decimal // saldo físico declarado al cierre
	Theoretical     decimal.Decimal // apertura + Σ ingresos − Σ egresos
	Difference      decimal.Decimal // declarado − teórico
	State           string
	Observations    string
	OpenedAt        time.Time
	ClosedAt        *time.Time
}

// CashMovement es un movimiento firmado de caja. Monto siempre positivo;
// Comprobante es único. Las referencias al origen (venta, compra, nota de
// crédito, pago de cuota, comisión) viven solo de este lado para mantener
// la propiedad acíclica.
type CashMovement struct {
	ID             string
	RegisterID     string
	SessionID      string
	Kind           string
	Amount         decimal.Decimal
	ActorID        string
	Description    string
	Comprobante    string
	SaleID         string
	PurchaseID     string
	CreditNoteID   string
	CuotaPaymentID string
	CommissionID   string
	Date           time.Time
}

// SignedAmount devuelve el monto con signo según el tipo.
func (m *CashMovement) SignedAmount() decimal.Decimal {
	if m.Kind == CashEgreso {
		return m.Amount.Neg()
	}
	return m.Amount
}
