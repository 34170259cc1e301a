package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de comisión del vendedor.
const (
	CommissionPctTotal      = "PORCENTAJE_TOTAL" // % del total de la venta
	CommissionEntregaInicial = "ENTREGA_INICIAL"  // monto de la entrega inicial (ventas a crédito)
)

// Estados de comisión.
const (
	CommissionPendiente = "PENDIENTE"
	CommissionParcial   = "PARCIAL"
	CommissionPagada    = "PAGADA"
	CommissionAnulada   = "ANULADA"
)

// SellerCommissionConfig configura el devengamiento por vendedor; (vendedor, tipo) único.
type SellerCommissionConfig struct {
	ID         string
	SellerID   string
	Kind       string
	Percentage decimal.Decimal // aplica a PORCENTAJE_TOTAL
	Active     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// SellerCommission es el devengo de una venta finalizada.
// Invariante: 0 ≤ Paid ≤ Accrued.
type SellerCommission struct {
	ID        string
	SaleID    string
	SellerID  string
	ConfigID  string
	Kind      string
	Accrued   decimal.Decimal
	Paid      decimal.Decimal
	State     string
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CollectorCommissionConfig: a lo sumo una activa por cobrador.
type CollectorCommissionConfig struct {
	ID          string
	CollectorID string
	Percentage  decimal.Decimal
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CollectorCommission se devenga por cada cobro de cuota:
// accrued = payment.amount × pct / 100.
type CollectorCommission struct {
	ID          string
	PaymentID   string
	CollectorID string
	ConfigID    string
	Accrued     decimal.Decimal
	Paid        decimal.Decimal
	State       string
	Notes       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// DeriveCommissionState deriva el estado desde (accrued, paid).
func DeriveCommissionState(accrued, paid decimal.Decimal) string {
	switch {
	case accrued.IsZero():
		return CommissionAnulada
	case paid.GreaterThanOrEqual(accrued):
		return CommissionPagada
	case paid.IsPositive():
		return CommissionParcial
	default:
		return CommissionPendiente
	}
}
