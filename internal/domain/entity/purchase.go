package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de la orden de compra.
const (
	PurchaseBorrador  = "BORRADOR"
	PurchaseAprobada  = "APROBADA"
	PurchaseRecibida  = "RECIBIDA"
	PurchasePagada    = "PAGADA"
	PurchaseCancelada = "CANCELADA"
)

// Condiciones de operación (compra y venta).
const (
	CondicionContado = "CONTADO"
	CondicionCredito = "CREDITO"
)

// PurchaseOrder es una orden de compra a proveedor.
// Total = Σ subtotales de los detalles. Si la condición es CREDITO, la
// recepción crea la cuenta a pagar con vencimiento a TermDays días.
type PurchaseOrder struct {
	ID             string
	Number         string
	SupplierID     string
	Date           time.Time
	DeliveryDate   *time.Time
	ReceptionDate  *time.Time
	Condition      string
	TermDays       int
	DueDate        *time.Time
	Subtotal       decimal.Decimal
	Total          decimal.Decimal
	State          string
	CreatedBy      string
	CashRegisterID string
	CashMovementID string
	Notes          string
	Details        []*PurchaseOrderDetail
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ReasonTag es el motivo con que la recepción etiqueta sus movimientos de inventario.
func (o *PurchaseOrder) ReasonTag() string { return "Recepción de OC-" + o.Number }

// PurchaseOrderDetail es una línea de la orden. Subtotal = Quantity × UnitPrice.
type PurchaseOrderDetail struct {
	ID          string
	OrderID     string
	ProductID   string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
	Received    bool
	ReceivedQty decimal.Decimal
}

// Reception registra la transición APROBADA→RECIBIDA (a lo sumo una por orden).
type Reception struct {
	ID          string
	OrderID     string
	WarehouseID string
	ReceivedBy  string
	PaymentKind string
	Notes       string
	Date        time.Time
}

// Estados de la cuenta a pagar.
const (
	PayablePendiente = "PENDIENTE"
	PayablePagada    = "PAGADA"
	PayableVencida   = "VENCIDA"
	PayableAnulada   = "ANULADA"
)

// AccountsPayable es la deuda con el proveedor por una orden a crédito (1:1).
// Balance ∈ [0, order.Total]; PAGADA ⟺ balance = 0.
type AccountsPayable struct {
	ID        string
	OrderID   string
	Balance   decimal.Decimal
	DueDate   time.Time
	State     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DeriveState deriva el estado según balance y fecha.
func (p *AccountsPayable) DeriveState(today time.Time) string {
	if p.State == PayableAnulada {
		return PayableAnulada
	}
	if p.Balance.IsZero() {
		return PayablePagada
	}
	if today.After(p.DueDate) {
		return PayableVencida
	}
	return PayablePendiente
}

// SupplierPayment es un pago aplicado a una cuenta a pagar.
type SupplierPayment struct {
	ID             string
	PayableID      string
	Amount         decimal.Decimal
	Method         string
	Date           time.Time
	Comprobante    string
	CashRegisterID string
	CashMovementID string
	ActorID        string
	Cancelled      bool
	CancelMotive   string
	CancelledBy    string
	CancelledAt    *time.Time
	CreatedAt      time.Time
}
