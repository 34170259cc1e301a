package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de la venta.
const (
	SaleBorrador   = "BORRADOR"
	SaleFinalizada = "FINALIZADA"
	SaleCancelada  = "CANCELADA"
)

// Sale es la venta. DocumentNumber se asigna solo al finalizar, desde la
// secuencia del punto de expedición de la caja.
type Sale struct {
	ID             string
	Number         string // número interno
	DocumentType   string // FACTURA o TICKET
	DocumentNumber string // BBB-PPP-NNNNNNN, asignado al finalizar
	TimbradoID     string
	Condition      string // CONTADO o CREDITO
	CustomerID     string
	SellerID       string
	CashRegisterID string
	PaymentKind    string
	Date           time.Time
	Subtotal       decimal.Decimal
	Total          decimal.Decimal
	// Términos de crédito (solo condición CREDITO)
	InitialEntry decimal.Decimal // entrega inicial E ≥ 0
	CuotaCount   int             // N cuotas
	DueDay       int             // día fijo de vencimiento ∈ [1,28]
	FirstDueDate *time.Time
	State        string
	Notes        string
	Details      []*SaleDetail
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ReasonTag es el motivo con que la venta etiqueta sus movimientos de
// inventario; la cancelación lo usa para localizarlos.
func (s *Sale) ReasonTag() string { return "Venta " + s.Number }

// CancelReasonTag etiqueta los movimientos compensatorios de la cancelación.
func (s *Sale) CancelReasonTag() string { return "Cancelación Venta " + s.Number }

// Tipos de línea de venta.
const (
	DetailProducto = "PRODUCTO"
	DetailServicio = "SERVICIO"
)

// SaleDetail es una línea de la venta: exactamente uno de ProductID/ServiceID.
// WarehouseID es obligatorio para PRODUCTO; ServiceWarehouseID para servicios
// COMPUESTOS (por defecto el almacén principal).
type SaleDetail struct {
	ID                 string
	SaleID             string
	Kind               string
	ProductID          string
	ServiceID          string
	WarehouseID        string
	ServiceWarehouseID string
	Quantity           decimal.Decimal
	UnitPrice          decimal.Decimal
	IVARate            int
	Subtotal           decimal.Decimal
}
