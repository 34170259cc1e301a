package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos y estados de nota de crédito.
const (
	NoteTotal   = "TOTAL"
	NoteParcial = "PARCIAL"

	NoteBorrador   = "BORRADOR"
	NoteFinalizada = "FINALIZADA"
	NoteCancelada  = "CANCELADA"
)

// CreditNote revierte total o parcialmente una venta FINALIZADA:
// egreso de caja, reingreso de inventario, ajuste de cuotas y reversa
// proporcional de comisiones. Total ≤ venta.Total.
type CreditNote struct {
	ID             string
	Number         string // número interno
	DocumentNumber string // asignado desde la secuencia NOTA_CREDITO al finalizar
	SaleID         string
	TimbradoID     string
	Type           string
	Reason         string
	Subtotal       decimal.Decimal
	Total          decimal.Decimal
	State          string
	CashRegisterID string
	CreatedBy      string
	Date           time.Time
	Details        []*CreditNoteDetail
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ReasonTag etiqueta los movimientos de inventario de la nota.
func (n *CreditNote) ReasonTag() string { return "Nota de Crédito " + n.Number }

// CancelReasonTag etiqueta los movimientos compensatorios de su cancelación.
func (n *CreditNote) CancelReasonTag() string { return "Cancelación NC " + n.Number }

// CreditNoteDetail referencia una línea de la venta; Quantity ≤ línea.Quantity.
// A lo sumo un detalle por (nota, línea de venta).
type CreditNoteDetail struct {
	ID           string
	CreditNoteID string
	SaleDetailID string
	Quantity     decimal.Decimal
	UnitPrice    decimal.Decimal
	Subtotal     decimal.Decimal
}
