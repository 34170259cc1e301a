package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovementEntrada        = "ENTRADA"
	MovementSalida         = "SALIDA"
	MovementAjusteSobrante = "AJUSTE_SOBRANTE" // ajuste +
	MovementAjusteFaltante = "AJUSTE_FALTANTE" // ajuste −
)

// InventoryMovement es una entrada del log append-only de inventario.
// Quantity es siempre positiva; el signo lo determina el tipo.
type InventoryMovement struct {
	ID          string
	ProductID   string
	WarehouseID string
	Kind        string
	Quantity    decimal.Decimal // positiva, 3 decimales
	ActorID     string
	Reason      string // motivo; las operaciones compuestas etiquetan aquí su referencia
	Date        time.Time
	CreatedAt   time.Time
	Reverted    bool // marcado cuando un movimiento compensatorio lo anuló
}

// Effect devuelve +1 si el movimiento incrementa el stock, −1 si lo decrementa.
func (m *InventoryMovement) Effect() int {
	if m.Kind == MovementEntrada || m.Kind == MovementAjusteSobrante {
		return 1
	}
	return -1
}

// SignedQuantity devuelve la cantidad con su signo aplicado.
func (m *InventoryMovement) SignedQuantity() decimal.Decimal {
	if m.Effect() < 0 {
		return m.Quantity.Neg()
	}
	return m.Quantity
}

// CompensatingKind devuelve el tipo que revierte exactamente este movimiento.
func (m *InventoryMovement) CompensatingKind() string {
	switch m.Kind {
	case MovementEntrada:
		return MovementSalida
	case MovementSalida:
		return MovementEntrada
	case MovementAjusteSobrante:
		return MovementAjusteFaltante
	default:
		return MovementAjusteSobrante
	}
}

// Transfer es un traslado de productos entre almacenes; genera un par
// SALIDA/ENTRADA por cada detalle dentro de una misma transacción.
type Transfer struct {
	ID            string
	Reference     string // TR-YYYYMMDD-NNN
	FromWarehouse string
	ToWarehouse   string
	RequestedBy   string
	Reason        string
	Details       []TransferDetail
	Date          time.Time
	CreatedAt     time.Time
}

// TransferDetail es una línea del traslado.
type TransferDetail struct {
	ID         string
	TransferID string
	ProductID  string
	Quantity   decimal.Decimal
}
