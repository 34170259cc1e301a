package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-paraguay/internal/domain/entity"
)

// StockRepository consulta/actualiza el saldo por (producto, almacén).
// GetForUpdate bloquea la fila para serializar débitos concurrentes.
type StockRepository interface {
	Get(productID, warehouseID string) (*entity.Stock, error)
	GetForUpdate(productID, warehouseID string) (*entity.Stock, error)
	Upsert(stock *entity.Stock) error
	ListByWarehouse(warehouseID string) ([]*entity.Stock, error)
}

// InventoryMovementRepository persiste el log append-only de inventario.
// No hay Delete: revertir un movimiento registra uno compensatorio.
type InventoryMovementRepository interface {
	Create(movement *entity.InventoryMovement) error
	GetByID(id string) (*entity.InventoryMovement, error)
	MarkReverted(id string) error
	ListByReason(reason string) ([]*entity.InventoryMovement, error)
	// SumSigned calcula Σ cantidad firmada de todos los movimientos (recompute).
	SumSigned(productID, warehouseID string) (decimal.Decimal, error)
}

// TransferRepository persiste traslados entre almacenes.
type TransferRepository interface {
	Create(transfer *entity.Transfer) error
	GetByID(id string) (*entity.Transfer, error)
	// CountByReferencePrefix cuenta traslados cuyo número empieza con el prefijo
	// dado (TR-YYYYMMDD-); se usa para numerar el siguiente del día.
	CountByReferencePrefix(prefix string) (int, error)
}
