package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-paraguay/internal/domain/entity"
)

// CashRegisterRepository persiste cajas. GetForUpdate serializa las
// actualizaciones del saldo corriente (una caja, un escritor lógico).
type CashRegisterRepository interface {
	Create(register *entity.CashRegister) error
	Update(register *entity.CashRegister) error
	GetByID(id string) (*entity.CashRegister, error)
	GetForUpdate(id string) (*entity.CashRegister, error)
	List() ([]*entity.CashRegister, error)
}

// CashSessionRepository persiste sesiones de caja.
type CashSessionRepository interface {
	Create(session *entity.CashSession) error
	Update(session *entity.CashSession) error
	GetByID(id string) (*entity.CashSession, error)
	// GetOpenByRegister devuelve la sesión ABIERTA de la caja, o nil.
	GetOpenByRegister(registerID string) (*entity.CashSession, error)
	// SumMovements devuelve (Σ ingresos, Σ egresos) de la sesión.
	SumMovements(sessionID string) (in decimal.Decimal, out decimal.Decimal, err error)
}

// CashMovementRepository persiste movimientos de caja; comprobante único.
type CashMovementRepository interface {
	Create(movement *entity.CashMovement) error
	GetByID(id string) (*entity.CashMovement, error)
	ExistsComprobante(comprobante string) (bool, error)
	ListBySession(sessionID string) ([]*entity.CashMovement, error)
	ListBySale(saleID string) ([]*entity.CashMovement, error)
	ListByCreditNote(creditNoteID string) ([]*entity.CashMovement, error)
}
