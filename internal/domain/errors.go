package domain

import "errors"

// Errores de dominio (sin dependencias externas). El kernel transaccional los
// retorna tal cual; la capa HTTP los traduce a códigos de estado.
var (
	ErrNotFound              = errors.New("recurso no encontrado")
	ErrInvalidInput          = errors.New("entrada inválida")
	ErrInvalidState          = errors.New("estado inválido para la operación")
	ErrDuplicate             = errors.New("recurso duplicado")
	ErrForbidden             = errors.New("acceso denegado")
	ErrInsufficientStock     = errors.New("stock insuficiente")
	ErrRegisterClosed        = errors.New("la caja debe estar abierta")
	ErrDuplicateComprobante  = errors.New("comprobante duplicado")
	ErrSequenceConflict      = errors.New("el número de secuencia ya fue emitido")
	ErrUnauthorized          = errors.New("no autorizado")
	ErrUserNotFound          = errors.New("usuario no encontrado")
	ErrGateway               = errors.New("error del servicio SIFEN")
)

// InsufficientStockError enriquece ErrInsufficientStock con el saldo disponible.
// errors.Is(err, ErrInsufficientStock) sigue siendo verdadero.
type InsufficientStockError struct {
	ProductID   string
	WarehouseID string
	Available   string // cantidad disponible formateada (3 decimales)
	Requested   string
}

func (e *InsufficientStockError) Error() string {
	return "stock insuficiente: disponible " + e.Available + ", solicitado " + e.Requested
}

// Unwrap permite errors.Is(err, ErrInsufficientStock).
func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }
