package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de servicio. Un servicio COMPUESTO consume productos del inventario
// según su lista de componentes al finalizar la venta.
const (
	ServiceSimple    = "SIMPLE"
	ServiceCompuesto = "COMPUESTO"
)

// Service representa un servicio vendible. COMPUESTO si y solo si tiene componentes.
type Service struct {
	ID          string
	Code        string
	Name        string
	Description string
	Type        string
	Price       decimal.Decimal
	IVARate     int
	Active      bool
	Components  []ServiceComponent
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NeedsInventory indica si el servicio descuenta stock al venderse.
func (s *Service) NeedsInventory() bool {
	return s.Type == ServiceCompuesto && len(s.Components) > 0
}

// ServiceComponent es una línea de la receta del servicio: (producto, cantidad).
type ServiceComponent struct {
	ID        string
	ServiceID string
	ProductID string
	Quantity  decimal.Decimal // 3 decimales
	Notes     string
}
