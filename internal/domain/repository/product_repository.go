package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-paraguay/internal/domain/entity"
)

// ProductRepository persiste productos.
type ProductRepository interface {
	Create(product *entity.Product) error
	Update(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByCode(code string) (*entity.Product, error)
	List(onlyActive bool) ([]*entity.Product, error)
	// UpdatePurchasePrice actualiza solo el precio de compra (recepción de OC).
	UpdatePurchasePrice(id string, price decimal.Decimal) error
}

// CategoryRepository persiste categorías.
type CategoryRepository interface {
	Create(category *entity.Category) error
	Update(category *entity.Category) error
	GetByID(id string) (*entity.Category, error)
	List() ([]*entity.Category, error)
}

// UnitMeasureRepository persiste unidades de medida.
type UnitMeasureRepository interface {
	Create(unit *entity.UnitMeasure) error
	GetByID(id string) (*entity.UnitMeasure, error)
	List() ([]*entity.UnitMeasure, error)
}

// ServiceRepository persiste servicios con sus componentes.
type ServiceRepository interface {
	Create(service *entity.Service) error
	Update(service *entity.Service) error
	// GetByID devuelve el servicio con Components cargados.
	GetByID(id string) (*entity.Service, error)
	GetByCode(code string) (*entity.Service, error)
	List(onlyActive bool) ([]*entity.Service, error)
}

// WarehouseRepository persiste almacenes.
type WarehouseRepository interface {
	Create(warehouse *entity.Warehouse) error
	Update(warehouse *entity.Warehouse) error
	GetByID(id string) (*entity.Warehouse, error)
	// GetPrincipal devuelve el almacén principal (a lo sumo uno global).
	GetPrincipal() (*entity.Warehouse, error)
	List(onlyActive bool) ([]*entity.Warehouse, error)
}
