package repository

import "github.com/jhoicas/pos-paraguay/internal/domain/entity"

// SaleRepository persiste ventas con sus detalles.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	Update(sale *entity.Sale) error
	GetByID(id string) (*entity.Sale, error)
	GetForUpdate(id string) (*entity.Sale, error)
	GetByNumber(number string) (*entity.Sale, error)
	List(state string) ([]*entity.Sale, error)
}
