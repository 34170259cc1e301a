package repository

import "github.com/jhoicas/pos-paraguay/internal/domain/entity"

// CuotaRepository persiste cuotas del cronograma de cobro.
type CuotaRepository interface {
	Create(cuota *entity.Cuota) error
	Update(cuota *entity.Cuota) error
	GetByID(id string) (*entity.Cuota, error)
	GetForUpdate(id string) (*entity.Cuota, error)
	ListBySale(saleID string) ([]*entity.Cuota, error)
}

// CuotaPaymentRepository persiste pagos de cuotas.
type CuotaPaymentRepository interface {
	Create(payment *entity.CuotaPayment) error
	Update(payment *entity.CuotaPayment) error
	GetByID(id string) (*entity.CuotaPayment, error)
	ListByCuota(cuotaID string) ([]*entity.CuotaPayment, error)
}
