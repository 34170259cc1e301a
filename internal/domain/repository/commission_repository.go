package repository

import "github.com/jhoicas/pos-paraguay/internal/domain/entity"

// SellerCommissionConfigRepository persiste configuraciones de comisión
// por vendedor.
type SellerCommissionConfigRepository interface {
	Create(config *entity.SellerCommissionConfig) error
	Update(config *entity.SellerCommissionConfig) error
	GetByID(id string) (*entity.SellerCommissionConfig, error)
	// GetActiveBySeller devuelve la configuración activa del vendedor, o nil.
	GetActiveBySeller(sellerID string) (*entity.SellerCommissionConfig, error)
}

// SellerCommissionRepository persiste comisiones devengadas de vendedores.
type SellerCommissionRepository interface {
	Create(commission *entity.SellerCommission) error
	Update(commission *entity.SellerCommission) error
	GetByID(id string) (*entity.SellerCommission, error)
	GetForUpdate(id string) (*entity.SellerCommission, error)
	ListBySale(saleID string) ([]*entity.SellerCommission, error)
	ListBySeller(sellerID string) ([]*entity.SellerCommission, error)
}

// CollectorCommissionConfigRepository persiste configuraciones de
// comisión por cobrador. A lo sumo una activa por cobrador.
type CollectorCommissionConfigRepository interface {
	Create(config *entity.CollectorCommissionConfig) error
	Update(config *entity.CollectorCommissionConfig) error
	GetByID(id string) (*entity.CollectorCommissionConfig, error)
	GetActiveByCollector(collectorID string) (*entity.CollectorCommissionConfig, error)
}

// CollectorCommissionRepository persiste comisiones de cobradores.
type CollectorCommissionRepository interface {
	Create(commission *entity.CollectorCommission) error
	Update(commission *entity.CollectorCommission) error
	GetByID(id string) (*entity.CollectorCommission, error)
	GetForUpdate(id string) (*entity.CollectorCommission, error)
	ListByPayment(paymentID string) ([]*entity.CollectorCommission, error)
	ListByCollector(collectorID string) ([]*entity.CollectorCommission, error)
}
