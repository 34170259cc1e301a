package repository

import "github.com/jhoicas/pos-paraguay/internal/domain/entity"

// PurchaseOrderRepository persiste órdenes de compra con sus detalles.
type PurchaseOrderRepository interface {
	Create(order *entity.PurchaseOrder) error
	Update(order *entity.PurchaseOrder) error
	GetByID(id string) (*entity.PurchaseOrder, error)
	GetForUpdate(id string) (*entity.PurchaseOrder, error)
	List(state string) ([]*entity.PurchaseOrder, error)
	UpdateDetail(detail *entity.PurchaseOrderDetail) error
}

// ReceptionRepository persiste recepciones de mercadería.
type ReceptionRepository interface {
	Create(reception *entity.Reception) error
	ListByOrder(orderID string) ([]*entity.Reception, error)
}

// AccountsPayableRepository persiste cuentas por pagar a proveedores.
type AccountsPayableRepository interface {
	Create(payable *entity.AccountsPayable) error
	Update(payable *entity.AccountsPayable) error
	GetByID(id string) (*entity.AccountsPayable, error)
	GetForUpdate(id string) (*entity.AccountsPayable, error)
	GetByOrder(orderID string) (*entity.AccountsPayable, error)
	ListPending() ([]*entity.AccountsPayable, error)
}

// SupplierPaymentRepository persiste pagos a proveedores.
type SupplierPaymentRepository interface {
	Create(payment *entity.SupplierPayment) error
	Update(payment *entity.SupplierPayment) error
	GetByID(id string) (*entity.SupplierPayment, error)
	ListByPayable(payableID string) ([]*entity.SupplierPayment, error)
}
