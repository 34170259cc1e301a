package repository

import "github.com/jhoicas/pos-paraguay/internal/domain/entity"

// CustomerRepository persiste clientes. La pareja tipo+número de
// documento es única entre clientes activos.
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	Update(customer *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	GetByDocument(docType, docNumber string) (*entity.Customer, error)
	List(onlyActive bool) ([]*entity.Customer, error)
}

// SupplierRepository persiste proveedores.
type SupplierRepository interface {
	Create(supplier *entity.Supplier) error
	Update(supplier *entity.Supplier) error
	GetByID(id string) (*entity.Supplier, error)
	GetByRUC(ruc string) (*entity.Supplier, error)
	List(onlyActive bool) ([]*entity.Supplier, error)
}

// UserRepository persiste usuarios del sistema.
type UserRepository interface {
	Create(user *entity.User) error
	Update(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByUsername(username string) (*entity.User, error)
	List(onlyActive bool) ([]*entity.User, error)
}
