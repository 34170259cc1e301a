package repository

import "github.com/jhoicas/pos-paraguay/internal/domain/entity"

// CompanyRepository define el puerto de persistencia de la empresa emisora.
type CompanyRepository interface {
	Create(company *entity.Company) error
	Update(company *entity.Company) error
	GetByID(id string) (*entity.Company, error)
	// GetPrincipal devuelve la empresa activa (una sola por despliegue).
	GetPrincipal() (*entity.Company, error)
}

// BranchRepository persiste sucursales; (empresa, código) único.
type BranchRepository interface {
	Create(branch *entity.Branch) error
	Update(branch *entity.Branch) error
	GetByID(id string) (*entity.Branch, error)
	ListByCompany(companyID string) ([]*entity.Branch, error)
}

// ExpeditionPointRepository persiste puntos de expedición; (sucursal, código) único.
type ExpeditionPointRepository interface {
	Create(point *entity.ExpeditionPoint) error
	GetByID(id string) (*entity.ExpeditionPoint, error)
	ListByBranch(branchID string) ([]*entity.ExpeditionPoint, error)
}
