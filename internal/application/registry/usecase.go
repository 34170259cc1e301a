package registry

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/pos-paraguay/internal/application/dto"
	"github.com/jhoicas/pos-paraguay/internal/application/ports"
	"github.com/jhoicas/pos-paraguay/internal/domain"
	"github.com/jhoicas/pos-paraguay/internal/domain/entity"
	"github.com/jhoicas/pos-paraguay/pkg/sifen"
)

var (
	codePattern     = regexp.MustCompile(`^\d{3}$`)
	timbradoPattern = regexp.MustCompile(`^\d{8}$`)
)

// UseCase administra el registro de referencia: empresa, sucursales, puntos
// de expedición y sus secuencias, timbrados, almacenes, productos, servicios,
// clientes y proveedores.
type UseCase struct {
	tx ports.TxRunner
}

// New construye el caso de uso.
func New(tx ports.TxRunner) *UseCase {
	return &UseCase{tx: tx}
}

// CreateCompany registra la empresa emisora. El RUC se valida con el dígito
// verificador módulo 11.
func (uc *UseCase) CreateCompany(ctx context.Context, req dto.CreateCompanyRequest) (*entity.Company, error) {
	if req.RUC == "" || req.RazonSocial == "" {
		return nil, domain.ErrInvalidInput
	}
	if !sifen.ValidRUC(req.RUC) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	company := &entity.Company{
		ID:              uuid.New().String(),
		Name:            req.RazonSocial,
		TradeName:       req.NombreFantasia,
		RUC:             sifen.BaseRUC(req.RUC),
		DV:              sifen.RUCDigit(req.RUC),
		Regimen:         req.Regimen,
		ContributorType: req.TipoContribuyente,
		Address:         req.Direccion,
		DeptCode:        req.Departamento,
		DistrictCode:    req.Distrito,
		CityCode:        req.Ciudad,
		Phone:           req.Telefono,
		Email:           req.Email,
		Active:          true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	err := uc.tx.Run(ctx, func(r *ports.Repos) error {
		return r.Companies.Create(company)
	})
	if err != nil {
		return nil, err
	}
	return company, nil
}

// CreateBranch registra una sucursal. El código son exactamente 3 dígitos y
// forma la parte BBB de los números de documento.
func (uc *UseCase) CreateBranch(ctx context.Context, req dto.CreateBranchRequest) (*entity.Branch, error) {
	if !codePattern.MatchString(req.Code) || req.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	branch := &entity.Branch{
		ID:        uuid.New().String(),
		CompanyID: req.CompanyID,
		Code:      req.Code,
		Name:      req.Name,
		Address:   req.Direccion,
		Phone:     req.Telefono,
		Principal: req.Principal,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := uc.tx.Run(ctx, func(r *ports.Repos) error {
		if _, err := r.Companies.GetByID(req.CompanyID); err != nil {
			return err
		}
		existing, err := r.Branches.ListByCompany(req.CompanyID)
		if err != nil {
			return err
		}
		for _, b := range existing {
			if b.Code == branch.Code && b.Active {
				return domain.ErrDuplicate
			}
		}
		return r.Branches.Create(branch)
	})
	if err != nil {
		return nil, err
	}
	return branch, nil
}

// CreateExpeditionPoint registra un punto de expedición y, en la misma
// transacción, sus cuatro secuencias canónicas arrancando en 1.
func (uc *UseCase) CreateExpeditionPoint(ctx context.Context, req dto.CreateExpeditionPointRequest) (*entity.ExpeditionPoint, error) {
	if !codePattern.MatchString(req.Code) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	point := &entity.ExpeditionPoint{
		ID:          uuid.New().String(),
		BranchID:    req.BranchID,
		Code:        req.Code,
		Description: req.Name,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err := uc.tx.Run(ctx, func(r *ports.Repos) error {
		branch, err := r.Branches.GetByID(req.BranchID)
		if err != nil {
			return err
		}
		siblings, err := r.ExpeditionPoints.ListByBranch(req.BranchID)
		if err != nil {
			return err
		}
		for _, p := range siblings {
			if p.Code == point.Code && p.Active {
				return domain.ErrDuplicate
			}
		}
		if err := r.ExpeditionPoints.Create(point); err != nil {
			return err
		}
		for _, docType := range entity.CanonicalDocTypes {
			seq := &entity.DocumentSequence{
				ID:                uuid.New().String(),
				ExpeditionPointID: point.ID,
				DocumentType:      docType,
				Prefix:            entity.BuildPrefix(branch.Code, point.Code),
				Format:            entity.SequenceFormat,
				NextNumber:        1,
				Active:            true,
				CreatedAt:         now,
				UpdatedAt:         now,
			}
			if err := r.Sequences.Create(seq); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return point, nil
}

// CreateTimbrado registra un timbrado. Número de exactamente 8 dígitos e
// intervalo de vigencia coherente.
func (uc *UseCase) CreateTimbrado(ctx context.Context, req dto.CreateTimbradoRequest) (*entity.Timbrado, error) {
	if !timbradoPattern.MatchString(req.Number) {
		return nil, domain.ErrInvalidInput
	}
	from, err := time.Parse("2006-01-02", req.ValidFrom)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	to, err := time.Parse("2006-01-02", req.ValidTo)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	if to.Before(from) {
		return nil, domain.ErrInvalidInput
	}
	kind := req.Emision
	if kind == "" {
		kind = entity.EmisionElectronica
	}
	now := time.Now()
	timbrado := &entity.Timbrado{
		ID:        uuid.New().String(),
		Number:    req.Number,
		IssueKind: kind,
		ValidFrom: from,
		ValidTo:   to,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err = uc.tx.Run(ctx, func(r *ports.Repos) error {
		if existing, err := r.Timbrados.GetByNumber(req.Number); err == nil && existing != nil {
			return domain.ErrDuplicate
		} else if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return r.Timbrados.Create(timbrado)
	})
	if err != nil {
		return nil, err
	}
	return timbrado, nil
}

// VigenteTimbrado devuelve el timbrado VIGENTE para la fecha dada.
func (uc *UseCase) VigenteTimbrado(ctx context.Context, today time.Time) (*entity.Timbrado, error) {
	var found *entity.Timbrado
	err := uc.tx.Run(ctx, func(r *ports.Repos) error {
		list, err := r.Timbrados.List()
		if err != nil {
			return err
		}
		for _, t := range list {
			if t.Status(today) == entity.TimbradoVigente {
				found = t
				return nil
			}
		}
		return domain.ErrNotFound
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

// CreateWarehouse registra un almacén. A lo sumo uno principal: marcar uno
// nuevo desmarca el anterior.
func (uc *UseCase) CreateWarehouse(ctx context.Context, req dto.CreateWarehouseRequest) (*entity.Warehouse, error) {
	if req.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	warehouse := &entity.Warehouse{
		ID:        uuid.New().String(),
		BranchID:  req.BranchID,
		Name:      req.Name,
		Location:  req.Direccion,
		Principal: req.Principal,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := uc.tx.Run(ctx, func(r *ports.Repos) error {
		if req.BranchID != "" {
			if _, err := r.Branches.GetByID(req.BranchID); err != nil {
				return err
			}
		}
		if req.Principal {
			current, err := r.Warehouses.GetPrincipal()
			if err != nil && !errors.Is(err, domain.ErrNotFound) {
				return err
			}
			if current != nil {
				current.Principal = false
				current.UpdatedAt = now
				if err := r.Warehouses.Update(current); err != nil {
					return err
				}
			}
		}
		return r.Warehouses.Create(warehouse)
	})
	if err != nil {
		return nil, err
	}
	return warehouse, nil
}

// CreateProduct registra un producto. Código único, tasa de IVA válida y
// precio minorista no menor al mayorista.
func (uc *UseCase) CreateProduct(ctx context.Context, req dto.CreateProductRequest) (*entity.Product, error) {
	if req.Code == "" || req.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if !entity.ValidIVARates[req.IVARate] {
		return nil, domain.ErrInvalidInput
	}
	if req.RetailPrice.IsNegative() || req.WholesalePrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if req.RetailPrice.LessThan(req.WholesalePrice) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	product := &entity.Product{
		ID:             uuid.New().String(),
		CategoryID:     req.CategoryID,
		UnitID:         req.UnitMeasureID,
		Code:           req.Code,
		Name:           req.Name,
		Description:    req.Description,
		RetailPrice:    req.RetailPrice,
		WholesalePrice: req.WholesalePrice,
		PurchasePrice:  req.PurchasePrice,
		IVARate:        req.IVARate,
		MinStock:       req.MinStock,
		Active:         true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	err := uc.tx.Run(ctx, func(r *ports.Repos) error {
		if existing, err := r.Products.GetByCode(req.Code); err == nil && existing != nil {
			return domain.ErrDuplicate
		} else if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return r.Products.Create(product)
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

// CreateService registra un servicio. COMPUESTO exige al menos un componente
// con cantidad positiva; SIMPLE no lleva componentes.
func (uc *UseCase) CreateService(ctx context.Context, req dto.CreateServiceRequest) (*entity.Service, error) {
	if req.Code == "" || req.Name == "" || !entity.ValidIVARates[req.IVARate] {
		return nil, domain.ErrInvalidInput
	}
	switch req.Kind {
	case entity.ServiceSimple:
		if len(req.Components) > 0 {
			return nil, domain.ErrInvalidInput
		}
	case entity.ServiceCompuesto:
		if len(req.Components) == 0 {
			return nil, domain.ErrInvalidInput
		}
	default:
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	service := &entity.Service{
		ID:        uuid.New().String(),
		Code:      req.Code,
		Name:      req.Name,
		Type:      req.Kind,
		Price:     req.Price,
		IVARate:   req.IVARate,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, c := range req.Components {
		if !c.Quantity.IsPositive() {
			return nil, domain.ErrInvalidInput
		}
		service.Components = append(service.Components, entity.ServiceComponent{
			ID:        uuid.New().String(),
			ServiceID: service.ID,
			ProductID: c.ProductID,
			Quantity:  c.Quantity,
		})
	}
	err := uc.tx.Run(ctx, func(r *ports.Repos) error {
		for _, c := range service.Components {
			if _, err := r.Products.GetByID(c.ProductID); err != nil {
				return err
			}
		}
		return r.Services.Create(service)
	})
	if err != nil {
		return nil, err
	}
	return service, nil
}

// CreateCustomer registra un cliente. (tipo, número) de documento único
// entre clientes activos.
func (uc *UseCase) CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest) (*entity.Customer, error) {
	if req.DocType == "" || req.DocNumber == "" || req.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	country := req.Country
	if country == "" {
		country = "PRY"
	}
	now := time.Now()
	customer := &entity.Customer{
		ID:        uuid.New().String(),
		DocType:   req.DocType,
		DocNumber: req.DocNumber,
		DV:        req.DV,
		Name:      req.Name,
		TaxNature: req.Naturaleza,
		Country:   country,
		Address:   req.Direccion,
		Phone:     req.Telefono,
		Email:     req.Email,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := uc.tx.Run(ctx, func(r *ports.Repos) error {
		if existing, err := r.Customers.GetByDocument(req.DocType, req.DocNumber); err == nil && existing != nil && existing.Active {
			return domain.ErrDuplicate
		} else if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return r.Customers.Create(customer)
	})
	if err != nil {
		return nil, err
	}
	return customer, nil
}

// CreateSupplier registra un proveedor con RUC único.
func (uc *UseCase) CreateSupplier(ctx context.Context, req dto.CreateSupplierRequest) (*entity.Supplier, error) {
	if req.RUC == "" || req.RazonSocial == "" {
		return nil, domain.ErrInvalidInput
	}
	if !sifen.ValidRUC(req.RUC) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	supplier := &entity.Supplier{
		ID:        uuid.New().String(),
		RUC:       sifen.BaseRUC(req.RUC),
		DV:        sifen.RUCDigit(req.RUC),
		Name:      req.RazonSocial,
		Address:   req.Direccion,
		Phone:     req.Telefono,
		Email:     req.Email,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := uc.tx.Run(ctx, func(r *ports.Repos) error {
		if existing, err := r.Suppliers.GetByRUC(supplier.RUC); err == nil && existing != nil && existing.Active {
			return domain.ErrDuplicate
		} else if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return r.Suppliers.Create(supplier)
	})
	if err != nil {
		return nil, err
	}
	return supplier, nil
}
