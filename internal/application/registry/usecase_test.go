package registry

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-paraguay/internal/application/dto"
	"github.com/jhoicas/pos-paraguay/internal/application/ports"
	"github.com/jhoicas/pos-paraguay/internal/domain"
	"github.com/jhoicas/pos-paraguay/internal/domain/entity"
	"github.com/jhoicas/pos-paraguay/internal/infrastructure/memory"
)

type fixture struct {
	uc    *UseCase
	repos *ports.Repos
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	return &fixture{uc: New(memory.NewTxRunner(store)), repos: memory.NewRepos(store)}
}

func TestCreateCompany(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	company, err := f.uc.CreateCompany(ctx, dto.CreateCompanyRequest{
		RUC: "4.455.667-5", RazonSocial: "Lubricentro Guaraní S.A.",
	})
	require.NoError(t, err)
	// El RUC se normaliza: base sin separadores y DV aparte.
	assert.Equal(t, "4455667", company.RUC)
	assert.Equal(t, "5", company.DV)

	// Un DV que no cierra con el módulo 11 es entrada inválida.
	_, err = f.uc.CreateCompany(ctx, dto.CreateCompanyRequest{
		RUC: "4455667-9", RazonSocial: "Otra S.A.",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateBranch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	company, err := f.uc.CreateCompany(ctx, dto.CreateCompanyRequest{
		RUC: "4455667-5", RazonSocial: "Lubricentro Guaraní S.A.",
	})
	require.NoError(t, err)

	branch, err := f.uc.CreateBranch(ctx, dto.CreateBranchRequest{
		CompanyID: company.ID, Code: "001", Name: "Casa Matriz", Principal: true,
	})
	require.NoError(t, err)
	assert.True(t, branch.Active)

	// El código son exactamente 3 dígitos.
	_, err = f.uc.CreateBranch(ctx, dto.CreateBranchRequest{
		CompanyID: company.ID, Code: "1", Name: "Sucursal corta",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Código repetido dentro de la empresa es duplicado.
	_, err = f.uc.CreateBranch(ctx, dto.CreateBranchRequest{
		CompanyID: company.ID, Code: "001", Name: "Otra sucursal",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCreateExpeditionPointGeneraSecuencias(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	company, err := f.uc.CreateCompany(ctx, dto.CreateCompanyRequest{
		RUC: "4455667-5", RazonSocial: "Lubricentro Guaraní S.A.",
	})
	require.NoError(t, err)
	branch, err := f.uc.CreateBranch(ctx, dto.CreateBranchRequest{
		CompanyID: company.ID, Code: "002", Name: "Sucursal Lambaré",
	})
	require.NoError(t, err)

	point, err := f.uc.CreateExpeditionPoint(ctx, dto.CreateExpeditionPointRequest{
		BranchID: branch.ID, Code: "003", Name: "Caja principal",
	})
	require.NoError(t, err)

	// Las cuatro secuencias canónicas nacen con el punto, en 1.
	seqs, err := f.repos.Sequences.ListByPoint(point.ID)
	require.NoError(t, err)
	require.Len(t, seqs, len(entity.CanonicalDocTypes))
	for _, s := range seqs {
		assert.Equal(t, "002-003", s.Prefix)
		assert.Equal(t, int64(1), s.NextNumber)
		assert.True(t, s.Active)
	}

	// Código de punto repetido en la sucursal es duplicado.
	_, err = f.uc.CreateExpeditionPoint(ctx, dto.CreateExpeditionPointRequest{
		BranchID: branch.ID, Code: "003", Name: "Caja repetida",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCreateTimbradoYVigencia(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	today := time.Now()

	vigente, err := f.uc.CreateTimbrado(ctx, dto.CreateTimbradoRequest{
		Number:    "12345678",
		ValidFrom: today.AddDate(0, -1, 0).Format("2006-01-02"),
		ValidTo:   today.AddDate(1, 0, 0).Format("2006-01-02"),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.EmisionElectronica, vigente.IssueKind)

	// Uno futuro no es el vigente.
	_, err = f.uc.CreateTimbrado(ctx, dto.CreateTimbradoRequest{
		Number:    "87654321",
		ValidFrom: today.AddDate(0, 2, 0).Format("2006-01-02"),
		ValidTo:   today.AddDate(1, 2, 0).Format("2006-01-02"),
	})
	require.NoError(t, err)

	found, err := f.uc.VigenteTimbrado(ctx, today)
	require.NoError(t, err)
	assert.Equal(t, vigente.ID, found.ID)

	// Número repetido, formato corto e intervalo invertido.
	_, err = f.uc.CreateTimbrado(ctx, dto.CreateTimbradoRequest{
		Number:    "12345678",
		ValidFrom: "2026-01-01", ValidTo: "2026-12-31",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	_, err = f.uc.CreateTimbrado(ctx, dto.CreateTimbradoRequest{
		Number: "1234", ValidFrom: "2026-01-01", ValidTo: "2026-12-31",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.uc.CreateTimbrado(ctx, dto.CreateTimbradoRequest{
		Number: "11112222", ValidFrom: "2026-12-31", ValidTo: "2026-01-01",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateWarehousePrincipalUnico(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.uc.CreateWarehouse(ctx, dto.CreateWarehouseRequest{
		Name: "Depósito Central", Principal: true,
	})
	require.NoError(t, err)

	second, err := f.uc.CreateWarehouse(ctx, dto.CreateWarehouseRequest{
		Name: "Depósito Anexo", Principal: true,
	})
	require.NoError(t, err)

	// Marcar el nuevo como principal desmarca el anterior.
	principal, err := f.repos.Warehouses.GetPrincipal()
	require.NoError(t, err)
	assert.Equal(t, second.ID, principal.ID)
	old, err := f.repos.Warehouses.GetByID(first.ID)
	require.NoError(t, err)
	assert.False(t, old.Principal)
}

func TestCreateProduct(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	product, err := f.uc.CreateProduct(ctx, dto.CreateProductRequest{
		Code: "P001", Name: "Aceite 10W40",
		RetailPrice:    decimal.NewFromInt(55000),
		WholesalePrice: decimal.NewFromInt(48000),
		IVARate:        10,
	})
	require.NoError(t, err)
	assert.True(t, product.Active)

	// Código repetido es duplicado.
	_, err = f.uc.CreateProduct(ctx, dto.CreateProductRequest{
		Code: "P001", Name: "Otro aceite", RetailPrice: decimal.NewFromInt(1000), IVARate: 10,
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	// IVA fuera de {0,5,10} y minorista menor al mayorista.
	_, err = f.uc.CreateProduct(ctx, dto.CreateProductRequest{
		Code: "P002", Name: "Filtro", RetailPrice: decimal.NewFromInt(1000), IVARate: 7,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.uc.CreateProduct(ctx, dto.CreateProductRequest{
		Code: "P003", Name: "Filtro",
		RetailPrice:    decimal.NewFromInt(1000),
		WholesalePrice: decimal.NewFromInt(2000),
		IVARate:        10,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateService(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	product, err := f.uc.CreateProduct(ctx, dto.CreateProductRequest{
		Code: "P001", Name: "Champú", RetailPrice: decimal.NewFromInt(10000), IVARate: 10,
	})
	require.NoError(t, err)

	service, err := f.uc.CreateService(ctx, dto.CreateServiceRequest{
		Code: "S001", Name: "Baño y corte", Kind: entity.ServiceCompuesto,
		Price: decimal.NewFromInt(50000), IVARate: 10,
		Components: []dto.ServiceComponentRequest{
			{ProductID: product.ID, Quantity: decimal.NewFromInt(2)},
		},
	})
	require.NoError(t, err)
	require.Len(t, service.Components, 1)

	// COMPUESTO sin componentes y SIMPLE con componentes fallan.
	_, err = f.uc.CreateService(ctx, dto.CreateServiceRequest{
		Code: "S002", Name: "Vacío", Kind: entity.ServiceCompuesto, IVARate: 10,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.uc.CreateService(ctx, dto.CreateServiceRequest{
		Code: "S003", Name: "Consulta", Kind: entity.ServiceSimple, IVARate: 10,
		Components: []dto.ServiceComponentRequest{
			{ProductID: product.ID, Quantity: decimal.NewFromInt(1)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Componente con producto inexistente.
	_, err = f.uc.CreateService(ctx, dto.CreateServiceRequest{
		Code: "S004", Name: "Roto", Kind: entity.ServiceCompuesto, IVARate: 10,
		Components: []dto.ServiceComponentRequest{
			{ProductID: "fantasma", Quantity: decimal.NewFromInt(1)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateCustomerYSupplier(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	customer, err := f.uc.CreateCustomer(ctx, dto.CreateCustomerRequest{
		DocType: "CI", DocNumber: "1234567", Name: "Juan Benítez",
	})
	require.NoError(t, err)
	assert.Equal(t, "PRY", customer.Country)

	// (tipo, número) repetido entre activos es duplicado.
	_, err = f.uc.CreateCustomer(ctx, dto.CreateCustomerRequest{
		DocType: "CI", DocNumber: "1234567", Name: "Otro Juan",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	supplier, err := f.uc.CreateSupplier(ctx, dto.CreateSupplierRequest{
		RUC: "80012345-0", RazonSocial: "Distribuidora del Este",
	})
	require.NoError(t, err)
	assert.Equal(t, "80012345", supplier.RUC)

	_, err = f.uc.CreateSupplier(ctx, dto.CreateSupplierRequest{
		RUC: "80012345-0", RazonSocial: "La misma",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}
