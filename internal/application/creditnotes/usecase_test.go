package creditnotes

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-paraguay/internal/application/cashbox"
	"github.com/jhoicas/pos-paraguay/internal/application/dto"
	"github.com/jhoicas/pos-paraguay/internal/application/ports"
	"github.com/jhoicas/pos-paraguay/internal/application/sales"
	"github.com/jhoicas/pos-paraguay/internal/domain"
	"github.com/jhoicas/pos-paraguay/internal/domain/entity"
	"github.com/jhoicas/pos-paraguay/internal/infrastructure/memory"
)

type fixture struct {
	uc    *UseCase
	repos *ports.Repos
	tx    *memory.TxRunner
	sale  *entity.Sale
}

// newFixture finaliza una venta contado de 5 unidades a 10000 cada una
// (total 50000) con comisión del vendedor del 10%.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	repos := memory.NewRepos(store)
	now := time.Now()

	require.NoError(t, repos.Branches.Create(&entity.Branch{
		ID: "branch-1", CompanyID: "company-1", Code: "001", Principal: true, Active: true,
	}))
	require.NoError(t, repos.ExpeditionPoints.Create(&entity.ExpeditionPoint{
		ID: "point-1", BranchID: "branch-1", Code: "001", Active: true,
	}))
	for _, docType := range entity.CanonicalDocTypes {
		require.NoError(t, repos.Sequences.Create(&entity.DocumentSequence{
			ID: "seq-" + docType, ExpeditionPointID: "point-1", DocumentType: docType,
			Prefix: "001-001", Format: entity.SequenceFormat, NextNumber: 1, Active: true,
		}))
	}
	require.NoError(t, repos.Timbrados.Create(&entity.Timbrado{
		ID: "timbrado-1", Number: "12345678", IssueKind: entity.EmisionElectronica,
		ValidFrom: now.AddDate(0, -1, 0), ValidTo: now.AddDate(1, 0, 0),
	}))
	require.NoError(t, repos.Warehouses.Create(&entity.Warehouse{
		ID: "wh-1", BranchID: "branch-1", Name: "Depósito Central", Principal: true, Active: true,
	}))
	require.NoError(t, repos.Customers.Create(&entity.Customer{
		ID: "cust-1", Name: "Juan Benítez", DocType: "CI", DocNumber: "1234567", Active: true,
	}))
	require.NoError(t, repos.Users.Create(&entity.User{
		ID: "seller-1", Username: "vendedor", Role: "vendedor", Active: true,
	}))
	require.NoError(t, repos.SellerConfigs.Create(&entity.SellerCommissionConfig{
		ID: "cfg-1", SellerID: "seller-1", Kind: entity.CommissionPctTotal,
		Percentage: decimal.NewFromInt(10), Active: true,
	}))
	require.NoError(t, repos.Products.Create(&entity.Product{
		ID: "prod-1", Code: "P001", Name: "Champú para mascotas",
		RetailPrice: decimal.NewFromInt(10000), IVARate: 10, Active: true,
	}))
	require.NoError(t, repos.Stocks.Upsert(&entity.Stock{
		ProductID: "prod-1", WarehouseID: "wh-1", Quantity: decimal.NewFromInt(10),
	}))
	require.NoError(t, repos.CashRegisters.Create(&entity.CashRegister{
		ID: "reg-1", ExpeditionPointID: "point-1", Name: "Caja 1",
		CurrentBalance: decimal.Zero, State: entity.RegisterCerrada,
	}))

	tx := memory.NewTxRunner(store)
	ctx := context.Background()
	_, err := cashbox.New(tx).Open(ctx, "cajero-1", "reg-1", dto.OpenRegisterRequest{
		OpeningBalance: decimal.NewFromInt(100000),
	})
	require.NoError(t, err)

	sale, err := sales.New(tx).Finalize(ctx, "seller-1", dto.FinalizeSaleRequest{
		CustomerID: "cust-1", SellerID: "seller-1", RegisterID: "reg-1",
		DocumentType: entity.DocTypeFactura, Condition: entity.CondicionContado,
		Lines: []dto.SaleLineRequest{
			{ProductID: "prod-1", WarehouseID: "wh-1", Quantity: decimal.NewFromInt(5)},
		},
	})
	require.NoError(t, err)

	return &fixture{uc: New(tx), repos: repos, tx: tx, sale: sale}
}

func (f *fixture) commission(t *testing.T) *entity.SellerCommission {
	t.Helper()
	list, err := f.repos.SellerCommissions.ListBySale(f.sale.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	return list[0]
}

func (f *fixture) registerBalance(t *testing.T) decimal.Decimal {
	t.Helper()
	reg, err := f.repos.CashRegisters.GetByID("reg-1")
	require.NoError(t, err)
	return reg.CurrentBalance
}

func TestFinalizeParcialConReingreso(t *testing.T) {
	f := newFixture(t)
	detail := f.sale.Details[0]

	// Devolución del 40%: 2 de 5 unidades.
	note, err := f.uc.Finalize(context.Background(), "admin-1", dto.FinalizeCreditNoteRequest{
		SaleID:           f.sale.ID,
		RegisterID:       "reg-1",
		Motive:           "Producto vencido",
		RestoreInventory: true,
		Lines: []dto.CreditNoteLineRequest{
			{SaleDetailID: detail.ID, Quantity: decimal.NewFromInt(2)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.NoteParcial, note.Type)
	assert.Equal(t, "001-001-0000001", note.DocumentNumber)
	assert.True(t, note.Total.Equal(decimal.NewFromInt(20000)))

	// Mercadería reingresada: 10 − 5 + 2.
	stock, err := f.repos.Stocks.Get("prod-1", "wh-1")
	require.NoError(t, err)
	assert.True(t, stock.Quantity.Equal(decimal.NewFromInt(7)))

	// Caja: 100000 apertura + 50000 venta − 20000 devolución.
	assert.True(t, f.registerBalance(t).Equal(decimal.NewFromInt(130000)))

	// Comisión del 10% sobre 50000 reducida en el 40%: 5000 → 3000.
	c := f.commission(t)
	assert.True(t, c.Accrued.Equal(decimal.NewFromInt(3000)))
	assert.Equal(t, entity.CommissionPendiente, c.State)
}

func TestFinalizeTotal(t *testing.T) {
	f := newFixture(t)
	detail := f.sale.Details[0]

	note, err := f.uc.Finalize(context.Background(), "admin-1", dto.FinalizeCreditNoteRequest{
		SaleID:     f.sale.ID,
		RegisterID: "reg-1",
		Motive:     "Devolución completa",
		Lines: []dto.CreditNoteLineRequest{
			{SaleDetailID: detail.ID, Quantity: decimal.NewFromInt(5)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.NoteTotal, note.Type)
	assert.True(t, note.Total.Equal(decimal.NewFromInt(50000)))

	// Sin reingreso explícito el inventario no se toca.
	stock, err := f.repos.Stocks.Get("prod-1", "wh-1")
	require.NoError(t, err)
	assert.True(t, stock.Quantity.Equal(decimal.NewFromInt(5)))

	// Comisión devengada reducida a cero.
	c := f.commission(t)
	assert.True(t, c.Accrued.IsZero())
}

func TestFinalizeNoExcedeLaVenta(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	detail := f.sale.Details[0]

	// Primera nota por 3 unidades.
	_, err := f.uc.Finalize(ctx, "admin-1", dto.FinalizeCreditNoteRequest{
		SaleID: f.sale.ID, RegisterID: "reg-1", Motive: "Devolución parcial",
		Lines: []dto.CreditNoteLineRequest{
			{SaleDetailID: detail.ID, Quantity: decimal.NewFromInt(3)},
		},
	})
	require.NoError(t, err)

	// Quedan 2 acreditables: pedir 3 más es entrada inválida.
	_, err = f.uc.Finalize(ctx, "admin-1", dto.FinalizeCreditNoteRequest{
		SaleID: f.sale.ID, RegisterID: "reg-1", Motive: "Otra devolución",
		Lines: []dto.CreditNoteLineRequest{
			{SaleDetailID: detail.ID, Quantity: decimal.NewFromInt(3)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Cantidad cero y detalle inexistente también fallan.
	_, err = f.uc.Finalize(ctx, "admin-1", dto.FinalizeCreditNoteRequest{
		SaleID: f.sale.ID, RegisterID: "reg-1", Motive: "x",
		Lines: []dto.CreditNoteLineRequest{
			{SaleDetailID: detail.ID, Quantity: decimal.Zero},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.uc.Finalize(ctx, "admin-1", dto.FinalizeCreditNoteRequest{
		SaleID: f.sale.ID, RegisterID: "reg-1", Motive: "x",
		Lines: []dto.CreditNoteLineRequest{
			{SaleDetailID: "detalle-fantasma", Quantity: decimal.NewFromInt(1)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestFinalizeReingresaComponentesDeServicio(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.repos.Services.Create(&entity.Service{
		ID: "svc-1", Code: "S001", Name: "Baño y corte", Type: entity.ServiceCompuesto,
		Price: decimal.NewFromInt(15000), IVARate: 10, Active: true,
		Components: []entity.ServiceComponent{
			{ID: "comp-1", ServiceID: "svc-1", ProductID: "prod-1", Quantity: decimal.NewFromInt(2)},
		},
	}))

	venta, err := sales.New(f.tx).Finalize(ctx, "seller-1", dto.FinalizeSaleRequest{
		CustomerID: "cust-1", SellerID: "seller-1", RegisterID: "reg-1",
		DocumentType: entity.DocTypeFactura, Condition: entity.CondicionContado,
		Lines: []dto.SaleLineRequest{
			{ServiceID: "svc-1", Quantity: decimal.NewFromInt(2)},
		},
	})
	require.NoError(t, err)

	// La receta consumió 2 servicios × 2 componentes sobre el stock que dejó
	// la venta de la fixture: 5 − 4.
	stock, err := f.repos.Stocks.Get("prod-1", "wh-1")
	require.NoError(t, err)
	require.True(t, stock.Quantity.Equal(decimal.NewFromInt(1)))

	detail := venta.Details[0]
	_, err = f.uc.Finalize(ctx, "admin-1", dto.FinalizeCreditNoteRequest{
		SaleID:           venta.ID,
		RegisterID:       "reg-1",
		Motive:           "Servicio no prestado",
		RestoreInventory: true,
		Lines: []dto.CreditNoteLineRequest{
			{SaleDetailID: detail.ID, Quantity: decimal.NewFromInt(2)},
		},
	})
	require.NoError(t, err)

	// Los componentes de la receta vuelven al almacén de servicio.
	stock, err = f.repos.Stocks.Get("prod-1", "wh-1")
	require.NoError(t, err)
	assert.True(t, stock.Quantity.Equal(decimal.NewFromInt(5)))
}

func TestFinalizeAbsorbeCuotasEnVentaCredito(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Venta a crédito de 3 unidades (30000): entrega inicial 6000 y tres
	// cuotas de 8000.
	venta, err := sales.New(f.tx).Finalize(ctx, "seller-1", dto.FinalizeSaleRequest{
		CustomerID: "cust-1", SellerID: "seller-1", RegisterID: "reg-1",
		DocumentType: entity.DocTypeFactura, Condition: entity.CondicionCredito,
		InitialEntry: decimal.NewFromInt(6000), CuotaCount: 3, DueDay: 10,
		Lines: []dto.SaleLineRequest{
			{ProductID: "prod-1", WarehouseID: "wh-1", Quantity: decimal.NewFromInt(3)},
		},
	})
	require.NoError(t, err)
	balanceAntes := f.registerBalance(t)
	detail := venta.Details[0]

	// Nota por 2 unidades (20000): la deuda abierta (24000) la absorbe toda,
	// de la última cuota hacia atrás, sin egreso de caja.
	note, err := f.uc.Finalize(ctx, "admin-1", dto.FinalizeCreditNoteRequest{
		SaleID: venta.ID, RegisterID: "reg-1", Motive: "Devolución parcial",
		Lines: []dto.CreditNoteLineRequest{
			{SaleDetailID: detail.ID, Quantity: decimal.NewFromInt(2)},
		},
	})
	require.NoError(t, err)
	assert.True(t, f.registerBalance(t).Equal(balanceAntes))

	cuotas, err := f.repos.Cuotas.ListBySale(venta.ID)
	require.NoError(t, err)
	require.Len(t, cuotas, 4)
	assert.True(t, cuotas[0].Balance.IsZero()) // entrega inicial, intacta
	assert.True(t, cuotas[1].Balance.Equal(decimal.NewFromInt(4000)))
	assert.True(t, cuotas[2].Balance.IsZero())
	assert.Equal(t, entity.CuotaPagada, cuotas[2].State)
	assert.True(t, cuotas[3].Balance.IsZero())
	assert.Equal(t, entity.CuotaPagada, cuotas[3].State)

	// Segunda nota por 1 unidad (10000): quedan 4000 de deuda, el resto
	// (6000) sale por caja.
	_, err = f.uc.Finalize(ctx, "admin-1", dto.FinalizeCreditNoteRequest{
		SaleID: venta.ID, RegisterID: "reg-1", Motive: "Devolución del resto",
		Lines: []dto.CreditNoteLineRequest{
			{SaleDetailID: detail.ID, Quantity: decimal.NewFromInt(1)},
		},
	})
	require.NoError(t, err)
	assert.True(t, f.registerBalance(t).Equal(balanceAntes.Sub(decimal.NewFromInt(6000))))

	// La anulación de la primera nota repone exactamente lo que absorbió:
	// 4000 en la cuota 1 (la segunda nota la había drenado a cero) y 8000 en
	// las cuotas 2 y 3.
	require.NoError(t, f.uc.Cancel(ctx, "admin-1", note.ID, "Emitida por error"))
	cuotas, err = f.repos.Cuotas.ListBySale(venta.ID)
	require.NoError(t, err)
	assert.True(t, cuotas[1].Balance.Equal(decimal.NewFromInt(4000)))
	assert.True(t, cuotas[2].Balance.Equal(decimal.NewFromInt(8000)))
	assert.Equal(t, entity.CuotaPendiente, cuotas[2].State)
	assert.Nil(t, cuotas[2].PaidAt)
	assert.True(t, cuotas[3].Balance.Equal(decimal.NewFromInt(8000)))
}

func TestCancel(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	detail := f.sale.Details[0]

	note, err := f.uc.Finalize(ctx, "admin-1", dto.FinalizeCreditNoteRequest{
		SaleID:           f.sale.ID,
		RegisterID:       "reg-1",
		Motive:           "Error de facturación",
		RestoreInventory: true,
		Lines: []dto.CreditNoteLineRequest{
			{SaleDetailID: detail.ID, Quantity: decimal.NewFromInt(2)},
		},
	})
	require.NoError(t, err)

	require.NoError(t, f.uc.Cancel(ctx, "admin-1", note.ID, "Emitida por error"))

	// Efecto neto cero: caja, inventario y comisión como antes de la nota.
	assert.True(t, f.registerBalance(t).Equal(decimal.NewFromInt(150000)))
	stock, err := f.repos.Stocks.Get("prod-1", "wh-1")
	require.NoError(t, err)
	assert.True(t, stock.Quantity.Equal(decimal.NewFromInt(5)))
	c := f.commission(t)
	assert.True(t, c.Accrued.Equal(decimal.NewFromInt(5000)))

	cancelled, err := f.repos.CreditNotes.GetByID(note.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.NoteCancelada, cancelled.State)

	// Anular dos veces es estado inválido; sin motivo es entrada inválida.
	assert.ErrorIs(t, f.uc.Cancel(ctx, "admin-1", note.ID, "otra vez"), domain.ErrInvalidState)
	assert.ErrorIs(t, f.uc.Cancel(ctx, "admin-1", note.ID, ""), domain.ErrInvalidInput)
}
