package commissions

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-paraguay/internal/application/cashbox"
	"github.com/jhoicas/pos-paraguay/internal/application/dto"
	"github.com/jhoicas/pos-paraguay/internal/application/ports"
	"github.com/jhoicas/pos-paraguay/internal/domain"
	"github.com/jhoicas/pos-paraguay/internal/domain/entity"
	"github.com/jhoicas/pos-paraguay/internal/infrastructure/memory"
)

type fixture struct {
	uc    *UseCase
	repos *ports.Repos
	tx    *memory.TxRunner
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	repos := memory.NewRepos(store)

	require.NoError(t, repos.Users.Create(&entity.User{
		ID: "seller-1", Username: "vendedor", Role: "vendedor", Active: true,
	}))
	require.NoError(t, repos.Users.Create(&entity.User{
		ID: "collector-1", Username: "cobrador", Role: "cobrador", Active: true,
	}))
	require.NoError(t, repos.ExpeditionPoints.Create(&entity.ExpeditionPoint{
		ID: "point-1", BranchID: "branch-1", Code: "001", Active: true,
	}))
	require.NoError(t, repos.CashRegisters.Create(&entity.CashRegister{
		ID: "reg-1", ExpeditionPointID: "point-1", Name: "Caja 1",
		CurrentBalance: decimal.Zero, State: entity.RegisterCerrada,
	}))

	tx := memory.NewTxRunner(store)
	_, err := cashbox.New(tx).Open(context.Background(), "cajero-1", "reg-1", dto.OpenRegisterRequest{
		OpeningBalance: decimal.NewFromInt(100000),
	})
	require.NoError(t, err)

	return &fixture{uc: New(tx), repos: repos, tx: tx}
}

func (f *fixture) registerBalance(t *testing.T) decimal.Decimal {
	t.Helper()
	reg, err := f.repos.CashRegisters.GetByID("reg-1")
	require.NoError(t, err)
	return reg.CurrentBalance
}

func TestConfigureSeller(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.uc.ConfigureSeller(ctx, "seller-1", entity.CommissionPctTotal, decimal.NewFromInt(5))
	require.NoError(t, err)
	assert.True(t, first.Active)

	// Una nueva configuración desactiva la anterior.
	second, err := f.uc.ConfigureSeller(ctx, "seller-1", entity.CommissionPctTotal, decimal.NewFromInt(8))
	require.NoError(t, err)
	active, err := f.repos.SellerConfigs.GetActiveBySeller("seller-1")
	require.NoError(t, err)
	assert.Equal(t, second.ID, active.ID)
	old, err := f.repos.SellerConfigs.GetByID(first.ID)
	require.NoError(t, err)
	assert.False(t, old.Active)

	// Porcentaje fuera de [0,100], tipo desconocido y vendedor inexistente.
	_, err = f.uc.ConfigureSeller(ctx, "seller-1", entity.CommissionPctTotal, decimal.NewFromInt(150))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.uc.ConfigureSeller(ctx, "seller-1", "POR_PROPINA", decimal.NewFromInt(5))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.uc.ConfigureSeller(ctx, "fantasma", entity.CommissionPctTotal, decimal.NewFromInt(5))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestConfigureCollector(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.uc.ConfigureCollector(ctx, "collector-1", decimal.NewFromInt(3))
	require.NoError(t, err)

	second, err := f.uc.ConfigureCollector(ctx, "collector-1", decimal.NewFromInt(4))
	require.NoError(t, err)
	active, err := f.repos.CollectorConfigs.GetActiveByCollector("collector-1")
	require.NoError(t, err)
	assert.Equal(t, second.ID, active.ID)
	assert.NotEqual(t, first.ID, active.ID)

	_, err = f.uc.ConfigureCollector(ctx, "collector-1", decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPaySeller(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	commission := &entity.SellerCommission{
		ID: "com-1", SaleID: "sale-1", SellerID: "seller-1", ConfigID: "cfg-1",
		Kind: entity.CommissionPctTotal, Accrued: decimal.NewFromInt(10000),
		Paid: decimal.Zero, State: entity.CommissionPendiente,
	}
	require.NoError(t, f.repos.SellerCommissions.Create(commission))

	// Liquidación parcial.
	require.NoError(t, f.uc.PaySeller(ctx, "cajero-1", "com-1", dto.PayCommissionRequest{
		Amount: decimal.NewFromInt(4000), RegisterID: "reg-1",
	}))
	partial, err := f.repos.SellerCommissions.GetByID("com-1")
	require.NoError(t, err)
	assert.Equal(t, entity.CommissionParcial, partial.State)
	assert.True(t, f.registerBalance(t).Equal(decimal.NewFromInt(96000)))

	// Liquidar más de lo pendiente es entrada inválida.
	err = f.uc.PaySeller(ctx, "cajero-1", "com-1", dto.PayCommissionRequest{
		Amount: decimal.NewFromInt(7000), RegisterID: "reg-1",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Saldo restante deja la comisión PAGADA y sin más liquidaciones.
	require.NoError(t, f.uc.PaySeller(ctx, "cajero-1", "com-1", dto.PayCommissionRequest{
		Amount: decimal.NewFromInt(6000), RegisterID: "reg-1",
	}))
	paid, err := f.repos.SellerCommissions.GetByID("com-1")
	require.NoError(t, err)
	assert.Equal(t, entity.CommissionPagada, paid.State)
	err = f.uc.PaySeller(ctx, "cajero-1", "com-1", dto.PayCommissionRequest{
		Amount: decimal.NewFromInt(1000), RegisterID: "reg-1",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestPayCollector(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	commission := &entity.CollectorCommission{
		ID: "com-cob-1", PaymentID: "pago-1", CollectorID: "collector-1", ConfigID: "cfg-1",
		Accrued: decimal.NewFromInt(1500), Paid: decimal.Zero, State: entity.CommissionPendiente,
	}
	require.NoError(t, f.repos.CollectorCommission.Create(commission))

	require.NoError(t, f.uc.PayCollector(ctx, "cajero-1", "com-cob-1", dto.PayCommissionRequest{
		Amount: decimal.NewFromInt(1500), RegisterID: "reg-1",
	}))
	paid, err := f.repos.CollectorCommission.GetByID("com-cob-1")
	require.NoError(t, err)
	assert.Equal(t, entity.CommissionPagada, paid.State)
	assert.True(t, f.registerBalance(t).Equal(decimal.NewFromInt(98500)))

	// Una comisión anulada no se liquida.
	annulled := &entity.CollectorCommission{
		ID: "com-cob-2", PaymentID: "pago-2", CollectorID: "collector-1", ConfigID: "cfg-1",
		Accrued: decimal.Zero, Paid: decimal.Zero, State: entity.CommissionAnulada,
	}
	require.NoError(t, f.repos.CollectorCommission.Create(annulled))
	err = f.uc.PayCollector(ctx, "cajero-1", "com-cob-2", dto.PayCommissionRequest{
		Amount: decimal.NewFromInt(100), RegisterID: "reg-1",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestRevertSellerPayment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	commission := &entity.SellerCommission{
		ID: "com-1", SaleID: "sale-1", SellerID: "seller-1", ConfigID: "cfg-1",
		Kind: entity.CommissionPctTotal, Accrued: decimal.NewFromInt(10000),
		Paid: decimal.Zero, State: entity.CommissionPendiente,
		Notes: "Devengada en venta sale-1",
	}
	require.NoError(t, f.repos.SellerCommissions.Create(commission))

	// Una liquidación parcial no se revierte: se completa o se corrige
	// liquidando el resto.
	require.NoError(t, f.uc.PaySeller(ctx, "cajero-1", "com-1", dto.PayCommissionRequest{
		Amount: decimal.NewFromInt(4000), RegisterID: "reg-1",
	}))
	err := f.uc.RevertSellerPayment(ctx, "admin-1", "com-1", dto.RevertCommissionPaymentRequest{
		Motive: "arrepentimiento", RegisterID: "reg-1",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	require.NoError(t, f.uc.PaySeller(ctx, "cajero-1", "com-1", dto.PayCommissionRequest{
		Amount: decimal.NewFromInt(6000), RegisterID: "reg-1",
	}))
	require.NoError(t, f.uc.RevertSellerPayment(ctx, "admin-1", "com-1", dto.RevertCommissionPaymentRequest{
		Motive: "Liquidación errónea", RegisterID: "reg-1",
	}))

	// Caja compensada y comisión de vuelta a PENDIENTE.
	assert.True(t, f.registerBalance(t).Equal(decimal.NewFromInt(100000)))
	reverted, err := f.repos.SellerCommissions.GetByID("com-1")
	require.NoError(t, err)
	assert.True(t, reverted.Paid.IsZero())
	assert.Equal(t, entity.CommissionPendiente, reverted.State)
	// El motivo se agrega a las notas sin pisar lo anterior.
	assert.Equal(t, "Devengada en venta sale-1 | Liquidación errónea", reverted.Notes)

	// Sin liquidación vigente no hay nada que revertir.
	err = f.uc.RevertSellerPayment(ctx, "admin-1", "com-1", dto.RevertCommissionPaymentRequest{
		Motive: "otra vez", RegisterID: "reg-1",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestRevertCollectorPayment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	commission := &entity.CollectorCommission{
		ID: "com-cob-1", PaymentID: "pago-1", CollectorID: "collector-1", ConfigID: "cfg-1",
		Accrued: decimal.NewFromInt(1500), Paid: decimal.Zero, State: entity.CommissionPendiente,
	}
	require.NoError(t, f.repos.CollectorCommission.Create(commission))

	// PENDIENTE y PARCIAL no se revierten.
	err := f.uc.RevertCollectorPayment(ctx, "admin-1", "com-cob-1", dto.RevertCommissionPaymentRequest{
		Motive: "sin liquidar", RegisterID: "reg-1",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	require.NoError(t, f.uc.PayCollector(ctx, "cajero-1", "com-cob-1", dto.PayCommissionRequest{
		Amount: decimal.NewFromInt(500), RegisterID: "reg-1",
	}))
	err = f.uc.RevertCollectorPayment(ctx, "admin-1", "com-cob-1", dto.RevertCommissionPaymentRequest{
		Motive: "parcial", RegisterID: "reg-1",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	require.NoError(t, f.uc.PayCollector(ctx, "cajero-1", "com-cob-1", dto.PayCommissionRequest{
		Amount: decimal.NewFromInt(1000), RegisterID: "reg-1",
	}))
	require.NoError(t, f.uc.RevertCollectorPayment(ctx, "admin-1", "com-cob-1", dto.RevertCommissionPaymentRequest{
		Motive: "Cobro anulado", RegisterID: "reg-1",
	}))

	// Caja compensada y comisión de vuelta a PENDIENTE con el motivo anotado.
	assert.True(t, f.registerBalance(t).Equal(decimal.NewFromInt(100000)))
	reverted, err := f.repos.CollectorCommission.GetByID("com-cob-1")
	require.NoError(t, err)
	assert.True(t, reverted.Paid.IsZero())
	assert.Equal(t, entity.CommissionPendiente, reverted.State)
	assert.Equal(t, "Cobro anulado", reverted.Notes)

	// Sin motivo o sin caja es entrada inválida.
	err = f.uc.RevertCollectorPayment(ctx, "admin-1", "com-cob-1", dto.RevertCommissionPaymentRequest{
		Motive: "", RegisterID: "reg-1",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
