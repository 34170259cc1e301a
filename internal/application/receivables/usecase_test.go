package receivables

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

	require.NoError(t, repos.Branches.Create(&entity.Branch{
		ID: "branch-1", CompanyID: "company-1", Code: "001", Principal: true, Active: true,
	}))
	require.NoError(t, repos.ExpeditionPoints.Create(&entity.ExpeditionPoint{
		ID: "point-1", BranchID: "branch-1", Code: "001", Active: true,
	}))
	require.NoError(t, repos.CashRegisters.Create(&entity.CashRegister{
		ID: "reg-1", ExpeditionPointID: "point-1", Name: "Caja 1",
		CurrentBalance: decimal.Zero, State: entity.RegisterCerrada,
	}))
	require.NoError(t, repos.CollectorConfigs.Create(&entity.CollectorCommissionConfig{
		ID: "cfg-1", CollectorID: "collector-1", Percentage: decimal.NewFromInt(5), Active: true,
	}))

	tx := memory.NewTxRunner(store)
	_, err := cashbox.New(tx).Open(context.Background(), "cajero-1", "reg-1", dto.OpenRegisterRequest{
		OpeningBalance: decimal.NewFromInt(100000),
	})
	require.NoError(t, err)

	return &fixture{uc: New(tx), repos: repos, tx: tx}
}

// seedCreditSale crea una venta FINALIZADA a crédito con su cronograma.
func (f *fixture) seedCreditSale(t *testing.T, total, initialEntry int64, cuotaCount, dueDay int) *entity.Sale {
	t.Helper()
	sale := &entity.Sale{
		ID: "sale-1", Number: "00001", DocumentType: entity.DocTypeFactura,
		DocumentNumber: "001-001-0000001", Condition: entity.CondicionCredito,
		CustomerID: "cust-1", SellerID: "seller-1", CashRegisterID: "reg-1",
		Date:         time.Now(),
		Total:        decimal.NewFromInt(total),
		Subtotal:     decimal.NewFromInt(total),
		InitialEntry: decimal.NewFromInt(initialEntry),
		CuotaCount:   cuotaCount,
		DueDay:       dueDay,
		State:        entity.SaleFinalizada,
	}
	require.NoError(t, f.repos.Sales.Create(sale))
	require.NoError(t, f.tx.Run(context.Background(), func(r *ports.Repos) error {
		_, err := BuildSchedule(r, sale)
		return err
	}))
	return sale
}

func TestBuildScheduleResiduoEnUltima(t *testing.T) {
	f := newFixture(t)

	// Financiado 90000 en 7 cuotas: piso 12857, residuo 6 a la última.
	sale := f.seedCreditSale(t, 100000, 10000, 7, 10)

	cuotas, err := f.repos.Cuotas.ListBySale(sale.ID)
	require.NoError(t, err)
	require.Len(t, cuotas, 8)

	sum := decimal.Zero
	for _, c := range cuotas[1:] {
		sum = sum.Add(c.Amount)
	}
	assert.True(t, sum.Equal(decimal.NewFromInt(90000)))
	for _, c := range cuotas[1 : len(cuotas)-1] {
		assert.True(t, c.Amount.Equal(decimal.NewFromInt(12857)))
	}
	assert.True(t, cuotas[len(cuotas)-1].Amount.Equal(decimal.NewFromInt(12858)))
}

func TestBuildScheduleAcotaDiaDeVencimiento(t *testing.T) {
	f := newFixture(t)

	// Día 31 se acota a 28 para que el vencimiento exista en todo mes.
	sale := f.seedCreditSale(t, 100000, 0, 2, 31)

	cuotas, err := f.repos.Cuotas.ListBySale(sale.ID)
	require.NoError(t, err)
	require.Len(t, cuotas, 2)
	for _, c := range cuotas {
		assert.Equal(t, 28, c.DueDay)
		assert.Equal(t, 28, c.DueDate.Day())
	}

	// Día fuera de rango es entrada inválida.
	bad := &entity.Sale{
		ID: "sale-bad", Condition: entity.CondicionCredito,
		Total: decimal.NewFromInt(50000), CuotaCount: 2, DueDay: 35,
		Date: time.Now(), State: entity.SaleFinalizada,
	}
	require.NoError(t, f.repos.Sales.Create(bad))
	err = f.tx.Run(context.Background(), func(r *ports.Repos) error {
		_, err := BuildSchedule(r, bad)
		return err
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestShiftDueDate(t *testing.T) {
	base := time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2026, time.February, 10, 0, 0, 0, 0, time.UTC), shiftDueDate(base, 10, 1))
	assert.Equal(t, time.Date(2026, time.April, 10, 0, 0, 0, 0, time.UTC), shiftDueDate(base, 10, 3))

	// Cruce de año.
	december := time.Date(2026, time.December, 5, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2027, time.January, 10, 0, 0, 0, 0, time.UTC), shiftDueDate(december, 10, 1))

	// Día 31 acotado a 28: febrero siempre lo tiene.
	assert.Equal(t, time.Date(2026, time.February, 28, 0, 0, 0, 0, time.UTC), shiftDueDate(base, 31, 1))
}

func TestRegisterPayment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// 2 cuotas de 50000.
	sale := f.seedCreditSale(t, 100000, 0, 2, 10)
	cuotas, err := f.repos.Cuotas.ListBySale(sale.ID)
	require.NoError(t, err)
	require.Len(t, cuotas, 2)

	payment, err := f.uc.RegisterPayment(ctx, "collector-1", cuotas[0].ID, dto.PayCuotaRequest{
		Amount:      decimal.NewFromInt(30000),
		CollectorID: "collector-1",
		RegisterID:  "reg-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "001-001-0000001", payment.ReceiptNumber)
	assert.Equal(t, entity.PagoEfectivo, payment.Method)

	// Cobro parcial: balance 20000, estado PARCIAL.
	partial, err := f.repos.Cuotas.GetByID(cuotas[0].ID)
	require.NoError(t, err)
	assert.True(t, partial.Balance.Equal(decimal.NewFromInt(20000)))
	assert.Equal(t, entity.CuotaParcial, partial.State)

	// Comisión del cobrador: 5% de 30000 = 1500.
	commissionList, err := f.repos.CollectorCommission.ListByPayment(payment.ID)
	require.NoError(t, err)
	require.Len(t, commissionList, 1)
	assert.True(t, commissionList[0].Accrued.Equal(decimal.NewFromInt(1500)))

	// Saldar el resto deja la cuota PAGADA.
	_, err = f.uc.RegisterPayment(ctx, "collector-1", cuotas[0].ID, dto.PayCuotaRequest{
		Amount:     decimal.NewFromInt(20000),
		RegisterID: "reg-1",
	})
	require.NoError(t, err)
	paid, err := f.repos.Cuotas.GetByID(cuotas[0].ID)
	require.NoError(t, err)
	assert.Equal(t, entity.CuotaPagada, paid.State)
	assert.NotNil(t, paid.PaidAt)

	// Cobrar una cuota saldada es estado inválido.
	_, err = f.uc.RegisterPayment(ctx, "collector-1", cuotas[0].ID, dto.PayCuotaRequest{
		Amount: decimal.NewFromInt(1000), RegisterID: "reg-1",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	// Cobrar más que el balance es entrada inválida.
	_, err = f.uc.RegisterPayment(ctx, "collector-1", cuotas[1].ID, dto.PayCuotaRequest{
		Amount: decimal.NewFromInt(60000), RegisterID: "reg-1",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegisterPaymentEntregaInicial(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	sale := f.seedCreditSale(t, 100000, 20000, 2, 10)
	cuotas, err := f.repos.Cuotas.ListBySale(sale.ID)
	require.NoError(t, err)
	require.True(t, cuotas[0].InitialEntry)

	// La cuota 0 es prepaga: no admite cobros.
	_, err = f.uc.RegisterPayment(ctx, "collector-1", cuotas[0].ID, dto.PayCuotaRequest{
		Amount: decimal.NewFromInt(1000), RegisterID: "reg-1",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestCancelPayment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	sale := f.seedCreditSale(t, 100000, 0, 2, 10)
	cuotas, err := f.repos.Cuotas.ListBySale(sale.ID)
	require.NoError(t, err)

	payment, err := f.uc.RegisterPayment(ctx, "collector-1", cuotas[0].ID, dto.PayCuotaRequest{
		Amount:      decimal.NewFromInt(50000),
		CollectorID: "collector-1",
		RegisterID:  "reg-1",
	})
	require.NoError(t, err)

	require.NoError(t, f.uc.CancelPayment(ctx, "admin-1", payment.ID, dto.CancelCuotaPaymentRequest{
		Motive:     "Cobro duplicado",
		RegisterID: "reg-1",
	}))

	// Balance restaurado, pago marcado, comisión anulada.
	restored, err := f.repos.Cuotas.GetByID(cuotas[0].ID)
	require.NoError(t, err)
	assert.True(t, restored.Balance.Equal(decimal.NewFromInt(50000)))
	assert.Nil(t, restored.PaidAt)

	cancelled, err := f.repos.CuotaPayments.GetByID(payment.ID)
	require.NoError(t, err)
	assert.True(t, cancelled.Cancelled)
	assert.Equal(t, "Cobro duplicado", cancelled.CancelMotive)

	commissionList, err := f.repos.CollectorCommission.ListByPayment(payment.ID)
	require.NoError(t, err)
	require.Len(t, commissionList, 1)
	assert.Equal(t, entity.CommissionAnulada, commissionList[0].State)

	// Anular dos veces es estado inválido.
	err = f.uc.CancelPayment(ctx, "admin-1", payment.ID, dto.CancelCuotaPaymentRequest{
		Motive: "otra vez", RegisterID: "reg-1",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}
