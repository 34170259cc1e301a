package purchasing

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

	require.NoError(t, repos.Suppliers.Create(&entity.Supplier{
		ID: "sup-1", RUC: "80012345", DV: "7", Name: "Distribuidora del Este", Active: true,
	}))
	require.NoError(t, repos.Products.Create(&entity.Product{
		ID: "prod-1", Code: "P-001", Name: "Aceite 5W30",
		RetailPrice: decimal.NewFromInt(60000), IVARate: 10, Active: true,
	}))
	require.NoError(t, repos.Products.Create(&entity.Product{
		ID: "prod-2", Code: "P-002", Name: "Filtro de aceite",
		RetailPrice: decimal.NewFromInt(30000), IVARate: 10, Active: true,
	}))
	require.NoError(t, repos.Warehouses.Create(&entity.Warehouse{
		ID: "wh-1", BranchID: "branch-1", Name: "Depósito central", Principal: true, Active: true,
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
		OpeningBalance: decimal.NewFromInt(500000),
	})
	require.NoError(t, err)

	return &fixture{uc: New(tx), repos: repos, tx: tx}
}

func (f *fixture) createOrder(t *testing.T, condition string) *entity.PurchaseOrder {
	t.Helper()
	order, err := f.uc.CreateOrder(context.Background(), "comprador-1", dto.CreatePurchaseOrderRequest{
		SupplierID: "sup-1",
		Condition:  condition,
		Lines: []dto.PurchaseLineRequest{
			{ProductID: "prod-1", Quantity: decimal.NewFromInt(10), UnitCost: decimal.NewFromInt(40000)},
			{ProductID: "prod-2", Quantity: decimal.NewFromInt(5), UnitCost: decimal.NewFromInt(20000)},
		},
	})
	require.NoError(t, err)
	return order
}

func (f *fixture) registerBalance(t *testing.T) decimal.Decimal {
	t.Helper()
	reg, err := f.repos.CashRegisters.GetByID("reg-1")
	require.NoError(t, err)
	return reg.CurrentBalance
}

func TestCreateOrder(t *testing.T) {
	f := newFixture(t)

	order := f.createOrder(t, entity.CondicionContado)
	assert.Equal(t, "00001", order.Number)
	assert.Equal(t, entity.PurchaseBorrador, order.State)
	// 10×40000 + 5×20000
	assert.True(t, order.Total.Equal(decimal.NewFromInt(500000)))
	require.Len(t, order.Details, 2)

	second := f.createOrder(t, entity.CondicionCredito)
	assert.Equal(t, "00002", second.Number)
	assert.Equal(t, 30, second.TermDays)
}

func TestCreateOrderValidaciones(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.CreateOrder(ctx, "comprador-1", dto.CreatePurchaseOrderRequest{
		SupplierID: "sup-1", Condition: "DONACION",
		Lines: []dto.PurchaseLineRequest{{ProductID: "prod-1", Quantity: decimal.NewFromInt(1)}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.CreateOrder(ctx, "comprador-1", dto.CreatePurchaseOrderRequest{
		SupplierID: "sup-1", Condition: entity.CondicionContado,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.CreateOrder(ctx, "comprador-1", dto.CreatePurchaseOrderRequest{
		SupplierID: "sup-1", Condition: entity.CondicionContado,
		Lines: []dto.PurchaseLineRequest{
			{ProductID: "prod-1", Quantity: decimal.NewFromInt(-2), UnitCost: decimal.NewFromInt(100)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestApproveYCancel(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	order := f.createOrder(t, entity.CondicionContado)
	require.NoError(t, f.uc.Approve(ctx, order.ID))

	approved, err := f.repos.PurchaseOrders.GetByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseAprobada, approved.State)

	// Aprobar dos veces es estado inválido.
	assert.ErrorIs(t, f.uc.Approve(ctx, order.ID), domain.ErrInvalidState)

	// Una orden aprobada aún puede cancelarse.
	require.NoError(t, f.uc.Cancel(ctx, order.ID))
	cancelled, err := f.repos.PurchaseOrders.GetByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseCancelada, cancelled.State)

	assert.ErrorIs(t, f.uc.Cancel(ctx, order.ID), domain.ErrInvalidState)
}

func TestReceiveContado(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	order := f.createOrder(t, entity.CondicionContado)
	require.NoError(t, f.uc.Approve(ctx, order.ID))

	reception, err := f.uc.Receive(ctx, "deposito-1", order.ID, "reg-1", dto.ReceivePurchaseRequest{
		WarehouseID: "wh-1",
	})
	require.NoError(t, err)
	assert.Equal(t, order.ID, reception.OrderID)

	// Mercadería ingresada y último precio de compra actualizado.
	stock, err := f.repos.Stocks.Get("prod-1", "wh-1")
	require.NoError(t, err)
	assert.True(t, stock.Quantity.Equal(decimal.NewFromInt(10)))
	prod, err := f.repos.Products.GetByID("prod-1")
	require.NoError(t, err)
	assert.True(t, prod.PurchasePrice.Equal(decimal.NewFromInt(40000)))

	// Contado liquida por caja: 500000 - 500000.
	assert.True(t, f.registerBalance(t).IsZero())

	paid, err := f.repos.PurchaseOrders.GetByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PurchasePagada, paid.State)
	require.NotNil(t, paid.ReceptionDate)

	// Recibir dos veces es estado inválido.
	_, err = f.uc.Receive(ctx, "deposito-1", order.ID, "reg-1", dto.ReceivePurchaseRequest{WarehouseID: "wh-1"})
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestReceiveCreditoAbreCuentaAPagar(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	order := f.createOrder(t, entity.CondicionCredito)
	require.NoError(t, f.uc.Approve(ctx, order.ID))

	_, err := f.uc.Receive(ctx, "deposito-1", order.ID, "", dto.ReceivePurchaseRequest{
		WarehouseID: "wh-1",
	})
	require.NoError(t, err)

	payable, err := f.repos.Payables.GetByOrder(order.ID)
	require.NoError(t, err)
	assert.True(t, payable.Balance.Equal(decimal.NewFromInt(500000)))
	assert.Equal(t, entity.PayablePendiente, payable.State)

	received, err := f.repos.PurchaseOrders.GetByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseRecibida, received.State)

	// El crédito no toca la caja.
	assert.True(t, f.registerBalance(t).Equal(decimal.NewFromInt(500000)))
}

func TestReceiveParcial(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	order := f.createOrder(t, entity.CondicionCredito)
	require.NoError(t, f.uc.Approve(ctx, order.ID))

	// Solo la primera línea, y solo 4 de 10.
	_, err := f.uc.Receive(ctx, "deposito-1", order.ID, "", dto.ReceivePurchaseRequest{
		WarehouseID: "wh-1",
		Lines: []dto.ReceiveLineRequest{
			{DetailID: order.Details[0].ID, Quantity: decimal.NewFromInt(4)},
		},
	})
	require.NoError(t, err)

	stock, err := f.repos.Stocks.Get("prod-1", "wh-1")
	require.NoError(t, err)
	assert.True(t, stock.Quantity.Equal(decimal.NewFromInt(4)))
	other, err := f.repos.Stocks.Get("prod-2", "wh-1")
	require.NoError(t, err)
	assert.True(t, other.Quantity.IsZero())
}

func TestPaySupplier(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	order := f.createOrder(t, entity.CondicionCredito)
	require.NoError(t, f.uc.Approve(ctx, order.ID))
	_, err := f.uc.Receive(ctx, "deposito-1", order.ID, "", dto.ReceivePurchaseRequest{WarehouseID: "wh-1"})
	require.NoError(t, err)
	payable, err := f.repos.Payables.GetByOrder(order.ID)
	require.NoError(t, err)

	// Pago parcial de 200000.
	payment, err := f.uc.PaySupplier(ctx, "cajero-1", payable.ID, dto.PaySupplierRequest{
		Amount: decimal.NewFromInt(200000), RegisterID: "reg-1",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.PagoEfectivo, payment.Method)

	partial, err := f.repos.Payables.GetByID(payable.ID)
	require.NoError(t, err)
	assert.True(t, partial.Balance.Equal(decimal.NewFromInt(300000)))
	assert.True(t, f.registerBalance(t).Equal(decimal.NewFromInt(300000)))

	// Pagar más que el balance es entrada inválida.
	_, err = f.uc.PaySupplier(ctx, "cajero-1", payable.ID, dto.PaySupplierRequest{
		Amount: decimal.NewFromInt(400000), RegisterID: "reg-1",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Saldar el resto marca la orden PAGADA.
	_, err = f.uc.PaySupplier(ctx, "cajero-1", payable.ID, dto.PaySupplierRequest{
		Amount: decimal.NewFromInt(300000), RegisterID: "reg-1",
	})
	require.NoError(t, err)
	paidOrder, err := f.repos.PurchaseOrders.GetByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PurchasePagada, paidOrder.State)

	// La cuenta saldada no admite más pagos.
	_, err = f.uc.PaySupplier(ctx, "cajero-1", payable.ID, dto.PaySupplierRequest{
		Amount: decimal.NewFromInt(1000), RegisterID: "reg-1",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestRevertSupplierPayment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	order := f.createOrder(t, entity.CondicionCredito)
	require.NoError(t, f.uc.Approve(ctx, order.ID))
	_, err := f.uc.Receive(ctx, "deposito-1", order.ID, "", dto.ReceivePurchaseRequest{WarehouseID: "wh-1"})
	require.NoError(t, err)
	payable, err := f.repos.Payables.GetByOrder(order.ID)
	require.NoError(t, err)

	payment, err := f.uc.PaySupplier(ctx, "cajero-1", payable.ID, dto.PaySupplierRequest{
		Amount: decimal.NewFromInt(500000), RegisterID: "reg-1",
	})
	require.NoError(t, err)
	assert.True(t, f.registerBalance(t).IsZero())

	require.NoError(t, f.uc.RevertSupplierPayment(ctx, "admin-1", payment.ID, "Pago duplicado", "reg-1"))

	// Balance restituido, caja compensada, orden vuelve a RECIBIDA.
	restored, err := f.repos.Payables.GetByID(payable.ID)
	require.NoError(t, err)
	assert.True(t, restored.Balance.Equal(decimal.NewFromInt(500000)))
	assert.True(t, f.registerBalance(t).Equal(decimal.NewFromInt(500000)))

	backOrder, err := f.repos.PurchaseOrders.GetByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseRecibida, backOrder.State)

	cancelled, err := f.repos.SupplierPayments.GetByID(payment.ID)
	require.NoError(t, err)
	assert.True(t, cancelled.Cancelled)
	assert.Equal(t, "Pago duplicado", cancelled.CancelMotive)

	// El mismo pago no se anula dos veces.
	err = f.uc.RevertSupplierPayment(ctx, "admin-1", payment.ID, "otra vez", "reg-1")
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	// Sin motivo es entrada inválida.
	err = f.uc.RevertSupplierPayment(ctx, "admin-1", payment.ID, "", "reg-1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
