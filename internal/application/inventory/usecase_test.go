package inventory

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

func newFixture(t *testing.T) (*UseCase, *ports.Repos) {
	t.Helper()
	store := memory.NewStore()
	repos := memory.NewRepos(store)

	require.NoError(t, repos.Products.Create(&entity.Product{
		ID: "prod-1", Code: "P001", Name: "Balanceado 20kg",
		RetailPrice: decimal.NewFromInt(150000), IVARate: 10, Active: true,
		CreatedAt: time.Now(),
	}))
	require.NoError(t, repos.Warehouses.Create(&entity.Warehouse{
		ID: "wh-1", BranchID: "branch-1", Name: "Depósito Central",
		Principal: true, Active: true, CreatedAt: time.Now(),
	}))
	require.NoError(t, repos.Warehouses.Create(&entity.Warehouse{
		ID: "wh-2", BranchID: "branch-1", Name: "Depósito Sucursal",
		Active: true, CreatedAt: time.Now(),
	}))

	return New(memory.NewTxRunner(store)), repos
}

func stockOf(t *testing.T, repos *ports.Repos, productID, warehouseID string) decimal.Decimal {
	t.Helper()
	stock, err := repos.Stocks.Get(productID, warehouseID)
	require.NoError(t, err)
	return stock.Quantity
}

func TestPostMovementActualizaSaldo(t *testing.T) {
	uc, repos := newFixture(t)
	ctx := context.Background()

	m, err := uc.PostMovement(ctx, "user-1", dto.PostMovementRequest{
		ProductID: "prod-1", WarehouseID: "wh-1",
		Kind: entity.MovementEntrada, Quantity: decimal.NewFromInt(10),
		Reason: "Carga inicial",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, m.ID)
	assert.True(t, stockOf(t, repos, "prod-1", "wh-1").Equal(decimal.NewFromInt(10)))

	_, err = uc.PostMovement(ctx, "user-1", dto.PostMovementRequest{
		ProductID: "prod-1", WarehouseID: "wh-1",
		Kind: entity.MovementSalida, Quantity: decimal.NewFromInt(4),
		Reason: "Merma",
	})
	require.NoError(t, err)
	assert.True(t, stockOf(t, repos, "prod-1", "wh-1").Equal(decimal.NewFromInt(6)))
}

func TestPostMovementValidaciones(t *testing.T) {
	uc, _ := newFixture(t)
	ctx := context.Background()

	_, err := uc.PostMovement(ctx, "user-1", dto.PostMovementRequest{
		ProductID: "prod-1", WarehouseID: "wh-1",
		Kind: "REGALO", Quantity: decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.PostMovement(ctx, "user-1", dto.PostMovementRequest{
		ProductID: "prod-1", WarehouseID: "wh-1",
		Kind: entity.MovementEntrada, Quantity: decimal.NewFromInt(-3),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.PostMovement(ctx, "user-1", dto.PostMovementRequest{
		ProductID: "prod-x", WarehouseID: "wh-1",
		Kind: entity.MovementEntrada, Quantity: decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPostMovementStockInsuficiente(t *testing.T) {
	uc, repos := newFixture(t)
	ctx := context.Background()

	_, err := uc.PostMovement(ctx, "user-1", dto.PostMovementRequest{
		ProductID: "prod-1", WarehouseID: "wh-1",
		Kind: entity.MovementEntrada, Quantity: decimal.NewFromInt(5),
	})
	require.NoError(t, err)

	_, err = uc.PostMovement(ctx, "user-1", dto.PostMovementRequest{
		ProductID: "prod-1", WarehouseID: "wh-1",
		Kind: entity.MovementSalida, Quantity: decimal.NewFromInt(8),
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "5.000", stockErr.Available)
	assert.Equal(t, "8.000", stockErr.Requested)

	// El saldo no se tocó.
	assert.True(t, stockOf(t, repos, "prod-1", "wh-1").Equal(decimal.NewFromInt(5)))
}

func TestRevertMovement(t *testing.T) {
	uc, repos := newFixture(t)
	ctx := context.Background()

	original, err := uc.PostMovement(ctx, "user-1", dto.PostMovementRequest{
		ProductID: "prod-1", WarehouseID: "wh-1",
		Kind: entity.MovementEntrada, Quantity: decimal.NewFromInt(10),
	})
	require.NoError(t, err)

	compensating, err := uc.RevertMovement(ctx, "user-2", original.ID, "Carga errónea")
	require.NoError(t, err)
	assert.Equal(t, entity.MovementSalida, compensating.Kind)
	assert.True(t, compensating.Quantity.Equal(original.Quantity))
	assert.True(t, stockOf(t, repos, "prod-1", "wh-1").IsZero())

	// El original queda marcado; revertir dos veces es estado inválido.
	marked, err := repos.Movements.GetByID(original.ID)
	require.NoError(t, err)
	assert.True(t, marked.Reverted)

	_, err = uc.RevertMovement(ctx, "user-2", original.ID, "de nuevo")
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestRecomputeStock(t *testing.T) {
	uc, repos := newFixture(t)
	ctx := context.Background()

	for _, q := range []int64{10, 7} {
		_, err := uc.PostMovement(ctx, "user-1", dto.PostMovementRequest{
			ProductID: "prod-1", WarehouseID: "wh-1",
			Kind: entity.MovementEntrada, Quantity: decimal.NewFromInt(q),
		})
		require.NoError(t, err)
	}
	_, err := uc.PostMovement(ctx, "user-1", dto.PostMovementRequest{
		ProductID: "prod-1", WarehouseID: "wh-1",
		Kind: entity.MovementSalida, Quantity: decimal.NewFromInt(5),
	})
	require.NoError(t, err)

	// Corrompe el saldo materializado y lo reconstruye desde el log.
	require.NoError(t, repos.Stocks.Upsert(&entity.Stock{
		ProductID: "prod-1", WarehouseID: "wh-1", Quantity: decimal.NewFromInt(999),
	}))

	total, err := uc.RecomputeStock(ctx, "prod-1", "wh-1")
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.NewFromInt(12)))
	assert.True(t, stockOf(t, repos, "prod-1", "wh-1").Equal(decimal.NewFromInt(12)))
}

func TestTransfer(t *testing.T) {
	uc, repos := newFixture(t)
	ctx := context.Background()

	_, err := uc.PostMovement(ctx, "user-1", dto.PostMovementRequest{
		ProductID: "prod-1", WarehouseID: "wh-1",
		Kind: entity.MovementEntrada, Quantity: decimal.NewFromInt(10),
	})
	require.NoError(t, err)

	transfer, err := uc.Transfer(ctx, "user-1", dto.TransferRequest{
		OriginWarehouseID: "wh-1",
		TargetWarehouseID: "wh-2",
		Lines: []dto.TransferLineRequest{
			{ProductID: "prod-1", Quantity: decimal.NewFromInt(4)},
		},
	})
	require.NoError(t, err)

	wantRef := "TR-" + time.Now().Format("20060102") + "-001"
	assert.Equal(t, wantRef, transfer.Reference)
	assert.True(t, stockOf(t, repos, "prod-1", "wh-1").Equal(decimal.NewFromInt(6)))
	assert.True(t, stockOf(t, repos, "prod-1", "wh-2").Equal(decimal.NewFromInt(4)))

	// El correlativo del día avanza.
	second, err := uc.Transfer(ctx, "user-1", dto.TransferRequest{
		OriginWarehouseID: "wh-1",
		TargetWarehouseID: "wh-2",
		Lines: []dto.TransferLineRequest{
			{ProductID: "prod-1", Quantity: decimal.NewFromInt(1)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "TR-"+time.Now().Format("20060102")+"-002", second.Reference)
}

func TestTransferTodoONada(t *testing.T) {
	uc, repos := newFixture(t)
	ctx := context.Background()

	_, err := uc.PostMovement(ctx, "user-1", dto.PostMovementRequest{
		ProductID: "prod-1", WarehouseID: "wh-1",
		Kind: entity.MovementEntrada, Quantity: decimal.NewFromInt(3),
	})
	require.NoError(t, err)

	_, err = uc.Transfer(ctx, "user-1", dto.TransferRequest{
		OriginWarehouseID: "wh-1",
		TargetWarehouseID: "wh-2",
		Lines: []dto.TransferLineRequest{
			{ProductID: "prod-1", Quantity: decimal.NewFromInt(2)},
			{ProductID: "prod-1", Quantity: decimal.NewFromInt(5)}, // excede el saldo
		},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Nada se movió: ni la primera línea ni el registro del traslado.
	assert.True(t, stockOf(t, repos, "prod-1", "wh-1").Equal(decimal.NewFromInt(3)))
	assert.True(t, stockOf(t, repos, "prod-1", "wh-2").IsZero())

	_, err = uc.Transfer(ctx, "user-1", dto.TransferRequest{
		OriginWarehouseID: "wh-1", TargetWarehouseID: "wh-1",
		Lines: []dto.TransferLineRequest{{ProductID: "prod-1", Quantity: decimal.NewFromInt(1)}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
