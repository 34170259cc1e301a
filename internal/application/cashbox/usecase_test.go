package cashbox

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

	require.NoError(t, repos.ExpeditionPoints.Create(&entity.ExpeditionPoint{
		ID: "point-1", BranchID: "branch-1", Code: "001", Active: true, CreatedAt: time.Now(),
	}))

	return New(memory.NewTxRunner(store)), repos
}

func TestCicloAperturaCierre(t *testing.T) {
	uc, repos := newFixture(t)
	ctx := context.Background()

	register, err := uc.CreateRegister(ctx, "point-1", "Caja 1")
	require.NoError(t, err)
	assert.Equal(t, entity.RegisterCerrada, register.State)

	session, err := uc.Open(ctx, "cajero-1", register.ID, dto.OpenRegisterRequest{
		OpeningBalance: decimal.NewFromInt(100000),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.SessionAbierta, session.State)

	// Segunda apertura sobre caja abierta es estado inválido.
	_, err = uc.Open(ctx, "cajero-1", register.ID, dto.OpenRegisterRequest{
		OpeningBalance: decimal.NewFromInt(50000),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	_, err = uc.PostMovement(ctx, "cajero-1", register.ID, dto.CashMovementRequest{
		Kind: entity.CashIngreso, Amount: decimal.NewFromInt(80000),
		Concept: "Cobro mostrador", Comprobante: "REC-001",
	})
	require.NoError(t, err)
	_, err = uc.PostMovement(ctx, "cajero-1", register.ID, dto.CashMovementRequest{
		Kind: entity.CashEgreso, Amount: decimal.NewFromInt(30000),
		Concept: "Compra insumos", Comprobante: "EGR-001",
	})
	require.NoError(t, err)

	// Teórico: 100000 + 80000 − 30000 = 150000; declarado 148000 → diferencia −2000.
	resp, err := uc.Close(ctx, "cajero-1", register.ID, dto.CloseRegisterRequest{
		ClosingBalance: decimal.NewFromInt(148000),
	})
	require.NoError(t, err)
	assert.True(t, resp.TotalIn.Equal(decimal.NewFromInt(80000)))
	assert.True(t, resp.TotalOut.Equal(decimal.NewFromInt(30000)))
	assert.True(t, resp.Theoretical.Equal(decimal.NewFromInt(150000)))
	assert.True(t, resp.Difference.Equal(decimal.NewFromInt(-2000)))

	closed, err := repos.CashRegisters.GetByID(register.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RegisterCerrada, closed.State)
	assert.True(t, closed.CurrentBalance.IsZero())

	// Cerrar una caja cerrada falla.
	_, err = uc.Close(ctx, "cajero-1", register.ID, dto.CloseRegisterRequest{
		ClosingBalance: decimal.Zero,
	})
	assert.ErrorIs(t, err, domain.ErrRegisterClosed)
}

func TestPostMovementCajaCerrada(t *testing.T) {
	uc, _ := newFixture(t)
	ctx := context.Background()

	register, err := uc.CreateRegister(ctx, "point-1", "Caja 1")
	require.NoError(t, err)

	_, err = uc.PostMovement(ctx, "cajero-1", register.ID, dto.CashMovementRequest{
		Kind: entity.CashIngreso, Amount: decimal.NewFromInt(1000), Comprobante: "REC-001",
	})
	assert.ErrorIs(t, err, domain.ErrRegisterClosed)
}

func TestPostMovementComprobanteDuplicado(t *testing.T) {
	uc, _ := newFixture(t)
	ctx := context.Background()

	register, err := uc.CreateRegister(ctx, "point-1", "Caja 1")
	require.NoError(t, err)
	_, err = uc.Open(ctx, "cajero-1", register.ID, dto.OpenRegisterRequest{
		OpeningBalance: decimal.NewFromInt(10000),
	})
	require.NoError(t, err)

	_, err = uc.PostMovement(ctx, "cajero-1", register.ID, dto.CashMovementRequest{
		Kind: entity.CashIngreso, Amount: decimal.NewFromInt(5000), Comprobante: "REC-001",
	})
	require.NoError(t, err)

	_, err = uc.PostMovement(ctx, "cajero-1", register.ID, dto.CashMovementRequest{
		Kind: entity.CashIngreso, Amount: decimal.NewFromInt(7000), Comprobante: "REC-001",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateComprobante)
}

func TestPostMovementEgresoSinFondos(t *testing.T) {
	uc, repos := newFixture(t)
	ctx := context.Background()

	register, err := uc.CreateRegister(ctx, "point-1", "Caja 1")
	require.NoError(t, err)
	_, err = uc.Open(ctx, "cajero-1", register.ID, dto.OpenRegisterRequest{
		OpeningBalance: decimal.NewFromInt(10000),
	})
	require.NoError(t, err)

	_, err = uc.PostMovement(ctx, "cajero-1", register.ID, dto.CashMovementRequest{
		Kind: entity.CashEgreso, Amount: decimal.NewFromInt(15000), Comprobante: "EGR-001",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	current, err := repos.CashRegisters.GetByID(register.ID)
	require.NoError(t, err)
	assert.True(t, current.CurrentBalance.Equal(decimal.NewFromInt(10000)))
}
