package numbering

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-paraguay/internal/application/ports"
	"github.com/jhoicas/pos-paraguay/internal/domain"
	"github.com/jhoicas/pos-paraguay/internal/domain/entity"
	"github.com/jhoicas/pos-paraguay/internal/infrastructure/memory"
)

func newFixture(t *testing.T) (*UseCase, *memory.TxRunner, *ports.Repos) {
	t.Helper()
	store := memory.NewStore()
	repos := memory.NewRepos(store)

	require.NoError(t, repos.Branches.Create(&entity.Branch{
		ID: "branch-1", CompanyID: "company-1", Code: "001", Name: "Casa Matriz",
		Principal: true, Active: true, CreatedAt: time.Now(),
	}))
	require.NoError(t, repos.ExpeditionPoints.Create(&entity.ExpeditionPoint{
		ID: "point-1", BranchID: "branch-1", Code: "002", Active: true, CreatedAt: time.Now(),
	}))
	require.NoError(t, repos.Sequences.Create(&entity.DocumentSequence{
		ID: "seq-factura", ExpeditionPointID: "point-1", DocumentType: entity.DocTypeFactura,
		Prefix: "001-002", Format: entity.SequenceFormat, NextNumber: 1, Active: true,
	}))

	tx := memory.NewTxRunner(store)
	return New(tx), tx, repos
}

func TestAllocateFormatoYMonotonia(t *testing.T) {
	_, tx, _ := newFixture(t)

	var first, second string
	err := tx.Run(context.Background(), func(r *ports.Repos) error {
		var err error
		if first, err = Allocate(r, "point-1", entity.DocTypeFactura); err != nil {
			return err
		}
		second, err = Allocate(r, "point-1", entity.DocTypeFactura)
		return err
	})
	require.NoError(t, err)

	assert.Equal(t, "001-002-0000001", first)
	assert.Equal(t, "001-002-0000002", second)
}

func TestAllocateSecuenciaInactiva(t *testing.T) {
	_, tx, repos := newFixture(t)

	seq, err := repos.Sequences.GetByPointAndType("point-1", entity.DocTypeFactura)
	require.NoError(t, err)
	seq.Active = false
	require.NoError(t, repos.Sequences.Update(seq))

	err = tx.Run(context.Background(), func(r *ports.Repos) error {
		_, err := Allocate(r, "point-1", entity.DocTypeFactura)
		return err
	})
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestAllocateReciboPagoBajoDemanda(t *testing.T) {
	_, tx, repos := newFixture(t)

	// Sin secuencia previa: RECIBO_PAGO se crea en la primera asignación.
	var number string
	err := tx.Run(context.Background(), func(r *ports.Repos) error {
		var err error
		number, err = Allocate(r, "point-1", entity.DocTypeReciboPago)
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, "001-002-0000001", number)

	seq, err := repos.Sequences.GetByPointAndType("point-1", entity.DocTypeReciboPago)
	require.NoError(t, err)
	assert.Equal(t, int64(2), seq.NextNumber)

	// Los demás tipos no se crean bajo demanda.
	err = tx.Run(context.Background(), func(r *ports.Repos) error {
		_, err := Allocate(r, "point-1", entity.DocTypeNotaCredito)
		return err
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAllocateDescartaConTransaccion(t *testing.T) {
	uc, tx, _ := newFixture(t)

	sentinel := domain.ErrInvalidInput
	err := tx.Run(context.Background(), func(r *ports.Repos) error {
		if _, err := Allocate(r, "point-1", entity.DocTypeFactura); err != nil {
			return err
		}
		return sentinel
	})
	require.ErrorIs(t, err, sentinel)

	// El rollback devolvió el contador: la próxima emisión repite el número.
	number, err := uc.Peek(context.Background(), "point-1", entity.DocTypeFactura)
	require.NoError(t, err)
	assert.Equal(t, "001-002-0000001", number)
}

func TestSetNext(t *testing.T) {
	uc, tx, _ := newFixture(t)
	ctx := context.Background()

	require.NoError(t, uc.SetNext(ctx, "point-1", entity.DocTypeFactura, 500))

	number, err := uc.Peek(ctx, "point-1", entity.DocTypeFactura)
	require.NoError(t, err)
	assert.Equal(t, "001-002-0000500", number)

	// Retroceder por debajo del próximo vigente duplicaría números emitidos.
	err = tx.Run(ctx, func(r *ports.Repos) error {
		_, err := Allocate(r, "point-1", entity.DocTypeFactura)
		return err
	})
	require.NoError(t, err)
	assert.ErrorIs(t, uc.SetNext(ctx, "point-1", entity.DocTypeFactura, 100), domain.ErrSequenceConflict)

	assert.ErrorIs(t, uc.SetNext(ctx, "point-1", entity.DocTypeFactura, 0), domain.ErrInvalidInput)
}
