package numbering

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/pos-paraguay/internal/application/ports"
	"github.com/jhoicas/pos-paraguay/internal/domain"
	"github.com/jhoicas/pos-paraguay/internal/domain/entity"
)

// UseCase emite números de documento BBB-PPP-NNNNNNN desde las secuencias
// por punto de expedición. Allocate opera sobre los repos de una transacción
// en curso: el número asignado confirma o se descarta junto con la operación
// que lo pidió.
type UseCase struct {
	tx ports.TxRunner
}

// New construye el caso de uso.
func New(tx ports.TxRunner) *UseCase {
	return &UseCase{tx: tx}
}

// Allocate toma la secuencia (punto, tipo) con bloqueo de fila, devuelve el
// número formateado y avanza el contador. La secuencia RECIBO_PAGO se crea
// bajo demanda la primera vez que un punto la necesita.
func Allocate(r *ports.Repos, pointID, docType string) (string, error) {
	point, err := r.ExpeditionPoints.GetByID(pointID)
	if err != nil {
		return "", err
	}
	branch, err := r.Branches.GetByID(point.BranchID)
	if err != nil {
		return "", err
	}

	seq, err := r.Sequences.GetForUpdate(pointID, docType)
	if err != nil {
		if docType != entity.DocTypeReciboPago || !errors.Is(err, domain.ErrNotFound) {
			return "", err
		}
		seq = &entity.DocumentSequence{
			ID:                uuid.New().String(),
			ExpeditionPointID: pointID,
			DocumentType:      docType,
			Prefix:            entity.BuildPrefix(branch.Code, point.Code),
			Format:            entity.SequenceFormat,
			NextNumber:        1,
			Active:            true,
			CreatedAt:         time.Now(),
			UpdatedAt:         time.Now(),
		}
		if err := r.Sequences.Create(seq); err != nil {
			return "", err
		}
	}
	if !seq.Active {
		return "", domain.ErrInvalidState
	}

	number := seq.Render(branch.Code, point.Code, seq.NextNumber)
	seq.NextNumber++
	seq.UpdatedAt = time.Now()
	if err := r.Sequences.Update(seq); err != nil {
		return "", err
	}
	return number, nil
}

// SetNext ajusta el próximo número de una secuencia. Nunca por debajo del
// próximo vigente: retroceder duplicaría números ya emitidos.
func (uc *UseCase) SetNext(ctx context.Context, pointID, docType string, next int64) error {
	if next < 1 {
		return domain.ErrInvalidInput
	}
	return uc.tx.Run(ctx, func(r *ports.Repos) error {
		seq, err := r.Sequences.GetForUpdate(pointID, docType)
		if err != nil {
			return err
		}
		if next < seq.NextNumber {
			return domain.ErrSequenceConflict
		}
		seq.NextNumber = next
		seq.UpdatedAt = time.Now()
		return r.Sequences.Update(seq)
	})
}

// Peek devuelve el número que emitiría la próxima asignación, sin consumirlo.
func (uc *UseCase) Peek(ctx context.Context, pointID, docType string) (string, error) {
	var number string
	err := uc.tx.Run(ctx, func(r *ports.Repos) error {
		point, err := r.ExpeditionPoints.GetByID(pointID)
		if err != nil {
			return err
		}
		branch, err := r.Branches.GetByID(point.BranchID)
		if err != nil {
			return err
		}
		seq, err := r.Sequences.GetByPointAndType(pointID, docType)
		if err != nil {
			return err
		}
		number = seq.Render(branch.Code, point.Code, seq.NextNumber)
		return nil
	})
	return number, err
}
