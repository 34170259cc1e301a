package repository

import "github.com/jhoicas/pos-paraguay/internal/domain/entity"

// SequenceRepository persiste las secuencias de documentos.
// GetForUpdate bloquea la fila (SELECT FOR UPDATE) para que dos asignaciones
// concurrentes sobre el mismo (punto, tipo) se serialicen.
type SequenceRepository interface {
	Create(seq *entity.DocumentSequence) error
	Update(seq *entity.DocumentSequence) error
	GetByPointAndType(pointID, docType string) (*entity.DocumentSequence, error)
	GetForUpdate(pointID, docType string) (*entity.DocumentSequence, error)
	ListByPoint(pointID string) ([]*entity.DocumentSequence, error)
}

// TimbradoRepository persiste timbrados.
type TimbradoRepository interface {
	Create(t *entity.Timbrado) error
	Update(t *entity.Timbrado) error
	GetByID(id string) (*entity.Timbrado, error)
	GetByNumber(number string) (*entity.Timbrado, error)
	List() ([]*entity.Timbrado, error)
}
