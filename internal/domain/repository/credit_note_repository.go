package repository

import "github.com/jhoicas/pos-paraguay/internal/domain/entity"

// CreditNoteRepository persiste notas de crédito con sus detalles.
type CreditNoteRepository interface {
	Create(note *entity.CreditNote) error
	Update(note *entity.CreditNote) error
	GetByID(id string) (*entity.CreditNote, error)
	GetForUpdate(id string) (*entity.CreditNote, error)
	ListBySale(saleID string) ([]*entity.CreditNote, error)
}
