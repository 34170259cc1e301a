package repository

import "github.com/jhoicas/pos-paraguay/internal/domain/entity"

// ElectronicDocumentRepository persiste documentos electrónicos SIFEN.
type ElectronicDocumentRepository interface {
	Create(doc *entity.ElectronicDocument) error
	Update(doc *entity.ElectronicDocument) error
	GetByID(id string) (*entity.ElectronicDocument, error)
	GetBySale(saleID string) (*entity.ElectronicDocument, error)
	// ListPending devuelve documentos reenviables (VALIDADO, ENVIADO o
	// ERROR con intentos por debajo del máximo).
	ListPending(maxAttempts int) ([]*entity.ElectronicDocument, error)
}
