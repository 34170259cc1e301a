package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/pos-paraguay/internal/domain"
	"github.com/jhoicas/pos-paraguay/internal/domain/entity"
	"github.com/jhoicas/pos-paraguay/internal/domain/repository"
)

var _ repository.ElectronicDocumentRepository = (*ElectronicDocumentRepo)(nil)

// ElectronicDocumentRepo implementación de ElectronicDocumentRepository sobre PostgreSQL.
type ElectronicDocumentRepo struct {
	q Querier
}

// NewElectronicDocumentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewElectronicDocumentRepository(q Querier) *ElectronicDocumentRepo {
	return &ElectronicDocumentRepo{q: q}
}

const documentColumns = `id, sale_id, state, xml, signed_xml, set_code, qr_url, pdf,
	kude_generated, attempts, errors, sent_at, accepted_at, created_at, updated_at`

func scanDocument(row pgx.Row) (*entity.ElectronicDocument, error) {
	var d entity.ElectronicDocument
	err := row.Scan(&d.ID, &d.SaleID, &d.State, &d.XML, &d.SignedXML, &d.SETCode, &d.QRURL, &d.PDF,
		&d.KudeGenerated, &d.Attempts, &d.Errors, &d.SentAt, &d.AcceptedAt, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scan electronic document: %w", err)
	}
	return &d, nil
}

func (r *ElectronicDocumentRepo) Create(d *entity.ElectronicDocument) error {
	query := `
		INSERT INTO electronic_documents (` + documentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(context.Background(), query,
		d.ID, d.SaleID, d.State, d.XML, d.SignedXML, d.SETCode, d.QRURL, d.PDF,
		d.KudeGenerated, d.Attempts, d.Errors, d.SentAt, d.AcceptedAt, d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert electronic document: %w", err)
	}
	return nil
}

func (r *ElectronicDocumentRepo) Update(d *entity.ElectronicDocument) error {
	query := `
		UPDATE electronic_documents SET state = $2, xml = $3, signed_xml = $4, set_code = $5,
			qr_url = $6, pdf = $7, kude_generated = $8, attempts = $9, errors = $10,
			sent_at = $11, accepted_at = $12, updated_at = now()
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		d.ID, d.State, d.XML, d.SignedXML, d.SETCode, d.QRURL, d.PDF, d.KudeGenerated,
		d.Attempts, d.Errors, d.SentAt, d.AcceptedAt,
	)
	if err != nil {
		return fmt.Errorf("update electronic document: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ElectronicDocumentRepo) GetByID(id string) (*entity.ElectronicDocument, error) {
	query := `SELECT ` + documentColumns + ` FROM electronic_documents WHERE id = $1`
	return scanDocument(r.q.QueryRow(context.Background(), query, id))
}

func (r *ElectronicDocumentRepo) GetBySale(saleID string) (*entity.ElectronicDocument, error) {
	query := `SELECT ` + documentColumns + ` FROM electronic_documents WHERE sale_id = $1`
	return scanDocument(r.q.QueryRow(context.Background(), query, saleID))
}

// ListPending devuelve documentos reenviables: VALIDADO siempre; ENVIADO,
// ERROR y RECHAZADO mientras queden intentos.
func (r *ElectronicDocumentRepo) ListPending(maxAttempts int) ([]*entity.ElectronicDocument, error) {
	query := `SELECT ` + documentColumns + ` FROM electronic_documents
		WHERE state = 'VALIDADO'
		   OR (state IN ('ENVIADO', 'ERROR', 'RECHAZADO') AND attempts < $1)
		ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, maxAttempts)
	if err != nil {
		return nil, fmt.Errorf("list pending documents: %w", err)
	}
	defer rows.Close()

	var out []*entity.ElectronicDocument
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
