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

var _ repository.SequenceRepository = (*SequenceRepo)(nil)

// SequenceRepo implementación de SequenceRepository sobre PostgreSQL.
// GetForUpdate bloquea la fila del contador (SELECT FOR UPDATE) para que
// dos asignaciones concurrentes sobre el mismo (punto, tipo) se serialicen.
type SequenceRepo struct {
	q Querier
}

// NewSequenceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSequenceRepository(q Querier) *SequenceRepo {
	return &SequenceRepo{q: q}
}

const sequenceColumns = `id, expedition_point_id, document_type, prefix, format, next_number, active, created_at, updated_at`

func scanSequence(row pgx.Row) (*entity.DocumentSequence, error) {
	var s entity.DocumentSequence
	err := row.Scan(&s.ID, &s.ExpeditionPointID, &s.DocumentType, &s.Prefix, &s.Format,
		&s.NextNumber, &s.Active, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scan sequence: %w", err)
	}
	return &s, nil
}

func (r *SequenceRepo) Create(seq *entity.DocumentSequence) error {
	query := `
		INSERT INTO document_sequences (` + sequenceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		seq.ID, seq.ExpeditionPointID, seq.DocumentType, seq.Prefix, seq.Format,
		seq.NextNumber, seq.Active, seq.CreatedAt, seq.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert sequence: %w", err)
	}
	return nil
}

func (r *SequenceRepo) Update(seq *entity.DocumentSequence) error {
	query := `
		UPDATE document_sequences SET next_number = $2, active = $3, updated_at = now()
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query, seq.ID, seq.NextNumber, seq.Active)
	if err != nil {
		return fmt.Errorf("update sequence: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *SequenceRepo) GetByPointAndType(pointID, docType string) (*entity.DocumentSequence, error) {
	query := `SELECT ` + sequenceColumns + ` FROM document_sequences
		WHERE expedition_point_id = $1 AND document_type = $2`
	return scanSequence(r.q.QueryRow(context.Background(), query, pointID, docType))
}

func (r *SequenceRepo) GetForUpdate(pointID, docType string) (*entity.DocumentSequence, error) {
	query := `SELECT ` + sequenceColumns + ` FROM document_sequences
		WHERE expedition_point_id = $1 AND document_type = $2
		FOR UPDATE`
	return scanSequence(r.q.QueryRow(context.Background(), query, pointID, docType))
}

func (r *SequenceRepo) ListByPoint(pointID string) ([]*entity.DocumentSequence, error) {
	query := `SELECT ` + sequenceColumns + ` FROM document_sequences
		WHERE expedition_point_id = $1 ORDER BY document_type`
	rows, err := r.q.Query(context.Background(), query, pointID)
	if err != nil {
		return nil, fmt.Errorf("list sequences: %w", err)
	}
	defer rows.Close()

	var out []*entity.DocumentSequence
	for rows.Next() {
		var s entity.DocumentSequence
		if err := rows.Scan(&s.ID, &s.ExpeditionPointID, &s.DocumentType, &s.Prefix, &s.Format,
			&s.NextNumber, &s.Active, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan sequence: %w", err)
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}

var _ repository.TimbradoRepository = (*TimbradoRepo)(nil)

// TimbradoRepo implementación de TimbradoRepository sobre PostgreSQL.
type TimbradoRepo struct {
	q Querier
}

// NewTimbradoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTimbradoRepository(q Querier) *TimbradoRepo {
	return &TimbradoRepo{q: q}
}

const timbradoColumns = `id, number, issue_kind, valid_from, valid_to, created_at, updated_at`

func scanTimbrado(row pgx.Row) (*entity.Timbrado, error) {
	var t entity.Timbrado
	err := row.Scan(&t.ID, &t.Number, &t.IssueKind, &t.ValidFrom, &t.ValidTo, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scan timbrado: %w", err)
	}
	return &t, nil
}

func (r *TimbradoRepo) Create(t *entity.Timbrado) error {
	query := `
		INSERT INTO timbrados (` + timbradoColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		t.ID, t.Number, t.IssueKind, t.ValidFrom, t.ValidTo, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert timbrado: %w", err)
	}
	return nil
}

func (r *TimbradoRepo) Update(t *entity.Timbrado) error {
	query := `
		UPDATE timbrados SET issue_kind = $2, valid_from = $3, valid_to = $4, updated_at = now()
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query, t.ID, t.IssueKind, t.ValidFrom, t.ValidTo)
	if err != nil {
		return fmt.Errorf("update timbrado: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *TimbradoRepo) GetByID(id string) (*entity.Timbrado, error) {
	query := `SELECT ` + timbradoColumns + ` FROM timbrados WHERE id = $1`
	return scanTimbrado(r.q.QueryRow(context.Background(), query, id))
}

func (r *TimbradoRepo) GetByNumber(number string) (*entity.Timbrado, error) {
	query := `SELECT ` + timbradoColumns + ` FROM timbrados WHERE number = $1`
	return scanTimbrado(r.q.QueryRow(context.Background(), query, number))
}

func (r *TimbradoRepo) List() ([]*entity.Timbrado, error) {
	query := `SELECT ` + timbradoColumns + ` FROM timbrados ORDER BY valid_from DESC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list timbrados: %w", err)
	}
	defer rows.Close()

	var out []*entity.Timbrado
	for rows.Next() {
		var t entity.Timbrado
		if err := rows.Scan(&t.ID, &t.Number, &t.IssueKind, &t.ValidFrom, &t.ValidTo, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan timbrado: %w", err)
		}
		out = append(out, &t)
	}
	return out, rows.Err()
}
