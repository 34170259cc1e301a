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

var _ repository.CreditNoteRepository = (*CreditNoteRepo)(nil)

// CreditNoteRepo implementación de CreditNoteRepository sobre PostgreSQL.
// Los detalles se cargan siempre junto a la nota.
type CreditNoteRepo struct {
	q Querier
}

// NewCreditNoteRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCreditNoteRepository(q Querier) *CreditNoteRepo {
	return &CreditNoteRepo{q: q}
}

const noteColumns = `id, number, document_number, sale_id, timbrado_id, type, reason, subtotal,
	total, state, cash_register_id, created_by, date, created_at, updated_at`

const noteDetailColumns = `id, credit_note_id, sale_detail_id, quantity, unit_price, subtotal`

func (r *CreditNoteRepo) Create(n *entity.CreditNote) error {
	query := `
		INSERT INTO credit_notes (` + noteColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(context.Background(), query,
		n.ID, n.Number, n.DocumentNumber, n.SaleID, n.TimbradoID, n.Type, n.Reason, n.Subtotal,
		n.Total, n.State, n.CashRegisterID, n.CreatedBy, n.Date, n.CreatedAt, n.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert credit note: %w", err)
	}
	for _, d := range n.Details {
		_, err := r.q.Exec(context.Background(),
			`INSERT INTO credit_note_details (`+noteDetailColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			d.ID, d.CreditNoteID, d.SaleDetailID, d.Quantity, d.UnitPrice, d.Subtotal,
		)
		if err != nil {
			return fmt.Errorf("insert credit note detail: %w", err)
		}
	}
	return nil
}

func (r *CreditNoteRepo) Update(n *entity.CreditNote) error {
	query := `
		UPDATE credit_notes SET document_number = $2, timbrado_id = $3, type = $4, reason = $5,
			subtotal = $6, total = $7, state = $8, updated_at = now()
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		n.ID, n.DocumentNumber, n.TimbradoID, n.Type, n.Reason, n.Subtotal, n.Total, n.State,
	)
	if err != nil {
		return fmt.Errorf("update credit note: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *CreditNoteRepo) GetByID(id string) (*entity.CreditNote, error) {
	query := `SELECT ` + noteColumns + ` FROM credit_notes WHERE id = $1`
	return r.scanWithDetails(r.q.QueryRow(context.Background(), query, id))
}

func (r *CreditNoteRepo) GetForUpdate(id string) (*entity.CreditNote, error) {
	query := `SELECT ` + noteColumns + ` FROM credit_notes WHERE id = $1 FOR UPDATE`
	return r.scanWithDetails(r.q.QueryRow(context.Background(), query, id))
}

func (r *CreditNoteRepo) scanWithDetails(row pgx.Row) (*entity.CreditNote, error) {
	n, err := scanNote(row)
	if err != nil {
		return nil, err
	}
	details, err := r.loadDetails(n.ID)
	if err != nil {
		return nil, err
	}
	n.Details = details
	return n, nil
}

func scanNote(row pgx.Row) (*entity.CreditNote, error) {
	var n entity.CreditNote
	err := row.Scan(&n.ID, &n.Number, &n.DocumentNumber, &n.SaleID, &n.TimbradoID, &n.Type,
		&n.Reason, &n.Subtotal, &n.Total, &n.State, &n.CashRegisterID, &n.CreatedBy, &n.Date,
		&n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scan credit note: %w", err)
	}
	return &n, nil
}

func (r *CreditNoteRepo) loadDetails(noteID string) ([]*entity.CreditNoteDetail, error) {
	query := `SELECT ` + noteDetailColumns + ` FROM credit_note_details WHERE credit_note_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, noteID)
	if err != nil {
		return nil, fmt.Errorf("list credit note details: %w", err)
	}
	defer rows.Close()

	var out []*entity.CreditNoteDetail
	for rows.Next() {
		var d entity.CreditNoteDetail
		if err := rows.Scan(&d.ID, &d.CreditNoteID, &d.SaleDetailID, &d.Quantity, &d.UnitPrice, &d.Subtotal); err != nil {
			return nil, fmt.Errorf("scan credit note detail: %w", err)
		}
		out = append(out, &d)
	}
	return out, rows.Err()
}

func (r *CreditNoteRepo) ListBySale(saleID string) ([]*entity.CreditNote, error) {
	query := `SELECT ` + noteColumns + ` FROM credit_notes WHERE sale_id = $1 ORDER BY number`
	rows, err := r.q.Query(context.Background(), query, saleID)
	if err != nil {
		return nil, fmt.Errorf("list credit notes: %w", err)
	}
	defer rows.Close()

	var out []*entity.CreditNote
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, n := range out {
		details, err := r.loadDetails(n.ID)
		if err != nil {
			return nil, err
		}
		n.Details = details
	}
	return out, nil
}
