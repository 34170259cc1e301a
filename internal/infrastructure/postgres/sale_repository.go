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

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación de SaleRepository sobre PostgreSQL. Los detalles
// se cargan siempre junto a la venta.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

const saleColumns = `id, number, document_type, document_number, timbrado_id, condition, customer_id,
	seller_id, cash_register_id, payment_kind, date, subtotal, total, initial_entry, cuota_count,
	due_day, first_due_date, state, notes, created_at, updated_at`

const saleDetailColumns = `id, sale_id, kind, product_id, service_id, warehouse_id,
	service_warehouse_id, quantity, unit_price, iva_rate, subtotal`

func (r *SaleRepo) Create(s *entity.Sale) error {
	query := `
		INSERT INTO sales (` + saleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.Number, s.DocumentType, s.DocumentNumber, s.TimbradoID, s.Condition, s.CustomerID,
		s.SellerID, s.CashRegisterID, s.PaymentKind, s.Date, s.Subtotal, s.Total, s.InitialEntry,
		s.CuotaCount, s.DueDay, s.FirstDueDate, s.State, s.Notes, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	for _, d := range s.Details {
		_, err := r.q.Exec(context.Background(),
			`INSERT INTO sale_details (`+saleDetailColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			d.ID, d.SaleID, d.Kind, d.ProductID, d.ServiceID, d.WarehouseID,
			d.ServiceWarehouseID, d.Quantity, d.UnitPrice, d.IVARate, d.Subtotal,
		)
		if err != nil {
			return fmt.Errorf("insert sale detail: %w", err)
		}
	}
	return nil
}

func (r *SaleRepo) Update(s *entity.Sale) error {
	query := `
		UPDATE sales SET document_type = $2, document_number = $3, timbrado_id = $4, condition = $5,
			payment_kind = $6, subtotal = $7, total = $8, initial_entry = $9, cuota_count = $10,
			due_day = $11, first_due_date = $12, state = $13, notes = $14, updated_at = now()
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		s.ID, s.DocumentType, s.DocumentNumber, s.TimbradoID, s.Condition,
		s.PaymentKind, s.Subtotal, s.Total, s.InitialEntry, s.CuotaCount,
		s.DueDay, s.FirstDueDate, s.State, s.Notes,
	)
	if err != nil {
		return fmt.Errorf("update sale: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = $1`
	return r.scanWithDetails(r.q.QueryRow(context.Background(), query, id))
}

func (r *SaleRepo) GetForUpdate(id string) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = $1 FOR UPDATE`
	return r.scanWithDetails(r.q.QueryRow(context.Background(), query, id))
}

func (r *SaleRepo) GetByNumber(number string) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE number = $1`
	return r.scanWithDetails(r.q.QueryRow(context.Background(), query, number))
}

func (r *SaleRepo) scanWithDetails(row pgx.Row) (*entity.Sale, error) {
	s, err := scanSale(row)
	if err != nil {
		return nil, err
	}
	details, err := r.loadDetails(s.ID)
	if err != nil {
		return nil, err
	}
	s.Details = details
	return s, nil
}

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var s entity.Sale
	err := row.Scan(&s.ID, &s.Number, &s.DocumentType, &s.DocumentNumber, &s.TimbradoID, &s.Condition,
		&s.CustomerID, &s.SellerID, &s.CashRegisterID, &s.PaymentKind, &s.Date, &s.Subtotal, &s.Total,
		&s.InitialEntry, &s.CuotaCount, &s.DueDay, &s.FirstDueDate, &s.State, &s.Notes, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scan sale: %w", err)
	}
	return &s, nil
}

func (r *SaleRepo) loadDetails(saleID string) ([]*entity.SaleDetail, error) {
	query := `SELECT ` + saleDetailColumns + ` FROM sale_details WHERE sale_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, saleID)
	if err != nil {
		return nil, fmt.Errorf("list sale details: %w", err)
	}
	defer rows.Close()

	var out []*entity.SaleDetail
	for rows.Next() {
		var d entity.SaleDetail
		if err := rows.Scan(&d.ID, &d.SaleID, &d.Kind, &d.ProductID, &d.ServiceID, &d.WarehouseID,
			&d.ServiceWarehouseID, &d.Quantity, &d.UnitPrice, &d.IVARate, &d.Subtotal); err != nil {
			return nil, fmt.Errorf("scan sale detail: %w", err)
		}
		out = append(out, &d)
	}
	return out, rows.Err()
}

// List filtra por estado; cadena vacía lista todas.
func (r *SaleRepo) List(state string) ([]*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE state = $1 OR $1 = '' ORDER BY number`
	rows, err := r.q.Query(context.Background(), query, state)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	var out []*entity.Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, s := range out {
		details, err := r.loadDetails(s.ID)
		if err != nil {
			return nil, err
		}
		s.Details = details
	}
	return out, nil
}
