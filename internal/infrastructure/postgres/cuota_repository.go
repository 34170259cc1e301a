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

var _ repository.CuotaRepository = (*CuotaRepo)(nil)

// CuotaRepo implementación de CuotaRepository sobre PostgreSQL.
type CuotaRepo struct {
	q Querier
}

// NewCuotaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCuotaRepository(q Querier) *CuotaRepo {
	return &CuotaRepo{q: q}
}

func scanCuota(row pgx.Row) (*entity.Cuota, error) {
	var c entity.Cuota
	err := row.Scan(&c.ID, &c.SaleID, &c.Index, &c.Amount, &c.Balance, &c.DueDay, &c.DueDate,
		&c.State, &c.InitialEntry, &c.PaidAt, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scan cuota: %w", err)
	}
	return &c, nil
}

func (r *CuotaRepo) Create(c *entity.Cuota) error {
	query := `
		INSERT INTO cuotas (id, sale_id, "index", amount, balance, due_day, due_date, state,
			initial_entry, paid_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.SaleID, c.Index, c.Amount, c.Balance, c.DueDay, c.DueDate, c.State,
		c.InitialEntry, c.PaidAt, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert cuota: %w", err)
	}
	return nil
}

func (r *CuotaRepo) Update(c *entity.Cuota) error {
	query := `
		UPDATE cuotas SET amount = $2, balance = $3, state = $4, paid_at = $5, updated_at = now()
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query, c.ID, c.Amount, c.Balance, c.State, c.PaidAt)
	if err != nil {
		return fmt.Errorf("update cuota: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *CuotaRepo) GetByID(id string) (*entity.Cuota, error) {
	query := `SELECT id, sale_id, "index", amount, balance, due_day, due_date, state,
		initial_entry, paid_at, created_at, updated_at FROM cuotas WHERE id = $1`
	return scanCuota(r.q.QueryRow(context.Background(), query, id))
}

func (r *CuotaRepo) GetForUpdate(id string) (*entity.Cuota, error) {
	query := `SELECT id, sale_id, "index", amount, balance, due_day, due_date, state,
		initial_entry, paid_at, created_at, updated_at FROM cuotas WHERE id = $1 FOR UPDATE`
	return scanCuota(r.q.QueryRow(context.Background(), query, id))
}

func (r *CuotaRepo) ListBySale(saleID string) ([]*entity.Cuota, error) {
	query := `SELECT id, sale_id, "index", amount, balance, due_day, due_date, state,
		initial_entry, paid_at, created_at, updated_at FROM cuotas WHERE sale_id = $1 ORDER BY "index"`
	rows, err := r.q.Query(context.Background(), query, saleID)
	if err != nil {
		return nil, fmt.Errorf("list cuotas: %w", err)
	}
	defer rows.Close()

	var out []*entity.Cuota
	for rows.Next() {
		c, err := scanCuota(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

var _ repository.CuotaPaymentRepository = (*CuotaPaymentRepo)(nil)

// CuotaPaymentRepo implementación de CuotaPaymentRepository sobre PostgreSQL.
type CuotaPaymentRepo struct {
	q Querier
}

// NewCuotaPaymentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCuotaPaymentRepository(q Querier) *CuotaPaymentRepo {
	return &CuotaPaymentRepo{q: q}
}

const cuotaPaymentColumns = `id, cuota_id, amount, method, date, cash_register_id, actor_id,
	receipt_number, notes, cancelled, cancel_motive, cancelled_by, cancelled_at, created_at`

func (r *CuotaPaymentRepo) Create(p *entity.CuotaPayment) error {
	query := `
		INSERT INTO cuota_payments (` + cuotaPaymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.CuotaID, p.Amount, p.Method, p.Date, p.CashRegisterID, p.ActorID,
		p.ReceiptNumber, p.Notes, p.Cancelled, p.CancelMotive, p.CancelledBy, p.CancelledAt, p.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert cuota payment: %w", err)
	}
	return nil
}

func (r *CuotaPaymentRepo) Update(p *entity.CuotaPayment) error {
	query := `
		UPDATE cuota_payments SET cancelled = $2, cancel_motive = $3, cancelled_by = $4, cancelled_at = $5
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		p.ID, p.Cancelled, p.CancelMotive, p.CancelledBy, p.CancelledAt,
	)
	if err != nil {
		return fmt.Errorf("update cuota payment: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *CuotaPaymentRepo) GetByID(id string) (*entity.CuotaPayment, error) {
	query := `SELECT ` + cuotaPaymentColumns + ` FROM cuota_payments WHERE id = $1`
	var p entity.CuotaPayment
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.CuotaID, &p.Amount, &p.Method, &p.Date, &p.CashRegisterID, &p.ActorID,
		&p.ReceiptNumber, &p.Notes, &p.Cancelled, &p.CancelMotive, &p.CancelledBy, &p.CancelledAt, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get cuota payment: %w", err)
	}
	return &p, nil
}

func (r *CuotaPaymentRepo) ListByCuota(cuotaID string) ([]*entity.CuotaPayment, error) {
	query := `SELECT ` + cuotaPaymentColumns + ` FROM cuota_payments WHERE cuota_id = $1 ORDER BY date`
	rows, err := r.q.Query(context.Background(), query, cuotaID)
	if err != nil {
		return nil, fmt.Errorf("list cuota payments: %w", err)
	}
	defer rows.Close()

	var out []*entity.CuotaPayment
	for rows.Next() {
		var p entity.CuotaPayment
		if err := rows.Scan(&p.ID, &p.CuotaID, &p.Amount, &p.Method, &p.Date, &p.CashRegisterID,
			&p.ActorID, &p.ReceiptNumber, &p.Notes, &p.Cancelled, &p.CancelMotive, &p.CancelledBy,
			&p.CancelledAt, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan cuota payment: %w", err)
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}
