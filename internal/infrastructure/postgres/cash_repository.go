package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-paraguay/internal/domain"
	"github.com/jhoicas/pos-paraguay/internal/domain/entity"
	"github.com/jhoicas/pos-paraguay/internal/domain/repository"
)

var _ repository.CashRegisterRepository = (*CashRegisterRepo)(nil)

// CashRegisterRepo implementación de CashRegisterRepository sobre PostgreSQL.
// GetForUpdate bloquea la fila para serializar las actualizaciones del saldo.
type CashRegisterRepo struct {
	q Querier
}

// NewCashRegisterRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCashRegisterRepository(q Querier) *CashRegisterRepo {
	return &CashRegisterRepo{q: q}
}

const registerColumns = `id, expedition_point_id, name, current_balance, state, responsible_id,
	opened_at, closed_at, created_at, updated_at`

func scanRegister(row pgx.Row) (*entity.CashRegister, error) {
	var c entity.CashRegister
	err := row.Scan(&c.ID, &c.ExpeditionPointID, &c.Name, &c.CurrentBalance, &c.State,
		&c.ResponsibleID, &c.OpenedAt, &c.ClosedAt, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scan cash register: %w", err)
	}
	return &c, nil
}

func (r *CashRegisterRepo) Create(c *entity.CashRegister) error {
	query := `
		INSERT INTO cash_registers (` + registerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.ExpeditionPointID, c.Name, c.CurrentBalance, c.State, c.ResponsibleID,
		c.OpenedAt, c.ClosedAt, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert cash register: %w", err)
	}
	return nil
}

func (r *CashRegisterRepo) Update(c *entity.CashRegister) error {
	query := `
		UPDATE cash_registers SET name = $2, current_balance = $3, state = $4,
			responsible_id = $5, opened_at = $6, closed_at = $7, updated_at = now()
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		c.ID, c.Name, c.CurrentBalance, c.State, c.ResponsibleID, c.OpenedAt, c.ClosedAt,
	)
	if err != nil {
		return fmt.Errorf("update cash register: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *CashRegisterRepo) GetByID(id string) (*entity.CashRegister, error) {
	query := `SELECT ` + registerColumns + ` FROM cash_registers WHERE id = $1`
	return scanRegister(r.q.QueryRow(context.Background(), query, id))
}

func (r *CashRegisterRepo) GetForUpdate(id string) (*entity.CashRegister, error) {
	query := `SELECT ` + registerColumns + ` FROM cash_registers WHERE id = $1 FOR UPDATE`
	return scanRegister(r.q.QueryRow(context.Background(), query, id))
}

func (r *CashRegisterRepo) List() ([]*entity.CashRegister, error) {
	query := `SELECT ` + registerColumns + ` FROM cash_registers ORDER BY name`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list cash registers: %w", err)
	}
	defer rows.Close()

	var out []*entity.CashRegister
	for rows.Next() {
		var c entity.CashRegister
		if err := rows.Scan(&c.ID, &c.ExpeditionPointID, &c.Name, &c.CurrentBalance, &c.State,
			&c.ResponsibleID, &c.OpenedAt, &c.ClosedAt, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan cash register: %w", err)
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

var _ repository.CashSessionRepository = (*CashSessionRepo)(nil)

// CashSessionRepo implementación de CashSessionRepository sobre PostgreSQL.
type CashSessionRepo struct {
	q Querier
}

// NewCashSessionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCashSessionRepository(q Querier) *CashSessionRepo {
	return &CashSessionRepo{q: q}
}

const sessionColumns = `id, register_id, responsible_id, opening_balance, closing_balance,
	theoretical, difference, state, observations, opened_at, closed_at`

func scanSession(row pgx.Row) (*entity.CashSession, error) {
	var s entity.CashSession
	err := row.Scan(&s.ID, &s.RegisterID, &s.ResponsibleID, &s.OpeningBalance, &s.ClosingBalance,
		&s.Theoretical, &s.Difference, &s.State, &s.Observations, &s.OpenedAt, &s.ClosedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scan cash session: %w", err)
	}
	return &s, nil
}

func (r *CashSessionRepo) Create(s *entity.CashSession) error {
	query := `
		INSERT INTO cash_sessions (` + sessionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.RegisterID, s.ResponsibleID, s.OpeningBalance, s.ClosingBalance,
		s.Theoretical, s.Difference, s.State, s.Observations, s.OpenedAt, s.ClosedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert cash session: %w", err)
	}
	return nil
}

func (r *CashSessionRepo) Update(s *entity.CashSession) error {
	query := `
		UPDATE cash_sessions SET closing_balance = $2, theoretical = $3, difference = $4,
			state = $5, observations = $6, closed_at = $7
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		s.ID, s.ClosingBalance, s.Theoretical, s.Difference, s.State, s.Observations, s.ClosedAt,
	)
	if err != nil {
		return fmt.Errorf("update cash session: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *CashSessionRepo) GetByID(id string) (*entity.CashSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM cash_sessions WHERE id = $1`
	return scanSession(r.q.QueryRow(context.Background(), query, id))
}

// GetOpenByRegister devuelve la sesión ABIERTA de la caja.
func (r *CashSessionRepo) GetOpenByRegister(registerID string) (*entity.CashSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM cash_sessions
		WHERE register_id = $1 AND state = 'ABIERTA' LIMIT 1`
	return scanSession(r.q.QueryRow(context.Background(), query, registerID))
}

// SumMovements devuelve (Σ ingresos, Σ egresos) de la sesión.
func (r *CashSessionRepo) SumMovements(sessionID string) (decimal.Decimal, decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount) FILTER (WHERE kind = 'INGRESO'), 0),
		       COALESCE(SUM(amount) FILTER (WHERE kind = 'EGRESO'), 0)
		FROM cash_movements WHERE session_id = $1`
	var in, out decimal.Decimal
	err := r.q.QueryRow(context.Background(), query, sessionID).Scan(&in, &out)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("sum cash movements: %w", err)
	}
	return in, out, nil
}

var _ repository.CashMovementRepository = (*CashMovementRepo)(nil)

// CashMovementRepo implementación de CashMovementRepository sobre PostgreSQL.
// El comprobante tiene constraint único; la violación se traduce a
// ErrDuplicateComprobante.
type CashMovementRepo struct {
	q Querier
}

// NewCashMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCashMovementRepository(q Querier) *CashMovementRepo {
	return &CashMovementRepo{q: q}
}

const cashMovementColumns = `id, register_id, session_id, kind, amount, actor_id, description,
	comprobante, sale_id, purchase_id, credit_note_id, cuota_payment_id, commission_id, date`

func (r *CashMovementRepo) Create(m *entity.CashMovement) error {
	query := `
		INSERT INTO cash_movements (` + cashMovementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.RegisterID, m.SessionID, m.Kind, m.Amount, m.ActorID, m.Description,
		m.Comprobante, m.SaleID, m.PurchaseID, m.CreditNoteID, m.CuotaPaymentID, m.CommissionID, m.Date,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateComprobante
		}
		return fmt.Errorf("insert cash movement: %w", err)
	}
	return nil
}

func (r *CashMovementRepo) GetByID(id string) (*entity.CashMovement, error) {
	query := `SELECT ` + cashMovementColumns + ` FROM cash_movements WHERE id = $1`
	var m entity.CashMovement
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&m.ID, &m.RegisterID, &m.SessionID, &m.Kind, &m.Amount, &m.ActorID, &m.Description,
		&m.Comprobante, &m.SaleID, &m.PurchaseID, &m.CreditNoteID, &m.CuotaPaymentID, &m.CommissionID, &m.Date,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get cash movement: %w", err)
	}
	return &m, nil
}

func (r *CashMovementRepo) ExistsComprobante(comprobante string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM cash_movements WHERE comprobante = $1)`, comprobante).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists comprobante: %w", err)
	}
	return exists, nil
}

func (r *CashMovementRepo) ListBySession(sessionID string) ([]*entity.CashMovement, error) {
	return r.listWhere(`session_id = $1`, sessionID)
}

func (r *CashMovementRepo) ListBySale(saleID string) ([]*entity.CashMovement, error) {
	return r.listWhere(`sale_id = $1`, saleID)
}

func (r *CashMovementRepo) ListByCreditNote(creditNoteID string) ([]*entity.CashMovement, error) {
	return r.listWhere(`credit_note_id = $1`, creditNoteID)
}

func (r *CashMovementRepo) listWhere(cond string, arg any) ([]*entity.CashMovement, error) {
	query := `SELECT ` + cashMovementColumns + ` FROM cash_movements WHERE ` + cond + ` ORDER BY date`
	rows, err := r.q.Query(context.Background(), query, arg)
	if err != nil {
		return nil, fmt.Errorf("list cash movements: %w", err)
	}
	defer rows.Close()

	var out []*entity.CashMovement
	for rows.Next() {
		var m entity.CashMovement
		if err := rows.Scan(&m.ID, &m.RegisterID, &m.SessionID, &m.Kind, &m.Amount, &m.ActorID, &m.Description,
			&m.Comprobante, &m.SaleID, &m.PurchaseID, &m.CreditNoteID, &m.CuotaPaymentID, &m.CommissionID, &m.Date); err != nil {
			return nil, fmt.Errorf("scan cash movement: %w", err)
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}
