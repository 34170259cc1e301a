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

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// PurchaseOrderRepo implementación de PurchaseOrderRepository sobre PostgreSQL.
// Los detalles se cargan siempre junto a la orden.
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

const orderColumns = `id, number, supplier_id, date, delivery_date, reception_date, condition,
	term_days, due_date, subtotal, total, state, created_by, cash_register_id, cash_movement_id,
	notes, created_at, updated_at`

const orderDetailColumns = `id, order_id, product_id, quantity, unit_price, subtotal, received, received_qty`

func (r *PurchaseOrderRepo) Create(o *entity.PurchaseOrder) error {
	query := `
		INSERT INTO purchase_orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	_, err := r.q.Exec(context.Background(), query,
		o.ID, o.Number, o.SupplierID, o.Date, o.DeliveryDate, o.ReceptionDate, o.Condition,
		o.TermDays, o.DueDate, o.Subtotal, o.Total, o.State, o.CreatedBy, o.CashRegisterID,
		o.CashMovementID, o.Notes, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert purchase order: %w", err)
	}
	for _, d := range o.Details {
		_, err := r.q.Exec(context.Background(),
			`INSERT INTO purchase_order_details (`+orderDetailColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			d.ID, d.OrderID, d.ProductID, d.Quantity, d.UnitPrice, d.Subtotal, d.Received, d.ReceivedQty,
		)
		if err != nil {
			return fmt.Errorf("insert purchase order detail: %w", err)
		}
	}
	return nil
}

func (r *PurchaseOrderRepo) Update(o *entity.PurchaseOrder) error {
	query := `
		UPDATE purchase_orders SET delivery_date = $2, reception_date = $3, term_days = $4,
			due_date = $5, subtotal = $6, total = $7, state = $8, cash_register_id = $9,
			cash_movement_id = $10, notes = $11, updated_at = now()
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		o.ID, o.DeliveryDate, o.ReceptionDate, o.TermDays, o.DueDate, o.Subtotal, o.Total,
		o.State, o.CashRegisterID, o.CashMovementID, o.Notes,
	)
	if err != nil {
		return fmt.Errorf("update purchase order: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PurchaseOrderRepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM purchase_orders WHERE id = $1`
	return r.scanWithDetails(r.q.QueryRow(context.Background(), query, id))
}

func (r *PurchaseOrderRepo) GetForUpdate(id string) (*entity.PurchaseOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM purchase_orders WHERE id = $1 FOR UPDATE`
	return r.scanWithDetails(r.q.QueryRow(context.Background(), query, id))
}

func (r *PurchaseOrderRepo) scanWithDetails(row pgx.Row) (*entity.PurchaseOrder, error) {
	o, err := scanOrder(row)
	if err != nil {
		return nil, err
	}
	details, err := r.loadDetails(o.ID)
	if err != nil {
		return nil, err
	}
	o.Details = details
	return o, nil
}

func scanOrder(row pgx.Row) (*entity.PurchaseOrder, error) {
	var o entity.PurchaseOrder
	err := row.Scan(&o.ID, &o.Number, &o.SupplierID, &o.Date, &o.DeliveryDate, &o.ReceptionDate,
		&o.Condition, &o.TermDays, &o.DueDate, &o.Subtotal, &o.Total, &o.State, &o.CreatedBy,
		&o.CashRegisterID, &o.CashMovementID, &o.Notes, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scan purchase order: %w", err)
	}
	return &o, nil
}

func (r *PurchaseOrderRepo) loadDetails(orderID string) ([]*entity.PurchaseOrderDetail, error) {
	query := `SELECT ` + orderDetailColumns + ` FROM purchase_order_details WHERE order_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order details: %w", err)
	}
	defer rows.Close()

	var out []*entity.PurchaseOrderDetail
	for rows.Next() {
		var d entity.PurchaseOrderDetail
		if err := rows.Scan(&d.ID, &d.OrderID, &d.ProductID, &d.Quantity, &d.UnitPrice,
			&d.Subtotal, &d.Received, &d.ReceivedQty); err != nil {
			return nil, fmt.Errorf("scan order detail: %w", err)
		}
		out = append(out, &d)
	}
	return out, rows.Err()
}

// List filtra por estado; cadena vacía lista todas.
func (r *PurchaseOrderRepo) List(state string) ([]*entity.PurchaseOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM purchase_orders WHERE state = $1 OR $1 = '' ORDER BY number`
	rows, err := r.q.Query(context.Background(), query, state)
	if err != nil {
		return nil, fmt.Errorf("list purchase orders: %w", err)
	}
	defer rows.Close()

	var out []*entity.PurchaseOrder
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, o := range out {
		details, err := r.loadDetails(o.ID)
		if err != nil {
			return nil, err
		}
		o.Details = details
	}
	return out, nil
}

// UpdateDetail actualiza una línea de la orden (recepción parcial).
func (r *PurchaseOrderRepo) UpdateDetail(d *entity.PurchaseOrderDetail) error {
	query := `
		UPDATE purchase_order_details SET quantity = $2, unit_price = $3, subtotal = $4,
			received = $5, received_qty = $6
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		d.ID, d.Quantity, d.UnitPrice, d.Subtotal, d.Received, d.ReceivedQty,
	)
	if err != nil {
		return fmt.Errorf("update order detail: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

var _ repository.ReceptionRepository = (*ReceptionRepo)(nil)

// ReceptionRepo implementación de ReceptionRepository sobre PostgreSQL.
type ReceptionRepo struct {
	q Querier
}

// NewReceptionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReceptionRepository(q Querier) *ReceptionRepo {
	return &ReceptionRepo{q: q}
}

func (r *ReceptionRepo) Create(rec *entity.Reception) error {
	query := `
		INSERT INTO receptions (id, order_id, warehouse_id, received_by, payment_kind, notes, date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		rec.ID, rec.OrderID, rec.WarehouseID, rec.ReceivedBy, rec.PaymentKind, rec.Notes, rec.Date,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert reception: %w", err)
	}
	return nil
}

func (r *ReceptionRepo) ListByOrder(orderID string) ([]*entity.Reception, error) {
	query := `SELECT id, order_id, warehouse_id, received_by, payment_kind, notes, date
		FROM receptions WHERE order_id = $1 ORDER BY date`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list receptions: %w", err)
	}
	defer rows.Close()

	var out []*entity.Reception
	for rows.Next() {
		var rec entity.Reception
		if err := rows.Scan(&rec.ID, &rec.OrderID, &rec.WarehouseID, &rec.ReceivedBy,
			&rec.PaymentKind, &rec.Notes, &rec.Date); err != nil {
			return nil, fmt.Errorf("scan reception: %w", err)
		}
		out = append(out, &rec)
	}
	return out, rows.Err()
}

var _ repository.AccountsPayableRepository = (*AccountsPayableRepo)(nil)

// AccountsPayableRepo implementación de AccountsPayableRepository sobre PostgreSQL.
type AccountsPayableRepo struct {
	q Querier
}

// NewAccountsPayableRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAccountsPayableRepository(q Querier) *AccountsPayableRepo {
	return &AccountsPayableRepo{q: q}
}

const payableColumns = `id, order_id, balance, due_date, state, created_at, updated_at`

func scanPayable(row pgx.Row) (*entity.AccountsPayable, error) {
	var p entity.AccountsPayable
	err := row.Scan(&p.ID, &p.OrderID, &p.Balance, &p.DueDate, &p.State, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scan payable: %w", err)
	}
	return &p, nil
}

func (r *AccountsPayableRepo) Create(p *entity.AccountsPayable) error {
	query := `
		INSERT INTO accounts_payable (` + payableColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.OrderID, p.Balance, p.DueDate, p.State, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert payable: %w", err)
	}
	return nil
}

func (r *AccountsPayableRepo) Update(p *entity.AccountsPayable) error {
	query := `UPDATE accounts_payable SET balance = $2, due_date = $3, state = $4, updated_at = now() WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query, p.ID, p.Balance, p.DueDate, p.State)
	if err != nil {
		return fmt.Errorf("update payable: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *AccountsPayableRepo) GetByID(id string) (*entity.AccountsPayable, error) {
	query := `SELECT ` + payableColumns + ` FROM accounts_payable WHERE id = $1`
	return scanPayable(r.q.QueryRow(context.Background(), query, id))
}

func (r *AccountsPayableRepo) GetForUpdate(id string) (*entity.AccountsPayable, error) {
	query := `SELECT ` + payableColumns + ` FROM accounts_payable WHERE id = $1 FOR UPDATE`
	return scanPayable(r.q.QueryRow(context.Background(), query, id))
}

func (r *AccountsPayableRepo) GetByOrder(orderID string) (*entity.AccountsPayable, error) {
	query := `SELECT ` + payableColumns + ` FROM accounts_payable WHERE order_id = $1`
	return scanPayable(r.q.QueryRow(context.Background(), query, orderID))
}

func (r *AccountsPayableRepo) ListPending() ([]*entity.AccountsPayable, error) {
	query := `SELECT ` + payableColumns + ` FROM accounts_payable WHERE balance > 0 AND state <> 'ANULADA' ORDER BY due_date`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list pending payables: %w", err)
	}
	defer rows.Close()

	var out []*entity.AccountsPayable
	for rows.Next() {
		p, err := scanPayable(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

var _ repository.SupplierPaymentRepository = (*SupplierPaymentRepo)(nil)

// SupplierPaymentRepo implementación de SupplierPaymentRepository sobre PostgreSQL.
type SupplierPaymentRepo struct {
	q Querier
}

// NewSupplierPaymentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSupplierPaymentRepository(q Querier) *SupplierPaymentRepo {
	return &SupplierPaymentRepo{q: q}
}

const supplierPaymentColumns = `id, payable_id, amount, method, date, comprobante, cash_register_id,
	cash_movement_id, actor_id, cancelled, cancel_motive, cancelled_by, cancelled_at, created_at`

func (r *SupplierPaymentRepo) Create(p *entity.SupplierPayment) error {
	query := `
		INSERT INTO supplier_payments (` + supplierPaymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.PayableID, p.Amount, p.Method, p.Date, p.Comprobante, p.CashRegisterID,
		p.CashMovementID, p.ActorID, p.Cancelled, p.CancelMotive, p.CancelledBy, p.CancelledAt, p.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert supplier payment: %w", err)
	}
	return nil
}

func (r *SupplierPaymentRepo) Update(p *entity.SupplierPayment) error {
	query := `
		UPDATE supplier_payments SET cancelled = $2, cancel_motive = $3, cancelled_by = $4, cancelled_at = $5
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		p.ID, p.Cancelled, p.CancelMotive, p.CancelledBy, p.CancelledAt,
	)
	if err != nil {
		return fmt.Errorf("update supplier payment: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *SupplierPaymentRepo) GetByID(id string) (*entity.SupplierPayment, error) {
	query := `SELECT ` + supplierPaymentColumns + ` FROM supplier_payments WHERE id = $1`
	var p entity.SupplierPayment
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.PayableID, &p.Amount, &p.Method, &p.Date, &p.Comprobante, &p.CashRegisterID,
		&p.CashMovementID, &p.ActorID, &p.Cancelled, &p.CancelMotive, &p.CancelledBy, &p.CancelledAt, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get supplier payment: %w", err)
	}
	return &p, nil
}

func (r *SupplierPaymentRepo) ListByPayable(payableID string) ([]*entity.SupplierPayment, error) {
	query := `SELECT ` + supplierPaymentColumns + ` FROM supplier_payments WHERE payable_id = $1 ORDER BY date`
	rows, err := r.q.Query(context.Background(), query, payableID)
	if err != nil {
		return nil, fmt.Errorf("list supplier payments: %w", err)
	}
	defer rows.Close()

	var out []*entity.SupplierPayment
	for rows.Next() {
		var p entity.SupplierPayment
		if err := rows.Scan(&p.ID, &p.PayableID, &p.Amount, &p.Method, &p.Date, &p.Comprobante,
			&p.CashRegisterID, &p.CashMovementID, &p.ActorID, &p.Cancelled, &p.CancelMotive,
			&p.CancelledBy, &p.CancelledAt, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan supplier payment: %w", err)
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}
