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

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
// Un (producto, almacén) sin fila equivale a saldo cero.
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get obtiene el saldo de un producto en un almacén.
func (r *StockRepo) Get(productID, warehouseID string) (*entity.Stock, error) {
	query := `
		SELECT product_id, warehouse_id, quantity, updated_at
		FROM stock WHERE product_id = $1 AND warehouse_id = $2`
	var s entity.Stock
	err := r.q.QueryRow(context.Background(), query, productID, warehouseID).Scan(
		&s.ProductID, &s.WarehouseID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.Stock{ProductID: productID, WarehouseID: warehouseID, Quantity: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// GetForUpdate obtiene el saldo y bloquea la fila (SELECT FOR UPDATE).
func (r *StockRepo) GetForUpdate(productID, warehouseID string) (*entity.Stock, error) {
	query := `
		SELECT product_id, warehouse_id, quantity, updated_at
		FROM stock WHERE product_id = $1 AND warehouse_id = $2
		FOR UPDATE`
	var s entity.Stock
	err := r.q.QueryRow(context.Background(), query, productID, warehouseID).Scan(
		&s.ProductID, &s.WarehouseID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.Stock{ProductID: productID, WarehouseID: warehouseID, Quantity: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get stock for update: %w", err)
	}
	return &s, nil
}

// Upsert inserta o actualiza el saldo (por producto y almacén).
func (r *StockRepo) Upsert(stock *entity.Stock) error {
	query := `
		INSERT INTO stock (product_id, warehouse_id, quantity, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (product_id, warehouse_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query, stock.ProductID, stock.WarehouseID, stock.Quantity)
	if err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}

func (r *StockRepo) ListByWarehouse(warehouseID string) ([]*entity.Stock, error) {
	query := `
		SELECT product_id, warehouse_id, quantity, updated_at
		FROM stock WHERE warehouse_id = $1 ORDER BY product_id`
	rows, err := r.q.Query(context.Background(), query, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	defer rows.Close()

	var out []*entity.Stock
	for rows.Next() {
		var s entity.Stock
		if err := rows.Scan(&s.ProductID, &s.WarehouseID, &s.Quantity, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}

var _ repository.InventoryMovementRepository = (*InventoryMovementRepo)(nil)

// InventoryMovementRepo implementación del log append-only sobre PostgreSQL.
// No hay DELETE: revertir registra un movimiento compensatorio.
type InventoryMovementRepo struct {
	q Querier
}

// NewInventoryMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryMovementRepository(q Querier) *InventoryMovementRepo {
	return &InventoryMovementRepo{q: q}
}

const movementColumns = `id, product_id, warehouse_id, kind, quantity, actor_id, reason, date, created_at, reverted`

func (r *InventoryMovementRepo) Create(m *entity.InventoryMovement) error {
	query := `
		INSERT INTO inventory_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.ProductID, m.WarehouseID, m.Kind, m.Quantity, m.ActorID, m.Reason, m.Date, m.CreatedAt, m.Reverted,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert inventory movement: %w", err)
	}
	return nil
}

func (r *InventoryMovementRepo) GetByID(id string) (*entity.InventoryMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM inventory_movements WHERE id = $1`
	var m entity.InventoryMovement
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&m.ID, &m.ProductID, &m.WarehouseID, &m.Kind, &m.Quantity, &m.ActorID,
		&m.Reason, &m.Date, &m.CreatedAt, &m.Reverted,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get inventory movement: %w", err)
	}
	return &m, nil
}

func (r *InventoryMovementRepo) MarkReverted(id string) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE inventory_movements SET reverted = true WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("mark movement reverted: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *InventoryMovementRepo) ListByReason(reason string) ([]*entity.InventoryMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM inventory_movements WHERE reason = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, reason)
	if err != nil {
		return nil, fmt.Errorf("list movements by reason: %w", err)
	}
	defer rows.Close()

	var out []*entity.InventoryMovement
	for rows.Next() {
		var m entity.InventoryMovement
		if err := rows.Scan(&m.ID, &m.ProductID, &m.WarehouseID, &m.Kind, &m.Quantity, &m.ActorID,
			&m.Reason, &m.Date, &m.CreatedAt, &m.Reverted); err != nil {
			return nil, fmt.Errorf("scan inventory movement: %w", err)
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}

// SumSigned calcula Σ cantidad firmada de todos los movimientos del par
// (producto, almacén). Los pares compensatorios se anulan solos.
func (r *InventoryMovementRepo) SumSigned(productID, warehouseID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(CASE WHEN kind IN ('ENTRADA', 'AJUSTE_SOBRANTE') THEN quantity ELSE -quantity END), 0)
		FROM inventory_movements WHERE product_id = $1 AND warehouse_id = $2`
	var sum decimal.Decimal
	err := r.q.QueryRow(context.Background(), query, productID, warehouseID).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum movements: %w", err)
	}
	return sum, nil
}

var _ repository.TransferRepository = (*TransferRepo)(nil)

// TransferRepo implementación de TransferRepository sobre PostgreSQL.
type TransferRepo struct {
	q Querier
}

// NewTransferRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransferRepository(q Querier) *TransferRepo {
	return &TransferRepo{q: q}
}

const transferColumns = `id, reference, from_warehouse, to_warehouse, requested_by, reason, date, created_at`

func (r *TransferRepo) Create(t *entity.Transfer) error {
	query := `
		INSERT INTO transfers (` + transferColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		t.ID, t.Reference, t.FromWarehouse, t.ToWarehouse, t.RequestedBy, t.Reason, t.Date, t.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert transfer: %w", err)
	}
	for i := range t.Details {
		d := &t.Details[i]
		_, err := r.q.Exec(context.Background(),
			`INSERT INTO transfer_details (id, transfer_id, product_id, quantity) VALUES ($1, $2, $3, $4)`,
			d.ID, d.TransferID, d.ProductID, d.Quantity,
		)
		if err != nil {
			return fmt.Errorf("insert transfer detail: %w", err)
		}
	}
	return nil
}

func (r *TransferRepo) GetByID(id string) (*entity.Transfer, error) {
	query := `SELECT ` + transferColumns + ` FROM transfers WHERE id = $1`
	var t entity.Transfer
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&t.ID, &t.Reference, &t.FromWarehouse, &t.ToWarehouse, &t.RequestedBy, &t.Reason, &t.Date, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get transfer: %w", err)
	}
	rows, err := r.q.Query(context.Background(),
		`SELECT id, transfer_id, product_id, quantity FROM transfer_details WHERE transfer_id = $1 ORDER BY id`, id)
	if err != nil {
		return nil, fmt.Errorf("list transfer details: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var d entity.TransferDetail
		if err := rows.Scan(&d.ID, &d.TransferID, &d.ProductID, &d.Quantity); err != nil {
			return nil, fmt.Errorf("scan transfer detail: %w", err)
		}
		t.Details = append(t.Details, d)
	}
	return &t, rows.Err()
}

// CountByReferencePrefix cuenta traslados cuyo número empieza con el
// prefijo dado (TR-YYYYMMDD-); numera el siguiente del día.
func (r *TransferRepo) CountByReferencePrefix(prefix string) (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM transfers WHERE reference LIKE $1 || '%'`, prefix).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count transfers: %w", err)
	}
	return n, nil
}
