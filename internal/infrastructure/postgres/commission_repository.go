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

var _ repository.SellerCommissionConfigRepository = (*SellerCommissionConfigRepo)(nil)

// SellerCommissionConfigRepo implementación sobre PostgreSQL.
type SellerCommissionConfigRepo struct {
	q Querier
}

// NewSellerCommissionConfigRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSellerCommissionConfigRepository(q Querier) *SellerCommissionConfigRepo {
	return &SellerCommissionConfigRepo{q: q}
}

const sellerConfigColumns = `id, seller_id, kind, percentage, active, created_at, updated_at`

func scanSellerConfig(row pgx.Row) (*entity.SellerCommissionConfig, error) {
	var c entity.SellerCommissionConfig
	err := row.Scan(&c.ID, &c.SellerID, &c.Kind, &c.Percentage, &c.Active, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scan seller config: %w", err)
	}
	return &c, nil
}

func (r *SellerCommissionConfigRepo) Create(c *entity.SellerCommissionConfig) error {
	query := `
		INSERT INTO seller_commission_configs (` + sellerConfigColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.SellerID, c.Kind, c.Percentage, c.Active, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert seller config: %w", err)
	}
	return nil
}

func (r *SellerCommissionConfigRepo) Update(c *entity.SellerCommissionConfig) error {
	query := `
		UPDATE seller_commission_configs SET kind = $2, percentage = $3, active = $4, updated_at = now()
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query, c.ID, c.Kind, c.Percentage, c.Active)
	if err != nil {
		return fmt.Errorf("update seller config: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *SellerCommissionConfigRepo) GetByID(id string) (*entity.SellerCommissionConfig, error) {
	query := `SELECT ` + sellerConfigColumns + ` FROM seller_commission_configs WHERE id = $1`
	return scanSellerConfig(r.q.QueryRow(context.Background(), query, id))
}

// GetActiveBySeller devuelve la configuración activa del vendedor.
func (r *SellerCommissionConfigRepo) GetActiveBySeller(sellerID string) (*entity.SellerCommissionConfig, error) {
	query := `SELECT ` + sellerConfigColumns + ` FROM seller_commission_configs
		WHERE seller_id = $1 AND active LIMIT 1`
	return scanSellerConfig(r.q.QueryRow(context.Background(), query, sellerID))
}

var _ repository.SellerCommissionRepository = (*SellerCommissionRepo)(nil)

// SellerCommissionRepo implementación sobre PostgreSQL.
type SellerCommissionRepo struct {
	q Querier
}

// NewSellerCommissionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSellerCommissionRepository(q Querier) *SellerCommissionRepo {
	return &SellerCommissionRepo{q: q}
}

const sellerCommissionColumns = `id, sale_id, seller_id, config_id, kind, accrued, paid, state, notes, created_at, updated_at`

func scanSellerCommission(row pgx.Row) (*entity.SellerCommission, error) {
	var c entity.SellerCommission
	err := row.Scan(&c.ID, &c.SaleID, &c.SellerID, &c.ConfigID, &c.Kind, &c.Accrued, &c.Paid,
		&c.State, &c.Notes, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scan seller commission: %w", err)
	}
	return &c, nil
}

func (r *SellerCommissionRepo) Create(c *entity.SellerCommission) error {
	query := `
		INSERT INTO seller_commissions (` + sellerCommissionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.SaleID, c.SellerID, c.ConfigID, c.Kind, c.Accrued, c.Paid, c.State, c.Notes, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert seller commission: %w", err)
	}
	return nil
}

func (r *SellerCommissionRepo) Update(c *entity.SellerCommission) error {
	query := `
		UPDATE seller_commissions SET accrued = $2, paid = $3, state = $4, notes = $5, updated_at = now()
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query, c.ID, c.Accrued, c.Paid, c.State, c.Notes)
	if err != nil {
		return fmt.Errorf("update seller commission: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *SellerCommissionRepo) GetByID(id string) (*entity.SellerCommission, error) {
	query := `SELECT ` + sellerCommissionColumns + ` FROM seller_commissions WHERE id = $1`
	return scanSellerCommission(r.q.QueryRow(context.Background(), query, id))
}

func (r *SellerCommissionRepo) GetForUpdate(id string) (*entity.SellerCommission, error) {
	query := `SELECT ` + sellerCommissionColumns + ` FROM seller_commissions WHERE id = $1 FOR UPDATE`
	return scanSellerCommission(r.q.QueryRow(context.Background(), query, id))
}

func (r *SellerCommissionRepo) ListBySale(saleID string) ([]*entity.SellerCommission, error) {
	return r.listWhere(`sale_id = $1`, saleID)
}

func (r *SellerCommissionRepo) ListBySeller(sellerID string) ([]*entity.SellerCommission, error) {
	return r.listWhere(`seller_id = $1`, sellerID)
}

func (r *SellerCommissionRepo) listWhere(cond string, arg any) ([]*entity.SellerCommission, error) {
	query := `SELECT ` + sellerCommissionColumns + ` FROM seller_commissions WHERE ` + cond + ` ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, arg)
	if err != nil {
		return nil, fmt.Errorf("list seller commissions: %w", err)
	}
	defer rows.Close()

	var out []*entity.SellerCommission
	for rows.Next() {
		c, err := scanSellerCommission(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

var _ repository.CollectorCommissionConfigRepository = (*CollectorCommissionConfigRepo)(nil)

// CollectorCommissionConfigRepo implementación sobre PostgreSQL.
type CollectorCommissionConfigRepo struct {
	q Querier
}

// NewCollectorCommissionConfigRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCollectorCommissionConfigRepository(q Querier) *CollectorCommissionConfigRepo {
	return &CollectorCommissionConfigRepo{q: q}
}

const collectorConfigColumns = `id, collector_id, percentage, active, created_at, updated_at`

func scanCollectorConfig(row pgx.Row) (*entity.CollectorCommissionConfig, error) {
	var c entity.CollectorCommissionConfig
	err := row.Scan(&c.ID, &c.CollectorID, &c.Percentage, &c.Active, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scan collector config: %w", err)
	}
	return &c, nil
}

func (r *CollectorCommissionConfigRepo) Create(c *entity.CollectorCommissionConfig) error {
	query := `
		INSERT INTO collector_commission_configs (` + collectorConfigColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.CollectorID, c.Percentage, c.Active, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert collector config: %w", err)
	}
	return nil
}

func (r *CollectorCommissionConfigRepo) Update(c *entity.CollectorCommissionConfig) error {
	query := `
		UPDATE collector_commission_configs SET percentage = $2, active = $3, updated_at = now()
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query, c.ID, c.Percentage, c.Active)
	if err != nil {
		return fmt.Errorf("update collector config: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *CollectorCommissionConfigRepo) GetByID(id string) (*entity.CollectorCommissionConfig, error) {
	query := `SELECT ` + collectorConfigColumns + ` FROM collector_commission_configs WHERE id = $1`
	return scanCollectorConfig(r.q.QueryRow(context.Background(), query, id))
}

// GetActiveByCollector devuelve la configuración activa del cobrador.
func (r *CollectorCommissionConfigRepo) GetActiveByCollector(collectorID string) (*entity.CollectorCommissionConfig, error) {
	query := `SELECT ` + collectorConfigColumns + ` FROM collector_commission_configs
		WHERE collector_id = $1 AND active LIMIT 1`
	return scanCollectorConfig(r.q.QueryRow(context.Background(), query, collectorID))
}

var _ repository.CollectorCommissionRepository = (*CollectorCommissionRepo)(nil)

// CollectorCommissionRepo implementación sobre PostgreSQL.
type CollectorCommissionRepo struct {
	q Querier
}

// NewCollectorCommissionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCollectorCommissionRepository(q Querier) *CollectorCommissionRepo {
	return &CollectorCommissionRepo{q: q}
}

const collectorCommissionColumns = `id, payment_id, collector_id, config_id, accrued, paid, state, notes, created_at, updated_at`

func scanCollectorCommission(row pgx.Row) (*entity.CollectorCommission, error) {
	var c entity.CollectorCommission
	err := row.Scan(&c.ID, &c.PaymentID, &c.CollectorID, &c.ConfigID, &c.Accrued, &c.Paid,
		&c.State, &c.Notes, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scan collector commission: %w", err)
	}
	return &c, nil
}

func (r *CollectorCommissionRepo) Create(c *entity.CollectorCommission) error {
	query := `
		INSERT INTO collector_commissions (` + collectorCommissionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.PaymentID, c.CollectorID, c.ConfigID, c.Accrued, c.Paid, c.State, c.Notes, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert collector commission: %w", err)
	}
	return nil
}

func (r *CollectorCommissionRepo) Update(c *entity.CollectorCommission) error {
	query := `
		UPDATE collector_commissions SET accrued = $2, paid = $3, state = $4, notes = $5, updated_at = now()
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query, c.ID, c.Accrued, c.Paid, c.State, c.Notes)
	if err != nil {
		return fmt.Errorf("update collector commission: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *CollectorCommissionRepo) GetByID(id string) (*entity.CollectorCommission, error) {
	query := `SELECT ` + collectorCommissionColumns + ` FROM collector_commissions WHERE id = $1`
	return scanCollectorCommission(r.q.QueryRow(context.Background(), query, id))
}

func (r *CollectorCommissionRepo) GetForUpdate(id string) (*entity.CollectorCommission, error) {
	query := `SELECT ` + collectorCommissionColumns + ` FROM collector_commissions WHERE id = $1 FOR UPDATE`
	return scanCollectorCommission(r.q.QueryRow(context.Background(), query, id))
}

func (r *CollectorCommissionRepo) ListByPayment(paymentID string) ([]*entity.CollectorCommission, error) {
	return r.listWhere(`payment_id = $1`, paymentID)
}

func (r *CollectorCommissionRepo) ListByCollector(collectorID string) ([]*entity.CollectorCommission, error) {
	return r.listWhere(`collector_id = $1`, collectorID)
}

func (r *CollectorCommissionRepo) listWhere(cond string, arg any) ([]*entity.CollectorCommission, error) {
	query := `SELECT ` + collectorCommissionColumns + ` FROM collector_commissions WHERE ` + cond + ` ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, arg)
	if err != nil {
		return nil, fmt.Errorf("list collector commissions: %w", err)
	}
	defer rows.Close()

	var out []*entity.CollectorCommission
	for rows.Next() {
		c, err := scanCollectorCommission(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
