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

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación de ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, category_id, unit_id, code, name, description, retail_price,
	wholesale_price, purchase_price, iva_rate, min_stock, active, created_at, updated_at`

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.CategoryID, &p.UnitID, &p.Code, &p.Name, &p.Description,
		&p.RetailPrice, &p.WholesalePrice, &p.PurchasePrice, &p.IVARate, &p.MinStock,
		&p.Active, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scan product: %w", err)
	}
	return &p, nil
}

func (r *ProductRepo) Create(p *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.CategoryID, p.UnitID, p.Code, p.Name, p.Description, p.RetailPrice,
		p.WholesalePrice, p.PurchasePrice, p.IVARate, p.MinStock, p.Active, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// Update actualiza el producto. El precio de compra se maneja solo vía
// UpdatePurchasePrice (recepciones).
func (r *ProductRepo) Update(p *entity.Product) error {
	query := `
		UPDATE products SET category_id = $2, unit_id = $3, name = $4, description = $5,
			retail_price = $6, wholesale_price = $7, iva_rate = $8, min_stock = $9,
			active = $10, updated_at = now()
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		p.ID, p.CategoryID, p.UnitID, p.Name, p.Description,
		p.RetailPrice, p.WholesalePrice, p.IVARate, p.MinStock, p.Active,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return scanProduct(r.q.QueryRow(context.Background(), query, id))
}

func (r *ProductRepo) GetByCode(code string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE code = $1`
	return scanProduct(r.q.QueryRow(context.Background(), query, code))
}

func (r *ProductRepo) List(onlyActive bool) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE active OR NOT $1 ORDER BY code`
	rows, err := r.q.Query(context.Background(), query, onlyActive)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var out []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.CategoryID, &p.UnitID, &p.Code, &p.Name, &p.Description,
			&p.RetailPrice, &p.WholesalePrice, &p.PurchasePrice, &p.IVARate, &p.MinStock,
			&p.Active, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}

// UpdatePurchasePrice actualiza solo el último precio de compra (recepción de OC).
func (r *ProductRepo) UpdatePurchasePrice(id string, price decimal.Decimal) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE products SET purchase_price = $2, updated_at = now() WHERE id = $1`,
		id, price,
	)
	if err != nil {
		return fmt.Errorf("update purchase price: %w", err)
	}
	return nil
}

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementación de CategoryRepository sobre PostgreSQL.
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

func (r *CategoryRepo) Create(c *entity.Category) error {
	query := `
		INSERT INTO categories (id, name, description, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query, c.ID, c.Name, c.Description, c.Active, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

func (r *CategoryRepo) Update(c *entity.Category) error {
	query := `UPDATE categories SET name = $2, description = $3, active = $4, updated_at = now() WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query, c.ID, c.Name, c.Description, c.Active)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *CategoryRepo) GetByID(id string) (*entity.Category, error) {
	query := `SELECT id, name, description, active, created_at, updated_at FROM categories WHERE id = $1`
	var c entity.Category
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&c.ID, &c.Name, &c.Description, &c.Active, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}

func (r *CategoryRepo) List() ([]*entity.Category, error) {
	query := `SELECT id, name, description, active, created_at, updated_at FROM categories ORDER BY name`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var out []*entity.Category
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.Active, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

var _ repository.UnitMeasureRepository = (*UnitMeasureRepo)(nil)

// UnitMeasureRepo implementación de UnitMeasureRepository sobre PostgreSQL.
type UnitMeasureRepo struct {
	q Querier
}

// NewUnitMeasureRepository construye el adaptador. Pasar pool o tx (Querier).
func NewUnitMeasureRepository(q Querier) *UnitMeasureRepo {
	return &UnitMeasureRepo{q: q}
}

func (r *UnitMeasureRepo) Create(u *entity.UnitMeasure) error {
	query := `
		INSERT INTO unit_measures (id, name, sifen_code, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query, u.ID, u.Name, u.SifenCode, u.Description, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert unit measure: %w", err)
	}
	return nil
}

func (r *UnitMeasureRepo) GetByID(id string) (*entity.UnitMeasure, error) {
	query := `SELECT id, name, sifen_code, description, created_at, updated_at FROM unit_measures WHERE id = $1`
	var u entity.UnitMeasure
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&u.ID, &u.Name, &u.SifenCode, &u.Description, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get unit measure: %w", err)
	}
	return &u, nil
}

func (r *UnitMeasureRepo) List() ([]*entity.UnitMeasure, error) {
	query := `SELECT id, name, sifen_code, description, created_at, updated_at FROM unit_measures ORDER BY name`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list unit measures: %w", err)
	}
	defer rows.Close()

	var out []*entity.UnitMeasure
	for rows.Next() {
		var u entity.UnitMeasure
		if err := rows.Scan(&u.ID, &u.Name, &u.SifenCode, &u.Description, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan unit measure: %w", err)
		}
		out = append(out, &u)
	}
	return out, rows.Err()
}

var _ repository.ServiceRepository = (*ServiceRepo)(nil)

// ServiceRepo implementación de ServiceRepository sobre PostgreSQL. Los
// componentes se cargan siempre junto al servicio (la receta es pequeña).
type ServiceRepo struct {
	q Querier
}

// NewServiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewServiceRepository(q Querier) *ServiceRepo {
	return &ServiceRepo{q: q}
}

const serviceColumns = `id, code, name, description, type, price, iva_rate, active, created_at, updated_at`

func (r *ServiceRepo) Create(s *entity.Service) error {
	query := `
		INSERT INTO services (` + serviceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.Code, s.Name, s.Description, s.Type, s.Price, s.IVARate, s.Active, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert service: %w", err)
	}
	for i := range s.Components {
		if err := r.insertComponent(&s.Components[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *ServiceRepo) insertComponent(c *entity.ServiceComponent) error {
	query := `
		INSERT INTO service_components (id, service_id, product_id, quantity, notes)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query, c.ID, c.ServiceID, c.ProductID, c.Quantity, c.Notes)
	if err != nil {
		return fmt.Errorf("insert service component: %w", err)
	}
	return nil
}

// Update reescribe el servicio y su receta completa.
func (r *ServiceRepo) Update(s *entity.Service) error {
	query := `
		UPDATE services SET name = $2, description = $3, type = $4, price = $5,
			iva_rate = $6, active = $7, updated_at = now()
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		s.ID, s.Name, s.Description, s.Type, s.Price, s.IVARate, s.Active,
	)
	if err != nil {
		return fmt.Errorf("update service: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	if len(s.Components) > 0 {
		if _, err := r.q.Exec(context.Background(),
			`DELETE FROM service_components WHERE service_id = $1`, s.ID); err != nil {
			return fmt.Errorf("clear service components: %w", err)
		}
		for i := range s.Components {
			if err := r.insertComponent(&s.Components[i]); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *ServiceRepo) GetByID(id string) (*entity.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services WHERE id = $1`
	return r.scanWithComponents(r.q.QueryRow(context.Background(), query, id))
}

func (r *ServiceRepo) GetByCode(code string) (*entity.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services WHERE code = $1`
	return r.scanWithComponents(r.q.QueryRow(context.Background(), query, code))
}

func (r *ServiceRepo) scanWithComponents(row pgx.Row) (*entity.Service, error) {
	var s entity.Service
	err := row.Scan(&s.ID, &s.Code, &s.Name, &s.Description, &s.Type, &s.Price,
		&s.IVARate, &s.Active, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scan service: %w", err)
	}
	components, err := r.loadComponents(s.ID)
	if err != nil {
		return nil, err
	}
	s.Components = components
	return &s, nil
}

func (r *ServiceRepo) loadComponents(serviceID string) ([]entity.ServiceComponent, error) {
	query := `SELECT id, service_id, product_id, quantity, notes
		FROM service_components WHERE service_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, serviceID)
	if err != nil {
		return nil, fmt.Errorf("list service components: %w", err)
	}
	defer rows.Close()

	var out []entity.ServiceComponent
	for rows.Next() {
		var c entity.ServiceComponent
		if err := rows.Scan(&c.ID, &c.ServiceID, &c.ProductID, &c.Quantity, &c.Notes); err != nil {
			return nil, fmt.Errorf("scan service component: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *ServiceRepo) List(onlyActive bool) ([]*entity.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services WHERE active OR NOT $1 ORDER BY code`
	rows, err := r.q.Query(context.Background(), query, onlyActive)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	defer rows.Close()

	var out []*entity.Service
	for rows.Next() {
		var s entity.Service
		if err := rows.Scan(&s.ID, &s.Code, &s.Name, &s.Description, &s.Type, &s.Price,
			&s.IVARate, &s.Active, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan service: %w", err)
		}
		out = append(out, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, s := range out {
		components, err := r.loadComponents(s.ID)
		if err != nil {
			return nil, err
		}
		s.Components = components
	}
	return out, nil
}

var _ repository.WarehouseRepository = (*WarehouseRepo)(nil)

// WarehouseRepo implementación de WarehouseRepository sobre PostgreSQL.
type WarehouseRepo struct {
	q Querier
}

// NewWarehouseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewWarehouseRepository(q Querier) *WarehouseRepo {
	return &WarehouseRepo{q: q}
}

const warehouseColumns = `id, branch_id, name, location, responsible_id, principal, active, created_at, updated_at`

func scanWarehouse(row pgx.Row) (*entity.Warehouse, error) {
	var w entity.Warehouse
	err := row.Scan(&w.ID, &w.BranchID, &w.Name, &w.Location, &w.ResponsibleID,
		&w.Principal, &w.Active, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scan warehouse: %w", err)
	}
	return &w, nil
}

func (r *WarehouseRepo) Create(w *entity.Warehouse) error {
	query := `
		INSERT INTO warehouses (` + warehouseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		w.ID, w.BranchID, w.Name, w.Location, w.ResponsibleID, w.Principal, w.Active, w.CreatedAt, w.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert warehouse: %w", err)
	}
	return nil
}

func (r *WarehouseRepo) Update(w *entity.Warehouse) error {
	query := `
		UPDATE warehouses SET name = $2, location = $3, responsible_id = $4,
			principal = $5, active = $6, updated_at = now()
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		w.ID, w.Name, w.Location, w.ResponsibleID, w.Principal, w.Active,
	)
	if err != nil {
		return fmt.Errorf("update warehouse: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *WarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	query := `SELECT ` + warehouseColumns + ` FROM warehouses WHERE id = $1`
	return scanWarehouse(r.q.QueryRow(context.Background(), query, id))
}

// GetPrincipal devuelve el almacén principal (a lo sumo uno global).
func (r *WarehouseRepo) GetPrincipal() (*entity.Warehouse, error) {
	query := `SELECT ` + warehouseColumns + ` FROM warehouses WHERE principal LIMIT 1`
	return scanWarehouse(r.q.QueryRow(context.Background(), query))
}

func (r *WarehouseRepo) List(onlyActive bool) ([]*entity.Warehouse, error) {
	query := `SELECT ` + warehouseColumns + ` FROM warehouses WHERE active OR NOT $1 ORDER BY name`
	rows, err := r.q.Query(context.Background(), query, onlyActive)
	if err != nil {
		return nil, fmt.Errorf("list warehouses: %w", err)
	}
	defer rows.Close()

	var out []*entity.Warehouse
	for rows.Next() {
		var w entity.Warehouse
		if err := rows.Scan(&w.ID, &w.BranchID, &w.Name, &w.Location, &w.ResponsibleID,
			&w.Principal, &w.Active, &w.CreatedAt, &w.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan warehouse: %w", err)
		}
		out = append(out, &w)
	}
	return out, rows.Err()
}
