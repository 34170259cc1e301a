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

var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo implementación de CompanyRepository sobre PostgreSQL (usable con pool o tx).
type CompanyRepo struct {
	q Querier
}

// NewCompanyRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCompanyRepository(q Querier) *CompanyRepo {
	return &CompanyRepo{q: q}
}

const companyColumns = `id, name, trade_name, ruc, dv, regimen, contributor_type, address,
	secondary_street, house_number, dept_code, district_code, city_code, barrio_code,
	phone, email, economic_activity, active, created_at, updated_at`

func scanCompany(row pgx.Row) (*entity.Company, error) {
	var c entity.Company
	err := row.Scan(
		&c.ID, &c.Name, &c.TradeName, &c.RUC, &c.DV, &c.Regimen, &c.ContributorType, &c.Address,
		&c.SecondaryStreet, &c.HouseNumber, &c.DeptCode, &c.DistrictCode, &c.CityCode, &c.BarrioCode,
		&c.Phone, &c.Email, &c.EconomicActivity, &c.Active, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scan company: %w", err)
	}
	return &c, nil
}

func (r *CompanyRepo) Create(c *entity.Company) error {
	query := `
		INSERT INTO companies (` + companyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.Name, c.TradeName, c.RUC, c.DV, c.Regimen, c.ContributorType, c.Address,
		c.SecondaryStreet, c.HouseNumber, c.DeptCode, c.DistrictCode, c.CityCode, c.BarrioCode,
		c.Phone, c.Email, c.EconomicActivity, c.Active, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert company: %w", err)
	}
	return nil
}

func (r *CompanyRepo) Update(c *entity.Company) error {
	query := `
		UPDATE companies SET name = $2, trade_name = $3, ruc = $4, dv = $5, regimen = $6,
			contributor_type = $7, address = $8, secondary_street = $9, house_number = $10,
			dept_code = $11, district_code = $12, city_code = $13, barrio_code = $14,
			phone = $15, email = $16, economic_activity = $17, active = $18, updated_at = now()
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		c.ID, c.Name, c.TradeName, c.RUC, c.DV, c.Regimen,
		c.ContributorType, c.Address, c.SecondaryStreet, c.HouseNumber,
		c.DeptCode, c.DistrictCode, c.CityCode, c.BarrioCode,
		c.Phone, c.Email, c.EconomicActivity, c.Active,
	)
	if err != nil {
		return fmt.Errorf("update company: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *CompanyRepo) GetByID(id string) (*entity.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE id = $1`
	return scanCompany(r.q.QueryRow(context.Background(), query, id))
}

// GetPrincipal devuelve la empresa emisora activa (una sola por despliegue).
func (r *CompanyRepo) GetPrincipal() (*entity.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE active ORDER BY created_at LIMIT 1`
	return scanCompany(r.q.QueryRow(context.Background(), query))
}

var _ repository.BranchRepository = (*BranchRepo)(nil)

// BranchRepo implementación de BranchRepository sobre PostgreSQL.
type BranchRepo struct {
	q Querier
}

// NewBranchRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBranchRepository(q Querier) *BranchRepo {
	return &BranchRepo{q: q}
}

const branchColumns = `id, company_id, code, name, address, phone, principal, active, created_at, updated_at`

func scanBranch(row pgx.Row) (*entity.Branch, error) {
	var b entity.Branch
	err := row.Scan(&b.ID, &b.CompanyID, &b.Code, &b.Name, &b.Address, &b.Phone,
		&b.Principal, &b.Active, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scan branch: %w", err)
	}
	return &b, nil
}

func (r *BranchRepo) Create(b *entity.Branch) error {
	query := `
		INSERT INTO branches (` + branchColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		b.ID, b.CompanyID, b.Code, b.Name, b.Address, b.Phone, b.Principal, b.Active, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert branch: %w", err)
	}
	return nil
}

func (r *BranchRepo) Update(b *entity.Branch) error {
	query := `
		UPDATE branches SET name = $2, address = $3, phone = $4, principal = $5, active = $6, updated_at = now()
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query, b.ID, b.Name, b.Address, b.Phone, b.Principal, b.Active)
	if err != nil {
		return fmt.Errorf("update branch: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *BranchRepo) GetByID(id string) (*entity.Branch, error) {
	query := `SELECT ` + branchColumns + ` FROM branches WHERE id = $1`
	return scanBranch(r.q.QueryRow(context.Background(), query, id))
}

func (r *BranchRepo) ListByCompany(companyID string) ([]*entity.Branch, error) {
	query := `SELECT ` + branchColumns + ` FROM branches WHERE company_id = $1 ORDER BY code`
	rows, err := r.q.Query(context.Background(), query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list branches: %w", err)
	}
	defer rows.Close()

	var out []*entity.Branch
	for rows.Next() {
		var b entity.Branch
		if err := rows.Scan(&b.ID, &b.CompanyID, &b.Code, &b.Name, &b.Address, &b.Phone,
			&b.Principal, &b.Active, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan branch: %w", err)
		}
		out = append(out, &b)
	}
	return out, rows.Err()
}

var _ repository.ExpeditionPointRepository = (*ExpeditionPointRepo)(nil)

// ExpeditionPointRepo implementación de ExpeditionPointRepository sobre PostgreSQL.
type ExpeditionPointRepo struct {
	q Querier
}

// NewExpeditionPointRepository construye el adaptador. Pasar pool o tx (Querier).
func NewExpeditionPointRepository(q Querier) *ExpeditionPointRepo {
	return &ExpeditionPointRepo{q: q}
}

const pointColumns = `id, branch_id, code, description, active, created_at, updated_at`

func (r *ExpeditionPointRepo) Create(p *entity.ExpeditionPoint) error {
	query := `
		INSERT INTO expedition_points (` + pointColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.BranchID, p.Code, p.Description, p.Active, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert expedition point: %w", err)
	}
	return nil
}

func (r *ExpeditionPointRepo) GetByID(id string) (*entity.ExpeditionPoint, error) {
	query := `SELECT ` + pointColumns + ` FROM expedition_points WHERE id = $1`
	var p entity.ExpeditionPoint
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.BranchID, &p.Code, &p.Description, &p.Active, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get expedition point: %w", err)
	}
	return &p, nil
}

func (r *ExpeditionPointRepo) ListByBranch(branchID string) ([]*entity.ExpeditionPoint, error) {
	query := `SELECT ` + pointColumns + ` FROM expedition_points WHERE branch_id = $1 ORDER BY code`
	rows, err := r.q.Query(context.Background(), query, branchID)
	if err != nil {
		return nil, fmt.Errorf("list expedition points: %w", err)
	}
	defer rows.Close()

	var out []*entity.ExpeditionPoint
	for rows.Next() {
		var p entity.ExpeditionPoint
		if err := rows.Scan(&p.ID, &p.BranchID, &p.Code, &p.Description, &p.Active, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan expedition point: %w", err)
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}
