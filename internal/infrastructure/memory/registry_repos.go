package memory

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-paraguay/internal/domain"
	"github.com/jhoicas/pos-paraguay/internal/domain/entity"
	"github.com/jhoicas/pos-paraguay/internal/domain/repository"
)

type companyRepo struct{ s *Store }

var _ repository.CompanyRepository = (*companyRepo)(nil)

func (r *companyRepo) Create(c *entity.Company) error {
	if _, ok := r.s.companies[c.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.companies[c.ID] = *c
	return nil
}

func (r *companyRepo) Update(c *entity.Company) error {
	if _, ok := r.s.companies[c.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.companies[c.ID] = *c
	return nil
}

func (r *companyRepo) GetByID(id string) (*entity.Company, error) {
	c, ok := r.s.companies[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

func (r *companyRepo) GetPrincipal() (*entity.Company, error) {
	for _, c := range r.s.companies {
		if c.Active {
			out := c
			return &out, nil
		}
	}
	return nil, domain.ErrNotFound
}

type branchRepo struct{ s *Store }

var _ repository.BranchRepository = (*branchRepo)(nil)

func (r *branchRepo) Create(b *entity.Branch) error {
	if _, ok := r.s.branches[b.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.branches[b.ID] = *b
	return nil
}

func (r *branchRepo) Update(b *entity.Branch) error {
	if _, ok := r.s.branches[b.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.branches[b.ID] = *b
	return nil
}

func (r *branchRepo) GetByID(id string) (*entity.Branch, error) {
	b, ok := r.s.branches[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &b, nil
}

func (r *branchRepo) ListByCompany(companyID string) ([]*entity.Branch, error) {
	var out []*entity.Branch
	for _, b := range r.s.branches {
		if b.CompanyID == companyID {
			c := b
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

type expeditionPointRepo struct{ s *Store }

var _ repository.ExpeditionPointRepository = (*expeditionPointRepo)(nil)

func (r *expeditionPointRepo) Create(p *entity.ExpeditionPoint) error {
	if _, ok := r.s.expeditionPoints[p.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.expeditionPoints[p.ID] = *p
	return nil
}

func (r *expeditionPointRepo) GetByID(id string) (*entity.ExpeditionPoint, error) {
	p, ok := r.s.expeditionPoints[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (r *expeditionPointRepo) ListByBranch(branchID string) ([]*entity.ExpeditionPoint, error) {
	var out []*entity.ExpeditionPoint
	for _, p := range r.s.expeditionPoints {
		if p.BranchID == branchID {
			c := p
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func seqKey(pointID, docType string) string { return pointID + "|" + docType }

type sequenceRepo struct{ s *Store }

var _ repository.SequenceRepository = (*sequenceRepo)(nil)

func (r *sequenceRepo) Create(seq *entity.DocumentSequence) error {
	key := seqKey(seq.ExpeditionPointID, seq.DocumentType)
	if _, ok := r.s.sequences[key]; ok {
		return domain.ErrDuplicate
	}
	r.s.sequences[key] = *seq
	return nil
}

func (r *sequenceRepo) Update(seq *entity.DocumentSequence) error {
	key := seqKey(seq.ExpeditionPointID, seq.DocumentType)
	if _, ok := r.s.sequences[key]; !ok {
		return domain.ErrNotFound
	}
	r.s.sequences[key] = *seq
	return nil
}

func (r *sequenceRepo) GetByPointAndType(pointID, docType string) (*entity.DocumentSequence, error) {
	seq, ok := r.s.sequences[seqKey(pointID, docType)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &seq, nil
}

// GetForUpdate equivale a GetByPointAndType: el mutex del Store ya serializa.
func (r *sequenceRepo) GetForUpdate(pointID, docType string) (*entity.DocumentSequence, error) {
	return r.GetByPointAndType(pointID, docType)
}

func (r *sequenceRepo) ListByPoint(pointID string) ([]*entity.DocumentSequence, error) {
	var out []*entity.DocumentSequence
	for _, seq := range r.s.sequences {
		if seq.ExpeditionPointID == pointID {
			c := seq
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DocumentType < out[j].DocumentType })
	return out, nil
}

type timbradoRepo struct{ s *Store }

var _ repository.TimbradoRepository = (*timbradoRepo)(nil)

func (r *timbradoRepo) Create(t *entity.Timbrado) error {
	if _, ok := r.s.timbrados[t.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.timbrados[t.ID] = *t
	return nil
}

func (r *timbradoRepo) Update(t *entity.Timbrado) error {
	if _, ok := r.s.timbrados[t.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.timbrados[t.ID] = *t
	return nil
}

func (r *timbradoRepo) GetByID(id string) (*entity.Timbrado, error) {
	t, ok := r.s.timbrados[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &t, nil
}

func (r *timbradoRepo) GetByNumber(number string) (*entity.Timbrado, error) {
	for _, t := range r.s.timbrados {
		if t.Number == number {
			c := t
			return &c, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *timbradoRepo) List() ([]*entity.Timbrado, error) {
	var out []*entity.Timbrado
	for _, t := range r.s.timbrados {
		c := t
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, nil
}

type categoryRepo struct{ s *Store }

var _ repository.CategoryRepository = (*categoryRepo)(nil)

func (r *categoryRepo) Create(c *entity.Category) error {
	if _, ok := r.s.categories[c.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.categories[c.ID] = *c
	return nil
}

func (r *categoryRepo) Update(c *entity.Category) error {
	if _, ok := r.s.categories[c.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.categories[c.ID] = *c
	return nil
}

func (r *categoryRepo) GetByID(id string) (*entity.Category, error) {
	c, ok := r.s.categories[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

func (r *categoryRepo) List() ([]*entity.Category, error) {
	var out []*entity.Category
	for _, c := range r.s.categories {
		v := c
		out = append(out, &v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type unitMeasureRepo struct{ s *Store }

var _ repository.UnitMeasureRepository = (*unitMeasureRepo)(nil)

func (r *unitMeasureRepo) Create(u *entity.UnitMeasure) error {
	if _, ok := r.s.units[u.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.units[u.ID] = *u
	return nil
}

func (r *unitMeasureRepo) GetByID(id string) (*entity.UnitMeasure, error) {
	u, ok := r.s.units[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &u, nil
}

func (r *unitMeasureRepo) List() ([]*entity.UnitMeasure, error) {
	var out []*entity.UnitMeasure
	for _, u := range r.s.units {
		v := u
		out = append(out, &v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type productRepo struct{ s *Store }

var _ repository.ProductRepository = (*productRepo)(nil)

func (r *productRepo) Create(p *entity.Product) error {
	if _, ok := r.s.products[p.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.products[p.ID] = *p
	return nil
}

func (r *productRepo) Update(p *entity.Product) error {
	if _, ok := r.s.products[p.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.products[p.ID] = *p
	return nil
}

func (r *productRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (r *productRepo) GetByCode(code string) (*entity.Product, error) {
	for _, p := range r.s.products {
		if p.Code == code {
			c := p
			return &c, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *productRepo) List(onlyActive bool) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.s.products {
		if onlyActive && !p.Active {
			continue
		}
		c := p
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (r *productRepo) UpdatePurchasePrice(id string, price decimal.Decimal) error {
	p, ok := r.s.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.PurchasePrice = price
	r.s.products[id] = p
	return nil
}

type serviceRepo struct{ s *Store }

var _ repository.ServiceRepository = (*serviceRepo)(nil)

func (r *serviceRepo) Create(svc *entity.Service) error {
	if _, ok := r.s.services[svc.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.services[svc.ID] = cloneService(*svc)
	return nil
}

func (r *serviceRepo) Update(svc *entity.Service) error {
	if _, ok := r.s.services[svc.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.services[svc.ID] = cloneService(*svc)
	return nil
}

func (r *serviceRepo) GetByID(id string) (*entity.Service, error) {
	svc, ok := r.s.services[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c := cloneService(svc)
	return &c, nil
}

func (r *serviceRepo) GetByCode(code string) (*entity.Service, error) {
	for _, svc := range r.s.services {
		if svc.Code == code {
			c := cloneService(svc)
			return &c, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *serviceRepo) List(onlyActive bool) ([]*entity.Service, error) {
	var out []*entity.Service
	for _, svc := range r.s.services {
		if onlyActive && !svc.Active {
			continue
		}
		c := cloneService(svc)
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

type warehouseRepo struct{ s *Store }

var _ repository.WarehouseRepository = (*warehouseRepo)(nil)

func (r *warehouseRepo) Create(w *entity.Warehouse) error {
	if _, ok := r.s.warehouses[w.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.warehouses[w.ID] = *w
	return nil
}

func (r *warehouseRepo) Update(w *entity.Warehouse) error {
	if _, ok := r.s.warehouses[w.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.warehouses[w.ID] = *w
	return nil
}

func (r *warehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	w, ok := r.s.warehouses[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &w, nil
}

func (r *warehouseRepo) GetPrincipal() (*entity.Warehouse, error) {
	for _, w := range r.s.warehouses {
		if w.Principal && w.Active {
			c := w
			return &c, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *warehouseRepo) List(onlyActive bool) ([]*entity.Warehouse, error) {
	var out []*entity.Warehouse
	for _, w := range r.s.warehouses {
		if onlyActive && !w.Active {
			continue
		}
		c := w
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
