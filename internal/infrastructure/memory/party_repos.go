package memory

import (
	"sort"

	"github.com/jhoicas/pos-paraguay/internal/domain"
	"github.com/jhoicas/pos-paraguay/internal/domain/entity"
	"github.com/jhoicas/pos-paraguay/internal/domain/repository"
)

type customerRepo struct{ s *Store }

var _ repository.CustomerRepository = (*customerRepo)(nil)

func (r *customerRepo) Create(c *entity.Customer) error {
	if _, ok := r.s.customers[c.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.customers[c.ID] = *c
	return nil
}

func (r *customerRepo) Update(c *entity.Customer) error {
	if _, ok := r.s.customers[c.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.customers[c.ID] = *c
	return nil
}

func (r *customerRepo) GetByID(id string) (*entity.Customer, error) {
	c, ok := r.s.customers[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

func (r *customerRepo) GetByDocument(docType, docNumber string) (*entity.Customer, error) {
	for _, c := range r.s.customers {
		if c.DocType == docType && c.DocNumber == docNumber {
			v := c
			return &v, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *customerRepo) List(onlyActive bool) ([]*entity.Customer, error) {
	var out []*entity.Customer
	for _, c := range r.s.customers {
		if onlyActive && !c.Active {
			continue
		}
		v := c
		out = append(out, &v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type supplierRepo struct{ s *Store }

var _ repository.SupplierRepository = (*supplierRepo)(nil)

func (r *supplierRepo) Create(sp *entity.Supplier) error {
	if _, ok := r.s.suppliers[sp.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.suppliers[sp.ID] = *sp
	return nil
}

func (r *supplierRepo) Update(sp *entity.Supplier) error {
	if _, ok := r.s.suppliers[sp.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.suppliers[sp.ID] = *sp
	return nil
}

func (r *supplierRepo) GetByID(id string) (*entity.Supplier, error) {
	sp, ok := r.s.suppliers[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &sp, nil
}

func (r *supplierRepo) GetByRUC(ruc string) (*entity.Supplier, error) {
	for _, sp := range r.s.suppliers {
		if sp.RUC == ruc {
			v := sp
			return &v, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *supplierRepo) List(onlyActive bool) ([]*entity.Supplier, error) {
	var out []*entity.Supplier
	for _, sp := range r.s.suppliers {
		if onlyActive && !sp.Active {
			continue
		}
		v := sp
		out = append(out, &v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type userRepo struct{ s *Store }

var _ repository.UserRepository = (*userRepo)(nil)

func (r *userRepo) Create(u *entity.User) error {
	if _, ok := r.s.users[u.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.users[u.ID] = *u
	return nil
}

func (r *userRepo) Update(u *entity.User) error {
	if _, ok := r.s.users[u.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.users[u.ID] = *u
	return nil
}

func (r *userRepo) GetByID(id string) (*entity.User, error) {
	u, ok := r.s.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &u, nil
}

func (r *userRepo) GetByUsername(username string) (*entity.User, error) {
	for _, u := range r.s.users {
		if u.Username == username {
			v := u
			return &v, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *userRepo) List(onlyActive bool) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.s.users {
		if onlyActive && !u.Active {
			continue
		}
		v := u
		out = append(out, &v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}
