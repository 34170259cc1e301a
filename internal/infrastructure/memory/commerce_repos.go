package memory

import (
	"sort"

	"github.com/jhoicas/pos-paraguay/internal/domain"
	"github.com/jhoicas/pos-paraguay/internal/domain/entity"
	"github.com/jhoicas/pos-paraguay/internal/domain/repository"
)

type purchaseOrderRepo struct{ s *Store }

var _ repository.PurchaseOrderRepository = (*purchaseOrderRepo)(nil)

func (r *purchaseOrderRepo) Create(o *entity.PurchaseOrder) error {
	if _, ok := r.s.purchaseOrders[o.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.purchaseOrders[o.ID] = clonePurchaseOrder(*o)
	return nil
}

func (r *purchaseOrderRepo) Update(o *entity.PurchaseOrder) error {
	stored, ok := r.s.purchaseOrders[o.ID]
	if !ok {
		return domain.ErrNotFound
	}
	clone := clonePurchaseOrder(*o)
	if len(clone.Details) == 0 {
		clone.Details = stored.Details
	}
	r.s.purchaseOrders[o.ID] = clone
	return nil
}

func (r *purchaseOrderRepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	o, ok := r.s.purchaseOrders[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c := clonePurchaseOrder(o)
	return &c, nil
}

func (r *purchaseOrderRepo) GetForUpdate(id string) (*entity.PurchaseOrder, error) {
	return r.GetByID(id)
}

func (r *purchaseOrderRepo) List(state string) ([]*entity.PurchaseOrder, error) {
	var out []*entity.PurchaseOrder
	for _, o := range r.s.purchaseOrders {
		if state != "" && o.State != state {
			continue
		}
		c := clonePurchaseOrder(o)
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, nil
}

func (r *purchaseOrderRepo) UpdateDetail(detail *entity.PurchaseOrderDetail) error {
	o, ok := r.s.purchaseOrders[detail.OrderID]
	if !ok {
		return domain.ErrNotFound
	}
	clone := clonePurchaseOrder(o)
	for i, d := range clone.Details {
		if d.ID == detail.ID {
			c := *detail
			clone.Details[i] = &c
			r.s.purchaseOrders[detail.OrderID] = clone
			return nil
		}
	}
	return domain.ErrNotFound
}

type receptionRepo struct{ s *Store }

var _ repository.ReceptionRepository = (*receptionRepo)(nil)

func (r *receptionRepo) Create(rec *entity.Reception) error {
	if _, ok := r.s.receptions[rec.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.receptions[rec.ID] = *rec
	return nil
}

func (r *receptionRepo) ListByOrder(orderID string) ([]*entity.Reception, error) {
	var out []*entity.Reception
	for _, rec := range r.s.receptions {
		if rec.OrderID == orderID {
			c := rec
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

type payableRepo struct{ s *Store }

var _ repository.AccountsPayableRepository = (*payableRepo)(nil)

func (r *payableRepo) Create(p *entity.AccountsPayable) error {
	if _, ok := r.s.payables[p.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.payables[p.ID] = *p
	return nil
}

func (r *payableRepo) Update(p *entity.AccountsPayable) error {
	if _, ok := r.s.payables[p.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.payables[p.ID] = *p
	return nil
}

func (r *payableRepo) GetByID(id string) (*entity.AccountsPayable, error) {
	p, ok := r.s.payables[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (r *payableRepo) GetForUpdate(id string) (*entity.AccountsPayable, error) {
	return r.GetByID(id)
}

func (r *payableRepo) GetByOrder(orderID string) (*entity.AccountsPayable, error) {
	for _, p := range r.s.payables {
		if p.OrderID == orderID {
			c := p
			return &c, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *payableRepo) ListPending() ([]*entity.AccountsPayable, error) {
	var out []*entity.AccountsPayable
	for _, p := range r.s.payables {
		if p.State == entity.PayableAnulada || p.Balance.IsZero() {
			continue
		}
		c := p
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DueDate.Before(out[j].DueDate) })
	return out, nil
}

type supplierPaymentRepo struct{ s *Store }

var _ repository.SupplierPaymentRepository = (*supplierPaymentRepo)(nil)

func (r *supplierPaymentRepo) Create(p *entity.SupplierPayment) error {
	if _, ok := r.s.supplierPayments[p.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.supplierPayments[p.ID] = *p
	return nil
}

func (r *supplierPaymentRepo) Update(p *entity.SupplierPayment) error {
	if _, ok := r.s.supplierPayments[p.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.supplierPayments[p.ID] = *p
	return nil
}

func (r *supplierPaymentRepo) GetByID(id string) (*entity.SupplierPayment, error) {
	p, ok := r.s.supplierPayments[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (r *supplierPaymentRepo) ListByPayable(payableID string) ([]*entity.SupplierPayment, error) {
	var out []*entity.SupplierPayment
	for _, p := range r.s.supplierPayments {
		if p.PayableID == payableID {
			c := p
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

type saleRepo struct{ s *Store }

var _ repository.SaleRepository = (*saleRepo)(nil)

func (r *saleRepo) Create(sale *entity.Sale) error {
	if _, ok := r.s.sales[sale.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.sales[sale.ID] = cloneSale(*sale)
	return nil
}

func (r *saleRepo) Update(sale *entity.Sale) error {
	stored, ok := r.s.sales[sale.ID]
	if !ok {
		return domain.ErrNotFound
	}
	clone := cloneSale(*sale)
	if len(clone.Details) == 0 {
		clone.Details = stored.Details
	}
	r.s.sales[sale.ID] = clone
	return nil
}

func (r *saleRepo) GetByID(id string) (*entity.Sale, error) {
	sale, ok := r.s.sales[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c := cloneSale(sale)
	return &c, nil
}

func (r *saleRepo) GetForUpdate(id string) (*entity.Sale, error) {
	return r.GetByID(id)
}

func (r *saleRepo) GetByNumber(number string) (*entity.Sale, error) {
	for _, sale := range r.s.sales {
		if sale.Number == number {
			c := cloneSale(sale)
			return &c, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *saleRepo) List(state string) ([]*entity.Sale, error) {
	var out []*entity.Sale
	for _, sale := range r.s.sales {
		if state != "" && sale.State != state {
			continue
		}
		c := cloneSale(sale)
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, nil
}

type cuotaRepo struct{ s *Store }

var _ repository.CuotaRepository = (*cuotaRepo)(nil)

func (r *cuotaRepo) Create(c *entity.Cuota) error {
	if _, ok := r.s.cuotas[c.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.cuotas[c.ID] = *c
	return nil
}

func (r *cuotaRepo) Update(c *entity.Cuota) error {
	if _, ok := r.s.cuotas[c.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.cuotas[c.ID] = *c
	return nil
}

func (r *cuotaRepo) GetByID(id string) (*entity.Cuota, error) {
	c, ok := r.s.cuotas[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

func (r *cuotaRepo) GetForUpdate(id string) (*entity.Cuota, error) {
	return r.GetByID(id)
}

func (r *cuotaRepo) ListBySale(saleID string) ([]*entity.Cuota, error) {
	var out []*entity.Cuota
	for _, c := range r.s.cuotas {
		if c.SaleID == saleID {
			v := c
			out = append(out, &v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out, nil
}

type cuotaPaymentRepo struct{ s *Store }

var _ repository.CuotaPaymentRepository = (*cuotaPaymentRepo)(nil)

func (r *cuotaPaymentRepo) Create(p *entity.CuotaPayment) error {
	if _, ok := r.s.cuotaPayments[p.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.cuotaPayments[p.ID] = *p
	return nil
}

func (r *cuotaPaymentRepo) Update(p *entity.CuotaPayment) error {
	if _, ok := r.s.cuotaPayments[p.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.cuotaPayments[p.ID] = *p
	return nil
}

func (r *cuotaPaymentRepo) GetByID(id string) (*entity.CuotaPayment, error) {
	p, ok := r.s.cuotaPayments[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (r *cuotaPaymentRepo) ListByCuota(cuotaID string) ([]*entity.CuotaPayment, error) {
	var out []*entity.CuotaPayment
	for _, p := range r.s.cuotaPayments {
		if p.CuotaID == cuotaID {
			c := p
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

type sellerConfigRepo struct{ s *Store }

var _ repository.SellerCommissionConfigRepository = (*sellerConfigRepo)(nil)

func (r *sellerConfigRepo) Create(c *entity.SellerCommissionConfig) error {
	if _, ok := r.s.sellerConfigs[c.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.sellerConfigs[c.ID] = *c
	return nil
}

func (r *sellerConfigRepo) Update(c *entity.SellerCommissionConfig) error {
	if _, ok := r.s.sellerConfigs[c.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.sellerConfigs[c.ID] = *c
	return nil
}

func (r *sellerConfigRepo) GetByID(id string) (*entity.SellerCommissionConfig, error) {
	c, ok := r.s.sellerConfigs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

func (r *sellerConfigRepo) GetActiveBySeller(sellerID string) (*entity.SellerCommissionConfig, error) {
	for _, c := range r.s.sellerConfigs {
		if c.SellerID == sellerID && c.Active {
			v := c
			return &v, nil
		}
	}
	return nil, domain.ErrNotFound
}

type sellerCommissionRepo struct{ s *Store }

var _ repository.SellerCommissionRepository = (*sellerCommissionRepo)(nil)

func (r *sellerCommissionRepo) Create(c *entity.SellerCommission) error {
	if _, ok := r.s.sellerCommissions[c.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.sellerCommissions[c.ID] = *c
	return nil
}

func (r *sellerCommissionRepo) Update(c *entity.SellerCommission) error {
	if _, ok := r.s.sellerCommissions[c.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.sellerCommissions[c.ID] = *c
	return nil
}

func (r *sellerCommissionRepo) GetByID(id string) (*entity.SellerCommission, error) {
	c, ok := r.s.sellerCommissions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

func (r *sellerCommissionRepo) GetForUpdate(id string) (*entity.SellerCommission, error) {
	return r.GetByID(id)
}

func (r *sellerCommissionRepo) ListBySale(saleID string) ([]*entity.SellerCommission, error) {
	var out []*entity.SellerCommission
	for _, c := range r.s.sellerCommissions {
		if c.SaleID == saleID {
			v := c
			out = append(out, &v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *sellerCommissionRepo) ListBySeller(sellerID string) ([]*entity.SellerCommission, error) {
	var out []*entity.SellerCommission
	for _, c := range r.s.sellerCommissions {
		if c.SellerID == sellerID {
			v := c
			out = append(out, &v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

type collectorConfigRepo struct{ s *Store }

var _ repository.CollectorCommissionConfigRepository = (*collectorConfigRepo)(nil)

func (r *collectorConfigRepo) Create(c *entity.CollectorCommissionConfig) error {
	if _, ok := r.s.collectorConfigs[c.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.collectorConfigs[c.ID] = *c
	return nil
}

func (r *collectorConfigRepo) Update(c *entity.CollectorCommissionConfig) error {
	if _, ok := r.s.collectorConfigs[c.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.collectorConfigs[c.ID] = *c
	return nil
}

func (r *collectorConfigRepo) GetByID(id string) (*entity.CollectorCommissionConfig, error) {
	c, ok := r.s.collectorConfigs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

func (r *collectorConfigRepo) GetActiveByCollector(collectorID string) (*entity.CollectorCommissionConfig, error) {
	for _, c := range r.s.collectorConfigs {
		if c.CollectorID == collectorID && c.Active {
			v := c
			return &v, nil
		}
	}
	return nil, domain.ErrNotFound
}

type collectorCommissionRepo struct{ s *Store }

var _ repository.CollectorCommissionRepository = (*collectorCommissionRepo)(nil)

func (r *collectorCommissionRepo) Create(c *entity.CollectorCommission) error {
	if _, ok := r.s.collectorCommissions[c.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.collectorCommissions[c.ID] = *c
	return nil
}

func (r *collectorCommissionRepo) Update(c *entity.CollectorCommission) error {
	if _, ok := r.s.collectorCommissions[c.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.collectorCommissions[c.ID] = *c
	return nil
}

func (r *collectorCommissionRepo) GetByID(id string) (*entity.CollectorCommission, error) {
	c, ok := r.s.collectorCommissions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

func (r *collectorCommissionRepo) GetForUpdate(id string) (*entity.CollectorCommission, error) {
	return r.GetByID(id)
}

func (r *collectorCommissionRepo) ListByPayment(paymentID string) ([]*entity.CollectorCommission, error) {
	var out []*entity.CollectorCommission
	for _, c := range r.s.collectorCommissions {
		if c.PaymentID == paymentID {
			v := c
			out = append(out, &v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *collectorCommissionRepo) ListByCollector(collectorID string) ([]*entity.CollectorCommission, error) {
	var out []*entity.CollectorCommission
	for _, c := range r.s.collectorCommissions {
		if c.CollectorID == collectorID {
			v := c
			out = append(out, &v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

type creditNoteRepo struct{ s *Store }

var _ repository.CreditNoteRepository = (*creditNoteRepo)(nil)

func (r *creditNoteRepo) Create(n *entity.CreditNote) error {
	if _, ok := r.s.creditNotes[n.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.creditNotes[n.ID] = cloneCreditNote(*n)
	return nil
}

func (r *creditNoteRepo) Update(n *entity.CreditNote) error {
	stored, ok := r.s.creditNotes[n.ID]
	if !ok {
		return domain.ErrNotFound
	}
	clone := cloneCreditNote(*n)
	if len(clone.Details) == 0 {
		clone.Details = stored.Details
	}
	r.s.creditNotes[n.ID] = clone
	return nil
}

func (r *creditNoteRepo) GetByID(id string) (*entity.CreditNote, error) {
	n, ok := r.s.creditNotes[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c := cloneCreditNote(n)
	return &c, nil
}

func (r *creditNoteRepo) GetForUpdate(id string) (*entity.CreditNote, error) {
	return r.GetByID(id)
}

func (r *creditNoteRepo) ListBySale(saleID string) ([]*entity.CreditNote, error) {
	var out []*entity.CreditNote
	for _, n := range r.s.creditNotes {
		if n.SaleID == saleID {
			c := cloneCreditNote(n)
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, nil
}

type documentRepo struct{ s *Store }

var _ repository.ElectronicDocumentRepository = (*documentRepo)(nil)

func (r *documentRepo) Create(d *entity.ElectronicDocument) error {
	if _, ok := r.s.documents[d.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.documents[d.ID] = *d
	return nil
}

func (r *documentRepo) Update(d *entity.ElectronicDocument) error {
	if _, ok := r.s.documents[d.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.documents[d.ID] = *d
	return nil
}

func (r *documentRepo) GetByID(id string) (*entity.ElectronicDocument, error) {
	d, ok := r.s.documents[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &d, nil
}

func (r *documentRepo) GetBySale(saleID string) (*entity.ElectronicDocument, error) {
	for _, d := range r.s.documents {
		if d.SaleID == saleID {
			c := d
			return &c, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *documentRepo) ListPending(maxAttempts int) ([]*entity.ElectronicDocument, error) {
	var out []*entity.ElectronicDocument
	for _, d := range r.s.documents {
		if d.Resendable(maxAttempts) {
			c := d
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}
