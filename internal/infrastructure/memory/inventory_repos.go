package memory

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-paraguay/internal/domain"
	"github.com/jhoicas/pos-paraguay/internal/domain/entity"
	"github.com/jhoicas/pos-paraguay/internal/domain/repository"
)

func stockKey(productID, warehouseID string) string { return productID + "|" + warehouseID }

type stockRepo struct{ s *Store }

var _ repository.StockRepository = (*stockRepo)(nil)

// Get devuelve el saldo; un par (producto, almacén) sin fila equivale a cero.
func (r *stockRepo) Get(productID, warehouseID string) (*entity.Stock, error) {
	st, ok := r.s.stocks[stockKey(productID, warehouseID)]
	if !ok {
		return &entity.Stock{ProductID: productID, WarehouseID: warehouseID, Quantity: decimal.Zero}, nil
	}
	return &st, nil
}

func (r *stockRepo) GetForUpdate(productID, warehouseID string) (*entity.Stock, error) {
	return r.Get(productID, warehouseID)
}

func (r *stockRepo) Upsert(stock *entity.Stock) error {
	r.s.stocks[stockKey(stock.ProductID, stock.WarehouseID)] = *stock
	return nil
}

func (r *stockRepo) ListByWarehouse(warehouseID string) ([]*entity.Stock, error) {
	var out []*entity.Stock
	for _, st := range r.s.stocks {
		if st.WarehouseID == warehouseID {
			c := st
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out, nil
}

type movementRepo struct{ s *Store }

var _ repository.InventoryMovementRepository = (*movementRepo)(nil)

func (r *movementRepo) Create(m *entity.InventoryMovement) error {
	if _, ok := r.s.movements[m.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.movements[m.ID] = *m
	return nil
}

func (r *movementRepo) GetByID(id string) (*entity.InventoryMovement, error) {
	m, ok := r.s.movements[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &m, nil
}

func (r *movementRepo) MarkReverted(id string) error {
	m, ok := r.s.movements[id]
	if !ok {
		return domain.ErrNotFound
	}
	m.Reverted = true
	r.s.movements[id] = m
	return nil
}

func (r *movementRepo) ListByReason(reason string) ([]*entity.InventoryMovement, error) {
	var out []*entity.InventoryMovement
	for _, m := range r.s.movements {
		if m.Reason == reason {
			c := m
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *movementRepo) SumSigned(productID, warehouseID string) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, m := range r.s.movements {
		if m.ProductID == productID && m.WarehouseID == warehouseID {
			sum = sum.Add(m.SignedQuantity())
		}
	}
	return sum, nil
}

type transferRepo struct{ s *Store }

var _ repository.TransferRepository = (*transferRepo)(nil)

func (r *transferRepo) Create(t *entity.Transfer) error {
	if _, ok := r.s.transfers[t.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.transfers[t.ID] = cloneTransfer(*t)
	return nil
}

func (r *transferRepo) GetByID(id string) (*entity.Transfer, error) {
	t, ok := r.s.transfers[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c := cloneTransfer(t)
	return &c, nil
}

func (r *transferRepo) CountByReferencePrefix(prefix string) (int, error) {
	count := 0
	for _, t := range r.s.transfers {
		if strings.HasPrefix(t.Reference, prefix) {
			count++
		}
	}
	return count, nil
}
