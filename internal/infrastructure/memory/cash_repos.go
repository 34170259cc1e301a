package memory

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-paraguay/internal/domain"
	"github.com/jhoicas/pos-paraguay/internal/domain/entity"
	"github.com/jhoicas/pos-paraguay/internal/domain/repository"
)

type cashRegisterRepo struct{ s *Store }

var _ repository.CashRegisterRepository = (*cashRegisterRepo)(nil)

func (r *cashRegisterRepo) Create(reg *entity.CashRegister) error {
	if _, ok := r.s.cashRegisters[reg.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.cashRegisters[reg.ID] = *reg
	return nil
}

func (r *cashRegisterRepo) Update(reg *entity.CashRegister) error {
	if _, ok := r.s.cashRegisters[reg.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.cashRegisters[reg.ID] = *reg
	return nil
}

func (r *cashRegisterRepo) GetByID(id string) (*entity.CashRegister, error) {
	reg, ok := r.s.cashRegisters[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &reg, nil
}

func (r *cashRegisterRepo) GetForUpdate(id string) (*entity.CashRegister, error) {
	return r.GetByID(id)
}

func (r *cashRegisterRepo) List() ([]*entity.CashRegister, error) {
	var out []*entity.CashRegister
	for _, reg := range r.s.cashRegisters {
		c := reg
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type cashSessionRepo struct{ s *Store }

var _ repository.CashSessionRepository = (*cashSessionRepo)(nil)

func (r *cashSessionRepo) Create(session *entity.CashSession) error {
	if _, ok := r.s.cashSessions[session.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.cashSessions[session.ID] = *session
	return nil
}

func (r *cashSessionRepo) Update(session *entity.CashSession) error {
	if _, ok := r.s.cashSessions[session.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.cashSessions[session.ID] = *session
	return nil
}

func (r *cashSessionRepo) GetByID(id string) (*entity.CashSession, error) {
	session, ok := r.s.cashSessions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &session, nil
}

func (r *cashSessionRepo) GetOpenByRegister(registerID string) (*entity.CashSession, error) {
	for _, session := range r.s.cashSessions {
		if session.RegisterID == registerID && session.State == entity.SessionAbierta {
			c := session
			return &c, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *cashSessionRepo) SumMovements(sessionID string) (decimal.Decimal, decimal.Decimal, error) {
	in, out := decimal.Zero, decimal.Zero
	for _, m := range r.s.cashMovements {
		if m.SessionID != sessionID {
			continue
		}
		if m.Kind == entity.CashIngreso {
			in = in.Add(m.Amount)
		} else {
			out = out.Add(m.Amount)
		}
	}
	return in, out, nil
}

type cashMovementRepo struct{ s *Store }

var _ repository.CashMovementRepository = (*cashMovementRepo)(nil)

func (r *cashMovementRepo) Create(m *entity.CashMovement) error {
	if _, ok := r.s.cashMovements[m.ID]; ok {
		return domain.ErrDuplicate
	}
	for _, existing := range r.s.cashMovements {
		if existing.Comprobante == m.Comprobante {
			return domain.ErrDuplicateComprobante
		}
	}
	r.s.cashMovements[m.ID] = *m
	return nil
}

func (r *cashMovementRepo) GetByID(id string) (*entity.CashMovement, error) {
	m, ok := r.s.cashMovements[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &m, nil
}

func (r *cashMovementRepo) ExistsComprobante(comprobante string) (bool, error) {
	for _, m := range r.s.cashMovements {
		if m.Comprobante == comprobante {
			return true, nil
		}
	}
	return false, nil
}

func (r *cashMovementRepo) ListBySession(sessionID string) ([]*entity.CashMovement, error) {
	return r.listBy(func(m entity.CashMovement) bool { return m.SessionID == sessionID })
}

func (r *cashMovementRepo) ListBySale(saleID string) ([]*entity.CashMovement, error) {
	return r.listBy(func(m entity.CashMovement) bool { return m.SaleID == saleID })
}

func (r *cashMovementRepo) ListByCreditNote(creditNoteID string) ([]*entity.CashMovement, error) {
	return r.listBy(func(m entity.CashMovement) bool { return m.CreditNoteID == creditNoteID })
}

func (r *cashMovementRepo) listBy(match func(entity.CashMovement) bool) ([]*entity.CashMovement, error) {
	var out []*entity.CashMovement
	for _, m := range r.s.cashMovements {
		if match(m) {
			c := m
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}
