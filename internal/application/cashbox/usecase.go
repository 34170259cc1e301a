package cashbox

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-paraguay/internal/application/dto"
	"github.com/jhoicas/pos-paraguay/internal/application/ports"
	"github.com/jhoicas/pos-paraguay/internal/domain"
	"github.com/jhoicas/pos-paraguay/internal/domain/entity"
)

// UseCase es el motor de caja: apertura y cierre de sesiones y movimientos
// firmados con comprobante único. El saldo corriente de la caja se mantiene
// bajo bloqueo de fila.
type UseCase struct {
	tx ports.TxRunner
}

// New construye el caso de uso.
func New(tx ports.TxRunner) *UseCase {
	return &UseCase{tx: tx}
}

// CreateRegister da de alta una caja cerrada, con saldo cero, atada a un
// punto de expedición.
func (uc *UseCase) CreateRegister(ctx context.Context, pointID, name string) (*entity.CashRegister, error) {
	if pointID == "" || name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	register := &entity.CashRegister{
		ID:                uuid.New().String(),
		ExpeditionPointID: pointID,
		Name:              name,
		CurrentBalance:    decimal.Zero,
		State:             entity.RegisterCerrada,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	err := uc.tx.Run(ctx, func(r *ports.Repos) error {
		if _, err := r.ExpeditionPoints.GetByID(pointID); err != nil {
			return err
		}
		return r.CashRegisters.Create(register)
	})
	if err != nil {
		return nil, err
	}
	return register, nil
}

// Open abre la caja con el saldo inicial declarado y crea la sesión.
func (uc *UseCase) Open(ctx context.Context, actorID, registerID string, req dto.OpenRegisterRequest) (*entity.CashSession, error) {
	if req.OpeningBalance.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	var session *entity.CashSession
	err := uc.tx.Run(ctx, func(r *ports.Repos) error {
		register, err := r.CashRegisters.GetForUpdate(registerID)
		if err != nil {
			return err
		}
		if register.State == entity.RegisterAbierta {
			return domain.ErrInvalidState
		}
		now := time.Now()
		session = &entity.CashSession{
			ID:             uuid.New().String(),
			RegisterID:     register.ID,
			ResponsibleID:  actorID,
			OpeningBalance: req.OpeningBalance,
			State:          entity.SessionAbierta,
			Observations:   req.Observations,
			OpenedAt:       now,
		}
		if err := r.CashSessions.Create(session); err != nil {
			return err
		}
		register.State = entity.RegisterAbierta
		register.CurrentBalance = req.OpeningBalance
		register.ResponsibleID = actorID
		register.OpenedAt = &now
		register.ClosedAt = nil
		register.UpdatedAt = now
		return r.CashRegisters.Update(register)
	})
	if err != nil {
		return nil, err
	}
	return session, nil
}

// Close cierra la sesión abierta: calcula el saldo teórico desde los
// movimientos, registra el declarado y la diferencia, y cierra la caja.
func (uc *UseCase) Close(ctx context.Context, actorID, registerID string, req dto.CloseRegisterRequest) (*dto.CloseRegisterResponse, error) {
	if req.ClosingBalance.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	var resp *dto.CloseRegisterResponse
	err := uc.tx.Run(ctx, func(r *ports.Repos) error {
		register, err := r.CashRegisters.GetForUpdate(registerID)
		if err != nil {
			return err
		}
		if register.State != entity.RegisterAbierta {
			return domain.ErrRegisterClosed
		}
		session, err := r.CashSessions.GetOpenByRegister(registerID)
		if err != nil {
			return err
		}
		totalIn, totalOut, err := r.CashSessions.SumMovements(session.ID)
		if err != nil {
			return err
		}
		now := time.Now()
		theoretical := session.OpeningBalance.Add(totalIn).Sub(totalOut)
		session.ClosingBalance = req.ClosingBalance
		session.Theoretical = theoretical
		session.Difference = req.ClosingBalance.Sub(theoretical)
		session.State = entity.SessionCerrada
		if req.Observations != "" {
			session.Observations = req.Observations
		}
		session.ClosedAt = &now
		if err := r.CashSessions.Update(session); err != nil {
			return err
		}
		register.State = entity.RegisterCerrada
		register.CurrentBalance = decimal.Zero
		register.ClosedAt = &now
		register.UpdatedAt = now
		if err := r.CashRegisters.Update(register); err != nil {
			return err
		}
		resp = &dto.CloseRegisterResponse{
			SessionID:      session.ID,
			OpeningBalance: session.OpeningBalance,
			TotalIn:        totalIn,
			TotalOut:       totalOut,
			Theoretical:    theoretical,
			ClosingBalance: req.ClosingBalance,
			Difference:     session.Difference,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// PostMovement registra un movimiento de caja manual.
func (uc *UseCase) PostMovement(ctx context.Context, actorID, registerID string, req dto.CashMovementRequest) (*entity.CashMovement, error) {
	if req.Kind != entity.CashIngreso && req.Kind != entity.CashEgreso {
		return nil, domain.ErrInvalidInput
	}
	if !req.Amount.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	var movement *entity.CashMovement
	err := uc.tx.Run(ctx, func(r *ports.Repos) error {
		var err error
		movement, err = Post(r, &entity.CashMovement{
			RegisterID:  registerID,
			Kind:        req.Kind,
			Amount:      req.Amount,
			ActorID:     actorID,
			Description: req.Concept,
			Comprobante: req.Comprobante,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return movement, nil
}

// Post registra un movimiento de caja dentro de la transacción en curso:
// exige caja ABIERTA, comprobante único y saldo no negativo tras un egreso.
// Ventas, cobranzas, pagos y comisiones entran por aquí.
func Post(r *ports.Repos, m *entity.CashMovement) (*entity.CashMovement, error) {
	if !m.Amount.IsPositive() || m.Comprobante == "" {
		return nil, domain.ErrInvalidInput
	}
	register, err := r.CashRegisters.GetForUpdate(m.RegisterID)
	if err != nil {
		return nil, err
	}
	if register.State != entity.RegisterAbierta {
		return nil, domain.ErrRegisterClosed
	}
	session, err := r.CashSessions.GetOpenByRegister(register.ID)
	if err != nil {
		return nil, err
	}
	exists, err := r.CashMovements.ExistsComprobante(m.Comprobante)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateComprobante
	}

	next := register.CurrentBalance.Add(m.SignedAmount())
	if next.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if m.Date.IsZero() {
		m.Date = now
	}
	m.SessionID = session.ID
	if err := r.CashMovements.Create(m); err != nil {
		return nil, err
	}
	register.CurrentBalance = next
	register.UpdatedAt = now
	return m, r.CashRegisters.Update(register)
}
