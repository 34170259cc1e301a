package commissions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-paraguay/internal/application/cashbox"
	"github.com/jhoicas/pos-paraguay/internal/application/dto"
	"github.com/jhoicas/pos-paraguay/internal/application/ports"
	"github.com/jhoicas/pos-paraguay/internal/domain"
	"github.com/jhoicas/pos-paraguay/internal/domain/entity"
)

var cien = decimal.NewFromInt(100)

// UseCase administra comisiones de vendedores y cobradores: configuración,
// devengamiento automático y liquidación por caja.
type UseCase struct {
	tx ports.TxRunner
}

// New construye el caso de uso.
func New(tx ports.TxRunner) *UseCase {
	return &UseCase{tx: tx}
}

// ConfigureSeller da de alta la configuración de comisión de un vendedor.
func (uc *UseCase) ConfigureSeller(ctx context.Context, sellerID, kind string, percentage decimal.Decimal) (*entity.SellerCommissionConfig, error) {
	switch kind {
	case entity.CommissionPctTotal:
		if !percentage.IsPositive() || percentage.GreaterThan(cien) {
			return nil, domain.ErrInvalidInput
		}
	case entity.CommissionEntregaInicial:
	default:
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	config := &entity.SellerCommissionConfig{
		ID:         uuid.New().String(),
		SellerID:   sellerID,
		Kind:       kind,
		Percentage: percentage,
		Active:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	err := uc.tx.Run(ctx, func(r *ports.Repos) error {
		if _, err := r.Users.GetByID(sellerID); err != nil {
			return err
		}
		current, err := r.SellerConfigs.GetActiveBySeller(sellerID)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		if current != nil {
			current.Active = false
			current.UpdatedAt = now
			if err := r.SellerConfigs.Update(current); err != nil {
				return err
			}
		}
		return r.SellerConfigs.Create(config)
	})
	if err != nil {
		return nil, err
	}
	return config, nil
}

// ConfigureCollector da de alta la configuración de un cobrador; desactiva la
// anterior para mantener a lo sumo una activa.
func (uc *UseCase) ConfigureCollector(ctx context.Context, collectorID string, percentage decimal.Decimal) (*entity.CollectorCommissionConfig, error) {
	if !percentage.IsPositive() || percentage.GreaterThan(cien) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	config := &entity.CollectorCommissionConfig{
		ID:          uuid.New().String(),
		CollectorID: collectorID,
		Percentage:  percentage,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err := uc.tx.Run(ctx, func(r *ports.Repos) error {
		if _, err := r.Users.GetByID(collectorID); err != nil {
			return err
		}
		current, err := r.CollectorConfigs.GetActiveByCollector(collectorID)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		if current != nil {
			current.Active = false
			current.UpdatedAt = now
			if err := r.CollectorConfigs.Update(current); err != nil {
				return err
			}
		}
		return r.CollectorConfigs.Create(config)
	})
	if err != nil {
		return nil, err
	}
	return config, nil
}

// AccrueSeller devenga la comisión del vendedor al finalizar una venta,
// dentro de la transacción de la venta. Sin configuración activa no se
// devenga nada.
func AccrueSeller(r *ports.Repos, sale *entity.Sale) (*entity.SellerCommission, error) {
	config, err := r.SellerConfigs.GetActiveBySeller(sale.SellerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var accrued decimal.Decimal
	switch config.Kind {
	case entity.CommissionPctTotal:
		accrued = sale.Total.Mul(config.Percentage).Div(cien)
	case entity.CommissionEntregaInicial:
		if sale.Condition != entity.CondicionCredito {
			return nil, nil
		}
		accrued = sale.InitialEntry
	}
	if !accrued.IsPositive() {
		return nil, nil
	}

	now := time.Now()
	commission := &entity.SellerCommission{
		ID:        uuid.New().String(),
		SaleID:    sale.ID,
		SellerID:  sale.SellerID,
		ConfigID:  config.ID,
		Kind:      config.Kind,
		Accrued:   accrued,
		Paid:      decimal.Zero,
		State:     entity.CommissionPendiente,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return commission, r.SellerCommissions.Create(commission)
}

// AccrueCollector devenga la comisión del cobrador por un cobro de cuota,
// dentro de la transacción del cobro.
func AccrueCollector(r *ports.Repos, payment *entity.CuotaPayment, collectorID string) (*entity.CollectorCommission, error) {
	if collectorID == "" {
		return nil, nil
	}
	config, err := r.CollectorConfigs.GetActiveByCollector(collectorID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	accrued := payment.Amount.Mul(config.Percentage).Div(cien)
	if !accrued.IsPositive() {
		return nil, nil
	}
	now := time.Now()
	commission := &entity.CollectorCommission{
		ID:          uuid.New().String(),
		PaymentID:   payment.ID,
		CollectorID: collectorID,
		ConfigID:    config.ID,
		Accrued:     accrued,
		Paid:        decimal.Zero,
		State:       entity.CommissionPendiente,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return commission, r.CollectorCommission.Create(commission)
}

// PaySeller liquida (total o parcialmente) una comisión de vendedor con
// egreso de caja; el comprobante lleva nanosegundos para no colisionar entre
// liquidaciones consecutivas de la misma comisión.
func (uc *UseCase) PaySeller(ctx context.Context, actorID, commissionID string, req dto.PayCommissionRequest) error {
	if !req.Amount.IsPositive() || req.RegisterID == "" {
		return domain.ErrInvalidInput
	}
	return uc.tx.Run(ctx, func(r *ports.Repos) error {
		commission, err := r.SellerCommissions.GetForUpdate(commissionID)
		if err != nil {
			return err
		}
		if commission.State == entity.CommissionAnulada || commission.State == entity.CommissionPagada {
			return domain.ErrInvalidState
		}
		pending := commission.Accrued.Sub(commission.Paid)
		if req.Amount.GreaterThan(pending) {
			return domain.ErrInvalidInput
		}
		now := time.Now()
		if _, err := cashbox.Post(r, &entity.CashMovement{
			RegisterID:   req.RegisterID,
			Kind:         entity.CashEgreso,
			Amount:       req.Amount,
			ActorID:      actorID,
			Description:  "Pago de comisión a vendedor",
			Comprobante:  fmt.Sprintf("COM-%s-%d", commission.ID, now.UnixNano()),
			CommissionID: commission.ID,
		}); err != nil {
			return err
		}
		commission.Paid = commission.Paid.Add(req.Amount)
		commission.State = entity.DeriveCommissionState(commission.Accrued, commission.Paid)
		commission.UpdatedAt = now
		return r.SellerCommissions.Update(commission)
	})
}

// PayCollector liquida una comisión de cobrador.
func (uc *UseCase) PayCollector(ctx context.Context, actorID, commissionID string, req dto.PayCommissionRequest) error {
	if !req.Amount.IsPositive() || req.RegisterID == "" {
		return domain.ErrInvalidInput
	}
	return uc.tx.Run(ctx, func(r *ports.Repos) error {
		commission, err := r.CollectorCommission.GetForUpdate(commissionID)
		if err != nil {
			return err
		}
		if commission.State == entity.CommissionAnulada || commission.State == entity.CommissionPagada {
			return domain.ErrInvalidState
		}
		pending := commission.Accrued.Sub(commission.Paid)
		if req.Amount.GreaterThan(pending) {
			return domain.ErrInvalidInput
		}
		now := time.Now()
		if _, err := cashbox.Post(r, &entity.CashMovement{
			RegisterID:   req.RegisterID,
			Kind:         entity.CashEgreso,
			Amount:       req.Amount,
			ActorID:      actorID,
			Description:  "Pago de comisión a cobrador",
			Comprobante:  fmt.Sprintf("COM-COB-%s-%d", commission.ID, now.UnixNano()),
			CommissionID: commission.ID,
		}); err != nil {
			return err
		}
		commission.Paid = commission.Paid.Add(req.Amount)
		commission.State = entity.DeriveCommissionState(commission.Accrued, commission.Paid)
		commission.UpdatedAt = now
		return r.CollectorCommission.Update(commission)
	})
}

// RevertSellerPayment revierte la liquidación de una comisión de vendedor
// PAGADA: ingreso compensatorio en caja y saldo liquidado a cero. El motivo
// se agrega a las notas de la comisión.
func (uc *UseCase) RevertSellerPayment(ctx context.Context, actorID, commissionID string, req dto.RevertCommissionPaymentRequest) error {
	if req.Motive == "" || req.RegisterID == "" {
		return domain.ErrInvalidInput
	}
	return uc.tx.Run(ctx, func(r *ports.Repos) error {
		commission, err := r.SellerCommissions.GetForUpdate(commissionID)
		if err != nil {
			return err
		}
		if commission.State != entity.CommissionPagada {
			return domain.ErrInvalidState
		}
		now := time.Now()
		if _, err := cashbox.Post(r, &entity.CashMovement{
			RegisterID:   req.RegisterID,
			Kind:         entity.CashIngreso,
			Amount:       commission.Paid,
			ActorID:      actorID,
			Description:  "Reversión de pago de comisión: " + req.Motive,
			Comprobante:  fmt.Sprintf("COM-REV-%s-%d", commission.ID, now.UnixNano()),
			CommissionID: commission.ID,
		}); err != nil {
			return err
		}
		commission.Paid = decimal.Zero
		commission.State = entity.DeriveCommissionState(commission.Accrued, commission.Paid)
		commission.Notes = appendNote(commission.Notes, req.Motive)
		commission.UpdatedAt = now
		return r.SellerCommissions.Update(commission)
	})
}

// RevertCollectorPayment revierte la liquidación de una comisión de cobrador
// PAGADA, con las mismas reglas que la de vendedor.
func (uc *UseCase) RevertCollectorPayment(ctx context.Context, actorID, commissionID string, req dto.RevertCommissionPaymentRequest) error {
	if req.Motive == "" || req.RegisterID == "" {
		return domain.ErrInvalidInput
	}
	return uc.tx.Run(ctx, func(r *ports.Repos) error {
		commission, err := r.CollectorCommission.GetForUpdate(commissionID)
		if err != nil {
			return err
		}
		if commission.State != entity.CommissionPagada {
			return domain.ErrInvalidState
		}
		now := time.Now()
		if _, err := cashbox.Post(r, &entity.CashMovement{
			RegisterID:   req.RegisterID,
			Kind:         entity.CashIngreso,
			Amount:       commission.Paid,
			ActorID:      actorID,
			Description:  "Reversión de pago de comisión de cobrador: " + req.Motive,
			Comprobante:  fmt.Sprintf("COM-COB-REV-%s-%d", commission.ID, now.UnixNano()),
			CommissionID: commission.ID,
		}); err != nil {
			return err
		}
		commission.Paid = decimal.Zero
		commission.State = entity.DeriveCommissionState(commission.Accrued, commission.Paid)
		commission.Notes = appendNote(commission.Notes, req.Motive)
		commission.UpdatedAt = now
		return r.CollectorCommission.Update(commission)
	})
}

func appendNote(existing, note string) string {
	if existing == "" {
		return note
	}
	return existing + " | " + note
}
