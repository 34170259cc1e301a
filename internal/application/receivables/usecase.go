package receivables

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-paraguay/internal/application/cashbox"
	"github.com/jhoicas/pos-paraguay/internal/application/commissions"
	"github.com/jhoicas/pos-paraguay/internal/application/dto"
	"github.com/jhoicas/pos-paraguay/internal/application/numbering"
	"github.com/jhoicas/pos-paraguay/internal/application/ports"
	"github.com/jhoicas/pos-paraguay/internal/domain"
	"github.com/jhoicas/pos-paraguay/internal/domain/entity"
)

// UseCase administra cuentas por cobrar: cronograma de cuotas de las ventas a
// crédito, cobros con recibo y anulación de cobros.
type UseCase struct {
	tx ports.TxRunner
}

// New construye el caso de uso.
func New(tx ports.TxRunner) *UseCase {
	return &UseCase{tx: tx}
}

// BuildSchedule genera el cronograma de una venta a crédito dentro de la
// transacción de la finalización. La entrega inicial, si existe, es la cuota
// 0, prepaga. El financiado se divide en N cuotas iguales redondeadas hacia
// abajo; el residuo va a la última. Los vencimientos corren el día fijo de
// cada mes, acotado a 28.
func BuildSchedule(r *ports.Repos, sale *entity.Sale) ([]*entity.Cuota, error) {
	if sale.CuotaCount < 1 || sale.DueDay < 1 || sale.DueDay > 31 {
		return nil, domain.ErrInvalidInput
	}
	// Días 29-31 se acotan a 28 para que el vencimiento exista en todo mes.
	dueDay := sale.DueDay
	if dueDay > 28 {
		dueDay = 28
	}
	financed := sale.Total.Sub(sale.InitialEntry)
	if !financed.IsPositive() {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	var cuotas []*entity.Cuota

	if sale.InitialEntry.IsPositive() {
		initial := &entity.Cuota{
			ID:           uuid.New().String(),
			SaleID:       sale.ID,
			Index:        0,
			Amount:       sale.InitialEntry,
			Balance:      decimal.Zero,
			DueDay:       dueDay,
			DueDate:      sale.Date,
			State:        entity.CuotaPagada,
			InitialEntry: true,
			PaidAt:       &now,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := r.Cuotas.Create(initial); err != nil {
			return nil, err
		}
		cuotas = append(cuotas, initial)
	}

	n := int64(sale.CuotaCount)
	per := financed.Div(decimal.NewFromInt(n)).Floor()
	accumulated := decimal.Zero

	first := sale.Date
	if sale.FirstDueDate != nil {
		first = *sale.FirstDueDate
	}
	for i := 1; i <= sale.CuotaCount; i++ {
		amount := per
		if i == sale.CuotaCount {
			amount = financed.Sub(accumulated)
		}
		accumulated = accumulated.Add(amount)

		var due time.Time
		if sale.FirstDueDate != nil {
			due = shiftDueDate(first, dueDay, i-1)
		} else {
			due = shiftDueDate(first, dueDay, i)
		}
		cuota := &entity.Cuota{
			ID:        uuid.New().String(),
			SaleID:    sale.ID,
			Index:     i,
			Amount:    amount,
			Balance:   amount,
			DueDay:    dueDay,
			DueDate:   due,
			State:     entity.CuotaPendiente,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := r.Cuotas.Create(cuota); err != nil {
			return nil, err
		}
		cuotas = append(cuotas, cuota)
	}
	return cuotas, nil
}

// shiftDueDate corre la fecha base la cantidad de meses dada y fija el día de
// vencimiento, acotado a 28 para que exista en todo mes.
func shiftDueDate(base time.Time, dueDay, months int) time.Time {
	day := dueDay
	if day > 28 {
		day = 28
	}
	total := (base.Year()*12 + int(base.Month()) - 1) + months
	year := total / 12
	month := time.Month(total%12 + 1)
	return time.Date(year, month, day, 0, 0, 0, 0, base.Location())
}

// ListSchedule devuelve las cuotas de una venta con su estado derivado a hoy.
func (uc *UseCase) ListSchedule(ctx context.Context, saleID string) ([]*entity.Cuota, error) {
	var cuotas []*entity.Cuota
	err := uc.tx.Run(ctx, func(r *ports.Repos) error {
		list, err := r.Cuotas.ListBySale(saleID)
		if err != nil {
			return err
		}
		today := time.Now()
		for _, c := range list {
			c.State = c.DeriveState(today)
		}
		cuotas = list
		return nil
	})
	return cuotas, err
}

// RegisterPayment aplica un cobro a una cuota: valida el monto contra el
// balance, emite el recibo desde la secuencia RECIBO_PAGO, ingresa a caja y
// devenga la comisión del cobrador. Todo en una transacción.
func (uc *UseCase) RegisterPayment(ctx context.Context, actorID, cuotaID string, req dto.PayCuotaRequest) (*entity.CuotaPayment, error) {
	if !req.Amount.IsPositive() || req.RegisterID == "" {
		return nil, domain.ErrInvalidInput
	}
	var payment *entity.CuotaPayment
	err := uc.tx.Run(ctx, func(r *ports.Repos) error {
		cuota, err := r.Cuotas.GetForUpdate(cuotaID)
		if err != nil {
			return err
		}
		if cuota.InitialEntry || cuota.Balance.IsZero() {
			return domain.ErrInvalidState
		}
		if req.Amount.GreaterThan(cuota.Balance) {
			return domain.ErrInvalidInput
		}
		sale, err := r.Sales.GetByID(cuota.SaleID)
		if err != nil {
			return err
		}
		if sale.State != entity.SaleFinalizada {
			return domain.ErrInvalidState
		}
		register, err := r.CashRegisters.GetByID(req.RegisterID)
		if err != nil {
			return err
		}

		receipt, err := numbering.Allocate(r, register.ExpeditionPointID, entity.DocTypeReciboPago)
		if err != nil {
			return err
		}

		now := time.Now()
		method := req.Method
		if method == "" {
			method = entity.PagoEfectivo
		}
		payment = &entity.CuotaPayment{
			ID:             uuid.New().String(),
			CuotaID:        cuota.ID,
			Amount:         req.Amount,
			Method:         method,
			Date:           now,
			CashRegisterID: req.RegisterID,
			ActorID:        actorID,
			ReceiptNumber:  receipt,
			CreatedAt:      now,
		}
		if err := r.CuotaPayments.Create(payment); err != nil {
			return err
		}
		if _, err := cashbox.Post(r, &entity.CashMovement{
			RegisterID:     req.RegisterID,
			Kind:           entity.CashIngreso,
			Amount:         req.Amount,
			ActorID:        actorID,
			Description:    fmt.Sprintf("Cobro cuota %d venta %s", cuota.Index, sale.Number),
			Comprobante:    receipt,
			SaleID:         sale.ID,
			CuotaPaymentID: payment.ID,
		}); err != nil {
			return err
		}

		cuota.Balance = cuota.Balance.Sub(req.Amount)
		cuota.State = cuota.DeriveState(now)
		if cuota.Balance.IsZero() {
			cuota.PaidAt = &now
		}
		cuota.UpdatedAt = now
		if err := r.Cuotas.Update(cuota); err != nil {
			return err
		}

		_, err = commissions.AccrueCollector(r, payment, req.CollectorID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}

// CancelPayment anula un cobro: restaura el balance de la cuota, egresa el
// monto de caja y anula la comisión devengada por el cobro. Rechaza si la
// comisión ya fue liquidada.
func (uc *UseCase) CancelPayment(ctx context.Context, actorID, paymentID string, req dto.CancelCuotaPaymentRequest) error {
	if req.Motive == "" || req.RegisterID == "" {
		return domain.ErrInvalidInput
	}
	return uc.tx.Run(ctx, func(r *ports.Repos) error {
		payment, err := r.CuotaPayments.GetByID(paymentID)
		if err != nil {
			return err
		}
		if payment.Cancelled {
			return domain.ErrInvalidState
		}
		cuota, err := r.Cuotas.GetForUpdate(payment.CuotaID)
		if err != nil {
			return err
		}

		commissionsList, err := r.CollectorCommission.ListByPayment(payment.ID)
		if err != nil {
			return err
		}
		for _, c := range commissionsList {
			if c.Paid.IsPositive() {
				return domain.ErrInvalidState
			}
		}

		now := time.Now()
		if _, err := cashbox.Post(r, &entity.CashMovement{
			RegisterID:     req.RegisterID,
			Kind:           entity.CashEgreso,
			Amount:         payment.Amount,
			ActorID:        actorID,
			Description:    "Anulación de cobro " + payment.ReceiptNumber + ": " + req.Motive,
			Comprobante:    fmt.Sprintf("%s-CANC-%d", payment.ReceiptNumber, now.Unix()),
			SaleID:         cuota.SaleID,
			CuotaPaymentID: payment.ID,
		}); err != nil {
			return err
		}

		cuota.Balance = cuota.Balance.Add(payment.Amount)
		cuota.State = cuota.DeriveState(now)
		cuota.PaidAt = nil
		cuota.UpdatedAt = now
		if err := r.Cuotas.Update(cuota); err != nil {
			return err
		}

		for _, c := range commissionsList {
			c.Accrued = decimal.Zero
			c.State = entity.CommissionAnulada
			c.Notes = "Anulado por cancelación del cobro: " + req.Motive
			c.UpdatedAt = now
			if err := r.CollectorCommission.Update(c); err != nil {
				return err
			}
		}

		payment.Cancelled = true
		payment.CancelMotive = req.Motive
		payment.CancelledBy = actorID
		payment.CancelledAt = &now
		return r.CuotaPayments.Update(payment)
	})
}
