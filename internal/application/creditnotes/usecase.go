package creditnotes

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-paraguay/internal/application/cashbox"
	"github.com/jhoicas/pos-paraguay/internal/application/dto"
	"github.com/jhoicas/pos-paraguay/internal/application/inventory"
	"github.com/jhoicas/pos-paraguay/internal/application/numbering"
	"github.com/jhoicas/pos-paraguay/internal/application/ports"
	"github.com/jhoicas/pos-paraguay/internal/domain"
	"github.com/jhoicas/pos-paraguay/internal/domain/entity"
)

// UseCase emite y cancela notas de crédito sobre ventas finalizadas. La
// emisión devuelve dinero por caja, reingresa mercadería si corresponde y
// revierte proporcionalmente las comisiones del vendedor.
type UseCase struct {
	tx ports.TxRunner
}

// New construye el caso de uso.
func New(tx ports.TxRunner) *UseCase {
	return &UseCase{tx: tx}
}

// Finalize emite una nota de crédito en una sola transacción.
func (uc *UseCase) Finalize(ctx context.Context, actorID string, req dto.FinalizeCreditNoteRequest) (*entity.CreditNote, error) {
	if req.SaleID == "" || req.RegisterID == "" || len(req.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	var note *entity.CreditNote
	err := uc.tx.Run(ctx, func(r *ports.Repos) error {
		sale, err := r.Sales.GetForUpdate(req.SaleID)
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

		detailsByID := map[string]*entity.SaleDetail{}
		for _, d := range sale.Details {
			detailsByID[d.ID] = d
		}

		// Cantidad ya acreditada por notas finalizadas previas, por línea.
		credited := map[string]decimal.Decimal{}
		alreadyCredited := decimal.Zero
		previous, err := r.CreditNotes.ListBySale(sale.ID)
		if err != nil {
			return err
		}
		for _, p := range previous {
			if p.State != entity.NoteFinalizada {
				continue
			}
			alreadyCredited = alreadyCredited.Add(p.Total)
			for _, d := range p.Details {
				credited[d.SaleDetailID] = credited[d.SaleDetailID].Add(d.Quantity)
			}
		}

		now := time.Now()
		note = &entity.CreditNote{
			ID:             uuid.New().String(),
			Number:         fmt.Sprintf("%05d", len(previous)+1),
			SaleID:         sale.ID,
			TimbradoID:     sale.TimbradoID,
			Reason:         req.Motive,
			State:          entity.NoteFinalizada,
			CashRegisterID: req.RegisterID,
			CreatedBy:      actorID,
			Date:           now,
			CreatedAt:      now,
			UpdatedAt:      now,
		}

		total := decimal.Zero
		for _, l := range req.Lines {
			detail, ok := detailsByID[l.SaleDetailID]
			if !ok {
				return domain.ErrInvalidInput
			}
			remaining := detail.Quantity.Sub(credited[detail.ID])
			if !l.Quantity.IsPositive() || l.Quantity.GreaterThan(remaining) {
				return domain.ErrInvalidInput
			}
			subtotal := detail.UnitPrice.Mul(l.Quantity)
			note.Details = append(note.Details, &entity.CreditNoteDetail{
				ID:           uuid.New().String(),
				CreditNoteID: note.ID,
				SaleDetailID: detail.ID,
				Quantity:     l.Quantity,
				UnitPrice:    detail.UnitPrice,
				Subtotal:     subtotal,
			})
			total = total.Add(subtotal)

			if req.RestoreInventory {
				if err := restoreInventory(r, actorID, detail, l.Quantity, req.WarehouseID, note.ReasonTag()); err != nil {
					return err
				}
			}
		}
		if total.Add(alreadyCredited).GreaterThan(sale.Total) {
			return domain.ErrInvalidInput
		}
		note.Subtotal = total
		note.Total = total
		if total.Equal(sale.Total) {
			note.Type = entity.NoteTotal
		} else {
			note.Type = entity.NoteParcial
		}

		number, err := numbering.Allocate(r, register.ExpeditionPointID, entity.DocTypeNotaCredito)
		if err != nil {
			return err
		}
		note.DocumentNumber = number

		// En ventas a crédito el monto acreditado primero absorbe el saldo
		// de las cuotas abiertas (de la última a la primera); solo el
		// remanente que excede la deuda pendiente sale por caja.
		refund := total
		if sale.Condition == entity.CondicionCredito {
			absorbed, err := absorbIntoCuotas(r, actorID, sale, note, total, now)
			if err != nil {
				return err
			}
			refund = total.Sub(absorbed)
		}
		if refund.IsPositive() {
			if _, err := cashbox.Post(r, &entity.CashMovement{
				RegisterID:   req.RegisterID,
				Kind:         entity.CashEgreso,
				Amount:       refund,
				ActorID:      actorID,
				Description:  "Nota de crédito " + note.DocumentNumber + " sobre venta " + sale.Number,
				Comprobante:  "NC-" + note.Number,
				SaleID:       sale.ID,
				CreditNoteID: note.ID,
			}); err != nil {
				return err
			}
		}

		if err := revertCommissions(r, actorID, sale, note); err != nil {
			return err
		}

		return r.CreditNotes.Create(note)
	})
	if err != nil {
		return nil, err
	}
	return note, nil
}

// restoreInventory reingresa la mercadería acreditada de una línea: los
// productos vuelven a su almacén de origen y los servicios compuestos
// reingresan sus componentes de receta al almacén de servicio.
func restoreInventory(r *ports.Repos, actorID string, detail *entity.SaleDetail, qty decimal.Decimal, overrideWarehouse, reason string) error {
	entrada := func(productID, warehouseID string, quantity decimal.Decimal) error {
		_, err := inventory.Apply(r, &entity.InventoryMovement{
			ProductID:   productID,
			WarehouseID: warehouseID,
			Kind:        entity.MovementEntrada,
			Quantity:    quantity,
			ActorID:     actorID,
			Reason:      reason,
		})
		return err
	}
	switch detail.Kind {
	case entity.DetailProducto:
		warehouseID := overrideWarehouse
		if warehouseID == "" {
			warehouseID = detail.WarehouseID
		}
		return entrada(detail.ProductID, warehouseID, qty)
	case entity.DetailServicio:
		service, err := r.Services.GetByID(detail.ServiceID)
		if err != nil {
			return err
		}
		if !service.NeedsInventory() {
			return nil
		}
		warehouseID := overrideWarehouse
		if warehouseID == "" {
			warehouseID = detail.ServiceWarehouseID
		}
		for _, c := range service.Components {
			if err := entrada(c.ProductID, warehouseID, c.Quantity.Mul(qty)); err != nil {
				return err
			}
		}
	}
	return nil
}

// absorbIntoCuotas descuenta amount del saldo de las cuotas abiertas de la
// venta, de la última a la primera, y devuelve cuánto absorbió. Las entregas
// iniciales no se tocan. Cada descuento queda registrado como un pago de
// cuota con recibo "NC-<número>" para que la anulación lo pueda revertir.
func absorbIntoCuotas(r *ports.Repos, actorID string, sale *entity.Sale, note *entity.CreditNote, amount decimal.Decimal, now time.Time) (decimal.Decimal, error) {
	cuotas, err := r.Cuotas.ListBySale(sale.ID)
	if err != nil {
		return decimal.Zero, err
	}
	absorbed := decimal.Zero
	for i := len(cuotas) - 1; i >= 0 && amount.IsPositive(); i-- {
		cuota, err := r.Cuotas.GetForUpdate(cuotas[i].ID)
		if err != nil {
			return decimal.Zero, err
		}
		if cuota.InitialEntry || !cuota.Balance.IsPositive() {
			continue
		}
		take := decimal.Min(amount, cuota.Balance)
		cuota.Balance = cuota.Balance.Sub(take)
		cuota.State = cuota.DeriveState(now)
		if cuota.Balance.IsZero() && cuota.PaidAt == nil {
			paidAt := now
			cuota.PaidAt = &paidAt
		}
		cuota.UpdatedAt = now
		if err := r.Cuotas.Update(cuota); err != nil {
			return decimal.Zero, err
		}
		if err := r.CuotaPayments.Create(&entity.CuotaPayment{
			ID:             uuid.New().String(),
			CuotaID:        cuota.ID,
			Amount:         take,
			Method:         "NOTA_CREDITO",
			Date:           now,
			CashRegisterID: note.CashRegisterID,
			ActorID:        actorID,
			ReceiptNumber:  "NC-" + note.Number,
			Notes:          "Aplicación de nota de crédito " + note.Number + " sobre venta " + sale.Number,
			CreatedAt:      now,
		}); err != nil {
			return decimal.Zero, err
		}
		absorbed = absorbed.Add(take)
		amount = amount.Sub(take)
	}
	return absorbed, nil
}

// revertCommissions reduce proporcionalmente las comisiones del vendedor:
// con r = nota/venta, el devengado baja a accrued×(1−r); si lo ya liquidado
// supera el nuevo devengado, el excedente reingresa por caja.
func revertCommissions(r *ports.Repos, actorID string, sale *entity.Sale, note *entity.CreditNote) error {
	ratio := note.Total.Div(sale.Total)
	list, err := r.SellerCommissions.ListBySale(sale.ID)
	if err != nil {
		return err
	}
	now := time.Now()
	for _, c := range list {
		if c.State == entity.CommissionAnulada {
			continue
		}
		newAccrued := c.Accrued.Mul(decimal.NewFromInt(1).Sub(ratio))
		if c.Paid.GreaterThan(newAccrued) {
			excess := c.Paid.Sub(newAccrued)
			if _, err := cashbox.Post(r, &entity.CashMovement{
				RegisterID:   note.CashRegisterID,
				Kind:         entity.CashIngreso,
				Amount:       excess,
				ActorID:      actorID,
				Description:  "Reversión de comisión por nota de crédito " + note.Number,
				Comprobante:  fmt.Sprintf("COM-NC-REV-%s-%d", c.ID, now.UnixNano()),
				CreditNoteID: note.ID,
				CommissionID: c.ID,
			}); err != nil {
				return err
			}
			c.Paid = newAccrued
		}
		c.Accrued = newAccrued
		c.State = entity.DeriveCommissionState(c.Accrued, c.Paid)
		c.UpdatedAt = now
		if err := r.SellerCommissions.Update(c); err != nil {
			return err
		}
	}
	return nil
}

// Cancel anula una nota de crédito FINALIZADA dejando efecto neto cero:
// compensa sus movimientos de caja, revierte el reingreso de inventario y
// restituye las comisiones revertidas.
func (uc *UseCase) Cancel(ctx context.Context, actorID, noteID, motive string) error {
	if motive == "" {
		return domain.ErrInvalidInput
	}
	return uc.tx.Run(ctx, func(r *ports.Repos) error {
		note, err := r.CreditNotes.GetForUpdate(noteID)
		if err != nil {
			return err
		}
		if note.State != entity.NoteFinalizada {
			return domain.ErrInvalidState
		}

		now := time.Now()
		movements, err := r.CashMovements.ListByCreditNote(note.ID)
		if err != nil {
			return err
		}
		for _, m := range movements {
			compensatingKind := entity.CashIngreso
			if m.Kind == entity.CashIngreso {
				compensatingKind = entity.CashEgreso
			}
			if _, err := cashbox.Post(r, &entity.CashMovement{
				RegisterID:   m.RegisterID,
				Kind:         compensatingKind,
				Amount:       m.Amount,
				ActorID:      actorID,
				Description:  "Cancelación NC " + note.Number + ": " + motive,
				Comprobante:  fmt.Sprintf("COM-NC-CANC-%s-%d", m.ID, now.Unix()),
				SaleID:       m.SaleID,
				CreditNoteID: note.ID,
				CommissionID: m.CommissionID,
			}); err != nil {
				return err
			}
			// Lo que se había reingresado por reversión de comisión vuelve
			// a quedar liquidado.
			if m.CommissionID != "" && strings.HasPrefix(m.Comprobante, "COM-NC-REV-") {
				c, err := r.SellerCommissions.GetForUpdate(m.CommissionID)
				if err != nil {
					return err
				}
				c.Paid = c.Paid.Add(m.Amount)
				c.UpdatedAt = now
				if err := r.SellerCommissions.Update(c); err != nil {
					return err
				}
			}
		}

		// El devengado se recalcula desde la configuración original,
		// descontando solo las notas que siguen finalizadas.
		sale, err := r.Sales.GetByID(note.SaleID)
		if err != nil {
			return err
		}
		siblings, err := r.CreditNotes.ListBySale(sale.ID)
		if err != nil {
			return err
		}
		creditedTotal := decimal.Zero
		for _, s := range siblings {
			if s.ID != note.ID && s.State == entity.NoteFinalizada {
				creditedTotal = creditedTotal.Add(s.Total)
			}
		}
		remainingRatio := decimal.NewFromInt(1).Sub(creditedTotal.Div(sale.Total))
		list, err := r.SellerCommissions.ListBySale(sale.ID)
		if err != nil {
			return err
		}
		for _, c := range list {
			original, err := originalAccrued(r, sale, c)
			if err != nil {
				return err
			}
			if original == nil {
				continue
			}
			c.Accrued = original.Mul(remainingRatio)
			c.State = entity.DeriveCommissionState(c.Accrued, c.Paid)
			c.UpdatedAt = now
			if err := r.SellerCommissions.Update(c); err != nil {
				return err
			}
		}

		if err := restoreAbsorbedCuotas(r, actorID, note, now); err != nil {
			return err
		}

		if err := inventory.RevertByReason(r, actorID, note.ReasonTag(), note.CancelReasonTag()); err != nil {
			return err
		}

		note.State = entity.NoteCancelada
		note.Reason = note.Reason + " | Anulada: " + motive
		note.UpdatedAt = now
		return r.CreditNotes.Update(note)
	})
}

// restoreAbsorbedCuotas repone el saldo que la nota había absorbido de las
// cuotas, anulando los pagos con recibo "NC-<número>".
func restoreAbsorbedCuotas(r *ports.Repos, actorID string, note *entity.CreditNote, now time.Time) error {
	cuotas, err := r.Cuotas.ListBySale(note.SaleID)
	if err != nil {
		return err
	}
	receipt := "NC-" + note.Number
	for _, c := range cuotas {
		payments, err := r.CuotaPayments.ListByCuota(c.ID)
		if err != nil {
			return err
		}
		for _, p := range payments {
			if p.Cancelled || p.ReceiptNumber != receipt {
				continue
			}
			cuota, err := r.Cuotas.GetForUpdate(c.ID)
			if err != nil {
				return err
			}
			cuota.Balance = cuota.Balance.Add(p.Amount)
			cuota.State = cuota.DeriveState(now)
			cuota.PaidAt = nil
			cuota.UpdatedAt = now
			if err := r.Cuotas.Update(cuota); err != nil {
				return err
			}
			cancelledAt := now
			p.Cancelled = true
			p.CancelMotive = "Anulación de nota de crédito " + note.Number
			p.CancelledBy = actorID
			p.CancelledAt = &cancelledAt
			if err := r.CuotaPayments.Update(p); err != nil {
				return err
			}
		}
	}
	return nil
}

// originalAccrued recalcula el devengado original de una comisión desde su
// configuración; nil si la configuración ya no existe.
func originalAccrued(r *ports.Repos, sale *entity.Sale, c *entity.SellerCommission) (*decimal.Decimal, error) {
	config, err := r.SellerConfigs.GetByID(c.ConfigID)
	if err != nil {
		return nil, nil
	}
	var accrued decimal.Decimal
	switch c.Kind {
	case entity.CommissionPctTotal:
		accrued = sale.Total.Mul(config.Percentage).Div(decimal.NewFromInt(100))
	case entity.CommissionEntregaInicial:
		accrued = sale.InitialEntry
	default:
		return nil, nil
	}
	return &accrued, nil
}
