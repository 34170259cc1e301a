package purchasing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-paraguay/internal/application/cashbox"
	"github.com/jhoicas/pos-paraguay/internal/application/dto"
	"github.com/jhoicas/pos-paraguay/internal/application/inventory"
	"github.com/jhoicas/pos-paraguay/internal/application/ports"
	"github.com/jhoicas/pos-paraguay/internal/domain"
	"github.com/jhoicas/pos-paraguay/internal/domain/entity"
)

// UseCase gobierna el ciclo de compras: BORRADOR → APROBADA → RECIBIDA
// (→ PAGADA para crédito). La recepción ingresa mercadería al inventario,
// actualiza el último precio de compra y liquida contado por caja o abre la
// cuenta a pagar.
type UseCase struct {
	tx ports.TxRunner
}

// New construye el caso de uso.
func New(tx ports.TxRunner) *UseCase {
	return &UseCase{tx: tx}
}

// CreateOrder crea una orden de compra en borrador con sus líneas.
func (uc *UseCase) CreateOrder(ctx context.Context, actorID string, req dto.CreatePurchaseOrderRequest) (*entity.PurchaseOrder, error) {
	if req.SupplierID == "" || len(req.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if req.Condition != entity.CondicionContado && req.Condition != entity.CondicionCredito {
		return nil, domain.ErrInvalidInput
	}
	for _, l := range req.Lines {
		if l.ProductID == "" || !l.Quantity.IsPositive() || l.UnitCost.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
	}

	var order *entity.PurchaseOrder
	err := uc.tx.Run(ctx, func(r *ports.Repos) error {
		supplier, err := r.Suppliers.GetByID(req.SupplierID)
		if err != nil {
			return err
		}
		if !supplier.Active {
			return domain.ErrInvalidState
		}
		existing, err := r.PurchaseOrders.List("")
		if err != nil {
			return err
		}
		now := time.Now()
		order = &entity.PurchaseOrder{
			ID:         uuid.New().String(),
			Number:     fmt.Sprintf("%05d", len(existing)+1),
			SupplierID: req.SupplierID,
			Date:       now,
			Condition:  req.Condition,
			State:      entity.PurchaseBorrador,
			CreatedBy:  actorID,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if req.Condition == entity.CondicionCredito {
			if req.DueDate != "" {
				due, err := time.Parse("2006-01-02", req.DueDate)
				if err != nil {
					return domain.ErrInvalidInput
				}
				order.DueDate = &due
				order.TermDays = int(due.Sub(now.Truncate(24*time.Hour)).Hours() / 24)
			} else {
				order.TermDays = 30
			}
		}
		total := decimal.Zero
		details := make([]*entity.PurchaseOrderDetail, 0, len(req.Lines))
		for _, l := range req.Lines {
			if _, err := r.Products.GetByID(l.ProductID); err != nil {
				return err
			}
			subtotal := l.Quantity.Mul(l.UnitCost)
			details = append(details, &entity.PurchaseOrderDetail{
				ID:        uuid.New().String(),
				OrderID:   order.ID,
				ProductID: l.ProductID,
				Quantity:  l.Quantity,
				UnitPrice: l.UnitCost,
				Subtotal:  subtotal,
			})
			total = total.Add(subtotal)
		}
		order.Subtotal = total
		order.Total = total
		order.Details = details
		return r.PurchaseOrders.Create(order)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// Approve pasa la orden de BORRADOR a APROBADA.
func (uc *UseCase) Approve(ctx context.Context, orderID string) error {
	return uc.tx.Run(ctx, func(r *ports.Repos) error {
		order, err := r.PurchaseOrders.GetForUpdate(orderID)
		if err != nil {
			return err
		}
		if order.State != entity.PurchaseBorrador {
			return domain.ErrInvalidState
		}
		order.State = entity.PurchaseAprobada
		order.UpdatedAt = time.Now()
		return r.PurchaseOrders.Update(order)
	})
}

// Cancel anula una orden en BORRADOR o APROBADA; jamás una ya recibida.
func (uc *UseCase) Cancel(ctx context.Context, orderID string) error {
	return uc.tx.Run(ctx, func(r *ports.Repos) error {
		order, err := r.PurchaseOrders.GetForUpdate(orderID)
		if err != nil {
			return err
		}
		if order.State != entity.PurchaseBorrador && order.State != entity.PurchaseAprobada {
			return domain.ErrInvalidState
		}
		order.State = entity.PurchaseCancelada
		order.UpdatedAt = time.Now()
		return r.PurchaseOrders.Update(order)
	})
}

// Receive registra la recepción de una orden APROBADA: ingresa cada línea al
// inventario, actualiza el último precio de compra y, según la condición,
// registra el egreso de caja (CONTADO) o abre la cuenta a pagar (CREDITO).
func (uc *UseCase) Receive(ctx context.Context, actorID, orderID, registerID string, req dto.ReceivePurchaseRequest) (*entity.Reception, error) {
	if req.WarehouseID == "" {
		return nil, domain.ErrInvalidInput
	}
	var reception *entity.Reception
	err := uc.tx.Run(ctx, func(r *ports.Repos) error {
		order, err := r.PurchaseOrders.GetForUpdate(orderID)
		if err != nil {
			return err
		}
		if order.State != entity.PurchaseAprobada {
			return domain.ErrInvalidState
		}
		if _, err := r.Warehouses.GetByID(req.WarehouseID); err != nil {
			return err
		}

		// Cantidades recibidas por detalle; sin solicitud explícita se
		// recibe todo lo ordenado.
		requested := map[string]decimal.Decimal{}
		for _, l := range req.Lines {
			if !l.Quantity.IsPositive() {
				return domain.ErrInvalidInput
			}
			requested[l.DetailID] = l.Quantity
		}

		details := order.Details
		now := time.Now()
		reason := order.ReasonTag()
		for _, d := range details {
			qty := d.Quantity
			if len(requested) > 0 {
				q, ok := requested[d.ID]
				if !ok {
					continue
				}
				if q.GreaterThan(d.Quantity) {
					return domain.ErrInvalidInput
				}
				qty = q
			}
			if _, err := inventory.Apply(r, &entity.InventoryMovement{
				ProductID:   d.ProductID,
				WarehouseID: req.WarehouseID,
				Kind:        entity.MovementEntrada,
				Quantity:    qty,
				ActorID:     actorID,
				Reason:      reason,
			}); err != nil {
				return err
			}
			if err := r.Products.UpdatePurchasePrice(d.ProductID, d.UnitPrice); err != nil {
				return err
			}
			d.Received = true
			d.ReceivedQty = qty
			if err := r.PurchaseOrders.UpdateDetail(d); err != nil {
				return err
			}
		}

		reception = &entity.Reception{
			ID:          uuid.New().String(),
			OrderID:     order.ID,
			WarehouseID: req.WarehouseID,
			ReceivedBy:  actorID,
			Date:        now,
		}
		if err := r.Receptions.Create(reception); err != nil {
			return err
		}

		switch order.Condition {
		case entity.CondicionContado:
			if registerID == "" {
				return domain.ErrInvalidInput
			}
			movement, err := cashbox.Post(r, &entity.CashMovement{
				RegisterID:  registerID,
				Kind:        entity.CashEgreso,
				Amount:      order.Total,
				ActorID:     actorID,
				Description: "Pago contado orden de compra " + order.Number,
				Comprobante: "OC-" + order.Number,
				PurchaseID:  order.ID,
			})
			if err != nil {
				return err
			}
			order.CashRegisterID = registerID
			order.CashMovementID = movement.ID
			order.State = entity.PurchasePagada
		case entity.CondicionCredito:
			due := order.DueDate
			if due == nil {
				d := now.AddDate(0, 0, order.TermDays)
				due = &d
			}
			payable := &entity.AccountsPayable{
				ID:        uuid.New().String(),
				OrderID:   order.ID,
				Balance:   order.Total,
				DueDate:   *due,
				State:     entity.PayablePendiente,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := r.Payables.Create(payable); err != nil {
				return err
			}
			order.State = entity.PurchaseRecibida
		}
		order.ReceptionDate = &now
		order.UpdatedAt = now
		return r.PurchaseOrders.Update(order)
	})
	if err != nil {
		return nil, err
	}
	return reception, nil
}

// PaySupplier aplica un pago a la cuenta a pagar de una orden. Egresa de caja
// y, si el balance llega a cero, marca la orden PAGADA.
func (uc *UseCase) PaySupplier(ctx context.Context, actorID, payableID string, req dto.PaySupplierRequest) (*entity.SupplierPayment, error) {
	if !req.Amount.IsPositive() || req.RegisterID == "" {
		return nil, domain.ErrInvalidInput
	}
	var payment *entity.SupplierPayment
	err := uc.tx.Run(ctx, func(r *ports.Repos) error {
		payable, err := r.Payables.GetForUpdate(payableID)
		if err != nil {
			return err
		}
		if payable.State == entity.PayableAnulada || payable.Balance.IsZero() {
			return domain.ErrInvalidState
		}
		if req.Amount.GreaterThan(payable.Balance) {
			return domain.ErrInvalidInput
		}
		order, err := r.PurchaseOrders.GetForUpdate(payable.OrderID)
		if err != nil {
			return err
		}

		now := time.Now()
		method := req.Method
		if method == "" {
			method = entity.PagoEfectivo
		}
		payment = &entity.SupplierPayment{
			ID:             uuid.New().String(),
			PayableID:      payable.ID,
			Amount:         req.Amount,
			Method:         method,
			Date:           now,
			Comprobante:    fmt.Sprintf("PAGO-OC-%s-%d", order.Number, now.UnixNano()),
			CashRegisterID: req.RegisterID,
			ActorID:        actorID,
			CreatedAt:      now,
		}
		movement, err := cashbox.Post(r, &entity.CashMovement{
			RegisterID:  req.RegisterID,
			Kind:        entity.CashEgreso,
			Amount:      req.Amount,
			ActorID:     actorID,
			Description: "Pago a proveedor orden " + order.Number,
			Comprobante: payment.Comprobante,
			PurchaseID:  order.ID,
		})
		if err != nil {
			return err
		}
		payment.CashMovementID = movement.ID
		if err := r.SupplierPayments.Create(payment); err != nil {
			return err
		}

		payable.Balance = payable.Balance.Sub(req.Amount)
		payable.State = payable.DeriveState(now)
		payable.UpdatedAt = now
		if err := r.Payables.Update(payable); err != nil {
			return err
		}
		if payable.Balance.IsZero() {
			order.State = entity.PurchasePagada
			order.UpdatedAt = now
			return r.PurchaseOrders.Update(order)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}

// RevertSupplierPayment anula un pago a proveedor: restituye el balance de la
// cuenta, compensa la caja con un ingreso y marca el pago cancelado. El pago
// nunca se borra.
func (uc *UseCase) RevertSupplierPayment(ctx context.Context, actorID, paymentID, motive, registerID string) error {
	if motive == "" || registerID == "" {
		return domain.ErrInvalidInput
	}
	return uc.tx.Run(ctx, func(r *ports.Repos) error {
		payment, err := r.SupplierPayments.GetByID(paymentID)
		if err != nil {
			return err
		}
		if payment.Cancelled {
			return domain.ErrInvalidState
		}
		payable, err := r.Payables.GetForUpdate(payment.PayableID)
		if err != nil {
			return err
		}
		order, err := r.PurchaseOrders.GetForUpdate(payable.OrderID)
		if err != nil {
			return err
		}

		now := time.Now()
		if _, err := cashbox.Post(r, &entity.CashMovement{
			RegisterID:  registerID,
			Kind:        entity.CashIngreso,
			Amount:      payment.Amount,
			ActorID:     actorID,
			Description: "Anulación pago a proveedor orden " + order.Number,
			Comprobante: fmt.Sprintf("%s-CANC-%d", payment.Comprobante, now.Unix()),
			PurchaseID:  order.ID,
		}); err != nil {
			return err
		}

		payable.Balance = payable.Balance.Add(payment.Amount)
		payable.State = payable.DeriveState(now)
		payable.UpdatedAt = now
		if err := r.Payables.Update(payable); err != nil {
			return err
		}
		if order.State == entity.PurchasePagada {
			order.State = entity.PurchaseRecibida
			order.UpdatedAt = now
			if err := r.PurchaseOrders.Update(order); err != nil {
				return err
			}
		}

		payment.Cancelled = true
		payment.CancelMotive = motive
		payment.CancelledBy = actorID
		payment.CancelledAt = &now
		return r.SupplierPayments.Update(payment)
	})
}
