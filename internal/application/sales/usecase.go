package sales

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-paraguay/internal/application/cashbox"
	"github.com/jhoicas/pos-paraguay/internal/application/commissions"
	"github.com/jhoicas/pos-paraguay/internal/application/dto"
	"github.com/jhoicas/pos-paraguay/internal/application/inventory"
	"github.com/jhoicas/pos-paraguay/internal/application/numbering"
	"github.com/jhoicas/pos-paraguay/internal/application/ports"
	"github.com/jhoicas/pos-paraguay/internal/application/receivables"
	"github.com/jhoicas/pos-paraguay/internal/domain"
	"github.com/jhoicas/pos-paraguay/internal/domain/entity"
)

// UseCase gobierna el ciclo de ventas. Finalize ejecuta en una sola
// transacción la verificación de stock (con explosión de servicios
// compuestos), la asignación del número de documento, las salidas de
// inventario, el cobro o el cronograma de cuotas y el devengo de la comisión
// del vendedor.
type UseCase struct {
	tx ports.TxRunner
}

// New construye el caso de uso.
func New(tx ports.TxRunner) *UseCase {
	return &UseCase{tx: tx}
}

// demand acumula la demanda de stock por (producto, almacén); las líneas que
// comparten destino se verifican sumadas, no una por una.
type demand struct {
	productID   string
	warehouseID string
	quantity    decimal.Decimal
}

// Finalize crea y finaliza una venta en una sola transacción.
func (uc *UseCase) Finalize(ctx context.Context, actorID string, req dto.FinalizeSaleRequest) (*entity.Sale, error) {
	if len(req.Lines) == 0 || req.CustomerID == "" || req.SellerID == "" || req.RegisterID == "" {
		return nil, domain.ErrInvalidInput
	}
	if req.DocumentType != entity.DocTypeFactura && req.DocumentType != entity.DocTypeTicket {
		return nil, domain.ErrInvalidInput
	}
	switch req.Condition {
	case entity.CondicionContado:
	case entity.CondicionCredito:
		if req.CuotaCount < 1 || req.InitialEntry.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
	default:
		return nil, domain.ErrInvalidInput
	}
	for _, l := range req.Lines {
		if (l.ProductID == "") == (l.ServiceID == "") {
			return nil, domain.ErrInvalidInput
		}
		if !l.Quantity.IsPositive() || l.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		if l.ProductID != "" && l.WarehouseID == "" {
			return nil, domain.ErrInvalidInput
		}
	}

	var sale *entity.Sale
	err := uc.tx.Run(ctx, func(r *ports.Repos) error {
		customer, err := r.Customers.GetByID(req.CustomerID)
		if err != nil {
			return err
		}
		if !customer.Active {
			return domain.ErrInvalidState
		}
		if _, err := r.Users.GetByID(req.SellerID); err != nil {
			return err
		}
		register, err := r.CashRegisters.GetByID(req.RegisterID)
		if err != nil {
			return err
		}
		if register.State != entity.RegisterAbierta {
			return domain.ErrRegisterClosed
		}

		// Solo los comprobantes fiscales exigen un timbrado vigente; un
		// TICKET simple puede emitirse sin timbrado alguno.
		now := time.Now()
		var timbradoID string
		if req.DocumentType == entity.DocTypeFactura {
			timbrado, err := vigenteTimbrado(r, now)
			if err != nil {
				return err
			}
			timbradoID = timbrado.ID
		} else if timbrado, err := vigenteTimbrado(r, now); err == nil {
			timbradoID = timbrado.ID
		} else if !errors.Is(err, domain.ErrInvalidState) {
			return err
		}

		pointID := req.ExpeditionPointID
		if pointID == "" {
			pointID = register.ExpeditionPointID
		}

		existing, err := r.Sales.List("")
		if err != nil {
			return err
		}
		sale = &entity.Sale{
			ID:             uuid.New().String(),
			Number:         fmt.Sprintf("%05d", len(existing)+1),
			DocumentType:   req.DocumentType,
			TimbradoID:     timbradoID,
			Condition:      req.Condition,
			CustomerID:     req.CustomerID,
			SellerID:       req.SellerID,
			CashRegisterID: req.RegisterID,
			PaymentKind:    req.PaymentMethod,
			Date:           now,
			InitialEntry:   req.InitialEntry,
			CuotaCount:     req.CuotaCount,
			DueDay:         req.DueDay,
			State:          entity.SaleFinalizada,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if req.FirstDueDate != "" {
			first, err := time.Parse("2006-01-02", req.FirstDueDate)
			if err != nil {
				return domain.ErrInvalidInput
			}
			sale.FirstDueDate = &first
		}

		// Arma las líneas y acumula la demanda de stock, explotando la
		// receta de los servicios compuestos sobre su almacén de servicio
		// (por defecto el principal).
		demands := map[string]*demand{}
		addDemand := func(productID, warehouseID string, qty decimal.Decimal) {
			key := productID + "|" + warehouseID
			if d, ok := demands[key]; ok {
				d.quantity = d.quantity.Add(qty)
				return
			}
			demands[key] = &demand{productID: productID, warehouseID: warehouseID, quantity: qty}
		}

		total := decimal.Zero
		for _, l := range req.Lines {
			detail := &entity.SaleDetail{
				ID:       uuid.New().String(),
				SaleID:   sale.ID,
				Quantity: l.Quantity,
			}
			switch {
			case l.ProductID != "":
				product, err := r.Products.GetByID(l.ProductID)
				if err != nil {
					return err
				}
				if _, err := r.Warehouses.GetByID(l.WarehouseID); err != nil {
					return err
				}
				price := l.UnitPrice
				if price.IsZero() {
					price = product.RetailPrice
				}
				detail.Kind = entity.DetailProducto
				detail.ProductID = product.ID
				detail.WarehouseID = l.WarehouseID
				detail.UnitPrice = price
				detail.IVARate = product.IVARate
				addDemand(product.ID, l.WarehouseID, l.Quantity)
			case l.ServiceID != "":
				service, err := r.Services.GetByID(l.ServiceID)
				if err != nil {
					return err
				}
				price := l.UnitPrice
				if price.IsZero() {
					price = service.Price
				}
				detail.Kind = entity.DetailServicio
				detail.ServiceID = service.ID
				detail.UnitPrice = price
				detail.IVARate = service.IVARate
				if service.NeedsInventory() {
					warehouseID := l.ServiceWarehouseID
					if warehouseID == "" {
						principal, err := r.Warehouses.GetPrincipal()
						if err != nil {
							return err
						}
						warehouseID = principal.ID
					}
					detail.ServiceWarehouseID = warehouseID
					for _, c := range service.Components {
						addDemand(c.ProductID, warehouseID, c.Quantity.Mul(l.Quantity))
					}
				}
			}
			detail.Subtotal = detail.UnitPrice.Mul(l.Quantity)
			total = total.Add(detail.Subtotal)
			sale.Details = append(sale.Details, detail)
		}
		sale.Subtotal = total
		sale.Total = total
		if req.Condition == entity.CondicionCredito && req.InitialEntry.GreaterThanOrEqual(total) {
			return domain.ErrInvalidInput
		}

		// Verificación agregada de stock antes de mover nada.
		for _, d := range demands {
			stock, err := r.Stocks.GetForUpdate(d.productID, d.warehouseID)
			if err != nil {
				return err
			}
			if stock.Quantity.LessThan(d.quantity) {
				return &domain.InsufficientStockError{
					ProductID:   d.productID,
					WarehouseID: d.warehouseID,
					Available:   stock.Quantity.StringFixed(3),
					Requested:   d.quantity.StringFixed(3),
				}
			}
		}

		number, err := numbering.Allocate(r, pointID, req.DocumentType)
		if err != nil {
			return err
		}
		sale.DocumentNumber = number

		reason := sale.ReasonTag()
		for _, d := range demands {
			if _, err := inventory.Apply(r, &entity.InventoryMovement{
				ProductID:   d.productID,
				WarehouseID: d.warehouseID,
				Kind:        entity.MovementSalida,
				Quantity:    d.quantity,
				ActorID:     actorID,
				Reason:      reason,
			}); err != nil {
				return err
			}
		}

		if err := r.Sales.Create(sale); err != nil {
			return err
		}

		switch req.Condition {
		case entity.CondicionContado:
			if _, err := cashbox.Post(r, &entity.CashMovement{
				RegisterID:  req.RegisterID,
				Kind:        entity.CashIngreso,
				Amount:      sale.Total,
				ActorID:     actorID,
				Description: "Venta contado " + sale.DocumentNumber,
				Comprobante: "V-" + sale.Number,
				SaleID:      sale.ID,
			}); err != nil {
				return err
			}
		case entity.CondicionCredito:
			if _, err := receivables.BuildSchedule(r, sale); err != nil {
				return err
			}
			if sale.InitialEntry.IsPositive() {
				if _, err := cashbox.Post(r, &entity.CashMovement{
					RegisterID:  req.RegisterID,
					Kind:        entity.CashIngreso,
					Amount:      sale.InitialEntry,
					ActorID:     actorID,
					Description: "Entrega inicial venta " + sale.DocumentNumber,
					Comprobante: "V-" + sale.Number,
					SaleID:      sale.ID,
				}); err != nil {
					return err
				}
			}
		}

		_, err = commissions.AccrueSeller(r, sale)
		return err
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}

// Cancel anula una venta FINALIZADA: reingresa el inventario con movimientos
// compensatorios, egresa de caja lo cobrado y anula cuotas y comisiones no
// liquidadas. Rechaza si hay cobros de cuotas vivos o comisiones liquidadas.
func (uc *UseCase) Cancel(ctx context.Context, actorID, saleID string, req dto.CancelSaleRequest) error {
	if req.Motive == "" {
		return domain.ErrInvalidInput
	}
	return uc.tx.Run(ctx, func(r *ports.Repos) error {
		sale, err := r.Sales.GetForUpdate(saleID)
		if err != nil {
			return err
		}
		if sale.State != entity.SaleFinalizada {
			return domain.ErrInvalidState
		}
		notes, err := r.CreditNotes.ListBySale(sale.ID)
		if err != nil {
			return err
		}
		for _, n := range notes {
			if n.State == entity.NoteFinalizada {
				return domain.ErrInvalidState
			}
		}

		now := time.Now()
		registerID := req.RegisterID
		if registerID == "" {
			registerID = sale.CashRegisterID
		}

		// Lo efectivamente cobrado por caja vuelve a salir.
		collected := decimal.Zero
		movements, err := r.CashMovements.ListBySale(sale.ID)
		if err != nil {
			return err
		}
		for _, m := range movements {
			collected = collected.Add(m.SignedAmount())
		}

		if sale.Condition == entity.CondicionCredito {
			cuotas, err := r.Cuotas.ListBySale(sale.ID)
			if err != nil {
				return err
			}
			for _, c := range cuotas {
				if c.InitialEntry {
					continue
				}
				payments, err := r.CuotaPayments.ListByCuota(c.ID)
				if err != nil {
					return err
				}
				for _, p := range payments {
					if !p.Cancelled {
						return domain.ErrInvalidState
					}
				}
				c.Balance = decimal.Zero
				c.State = entity.CuotaPagada
				c.UpdatedAt = now
				if err := r.Cuotas.Update(c); err != nil {
					return err
				}
			}
		}

		sellerCommissions, err := r.SellerCommissions.ListBySale(sale.ID)
		if err != nil {
			return err
		}
		for _, c := range sellerCommissions {
			if c.Paid.IsPositive() {
				return domain.ErrInvalidState
			}
			c.Accrued = decimal.Zero
			c.State = entity.CommissionAnulada
			c.Notes = "Anulado por cancelación de la venta: " + req.Motive
			c.UpdatedAt = now
			if err := r.SellerCommissions.Update(c); err != nil {
				return err
			}
		}

		if err := inventory.RevertByReason(r, actorID, sale.ReasonTag(), sale.CancelReasonTag()); err != nil {
			return err
		}

		if collected.IsPositive() {
			if _, err := cashbox.Post(r, &entity.CashMovement{
				RegisterID:  registerID,
				Kind:        entity.CashEgreso,
				Amount:      collected,
				ActorID:     actorID,
				Description: "Devolución por cancelación venta " + sale.Number + ": " + req.Motive,
				Comprobante: fmt.Sprintf("V-%s-CANC-%d", sale.Number, now.Unix()),
				SaleID:      sale.ID,
			}); err != nil {
				return err
			}
		}

		sale.State = entity.SaleCancelada
		sale.Notes = req.Motive
		sale.UpdatedAt = now
		return r.Sales.Update(sale)
	})
}

// vigenteTimbrado localiza el timbrado VIGENTE para la fecha.
func vigenteTimbrado(r *ports.Repos, today time.Time) (*entity.Timbrado, error) {
	list, err := r.Timbrados.List()
	if err != nil {
		return nil, err
	}
	for _, t := range list {
		if t.Status(today) == entity.TimbradoVigente {
			return t, nil
		}
	}
	return nil, domain.ErrInvalidState
}
