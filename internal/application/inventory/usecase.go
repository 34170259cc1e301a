package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-paraguay/internal/application/dto"
	"github.com/jhoicas/pos-paraguay/internal/application/ports"
	"github.com/jhoicas/pos-paraguay/internal/domain"
	"github.com/jhoicas/pos-paraguay/internal/domain/entity"
)

// UseCase es el motor de inventario: log append-only de movimientos con saldo
// materializado por (producto, almacén), siempre no negativo. Todas las
// mutaciones toman el saldo con bloqueo de fila antes de tocarlo.
type UseCase struct {
	tx ports.TxRunner
}

// New construye el caso de uso.
func New(tx ports.TxRunner) *UseCase {
	return &UseCase{tx: tx}
}

// PostMovement registra un movimiento manual (entrada, salida o ajuste).
func (uc *UseCase) PostMovement(ctx context.Context, actorID string, req dto.PostMovementRequest) (*entity.InventoryMovement, error) {
	switch req.Kind {
	case entity.MovementEntrada, entity.MovementSalida,
		entity.MovementAjusteSobrante, entity.MovementAjusteFaltante:
	default:
		return nil, domain.ErrInvalidInput
	}
	if !req.Quantity.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	if req.ProductID == "" || req.WarehouseID == "" {
		return nil, domain.ErrInvalidInput
	}

	var movement *entity.InventoryMovement
	err := uc.tx.Run(ctx, func(r *ports.Repos) error {
		if _, err := r.Products.GetByID(req.ProductID); err != nil {
			return err
		}
		if _, err := r.Warehouses.GetByID(req.WarehouseID); err != nil {
			return err
		}
		var err error
		movement, err = Apply(r, &entity.InventoryMovement{
			ProductID:   req.ProductID,
			WarehouseID: req.WarehouseID,
			Kind:        req.Kind,
			Quantity:    req.Quantity,
			ActorID:     actorID,
			Reason:      req.Reason,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return movement, nil
}

// Apply registra un movimiento dentro de la transacción en curso: bloquea el
// saldo, verifica que una salida no lo deje negativo, persiste el movimiento
// y actualiza el saldo materializado. Las operaciones compuestas (ventas,
// recepciones, notas de crédito) entran por aquí.
func Apply(r *ports.Repos, m *entity.InventoryMovement) (*entity.InventoryMovement, error) {
	if !m.Quantity.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	stock, err := r.Stocks.GetForUpdate(m.ProductID, m.WarehouseID)
	if err != nil {
		return nil, err
	}
	next := stock.Quantity.Add(m.SignedQuantity())
	if next.IsNegative() {
		return nil, &domain.InsufficientStockError{
			ProductID:   m.ProductID,
			WarehouseID: m.WarehouseID,
			Available:   stock.Quantity.StringFixed(3),
			Requested:   m.Quantity.StringFixed(3),
		}
	}

	now := time.Now()
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if m.Date.IsZero() {
		m.Date = now
	}
	m.CreatedAt = now
	if err := r.Movements.Create(m); err != nil {
		return nil, err
	}

	stock.ProductID = m.ProductID
	stock.WarehouseID = m.WarehouseID
	stock.Quantity = next
	stock.UpdatedAt = now
	if err := r.Stocks.Upsert(stock); err != nil {
		return nil, err
	}
	return m, nil
}

// RevertMovement revierte un movimiento emitiendo el movimiento compensatorio
// del tipo inverso y marcando el original. El log nunca se borra.
func (uc *UseCase) RevertMovement(ctx context.Context, actorID, movementID, reason string) (*entity.InventoryMovement, error) {
	var compensating *entity.InventoryMovement
	err := uc.tx.Run(ctx, func(r *ports.Repos) error {
		original, err := r.Movements.GetByID(movementID)
		if err != nil {
			return err
		}
		if original.Reverted {
			return domain.ErrInvalidState
		}
		compensating, err = Apply(r, &entity.InventoryMovement{
			ProductID:   original.ProductID,
			WarehouseID: original.WarehouseID,
			Kind:        original.CompensatingKind(),
			Quantity:    original.Quantity,
			ActorID:     actorID,
			Reason:      reason,
		})
		if err != nil {
			return err
		}
		return r.Movements.MarkReverted(original.ID)
	})
	if err != nil {
		return nil, err
	}
	return compensating, nil
}

// RevertByReason revierte todos los movimientos vivos con el motivo dado,
// etiquetando los compensatorios con newReason. Lo usan la cancelación de
// ventas y de notas de crédito.
func RevertByReason(r *ports.Repos, actorID, reason, newReason string) error {
	movements, err := r.Movements.ListByReason(reason)
	if err != nil {
		return err
	}
	for _, m := range movements {
		if m.Reverted {
			continue
		}
		if _, err := Apply(r, &entity.InventoryMovement{
			ProductID:   m.ProductID,
			WarehouseID: m.WarehouseID,
			Kind:        m.CompensatingKind(),
			Quantity:    m.Quantity,
			ActorID:     actorID,
			Reason:      newReason,
		}); err != nil {
			return err
		}
		if err := r.Movements.MarkReverted(m.ID); err != nil {
			return err
		}
	}
	return nil
}

// RecomputeStock reconstruye el saldo materializado desde el log.
func (uc *UseCase) RecomputeStock(ctx context.Context, productID, warehouseID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := uc.tx.Run(ctx, func(r *ports.Repos) error {
		sum, err := r.Movements.SumSigned(productID, warehouseID)
		if err != nil {
			return err
		}
		total = sum
		return r.Stocks.Upsert(&entity.Stock{
			ProductID:   productID,
			WarehouseID: warehouseID,
			Quantity:    sum,
			UpdatedAt:   time.Now(),
		})
	})
	return total, err
}

// Transfer mueve productos entre almacenes: un par SALIDA/ENTRADA por línea,
// todo o nada, con referencia TR-YYYYMMDD-NNN correlativa del día.
func (uc *UseCase) Transfer(ctx context.Context, actorID string, req dto.TransferRequest) (*entity.Transfer, error) {
	if req.OriginWarehouseID == "" || req.TargetWarehouseID == "" ||
		req.OriginWarehouseID == req.TargetWarehouseID || len(req.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, l := range req.Lines {
		if l.ProductID == "" || !l.Quantity.IsPositive() {
			return nil, domain.ErrInvalidInput
		}
	}

	var transfer *entity.Transfer
	err := uc.tx.Run(ctx, func(r *ports.Repos) error {
		if _, err := r.Warehouses.GetByID(req.OriginWarehouseID); err != nil {
			return err
		}
		if _, err := r.Warehouses.GetByID(req.TargetWarehouseID); err != nil {
			return err
		}

		now := time.Now()
		prefix := "TR-" + now.Format("20060102")
		count, err := r.Transfers.CountByReferencePrefix(prefix)
		if err != nil {
			return err
		}
		transfer = &entity.Transfer{
			ID:            uuid.New().String(),
			Reference:     fmt.Sprintf("%s-%03d", prefix, count+1),
			FromWarehouse: req.OriginWarehouseID,
			ToWarehouse:   req.TargetWarehouseID,
			RequestedBy:   actorID,
			Reason:        req.Observations,
			Date:          now,
			CreatedAt:     now,
		}
		reason := "Traslado " + transfer.Reference
		for _, l := range req.Lines {
			if _, err := Apply(r, &entity.InventoryMovement{
				ProductID:   l.ProductID,
				WarehouseID: req.OriginWarehouseID,
				Kind:        entity.MovementSalida,
				Quantity:    l.Quantity,
				ActorID:     actorID,
				Reason:      reason,
			}); err != nil {
				return err
			}
			if _, err := Apply(r, &entity.InventoryMovement{
				ProductID:   l.ProductID,
				WarehouseID: req.TargetWarehouseID,
				Kind:        entity.MovementEntrada,
				Quantity:    l.Quantity,
				ActorID:     actorID,
				Reason:      reason,
			}); err != nil {
				return err
			}
			transfer.Details = append(transfer.Details, entity.TransferDetail{
				ID:         uuid.New().String(),
				TransferID: transfer.ID,
				ProductID:  l.ProductID,
				Quantity:   l.Quantity,
			})
		}
		return r.Transfers.Create(transfer)
	})
	if err != nil {
		return nil, err
	}
	return transfer, nil
}
