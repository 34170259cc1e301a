package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-paraguay/internal/application/dto"
	"github.com/jhoicas/pos-paraguay/internal/application/inventory"
)

// InventoryHandler maneja movimientos de inventario, reversos,
// recálculo de stock y traslados.
type InventoryHandler struct {
	uc *inventory.UseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.UseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// PostMovement registra un movimiento manual de inventario.
func (h *InventoryHandler) PostMovement(c *fiber.Ctx) error {
	var in dto.PostMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.ProductID == "" || in.WarehouseID == "" || in.Kind == "" {
		return badRequest(c, "VALIDATION", "product_id, warehouse_id y kind son requeridos")
	}
	out, err := h.uc.PostMovement(c.Context(), GetUserID(c), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// RevertMovement registra el movimiento compensatorio de otro movimiento.
func (h *InventoryHandler) RevertMovement(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "MISSING_ID", "id es requerido")
	}
	var in struct {
		Reason string `json:"reason"`
	}
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.RevertMovement(c.Context(), GetUserID(c), id, in.Reason)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// RecomputeStock reconstruye el stock proyectado desde el log de movimientos.
func (h *InventoryHandler) RecomputeStock(c *fiber.Ctx) error {
	productID := c.Query("product_id")
	warehouseID := c.Query("warehouse_id")
	if productID == "" || warehouseID == "" {
		return badRequest(c, "VALIDATION", "product_id y warehouse_id son requeridos")
	}
	qty, err := h.uc.RecomputeStock(c.Context(), productID, warehouseID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"product_id":   productID,
		"warehouse_id": warehouseID,
		"quantity":     qty,
	})
}

// Transfer registra un traslado entre depósitos.
func (h *InventoryHandler) Transfer(c *fiber.Ctx) error {
	var in dto.TransferRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.OriginWarehouseID == "" || in.TargetWarehouseID == "" || len(in.Lines) == 0 {
		return badRequest(c, "VALIDATION", "origin_warehouse_id, target_warehouse_id y lines son requeridos")
	}
	out, err := h.uc.Transfer(c.Context(), GetUserID(c), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
