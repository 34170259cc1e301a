package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-paraguay/internal/application/dto"
	"github.com/jhoicas/pos-paraguay/internal/application/purchasing"
)

// PurchasingHandler maneja el ciclo de compras: orden, aprobación,
// recepción, pagos a proveedor y sus reversos.
type PurchasingHandler struct {
	uc *purchasing.UseCase
}

// NewPurchasingHandler construye el handler.
func NewPurchasingHandler(uc *purchasing.UseCase) *PurchasingHandler {
	return &PurchasingHandler{uc: uc}
}

// CreateOrder crea una orden de compra en borrador.
func (h *PurchasingHandler) CreateOrder(c *fiber.Ctx) error {
	var in dto.CreatePurchaseOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.SupplierID == "" || len(in.Lines) == 0 {
		return badRequest(c, "VALIDATION", "supplier_id y lines son requeridos")
	}
	out, err := h.uc.CreateOrder(c.Context(), GetUserID(c), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Approve aprueba una orden en borrador.
func (h *PurchasingHandler) Approve(c *fiber.Ctx) error {
	if err := h.uc.Approve(c.Context(), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Cancel anula una orden no recibida.
func (h *PurchasingHandler) Cancel(c *fiber.Ctx) error {
	if err := h.uc.Cancel(c.Context(), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Receive registra una recepción de mercadería sobre una orden aprobada.
func (h *PurchasingHandler) Receive(c *fiber.Ctx) error {
	var in dto.ReceivePurchaseRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.WarehouseID == "" || len(in.Lines) == 0 {
		return badRequest(c, "VALIDATION", "warehouse_id y lines son requeridos")
	}
	registerID := c.Query("register_id")
	out, err := h.uc.Receive(c.Context(), GetUserID(c), c.Params("id"), registerID, in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// PaySupplier registra un pago (total o parcial) de una cuenta a pagar.
func (h *PurchasingHandler) PaySupplier(c *fiber.Ctx) error {
	var in dto.PaySupplierRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.PaySupplier(c.Context(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// RevertSupplierPayment anula un pago a proveedor restaurando el saldo.
func (h *PurchasingHandler) RevertSupplierPayment(c *fiber.Ctx) error {
	var in struct {
		Motive     string `json:"motive"`
		RegisterID string `json:"register_id"`
	}
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.Motive == "" {
		return badRequest(c, "VALIDATION", "motive es requerido")
	}
	if err := h.uc.RevertSupplierPayment(c.Context(), GetUserID(c), c.Params("id"), in.Motive, in.RegisterID); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
