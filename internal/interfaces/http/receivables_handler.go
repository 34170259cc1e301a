package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-paraguay/internal/application/dto"
	"github.com/jhoicas/pos-paraguay/internal/application/receivables"
)

// ReceivablesHandler maneja el plan de cuotas y sus cobros.
type ReceivablesHandler struct {
	uc *receivables.UseCase
}

// NewReceivablesHandler construye el handler.
func NewReceivablesHandler(uc *receivables.UseCase) *ReceivablesHandler {
	return &ReceivablesHandler{uc: uc}
}

// ListSchedule devuelve el plan de cuotas de una venta a crédito.
func (h *ReceivablesHandler) ListSchedule(c *fiber.Ctx) error {
	out, err := h.uc.ListSchedule(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// RegisterPayment registra un cobro (total o parcial) sobre una cuota.
func (h *ReceivablesHandler) RegisterPayment(c *fiber.Ctx) error {
	var in dto.PayCuotaRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.RegisterPayment(c.Context(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// CancelPayment anula un cobro de cuota restaurando su saldo.
func (h *ReceivablesHandler) CancelPayment(c *fiber.Ctx) error {
	var in dto.CancelCuotaPaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.Motive == "" {
		return badRequest(c, "VALIDATION", "motive es requerido")
	}
	if err := h.uc.CancelPayment(c.Context(), GetUserID(c), c.Params("id"), in); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
