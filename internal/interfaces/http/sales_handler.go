package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-paraguay/internal/application/dto"
	"github.com/jhoicas/pos-paraguay/internal/application/sales"
)

// SalesHandler maneja la finalización y cancelación de ventas.
type SalesHandler struct {
	uc *sales.UseCase
}

// NewSalesHandler construye el handler.
func NewSalesHandler(uc *sales.UseCase) *SalesHandler {
	return &SalesHandler{uc: uc}
}

// Finalize finaliza una venta: numera, descuenta stock, registra caja,
// genera cuotas y devenga comisión, todo en una transacción.
func (h *SalesHandler) Finalize(c *fiber.Ctx) error {
	var in dto.FinalizeSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if len(in.Lines) == 0 {
		return badRequest(c, "VALIDATION", "lines es requerido")
	}
	out, err := h.uc.Finalize(c.Context(), GetUserID(c), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Cancel cancela una venta finalizada revirtiendo stock, caja,
// cuotas y comisiones.
func (h *SalesHandler) Cancel(c *fiber.Ctx) error {
	var in dto.CancelSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.Motive == "" {
		return badRequest(c, "VALIDATION", "motive es requerido")
	}
	if err := h.uc.Cancel(c.Context(), GetUserID(c), c.Params("id"), in); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
