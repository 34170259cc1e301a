package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-paraguay/internal/application/creditnotes"
	"github.com/jhoicas/pos-paraguay/internal/application/dto"
)

// CreditNotesHandler maneja la emisión y cancelación de notas de crédito.
type CreditNotesHandler struct {
	uc *creditnotes.UseCase
}

// NewCreditNotesHandler construye el handler.
func NewCreditNotesHandler(uc *creditnotes.UseCase) *CreditNotesHandler {
	return &CreditNotesHandler{uc: uc}
}

// Finalize emite una nota de crédito sobre una venta finalizada.
func (h *CreditNotesHandler) Finalize(c *fiber.Ctx) error {
	var in dto.FinalizeCreditNoteRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.SaleID == "" || in.Motive == "" {
		return badRequest(c, "VALIDATION", "sale_id y motive son requeridos")
	}
	out, err := h.uc.Finalize(c.Context(), GetUserID(c), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Cancel anula una nota de crédito emitida.
func (h *CreditNotesHandler) Cancel(c *fiber.Ctx) error {
	var in struct {
		Motive string `json:"motive"`
	}
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.Motive == "" {
		return badRequest(c, "VALIDATION", "motive es requerido")
	}
	if err := h.uc.Cancel(c.Context(), GetUserID(c), c.Params("id"), in.Motive); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
