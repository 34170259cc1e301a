package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-paraguay/internal/application/dto"
	"github.com/jhoicas/pos-paraguay/internal/application/numbering"
)

// NumberingHandler administra las secuencias de numeración de documentos.
type NumberingHandler struct {
	uc *numbering.UseCase
}

// NewNumberingHandler construye el handler.
func NewNumberingHandler(uc *numbering.UseCase) *NumberingHandler {
	return &NumberingHandler{uc: uc}
}

// SetNext ajusta manualmente el próximo número de una secuencia.
func (h *NumberingHandler) SetNext(c *fiber.Ctx) error {
	pointID := c.Params("point")
	docType := c.Params("doctype")
	var in dto.SetSequenceNextRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.NextNumber <= 0 {
		return badRequest(c, "VALIDATION", "next_number debe ser mayor a cero")
	}
	if err := h.uc.SetNext(c.Context(), pointID, docType, in.NextNumber); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Peek devuelve el próximo número formateado sin consumirlo.
func (h *NumberingHandler) Peek(c *fiber.Ctx) error {
	pointID := c.Params("point")
	docType := c.Query("document_type")
	if docType == "" {
		return badRequest(c, "VALIDATION", "document_type es requerido")
	}
	num, err := h.uc.Peek(c.Context(), pointID, docType)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"next": num})
}
