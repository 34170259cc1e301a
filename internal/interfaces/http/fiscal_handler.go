package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-paraguay/internal/application/fiscal"
	"github.com/jhoicas/pos-paraguay/internal/domain/entity"
)

// FiscalHandler maneja el ciclo del documento electrónico SIFEN de
// una venta: generación, envío, resendeo y KuDE.
type FiscalHandler struct {
	uc *fiscal.UseCase
}

// NewFiscalHandler construye el handler.
func NewFiscalHandler(uc *fiscal.UseCase) *FiscalHandler {
	return &FiscalHandler{uc: uc}
}

// Generate construye y firma el XML del documento electrónico.
func (h *FiscalHandler) Generate(c *fiber.Ctx) error {
	out, err := h.uc.Generate(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(documentView(out))
}

// Send envía el documento firmado al SIFEN y registra el resultado.
func (h *FiscalHandler) Send(c *fiber.Ctx) error {
	out, err := h.uc.Send(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(documentView(out))
}

// Kude devuelve el PDF KuDE del documento aceptado.
func (h *FiscalHandler) Kude(c *fiber.Ctx) error {
	pdf, err := h.uc.RenderKude(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="kude.pdf"`)
	return c.Send(pdf)
}

// ResendPending reintenta el envío de documentos pendientes o con error.
func (h *FiscalHandler) ResendPending(c *fiber.Ctx) error {
	n, err := h.uc.ResendPending(c.Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"sent": n})
}

// documentView resume el documento sin volcar el XML completo ni el PDF.
func documentView(d *entity.ElectronicDocument) fiber.Map {
	return fiber.Map{
		"id":             d.ID,
		"sale_id":        d.SaleID,
		"state":          d.State,
		"set_code":       d.SETCode,
		"qr_url":         d.QRURL,
		"kude_generated": d.KudeGenerated,
		"attempts":       d.Attempts,
		"errors":         d.Errors,
		"sent_at":        d.SentAt,
		"accepted_at":    d.AcceptedAt,
	}
}
