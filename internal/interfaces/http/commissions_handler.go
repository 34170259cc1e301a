package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-paraguay/internal/application/commissions"
	"github.com/jhoicas/pos-paraguay/internal/application/dto"
)

// CommissionsHandler maneja configuración y liquidación de comisiones
// de vendedores y cobradores.
type CommissionsHandler struct {
	uc *commissions.UseCase
}

// NewCommissionsHandler construye el handler.
func NewCommissionsHandler(uc *commissions.UseCase) *CommissionsHandler {
	return &CommissionsHandler{uc: uc}
}

// ConfigureSeller define el porcentaje y la base de comisión de un vendedor.
func (h *CommissionsHandler) ConfigureSeller(c *fiber.Ctx) error {
	var in struct {
		SellerID   string          `json:"seller_id"`
		Kind       string          `json:"kind"`
		Percentage decimal.Decimal `json:"percentage"`
	}
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.SellerID == "" {
		return badRequest(c, "VALIDATION", "seller_id es requerido")
	}
	out, err := h.uc.ConfigureSeller(c.Context(), in.SellerID, in.Kind, in.Percentage)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ConfigureCollector define el porcentaje de comisión de un cobrador.
func (h *CommissionsHandler) ConfigureCollector(c *fiber.Ctx) error {
	var in struct {
		CollectorID string          `json:"collector_id"`
		Percentage  decimal.Decimal `json:"percentage"`
	}
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.CollectorID == "" {
		return badRequest(c, "VALIDATION", "collector_id es requerido")
	}
	out, err := h.uc.ConfigureCollector(c.Context(), in.CollectorID, in.Percentage)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// PaySeller liquida una comisión de vendedor con egreso de caja.
func (h *CommissionsHandler) PaySeller(c *fiber.Ctx) error {
	var in dto.PayCommissionRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if err := h.uc.PaySeller(c.Context(), GetUserID(c), c.Params("id"), in); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// PayCollector liquida una comisión de cobrador con egreso de caja.
func (h *CommissionsHandler) PayCollector(c *fiber.Ctx) error {
	var in dto.PayCommissionRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if err := h.uc.PayCollector(c.Context(), GetUserID(c), c.Params("id"), in); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RevertSellerPayment revierte la liquidación de una comisión de vendedor.
func (h *CommissionsHandler) RevertSellerPayment(c *fiber.Ctx) error {
	var in dto.RevertCommissionPaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.Motive == "" {
		return badRequest(c, "VALIDATION", "motive es requerido")
	}
	if err := h.uc.RevertSellerPayment(c.Context(), GetUserID(c), c.Params("id"), in); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RevertCollectorPayment revierte la liquidación de una comisión de cobrador.
func (h *CommissionsHandler) RevertCollectorPayment(c *fiber.Ctx) error {
	var in dto.RevertCommissionPaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.Motive == "" {
		return badRequest(c, "VALIDATION", "motive es requerido")
	}
	if err := h.uc.RevertCollectorPayment(c.Context(), GetUserID(c), c.Params("id"), in); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
