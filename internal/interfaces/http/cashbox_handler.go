package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-paraguay/internal/application/cashbox"
	"github.com/jhoicas/pos-paraguay/internal/application/dto"
)

// CashboxHandler maneja cajas registradoras: alta, apertura, cierre y
// movimientos manuales.
type CashboxHandler struct {
	uc *cashbox.UseCase
}

// NewCashboxHandler construye el handler.
func NewCashboxHandler(uc *cashbox.UseCase) *CashboxHandler {
	return &CashboxHandler{uc: uc}
}

// CreateRegister da de alta una caja asociada a un punto de expedición.
func (h *CashboxHandler) CreateRegister(c *fiber.Ctx) error {
	var in struct {
		ExpeditionPointID string `json:"expedition_point_id"`
		Name              string `json:"name"`
	}
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.Name == "" {
		return badRequest(c, "VALIDATION", "name es requerido")
	}
	out, err := h.uc.CreateRegister(c.Context(), in.ExpeditionPointID, in.Name)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Open abre una sesión de caja con su saldo inicial.
func (h *CashboxHandler) Open(c *fiber.Ctx) error {
	id := c.Params("id")
	var in dto.OpenRegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.Open(c.Context(), GetUserID(c), id, in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Close cierra la sesión abierta y devuelve la conciliación.
func (h *CashboxHandler) Close(c *fiber.Ctx) error {
	id := c.Params("id")
	var in dto.CloseRegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.Close(c.Context(), GetUserID(c), id, in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// PostMovement registra un movimiento manual sobre la sesión abierta.
func (h *CashboxHandler) PostMovement(c *fiber.Ctx) error {
	id := c.Params("id")
	var in dto.CashMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.Kind == "" || in.Comprobante == "" {
		return badRequest(c, "VALIDATION", "kind y comprobante son requeridos")
	}
	out, err := h.uc.PostMovement(c.Context(), GetUserID(c), id, in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
