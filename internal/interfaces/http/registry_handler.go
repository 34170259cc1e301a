package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-paraguay/internal/application/dto"
	"github.com/jhoicas/pos-paraguay/internal/application/registry"
)

// RegistryHandler expone las altas del registro de referencia:
// empresa, sucursales, puntos de expedición, timbrados, depósitos,
// productos, servicios, clientes y proveedores.
type RegistryHandler struct {
	uc *registry.UseCase
}

// NewRegistryHandler construye el handler.
func NewRegistryHandler(uc *registry.UseCase) *RegistryHandler {
	return &RegistryHandler{uc: uc}
}

// CreateCompany registra la empresa emisora.
func (h *RegistryHandler) CreateCompany(c *fiber.Ctx) error {
	var in dto.CreateCompanyRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.CreateCompany(c.Context(), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// CreateBranch registra una sucursal.
func (h *RegistryHandler) CreateBranch(c *fiber.Ctx) error {
	var in dto.CreateBranchRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.CreateBranch(c.Context(), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// CreateExpeditionPoint registra un punto de expedición con sus
// secuencias iniciales.
func (h *RegistryHandler) CreateExpeditionPoint(c *fiber.Ctx) error {
	var in dto.CreateExpeditionPointRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.CreateExpeditionPoint(c.Context(), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// CreateTimbrado registra un timbrado con su vigencia.
func (h *RegistryHandler) CreateTimbrado(c *fiber.Ctx) error {
	var in dto.CreateTimbradoRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.CreateTimbrado(c.Context(), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// VigenteTimbrado devuelve el timbrado vigente a la fecha.
func (h *RegistryHandler) VigenteTimbrado(c *fiber.Ctx) error {
	out, err := h.uc.VigenteTimbrado(c.Context(), time.Now())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// CreateWarehouse registra un depósito.
func (h *RegistryHandler) CreateWarehouse(c *fiber.Ctx) error {
	var in dto.CreateWarehouseRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.CreateWarehouse(c.Context(), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// CreateProduct registra un producto.
func (h *RegistryHandler) CreateProduct(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.CreateProduct(c.Context(), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// CreateService registra un servicio, simple o compuesto (con BOM).
func (h *RegistryHandler) CreateService(c *fiber.Ctx) error {
	var in dto.CreateServiceRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.CreateService(c.Context(), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// CreateCustomer registra un cliente.
func (h *RegistryHandler) CreateCustomer(c *fiber.Ctx) error {
	var in dto.CreateCustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.CreateCustomer(c.Context(), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// CreateSupplier registra un proveedor.
func (h *RegistryHandler) CreateSupplier(c *fiber.Ctx) error {
	var in dto.CreateSupplierRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.CreateSupplier(c.Context(), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
