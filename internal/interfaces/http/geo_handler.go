package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-paraguay/internal/infrastructure/geo"
)

// GeoHandler expone el árbol de ubicaciones (solo lectura).
type GeoHandler struct {
	registry *geo.Registry
}

// NewGeoHandler construye el handler.
func NewGeoHandler(registry *geo.Registry) *GeoHandler {
	return &GeoHandler{registry: registry}
}

// Departamentos lista todos los departamentos.
func (h *GeoHandler) Departamentos(c *fiber.Ctx) error {
	return c.JSON(h.registry.Departamentos())
}

// Distritos lista los distritos de un departamento.
func (h *GeoHandler) Distritos(c *fiber.Ctx) error {
	return c.JSON(h.registry.Distritos(c.Params("depto")))
}

// Ciudades lista las ciudades de un distrito.
func (h *GeoHandler) Ciudades(c *fiber.Ctx) error {
	return c.JSON(h.registry.Ciudades(c.Params("depto"), c.Params("distrito")))
}

// Barrios lista los barrios de una ciudad.
func (h *GeoHandler) Barrios(c *fiber.Ctx) error {
	return c.JSON(h.registry.Barrios(c.Params("depto"), c.Params("distrito"), c.Params("ciudad")))
}
