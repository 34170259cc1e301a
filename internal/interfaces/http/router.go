package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-paraguay/internal/application/auth"
	"github.com/jhoicas/pos-paraguay/internal/application/cashbox"
	"github.com/jhoicas/pos-paraguay/internal/application/commissions"
	"github.com/jhoicas/pos-paraguay/internal/application/creditnotes"
	"github.com/jhoicas/pos-paraguay/internal/application/fiscal"
	"github.com/jhoicas/pos-paraguay/internal/application/inventory"
	"github.com/jhoicas/pos-paraguay/internal/application/numbering"
	"github.com/jhoicas/pos-paraguay/internal/application/purchasing"
	"github.com/jhoicas/pos-paraguay/internal/application/receivables"
	"github.com/jhoicas/pos-paraguay/internal/application/registry"
	"github.com/jhoicas/pos-paraguay/internal/application/sales"
	"github.com/jhoicas/pos-paraguay/internal/infrastructure/geo"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	RegistryUC    *registry.UseCase
	InventoryUC   *inventory.UseCase
	CashboxUC     *cashbox.UseCase
	NumberingUC   *numbering.UseCase
	PurchasingUC  *purchasing.UseCase
	SalesUC       *sales.UseCase
	ReceivablesUC *receivables.UseCase
	CommissionsUC *commissions.UseCase
	CreditNotesUC *creditnotes.UseCase
	FiscalUC      *fiscal.UseCase
	AuthUC        *auth.UseCase
	Geo           *geo.Registry
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Ubicaciones (público, solo lectura)
	geoGroup := api.Group("/ubicaciones")
	geoHandler := NewGeoHandler(deps.Geo)
	geoGroup.Get("/departamentos", geoHandler.Departamentos)
	geoGroup.Get("/departamentos/:depto/distritos", geoHandler.Distritos)
	geoGroup.Get("/departamentos/:depto/distritos/:distrito/ciudades", geoHandler.Ciudades)
	geoGroup.Get("/departamentos/:depto/distritos/:distrito/ciudades/:ciudad/barrios", geoHandler.Barrios)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Registro de referencia (protegido, solo admin)
	registryHandler := NewRegistryHandler(deps.RegistryUC)
	admin := protected.Group("/", RequireRole("admin"))
	admin.Post("/companies", registryHandler.CreateCompany)
	admin.Post("/branches", registryHandler.CreateBranch)
	admin.Post("/expedition-points", registryHandler.CreateExpeditionPoint)
	admin.Post("/timbrados", registryHandler.CreateTimbrado)
	admin.Post("/warehouses", registryHandler.CreateWarehouse)
	protected.Get("/timbrados/vigente", registryHandler.VigenteTimbrado)
	protected.Post("/products", registryHandler.CreateProduct)
	protected.Post("/services", registryHandler.CreateService)
	protected.Post("/customers", registryHandler.CreateCustomer)
	protected.Post("/suppliers", registryHandler.CreateSupplier)

	// Secuencias de numeración (protegido, solo admin)
	numberingHandler := NewNumberingHandler(deps.NumberingUC)
	admin.Put("/sequences/:point/:doctype", numberingHandler.SetNext)
	protected.Get("/sequences/:point", numberingHandler.Peek)

	// Inventario (protegido)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	invGroup.Post("/movements", inventoryHandler.PostMovement)
	invGroup.Post("/movements/:id/revert", inventoryHandler.RevertMovement)
	invGroup.Post("/recompute", inventoryHandler.RecomputeStock)
	invGroup.Post("/transfers", inventoryHandler.Transfer)

	// Cajas (protegido)
	cashGroup := protected.Group("/registers")
	cashboxHandler := NewCashboxHandler(deps.CashboxUC)
	cashGroup.Post("/", cashboxHandler.CreateRegister)
	cashGroup.Post("/:id/open", cashboxHandler.Open)
	cashGroup.Post("/:id/close", cashboxHandler.Close)
	cashGroup.Post("/:id/movements", cashboxHandler.PostMovement)

	// Compras (protegido)
	purchGroup := protected.Group("/purchase-orders")
	purchasingHandler := NewPurchasingHandler(deps.PurchasingUC)
	purchGroup.Post("/", purchasingHandler.CreateOrder)
	purchGroup.Post("/:id/approve", purchasingHandler.Approve)
	purchGroup.Post("/:id/cancel", purchasingHandler.Cancel)
	purchGroup.Post("/:id/receptions", purchasingHandler.Receive)
	protected.Post("/payables/:id/payments", purchasingHandler.PaySupplier)
	protected.Post("/supplier-payments/:id/revert", purchasingHandler.RevertSupplierPayment)

	// Ventas (protegido)
	salesGroup := protected.Group("/sales")
	salesHandler := NewSalesHandler(deps.SalesUC)
	salesGroup.Post("/", salesHandler.Finalize)
	salesGroup.Post("/:id/cancel", salesHandler.Cancel)

	// Cobranzas (protegido)
	receivablesHandler := NewReceivablesHandler(deps.ReceivablesUC)
	salesGroup.Get("/:id/cuotas", receivablesHandler.ListSchedule)
	protected.Post("/cuotas/:id/payments", receivablesHandler.RegisterPayment)
	protected.Post("/cuota-payments/:id/cancel", receivablesHandler.CancelPayment)

	// Comisiones (protegido)
	commGroup := protected.Group("/commissions")
	commissionsHandler := NewCommissionsHandler(deps.CommissionsUC)
	commGroup.Post("/sellers/config", commissionsHandler.ConfigureSeller)
	commGroup.Post("/collectors/config", commissionsHandler.ConfigureCollector)
	commGroup.Post("/sellers/:id/pay", commissionsHandler.PaySeller)
	commGroup.Post("/collectors/:id/pay", commissionsHandler.PayCollector)
	commGroup.Post("/sellers/:id/revert", commissionsHandler.RevertSellerPayment)
	commGroup.Post("/collectors/:id/revert", commissionsHandler.RevertCollectorPayment)

	// Notas de crédito (protegido)
	notesGroup := protected.Group("/credit-notes")
	creditNotesHandler := NewCreditNotesHandler(deps.CreditNotesUC)
	notesGroup.Post("/", creditNotesHandler.Finalize)
	notesGroup.Post("/:id/cancel", creditNotesHandler.Cancel)

	// Documentos electrónicos SIFEN (protegido)
	fiscalHandler := NewFiscalHandler(deps.FiscalUC)
	salesGroup.Post("/:id/document", fiscalHandler.Generate)
	salesGroup.Post("/:id/document/send", fiscalHandler.Send)
	salesGroup.Get("/:id/kude", fiscalHandler.Kude)
	protected.Post("/documents/resend-pending", fiscalHandler.ResendPending)
}
