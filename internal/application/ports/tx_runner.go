package ports

import (
	"context"

	"github.com/jhoicas/pos-paraguay/internal/domain/repository"
)

// Repos agrupa los repositorios ligados a una misma transacción.
// El TxRunner construye una instancia sobre la tx activa y la entrega
// al closure; todo lo que el closure haga a través de ella confirma o
// revierte en bloque.
type Repos struct {
	Companies        repository.CompanyRepository
	Branches         repository.BranchRepository
	ExpeditionPoints repository.ExpeditionPointRepository
	Sequences        repository.SequenceRepository
	Timbrados        repository.TimbradoRepository

	Categories   repository.CategoryRepository
	UnitMeasures repository.UnitMeasureRepository
	Products     repository.ProductRepository
	Services     repository.ServiceRepository
	Warehouses   repository.WarehouseRepository

	Stocks    repository.StockRepository
	Movements repository.InventoryMovementRepository
	Transfers repository.TransferRepository

	CashRegisters repository.CashRegisterRepository
	CashSessions  repository.CashSessionRepository
	CashMovements repository.CashMovementRepository

	PurchaseOrders   repository.PurchaseOrderRepository
	Receptions       repository.ReceptionRepository
	Payables         repository.AccountsPayableRepository
	SupplierPayments repository.SupplierPaymentRepository

	Sales         repository.SaleRepository
	Cuotas        repository.CuotaRepository
	CuotaPayments repository.CuotaPaymentRepository

	SellerConfigs       repository.SellerCommissionConfigRepository
	SellerCommissions   repository.SellerCommissionRepository
	CollectorConfigs    repository.CollectorCommissionConfigRepository
	CollectorCommission repository.CollectorCommissionRepository

	CreditNotes repository.CreditNoteRepository
	Documents   repository.ElectronicDocumentRepository

	Customers repository.CustomerRepository
	Suppliers repository.SupplierRepository
	Users     repository.UserRepository
}

// TxRunner ejecuta fn dentro de una transacción serializable. Si fn
// devuelve error la transacción se revierte y el error se propaga.
type TxRunner interface {
	Run(ctx context.Context, fn func(r *Repos) error) error
}
