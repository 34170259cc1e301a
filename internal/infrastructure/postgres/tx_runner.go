package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/pos-paraguay/internal/application/ports"
)

var _ ports.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL serializable.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con los repos atados a la tx y hace
// Commit o Rollback según el resultado.
func (r *TxRunner) Run(ctx context.Context, fn func(repos *ports.Repos) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewRepos(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// NewRepos construye el juego completo de repositorios sobre un Querier
// (pool para lecturas sueltas, tx dentro de Run).
func NewRepos(q Querier) *ports.Repos {
	return &ports.Repos{
		Companies:        NewCompanyRepository(q),
		Branches:         NewBranchRepository(q),
		ExpeditionPoints: NewExpeditionPointRepository(q),
		Sequences:        NewSequenceRepository(q),
		Timbrados:        NewTimbradoRepository(q),

		Categories:   NewCategoryRepository(q),
		UnitMeasures: NewUnitMeasureRepository(q),
		Products:     NewProductRepository(q),
		Services:     NewServiceRepository(q),
		Warehouses:   NewWarehouseRepository(q),

		Stocks:    NewStockRepository(q),
		Movements: NewInventoryMovementRepository(q),
		Transfers: NewTransferRepository(q),

		CashRegisters: NewCashRegisterRepository(q),
		CashSessions:  NewCashSessionRepository(q),
		CashMovements: NewCashMovementRepository(q),

		PurchaseOrders:   NewPurchaseOrderRepository(q),
		Receptions:       NewReceptionRepository(q),
		Payables:         NewAccountsPayableRepository(q),
		SupplierPayments: NewSupplierPaymentRepository(q),

		Sales:         NewSaleRepository(q),
		Cuotas:        NewCuotaRepository(q),
		CuotaPayments: NewCuotaPaymentRepository(q),

		SellerConfigs:       NewSellerCommissionConfigRepository(q),
		SellerCommissions:   NewSellerCommissionRepository(q),
		CollectorConfigs:    NewCollectorCommissionConfigRepository(q),
		CollectorCommission: NewCollectorCommissionRepository(q),

		CreditNotes: NewCreditNoteRepository(q),
		Documents:   NewElectronicDocumentRepository(q),

		Customers: NewCustomerRepository(q),
		Suppliers: NewSupplierRepository(q),
		Users:     NewUserRepository(q),
	}
}
