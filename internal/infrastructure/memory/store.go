// Package memory implementa los repositorios sobre mapas en memoria, con un
// TxRunner que simula transacciones por instantánea: al entrar se copia el
// estado y un error lo restaura completo. Sirve para desarrollo, demos y las
// pruebas de los casos de uso, con la misma semántica todo-o-nada que el
// backend de PostgreSQL.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/pos-paraguay/internal/application/ports"
	"github.com/jhoicas/pos-paraguay/internal/domain/entity"
)

// Store contiene todo el estado. Los mapas guardan valores, no punteros: los
// repositorios devuelven copias y escriben copias, así nada fuera del Store
// aliasa su memoria.
type Store struct {
	mu sync.Mutex

	companies        map[string]entity.Company
	branches         map[string]entity.Branch
	expeditionPoints map[string]entity.ExpeditionPoint
	sequences        map[string]entity.DocumentSequence // clave pointID|docType
	timbrados        map[string]entity.Timbrado

	categories map[string]entity.Category
	units      map[string]entity.UnitMeasure
	products   map[string]entity.Product
	services   map[string]entity.Service
	warehouses map[string]entity.Warehouse

	stocks    map[string]entity.Stock // clave productID|warehouseID
	movements map[string]entity.InventoryMovement
	transfers map[string]entity.Transfer

	cashRegisters map[string]entity.CashRegister
	cashSessions  map[string]entity.CashSession
	cashMovements map[string]entity.CashMovement

	purchaseOrders   map[string]entity.PurchaseOrder
	receptions       map[string]entity.Reception
	payables         map[string]entity.AccountsPayable
	supplierPayments map[string]entity.SupplierPayment

	sales         map[string]entity.Sale
	cuotas        map[string]entity.Cuota
	cuotaPayments map[string]entity.CuotaPayment

	sellerConfigs        map[string]entity.SellerCommissionConfig
	sellerCommissions    map[string]entity.SellerCommission
	collectorConfigs     map[string]entity.CollectorCommissionConfig
	collectorCommissions map[string]entity.CollectorCommission

	creditNotes map[string]entity.CreditNote
	documents   map[string]entity.ElectronicDocument

	customers map[string]entity.Customer
	suppliers map[string]entity.Supplier
	users     map[string]entity.User
}

// NewStore crea un Store vacío.
func NewStore() *Store {
	return &Store{
		companies:            map[string]entity.Company{},
		branches:             map[string]entity.Branch{},
		expeditionPoints:     map[string]entity.ExpeditionPoint{},
		sequences:            map[string]entity.DocumentSequence{},
		timbrados:            map[string]entity.Timbrado{},
		categories:           map[string]entity.Category{},
		units:                map[string]entity.UnitMeasure{},
		products:             map[string]entity.Product{},
		services:             map[string]entity.Service{},
		warehouses:           map[string]entity.Warehouse{},
		stocks:               map[string]entity.Stock{},
		movements:            map[string]entity.InventoryMovement{},
		transfers:            map[string]entity.Transfer{},
		cashRegisters:        map[string]entity.CashRegister{},
		cashSessions:         map[string]entity.CashSession{},
		cashMovements:        map[string]entity.CashMovement{},
		purchaseOrders:       map[string]entity.PurchaseOrder{},
		receptions:           map[string]entity.Reception{},
		payables:             map[string]entity.AccountsPayable{},
		supplierPayments:     map[string]entity.SupplierPayment{},
		sales:                map[string]entity.Sale{},
		cuotas:               map[string]entity.Cuota{},
		cuotaPayments:        map[string]entity.CuotaPayment{},
		sellerConfigs:        map[string]entity.SellerCommissionConfig{},
		sellerCommissions:    map[string]entity.SellerCommission{},
		collectorConfigs:     map[string]entity.CollectorCommissionConfig{},
		collectorCommissions: map[string]entity.CollectorCommission{},
		creditNotes:          map[string]entity.CreditNote{},
		documents:            map[string]entity.ElectronicDocument{},
		customers:            map[string]entity.Customer{},
		suppliers:            map[string]entity.Supplier{},
		users:                map[string]entity.User{},
	}
}

// snapshot copia todo el estado. Los tipos con slices internos se clonan en
// profundidad para que el rollback no comparta memoria con lo mutado.
func (s *Store) snapshot() *Store {
	snap := NewStore()
	copyMap(snap.companies, s.companies)
	copyMap(snap.branches, s.branches)
	copyMap(snap.expeditionPoints, s.expeditionPoints)
	copyMap(snap.sequences, s.sequences)
	copyMap(snap.timbrados, s.timbrados)
	copyMap(snap.categories, s.categories)
	copyMap(snap.units, s.units)
	copyMap(snap.products, s.products)
	for k, v := range s.services {
		snap.services[k] = cloneService(v)
	}
	copyMap(snap.warehouses, s.warehouses)
	copyMap(snap.stocks, s.stocks)
	copyMap(snap.movements, s.movements)
	for k, v := range s.transfers {
		snap.transfers[k] = cloneTransfer(v)
	}
	copyMap(snap.cashRegisters, s.cashRegisters)
	copyMap(snap.cashSessions, s.cashSessions)
	copyMap(snap.cashMovements, s.cashMovements)
	for k, v := range s.purchaseOrders {
		snap.purchaseOrders[k] = clonePurchaseOrder(v)
	}
	copyMap(snap.receptions, s.receptions)
	copyMap(snap.payables, s.payables)
	copyMap(snap.supplierPayments, s.supplierPayments)
	for k, v := range s.sales {
		snap.sales[k] = cloneSale(v)
	}
	copyMap(snap.cuotas, s.cuotas)
	copyMap(snap.cuotaPayments, s.cuotaPayments)
	copyMap(snap.sellerConfigs, s.sellerConfigs)
	copyMap(snap.sellerCommissions, s.sellerCommissions)
	copyMap(snap.collectorConfigs, s.collectorConfigs)
	copyMap(snap.collectorCommissions, s.collectorCommissions)
	for k, v := range s.creditNotes {
		snap.creditNotes[k] = cloneCreditNote(v)
	}
	copyMap(snap.documents, s.documents)
	copyMap(snap.customers, s.customers)
	copyMap(snap.suppliers, s.suppliers)
	copyMap(snap.users, s.users)
	return snap
}

// restore reemplaza el estado con la instantánea.
func (s *Store) restore(snap *Store) {
	s.companies = snap.companies
	s.branches = snap.branches
	s.expeditionPoints = snap.expeditionPoints
	s.sequences = snap.sequences
	s.timbrados = snap.timbrados
	s.categories = snap.categories
	s.units = snap.units
	s.products = snap.products
	s.services = snap.services
	s.warehouses = snap.warehouses
	s.stocks = snap.stocks
	s.movements = snap.movements
	s.transfers = snap.transfers
	s.cashRegisters = snap.cashRegisters
	s.cashSessions = snap.cashSessions
	s.cashMovements = snap.cashMovements
	s.purchaseOrders = snap.purchaseOrders
	s.receptions = snap.receptions
	s.payables = snap.payables
	s.supplierPayments = snap.supplierPayments
	s.sales = snap.sales
	s.cuotas = snap.cuotas
	s.cuotaPayments = snap.cuotaPayments
	s.sellerConfigs = snap.sellerConfigs
	s.sellerCommissions = snap.sellerCommissions
	s.collectorConfigs = snap.collectorConfigs
	s.collectorCommissions = snap.collectorCommissions
	s.creditNotes = snap.creditNotes
	s.documents = snap.documents
	s.customers = snap.customers
	s.suppliers = snap.suppliers
	s.users = snap.users
}

func copyMap[K comparable, V any](dst, src map[K]V) {
	for k, v := range src {
		dst[k] = v
	}
}

func cloneService(s entity.Service) entity.Service {
	s.Components = append([]entity.ServiceComponent(nil), s.Components...)
	return s
}

func cloneTransfer(t entity.Transfer) entity.Transfer {
	t.Details = append([]entity.TransferDetail(nil), t.Details...)
	return t
}

func clonePurchaseOrder(o entity.PurchaseOrder) entity.PurchaseOrder {
	details := make([]*entity.PurchaseOrderDetail, len(o.Details))
	for i, d := range o.Details {
		c := *d
		details[i] = &c
	}
	o.Details = details
	return o
}

func cloneSale(s entity.Sale) entity.Sale {
	details := make([]*entity.SaleDetail, len(s.Details))
	for i, d := range s.Details {
		c := *d
		details[i] = &c
	}
	s.Details = details
	return s
}

func cloneCreditNote(n entity.CreditNote) entity.CreditNote {
	details := make([]*entity.CreditNoteDetail, len(n.Details))
	for i, d := range n.Details {
		c := *d
		details[i] = &c
	}
	n.Details = details
	return n
}

// TxRunner serializa las transacciones con el mutex del Store y garantiza
// todo-o-nada restaurando la instantánea ante error.
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el runner sobre el Store dado.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

var _ ports.TxRunner = (*TxRunner)(nil)

// Run ejecuta fn con los repos ligados al Store. Un error restaura el estado
// previo completo.
func (t *TxRunner) Run(ctx context.Context, fn func(r *ports.Repos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	snap := t.store.snapshot()
	if err := fn(NewRepos(t.store)); err != nil {
		t.store.restore(snap)
		return err
	}
	return nil
}

// NewRepos arma el paquete de repositorios sobre el Store. Los repos asumen
// que el llamador ya serializó el acceso (TxRunner).
func NewRepos(s *Store) *ports.Repos {
	return &ports.Repos{
		Companies:        &companyRepo{s},
		Branches:         &branchRepo{s},
		ExpeditionPoints: &expeditionPointRepo{s},
		Sequences:        &sequenceRepo{s},
		Timbrados:        &timbradoRepo{s},

		Categories:   &categoryRepo{s},
		UnitMeasures: &unitMeasureRepo{s},
		Products:     &productRepo{s},
		Services:     &serviceRepo{s},
		Warehouses:   &warehouseRepo{s},

		Stocks:    &stockRepo{s},
		Movements: &movementRepo{s},
		Transfers: &transferRepo{s},

		CashRegisters: &cashRegisterRepo{s},
		CashSessions:  &cashSessionRepo{s},
		CashMovements: &cashMovementRepo{s},

		PurchaseOrders:   &purchaseOrderRepo{s},
		Receptions:       &receptionRepo{s},
		Payables:         &payableRepo{s},
		SupplierPayments: &supplierPaymentRepo{s},

		Sales:         &saleRepo{s},
		Cuotas:        &cuotaRepo{s},
		CuotaPayments: &cuotaPaymentRepo{s},

		SellerConfigs:       &sellerConfigRepo{s},
		SellerCommissions:   &sellerCommissionRepo{s},
		CollectorConfigs:    &collectorConfigRepo{s},
		CollectorCommission: &collectorCommissionRepo{s},

		CreditNotes: &creditNoteRepo{s},
		Documents:   &documentRepo{s},

		Customers: &customerRepo{s},
		Suppliers: &supplierRepo{s},
		Users:     &userRepo{s},
	}
}
