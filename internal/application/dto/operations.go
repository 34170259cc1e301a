package dto

import "github.com/shopspring/decimal"

// -------- inventario --------

// PostMovementRequest registra un movimiento de inventario manual.
type PostMovementRequest struct {
	ProductID   string          `json:"product_id"`
	WarehouseID string          `json:"warehouse_id"`
	Kind        string          `json:"kind"`
	Quantity    decimal.Decimal `json:"quantity"`
	Reason      string          `json:"reason"`
}

// TransferLineRequest es una línea de un traslado entre depósitos.
type TransferLineRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// TransferRequest registra un traslado entre depósitos.
type TransferRequest struct {
	OriginWarehouseID string                `json:"origin_warehouse_id"`
	TargetWarehouseID string                `json:"target_warehouse_id"`
	Observations      string                `json:"observations"`
	Lines             []TransferLineRequest `json:"lines"`
}

// -------- caja --------

// OpenRegisterRequest abre una caja con su saldo inicial.
type OpenRegisterRequest struct {
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	Observations   string          `json:"observations"`
}

// CloseRegisterRequest cierra la caja declarando el saldo contado.
type CloseRegisterRequest struct {
	ClosingBalance decimal.Decimal `json:"closing_balance"`
	Observations   string          `json:"observations"`
}

// CashMovementRequest registra un movimiento de caja manual.
type CashMovementRequest struct {
	Kind        string          `json:"kind"`
	Amount      decimal.Decimal `json:"amount"`
	Concept     string          `json:"concept"`
	Comprobante string          `json:"comprobante"`
}

// CloseRegisterResponse resume la conciliación del cierre.
type CloseRegisterResponse struct {
	SessionID      string          `json:"session_id"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	TotalIn        decimal.Decimal `json:"total_in"`
	TotalOut       decimal.Decimal `json:"total_out"`
	Theoretical    decimal.Decimal `json:"theoretical"`
	ClosingBalance decimal.Decimal `json:"closing_balance"`
	Difference     decimal.Decimal `json:"difference"`
}

// -------- compras --------

// PurchaseLineRequest es una línea de una orden de compra.
type PurchaseLineRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
}

// CreatePurchaseOrderRequest crea una orden de compra en borrador.
type CreatePurchaseOrderRequest struct {
	SupplierID string                `json:"supplier_id"`
	Condition  string                `json:"condition"`
	DueDate    string                `json:"due_date"`
	Lines      []PurchaseLineRequest `json:"lines"`
}

// ReceiveLineRequest es una línea recibida de una orden.
type ReceiveLineRequest struct {
	DetailID string          `json:"detail_id"`
	Quantity decimal.Decimal `json:"quantity"`
}

// ReceivePurchaseRequest registra una recepción de mercadería.
type ReceivePurchaseRequest struct {
	WarehouseID string              `json:"warehouse_id"`
	Lines       []ReceiveLineRequest `json:"lines"`
}

// PaySupplierRequest registra un pago a proveedor.
type PaySupplierRequest struct {
	Amount       decimal.Decimal `json:"amount"`
	Method       string          `json:"method"`
	RegisterID   string          `json:"register_id"`
	Observations string          `json:"observations"`
}

// -------- ventas --------

// SaleLineRequest es una línea de venta. ProductID y ServiceID son
// mutuamente excluyentes.
type SaleLineRequest struct {
	ProductID          string          `json:"product_id"`
	ServiceID          string          `json:"service_id"`
	WarehouseID        string          `json:"warehouse_id"`
	ServiceWarehouseID string          `json:"service_warehouse_id"`
	Quantity           decimal.Decimal `json:"quantity"`
	UnitPrice          decimal.Decimal `json:"unit_price"`
}

// FinalizeSaleRequest finaliza una venta.
type FinalizeSaleRequest struct {
	CustomerID       string            `json:"customer_id"`
	SellerID         string            `json:"seller_id"`
	ExpeditionPointID string           `json:"expedition_point_id"`
	RegisterID       string            `json:"register_id"`
	DocumentType     string            `json:"document_type"`
	Condition        string            `json:"condition"`
	PaymentMethod    string            `json:"payment_method"`
	InitialEntry     decimal.Decimal   `json:"initial_entry"`
	CuotaCount       int               `json:"cuota_count"`
	DueDay           int               `json:"due_day"`
	FirstDueDate     string            `json:"first_due_date"`
	Lines            []SaleLineRequest `json:"lines"`
}

// CancelSaleRequest cancela una venta finalizada.
type CancelSaleRequest struct {
	Motive     string `json:"motive"`
	RegisterID string `json:"register_id"`
}

// -------- cobranzas --------

// PayCuotaRequest registra un pago sobre una cuota.
type PayCuotaRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Method      string          `json:"method"`
	CollectorID string          `json:"collector_id"`
	RegisterID  string          `json:"register_id"`
}

// CancelCuotaPaymentRequest anula un pago de cuota.
type CancelCuotaPaymentRequest struct {
	Motive     string `json:"motive"`
	RegisterID string `json:"register_id"`
}

// -------- comisiones --------

// PayCommissionRequest liquida (total o parcialmente) una comisión.
type PayCommissionRequest struct {
	Amount     decimal.Decimal `json:"amount"`
	RegisterID string          `json:"register_id"`
}

// RevertCommissionPaymentRequest revierte una liquidación.
type RevertCommissionPaymentRequest struct {
	Motive     string `json:"motive"`
	RegisterID string `json:"register_id"`
}

// -------- notas de crédito --------

// CreditNoteLineRequest es una línea de nota de crédito sobre una
// línea de la venta original.
type CreditNoteLineRequest struct {
	SaleDetailID string          `json:"sale_detail_id"`
	Quantity     decimal.Decimal `json:"quantity"`
}

// FinalizeCreditNoteRequest emite una nota de crédito sobre una venta.
type FinalizeCreditNoteRequest struct {
	SaleID            string                  `json:"sale_id"`
	ExpeditionPointID string                  `json:"expedition_point_id"`
	RegisterID        string                  `json:"register_id"`
	Motive            string                  `json:"motive"`
	RestoreInventory  bool                    `json:"restore_inventory"`
	WarehouseID       string                  `json:"warehouse_id"`
	Lines             []CreditNoteLineRequest `json:"lines"`
}

// -------- auth --------

// LoginRequest autentica un usuario.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse devuelve el token de sesión.
type LoginResponse struct {
	Token    string `json:"token"`
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// RegisterUserRequest da de alta un usuario.
type RegisterUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}
