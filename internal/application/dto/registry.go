package dto

import "github.com/shopspring/decimal"

// CreateCompanyRequest registra la empresa emisora.
type CreateCompanyRequest struct {
	RUC              string `json:"ruc"`
	RazonSocial      string `json:"razon_social"`
	NombreFantasia   string `json:"nombre_fantasia"`
	Regimen          string `json:"regimen"`
	TipoContribuyente string `json:"tipo_contribuyente"`
	Departamento     string `json:"departamento"`
	Distrito         string `json:"distrito"`
	Ciudad           string `json:"ciudad"`
	Direccion        string `json:"direccion"`
	Telefono         string `json:"telefono"`
	Email            string `json:"email"`
}

// CreateBranchRequest registra una sucursal.
type CreateBranchRequest struct {
	CompanyID string `json:"company_id"`
	Code      string `json:"code"`
	Name      string `json:"name"`
	Direccion string `json:"direccion"`
	Telefono  string `json:"telefono"`
	Principal bool   `json:"principal"`
}

// CreateExpeditionPointRequest registra un punto de expedición. Al
// crearlo se generan las secuencias canónicas del punto.
type CreateExpeditionPointRequest struct {
	BranchID string `json:"branch_id"`
	Code     string `json:"code"`
	Name     string `json:"name"`
}

// SetSequenceNextRequest ajusta el próximo número de una secuencia.
type SetSequenceNextRequest struct {
	NextNumber int64 `json:"next_number"`
}

// CreateTimbradoRequest registra un timbrado de la SET.
type CreateTimbradoRequest struct {
	Number    string `json:"number"`
	ValidFrom string `json:"valid_from"`
	ValidTo   string `json:"valid_to"`
	Emision   string `json:"emision"`
}

// CreateWarehouseRequest registra un depósito.
type CreateWarehouseRequest struct {
	BranchID  string `json:"branch_id"`
	Name      string `json:"name"`
	Direccion string `json:"direccion"`
	Principal bool   `json:"principal"`
}

// CreateProductRequest registra un producto.
type CreateProductRequest struct {
	Code           string          `json:"code"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	CategoryID     string          `json:"category_id"`
	UnitMeasureID  string          `json:"unit_measure_id"`
	RetailPrice    decimal.Decimal `json:"retail_price"`
	WholesalePrice decimal.Decimal `json:"wholesale_price"`
	PurchasePrice  decimal.Decimal `json:"purchase_price"`
	IVARate        int             `json:"iva_rate"`
	MinStock       decimal.Decimal `json:"min_stock"`
}

// ServiceComponentRequest es una línea de la receta de un servicio
// compuesto.
type ServiceComponentRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// CreateServiceRequest registra un servicio simple o compuesto.
type CreateServiceRequest struct {
	Code        string                    `json:"code"`
	Name        string                    `json:"name"`
	Kind        string                    `json:"kind"`
	Price       decimal.Decimal           `json:"price"`
	IVARate     int                       `json:"iva_rate"`
	Components  []ServiceComponentRequest `json:"components"`
}

// CreateCustomerRequest registra un cliente.
type CreateCustomerRequest struct {
	DocType    string `json:"doc_type"`
	DocNumber  string `json:"doc_number"`
	DV         string `json:"dv"`
	Name       string `json:"name"`
	Naturaleza string `json:"naturaleza"`
	Direccion  string `json:"direccion"`
	Telefono   string `json:"telefono"`
	Email      string `json:"email"`
	Country    string `json:"country"`
}

// CreateSupplierRequest registra un proveedor.
type CreateSupplierRequest struct {
	RUC         string `json:"ruc"`
	RazonSocial string `json:"razon_social"`
	Direccion   string `json:"direccion"`
	Telefono    string `json:"telefono"`
	Email       string `json:"email"`
}
