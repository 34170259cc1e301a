package ports

import "context"

// GatewayResult es la respuesta del servicio SIFEN a un envío.
type GatewayResult struct {
	Estado  string // VALIDO | RECHAZADO
	Mensaje string
	Numero  string
	QRURL   string
}

// FiscalGateway envía documentos electrónicos firmados al SIFEN.
// Las implementaciones no deben invocarse dentro de una transacción
// de base de datos.
type FiscalGateway interface {
	Submit(ctx context.Context, signedXML string) (*GatewayResult, error)
}

// InvoiceData agrupa los datos de una venta para construir su XML SIFEN.
type InvoiceData struct {
	CompanyRUC      string
	CompanyDV       string
	CompanyName     string
	CompanyAddress  string
	Regimen         string
	ContributorType string
	Timbrado        string
	DocumentType    string
	DocumentNumber  string
	IssuedAt        string
	CustomerDocType string
	CustomerDoc     string
	CustomerDV      string
	CustomerName    string
	CustomerNature  string
	CustomerCountry string
	Condition       string
	Items           []InvoiceItem
	Subtotal        string
	Total           string
	IVA10           string
	IVA5            string
}

// InvoiceItem es una línea del documento electrónico.
type InvoiceItem struct {
	Code        string
	Description string
	UnitCode    string
	Quantity    string
	UnitPrice   string
	Subtotal    string
	IVARate     int
}

// XMLBuilder construye el XML del documento electrónico SIFEN.
type XMLBuilder interface {
	Build(data *InvoiceData) (string, error)
}

// XMLSigner firma el XML del documento electrónico.
type XMLSigner interface {
	Sign(xml string) (string, error)
}

// KudePDFGenerator genera la representación gráfica (KuDE) de un
// documento electrónico aceptado.
type KudePDFGenerator interface {
	Generate(data *KudeData) ([]byte, error)
}

// KudeData agrupa lo necesario para renderizar el KuDE.
type KudeData struct {
	CompanyName    string
	CompanyRUC     string
	Timbrado       string
	DocumentNumber string
	CustomerName   string
	CustomerDoc    string
	IssuedAt       string
	Items          []KudeItem
	Total          string
	TotalLetters   string
	SETCode        string
	QRURL          string
}

// KudeItem es una línea del detalle del KuDE.
type KudeItem struct {
	Description string
	Quantity    string
	UnitPrice   string
	Subtotal    string
}
