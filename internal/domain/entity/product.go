package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tasas de IVA Paraguay: exentas, 5% y 10%.
var ValidIVARates = map[int]bool{0: true, 5: true, 10: true}

// Category agrupa productos.
type Category struct {
	ID          string
	Name        string
	Description string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// UnitMeasure es la unidad de medida con su código SIFEN (cUniMed).
type UnitMeasure struct {
	ID          string
	Name        string
	SifenCode   string // código numérico del catálogo SIFEN ("77" = Unidad)
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Product representa un producto del inventario multi-almacén.
// Los precios son guaraníes con 2 decimales; minorista ≥ mayorista.
type Product struct {
	ID             string
	CategoryID     string
	UnitID         string
	Code           string // código único
	Name           string
	Description    string
	RetailPrice    decimal.Decimal // precio minorista
	WholesalePrice decimal.Decimal // precio mayorista
	PurchasePrice  decimal.Decimal // último precio de compra (se actualiza en recepción)
	IVARate        int             // 0, 5 o 10
	MinStock       decimal.Decimal
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
