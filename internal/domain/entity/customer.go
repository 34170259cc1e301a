package entity

import "time"

// Tipos de documento de identidad del receptor (catálogo SIFEN).
const (
	CustomerDocCI          = "1" // cédula de identidad
	CustomerDocPasaporte   = "2"
	CustomerDocCIExtranjera = "3"
	CustomerDocResidencia  = "4"
	CustomerDocInnominado  = "5"
	CustomerDocDiplomatico = "6"
)

// Naturaleza del receptor.
const (
	NaturalezaContribuyente   = "1"
	NaturalezaNoContribuyente = "2"
)

// Customer es el cliente/receptor. (DocType, DocNumber) es único.
type Customer struct {
	ID              string
	DocType         string
	DocNumber       string
	DV              string
	Name            string
	TaxNature       string // naturaleza del receptor
	ContributorType string
	Country         string // código ISO-3 ("PRY")
	Address         string
	Phone           string
	Email           string
	Active          bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
