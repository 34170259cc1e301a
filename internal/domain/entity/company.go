package entity

import "time"

// Tipos de régimen (SIFEN, campo cTipReg).
const (
	RegimenTurismo           = "1"
	RegimenImportador        = "2"
	RegimenExportador        = "3"
	RegimenMaquila           = "4"
	RegimenLey6090           = "5"
	RegimenPequenoProductor  = "6"
	RegimenMedianoProductor  = "7"
	RegimenContable          = "8"
)

// Tipos de contribuyente.
const (
	ContribuyentePersonaFisica   = "1"
	ContribuyentePersonaJuridica = "2"
)

// Company representa la empresa emisora (una sola por despliegue).
// Los códigos de ubicación (departamento, distrito, ciudad, barrio) referencian
// el árbol estático de ubicaciones; se resuelven vía el registro geográfico.
type Company struct {
	ID              string
	Name            string // razón social
	TradeName       string // nombre de fantasía
	RUC             string
	DV              string
	Regimen         string
	ContributorType string
	Address         string
	SecondaryStreet string
	HouseNumber     string
	DeptCode        string
	DistrictCode    string
	CityCode        string
	BarrioCode      string
	Phone           string
	Email           string
	EconomicActivity string // código de actividad económica principal
	Active          bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Branch es una sucursal de la empresa. Code son 3 dígitos (BBB del número de documento).
type Branch struct {
	ID        string
	CompanyID string
	Code      string
	Name      string
	Address   string
	Phone     string
	Principal bool
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ExpeditionPoint es un punto de expedición dentro de una sucursal (PPP del
// número de documento). Cada punto gobierna sus propias secuencias.
type ExpeditionPoint struct {
	ID          string
	BranchID    string
	Code        string
	Description string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
