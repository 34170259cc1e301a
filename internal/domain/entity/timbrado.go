package entity

import "time"

// Estados derivados del timbrado según su intervalo de vigencia.
const (
	TimbradoVigente = "VIGENTE"
	TimbradoFuturo  = "FUTURO"
	TimbradoVencido = "VENCIDO"
)

// Tipos de emisión autorizados por el timbrado.
const (
	EmisionFisica      = "FISICA"
	EmisionElectronica = "ELECTRONICA"
)

// Timbrado es la autorización fiscal de emisión: número de exactamente 8
// dígitos y un intervalo de vigencia [ValidFrom, ValidTo].
type Timbrado struct {
	ID        string
	Number    string // 8 dígitos decimales
	IssueKind string
	ValidFrom time.Time
	ValidTo   time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Status deriva el estado de vigencia para la fecha dada.
func (t *Timbrado) Status(today time.Time) string {
	day := today.Truncate(24 * time.Hour)
	switch {
	case day.Before(t.ValidFrom.Truncate(24 * time.Hour)):
		return TimbradoFuturo
	case day.After(t.ValidTo.Truncate(24 * time.Hour)):
		return TimbradoVencido
	default:
		return TimbradoVigente
	}
}
