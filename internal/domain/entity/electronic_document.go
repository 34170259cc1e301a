package entity

import "time"

// Estados del documento electrónico SIFEN. Ciclo monótono salvo el lazo de
// reintento ERROR/RECHAZADO → ENVIADO.
const (
	DocNoGenerado = "NO_GENERADO"
	DocBorrador   = "BORRADOR"  // XML generado
	DocValidado   = "VALIDADO"  // XML firmado
	DocEnviado    = "ENVIADO"
	DocAceptado   = "ACEPTADO"
	DocRechazado  = "RECHAZADO"
	DocError      = "ERROR"
)

// ElectronicDocument es el documento electrónico de una venta (1:1).
type ElectronicDocument struct {
	ID            string
	SaleID        string
	State         string
	XML           string // XML generado sin firmar
	SignedXML     string
	SETCode       string // número asignado por el SET al aceptar
	QRURL         string
	PDF           []byte // KuDE
	KudeGenerated bool
	Attempts      int
	Errors        string
	SentAt        *time.Time
	AcceptedAt    *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Resendable indica si el documento admite un nuevo envío.
func (d *ElectronicDocument) Resendable(maxAttempts int) bool {
	switch d.State {
	case DocValidado:
		return true
	case DocError, DocRechazado, DocEnviado:
		return d.Attempts < maxAttempts
	default:
		return false
	}
}
