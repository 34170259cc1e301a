package entity

import (
	"fmt"
	"time"
)

// Tipos de documento con secuencia propia por punto de expedición.
const (
	DocTypeFactura     = "FACTURA"
	DocTypeTicket      = "TICKET"
	DocTypeNotaCredito = "NOTA_CREDITO"
	DocTypeNotaDebito  = "NOTA_DEBITO"
	DocTypeReciboPago  = "RECIBO_PAGO"
)

// CanonicalDocTypes son las secuencias que se crean automáticamente al crear
// un punto de expedición. RECIBO_PAGO se crea bajo demanda al cobrar cuotas.
var CanonicalDocTypes = []string{DocTypeFactura, DocTypeTicket, DocTypeNotaCredito, DocTypeNotaDebito}

// SequenceFormat es el formato fijo BBB-PPP-NNNNNNN.
const SequenceFormat = "{sucursal}-{punto}-{numero:07d}"

// DocumentSequence es el contador monótono por (punto de expedición, tipo de
// documento). NextNumber nunca retrocede por debajo del último emitido.
type DocumentSequence struct {
	ID                string
	ExpeditionPointID string
	DocumentType      string
	Prefix            string // BBB-PPP, derivado de los códigos
	Format            string
	NextNumber        int64
	Active            bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Render produce el identificador BBB-PPP-NNNNNNN para el número dado.
func (s *DocumentSequence) Render(branchCode, pointCode string, n int64) string {
	return fmt.Sprintf("%s-%s-%07d", branchCode, pointCode, n)
}

// BuildPrefix deriva el prefijo BBB-PPP.
func BuildPrefix(branchCode, pointCode string) string {
	return branchCode + "-" + pointCode
}
